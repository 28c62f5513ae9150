package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"jobsearch-assistant/internal/domain"
	"jobsearch-assistant/internal/domain/model"
	"jobsearch-assistant/internal/domain/ports/repository"
)

var _ repository.ProfileRepository = (*PostgresProfileRepo)(nil)

const uniqueViolation = "23505"

type PostgresProfileRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresProfileRepo(pool *pgxpool.Pool) *PostgresProfileRepo {
	return &PostgresProfileRepo{pool: pool}
}

// Load returns the stored profile. A user that never wrote anything
// gets an empty profile, not an error.
func (r *PostgresProfileRepo) Load(ctx context.Context, userID string) (*model.Profile, error) {
	prof := &model.Profile{UserID: userID, Applications: []model.Application{}}

	const q = `SELECT resume_text FROM profiles WHERE user_id=$1;`
	if err := r.pool.QueryRow(ctx, q, userID).Scan(&prof.ResumeText); err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("load profile: %w", err)
		}
	}

	apps, err := r.Applications(ctx, userID)
	if err != nil {
		return nil, err
	}
	prof.Applications = apps
	return prof, nil
}

func (r *PostgresProfileRepo) SaveResume(ctx context.Context, userID, resumeText string) error {
	const q = `
INSERT INTO profiles (user_id, resume_text, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (user_id) DO UPDATE SET resume_text=$2, updated_at=now();
`
	if _, err := r.pool.Exec(ctx, q, userID, resumeText); err != nil {
		return fmt.Errorf("save resume: %w", err)
	}
	return nil
}

func (r *PostgresProfileRepo) AppendApplication(ctx context.Context, userID string, app model.Application) error {
	const q = `
INSERT INTO applications (id, user_id, job_id, status, created_at)
VALUES ($1, $2, $3, $4, $5);
`
	if _, err := r.pool.Exec(ctx, q, app.ID, userID, app.JobID, string(app.Status), app.Timestamp); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("append application %s: %w", app.ID, domain.ErrInvalidArgument)
		}
		return fmt.Errorf("append application: %w", err)
	}
	return nil
}

func (r *PostgresProfileRepo) Applications(ctx context.Context, userID string) ([]model.Application, error) {
	const q = `
SELECT id, job_id, status, created_at
  FROM applications
 WHERE user_id=$1
 ORDER BY created_at ASC, id ASC;
`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	apps := []model.Application{}
	for rows.Next() {
		var a model.Application
		var status string
		if err := rows.Scan(&a.ID, &a.JobID, &status, &a.Timestamp); err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		a.Status = model.ApplicationStatus(status)
		apps = append(apps, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate applications: %w", err)
	}
	return apps, nil
}
