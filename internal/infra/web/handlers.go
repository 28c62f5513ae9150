package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"jobsearch-assistant/internal/application"
	"jobsearch-assistant/internal/domain"
	"jobsearch-assistant/internal/domain/model"
)

type ctxKey int

const userIDKey ctxKey = iota

func withUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func userIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// statusFor maps domain errors to HTTP status codes. Anything
// unrecognized is a 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument), errors.Is(err, domain.ErrUploadWrongType):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUploadTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, domain.ErrNoUser), errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrJobSource):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), map[string]string{"error": err.Error()})
}

func healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// loginHandler checks the demo credentials, loads the user's profile
// into a fresh session and mints the session token.
func loginHandler(f *application.Facade, auth *AuthManager, creds Credentials, log *zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		email := strings.TrimSpace(req.Email)
		switch {
		case creds.AllowAny && email != "" && req.Password != "":
		case strings.EqualFold(email, creds.Email) && req.Password == creds.Password:
		default:
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}

		user, err := f.Login(ctx, req.Email)
		if err != nil {
			writeError(w, err)
			return
		}
		token, err := auth.Mint(w, user.ID, user.Email)
		if err != nil {
			if log != nil {
				log.Error().Err(err).Msg("could not mint session token")
			}
			http.Error(w, "Failed to create session", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, loginResponse{Token: token, User: user})
	}
}

func logoutHandler(auth *AuthManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth.Clear(w)
		w.WriteHeader(http.StatusNoContent)
	}
}

// jobsHandler fetches, scores and filters the feed for the caller's
// search terms. view=best narrows to the top matches.
func jobsHandler(f *application.Facade) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		userID := userIDFrom(ctx)

		q := r.URL.Query()
		jobs, err := f.RefreshJobs(ctx, userID, q.Get("what"), q.Get("where"))
		if err != nil {
			writeError(w, err)
			return
		}
		if q.Get("view") == "best" {
			jobs = f.SessionFor(userID).BestMatches()
		}

		response := struct {
			Data  []model.ScoredJob `json:"data"`
			Total int               `json:"total"`
		}{
			Data:  jobs,
			Total: len(jobs),
		}
		writeJSON(w, http.StatusOK, response)
	}
}

type uploadResumeRequest struct {
	ResumeText string `json:"resume_text"`
}

func uploadResumeHandler(f *application.Facade) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req uploadResumeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if err := f.UploadResume(ctx, userIDFrom(ctx), req.ResumeText); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type applyRequest struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}

func applyHandler(f *application.Facade) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req applyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		status := model.ApplicationStatus(req.Status)
		if req.Status == "" {
			status = model.StatusApplied
		}
		if !model.ValidStatus(status) {
			http.Error(w, "Unknown application status", http.StatusBadRequest)
			return
		}

		app, err := f.RecordApplication(ctx, userIDFrom(ctx), req.JobID, status)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, app)
	}
}

// applicationsHandler serves the caller's own history. The path still
// carries the user ID so the unused admin view can be added later
// without a URL change, but it must match the session.
func applicationsHandler(f *application.Facade) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		requested := chi.URLParam(r, "userID")
		if requested != userIDFrom(ctx) {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		apps, err := f.Applications(ctx, requested)
		if err != nil {
			writeError(w, err)
			return
		}
		response := struct {
			Data []model.Application `json:"data"`
		}{Data: apps}
		writeJSON(w, http.StatusOK, response)
	}
}

type assistantRequest struct {
	Query string `json:"query"`
	What  string `json:"what"`
	Where string `json:"where"`
}

func assistantHandler(f *application.Facade) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req assistantRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		res, err := f.Chat(ctx, userIDFrom(ctx), req.Query, req.What, req.Where)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}
