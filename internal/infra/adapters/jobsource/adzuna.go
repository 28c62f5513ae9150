// File: internal/infra/adapters/jobsource/adzuna.go
package jobsource

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"jobsearch-assistant/internal/domain"
	"jobsearch-assistant/internal/domain/model"
	"jobsearch-assistant/internal/domain/ports/adapter"
)

// Compile-time check
var _ adapter.JobSource = (*AdzunaClient)(nil)

const (
	defaultBaseURL        = "https://api.adzuna.com/v1/api/jobs"
	defaultCountry        = "in"
	defaultResultsPerPage = 50
	defaultTimeout        = 15 * time.Second
)

// AdzunaClient fetches postings from the Adzuna search API and
// normalizes them into domain postings.
type AdzunaClient struct {
	http           *resty.Client
	appID          string
	appKey         string
	country        string
	resultsPerPage int
	log            *zerolog.Logger
}

type Config struct {
	BaseURL        string
	AppID          string
	AppKey         string
	Country        string
	ResultsPerPage int
	Timeout        time.Duration
}

func NewAdzunaClient(cfg Config, log *zerolog.Logger) *AdzunaClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Country == "" {
		cfg.Country = defaultCountry
	}
	if cfg.ResultsPerPage <= 0 {
		cfg.ResultsPerPage = defaultResultsPerPage
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout)
	return &AdzunaClient{
		http:           client,
		appID:          cfg.AppID,
		appKey:         cfg.AppKey,
		country:        cfg.Country,
		resultsPerPage: cfg.ResultsPerPage,
		log:            log,
	}
}

func (a *AdzunaClient) Search(ctx context.Context, q adapter.JobQuery) ([]model.JobPosting, error) {
	resp, err := a.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"app_id":           a.appID,
			"app_key":          a.appKey,
			"results_per_page": strconv.Itoa(a.resultsPerPage),
			"what":             q.What,
			"where":            q.Where,
		}).
		Get(fmt.Sprintf("/%s/search/1", a.country))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrJobSource, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: http %d", domain.ErrJobSource, resp.StatusCode())
	}

	body := resp.String()
	results := gjson.Get(body, "results")
	if !results.Exists() || !results.IsArray() {
		return nil, fmt.Errorf("%w: missing results array", domain.ErrJobSource)
	}

	postings := make([]model.JobPosting, 0, int(results.Get("#").Int()))
	results.ForEach(func(_, item gjson.Result) bool {
		p := model.JobPosting{
			ID:           item.Get("id").String(),
			Title:        item.Get("title").String(),
			Company:      item.Get("company.display_name").String(),
			Location:     item.Get("location.display_name").String(),
			Description:  item.Get("description").String(),
			ContractType: item.Get("contract_type").String(),
			ApplyURL:     item.Get("redirect_url").String(),
		}
		if created := item.Get("created").String(); created != "" {
			if ts, err := time.Parse(time.RFC3339, created); err == nil {
				p.PostedAt = ts
			} else if a.log != nil {
				// A zero PostedAt falls out of every date-posted window.
				a.log.Debug().Err(err).
					Str("job_id", p.ID).
					Str("created", created).
					Msg("unparseable created timestamp")
			}
		}
		p.Normalize()
		postings = append(postings, p)
		return true
	})

	if a.log != nil {
		a.log.Debug().
			Str("what", q.What).
			Str("where", q.Where).
			Int("postings", len(postings)).
			Msg("adzuna search")
	}
	return postings, nil
}
