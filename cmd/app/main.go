// File: cmd/app/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"jobsearch-assistant/internal/application"
	"jobsearch-assistant/internal/config"
	"jobsearch-assistant/internal/domain/ports/adapter"
	"jobsearch-assistant/internal/domain/ports/repository"
	aiAdapters "jobsearch-assistant/internal/infra/adapters/ai"
	"jobsearch-assistant/internal/infra/adapters/jobsource"
	pg "jobsearch-assistant/internal/infra/db/postgres"
	"jobsearch-assistant/internal/infra/logging"
	"jobsearch-assistant/internal/infra/metrics"
	red "jobsearch-assistant/internal/infra/redis"
	"jobsearch-assistant/internal/infra/sched"
	"jobsearch-assistant/internal/infra/storage/jsonfile"
	"jobsearch-assistant/internal/infra/web"
	"jobsearch-assistant/internal/infra/worker"
	"jobsearch-assistant/internal/usecase"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("[DEV MODE] Enabled")
	}

	metrics.MustRegister()
	metrics.SetBuildInfo(version, commit)

	// ---- Profile storage ----
	var profiles repository.ProfileRepository
	switch cfg.Storage.Driver {
	case "postgres":
		pool, err := pg.Connect(ctx, cfg.Storage.URL)
		if err != nil {
			logger.Fatal().Err(err).Msg("postgres")
		}
		defer pool.Close()
		profiles = pg.NewPostgresProfileRepo(pool)
	default:
		store, err := jsonfile.NewStore(cfg.Storage.FilePath)
		if err != nil {
			logger.Fatal().Err(err).Msg("jsonfile store")
		}
		profiles = store
	}

	// ---- Redis (optional: cache, rate limiting, sweep lock) ----
	var (
		jobsCache   usecase.ScoredJobCache
		searchIndex *red.JobsCache
		rateLimiter *red.RateLimiter
		locker      red.Locker
	)
	if cfg.Redis.URL != "" {
		redisClient, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis")
		}
		defer redisClient.Close()
		searchIndex = red.NewJobsCache(redisClient, cfg.Redis.TTL, logger)
		jobsCache = searchIndex
		rateLimiter = red.NewRateLimiter(redisClient)
		locker = red.NewLocker(redisClient)
	} else {
		logger.Warn().Msg("redis.url not set; running without cache and rate limiting")
	}

	// ---- AI chat client (Gemini and/or OpenAI, Noop fallback) ----
	byProvider := map[string]adapter.ChatClient{}
	if cfg.AI.GeminiKey != "" {
		gem, err := aiAdapters.NewGeminiClient(ctx, cfg.AI.GeminiKey, cfg.AI.GeminiURL, cfg.AI.DefaultModel, cfg.AI.MaxOutputTokens)
		if err != nil {
			logger.Fatal().Err(err).Msg("gemini client")
		}
		byProvider["gemini"] = gem
	}
	if cfg.AI.OpenAIKey != "" {
		oa, err := aiAdapters.NewOpenAIClient(cfg.AI.OpenAIKey, cfg.AI.DefaultModel)
		if err != nil {
			logger.Fatal().Err(err).Msg("openai client")
		}
		byProvider["openai"] = oa
	}

	var chat adapter.ChatClient
	provider := strings.ToLower(cfg.AI.DefaultProvider)
	switch len(byProvider) {
	case 0:
		logger.Warn().Msg("no AI provider configured; scoring and chat run in noop mode")
		chat = aiAdapters.NewNoopChatClient()
		provider = "noop"
	case 1:
		for p, c := range byProvider {
			chat = c
			provider = p
		}
	default:
		chat = aiAdapters.NewMultiChatClient(provider, byProvider, nil)
	}
	chat = aiAdapters.NewLimitedChat(chat, cfg.AI.ConcurrentLimit)
	logger.Info().Str("provider", provider).Str("model", cfg.AI.DefaultModel).Msg("AI chat client ready")

	matcher, err := aiAdapters.NewMatcher(chat, provider, cfg.AI.DefaultModel, cfg.AI.PromptTokenBudget, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("matcher")
	}
	routerModel := cfg.AI.RouterModel
	if routerModel == "" {
		routerModel = cfg.AI.DefaultModel
	}
	intentRouter := aiAdapters.NewIntentRouter(chat, provider, routerModel, logger)

	// ---- Job source ----
	source := jobsource.NewAdzunaClient(jobsource.Config{
		BaseURL:        cfg.JobSource.BaseURL,
		AppID:          cfg.JobSource.AppID,
		AppKey:         cfg.JobSource.AppKey,
		Country:        cfg.JobSource.Country,
		ResultsPerPage: cfg.JobSource.ResultsPerPage,
		Timeout:        cfg.JobSource.Timeout,
	}, logger)

	// ---- Use cases ----
	matchingUC := usecase.NewMatchingUseCase(matcher, cfg.AI.ConcurrentLimit, cfg.AI.ScoreTimeout, logger)
	jobsUC := usecase.NewJobsUseCase(source, matchingUC, profiles, jobsCache, logger)
	var invalidator usecase.SearchInvalidator
	if searchIndex != nil {
		invalidator = searchIndex
	}
	profileUC := usecase.NewProfileUseCase(profiles, cfg.Upload.MaxResumeBytes, invalidator)
	assistantUC := usecase.NewAssistantUseCase(intentRouter, logger)

	// ---- Facade + HTTP ----
	facade := application.NewFacade(jobsUC, profileUC, assistantUC, logger)
	auth := web.NewAuthManager(cfg.Auth.JWTSecret, cfg.Server.SecureCookie, cfg.Server.CookieDomain, cfg.Server.SessionTTL)
	srv := web.NewServer(
		facade,
		auth,
		web.Credentials{Email: cfg.Auth.DemoEmail, Password: cfg.Auth.DemoPassword, AllowAny: cfg.Runtime.Dev},
		rateLimiter,
		cfg.RateLimit.AssistantPerMinute,
		time.Minute,
		logger,
	)

	server := &http.Server{Addr: fmt.Sprintf(":%d", cfg.Server.Port), Handler: srv.Routes()}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	// ---- Background refresh (needs the redis search index) ----
	if searchIndex != nil {
		pool := worker.NewPool(cfg.Scheduler.Workers, logger)
		pool.Start(ctx)
		defer pool.Stop()
		refresher := sched.NewRefreshWorker(cfg.Scheduler.RefreshInterval, searchIndex, jobsUC, pool, locker, logger)
		go func() { _ = refresher.Run(ctx) }()
	}

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
}
