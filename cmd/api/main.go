// @title                       Nodo Cine API
// @version                     1.0
// @description                 Movie catalog backend with accounts, viewing profiles and TMDb lookups.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the token.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/api"
	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/core/ports"
	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/core/service"
	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/infrastructure/broker/rabbitmq"
	mongodb "github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/infrastructure/db/mongo"
	redisdb "github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/infrastructure/db/redis"
	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/infrastructure/metadata/tmdb"
	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/infrastructure/queue"
	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/pkg/config"
	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		// The logger is not configured yet.
		bootLog := logger.New(logger.Options{Pretty: true, Output: os.Stderr})
		bootLog.Error().Err(err).Msg("configuration error")
		return err
	}

	log := logger.New(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "nodo-cine-api",
	})

	tokens, err := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		log.Error().Err(err).Msg("token service")
		return err
	}

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Error().Err(err).Msg("mongodb unreachable")
		return err
	}
	defer func() {
		if err := mongodb.Disconnect(client); err != nil {
			log.Warn().Err(err).Msg("mongodb disconnect")
		}
	}()
	log.Info().Str("database", cfg.Mongo.Database).Msg("mongodb connected")

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Error().Err(err).Msg("ensure indexes")
		return err
	}

	users := mongodb.NewUserRepository(db)
	movies := mongodb.NewMovieRepository(db)
	profiles := mongodb.NewProfileRepository(db)

	deps := api.Deps{
		Logger:  log,
		Origins: cfg.Origins(),
		Tokens:  tokens,
		Users:   users,
		Mongo:   client,
	}

	if cfg.RateLimit.Enabled {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, rate limiting disabled")
		} else {
			defer rdb.Close()
			deps.Redis = rdb
			deps.Limiter = redisdb.NewLimiter(rdb, cfg.RateLimit.Capacity, cfg.RateLimit.RefillInterval)
		}
	}

	var notifier ports.CatalogNotifier = ports.NopNotifier{}
	if cfg.AMQP.URL != "" {
		publisher := rabbitmq.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err := publisher.Connect(); err != nil {
			// Publish redials on demand.
			log.Warn().Err(err).Msg("rabbitmq unavailable at startup")
		}
		defer func() {
			if err := publisher.Close(); err != nil {
				log.Warn().Err(err).Msg("rabbitmq close")
			}
		}()

		dispatcher := queue.NewDispatcher(cfg.EventWorkers, publisher, log)
		dispatcher.Start(context.WithoutCancel(ctx))
		defer dispatcher.Close()
		notifier = dispatcher
	}

	if cfg.TMDB.APIKey != "" {
		deps.Trailers = tmdb.NewClient(cfg.TMDB.APIKey,
			tmdb.WithBaseURL(cfg.TMDB.BaseURL),
			tmdb.WithRate(cfg.TMDB.RatePerSecond),
		)
	} else {
		log.Warn().Msg("TMDB_API_KEY not set, trailer lookups disabled")
	}

	deps.Auth = service.NewAuthService(users, tokens, log)
	deps.Movies = service.NewMovieService(movies, notifier, log)
	deps.Profiles = service.NewProfileService(profiles, log)

	return serve(ctx, cfg.Port, api.NewRouter(deps), log)
}

func serve(ctx context.Context, port string, h http.Handler, log zerolog.Logger) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("server")
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown")
		return err
	}
	return nil
}
