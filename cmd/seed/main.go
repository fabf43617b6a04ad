// Command seed maintains the catalog database outside the API process.
//
//	seed [-pages N]                       replace the catalog with TMDb popular movies
//	seed -destroy                         delete every movie
//	seed -reset-user [-email E] [-password P]
//	                                      create or reset an owner account and give it a default profile
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/core/domain"
	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/core/ports"
	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/core/service"
	mongodb "github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/infrastructure/db/mongo"
	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/infrastructure/metadata/tmdb"
	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/pkg/config"
	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/pkg/logger"
)

const defaultProfileName = "Adulto"

type options struct {
	pages     int
	destroy   bool
	resetUser bool
	email     string
	password  string
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	fs.IntVar(&o.pages, "pages", 1, "number of TMDb popular pages to import")
	fs.BoolVar(&o.destroy, "destroy", false, "delete every movie and exit")
	fs.BoolVar(&o.resetUser, "reset-user", false, "create or reset an owner account")
	fs.StringVar(&o.email, "email", "admin@lucero.com", "account email for -reset-user")
	fs.StringVar(&o.password, "password", "admin123", "account password for -reset-user")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if o.destroy && o.resetUser {
		return o, errors.New("-destroy and -reset-user are mutually exclusive")
	}
	if o.pages < 1 {
		return o, fmt.Errorf("-pages must be at least 1, got %d", o.pages)
	}
	return o, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	log := logger.New(logger.Options{Level: cfg.LogLevel, Pretty: true, Service: "nodo-cine-seed"})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Error().Err(err).Msg("mongodb unreachable")
		return err
	}
	defer func() { _ = mongodb.Disconnect(client) }()

	switch {
	case opts.resetUser:
		err = resetUser(ctx, db, opts, log)
	case opts.destroy:
		var removed int64
		removed, err = service.NewImportService(nil, mongodb.NewMovieRepository(db), log).Destroy(ctx)
		if err == nil {
			log.Info().Int64("removed", removed).Msg("catalog destroyed")
		}
	default:
		err = importCatalog(ctx, cfg, db, opts.pages, log)
	}
	if err != nil {
		log.Error().Err(err).Msg("seed failed")
	}
	return err
}

func importCatalog(ctx context.Context, cfg *config.Config, db *mongo.Database, pages int, log zerolog.Logger) error {
	if cfg.TMDB.APIKey == "" {
		return errors.New("TMDB_API_KEY is required to import movies")
	}
	source := tmdb.NewClient(cfg.TMDB.APIKey,
		tmdb.WithBaseURL(cfg.TMDB.BaseURL),
		tmdb.WithRate(cfg.TMDB.RatePerSecond),
	)

	summary, err := service.NewImportService(source, mongodb.NewMovieRepository(db), log).Import(ctx, pages)
	if err != nil {
		return err
	}
	log.Info().
		Int("fetched", summary.Fetched).
		Int("imported", summary.Imported).
		Int("skipped", summary.Skipped).
		Int64("removed", summary.Removed).
		Msg("catalog imported")
	return nil
}

func resetUser(ctx context.Context, db *mongo.Database, opts options, log zerolog.Logger) error {
	// EnsureOwner never issues tokens.
	auth := service.NewAuthService(mongodb.NewUserRepository(db), nil, log)
	user, created, err := auth.EnsureOwner(ctx, opts.email, opts.password)
	if err != nil {
		return err
	}
	log.Info().Str("user_id", user.ID).Str("email", user.Email).Bool("created", created).Msg("owner ready")

	profiles := service.NewProfileService(mongodb.NewProfileRepository(db), log)
	return ensureDefaultProfile(ctx, profiles, domain.Identity{UserID: user.ID, Email: user.Email, Role: user.Role}, log)
}

func ensureDefaultProfile(ctx context.Context, profiles ports.ProfileService, owner domain.Identity, log zerolog.Logger) error {
	existing, err := profiles.List(ctx, owner)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Info().Int("profiles", len(existing)).Msg("user already has profiles")
		return nil
	}
	p, err := profiles.Create(ctx, owner, ports.CreateProfileInput{Name: defaultProfileName})
	if err != nil {
		return err
	}
	log.Info().Str("profile_id", p.ID).Msg("default profile created")
	return nil
}
