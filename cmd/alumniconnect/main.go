package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/auth"
	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/config"
	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/content"
	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/feed"
	httpapp "github.com/ashoke-maity/Minor-project-TIU-sub001/internal/http"
	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/logging"
	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/mail"
	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/media"
	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/rate"
	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/realtime"
	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/store/sqlite"
)

var version = "dev"

func main() {
	cliApp := &cli.App{
		Name:    "alumniconnect",
		Usage:   "alumni network API server",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "env-file",
				Usage: "dotenv files to load before reading the environment",
				Value: cli.NewStringSlice(".env"),
			},
		},
		Before: func(c *cli.Context) error {
			return config.LoadDotEnv(c.StringSlice("env-file")...)
		},
		DefaultCommand: "serve",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP and websocket server",
				Action: runServe,
			},
			{
				Name:   "migrate",
				Usage:  "apply database migrations and print the schema version",
				Action: runMigrate,
			},
			{
				Name:  "admin",
				Usage: "manage administrator accounts",
				Subcommands: []*cli.Command{
					{
						Name:  "create",
						Usage: "create an admin and email a one-time password",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "email", Required: true},
							&cli.StringFlag{Name: "first-name", Required: true},
							&cli.StringFlag{Name: "last-name"},
						},
						Action: runAdminCreate,
					},
					{
						Name:      "delete",
						Usage:     "delete an account and its posts",
						ArgsUsage: "<account-id>",
						Action:    runAdminDelete,
					},
				},
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app bundles the services shared by every command.
type app struct {
	cfg    config.Config
	logger *zap.Logger
	store  *sqlite.Store
	media  feed.MediaStore
	auth   *auth.Service
}

func setup(ctx context.Context) (*app, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	st, err := sqlite.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	var mediaStore feed.MediaStore = media.Disabled{}
	if cfg.Storage.Enabled() {
		s3, err := media.NewS3Store(ctx, media.Config{
			Endpoint:  cfg.Storage.Endpoint,
			Region:    cfg.Storage.Region,
			Bucket:    cfg.Storage.Bucket,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			PublicURL: cfg.Storage.PublicURL,
		})
		if err != nil {
			_ = st.Close()
			return nil, err
		}
		mediaStore = s3
	} else {
		logger.Warn("media storage not configured, uploads are disabled")
	}

	var mailer auth.Mailer = mail.NewLogSender(logger)
	if cfg.Mail.Enabled() {
		mailer = mail.NewSMTPSender(mail.Config{
			Host:     cfg.Mail.Host,
			Port:     strconv.Itoa(cfg.Mail.Port),
			Username: cfg.Mail.Username,
			Password: cfg.Mail.Password,
			From:     cfg.Mail.From,
		})
	}

	tokens := auth.NewTokens(cfg.JWTSecret, cfg.SessionTTL, cfg.ResetTTL)
	authSvc := auth.NewService(st, tokens, mailer, mediaStore, logger.Named("auth"), auth.ServiceConfig{
		ResetURL: cfg.ResetURL,
		HashCost: cfg.BcryptCost,
	})
	return &app{cfg: cfg, logger: logger, store: st, media: mediaStore, auth: authSvc}, nil
}

func (a *app) close() {
	_ = a.store.Close()
	_ = a.logger.Sync()
}

func runServe(c *cli.Context) error {
	a, err := setup(c.Context)
	if err != nil {
		return err
	}
	defer a.close()

	hub := realtime.NewHub(a.logger.Named("realtime"), a.cfg.ClientURLs)
	server := httpapp.NewServer(httpapp.Deps{
		Auth:      a.auth,
		Feed:      feed.NewService(a.store, a.media, hub, a.logger.Named("feed")),
		Content:   content.NewService(a.store),
		Site:      a.store,
		Listeners: hub,
		Limiter:   rate.NewMemory(),
		Logger:    a.logger.Named("http"),
	}, a.cfg)

	httpServer := &http.Server{
		Addr:              a.cfg.Addr,
		Handler:           server,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("alumniconnect listening", zap.String("addr", a.cfg.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}

	a.logger.Info("shutting down")
	hub.Close()
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(ctx)
}

func runMigrate(c *cli.Context) error {
	a, err := setup(c.Context)
	if err != nil {
		return err
	}
	defer a.close()

	v, err := a.store.SchemaVersion(c.Context)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Schema at version %d\n", v)
	return nil
}

func runAdminCreate(c *cli.Context) error {
	a, err := setup(c.Context)
	if err != nil {
		return err
	}
	defer a.close()

	account, err := a.auth.CreateAdmin(c.Context, auth.CreateAdminInput{
		Email:     c.String("email"),
		FirstName: c.String("first-name"),
		LastName:  c.String("last-name"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("✓ Created admin %s (%s)\n", account.Email, account.AdminCode)
	fmt.Println("  A one-time password was sent by email")
	return nil
}

func runAdminDelete(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: alumniconnect admin delete <account-id>", 2)
	}
	id, err := strconv.ParseInt(c.Args().First(), 10, 64)
	if err != nil || id <= 0 {
		return cli.Exit("account id must be a positive number", 2)
	}

	a, err := setup(c.Context)
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.auth.DeleteAccount(c.Context, id); err != nil {
		return err
	}
	fmt.Printf("✓ Deleted account %d\n", id)
	return nil
}
