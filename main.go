package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/Zachkp/portfolio/internal/apiclient"
	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/fitness"
	"github.com/Zachkp/portfolio/internal/logger"
	"github.com/Zachkp/portfolio/internal/mailer"
	"github.com/Zachkp/portfolio/internal/session"
	"github.com/Zachkp/portfolio/internal/telemetry"
	"github.com/Zachkp/portfolio/internal/web"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "portfolio: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(config.Path("config.yml"))
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	if !cfg.Server.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	metrics := telemetry.New()

	api, err := apiclient.New(apiclient.Config{
		BaseURL:           cfg.API.BaseURL,
		WeightPath:        cfg.API.WeightPath,
		Timeout:           cfg.API.Timeout,
		RequestsPerSecond: cfg.API.RequestsPerSecond,
		Burst:             cfg.API.Burst,
	}, log.With(logger.String("component", "apiclient")))
	if err != nil {
		return fmt.Errorf("create api client: %w", err)
	}

	defaultWindow, err := fitness.ParseWindow(cfg.Fitness.DefaultWindow)
	if err != nil {
		return err
	}
	panelLog := log.With(logger.String("component", "fitness"))
	registry := session.NewRegistry(func(visitorID string) *fitness.Controller {
		return fitness.NewController(api, panelLog.With(logger.String("visitor", visitorID)),
			fitness.WithFetchTimeout(cfg.Fitness.FetchTimeout),
			fitness.WithDefaultWindow(defaultWindow),
			fitness.WithRecorder(metrics),
		)
	}, panelLog,
		session.WithTTL(cfg.Fitness.SessionTTL),
		session.WithGauges(metrics.ActiveVisitors, metrics.VisitorsEvicted),
	)

	cookies := session.NewCookies(session.CookieConfig{
		Secret: cfg.Session.Secret,
		Name:   cfg.Session.CookieName,
		MaxAge: cfg.Session.MaxAge,
		Secure: cfg.Session.Secure,
	}, log)

	mail := mailer.New(mailer.Config{
		Host: cfg.SMTP.Host,
		Port: cfg.SMTP.Port,
		User: cfg.SMTP.User,
		Pass: cfg.SMTP.Pass,
		To:   cfg.SMTP.To,
	}, log.With(logger.String("component", "mailer")))

	site, err := web.NewServer(web.Deps{
		Log:            log,
		Metrics:        metrics,
		Lists:          api,
		Mailer:         mail,
		Visitors:       cookies,
		Panels:         registry,
		ListEndpoints:  cfg.API.Lists,
		RevealInterval: cfg.Reveal.Interval,
		StaticDir:      cfg.Server.StaticDir,
		ImagesDir:      cfg.Server.ImagesDir,
	})
	if err != nil {
		return fmt.Errorf("create web server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: site.Router(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		log.Info("Starting server",
			logger.Int("port", cfg.Server.Port),
			logger.String("api", cfg.API.BaseURL),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		return registry.Run(egctx, cfg.Fitness.SweepInterval)
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		log.Info("Shutting down server")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
