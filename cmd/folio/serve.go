package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/folio-dev/folio/internal/app"
	"github.com/folio-dev/folio/internal/config"
	"github.com/folio-dev/folio/internal/content"
	"github.com/folio-dev/folio/internal/handlers"
	"github.com/folio-dev/folio/internal/views"
	"github.com/folio-dev/folio/middlewares"
	"github.com/folio-dev/folio/pkg/contact"
	"github.com/folio-dev/folio/pkg/emailjs"
	"github.com/folio-dev/folio/pkg/logger"
	"github.com/folio-dev/folio/pkg/mailer"
	"github.com/folio-dev/folio/pkg/mailer/resend"
)

const sentryFlushTimeout = 2 * time.Second

func newServeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		Example: `  folio serve
  folio serve --address :3000 --content ./content.yaml --watch-content
  FOLIO_DELIVERY=resend FOLIO_RESEND_API_KEY=re_... folio serve`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}

	cmd.Flags().String("address", "", "listen address (default :8080)")
	cmd.Flags().String("content", "", "content YAML file (default: built-in)")
	cmd.Flags().Bool("watch-content", false, "reload the content file when it changes")
	cmd.Flags().String("delivery", "", "delivery backend: emailjs or resend")
	return cmd
}

func loggerConfig(cfg *config.Config) logger.Config {
	return logger.Config{
		Level:             cfg.LogLevel,
		SentryDSN:         cfg.Sentry.DSN,
		SentryEnvironment: cfg.Sentry.Environment,
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	log, flush := logger.New(loggerConfig(cfg), middlewares.RequestIDExtractor(), handlers.SurfaceIDExtractor())

	deliverer := newDeliverer(cfg)
	log.Info("contact delivery configured", slog.String("delivery", cfg.Delivery))

	store, err := content.NewStore(cfg.ContentPath, content.WithLogger(log))
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}

	contactCfg := cfg.ContactConfig()
	registry := contact.NewRegistry(
		func(string) *contact.Submission {
			return contact.NewSubmission(deliverer, contactCfg, contact.WithLogger(log))
		},
		contact.WithSurfaceTTL(cfg.SurfaceTTL),
		contact.WithRegistryLogger(log),
	)

	a := app.New(
		app.WithLogger(log),
		app.WithMiddleware(
			middlewares.RequestID(),
			middlewares.Logging(),
			middlewares.Recover(),
		),
		app.WithStaticFiles("/static/", views.Static),
		app.WithNotFoundHandler(func(c app.Context) error {
			return c.Error(http.StatusNotFound, http.StatusText(http.StatusNotFound))
		}),
		app.WithHealthChecks(
			app.WithReadinessCheck("content", store.Healthcheck),
		),
		app.WithHandlers(
			handlers.NewPageHandler(store, registry),
			handlers.NewContactHandler(registry),
		),
	)

	background := []app.BackgroundFunc{registry.Run}
	if cfg.WatchContent {
		background = append(background, store.Watch)
	}

	return a.Run(ctx,
		app.WithAddress(cfg.Address),
		app.WithShutdownTimeout(cfg.ShutdownTimeout),
		app.WithBackground(background...),
		app.WithShutdownHook(func(context.Context) error {
			log.Info("flushing logs", slog.Int("open_surfaces", registry.Len()))
			flush(sentryFlushTimeout)
			return nil
		}),
	)
}

// newDeliverer builds the collaborator for the configured backend.
// config.Validate has already rejected unknown backends.
func newDeliverer(cfg *config.Config) contact.Deliverer {
	if cfg.Delivery == config.DeliveryResend {
		m := mailer.New(
			resend.New(cfg.Resend.Config),
			mailer.NewRenderer(mailer.DefaultTemplates),
			mailer.Config{},
		)
		return mailer.NewContactDeliverer(m, cfg.Resend.To...)
	}
	return emailjs.New(cfg.EmailJS.Client())
}
