package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	configapp "helpdesk-assistant/internal/features/config/application"
	config_http "helpdesk-assistant/internal/features/config/presentation/http"
	"helpdesk-assistant/internal/features/helpdesk/domain"
	helpdesk_http "helpdesk-assistant/internal/features/helpdesk/presentation/http"
	"helpdesk-assistant/internal/logging"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(opts *rootOptions) *cobra.Command {
	var overrides configapp.Overrides

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the helpdesk web form",
		Long: `Starts the web form. The knowledge base is loaded once at startup; every
Generate press is an independent request with a single model call.

Examples:
  # Listen on the default :8080 with kb.yaml from the working directory
  helpdesk serve

  # Use Anthropic and a different playbook file
  LLM_PROVIDER=anthropic helpdesk serve --kb /etc/helpdesk/kb.yaml --addr :9000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(opts, overrides)
			if err != nil {
				return err
			}
			if !opts.verbose {
				gin.SetMode(gin.ReleaseMode)
			}
			return serve(cmd.Context(), a, newRouter(a))
		},
	}

	cmd.Flags().StringVar(&overrides.ListenAddr, "addr", "", "Listen address (default from config, then :8080)")
	cmd.Flags().StringVar(&overrides.KnowledgeBasePath, "kb", "", "Path to the knowledge base YAML")
	cmd.Flags().StringVar(&overrides.Provider, "provider", "", "LLM provider (openai, anthropic, gemini)")
	cmd.Flags().StringVar(&overrides.Model, "model", "", "Model name for the provider")

	return cmd
}

func newRouter(a *app) *gin.Engine {
	r := gin.New()
	r.Use(logging.GinMiddleware(a.logger), gin.Recovery())
	r.SetHTMLTemplate(helpdesk_http.Templates())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	handler := helpdesk_http.NewHelpdeskHandler(a.service, a.cfg, a.logger)
	r.GET("/", handler.IndexHandler)
	r.POST("/generate", handler.GenerateFormHandler)
	r.POST("/download", handler.DownloadHandler)

	// Helpdesk API routes
	helpdeskGroup := r.Group("/api/helpdesk")
	{
		helpdeskGroup.POST("/generate", handler.GenerateAPIHandler)
	}

	// Config API routes
	configGroup := r.Group("/api/config")
	{
		configGroup.GET("/app", config_http.NewAppConfigHandler(a.cfg, domain.ModeNames()).GetAppConfigHandler)
	}

	return r
}

func serve(ctx context.Context, a *app, handler http.Handler) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              a.cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("listening", zap.String("addr", srv.Addr), zap.String("provider", a.client.Provider()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
