package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/orgball2608/piazza/internal/auth"
	"github.com/orgball2608/piazza/internal/engagement"
	"github.com/orgball2608/piazza/internal/query"
	"github.com/orgball2608/piazza/pkg/config"
	"github.com/orgball2608/piazza/pkg/errors"
	"github.com/orgball2608/piazza/pkg/logger"
)

type Opts struct {
	fx.In

	LC         fx.Lifecycle
	Logger     logger.Logger
	Config     *config.Config
	Auth       auth.Client
	Engagement engagement.Client
	Query      query.Client
}

// Handler serves the HTTP surface on top of the auth, engagement and query clients.
type Handler struct {
	Auth       auth.Client
	Engagement engagement.Client
	Query      query.Client
	Logger     logger.Logger
}

// New builds the HTTP server and binds it to the fx lifecycle.
func New(opts Opts) *http.Server {
	if opts.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	log := opts.Logger.WithComponent("HTTP")
	h := &Handler{
		Auth:       opts.Auth,
		Engagement: opts.Engagement,
		Query:      opts.Query,
		Logger:     log,
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", opts.Config.App.Port),
		Handler:           NewRouter(h),
		ReadHeaderTimeout: 10 * time.Second,
	}

	opts.LC.Append(fx.Hook{
		OnStart: func(context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return fmt.Errorf("failed to listen on %s: %w", srv.Addr, err)
			}

			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("Server stopped unexpectedly", "error", err)
				}
			}()

			log.Info("Server started", "addr", srv.Addr)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server")
			return srv.Shutdown(ctx)
		},
	})

	return srv
}

var Module = fx.Module("api",
	fx.Provide(New),
	fx.Invoke(func(*http.Server) {}),
)
