package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ehtishamsajjad/tm/internal/api"
	"github.com/ehtishamsajjad/tm/internal/api/handlers"
	"github.com/ehtishamsajjad/tm/internal/api/middleware"
	"github.com/ehtishamsajjad/tm/internal/auth"
	"github.com/ehtishamsajjad/tm/pkg/translator"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := st.cfg.RequireHTTP(); err != nil {
				return err
			}
			a, err := newApp(st.cfg, st.log)
			if err != nil {
				return err
			}
			defer a.Close()

			translator.InitTranslator()

			sqlDB, err := a.db.DB()
			if err != nil {
				return err
			}
			issuer := auth.NewIssuer(st.cfg.JWTSecret, st.cfg.TokenTTL)

			gin.SetMode(gin.ReleaseMode)
			r := gin.New()
			r.Use(gin.Recovery(), middleware.GinZapMiddleware(st.log))
			api.RegisterRoutes(
				r,
				middleware.AuthMiddleware(issuer, a.users),
				handlers.NewHealthHandler(sqlDB),
				handlers.NewTaskHandler(a.tasks),
				handlers.NewStatsHandler(a.tasks),
			)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runHTTP(ctx, &http.Server{Addr: st.cfg.HTTPAddr, Handler: r}, st.log)
		},
	}
}

// runHTTP serves until ctx is done, then drains in-flight requests.
func runHTTP(ctx context.Context, srv *http.Server, log *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
