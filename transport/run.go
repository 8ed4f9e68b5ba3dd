package transport

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"
)

// Run serves srv on lis and, when admin is not nil, the admin HTTP server on adminLis, until ctx
// is cancelled or one of them fails. Both are shut down before Run returns.
//
// Called from the main of every server binary.
func Run(ctx context.Context, logger log.Logger, srv *Server, lis net.Listener, admin *echo.Echo, adminLis net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return srv.Serve(gctx, lis)
	})

	if admin != nil {
		admin.Listener = adminLis
		g.Go(func() error {
			level.Info(logger).Log("msg", "Starting admin HTTP server", "addr", adminLis.Addr())
			if err := admin.Start(""); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
			defer cancel()
			if err := admin.Shutdown(shutdownCtx); err != nil {
				level.Error(logger).Log("msg", "admin HTTP server shutdown error", "err", err)
			}
			return nil
		})
	}

	return g.Wait()
}
