package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/nguyentranbao-ct/product-catalog/internal/config"
	pkgmdw "github.com/nguyentranbao-ct/product-catalog/internal/server/middleware"
	"github.com/nguyentranbao-ct/product-catalog/pkg/logger"
)

// NewEcho builds the HTTP API with its middleware chain and routes.
func NewEcho(conf config.ServerConfig, handler Controller, log *zap.SugaredLogger) (*echo.Echo, error) {
	corsPattern, err := pkgmdw.CORSPattern(conf.CORSOrigins)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = pkgmdw.NewValidator()
	e.HTTPErrorHandler = pkgmdw.ErrorHandler(log)

	logConfig := pkgmdw.LogRequestConfig{
		Logger: log.Named("http"),
		Enabled: func(c echo.Context) bool {
			path := c.Request().URL.Path
			return path != "/health" && path != "/metrics"
		},
	}

	e.Use(pkgmdw.Metrics())
	e.Use(pkgmdw.RequestID())
	e.Use(pkgmdw.LogRequest(logConfig))
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Ctx(c.Request().Context(), log).Errorw("PANIC RECOVER", "error", err, "stack", string(stack))
			return err
		},
	}))
	e.Use(pkgmdw.CORS(corsPattern))

	e.GET("/health", handler.Health)

	e.GET("/products", pkgmdw.WrapHandler(handler.ListProducts))
	e.GET("/products/:id", pkgmdw.WrapHandler(handler.GetProduct))
	e.POST("/products", pkgmdw.WrapHandler(handler.CreateProduct))
	e.PUT("/products/:id", pkgmdw.WrapHandler(handler.UpdateProduct))
	e.DELETE("/products/:id", pkgmdw.WrapHandler(handler.DeleteProduct))

	if conf.Pprof {
		pkgmdw.PprofWrap(e, "")
	}

	return e, nil
}

func StartServer(
	lc fx.Lifecycle,
	sd fx.Shutdowner,
	conf *config.Config,
	handler Controller,
	log *zap.SugaredLogger,
) error {
	e, err := NewEcho(conf.Server, handler, log)
	if err != nil {
		return err
	}
	e.Server.ReadTimeout = conf.Server.ReadTimeout
	e.Server.WriteTimeout = conf.Server.WriteTimeout

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				addr := conf.Server.Addr()
				log.Infow("starting HTTP server", "addr", addr, "store", conf.Store.Driver)
				if err := e.Start(addr); !errors.Is(err, http.ErrServerClosed) {
					log.Errorw("HTTP server stopped", "error", err)
					_ = sd.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return e.Shutdown(ctx)
		},
	})
	return nil
}
