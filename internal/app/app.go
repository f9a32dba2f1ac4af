package app

import (
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nguyentranbao-ct/product-catalog/internal/config"
	"github.com/nguyentranbao-ct/product-catalog/internal/function"
	"github.com/nguyentranbao-ct/product-catalog/internal/server"
	"github.com/nguyentranbao-ct/product-catalog/internal/usecase"
	"github.com/nguyentranbao-ct/product-catalog/pkg/logger"
)

// New assembles the service graph. opts carry the command specific
// fx.Invoke or fx.Populate calls; only what they reach gets constructed.
func New(conf *config.Config, log *zap.SugaredLogger, opts ...fx.Option) *fx.App {
	log.Debugw("config loaded", "config", conf)
	return fx.New(
		fx.WithLogger(func() fxevent.Logger {
			l := &fxevent.ZapLogger{
				Logger: log.Named("fx").Desugar(),
			}
			l.UseLogLevel(zapcore.DebugLevel)
			return l
		}),
		fx.Supply(conf, log),
		fx.Provide(
			newProductRepository,
			newPublisher,

			usecase.NewProductUsecase,

			server.NewController,
			function.NewHandler,
			function.NewStreamLogger,
		),
		fx.Options(opts...),
	)
}

// Invoke is New with fx.Invoke for each of funcs.
func Invoke(conf *config.Config, log *zap.SugaredLogger, funcs ...any) *fx.App {
	return New(conf, log, fx.Invoke(funcs...))
}

// NewLogger builds the process logger from configuration.
func NewLogger(conf *config.Config) (*zap.SugaredLogger, error) {
	return logger.New(conf.Env, conf.LogLevel)
}
