package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nguyentranbao-ct/product-catalog/internal/app"
	"github.com/nguyentranbao-ct/product-catalog/internal/config"
)

var (
	conf *config.Config
	log  *zap.SugaredLogger
)

var rootCmd = &cobra.Command{
	Use:           "product-catalog",
	Short:         "Product catalog API, lambda functions and client",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if conf, err = config.Load(); err != nil {
			return err
		}
		log, err = app.NewLogger(conf)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = log.Sync()
	},
}

func init() {
	rootCmd.AddCommand(
		serveCmd,
		lambdaCmd,
		streamCmd,
		consumeCmd,
		clientCmd,
	)
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
