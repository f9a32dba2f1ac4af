package cmd

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/nguyentranbao-ct/product-catalog/internal/app"
	"github.com/nguyentranbao-ct/product-catalog/internal/function"
	"github.com/nguyentranbao-ct/product-catalog/internal/kafka"
	"github.com/nguyentranbao-ct/product-catalog/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Run: func(cmd *cobra.Command, args []string) {
		app.Invoke(conf, log, server.StartServer).Run()
	},
}

var lambdaCmd = &cobra.Command{
	Use:   "lambda",
	Short: "Run the API Gateway proxy handler as an AWS Lambda function",
	RunE: func(cmd *cobra.Command, args []string) error {
		var handler *function.Handler
		a := app.New(conf, log, fx.Populate(&handler))
		if err := a.Start(context.Background()); err != nil {
			return err
		}
		lambda.Start(handler.Handle)
		return nil
	},
}

var streamCmd = &cobra.Command{
	Use:   "stream",
	Short: "Run the DynamoDB stream logger as an AWS Lambda function",
	RunE: func(cmd *cobra.Command, args []string) error {
		var streamLogger *function.StreamLogger
		a := app.New(conf, log, fx.Populate(&streamLogger))
		if err := a.Start(context.Background()); err != nil {
			return err
		}
		lambda.Start(streamLogger.Handle)
		return nil
	},
}

var consumeCmd = &cobra.Command{
	Use:   "consume",
	Short: "Consume product change events from Kafka",
	Run: func(cmd *cobra.Command, args []string) {
		app.Invoke(conf, log, kafka.StartConsumer).Run()
	},
}
