package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/urbansetu/pricewatch/app"
	"github.com/urbansetu/pricewatch/config"
	"github.com/urbansetu/pricewatch/lib"
	"github.com/urbansetu/pricewatch/lib/sweeper"
	"github.com/urbansetu/pricewatch/senders"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func NewLogger() (*zap.Logger, error) {
	switch os.Getenv("ENVIRONMENT") {
	default:
		return zap.NewDevelopment()

	case "production":
		logCfg := zap.NewProductionConfig()
		logCfg.EncoderConfig.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
			t = t.UTC()
			zapcore.ISO8601TimeEncoder(t, enc)
		}
		return logCfg.Build()
	}
}

func core() fx.Option {
	return fx.Options(
		fx.Provide(NewLogger),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Provide(config.NewConfig),

		fx.Provide(app.NewTransport),
		fx.Provide(senders.NewSenderRegistry),
		fx.Provide(senders.NewSweepReporter),

		fx.Provide(app.NewDatabase),
		fx.Provide(lib.NewService),
	)
}

func main() {
	root := &cobra.Command{
		Use:          "pricewatch",
		Short:        "Price drop alerts for UrbanSetu watchlists",
		SilenceUsage: true,
	}
	root.AddCommand(serveCmd(), sweepCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the optional sweep schedule",
		Run: func(cmd *cobra.Command, args []string) {
			fx.New(
				core(),
				fx.Provide(sweeper.NewSweeper),
				fx.Provide(app.NewAPI),

				fx.Invoke(func(*http.Server, *sweeper.Sweeper) {}),
			).Run()
		},
	}
}

func sweepCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Run a single price drop sweep and print the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			var svc *lib.Service
			fxApp := fx.New(core(), fx.Populate(&svc))
			if err := fxApp.Err(); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			if err := fxApp.Start(ctx); err != nil {
				return err
			}
			defer fxApp.Stop(context.Background())

			result, err := svc.SweepPriceDrops(ctx)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(result); err != nil {
				return err
			}
			if !result.Success {
				return errors.New(result.Message)
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Minute, "give up on the sweep after this long")
	return cmd
}
