package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"

	"github.com/angelmondragon/spicy-pepper-shop/pkg/config"
	"github.com/angelmondragon/spicy-pepper-shop/pkg/logger"
	"github.com/angelmondragon/spicy-pepper-shop/pkg/shopapi"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "reset"})

	if err := godotenv.Load(); err != nil {
		logg.Debug(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	client, err := shopapi.NewClient(cfg.Client.APIBaseURL, shopapi.WithTimeout(cfg.Client.Timeout))
	if err != nil {
		logg.Error(context.Background(), "failed to create api client", err)
		os.Exit(1)
	}

	if err := run(context.Background(), client, cfg.Admin, os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

var errResetFailed = errors.New("reset failed")

type resetter interface {
	Reset(ctx context.Context, creds shopapi.Credentials) (*shopapi.ResetResult, error)
}

// run prints "Reset done: <status>" to out, or "Reset failed: <status> <body>" to errOut.
func run(ctx context.Context, client resetter, admin config.AdminConfig, out, errOut io.Writer) error {
	result, err := client.Reset(ctx, shopapi.Credentials{Name: admin.Name, Password: admin.Password})
	if err != nil {
		var apiErr *shopapi.APIError
		if errors.As(err, &apiErr) {
			fmt.Fprintf(errOut, "Reset failed: %d %s\n", apiErr.StatusCode, apiErr.Body)
		} else {
			fmt.Fprintf(errOut, "Reset failed: %v\n", err)
		}
		return fmt.Errorf("%w: %w", errResetFailed, err)
	}
	fmt.Fprintf(out, "Reset done: %s\n", result.Status)
	return nil
}
