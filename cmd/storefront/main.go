package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"

	"github.com/angelmondragon/spicy-pepper-shop/internal/storefront"
	"github.com/angelmondragon/spicy-pepper-shop/pkg/config"
	"github.com/angelmondragon/spicy-pepper-shop/pkg/logger"
	"github.com/angelmondragon/spicy-pepper-shop/pkg/redis"
	"github.com/angelmondragon/spicy-pepper-shop/pkg/shopapi"
)

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "storefront"})

	_ = godotenv.Load()

	cmd := flag.String("cmd", "render", "storefront command: render|login|logout|order|reset")
	route := flag.String("route", storefront.DefaultFragment, "location fragment to open, e.g. #/product/11")
	name := flag.String("name", "", "account name (for login)")
	password := flag.String("password", "", "account password (for login)")
	items := flag.String("items", "", "cart lines as productId:qty[,productId:qty] (for order)")
	flag.Parse()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "storefront",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Output:      os.Stderr,
	})
	ctx = logg.WithFields(ctx, map[string]any{
		"env": cfg.App.Env,
		"cmd": *cmd,
	})

	storage, closer, err := openStorage(ctx, cfg, logg)
	requireResource(ctx, logg, "session storage", err)

	client, err := shopapi.NewClient(cfg.Client.APIBaseURL, shopapi.WithTimeout(cfg.Client.Timeout))
	requireResource(ctx, logg, "api client", err)

	app, err := storefront.New(storefront.Params{
		API:              client,
		Storage:          storage,
		Logger:           logg,
		ResetCredentials: shopapi.Credentials{Name: cfg.Admin.Name, Password: cfg.Admin.Password},
	})
	requireResource(ctx, logg, "storefront", err)

	runErr := run(ctx, app, command{
		name:     *cmd,
		route:    *route,
		login:    *name,
		password: *password,
		items:    *items,
	}, os.Stdout)
	if err := multierr.Append(runErr, closer()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type command struct {
	name     string
	route    string
	login    string
	password string
	items    string
}

func run(ctx context.Context, app *storefront.App, cmd command, out io.Writer) error {
	if err := app.Start(ctx, cmd.route); err != nil {
		return err
	}

	var err error
	switch cmd.name {
	case "render":
		fmt.Fprintln(out, app.Document(ctx))
		return nil
	case "login":
		err = app.Login(ctx, cmd.login, cmd.password)
	case "logout":
		err = app.Logout(ctx)
	case "order":
		lines, parseErr := parseItems(cmd.items)
		if parseErr != nil {
			return parseErr
		}
		for _, line := range lines {
			for i := 0; i < line.Qty; i++ {
				app.AddToCart(ctx, line.ProductID)
			}
		}
		err = app.PlaceOrder(ctx)
	case "reset":
		err = app.Reset(ctx)
	default:
		return fmt.Errorf("unknown command %q", cmd.name)
	}

	if msg, ok := app.Status(); ok {
		fmt.Fprintln(out, msg)
	}
	fmt.Fprintln(out, app.Route().Fragment())
	return err
}

// parseItems reads "10:2,11:1". A line without a quantity counts once.
func parseItems(raw string) ([]storefront.CartItem, error) {
	var out []storefront.CartItem
	for _, part := range strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == ' ' }) {
		id, qtyText, found := strings.Cut(part, ":")
		id = strings.TrimSpace(id)
		qty := 1
		if found {
			parsed, err := strconv.Atoi(strings.TrimSpace(qtyText))
			if err != nil || parsed <= 0 {
				return nil, fmt.Errorf("invalid quantity in %q", part)
			}
			qty = parsed
		}
		if id == "" {
			return nil, fmt.Errorf("missing product id in %q", part)
		}
		out = append(out, storefront.CartItem{ProductID: id, Qty: qty})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no items given")
	}
	return out, nil
}

func openStorage(ctx context.Context, cfg *config.Config, logg *logger.Logger) (storefront.Storage, func() error, error) {
	if cfg.Redis.Enabled() {
		client, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return nil, nil, err
		}
		storage, err := storefront.NewRedisStorage(client, cfg.Redis.SessionTTL)
		if err != nil {
			return nil, nil, multierr.Append(err, client.Close())
		}
		return storage, client.Close, nil
	}
	storage, err := storefront.NewFileStorage(cfg.Client.SessionDir)
	if err != nil {
		return nil, nil, err
	}
	return storage, func() error { return nil }, nil
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err != nil {
		logg.Error(ctx, fmt.Sprintf("failed to init %s", resource), err)
		os.Exit(1)
	}
}
