// cmd/main.go

package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/arbeit-tech/billing-service/internal/app"
	"github.com/arbeit-tech/billing-service/internal/config"
	"github.com/arbeit-tech/billing-service/internal/logger"
	"github.com/arbeit-tech/billing-service/pkg/document"
	"github.com/arbeit-tech/billing-service/pkg/render"
)

// @title Billing Service API
// @version 1.0
// @description Quotations, invoices and receipts with PDF rendering.
// @BasePath /
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	if err := newCLI().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newCLI() *cli.App {
	return &cli.App{
		Name:  "billing",
		Usage: "quotation, invoice and receipt service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "store",
				Usage: "document store: memory or postgres (overrides STORE_DRIVER)",
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			migrateCommand(),
			renderCommand(),
			inspectCommand(),
		},
	}
}

// setup loads configuration, applies flag overrides and initializes logging.
// The returned closer releases the log output.
func setup(c *cli.Context) (*config.Config, io.Closer, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if c.IsSet("store") {
		cfg.StoreDriver = c.String("store")
	}
	if c.IsSet("addr") {
		cfg.HTTPAddr = c.String("addr")
	}

	closer, err := logger.Setup(cfg.GetLoggerConfig())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, closer, nil
}

// withApp runs fn against a fully wired application.
func withApp(c *cli.Context, fn func(ctx context.Context, a *app.App) error) error {
	cfg, closer, err := setup(c)
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(ctx, a)
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Usage: "listen address (overrides HTTP_ADDR)"},
			&cli.BoolFlag{Name: "migrate", Usage: "apply the database schema before serving"},
		},
		Action: func(c *cli.Context) error {
			return withApp(c, func(ctx context.Context, a *app.App) error {
				if c.Bool("migrate") {
					if err := a.Migrate(ctx); err != nil {
						return err
					}
				}
				return a.Server().ListenAndServe(ctx, a.Config.HTTPAddr, a.Config.ShutdownTimeout)
			})
		},
	}
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "apply the embedded PostgreSQL schema",
		Action: func(c *cli.Context) error {
			return withApp(c, func(ctx context.Context, a *app.App) error {
				if err := a.Migrate(ctx); err != nil {
					return err
				}
				mainLog := logger.WithComponent("main")
				mainLog.Info().Msg("schema applied")
				return nil
			})
		},
	}
}

func renderCommand() *cli.Command {
	return &cli.Command{
		Name:  "render",
		Usage: "render a stored document to the artifact directory",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "kind", Usage: "quotation, invoice or receipt", Required: true},
			&cli.StringFlag{Name: "id", Usage: "business id, e.g. AT-I-202403001", Required: true},
		},
		Action: func(c *cli.Context) error {
			kind, err := document.ParseKind(c.String("kind"))
			if err != nil {
				return err
			}
			return withApp(c, func(ctx context.Context, a *app.App) error {
				art, err := a.Publisher.Publish(ctx, kind, c.String("id"))
				if err != nil {
					return err
				}
				fmt.Fprintf(c.App.Writer, "%s (%d pages)\n", art.Path, art.Output.Layout.Pages)
				return nil
			})
		},
	}
}

func inspectCommand() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "print the page count of a rendered PDF",
		ArgsUsage: "PATH",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("inspect takes exactly one PATH", 2)
			}
			pages, err := render.Inspect(c.Args().First())
			if err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "%d\n", pages)
			return nil
		},
	}
}
