package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Black-And-White-Club/chainchaser/app"
	"github.com/Black-And-White-Club/chainchaser/app/database"
	"github.com/Black-And-White-Club/chainchaser/app/modules/user"
	"github.com/Black-And-White-Club/chainchaser/app/shared/observability"
	"github.com/Black-And-White-Club/chainchaser/config"
	"github.com/urfave/cli/v2"
)

func main() {
	cliApp := &cli.App{
		Name:  "chainchaser",
		Usage: "disc golf course mapping, round tracking and reviews API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config.yaml",
				Usage:   "path to the configuration file",
				EnvVars: []string{"CONFIG_PATH"},
			},
		},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API",
				Action: serve,
			},
			{
				Name:      "promote",
				Usage:     "grant an account the developer role",
				ArgsUsage: "<username>",
				Action:    promote,
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func serve(c *cli.Context) error {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.NewApp(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize app: %w", err)
	}

	runErr := application.Run(ctx)
	if err := application.Close(context.Background()); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	return runErr
}

func promote(c *cli.Context) error {
	username := c.Args().First()
	if username == "" {
		return cli.Exit("usage: chainchaser promote <username>", 2)
	}

	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	obs := observability.Init(cfg.Observability)
	db, err := database.Open(c.Context, cfg.Database, obs.Logger)
	if err != nil {
		return err
	}
	defer db.Close()

	userModule, err := user.NewModule(c.Context, cfg, obs, nil, db)
	if err != nil {
		return err
	}

	account, err := userModule.Service.Promote(c.Context, username)
	if err != nil {
		return fmt.Errorf("failed to promote %s: %w", username, err)
	}
	fmt.Printf("%s is now a %s\n", account.Username, account.Role)
	return nil
}
