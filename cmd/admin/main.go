package main

import (
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yigit/honorsociety/internal/pkg/logger"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logger.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "honorsociety-admin",
		Usage: "maintenance tasks for the honor society records service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "configs/config.yaml",
				Usage:   "path to the YAML configuration file",
				EnvVars: []string{"HONORSOCIETY_CONFIG"},
			},
		},
		Commands: []*cli.Command{
			migrateCommand(),
			seedCommand(),
			createOfficerCommand(),
			officerCommand(),
			cleanupTokensCommand(),
		},
	}
}
