package main

import (
	"context"
	"finplan/api"
	"finplan/cmd"
	"finplan/internal/config"
	"finplan/internal/logger"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// local smoke-test cli: runs the same services as the api against the
// live feed, or canned data with FINPLAN_ENV=test

var (
	handler *api.ApiHandler
	log     *zap.SugaredLogger
)

var rootCmd = &cobra.Command{
	Use:   "finplan",
	Short: "Financial planning and fund recommendations from the command line",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initialize()
	},
	SilenceUsage: true,
}

func initialize() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	handler, err = cmd.InitializeDependencies(*cfg)
	return err
}

func commandContext() context.Context {
	return logger.WithContext(context.Background(), log)
}

func main() {
	log = logger.New()
	rootCmd.AddCommand(universeCmd, recommendCmd, planCmd, reportCmd, forecastCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
