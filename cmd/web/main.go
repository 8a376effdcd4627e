package main

import (
	"fmt"
	"os"

	"github.com/de-tools/billing-atlas/pkg/server"
	"github.com/de-tools/billing-atlas/pkg/services/aws_ce"
	"github.com/de-tools/billing-atlas/pkg/services/aws_sts"
	"github.com/de-tools/billing-atlas/pkg/services/config"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "web",
		Short: "Start the AWS billing dashboard API server",
		RunE:  runServer,
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	settings, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	logger.Info().
		Strs("allowed_origins", settings.AllowedOrigins).
		Str("default_region", settings.DefaultRegion).
		Msg("settings loaded")

	webAPI := server.NewWebAPI(logger, server.Config{
		Addr:            settings.Addr,
		AllowedOrigins:  settings.AllowedOrigins,
		APIBasePath:     settings.APIBasePath,
		ShutdownTimeout: settings.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Costs:    aws_ce.NewExplorer(nil),
			Identity: aws_sts.NewService(nil),
		},
	})

	return webAPI.Start()
}
