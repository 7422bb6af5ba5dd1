package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/edu-tools/cohort-atlas/pkg/server"
	"github.com/edu-tools/cohort-atlas/pkg/services/config"
	"github.com/edu-tools/cohort-atlas/pkg/services/report"
	"github.com/edu-tools/cohort-atlas/pkg/store/postgres"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	registryPath string
	profileName  string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Cohort Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&registryPath, "registry", "r", ".cohortatlascfg",
		"Path to the ini profile registry")
	rootCmd.Flags().StringVarP(&profileName, "profile", "p", "default",
		"Profile to serve reports from")

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
	ctx := logger.WithContext(cmd.Context())

	registry, err := config.NewRegistry(registryPath)
	if err != nil {
		return fmt.Errorf("failed to load profile registry: %w", err)
	}

	profiles, err := registry.GetProfiles(ctx)
	if err != nil {
		return fmt.Errorf("failed to list profiles: %w", err)
	}
	logger.Info().Msgf("Registry `%s` loaded with %d profile(s).", registryPath, len(profiles))

	cfg, err := registry.GetConfig(ctx, profileName)
	if err != nil {
		return fmt.Errorf("failed to resolve profile %q: %w", profileName, err)
	}

	db, err := postgres.NewDB(cfg)
	if err != nil {
		return fmt.Errorf("failed to open data source: %w", err)
	}
	defer db.Close()

	store, err := postgres.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")

	if host == "" || port == "" {
		logger.Error().Msgf("Missing server configuration from .env file")
		os.Exit(1)
	}

	api := server.NewWebAPI(logger, server.Config{
		Addr:            net.JoinHostPort(host, port),
		ShutdownTimeout: 10 * time.Second,
		Dependencies: server.Dependencies{
			Composer: report.NewComposer(store),
		},
	})

	return api.Start()
}
