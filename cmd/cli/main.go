package main

import (
	"context"
	"fmt"
	"os"

	"github.com/edu-tools/cohort-atlas/pkg/runtime/terminal"
	"github.com/edu-tools/cohort-atlas/pkg/services/report"
	"github.com/edu-tools/cohort-atlas/pkg/store/postgres"
)

func main() {
	cli := terminal.NewCLI(terminal.Options{
		Factory: composerFactory,
		Output:  os.Stdout,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func composerFactory(_ context.Context, profilePath string) (*report.Composer, func(), error) {
	cfg, err := postgres.LoadConfig(profilePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load profile %s: %w", profilePath, err)
	}

	db, err := postgres.NewDB(cfg)
	if err != nil {
		return nil, nil, err
	}

	store, err := postgres.NewStore(db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	cleanup := func() { _ = db.Close() }
	return report.NewComposer(store), cleanup, nil
}
