package config

import (
	"context"
	"fmt"

	"github.com/edu-tools/cohort-atlas/pkg/store/postgres"
	"gopkg.in/ini.v1"
)

// Registry resolves named data-source profiles from an ini file, one
// section per school database.
type Registry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetConfig(ctx context.Context, profile string) (*postgres.Config, error)
}

type cfgRegistry struct {
	cfg *ini.File
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	return &cfgRegistry{cfg: cfg}, nil
}

func (cr *cfgRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

func (cr *cfgRegistry) GetConfig(_ context.Context, profile string) (*postgres.Config, error) {
	section := cr.cfg.Section(profile)
	if section == nil || len(section.Keys()) == 0 {
		return nil, fmt.Errorf("profile %s not found", profile)
	}

	port, err := section.Key("port").Int()
	if err != nil {
		port = 5432
	}
	sslMode := section.Key("sslmode").String()
	if sslMode == "" {
		sslMode = "disable"
	}

	return &postgres.Config{
		Host:     section.Key("host").String(),
		Port:     port,
		User:     section.Key("user").String(),
		Password: section.Key("password").String(),
		Database: section.Key("database").String(),
		SSLMode:  sslMode,
	}, nil
}
