package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/edu-tools/cohort-atlas/pkg/services/config"
	"github.com/spf13/cobra"
)

type ProfilesCmd struct {
	registryPath string
	output       io.Writer
}

func NewProfilesCmd(output io.Writer) *cobra.Command {
	pc := &ProfilesCmd{output: output}
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List data-source profiles from a registry file",
		RunE:  pc.run,
	}

	cmd.Flags().StringVar(&pc.registryPath, "registry", "", "Path to the ini profile registry")
	_ = cmd.MarkFlagRequired("registry")

	return cmd
}

func (pc *ProfilesCmd) run(cmd *cobra.Command, args []string) error {
	registry, err := config.NewRegistry(pc.registryPath)
	if err != nil {
		return fmt.Errorf("failed to load profile registry: %w", err)
	}

	profiles, err := registry.GetProfiles(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list profiles: %w", err)
	}
	if len(profiles) == 0 {
		fmt.Fprintln(pc.output, "No profiles found")
		return nil
	}

	fmt.Fprintf(pc.output, "Profiles:\n%s\n", strings.Join(profiles, "\n"))
	return nil
}
