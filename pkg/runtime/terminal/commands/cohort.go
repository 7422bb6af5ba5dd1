package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	termrender "github.com/edu-tools/cohort-atlas/pkg/runtime/render/terminal"
	"github.com/spf13/cobra"
)

type CohortCmd struct {
	profilePath string
	outPath     string
	filters     filterFlags
	factory     ComposerFactory
	reporter    *termrender.Reporter
}

func NewCohortCmd(factory ComposerFactory, output io.Writer) *cobra.Command {
	cc := &CohortCmd{factory: factory, reporter: termrender.NewReporter(output)}
	cmd := &cobra.Command{
		Use:   "cohort",
		Short: "Generate a cohort analytics report",
		RunE:  cc.run,
	}

	cmd.Flags().StringVar(&cc.profilePath, "profile", "", "Path to the data-source profile")
	cmd.Flags().StringVar(&cc.outPath, "out", "", "Write the report as HTML to this file instead of stdout")
	cmd.Flags().StringVar(&cc.filters.school, "school", "", "School id to report on")
	cmd.Flags().StringVar(&cc.filters.grade, "grade", "", "Grade to filter by")
	cmd.Flags().StringVar(&cc.filters.course, "course", "", "Course id to filter by")
	cmd.Flags().StringVar(&cc.filters.competency, "competency", "", "Competency id to filter by")
	cmd.Flags().StringVar(&cc.filters.from, "from", "", "Start date (dd-mm-yyyy)")
	cmd.Flags().StringVar(&cc.filters.to, "to", "", "End date (dd-mm-yyyy)")

	_ = cmd.MarkFlagRequired("profile")
	_ = cmd.MarkFlagRequired("school")

	return cmd
}

func (cc *CohortCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	filter, err := cc.filters.toFilter()
	if err != nil {
		return err
	}

	composer, cleanup, err := cc.factory(ctx, cc.profilePath)
	if err != nil {
		return fmt.Errorf("failed to set up data source: %w", err)
	}
	defer cleanup()

	doc, err := composer.ComposeCohort(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to compose cohort report: %w", err)
	}

	return deliver(doc, cc.outPath, cc.reporter)
}
