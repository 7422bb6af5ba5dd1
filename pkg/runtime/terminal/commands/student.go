package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	termrender "github.com/edu-tools/cohort-atlas/pkg/runtime/render/terminal"
	"github.com/spf13/cobra"
)

type StudentCmd struct {
	profilePath string
	studentID   string
	outPath     string
	filters     filterFlags
	factory     ComposerFactory
	reporter    *termrender.Reporter
}

func NewStudentCmd(factory ComposerFactory, output io.Writer) *cobra.Command {
	sc := &StudentCmd{factory: factory, reporter: termrender.NewReporter(output)}
	cmd := &cobra.Command{
		Use:   "student",
		Short: "Generate an individual student report",
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.profilePath, "profile", "", "Path to the data-source profile")
	cmd.Flags().StringVar(&sc.studentID, "id", "", "Student id to report on")
	cmd.Flags().StringVar(&sc.outPath, "out", "", "Write the report as HTML to this file instead of stdout")
	cmd.Flags().StringVar(&sc.filters.school, "school", "", "School id the student belongs to")
	cmd.Flags().StringVar(&sc.filters.grade, "grade", "", "Grade to filter by")
	cmd.Flags().StringVar(&sc.filters.course, "course", "", "Course id to filter by")
	cmd.Flags().StringVar(&sc.filters.competency, "competency", "", "Competency id to filter by")
	cmd.Flags().StringVar(&sc.filters.from, "from", "", "Start date (dd-mm-yyyy)")
	cmd.Flags().StringVar(&sc.filters.to, "to", "", "End date (dd-mm-yyyy)")

	_ = cmd.MarkFlagRequired("profile")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("school")

	return cmd
}

func (sc *StudentCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	filter, err := sc.filters.toFilter()
	if err != nil {
		return err
	}

	composer, cleanup, err := sc.factory(ctx, sc.profilePath)
	if err != nil {
		return fmt.Errorf("failed to set up data source: %w", err)
	}
	defer cleanup()

	doc, err := composer.ComposeStudent(ctx, sc.studentID, filter)
	if err != nil {
		return fmt.Errorf("failed to compose student report: %w", err)
	}

	return deliver(doc, sc.outPath, sc.reporter)
}
