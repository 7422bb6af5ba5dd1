package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/edu-tools/cohort-atlas/pkg/models/domain"
	htmlrender "github.com/edu-tools/cohort-atlas/pkg/runtime/render/html"
	termrender "github.com/edu-tools/cohort-atlas/pkg/runtime/render/terminal"
	"github.com/edu-tools/cohort-atlas/pkg/services/report"
)

const dateFlagLayout = "02-01-2006"

// ComposerFactory builds a report composer from a data-source profile
// path, plus a cleanup releasing its connections.
type ComposerFactory func(ctx context.Context, profilePath string) (*report.Composer, func(), error)

// filterFlags are the cohort-selection flags shared by the report commands.
type filterFlags struct {
	school     string
	grade      string
	course     string
	competency string
	from       string
	to         string
}

func (f *filterFlags) toFilter() (domain.PopulationFilter, error) {
	filter := domain.PopulationFilter{
		SchoolID:     f.school,
		Grade:        f.grade,
		CourseID:     f.course,
		CompetencyID: f.competency,
	}
	var err error
	if f.from != "" {
		if filter.From, err = time.Parse(dateFlagLayout, f.from); err != nil {
			return filter, fmt.Errorf("invalid --from date, expected %s: %w", dateFlagLayout, err)
		}
	}
	if f.to != "" {
		if filter.To, err = time.Parse(dateFlagLayout, f.to); err != nil {
			return filter, fmt.Errorf("invalid --to date, expected %s: %w", dateFlagLayout, err)
		}
	}
	return filter, nil
}

// deliver writes the document either to stdout as text or, when an
// output path is set, to a file as HTML.
func deliver(doc *domain.ReportDocument, outPath string, fallback *termrender.Reporter) error {
	if outPath == "" {
		return fallback.Handle(doc)
	}

	file, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer file.Close()

	return htmlrender.NewReporter(file).Handle(doc)
}
