// Package render holds the rendering collaborators a composed
// ReportDocument is handed to. The core never depends on a concrete
// renderer; anything implementing Renderer can consume a document.
package render

import "github.com/edu-tools/cohort-atlas/pkg/models/domain"

// Renderer turns a report document into output on some medium.
type Renderer interface {
	Handle(doc *domain.ReportDocument) error
}
