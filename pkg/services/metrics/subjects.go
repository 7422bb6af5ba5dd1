// Package metrics turns raw score records into per-subject and
// per-competency analytics: bucket aggregation, trend classification
// and cohort ranking.
package metrics

import "strings"

// Subject is the coarse keyword-derived skill-area label. Competencies
// are the fine-grained entities underneath it.
type Subject string

const (
	SubjectMathematics Subject = "MATHEMATICS"
	SubjectLanguage    Subject = "LANGUAGE"
	SubjectScience     Subject = "SCIENCE"
	SubjectHistory     Subject = "HISTORY"
	SubjectEnglish     Subject = "ENGLISH"
)

// subjectKeywords maps each canonical subject to the display-name
// fragments that identify it. Adding a subject or synonym is a
// table edit, not an aggregation change.
var subjectKeywords = []struct {
	Subject  Subject
	Keywords []string
}{
	{SubjectMathematics, []string{"matemática", "matemáticas", "matematica", "matematicas"}},
	{SubjectLanguage, []string{"lenguaje", "lengua", "comunicación", "comunicacion", "língua", "lingua"}},
	{SubjectScience, []string{"ciencia", "ciencias", "ciências", "naturales"}},
	{SubjectHistory, []string{"historia", "história", "sociales"}},
	{SubjectEnglish, []string{"inglés", "ingles", "english"}},
}

// ClassifySubject maps a competency display name to its canonical
// subject. The match is a case-insensitive contains over the keyword
// table; names matching no subject report ok=false and are grouped by
// competency id only.
func ClassifySubject(competencyName string) (Subject, bool) {
	name := strings.ToLower(competencyName)
	for _, entry := range subjectKeywords {
		for _, kw := range entry.Keywords {
			if strings.Contains(name, kw) {
				return entry.Subject, true
			}
		}
	}
	return "", false
}

// Subjects lists the canonical subjects in table order.
func Subjects() []Subject {
	out := make([]Subject, 0, len(subjectKeywords))
	for _, entry := range subjectKeywords {
		out = append(out, entry.Subject)
	}
	return out
}
