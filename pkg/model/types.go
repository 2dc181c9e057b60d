package model

import "strings"

// Option is a single selectable answer: a human-readable label plus the raw
// value carried by the source document. Values are passed through untouched;
// scoring semantics are out of scope.
type Option struct {
	Label string
	Value string
}

// Question is the leaf entity of the document model: a title/subtitle pair
// and an ordered option list. A Question with no options is valid and renders
// as a bare heading. Empty strings mean the field is absent.
type Question struct {
	Title    string
	Subtitle string
	Options  []Option
}

// NewQuestion constructs a Question, trimming surrounding whitespace from the
// title the way every source format expects.
func NewQuestion(title, subtitle string) *Question {
	return &Question{
		Title:    strings.TrimSpace(title),
		Subtitle: subtitle,
	}
}

// AddOption appends one (label, value) pair. Insertion order is preserved and
// duplicates are allowed at this level.
func (q *Question) AddOption(label, value string) {
	q.Options = append(q.Options, Option{Label: label, Value: value})
}

// Questionnaire is a named (or anonymous) ordered collection of questions.
// Construction is append-only; instances are not mutated after their parser
// returns them.
type Questionnaire struct {
	Title     string
	Questions []Question
}

// NewQuestionnaire constructs an empty Questionnaire with an optional title.
func NewQuestionnaire(title string) *Questionnaire {
	return &Questionnaire{Title: title}
}

// AddQuestion appends a question, preserving insertion order. Nil questions
// are ignored so callers can append best-effort parse results directly.
func (qn *Questionnaire) AddQuestion(q *Question) {
	if q == nil {
		return
	}
	qn.Questions = append(qn.Questions, *q)
}

// ProcessType is a named aggregate of questionnaires selected once per run.
// A nil entry records a questionnaire reference that failed to resolve; it
// keeps its position but contributes nothing when rendered.
type ProcessType struct {
	Title          string
	Questionnaires []*Questionnaire
}
