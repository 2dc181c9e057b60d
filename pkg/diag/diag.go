// Package diag carries the non-fatal warnings parsers emit for unsupported or
// unknown variant values. Diagnostics travel with each parse result instead of
// being written to a shared error stream, so callers can log, inspect, or
// suppress them without global state.
package diag

import "fmt"

// Code identifies the class of a diagnostic.
type Code string

const (
	// CodeUnsupportedResponseType flags a Response whose Type attribute is not
	// one of the handled variants.
	CodeUnsupportedResponseType Code = "unsupported-response-type"

	// CodeUnknownQuestionnaireType flags a questionnaire reference whose type
	// attribute is not recognised; a title-only placeholder is produced.
	CodeUnknownQuestionnaireType Code = "unknown-questionnaire-type"

	// CodeUnresolvedQuestionnaire flags a questionnaire reference that could
	// not be resolved (missing attribute, file not found, nested parse
	// failure); the slot becomes nil.
	CodeUnresolvedQuestionnaire Code = "unresolved-questionnaire"
)

// Diagnostic is a single structured warning.
type Diagnostic struct {
	Code     Code
	Message  string
	Location string
}

// String renders the diagnostic for logs and CLI output.
func (d Diagnostic) String() string {
	if d.Location == "" {
		return fmt.Sprintf("%s: %s", d.Code, d.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", d.Code, d.Message, d.Location)
}

// Collector accumulates diagnostics during a single parse pass.
type Collector struct {
	items []Diagnostic
}

// Add records a diagnostic.
func (c *Collector) Add(code Code, location, format string, args ...any) {
	c.items = append(c.items, Diagnostic{
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Location: location,
	})
}

// Merge appends diagnostics collected elsewhere, preserving order.
func (c *Collector) Merge(items []Diagnostic) {
	c.items = append(c.items, items...)
}

// Items returns the collected diagnostics in emission order.
func (c *Collector) Items() []Diagnostic {
	return c.items
}

// Len reports how many diagnostics were collected.
func (c *Collector) Len() int {
	return len(c.items)
}
