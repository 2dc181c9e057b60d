// Package format defines the contract every ingestion format implements. The
// two concrete parsers (structured XML tree and line-oriented DSL) live under
// internal/ but satisfy this interface, so the orchestrator can dispatch on
// file extension without runtime type inspection.
package format

import (
	"context"

	"github.com/goliatone/go-formdoc/pkg/diag"
	"github.com/goliatone/go-formdoc/pkg/model"
	"github.com/goliatone/go-formdoc/pkg/source"
)

// Parser converts a raw document into the uniform questionnaire model.
// Diagnostics carry non-fatal warnings (unknown variants); the error return is
// reserved for malformed sources that abort the file.
type Parser interface {
	Name() string
	Detect(src source.Source, raw []byte) bool
	Parse(ctx context.Context, doc source.Document) (*model.Questionnaire, []diag.Diagnostic, error)
}
