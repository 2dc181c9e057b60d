// Package formdoc converts heterogeneous survey and questionnaire definitions
// into a uniform document model rendered as hierarchical plain text. Two
// ingestion formats are supported: an XML structured tree and a line-oriented
// DSL embedded in source-like files. The top-level helpers here wrap the
// orchestrator for callers that just want text out of a path or string.
package formdoc

import (
	"context"

	internaldsl "github.com/goliatone/go-formdoc/internal/dsl"
	internalloader "github.com/goliatone/go-formdoc/internal/loader"
	internalstructured "github.com/goliatone/go-formdoc/internal/structured"
	"github.com/goliatone/go-formdoc/pkg/format"
	"github.com/goliatone/go-formdoc/pkg/orchestrator"
	"github.com/goliatone/go-formdoc/pkg/source"
)

// Result aliases the orchestrator result for convenience.
type Result = orchestrator.Result

// FileResult aliases the per-file batch result.
type FileResult = orchestrator.FileResult

// Option aliases orchestrator options so callers can configure the pipeline
// through the root package.
type Option = orchestrator.Option

// New constructs an orchestrator with the built-in loader, parsers, and
// markdown renderer unless options override them.
func New(options ...Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// NewLoader constructs a document loader using the internal implementation
// while keeping the concrete type hidden from consumers.
func NewLoader(options ...source.LoaderOption) source.Loader {
	return internalloader.New(source.NewLoaderOptions(options...))
}

// NewStructuredParser constructs the XML tree parser. Extensions default to
// ".xml" when none are given.
func NewStructuredParser(extensions ...string) format.Parser {
	return internalstructured.New(extensions...)
}

// NewDSLParser constructs the line DSL parser. Extensions default to ".java"
// when none are given.
func NewDSLParser(extensions ...string) format.Parser {
	return internaldsl.New(extensions...)
}

// ConvertFile loads, parses, and renders a single questionnaire file. It is
// the simplest entry point for callers that just want text output.
func ConvertFile(ctx context.Context, path string, options ...Option) (Result, error) {
	gen := orchestrator.New(options...)
	return gen.ConvertFile(ctx, source.FromFile(path), "")
}

// ConvertString parses and renders questionnaire content held in memory. The
// name determines format dispatch, so it must carry a recognised extension.
func ConvertString(ctx context.Context, name, content string, options ...Option) (Result, error) {
	doc, err := source.NewDocument(source.FromFS(name), []byte(content))
	if err != nil {
		return Result{}, err
	}
	gen := orchestrator.New(options...)
	return gen.ConvertDocument(ctx, doc, "")
}

// ResolveProcessType resolves a selector against a process document and
// renders the matching process type. The boolean reports whether the selector
// matched; absence is not an error.
func ResolveProcessType(ctx context.Context, path, selector string, options ...Option) (Result, bool, error) {
	gen := orchestrator.New(options...)
	return gen.ResolveProcessType(ctx, source.FromFile(path), selector, "")
}
