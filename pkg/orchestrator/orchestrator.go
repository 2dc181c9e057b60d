// Package orchestrator coordinates the full pipeline from raw questionnaire
// sources to rendered text: loading, format dispatch by file extension,
// parsing, process-type resolution, and rendering. It applies sensible
// defaults (markdown renderer, file loader, both built-in parsers) while
// remaining open to dependency injection.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	goerrors "github.com/goliatone/go-errors"

	internaldsl "github.com/goliatone/go-formdoc/internal/dsl"
	internalloader "github.com/goliatone/go-formdoc/internal/loader"
	internalprocess "github.com/goliatone/go-formdoc/internal/process"
	internalstructured "github.com/goliatone/go-formdoc/internal/structured"
	"github.com/goliatone/go-formdoc/pkg/diag"
	"github.com/goliatone/go-formdoc/pkg/format"
	"github.com/goliatone/go-formdoc/pkg/render"
	"github.com/goliatone/go-formdoc/pkg/renderers/markdown"
	"github.com/goliatone/go-formdoc/pkg/source"
)

const defaultRendererName = "markdown"

// Orchestrator wires the loader, parsers, and renderer registry.
type Orchestrator struct {
	loader           source.Loader
	loaderOptions    source.LoaderOptions
	loaderOptionsSet bool
	parsers          []format.Parser
	structured       *internalstructured.Parser
	registry         *render.Registry
	defaultRenderer  string
	logger           Logger
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations so callers
// can start with a single constructor call.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

func (o *Orchestrator) applyDefaults() {
	if o.loader == nil {
		if o.loaderOptionsSet {
			o.loader = internalloader.New(o.loaderOptions)
		} else {
			o.loader = internalloader.New(source.LoaderOptions{})
		}
	}
	o.structured = internalstructured.New()
	if len(o.parsers) == 0 {
		o.parsers = []format.Parser{o.structured, internaldsl.New()}
	} else {
		for _, parser := range o.parsers {
			if sp, ok := parser.(*internalstructured.Parser); ok {
				o.structured = sp
			}
		}
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		o.registry.MustRegister(markdown.New())
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
	if o.logger == nil {
		o.logger = noopLogger{}
	}
}

// Result is the outcome of a single conversion.
type Result struct {
	Output      []byte
	ContentType string
	Diagnostics []diag.Diagnostic
}

// FileResult reports one file of a batch conversion.
type FileResult struct {
	Input       string
	Output      string
	Diagnostics []diag.Diagnostic
	Err         error
}

// ConvertFile loads, parses, and renders a single questionnaire source.
// Malformed sources propagate to the caller.
func (o *Orchestrator) ConvertFile(ctx context.Context, src source.Source, rendererName string) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("orchestrator: context is required")
	}
	doc, err := o.loader.Load(ctx, src)
	if err != nil {
		return Result{}, fmt.Errorf("orchestrator: load %q: %w", src.Location(), err)
	}
	return o.ConvertDocument(ctx, doc, rendererName)
}

// ConvertDocument parses and renders an already-loaded document.
func (o *Orchestrator) ConvertDocument(ctx context.Context, doc source.Document, rendererName string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	parser, err := o.detect(doc)
	if err != nil {
		return Result{}, err
	}

	questionnaire, diags, err := parser.Parse(ctx, doc)
	if err != nil {
		return Result{Diagnostics: diags}, err
	}

	renderer, err := o.rendererFor(rendererName)
	if err != nil {
		return Result{Diagnostics: diags}, err
	}

	output, err := renderer.RenderQuestionnaire(*questionnaire)
	if err != nil {
		return Result{Diagnostics: diags}, fmt.Errorf("orchestrator: render: %w", err)
	}

	return Result{
		Output:      output,
		ContentType: renderer.ContentType(),
		Diagnostics: diags,
	}, nil
}

// ConvertDir converts every regular file in inDir that matches a registered
// format into a same-named .md file in outDir. One file's failure does not
// stop the remaining files; failures are logged and reported per file.
func (o *Orchestrator) ConvertDir(ctx context.Context, inDir, outDir, rendererName string) ([]FileResult, error) {
	entries, err := os.ReadDir(inDir)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryCommand, fmt.Sprintf("read input directory %q", inDir)).
			WithTextCode("FORMDOC_DIR_READ_FAILED")
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryCommand, fmt.Sprintf("create output directory %q", outDir)).
			WithTextCode("FORMDOC_DIR_CREATE_FAILED")
	}

	var results []FileResult
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		if entry.IsDir() {
			continue
		}

		inPath := filepath.Join(inDir, entry.Name())
		src := source.FromFile(inPath)
		if !o.detectable(src) {
			continue
		}

		outPath := filepath.Join(outDir, outputName(entry.Name()))
		result := FileResult{Input: inPath, Output: outPath}

		converted, err := o.ConvertFile(ctx, src, rendererName)
		result.Diagnostics = converted.Diagnostics
		o.logDiagnostics(inPath, converted.Diagnostics)

		if err != nil {
			result.Err = err
			o.logger.Error("conversion failed", "file", inPath, "error", err)
			results = append(results, result)
			continue
		}

		if err := os.WriteFile(outPath, converted.Output, 0o644); err != nil {
			result.Err = fmt.Errorf("orchestrator: write %q: %w", outPath, err)
			o.logger.Error("write failed", "file", outPath, "error", err)
			results = append(results, result)
			continue
		}

		o.logger.Info("converted", "input", inPath, "output", outPath)
		results = append(results, result)
	}
	return results, nil
}

// ResolveProcessType parses a process document, resolves the selector, and
// renders the matching process type. The boolean reports whether the selector
// matched any process type; a false return is not an error.
func (o *Orchestrator) ResolveProcessType(ctx context.Context, src source.Source, selector, rendererName string) (Result, bool, error) {
	proc, err := o.loadProcess(ctx, src)
	if err != nil {
		return Result{}, false, err
	}

	resolver := internalprocess.NewResolver(o.loader, o.structured)
	processType, diags, ok, err := resolver.ProcessType(ctx, proc, selector)
	if err != nil || !ok {
		return Result{Diagnostics: diags}, ok, err
	}

	renderer, err := o.rendererFor(rendererName)
	if err != nil {
		return Result{Diagnostics: diags}, true, err
	}

	output, err := renderer.RenderProcessType(*processType)
	if err != nil {
		return Result{Diagnostics: diags}, true, fmt.Errorf("orchestrator: render: %w", err)
	}

	return Result{
		Output:      output,
		ContentType: renderer.ContentType(),
		Diagnostics: diags,
	}, true, nil
}

// ProcessTypeValues enumerates the selector values available in a process
// document, in document order. The CLI feeds these into its selection prompt.
func (o *Orchestrator) ProcessTypeValues(ctx context.Context, src source.Source) ([]string, error) {
	proc, err := o.loadProcess(ctx, src)
	if err != nil {
		return nil, err
	}
	return proc.TypeValues(), nil
}

// Renderers lists the registered renderer names.
func (o *Orchestrator) Renderers() []string {
	return o.registry.List()
}

// Detectable reports whether any registered parser accepts the source. Batch
// mode uses this to skip unrelated files without error.
func (o *Orchestrator) Detectable(src source.Source) bool {
	return o.detectable(src)
}

func (o *Orchestrator) loadProcess(ctx context.Context, src source.Source) (*internalprocess.Process, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	doc, err := o.loader.Load(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: load %q: %w", src.Location(), err)
	}
	return internalprocess.Parse(doc)
}

func (o *Orchestrator) detect(doc source.Document) (format.Parser, error) {
	raw := doc.Raw()
	for _, parser := range o.parsers {
		if parser.Detect(doc.Source(), raw) {
			return parser, nil
		}
	}
	return nil, fmt.Errorf("orchestrator: no parser for %q", doc.Location())
}

func (o *Orchestrator) detectable(src source.Source) bool {
	for _, parser := range o.parsers {
		if parser.Detect(src, nil) {
			return true
		}
	}
	return false
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if name == "" {
		name = o.defaultRenderer
	}
	return o.registry.Get(name)
}

func (o *Orchestrator) logDiagnostics(location string, diags []diag.Diagnostic) {
	for _, d := range diags {
		o.logger.Warn("parse diagnostic", "file", location, "code", string(d.Code), "detail", d.Message)
	}
}

func outputName(name string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + ".md"
}
