package orchestrator

import (
	"github.com/goliatone/go-formdoc/pkg/format"
	"github.com/goliatone/go-formdoc/pkg/render"
	"github.com/goliatone/go-formdoc/pkg/source"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom document loader.
func WithLoader(loader source.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithLoaderOptions rebuilds the default loader with the supplied options.
// Ignored when WithLoader supplied a loader directly.
func WithLoaderOptions(options ...source.LoaderOption) Option {
	return func(o *Orchestrator) {
		o.loaderOptions = source.NewLoaderOptions(options...)
		o.loaderOptionsSet = true
	}
}

// WithParsers replaces the default format parsers. Dispatch order follows the
// slice order; the first parser whose Detect accepts a source wins.
func WithParsers(parsers ...format.Parser) Option {
	return func(o *Orchestrator) {
		o.parsers = parsers
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit renderer name.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithLogger injects the logger used for per-file failures and diagnostics in
// batch mode. A nil logger silences the orchestrator.
func WithLogger(logger Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}
