package process

import (
	"context"
	"path"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-formdoc/internal/structured"
	"github.com/goliatone/go-formdoc/internal/xmltree"
	"github.com/goliatone/go-formdoc/pkg/diag"
	"github.com/goliatone/go-formdoc/pkg/model"
	"github.com/goliatone/go-formdoc/pkg/source"
)

// questionnaireElement is the exact historical element name; see package doc.
const questionnaireElement = "Questionaire"

const typeLocal = "Local"

// Resolver eagerly constructs process types, loading Local questionnaire
// references through the injected loader and delegating their parsing to the
// structured format parser.
type Resolver struct {
	loader source.Loader
	parser *structured.Parser
}

// NewResolver wires a Resolver from its collaborators.
func NewResolver(loader source.Loader, parser *structured.Parser) *Resolver {
	return &Resolver{loader: loader, parser: parser}
}

// ProcessType resolves a selector against the process document. The boolean
// reports whether the selector matched; a false return is not an error. Each
// questionnaire reference that fails to resolve becomes a nil slot with a
// diagnostic rather than aborting its siblings.
func (r *Resolver) ProcessType(ctx context.Context, proc *Process, selector string) (*model.ProcessType, []diag.Diagnostic, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, false, err
	}

	node, ok := proc.find(selector)
	if !ok {
		return nil, nil, false, nil
	}

	processType := &model.ProcessType{Title: selector}
	var collector diag.Collector
	for _, child := range node.Descendants(questionnaireElement) {
		processType.Questionnaires = append(processType.Questionnaires,
			r.resolveQuestionnaire(ctx, proc, child, &collector))
	}
	return processType, collector.Items(), true, nil
}

// resolveQuestionnaire turns one Questionaire element into a parsed
// questionnaire, a title-only placeholder, or nil when resolution fails.
func (r *Resolver) resolveQuestionnaire(ctx context.Context, proc *Process, node *xmltree.Node, collector *diag.Collector) *model.Questionnaire {
	location := proc.location()

	qType, ok := node.Attr("type")
	if !ok {
		collector.Add(diag.CodeUnresolvedQuestionnaire, location,
			"questionnaire reference missing type attribute")
		return nil
	}

	if qType != typeLocal {
		collector.Add(diag.CodeUnknownQuestionnaireType, location,
			"unknown questionnaire type %q", qType)
		value, ok := node.Attr("value")
		if !ok {
			collector.Add(diag.CodeUnresolvedQuestionnaire, location,
				"questionnaire reference missing value attribute")
			return nil
		}
		return model.NewQuestionnaire(value)
	}

	name, ok := node.Attr("xml")
	if !ok {
		collector.Add(diag.CodeUnresolvedQuestionnaire, location,
			"local questionnaire reference missing xml attribute")
		return nil
	}

	ref := proc.sibling(name + ".xml")
	doc, err := r.loader.Load(ctx, ref)
	if err != nil {
		collector.Add(diag.CodeUnresolvedQuestionnaire, ref.Location(),
			"load questionnaire: %v", err)
		return nil
	}

	questionnaire, diags, err := r.parser.Parse(ctx, doc)
	if err != nil {
		collector.Add(diag.CodeUnresolvedQuestionnaire, ref.Location(),
			"parse questionnaire: %v", err)
		return nil
	}
	collector.Merge(diags)
	return questionnaire
}

func (p *Process) location() string {
	if p.src == nil {
		return ""
	}
	return p.src.Location()
}

// sibling builds a source referencing a file next to the process document,
// keeping the original source modality.
func (p *Process) sibling(name string) source.Source {
	if p.src == nil {
		return source.FromFile(name)
	}
	switch p.src.Kind() {
	case source.KindFS:
		return source.FromFS(path.Join(path.Dir(p.src.Location()), name))
	case source.KindURL:
		loc := p.src.Location()
		if idx := strings.LastIndex(loc, "/"); idx >= 0 {
			return source.FromURL(loc[:idx+1] + name)
		}
		return source.FromURL(name)
	default:
		return source.FromFile(filepath.Join(filepath.Dir(p.src.Location()), name))
	}
}
