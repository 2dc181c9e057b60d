// Package structured parses the XML tree questionnaire format: a root element
// with an optional Description attribute and an Items container whose Item
// descendants hold Description children and typed Response definitions.
package structured

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-formdoc/internal/xmltree"
	"github.com/goliatone/go-formdoc/pkg/diag"
	"github.com/goliatone/go-formdoc/pkg/format"
	"github.com/goliatone/go-formdoc/pkg/model"
	"github.com/goliatone/go-formdoc/pkg/source"
)

// Response type attribute variants handled by the parser.
const (
	typeSelectOne = "select1"
	typeSelect    = "select"
	typeRadio     = "radio"
	typeInput     = "input"
)

// Parser implements format.Parser for the structured tree format.
type Parser struct {
	extensions map[string]struct{}
}

var _ format.Parser = (*Parser)(nil)

// New constructs a Parser. Extensions default to ".xml" when none are given.
func New(extensions ...string) *Parser {
	if len(extensions) == 0 {
		extensions = []string{".xml"}
	}
	exts := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		exts[strings.ToLower(ext)] = struct{}{}
	}
	return &Parser{extensions: exts}
}

// Name identifies the parser in registries and diagnostics.
func (p *Parser) Name() string {
	return "structured"
}

// Detect matches sources by file extension.
func (p *Parser) Detect(src source.Source, _ []byte) bool {
	if src == nil {
		return false
	}
	_, ok := p.extensions[strings.ToLower(filepath.Ext(src.Location()))]
	return ok
}

// Parse converts the document into a Questionnaire. Malformed XML or a
// missing Items container is fatal; missing optional pieces degrade to absent
// fields.
func (p *Parser) Parse(ctx context.Context, doc source.Document) (*model.Questionnaire, []diag.Diagnostic, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	root, err := xmltree.Parse(doc.Raw())
	if err != nil {
		return nil, nil, format.WrapParseError(err, doc.Location())
	}
	return p.fromRoot(root, doc.Location())
}

func (p *Parser) fromRoot(root *xmltree.Node, location string) (*model.Questionnaire, []diag.Diagnostic, error) {
	title, _ := root.Attr("Description")
	questionnaire := model.NewQuestionnaire(title)

	items := root.Child("Items")
	if items == nil {
		err := errors.New("missing Items container")
		return nil, nil, format.WrapParseError(err, location)
	}

	var collector diag.Collector
	for _, item := range items.Descendants("Item") {
		if err := p.parseItem(item, questionnaire, &collector, location); err != nil {
			return nil, collector.Items(), err
		}
	}

	return questionnaire, collector.Items(), nil
}

// parseItem builds one Question from an Item element and appends it once per
// Response. An Item with two Responses therefore fans out into two entries
// sharing the same title, subtitle, and options; downstream rendering depends
// on this shape.
func (p *Parser) parseItem(item *xmltree.Node, questionnaire *model.Questionnaire, collector *diag.Collector, location string) error {
	var title, subtitle string
	descriptions := item.ChildrenNamed("Description")
	if len(descriptions) > 0 {
		title = descriptions[0].Text
	}
	if len(descriptions) > 1 {
		subtitle = descriptions[1].Text
	}
	question := model.NewQuestion(title, subtitle)

	responses := item.Child("Responses")
	if responses == nil {
		questionnaire.AddQuestion(question)
		return nil
	}

	// One entry per Response, all backed by the same accumulated question. An
	// empty Responses list therefore contributes no entries at all.
	responseNodes := responses.ChildrenNamed("Response")
	for _, response := range responseNodes {
		if err := p.parseResponse(response, question, collector, location); err != nil {
			return err
		}
	}
	for range responseNodes {
		questionnaire.AddQuestion(question)
	}
	return nil
}

func (p *Parser) parseResponse(response *xmltree.Node, question *model.Question, collector *diag.Collector, location string) error {
	responseType, _ := response.Attr("Type")
	switch responseType {
	case typeSelectOne, typeSelect:
		return p.parseSelect(response, question, location)
	case typeRadio:
		label, _ := response.Attr("Description")
		value := ""
		if score := response.Child("Score"); score != nil {
			value, _ = score.Attr("value")
		}
		question.AddOption(label, value)
	case typeInput:
		// Free-text responses carry no renderable options.
	default:
		collector.Add(diag.CodeUnsupportedResponseType, location,
			"unsupported response type %q", responseType)
	}
	return nil
}

func (p *Parser) parseSelect(response *xmltree.Node, question *model.Question, location string) error {
	for _, option := range response.Descendants("item") {
		label := option.Child("label")
		value := option.Child("value")
		if label == nil || value == nil {
			return format.OptionFieldsError(location, "select item missing label or value element")
		}
		if label.Text == "" || value.Text == "" {
			return format.OptionFieldsError(location,
				fmt.Sprintf("select item with empty label or value (label=%q)", label.Text))
		}
		question.AddOption(label.Text, value.Text)
	}
	return nil
}
