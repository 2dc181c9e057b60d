// Package process resolves process documents: a root whose direct children
// are candidate process types carrying a value attribute, each aggregating
// questionnaire references. The historical element spelling "Questionaire" is
// an external contract and is matched exactly.
package process

import (
	"github.com/goliatone/go-formdoc/internal/xmltree"
	"github.com/goliatone/go-formdoc/pkg/format"
	"github.com/goliatone/go-formdoc/pkg/source"
)

// Process holds a parsed process document and its origin, which anchors
// sibling questionnaire references.
type Process struct {
	root *xmltree.Node
	src  source.Source
}

// Parse decodes a process document.
func Parse(doc source.Document) (*Process, error) {
	root, err := xmltree.Parse(doc.Raw())
	if err != nil {
		return nil, format.WrapParseError(err, doc.Location())
	}
	return &Process{root: root, src: doc.Source()}, nil
}

// TypeValues lists the value attributes of every candidate process type in
// document order. Children without a value attribute cannot be selected and
// are omitted.
func (p *Process) TypeValues() []string {
	var values []string
	for i := range p.root.Children {
		if value, ok := p.root.Children[i].Attr("value"); ok {
			values = append(values, value)
		}
	}
	return values
}

// find scans direct children of the root for the first whose value attribute
// equals selector. Absence is not an error; callers treat it as an unknown
// selector.
func (p *Process) find(selector string) (*xmltree.Node, bool) {
	for i := range p.root.Children {
		if value, ok := p.root.Children[i].Attr("value"); ok && value == selector {
			return &p.root.Children[i], true
		}
	}
	return nil, false
}
