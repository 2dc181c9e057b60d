// Package dsl parses the line-oriented questionnaire DSL embedded in
// source-like files: item("title","subtitle",...) blocks followed by
// response("label", value,...) lines and a bare closing parenthesis.
package dsl

import (
	"bufio"
	"bytes"
	"context"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-formdoc/pkg/diag"
	"github.com/goliatone/go-formdoc/pkg/format"
	"github.com/goliatone/go-formdoc/pkg/model"
	"github.com/goliatone/go-formdoc/pkg/source"
)

const (
	itemMarker     = "item("
	responseMarker = "response("
)

// Parser implements format.Parser for the DSL format.
type Parser struct {
	extensions map[string]struct{}
}

var _ format.Parser = (*Parser)(nil)

// New constructs a Parser. Extensions default to ".java" when none are given;
// the DSL historically lives inside Java-like source files.
func New(extensions ...string) *Parser {
	if len(extensions) == 0 {
		extensions = []string{".java"}
	}
	exts := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		exts[strings.ToLower(ext)] = struct{}{}
	}
	return &Parser{extensions: exts}
}

// Name identifies the parser in registries and diagnostics.
func (p *Parser) Name() string {
	return "dsl"
}

// Detect matches sources by file extension.
func (p *Parser) Detect(src source.Source, _ []byte) bool {
	if src == nil {
		return false
	}
	_, ok := p.extensions[strings.ToLower(filepath.Ext(src.Location()))]
	return ok
}

// record is one raw multi-line item block, tracked with the line number where
// it opened so malformed records can name their position.
type record struct {
	lines  []string
	lineNo int
}

// Parse runs the two passes described by the format: segmentation into raw
// item records, then per-record field extraction. A file without any
// well-formed blocks yields an empty Questionnaire, not an error.
func (p *Parser) Parse(ctx context.Context, doc source.Document) (*model.Questionnaire, []diag.Diagnostic, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	records, err := segment(doc.Raw(), doc.Location())
	if err != nil {
		return nil, nil, err
	}

	questionnaire := model.NewQuestionnaire("")
	for _, rec := range records {
		question, err := parseRecord(rec, doc.Location())
		if err != nil {
			return nil, nil, err
		}
		questionnaire.AddQuestion(question)
	}
	return questionnaire, nil, nil
}

// segment scans lines and accumulates raw records: an opening line starting
// with "item(" through a line that is exactly ")" or "),". Lines outside any
// record are discarded, as is a trailing record that never closes. A response
// line with no open record has no question to attach to and aborts the file.
func segment(raw []byte, location string) ([]record, error) {
	var records []record
	var current *record

	scanner := bufio.NewScanner(bytes.NewReader(raw))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(trimmed, itemMarker):
			current = &record{lines: []string{line}, lineNo: lineNo}
		case trimmed == ")" || trimmed == "),":
			if current != nil {
				current.lines = append(current.lines, line)
				records = append(records, *current)
				current = nil
			}
		case current != nil:
			current.lines = append(current.lines, line)
		case strings.HasPrefix(trimmed, responseMarker):
			return nil, format.OrphanResponseError(location, lineNo)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, format.WrapParseError(err, location)
	}
	return records, nil
}

// parseRecord extracts the single question a record describes. After the call
// marker is stripped, the item line carries positional arguments: the first
// field is the title, the second the subtitle. Each response line appends one
// option.
func parseRecord(rec record, location string) (*model.Question, error) {
	var question *model.Question

	for offset, line := range rec.lines {
		line = strings.TrimSpace(line)
		lineNo := rec.lineNo + offset

		switch {
		case strings.HasPrefix(line, itemMarker):
			body := strings.ReplaceAll(strings.TrimPrefix(line, itemMarker), ")", "")
			fields := strings.Split(body, ",")
			if len(fields) < 2 {
				return nil, format.MalformedRecordError(location,
					"item line with fewer than two comma-separated fields")
			}
			title := stripQuotes(strings.TrimSpace(fields[0]))
			subtitle := stripQuotes(strings.TrimSpace(fields[1]))
			question = model.NewQuestion(title, subtitle)
		case strings.HasPrefix(line, responseMarker):
			if question == nil {
				return nil, format.OrphanResponseError(location, lineNo)
			}
			body := strings.ReplaceAll(strings.TrimPrefix(line, responseMarker), ")", "")
			fields := strings.Split(body, ",")
			if len(fields) < 2 {
				return nil, format.MalformedRecordError(location,
					"response line with fewer than two comma-separated fields")
			}
			label := stripQuotes(strings.TrimSpace(fields[0]))
			value := strings.TrimSpace(fields[1])
			question.AddOption(label, value)
		}
	}

	return question, nil
}

func stripQuotes(s string) string {
	return strings.ReplaceAll(s, `"`, "")
}
