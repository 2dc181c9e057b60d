// Package markdown renders the questionnaire model as hierarchical plain
// text: process type as a level-1 heading, questionnaire level-2, question
// title level-3, subtitle level-4, and options as a 1-based numbered list.
package markdown

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formdoc/pkg/model"
	"github.com/goliatone/go-formdoc/pkg/render"
)

// Renderer implements render.Renderer producing Markdown-style text.
type Renderer struct{}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the markdown renderer.
func New() *Renderer {
	return &Renderer{}
}

// Name identifies the renderer in the registry.
func (r *Renderer) Name() string {
	return "markdown"
}

// ContentType reports the MIME type of the rendered output.
func (r *Renderer) ContentType() string {
	return "text/markdown"
}

// RenderQuestionnaire renders the heading plus each question. Questions whose
// full rendered text exactly matches an earlier one are suppressed; the first
// occurrence keeps its position.
func (r *Renderer) RenderQuestionnaire(questionnaire model.Questionnaire) ([]byte, error) {
	return []byte(renderQuestionnaire(questionnaire)), nil
}

// RenderProcessType renders the level-1 heading followed by each resolved
// questionnaire. Nil slots record failed references and are skipped.
func (r *Renderer) RenderProcessType(processType model.ProcessType) ([]byte, error) {
	var parts []string
	for _, questionnaire := range processType.Questionnaires {
		if questionnaire == nil {
			continue
		}
		parts = append(parts, renderQuestionnaire(*questionnaire))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", processType.Title)
	b.WriteString(strings.Join(parts, "\n"))
	return []byte(b.String()), nil
}

func renderQuestionnaire(questionnaire model.Questionnaire) string {
	var b strings.Builder
	if questionnaire.Title != "" {
		fmt.Fprintf(&b, "## %s\n\n", questionnaire.Title)
	}

	seen := make(map[string]struct{}, len(questionnaire.Questions))
	var rendered []string
	for _, question := range questionnaire.Questions {
		text := renderQuestion(question)
		if _, dup := seen[text]; dup {
			continue
		}
		seen[text] = struct{}{}
		rendered = append(rendered, text)
	}

	b.WriteString(strings.Join(rendered, "\n"))
	return b.String()
}

func renderQuestion(question model.Question) string {
	var b strings.Builder
	if question.Title != "" {
		fmt.Fprintf(&b, "\n### %s\n\n", question.Title)
	}
	if question.Subtitle != "" {
		fmt.Fprintf(&b, "\n#### %s\n\n", question.Subtitle)
	}
	for i, option := range question.Options {
		fmt.Fprintf(&b, "%d. %s\n", i+1, option.Label)
	}
	return b.String()
}
