// Package render defines the rendering contract and a registry keyed by
// renderer name, so the orchestrator can look renderers up by configuration.
package render

import "github.com/goliatone/go-formdoc/pkg/model"

// Renderer converts model entities into a byte representation. Rendering is
// pure and deterministic: identical input yields byte-identical output.
type Renderer interface {
	Name() string
	ContentType() string
	RenderQuestionnaire(questionnaire model.Questionnaire) ([]byte, error)
	RenderProcessType(processType model.ProcessType) ([]byte, error)
}
