package structured

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formdoc/pkg/diag"
	"github.com/goliatone/go-formdoc/pkg/format"
	"github.com/goliatone/go-formdoc/pkg/model"
	"github.com/goliatone/go-formdoc/pkg/source"
)

func parse(t *testing.T, raw string) (*model.Questionnaire, []diag.Diagnostic, error) {
	t.Helper()
	doc := source.MustNewDocument(source.FromFile("input.xml"), []byte(raw))
	return New().Parse(context.Background(), doc)
}

func TestParseSelectOneQuestion(t *testing.T) {
	t.Parallel()

	const raw = `<Form Description="Health">
  <Items>
    <Item>
      <Description>Do you smoke?</Description>
      <Description>Select one</Description>
      <Responses>
        <Response Type="select1">
          <item><label>Yes</label><value>1</value></item>
          <item><label>No</label><value>0</value></item>
        </Response>
      </Responses>
    </Item>
  </Items>
</Form>`

	questionnaire, diags, err := parse(t, raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}

	want := &model.Questionnaire{
		Title: "Health",
		Questions: []model.Question{{
			Title:    "Do you smoke?",
			Subtitle: "Select one",
			Options: []model.Option{
				{Label: "Yes", Value: "1"},
				{Label: "No", Value: "0"},
			},
		}},
	}
	if diff := cmp.Diff(want, questionnaire); diff != "" {
		t.Fatalf("questionnaire mismatch (-want +got):\n%s", diff)
	}
}

func TestItemWithTwoResponsesFansOut(t *testing.T) {
	t.Parallel()

	const raw = `<Form>
  <Items>
    <Item>
      <Description>Rate</Description>
      <Responses>
        <Response Type="select1">
          <item><label>Low</label><value>1</value></item>
        </Response>
        <Response Type="select">
          <item><label>High</label><value>2</value></item>
        </Response>
      </Responses>
    </Item>
  </Items>
</Form>`

	questionnaire, _, err := parse(t, raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if len(questionnaire.Questions) != 2 {
		t.Fatalf("questions = %d, want 2 (one entry per response)", len(questionnaire.Questions))
	}
	// Both entries share the same accumulated options.
	wantOptions := []model.Option{
		{Label: "Low", Value: "1"},
		{Label: "High", Value: "2"},
	}
	for i, question := range questionnaire.Questions {
		if diff := cmp.Diff(wantOptions, question.Options); diff != "" {
			t.Fatalf("question %d options mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestRadioResponseUsesDescriptionAndScore(t *testing.T) {
	t.Parallel()

	const raw = `<Form>
  <Items>
    <Item>
      <Description>Pain level</Description>
      <Responses>
        <Response Type="radio" Description="Severe">
          <Score value="10"/>
        </Response>
        <Response Type="radio" Description="None"/>
      </Responses>
    </Item>
  </Items>
</Form>`

	questionnaire, diags, err := parse(t, raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}

	wantOptions := []model.Option{
		{Label: "Severe", Value: "10"},
		{Label: "None", Value: ""},
	}
	if diff := cmp.Diff(wantOptions, questionnaire.Questions[0].Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestInputResponseContributesNothingSilently(t *testing.T) {
	t.Parallel()

	const raw = `<Form>
  <Items>
    <Item>
      <Description>Comments</Description>
      <Responses>
        <Response Type="input"/>
      </Responses>
    </Item>
  </Items>
</Form>`

	questionnaire, diags, err := parse(t, raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(diags) != 0 {
		t.Fatalf("input responses must not emit diagnostics, got %v", diags)
	}
	if len(questionnaire.Questions) != 1 {
		t.Fatalf("questions = %d, want 1", len(questionnaire.Questions))
	}
	if len(questionnaire.Questions[0].Options) != 0 {
		t.Fatalf("input response produced options: %v", questionnaire.Questions[0].Options)
	}
}

func TestUnsupportedResponseTypeEmitsDiagnostic(t *testing.T) {
	t.Parallel()

	const raw = `<Form>
  <Items>
    <Item>
      <Description>Q</Description>
      <Responses>
        <Response Type="slider"/>
      </Responses>
    </Item>
  </Items>
</Form>`

	_, diags, err := parse(t, raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(diags) != 1 {
		t.Fatalf("diagnostics = %d, want 1", len(diags))
	}
	if diags[0].Code != diag.CodeUnsupportedResponseType {
		t.Fatalf("diagnostic code = %q", diags[0].Code)
	}
}

func TestEmptyResponsesListContributesNoEntries(t *testing.T) {
	t.Parallel()

	const raw = `<Form>
  <Items>
    <Item>
      <Description>Skipped</Description>
      <Responses/>
    </Item>
    <Item>
      <Description>Kept</Description>
      <Responses>
        <Response Type="radio" Description="Yes"/>
      </Responses>
    </Item>
  </Items>
</Form>`

	questionnaire, _, err := parse(t, raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(questionnaire.Questions) != 1 {
		t.Fatalf("questions = %d, want 1 (empty Responses adds none)", len(questionnaire.Questions))
	}
	if questionnaire.Questions[0].Title != "Kept" {
		t.Fatalf("title = %q, want %q", questionnaire.Questions[0].Title, "Kept")
	}
}

func TestItemWithoutDescriptionsOrResponses(t *testing.T) {
	t.Parallel()

	const raw = `<Form>
  <Items>
    <Item/>
  </Items>
</Form>`

	questionnaire, _, err := parse(t, raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := model.Question{}
	if diff := cmp.Diff(want, questionnaire.Questions[0]); diff != "" {
		t.Fatalf("question mismatch (-want +got):\n%s", diff)
	}
}

func TestMissingItemsContainerIsFatal(t *testing.T) {
	t.Parallel()

	_, _, err := parse(t, `<Form Description="Empty"/>`)
	if err == nil {
		t.Fatalf("expected error for missing Items container")
	}
	if !format.IsMalformedSource(err) {
		t.Fatalf("error not classified as malformed source: %v", err)
	}
}

func TestSelectItemMissingLabelIsFatal(t *testing.T) {
	t.Parallel()

	const raw = `<Form>
  <Items>
    <Item>
      <Description>Q</Description>
      <Responses>
        <Response Type="select1">
          <item><value>1</value></item>
        </Response>
      </Responses>
    </Item>
  </Items>
</Form>`

	_, _, err := parse(t, raw)
	if err == nil {
		t.Fatalf("expected error for select item without label")
	}
}

func TestTitleIsTrimmed(t *testing.T) {
	t.Parallel()

	const raw = `<Form>
  <Items>
    <Item>
      <Description>  Padded title  </Description>
    </Item>
  </Items>
</Form>`

	questionnaire, _, err := parse(t, raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := questionnaire.Questions[0].Title; got != "Padded title" {
		t.Fatalf("title = %q, want %q", got, "Padded title")
	}
}

func TestDetectByExtension(t *testing.T) {
	t.Parallel()

	parser := New()
	if !parser.Detect(source.FromFile("form.xml"), nil) {
		t.Fatalf("expected .xml to be detected")
	}
	if parser.Detect(source.FromFile("form.java"), nil) {
		t.Fatalf(".java must not match the structured parser")
	}
}
