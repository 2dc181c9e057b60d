package orchestrator

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-formdoc/pkg/source"
)

const questionnaireXML = `<Form Description="Health">
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

const questionnaireDSL = `item("Age","",)
response("18-25", 1,)
response("26-40", 2,)
)
`

func TestConvertDocumentDispatchesByExtension(t *testing.T) {
	t.Parallel()

	gen := New()
	ctx := context.Background()

	xmlDoc := source.MustNewDocument(source.FromFS("form.xml"), []byte(questionnaireXML))
	result, err := gen.ConvertDocument(ctx, xmlDoc, "")
	if err != nil {
		t.Fatalf("convert xml: %v", err)
	}
	if !strings.Contains(string(result.Output), "## Health") {
		t.Fatalf("structured output missing questionnaire heading:\n%s", result.Output)
	}
	if !strings.Contains(string(result.Output), "1. Yes\n2. No\n") {
		t.Fatalf("structured output missing options:\n%s", result.Output)
	}

	dslDoc := source.MustNewDocument(source.FromFS("Survey.java"), []byte(questionnaireDSL))
	result, err = gen.ConvertDocument(ctx, dslDoc, "")
	if err != nil {
		t.Fatalf("convert dsl: %v", err)
	}
	want := "\n### Age\n\n1. 18-25\n2. 26-40\n"
	if string(result.Output) != want {
		t.Fatalf("dsl output = %q, want %q", result.Output, want)
	}
}

func TestConvertDocumentRejectsUnknownExtension(t *testing.T) {
	t.Parallel()

	gen := New()
	doc := source.MustNewDocument(source.FromFS("notes.txt"), []byte("hello"))
	if _, err := gen.ConvertDocument(context.Background(), doc, ""); err == nil {
		t.Fatalf("expected error for undetectable format")
	}
}

func TestConvertDocumentRejectsUnknownRenderer(t *testing.T) {
	t.Parallel()

	gen := New()
	doc := source.MustNewDocument(source.FromFS("form.xml"), []byte(questionnaireXML))
	if _, err := gen.ConvertDocument(context.Background(), doc, "html"); err == nil {
		t.Fatalf("expected error for unregistered renderer")
	}
}

func TestConvertDirContinuesPastFailures(t *testing.T) {
	t.Parallel()

	inDir := t.TempDir()
	outDir := t.TempDir()

	writeFile(t, filepath.Join(inDir, "good.xml"), questionnaireXML)
	writeFile(t, filepath.Join(inDir, "bad.xml"), "<Form Description=\"broken\"/>")
	writeFile(t, filepath.Join(inDir, "Survey.java"), questionnaireDSL)
	writeFile(t, filepath.Join(inDir, "notes.txt"), "not a questionnaire")

	gen := New()
	results, err := gen.ConvertDir(context.Background(), inDir, outDir, "")
	if err != nil {
		t.Fatalf("convert dir: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("results = %d, want 3 (txt files are skipped)", len(results))
	}

	var failed int
	for _, result := range results {
		if result.Err != nil {
			failed++
			if filepath.Base(result.Input) != "bad.xml" {
				t.Fatalf("unexpected failure for %s: %v", result.Input, result.Err)
			}
		}
	}
	if failed != 1 {
		t.Fatalf("failed = %d, want 1", failed)
	}

	for _, name := range []string{"good.md", "Survey.md"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Fatalf("expected output %s: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(outDir, "bad.md")); err == nil {
		t.Fatalf("failed input must not produce an output file")
	}
}

func TestResolveProcessTypeRendersSelectedTypeOnly(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "process.xml"), `<Process>
  <ProcessType value="Intake">
    <Questionaire type="Local" xml="intake"/>
  </ProcessType>
  <ProcessType value="Followup">
    <Questionaire type="Local" xml="followup"/>
  </ProcessType>
</Process>`)
	writeFile(t, filepath.Join(dir, "intake.xml"), `<Form Description="Intake Form"><Items/></Form>`)
	writeFile(t, filepath.Join(dir, "followup.xml"), `<Form Description="Followup Form"><Items/></Form>`)

	gen := New()
	src := source.FromFile(filepath.Join(dir, "process.xml"))

	result, ok, err := gen.ResolveProcessType(context.Background(), src, "Followup", "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !ok {
		t.Fatalf("expected Followup to match")
	}
	output := string(result.Output)
	if !strings.HasPrefix(output, "# Followup\n\n") {
		t.Fatalf("output must be headed by the selected type:\n%s", output)
	}
	if strings.Contains(output, "Intake") {
		t.Fatalf("output must not include the unselected type:\n%s", output)
	}

	_, ok, err = gen.ResolveProcessType(context.Background(), src, "Discharge", "")
	if err != nil {
		t.Fatalf("resolve unknown: %v", err)
	}
	if ok {
		t.Fatalf("unknown selector must report absence")
	}
}

func TestProcessTypeValues(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "process.xml"), `<Process>
  <ProcessType value="A"/>
  <ProcessType value="B"/>
</Process>`)

	gen := New()
	values, err := gen.ProcessTypeValues(context.Background(), source.FromFile(filepath.Join(dir, "process.xml")))
	if err != nil {
		t.Fatalf("values: %v", err)
	}
	if len(values) != 2 || values[0] != "A" || values[1] != "B" {
		t.Fatalf("values = %v, want [A B]", values)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
