package cli

import (
	"bytes"
	"encoding/json"
	"github.com/alvinbaena/pwd-autopsy/pkg/autopsy"
	"reflect"
	"strings"
	"testing"
)

func passwordReport(count *int) report {
	c := autopsy.Analyze("password")
	if count != nil {
		c = c.WithBreachCount(*count)
	}
	return report{Characteristics: c, DNA: autopsy.AnalyzeDNA("password"), BreachCount: count}
}

func TestNewRenderer(t *testing.T) {
	tests := []struct {
		format  string
		want    renderer
		wantErr bool
	}{
		{format: "", want: &textRenderer{color: true}},
		{format: "text", want: &textRenderer{color: true}},
		{format: "JSON", want: jsonRenderer{}},
		{format: "yaml", want: yamlRenderer{}},
		{format: "xml", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			got, err := newRenderer(tt.format, true)
			if (err != nil) != tt.wantErr {
				t.Fatalf("newRenderer() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("newRenderer() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestTextRenderer(t *testing.T) {
	count := 1234
	var buf bytes.Buffer
	if err := (&textRenderer{}).Render(&buf, passwordReport(&count)); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"DNA         pa••••rd",
		"Score       0/100",
		"Cause       dictionary attack",
		"Breaches    seen 1,234 times",
		"Length      8",
		"lower yes  upper no  digits no  symbols no",
		autopsy.TagCommon,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text output is missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("text output should not be coloured:\n%s", out)
	}
}

func TestTextRendererColor(t *testing.T) {
	var buf bytes.Buffer
	if err := (&textRenderer{color: true}).Render(&buf, passwordReport(nil)); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("text output should be coloured:\n%s", buf.String())
	}
	if strings.Contains(buf.String(), "Breaches") {
		t.Errorf("text output should not mention breaches without a lookup:\n%s", buf.String())
	}
}

func TestJsonRenderer(t *testing.T) {
	var buf bytes.Buffer
	if err := (jsonRenderer{}).Render(&buf, passwordReport(nil)); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	var got map[string]json.RawMessage
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not json: %v", err)
	}
	if _, ok := got["breachCount"]; ok {
		t.Errorf("breachCount should be omitted without a lookup")
	}
	if !strings.Contains(string(got["characteristics"]), `"deathCause":"dictionary attack"`) {
		t.Errorf("unexpected characteristics: %s", got["characteristics"])
	}
	if strings.Contains(buf.String(), `"password"`) {
		t.Errorf("the password must never be part of the output")
	}
}

func TestJsonRendererLines(t *testing.T) {
	var buf bytes.Buffer
	count := 3
	r := jsonRenderer{}
	for _, rep := range []report{passwordReport(nil), passwordReport(&count)} {
		if err := r.Render(&buf, rep); err != nil {
			t.Fatalf("Render() error = %v", err)
		}
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("json lines = %d, want 2:\n%s", len(lines), buf.String())
	}
	for i, line := range lines {
		var got report
		if err := json.Unmarshal([]byte(line), &got); err != nil {
			t.Errorf("line %d is not a json object: %v", i+1, err)
		}
	}

	var second report
	_ = json.Unmarshal([]byte(lines[1]), &second)
	if second.BreachCount == nil || *second.BreachCount != count {
		t.Errorf("second line BreachCount = %v, want %d", second.BreachCount, count)
	}
}

func TestYamlRenderer(t *testing.T) {
	var buf bytes.Buffer
	r := yamlRenderer{}
	for i := 0; i < 2; i++ {
		if err := r.Render(&buf, passwordReport(nil)); err != nil {
			t.Fatalf("Render() error = %v", err)
		}
	}

	out := buf.String()
	if !strings.HasPrefix(out, "---\n") {
		t.Errorf("yaml output should start with a document separator:\n%s", out)
	}
	if n := strings.Count(out, "---\n"); n != 2 {
		t.Errorf("yaml documents = %d, want 2", n)
	}
	if !strings.Contains(out, "deathCause: dictionary attack") {
		t.Errorf("yaml output is missing the death cause:\n%s", out)
	}
}

func TestWeakestReasons(t *testing.T) {
	segments := []autopsy.Segment{
		{Char: "q", Strength: autopsy.StrengthWeakest, Reason: autopsy.ReasonKeyboard},
		{Char: "w", Strength: autopsy.StrengthWeakest, Reason: autopsy.ReasonKeyboard},
		{Char: "#", Strength: autopsy.StrengthStrong, Reason: autopsy.ReasonSymbol},
		{Char: "1", Strength: autopsy.StrengthWeakest, Reason: autopsy.ReasonSequential},
	}
	want := []string{autopsy.ReasonKeyboard, autopsy.ReasonSequential}
	if got := weakestReasons(segments); !reflect.DeepEqual(got, want) {
		t.Errorf("weakestReasons() = %v, want %v", got, want)
	}
	if got := weakestReasons(nil); got != nil {
		t.Errorf("weakestReasons(nil) = %v, want nil", got)
	}
}
