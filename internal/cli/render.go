package cli

import (
	"encoding/json"
	"fmt"
	"github.com/alvinbaena/pwd-autopsy/pkg/autopsy"
	"github.com/mgutz/ansi"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
	"io"
	"strings"
)

// report is everything the CLI knows about one password. The password itself is never part of it.
type report struct {
	Characteristics autopsy.Characteristics `json:"characteristics" yaml:"characteristics"`
	DNA             []autopsy.Segment       `json:"dna" yaml:"dna"`
	BreachCount     *int                    `json:"breachCount,omitempty" yaml:"breachCount,omitempty"`
}

type renderer interface {
	Render(w io.Writer, r report) error
}

func newRenderer(format string, color bool) (renderer, error) {
	switch strings.ToLower(format) {
	case "", "text":
		return &textRenderer{color: color}, nil
	case "json":
		return jsonRenderer{}, nil
	case "yaml":
		return yamlRenderer{}, nil
	}
	return nil, fmt.Errorf("unknown output format %q, use one of text, json or yaml", format)
}

// jsonRenderer writes one compact JSON object per line, so several reports form a JSON lines stream.
type jsonRenderer struct{}

func (jsonRenderer) Render(w io.Writer, r report) error {
	return json.NewEncoder(w).Encode(r)
}

type yamlRenderer struct{}

func (yamlRenderer) Render(w io.Writer, r report) error {
	// a document separator keeps several reports in one valid yaml stream
	if _, err := io.WriteString(w, "---\n"); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}

// strengthColors are the heatmap colours for segment strengths 0 to 3.
var strengthColors = []string{"red+b", "yellow", "cyan", "green+b"}

type textRenderer struct {
	color bool
}

func (t *textRenderer) Render(w io.Writer, r report) error {
	c := r.Characteristics
	p := message.NewPrinter(language.English)

	var dna, heat strings.Builder
	for _, seg := range r.DNA {
		dna.WriteString(t.paint(seg.Char, seg.Strength))
		heat.WriteString(t.paint(fmt.Sprintf("%d", seg.Strength), seg.Strength))
	}

	lines := []string{
		fmt.Sprintf("DNA         %s", dna.String()),
		fmt.Sprintf("            %s", heat.String()),
		fmt.Sprintf("Score       %d/100", c.StrengthScore),
		fmt.Sprintf("Crack time  %s", c.EstimatedCrackTime),
		fmt.Sprintf("Cause       %s", c.DeathCause),
	}
	if r.BreachCount != nil {
		lines = append(lines, p.Sprintf("Breaches    seen %d times", *r.BreachCount))
	}
	lines = append(lines,
		fmt.Sprintf("Length      %d", c.Length),
		fmt.Sprintf("Classes     lower %s  upper %s  digits %s  symbols %s",
			mark(c.HasLowercase), mark(c.HasUppercase), mark(c.HasNumbers), mark(c.HasSymbols)),
	)
	if len(c.Patterns) > 0 {
		lines = append(lines, fmt.Sprintf("Patterns    %s", strings.Join(c.Patterns, ", ")))
	}
	if weakest := weakestReasons(r.DNA); len(weakest) > 0 {
		lines = append(lines, fmt.Sprintf("Weak spots  %s", strings.Join(weakest, ", ")))
	}

	_, err := fmt.Fprintln(w, strings.Join(lines, "\n")+"\n")
	return err
}

func (t *textRenderer) paint(s string, strength int) string {
	if !t.color || strength < 0 || strength >= len(strengthColors) {
		return s
	}
	return ansi.Color(s, strengthColors[strength])
}

func mark(ok bool) string {
	if ok {
		return "yes"
	}
	return "no"
}

// weakestReasons lists, in order of first appearance, the reasons of the segments with strength 0.
func weakestReasons(segments []autopsy.Segment) []string {
	seen := make(map[string]bool)
	var reasons []string
	for _, seg := range segments {
		if seg.Strength != autopsy.StrengthWeakest || seen[seg.Reason] {
			continue
		}
		seen[seg.Reason] = true
		reasons = append(reasons, seg.Reason)
	}
	return reasons
}
