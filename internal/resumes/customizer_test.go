package resumes

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestCustomizeReturnsSectionsAndCoverLetter(t *testing.T) {
	gateway := &fakeLLM{responses: []map[string]any{
		{"sections": []any{
			map[string]any{"title": "Summary", "content": "Tailored summary."},
			map[string]any{"title": "Skills", "content": "Go, Postgres"},
		}},
		{"cover_letter": "Dear hiring manager,"},
	}}
	c := &Customizer{LLM: gateway}

	sections := []Section{{Title: str("Summary"), Content: str("Engineer."), Order: 0}}
	result, err := c.Customize(context.Background(), sections, "Backend engineer role")
	if err != nil {
		t.Fatalf("customize: %v", err)
	}
	if len(result.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(result.Sections))
	}
	if result.Sections[1].Order != 1 {
		t.Fatalf("section order = %d", result.Sections[1].Order)
	}
	if result.CoverLetter == nil || *result.CoverLetter != "Dear hiring manager," {
		t.Fatalf("unexpected cover letter: %v", result.CoverLetter)
	}
	if len(gateway.prompts) != 2 {
		t.Fatalf("expected 2 gateway calls, got %d", len(gateway.prompts))
	}
}

func TestCustomizeMissingSectionsKeyIsFatal(t *testing.T) {
	gateway := &fakeLLM{responses: []map[string]any{{"cover_letter": "not what was asked"}}}
	c := &Customizer{LLM: gateway}

	_, err := c.Customize(context.Background(), []Section{{Content: str("x")}}, "job")
	if !errors.Is(err, ErrInvalidCustomization) {
		t.Fatalf("expected ErrInvalidCustomization, got %v", err)
	}
	if len(gateway.prompts) != 1 {
		t.Fatalf("cover letter call should not run after a fatal reply, got %d calls", len(gateway.prompts))
	}
}

func TestCustomizeCoverLetterFailureIsBestEffort(t *testing.T) {
	gateway := &fakeLLM{
		responses: []map[string]any{
			{"sections": []any{map[string]any{"title": "Summary", "content": "ok"}}},
			nil,
		},
		errs: []error{nil, errors.New("backend down")},
	}
	c := &Customizer{LLM: gateway}

	result, err := c.Customize(context.Background(), []Section{{Content: str("x")}}, "job")
	if err != nil {
		t.Fatalf("customize: %v", err)
	}
	if len(result.Sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(result.Sections))
	}
	if result.CoverLetter != nil {
		t.Fatalf("expected nil cover letter, got %q", *result.CoverLetter)
	}
}

func TestCustomizeCoverLetterWrongTypeYieldsNil(t *testing.T) {
	gateway := &fakeLLM{responses: []map[string]any{
		{"sections": []any{map[string]any{"title": "Summary", "content": "ok"}}},
		{"cover_letter": float64(7)},
	}}
	c := &Customizer{LLM: gateway}

	result, err := c.Customize(context.Background(), []Section{{Content: str("x")}}, "job")
	if err != nil {
		t.Fatalf("customize: %v", err)
	}
	if result.CoverLetter != nil {
		t.Fatalf("expected nil cover letter for non-string value")
	}
}

func TestCustomizeGatewayErrorPropagates(t *testing.T) {
	boom := errors.New("timeout")
	gateway := &fakeLLM{errs: []error{boom}}
	c := &Customizer{LLM: gateway}

	_, err := c.Customize(context.Background(), []Section{{Content: str("x")}}, "job")
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped gateway error, got %v", err)
	}
}

func TestFlattenSectionsPrefersContent(t *testing.T) {
	sections := []Section{
		{Title: str("Summary"), Content: str("clean"), RawContent: str("raw")},
		{Title: str("Notes"), RawContent: str("only raw")},
		{Content: str("untitled body")},
	}

	got := flattenSections(sections)
	want := "Summary\nclean\n\nNotes\nonly raw\n\nuntitled body"
	if got != want {
		t.Fatalf("flatten mismatch:\n got: %q\nwant: %q", got, want)
	}
}

func TestCustomizePromptsEmbedInputs(t *testing.T) {
	gateway := &fakeLLM{responses: []map[string]any{
		{"sections": []any{}},
		{"cover_letter": "hi"},
	}}
	c := &Customizer{LLM: gateway}

	sections := []Section{{Title: str("Experience"), Content: str("Shipped APIs")}}
	if _, err := c.Customize(context.Background(), sections, "JOB-MARKER"); err != nil {
		t.Fatalf("customize: %v", err)
	}

	for i, prompt := range gateway.prompts {
		if !strings.Contains(prompt, "JOB-MARKER") {
			t.Fatalf("prompt %d missing job description", i)
		}
		if !strings.Contains(prompt, "Shipped APIs") {
			t.Fatalf("prompt %d missing resume text", i)
		}
	}
}
