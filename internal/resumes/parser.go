package resumes

import (
	"context"
	"fmt"
	"strings"

	"resumehub-backend/internal/llm"
	"resumehub-backend/internal/shared/telemetry"
)

// Parser segments extracted resume text into ordered sections via an LLM
// call. It builds the prompt, invokes the gateway and maps the reply into
// domain sections, tolerating malformed items.
type Parser struct {
	LLM llm.Client
}

// Parse segments rawText into sections. Gateway failures and a non-object
// reply propagate to the caller; the caller decides whether they are fatal.
func (p *Parser) Parse(ctx context.Context, rawText string) (ParsedData, error) {
	prompt := buildParsingPrompt(rawText)

	response, err := p.LLM.GenerateJSON(ctx, prompt)
	if err != nil {
		return ParsedData{}, fmt.Errorf("parse resume: %w", err)
	}

	parsed := mapResponse(response, rawText)
	telemetry.Info("resume.parsed", map[string]any{
		"text_length":    len(rawText),
		"sections_count": len(parsed.Sections),
	})
	return parsed, nil
}

// mapResponse turns the decoded LLM reply into ParsedData. A missing or
// malformed "sections" value degrades to zero sections; only individual
// non-object items are skipped. The complete reply is retained under the
// llm_raw meta key.
func mapResponse(response map[string]any, rawText string) ParsedData {
	var sections []Section

	switch raw := response["sections"].(type) {
	case nil:
	case []any:
		sections = mapSectionItems(raw, "resume.parse")
	default:
		telemetry.Warn("resume.parse.sections_not_list", map[string]any{
			"got": fmt.Sprintf("%T", raw),
		})
	}

	return ParsedData{
		RawText:  rawText,
		Sections: sections,
		Meta:     map[string]any{"llm_raw": response},
	}
}

// mapSectionItems maps raw array elements to sections. Order is the element's
// zero-based array index, not a model-supplied value; non-object elements are
// skipped with a warning.
func mapSectionItems(items []any, op string) []Section {
	var sections []Section
	for idx, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			telemetry.Warn(op+".section_skipped", map[string]any{
				"index": idx,
				"got":   fmt.Sprintf("%T", item),
			})
			continue
		}
		sections = append(sections, Section{
			Title:      stringField(obj, "title"),
			Content:    stringField(obj, "content"),
			RawContent: stringField(obj, "raw_content"),
			Order:      idx,
		})
	}
	return sections
}

func stringField(obj map[string]any, key string) *string {
	if s, ok := obj[key].(string); ok {
		return &s
	}
	return nil
}

func buildParsingPrompt(text string) string {
	var b strings.Builder
	b.WriteString(`You are a resume parsing engine.

The input is a resume in arbitrary format. It may be written in English, Russian,
or any other language (or even a mix of languages).

Your task:
- Read the resume text.
- Split it into logical sections in the order they appear.
- For each section, detect:
    - "title": the section heading as it appears in the resume (if there is no clear heading, use null),
    - "content": a cleaned, normalized version of the section text (you may merge lines / bullet points),
    - "raw_content": the raw text of this section as it appears in the resume (use the same language, do not translate).

IMPORTANT LANGUAGE RULES:
- Do NOT translate or rewrite the text into another language.
- Keep the language of each section exactly as in the original resume.
- If the resume is mixed, keep each part in its original language.

Output MUST be valid JSON, UTF-8, with double quotes, without comments or explanations.
The top-level JSON object MUST have the following structure:

Schema:
{
  "sections": [
    {
      "title": "string or null",
      "content": "string or null",
      "raw_content": "string or null"
    }
  ]
}

Additional rules:
- Preserve the original order of sections from top to bottom.
- Do not invent fake sections; only create sections that are supported by the text.
- If you are unsure about a section boundary, choose the simplest reasonable split.
- If some field is unknown, set it to null.

Resume text (may contain any language):

"""`)
	b.WriteString(text)
	b.WriteString(`"""`)
	return b.String()
}
