package resumes

import (
	"context"
	"fmt"
	"strings"

	"resumehub-backend/internal/llm"
	"resumehub-backend/internal/shared/telemetry"
)

// Customizer rewrites existing resume sections for a specific job description
// and generates an optional cover letter. The sections call is strict: a reply
// without the required shape fails the whole operation. The cover-letter call
// is best-effort and never fails the operation.
type Customizer struct {
	LLM llm.Client
}

// CustomizationResult is the output of one customization run.
type CustomizationResult struct {
	Sections    []Section
	CoverLetter *string
}

// Customize produces job-targeted sections plus an optional cover letter.
// Callers must ensure sections is non-empty before invoking.
func (c *Customizer) Customize(ctx context.Context, sections []Section, jobDescription string) (CustomizationResult, error) {
	resumeText := flattenSections(sections)

	response, err := c.LLM.GenerateJSON(ctx, buildCustomizationPrompt(resumeText, jobDescription))
	if err != nil {
		return CustomizationResult{}, fmt.Errorf("customize resume: %w", err)
	}

	rawSections, ok := response["sections"]
	if !ok {
		telemetry.Error("resume.customize.invalid_response", map[string]any{
			"keys": responseKeys(response),
		})
		return CustomizationResult{}, ErrInvalidCustomization
	}

	var customized []Section
	if items, ok := rawSections.([]any); ok {
		customized = mapSectionItems(items, "resume.customize")
	} else {
		telemetry.Warn("resume.customize.sections_not_list", map[string]any{
			"got": fmt.Sprintf("%T", rawSections),
		})
	}

	return CustomizationResult{
		Sections:    customized,
		CoverLetter: c.generateCoverLetter(ctx, resumeText, jobDescription),
	}, nil
}

// generateCoverLetter runs the second gateway call. Any failure is logged and
// yields nil; a missing cover letter never aborts the customization.
func (c *Customizer) generateCoverLetter(ctx context.Context, resumeText, jobDescription string) *string {
	response, err := c.LLM.GenerateJSON(ctx, buildCoverLetterPrompt(resumeText, jobDescription))
	if err != nil {
		telemetry.Warn("resume.cover_letter.failed", map[string]any{
			"err": llm.Truncate(err.Error(), 500),
		})
		return nil
	}

	letter, ok := response["cover_letter"].(string)
	if !ok {
		telemetry.Warn("resume.cover_letter.invalid_response", map[string]any{
			"keys": responseKeys(response),
		})
		return nil
	}
	return &letter
}

// flattenSections renders sections as a textual resume: "title\ntext" blocks
// (text prefers Content over RawContent) joined by blank lines.
func flattenSections(sections []Section) string {
	blocks := make([]string, 0, len(sections))
	for _, section := range sections {
		text := ""
		if section.Content != nil {
			text = *section.Content
		} else if section.RawContent != nil {
			text = *section.RawContent
		}

		if section.Title != nil && *section.Title != "" {
			blocks = append(blocks, *section.Title+"\n"+text)
		} else {
			blocks = append(blocks, text)
		}
	}
	return strings.Join(blocks, "\n\n")
}

func responseKeys(response map[string]any) []string {
	keys := make([]string, 0, len(response))
	for k := range response {
		keys = append(keys, k)
	}
	return keys
}

func buildCustomizationPrompt(resumeText, jobDescription string) string {
	var b strings.Builder
	b.WriteString(`You are a resume customization engine.

You are given an existing resume, split into sections, and a job description.

Your task:
- Identify the key requirements and skills in the job description.
- Rewrite the resume content to emphasize the experience and skills that genuinely match those requirements.
- Preserve the section structure and titles where reasonable.
- NEVER invent experience, skills or credentials that are not present in the original resume.
- Keep the language of the resume exactly as in the original; do not translate.

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

Resume:

"""`)
	b.WriteString(resumeText)
	b.WriteString(`"""

Job description:

"""`)
	b.WriteString(jobDescription)
	b.WriteString(`"""`)
	return b.String()
}

func buildCoverLetterPrompt(resumeText, jobDescription string) string {
	var b strings.Builder
	b.WriteString(`You are a cover letter writing assistant.

You are given a resume and a job description.

Your task:
- Write a short, professional cover letter (3-4 paragraphs) for this job.
- Base it only on the experience and skills present in the resume; never invent facts.
- Keep the language of the cover letter the same as the language of the resume.

Output MUST be valid JSON, UTF-8, with double quotes, without comments or explanations.
The top-level JSON object MUST have the following structure:

Schema:
{
  "cover_letter": "string"
}

Resume:

"""`)
	b.WriteString(resumeText)
	b.WriteString(`"""

Job description:

"""`)
	b.WriteString(jobDescription)
	b.WriteString(`"""`)
	return b.String()
}
