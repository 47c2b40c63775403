package resumes

import "time"

// SectionOut is the outward-facing representation of a section.
type SectionOut struct {
	Title      *string `json:"title"`
	Content    *string `json:"content"`
	RawContent *string `json:"raw_content"`
}

// ResumeOut is the outward-facing representation of a resume with its
// parsed content. Warnings carries non-fatal ingestion problems; it is empty
// on reads of an already-stored resume.
type ResumeOut struct {
	ID          string       `json:"id"`
	Filename    string       `json:"filename"`
	ContentType string       `json:"content_type"`
	Sections    []SectionOut `json:"sections"`
	Warnings    []string     `json:"warnings"`
	CreatedAt   time.Time    `json:"created_at"`
}

// ResumeListItem is the shallow listing representation; sections are not
// included.
type ResumeListItem struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	CreatedAt   time.Time `json:"created_at"`
}

// VersionCreate is the request body for creating a customized version.
type VersionCreate struct {
	JobDescription string `json:"job_description" binding:"required"`
}

// VersionOut is the outward-facing representation of a customized version.
type VersionOut struct {
	ID             string       `json:"id"`
	ResumeID       string       `json:"resume_id"`
	JobDescription string       `json:"job_description"`
	CoverLetter    *string      `json:"cover_letter"`
	Sections       []SectionOut `json:"sections"`
	CreatedAt      time.Time    `json:"created_at"`
}

func toSectionsOut(sections []Section) []SectionOut {
	out := make([]SectionOut, 0, len(sections))
	for _, s := range sections {
		out = append(out, SectionOut{
			Title:      s.Title,
			Content:    s.Content,
			RawContent: s.RawContent,
		})
	}
	return out
}

func toResumeOut(resume Resume, warnings []string) ResumeOut {
	sections := []SectionOut{}
	if resume.ParsedData != nil {
		sections = toSectionsOut(resume.ParsedData.Sections)
	}
	if warnings == nil {
		warnings = []string{}
	}
	return ResumeOut{
		ID:          resume.ID,
		Filename:    resume.Filename,
		ContentType: resume.ContentType,
		Sections:    sections,
		Warnings:    warnings,
		CreatedAt:   resume.CreatedAt,
	}
}

func toListItem(resume Resume) ResumeListItem {
	return ResumeListItem{
		ID:          resume.ID,
		Filename:    resume.Filename,
		ContentType: resume.ContentType,
		CreatedAt:   resume.CreatedAt,
	}
}

func toVersionOut(version Version) VersionOut {
	return VersionOut{
		ID:             version.ID,
		ResumeID:       version.ResumeID,
		JobDescription: version.JobDescription,
		CoverLetter:    version.CoverLetter,
		Sections:       toSectionsOut(version.Sections),
		CreatedAt:      version.CreatedAt,
	}
}
