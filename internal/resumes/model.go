package resumes

import "time"

// Section is one labeled block of a document. Title, Content and RawContent
// are nil when the segmentation could not detect them; Order is the zero-based
// position within the parent document.
type Section struct {
	Title      *string
	Content    *string
	RawContent *string
	Order      int
}

// ParsedData is the result of one parsing pass over extracted resume text.
// It is created whole and never mutated afterwards. Meta retains the
// unprocessed LLM output for audit.
type ParsedData struct {
	RawText  string
	Sections []Section
	Meta     map[string]any
}

// Resume is the ingested artifact. ParsedData is nil when parsing failed or
// was skipped; the file itself is always stored.
type Resume struct {
	ID          string
	UserID      *string
	Filename    string
	ContentType string
	FilePath    string
	ParsedData  *ParsedData
	CreatedAt   time.Time
}

// Version is a job-targeted derivative of a resume. Its sections are
// independent copies produced by the customization engine, never shared with
// the parent's sections.
type Version struct {
	ID             string
	ResumeID       string
	JobDescription string
	CoverLetter    *string
	Sections       []Section
	CreatedAt      time.Time
}
