package resumes

import (
	"bytes"
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"

	"resumehub-backend/internal/extract"
	"resumehub-backend/internal/shared/storage/object"
	"resumehub-backend/internal/shared/telemetry"
)

// WarnParseFailed is returned to clients as the single warning when a resume
// was stored but its content could not be parsed.
const WarnParseFailed = "Failed to parse resume. Parsed data is not available."

const defaultContentType = "application/octet-stream"

// Service contains business logic for resumes and versions.
type Service struct {
	Store      object.Store
	Repo       Repo
	Parser     *Parser
	Customizer *Customizer
}

// Ingest stores the uploaded file, extracts and parses its content, and
// records the resume. The file is saved before any interpretation is
// attempted: an unsupported format aborts the whole operation, but an
// extraction or parsing failure only downgrades the result to a resume with
// no parsed data plus a warning.
func (s *Service) Ingest(ctx context.Context, data []byte, fileName, contentType string) (Resume, []string, error) {
	if fileName == "" {
		return Resume{}, nil, ErrInvalidInput
	}
	if contentType == "" {
		contentType = defaultContentType
	}

	storageKey, err := s.Store.Save(ctx, fileName, bytes.NewReader(data))
	if err != nil {
		return Resume{}, nil, err
	}

	var warnings []string
	var parsed *ParsedData

	extracted, err := extract.Extract(data, fileName, contentType)
	switch {
	case errors.Is(err, extract.ErrUnsupportedFormat):
		return Resume{}, nil, err
	case err != nil:
		telemetry.Warn("resume extraction failed", map[string]any{
			"filename": fileName,
			"error":    err.Error(),
		})
		warnings = append(warnings, WarnParseFailed)
	default:
		result, err := s.Parser.Parse(ctx, extracted.RawText)
		if err != nil {
			telemetry.Warn("resume parsing failed", map[string]any{
				"filename": fileName,
				"error":    err.Error(),
			})
			warnings = append(warnings, WarnParseFailed)
		} else {
			parsed = &result
		}
	}

	resume := Resume{
		ID:          uuid.NewString(),
		Filename:    fileName,
		ContentType: contentType,
		FilePath:    storageKey,
		ParsedData:  parsed,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, resume); err != nil {
		return Resume{}, nil, err
	}

	return resume, warnings, nil
}

// GetByID returns a resume by ID.
func (s *Service) GetByID(ctx context.Context, id string) (Resume, error) {
	if id == "" {
		return Resume{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, id)
}

// List returns resumes newest-first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Resume, error) {
	return s.Repo.List(ctx, userID, limit, offset)
}

// OpenFile streams the stored file for a resume.
func (s *Service) OpenFile(ctx context.Context, id string) (Resume, io.ReadCloser, error) {
	resume, err := s.GetByID(ctx, id)
	if err != nil {
		return Resume{}, nil, err
	}
	rc, err := s.Store.Open(ctx, resume.FilePath)
	if err != nil {
		return Resume{}, nil, err
	}
	return resume, rc, nil
}

// CreateVersion produces and persists a job-targeted version of a resume.
// The source resume must have parsed sections; the check runs before any LLM
// call so a sectionless resume never spends a request.
func (s *Service) CreateVersion(ctx context.Context, resumeID, jobDescription string) (Version, error) {
	if jobDescription == "" {
		return Version{}, ErrInvalidInput
	}

	resume, err := s.Repo.GetByID(ctx, resumeID)
	if err != nil {
		return Version{}, err
	}
	if resume.ParsedData == nil || len(resume.ParsedData.Sections) == 0 {
		return Version{}, ErrNoSections
	}

	result, err := s.Customizer.Customize(ctx, resume.ParsedData.Sections, jobDescription)
	if err != nil {
		return Version{}, err
	}

	version := Version{
		ID:             uuid.NewString(),
		ResumeID:       resume.ID,
		JobDescription: jobDescription,
		CoverLetter:    result.CoverLetter,
		Sections:       result.Sections,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.Repo.CreateVersion(ctx, version); err != nil {
		return Version{}, err
	}

	return version, nil
}

// GetVersion returns a version of a resume. A version reached through a
// different resume's URL is treated as missing.
func (s *Service) GetVersion(ctx context.Context, resumeID, versionID string) (Version, error) {
	if resumeID == "" || versionID == "" {
		return Version{}, ErrInvalidInput
	}
	version, err := s.Repo.GetVersionByID(ctx, versionID)
	if err != nil {
		return Version{}, err
	}
	if version.ResumeID != resumeID {
		return Version{}, ErrNotFound
	}
	return version, nil
}
