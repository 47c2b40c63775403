package resumes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
)

// PGRepo implements Repo using Postgres. Parent rows and section rows are
// written in one transaction so readers never see a half-persisted resume or
// version.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a resume together with its parsed sections.
func (r *PGRepo) Create(ctx context.Context, resume Resume) error {
	const insertResume = `
INSERT INTO resumes (
    id,
    user_id,
    filename,
    content_type,
    file_path,
    raw_text,
    meta,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	const insertSection = `
INSERT INTO resume_sections (id, resume_id, title, content, raw_content, position)
VALUES ($1, $2, $3, $4, $5, $6)`

	var userID sql.NullString
	if resume.UserID != nil {
		userID = sql.NullString{String: *resume.UserID, Valid: true}
	}

	var rawText sql.NullString
	var meta []byte
	if resume.ParsedData != nil {
		rawText = sql.NullString{String: resume.ParsedData.RawText, Valid: true}
		if resume.ParsedData.Meta != nil {
			encoded, err := json.Marshal(resume.ParsedData.Meta)
			if err != nil {
				return err
			}
			meta = encoded
		}
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(
		ctx,
		insertResume,
		resume.ID,
		userID,
		resume.Filename,
		resume.ContentType,
		resume.FilePath,
		rawText,
		meta,
		resume.CreatedAt,
	); err != nil {
		return err
	}

	if resume.ParsedData != nil {
		for _, section := range resume.ParsedData.Sections {
			if _, err := tx.ExecContext(
				ctx,
				insertSection,
				uuid.NewString(),
				resume.ID,
				nullString(section.Title),
				nullString(section.Content),
				nullString(section.RawContent),
				section.Order,
			); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// GetByID fetches a resume with its sections. ParsedData is nil when the
// resume was stored without a successful parse.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Resume, error) {
	const query = `
SELECT id, user_id, filename, content_type, file_path, raw_text, meta, created_at
FROM resumes
WHERE id = $1
LIMIT 1`

	var resume Resume
	var userID sql.NullString
	var rawText sql.NullString
	var meta []byte
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&resume.ID,
		&userID,
		&resume.Filename,
		&resume.ContentType,
		&resume.FilePath,
		&rawText,
		&meta,
		&resume.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	if userID.Valid {
		resume.UserID = &userID.String
	}
	if rawText.Valid {
		parsed := &ParsedData{RawText: rawText.String}
		if len(meta) > 0 {
			if err := json.Unmarshal(meta, &parsed.Meta); err != nil {
				return Resume{}, err
			}
		}
		sections, err := r.sectionsFor(ctx, "resume_sections", "resume_id", resume.ID)
		if err != nil {
			return Resume{}, err
		}
		parsed.Sections = sections
		resume.ParsedData = parsed
	}
	return resume, nil
}

// List returns resumes newest-first. An empty userID lists all resumes.
// Section rows are not loaded for listings.
func (r *PGRepo) List(ctx context.Context, userID string, limit, offset int) ([]Resume, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	query := `
SELECT id, user_id, filename, content_type, file_path, created_at
FROM resumes
ORDER BY created_at DESC
LIMIT $1 OFFSET $2`
	args := []any{limit, offset}
	if userID != "" {
		query = `
SELECT id, user_id, filename, content_type, file_path, created_at
FROM resumes
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`
		args = []any{userID, limit, offset}
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Resume
	for rows.Next() {
		var resume Resume
		var owner sql.NullString
		if err := rows.Scan(
			&resume.ID,
			&owner,
			&resume.Filename,
			&resume.ContentType,
			&resume.FilePath,
			&resume.CreatedAt,
		); err != nil {
			return nil, err
		}
		if owner.Valid {
			resume.UserID = &owner.String
		}
		out = append(out, resume)
	}
	return out, rows.Err()
}

// CreateVersion inserts a customized version with its sections.
func (r *PGRepo) CreateVersion(ctx context.Context, version Version) error {
	const insertVersion = `
INSERT INTO resume_versions (id, resume_id, job_description, cover_letter, created_at)
VALUES ($1, $2, $3, $4, $5)`

	const insertSection = `
INSERT INTO resume_version_sections (id, version_id, title, content, raw_content, position)
VALUES ($1, $2, $3, $4, $5, $6)`

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(
		ctx,
		insertVersion,
		version.ID,
		version.ResumeID,
		version.JobDescription,
		nullString(version.CoverLetter),
		version.CreatedAt,
	); err != nil {
		return err
	}

	for _, section := range version.Sections {
		if _, err := tx.ExecContext(
			ctx,
			insertSection,
			uuid.NewString(),
			version.ID,
			nullString(section.Title),
			nullString(section.Content),
			nullString(section.RawContent),
			section.Order,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetVersionByID fetches a version with its sections.
func (r *PGRepo) GetVersionByID(ctx context.Context, versionID string) (Version, error) {
	const query = `
SELECT id, resume_id, job_description, cover_letter, created_at
FROM resume_versions
WHERE id = $1
LIMIT 1`

	var version Version
	var coverLetter sql.NullString
	err := r.DB.QueryRowContext(ctx, query, versionID).Scan(
		&version.ID,
		&version.ResumeID,
		&version.JobDescription,
		&coverLetter,
		&version.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Version{}, ErrNotFound
		}
		return Version{}, err
	}
	if coverLetter.Valid {
		version.CoverLetter = &coverLetter.String
	}
	sections, err := r.sectionsFor(ctx, "resume_version_sections", "version_id", version.ID)
	if err != nil {
		return Version{}, err
	}
	version.Sections = sections
	return version, nil
}

func (r *PGRepo) sectionsFor(ctx context.Context, table, parentColumn, parentID string) ([]Section, error) {
	query := `
SELECT title, content, raw_content, position
FROM ` + table + `
WHERE ` + parentColumn + ` = $1
ORDER BY position ASC`

	rows, err := r.DB.QueryContext(ctx, query, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Section
	for rows.Next() {
		var section Section
		var title sql.NullString
		var content sql.NullString
		var rawContent sql.NullString
		if err := rows.Scan(&title, &content, &rawContent, &section.Order); err != nil {
			return nil, err
		}
		if title.Valid {
			section.Title = &title.String
		}
		if content.Valid {
			section.Content = &content.String
		}
		if rawContent.Valid {
			section.RawContent = &rawContent.String
		}
		out = append(out, section)
	}
	return out, rows.Err()
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

var _ Repo = (*PGRepo)(nil)
