package resumes

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo, used when no database
// is configured and as a test double.
type MemoryRepo struct {
	mu       sync.RWMutex
	resumes  map[string]Resume
	versions map[string]Version
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		resumes:  make(map[string]Resume),
		versions: make(map[string]Version),
	}
}

// Create stores a resume.
func (r *MemoryRepo) Create(ctx context.Context, resume Resume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resumes[resume.ID] = resume
	return nil
}

// GetByID returns a resume by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	resume, ok := r.resumes[id]
	if !ok {
		return Resume{}, ErrNotFound
	}
	return resume, nil
}

// List returns resumes newest-first, honoring limit/offset. An empty userID
// lists all resumes.
func (r *MemoryRepo) List(ctx context.Context, userID string, limit, offset int) ([]Resume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = 20
	}

	r.mu.RLock()
	out := make([]Resume, 0, len(r.resumes))
	for _, resume := range r.resumes {
		if userID != "" && (resume.UserID == nil || *resume.UserID != userID) {
			continue
		}
		out = append(out, resume)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if offset >= len(out) {
		return []Resume{}, nil
	}
	end := len(out)
	if offset+limit < end {
		end = offset + limit
	}
	return out[offset:end], nil
}

// CreateVersion stores a version.
func (r *MemoryRepo) CreateVersion(ctx context.Context, version Version) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.resumes[version.ResumeID]; !ok {
		return ErrNotFound
	}
	r.versions[version.ID] = version
	return nil
}

// GetVersionByID returns a version by ID.
func (r *MemoryRepo) GetVersionByID(ctx context.Context, versionID string) (Version, error) {
	if err := ctx.Err(); err != nil {
		return Version{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	version, ok := r.versions[versionID]
	if !ok {
		return Version{}, ErrNotFound
	}
	return version, nil
}

var _ Repo = (*MemoryRepo)(nil)
