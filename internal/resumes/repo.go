package resumes

import "context"

// Repo defines persistence operations for resumes and their versions.
// Create and CreateVersion persist the entity together with its sections as
// one unit; a version row without its sections is never observable.
type Repo interface {
	Create(ctx context.Context, resume Resume) error
	GetByID(ctx context.Context, id string) (Resume, error)
	List(ctx context.Context, userID string, limit, offset int) ([]Resume, error)
	CreateVersion(ctx context.Context, version Version) error
	GetVersionByID(ctx context.Context, versionID string) (Version, error)
}
