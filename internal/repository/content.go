package repository

import (
	"context"

	"portfolio-api/internal/domain"
)

// AboutRepository persists the singleton About block.
type AboutRepository interface {
	Init(ctx context.Context) error
	Latest(ctx context.Context) (*domain.About, error)
	Create(ctx context.Context, about *domain.About) (int64, error)
	Patch(ctx context.Context, id int64, patch domain.AboutPatch) error
	Get(ctx context.Context, id int64) (*domain.About, error)
	Count(ctx context.Context) (int64, error)
}

// ProjectRepository persists portfolio projects.
type ProjectRepository interface {
	Init(ctx context.Context) error
	List(ctx context.Context) ([]domain.Project, error)
	Get(ctx context.Context, id int64) (*domain.Project, error)
	Create(ctx context.Context, project *domain.Project) (int64, error)
	Patch(ctx context.Context, id int64, patch domain.ProjectPatch) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

// TechnologyRepository persists technology badges.
type TechnologyRepository interface {
	Init(ctx context.Context) error
	List(ctx context.Context) ([]domain.Technology, error)
	Get(ctx context.Context, id int64) (*domain.Technology, error)
	Create(ctx context.Context, tech *domain.Technology) (int64, error)
	Patch(ctx context.Context, id int64, patch domain.TechnologyPatch) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

// HomepageRepository persists the singleton homepage settings.
type HomepageRepository interface {
	Init(ctx context.Context) error
	Latest(ctx context.Context) (*domain.HomepageSettings, error)
	Create(ctx context.Context, settings *domain.HomepageSettings) (int64, error)
	Patch(ctx context.Context, id int64, patch domain.HomepagePatch) error
	SetCVPath(ctx context.Context, id int64, path *string) error
	Get(ctx context.Context, id int64) (*domain.HomepageSettings, error)
	Count(ctx context.Context) (int64, error)
}

// ContactRepository persists contact details and form submissions.
type ContactRepository interface {
	Init(ctx context.Context) error
	LatestInfo(ctx context.Context) (*domain.ContactInfo, error)
	CreateInfo(ctx context.Context, info *domain.ContactInfo) (int64, error)
	PatchInfo(ctx context.Context, id int64, patch domain.ContactInfoPatch) error
	GetInfo(ctx context.Context, id int64) (*domain.ContactInfo, error)
	CountInfo(ctx context.Context) (int64, error)

	CreateSubmission(ctx context.Context, sub *domain.ContactSubmission) (int64, error)
	ListSubmissions(ctx context.Context) ([]domain.ContactSubmission, error)
	GetSubmission(ctx context.Context, id int64) (*domain.ContactSubmission, error)
	DeleteSubmission(ctx context.Context, id int64) error
}

// MaintenanceRepository exposes housekeeping over the whole database.
type MaintenanceRepository interface {
	// CompactSingleton deletes every row of table except the newest one and
	// returns the number of deleted rows.
	CompactSingleton(ctx context.Context, table string) (int64, error)
	Tables(ctx context.Context) ([]TableInfo, error)
}

// TableInfo describes a table and its columns.
type TableInfo struct {
	Name    string
	Columns []ColumnInfo
}

type ColumnInfo struct {
	Name    string
	Type    string
	NotNull bool
	PK      bool
}
