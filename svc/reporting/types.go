package reporting

import (
	"time"

	"github.com/google/uuid"
)

// ReportStatus is a ReportJob's position in the
// pending -> running -> completed|failed lifecycle.
type ReportStatus string

const (
	ReportPending   ReportStatus = "pending"
	ReportRunning   ReportStatus = "running"
	ReportCompleted ReportStatus = "completed"
	ReportFailed    ReportStatus = "failed"
)

// ReportJob tracks one export request from submission through to a
// downloadable CSV, driven by a statemachine.StateMachine through its
// Status transitions.
type ReportJob struct {
	ID          uuid.UUID
	TenantID    uuid.UUID
	ReportType  string
	Format      string
	Params      map[string]string
	Status      ReportStatus
	StorageKey  string
	DownloadURL string
	FailReason  string
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// GetTenantID satisfies repoguard.TenantScoped.
func (j *ReportJob) GetTenantID() uuid.UUID { return j.TenantID }

// SetTenantID satisfies repoguard.TenantScoped.
func (j *ReportJob) SetTenantID(id uuid.UUID) { j.TenantID = id }

// ProjectionRow is one denormalized aggregate row a refresh rebuilds,
// stamped with the time it was computed so readers know how stale it is.
type ProjectionRow struct {
	TenantID               uuid.UUID
	AggregateType          string
	Period                 string
	Data                   map[string]any
	DataFreshnessTimestamp time.Time
}
