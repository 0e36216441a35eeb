package media

import (
	"time"

	"github.com/google/uuid"
)

// AssetType is the kind of media an Asset holds, determining both its
// processing pipeline and its job priority (images DEFAULT, videos LOW).
type AssetType string

const (
	AssetImage AssetType = "image"
	AssetVideo AssetType = "video"
)

// AssetStatus is an Asset's position in the upload/processing lifecycle:
// uploading (negotiated, awaiting bytes) -> pending (uploaded, awaiting
// processing) -> processing (dequeued) -> ready|failed (terminal).
type AssetStatus string

const (
	StatusUploading  AssetStatus = "uploading"
	StatusPending    AssetStatus = "pending"
	StatusProcessing AssetStatus = "processing"
	StatusReady      AssetStatus = "ready"
	StatusFailed     AssetStatus = "failed"
)

// Asset is one media upload tracked from negotiation through to its
// processed derivatives.
type Asset struct {
	ID               uuid.UUID
	TenantID         uuid.UUID
	AssetType        AssetType
	Status           AssetStatus
	Filename         string
	ContentType      string
	SizeBytes        int64
	StorageKey       string
	Checksum         string
	QuotaCharged     bool
	DownloadAttempts int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// GetTenantID satisfies repoguard.TenantScoped.
func (a *Asset) GetTenantID() uuid.UUID { return a.TenantID }

// SetTenantID satisfies repoguard.TenantScoped.
func (a *Asset) SetTenantID(id uuid.UUID) { a.TenantID = id }

// NegotiateUploadResult is returned to the caller so it can PUT bytes
// directly to storage.
type NegotiateUploadResult struct {
	AssetID             uuid.UUID
	StorageKey          string
	PresignedURL        string
	PresignedHeaders    map[string]string
	RemainingQuotaBytes int64
}
