package media

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/commercecore/pkg/collab"
	"github.com/dmitrymomot/commercecore/pkg/jobqueue"
)

const (
	uploadURLExpiry       = 15 * time.Minute
	signedURLExpiry       = 24 * time.Hour
	defaultMaxDownloads   = 10
	defaultDerivativeContentType = "application/octet-stream"
)

// ProcessJob is the payload enqueued once upload completion charges quota
// - DEFAULT priority for images, LOW for videos.
type ProcessJob struct {
	TenantID uuid.UUID `json:"tenant_id"`
	AssetID  uuid.UUID `json:"asset_id"`
}

// Service implements media upload negotiation/completion and the
// download/processing pipeline.
type Service struct {
	repo        Repository
	quota       QuotaTracker
	storage     Storage
	processor   Processor
	jobs        Enqueuer
	maxDownload int
}

// Option configures a Service beyond its required collaborators.
type Option func(*Service)

// WithMaxDownloadAttempts overrides the default max signed-download-URL
// issuance count per asset.
func WithMaxDownloadAttempts(n int) Option {
	return func(s *Service) { s.maxDownload = n }
}

// NewService builds a Service.
func NewService(repo Repository, quota QuotaTracker, storage Storage, processor Processor, jobs Enqueuer, opts ...Option) *Service {
	s := &Service{
		repo:        repo,
		quota:       quota,
		storage:     storage,
		processor:   processor,
		jobs:        jobs,
		maxDownload: defaultMaxDownloads,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NegotiateUpload validates the request, checks tenant quota, persists a
// pending asset under a deterministic storage key, and returns a
// presigned upload URL the caller PUTs bytes to directly.
func (s *Service) NegotiateUpload(ctx context.Context, tenantID uuid.UUID, filename, contentType string, size int64, assetType AssetType) (*NegotiateUploadResult, error) {
	if assetType != AssetImage && assetType != AssetVideo {
		return nil, ErrInvalidAssetType
	}
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	if filename == "" || contentType == "" {
		return nil, ErrMissingFilename
	}

	ok, err := s.quota.HasAvailable(ctx, tenantID, size)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrQuotaExceeded
	}

	assetID := uuid.New()
	storageKey := fmt.Sprintf("%s/media/%s/%s/original/%s", tenantID, assetType, assetID, filename)

	asset := &Asset{
		ID:          assetID,
		TenantID:    tenantID,
		AssetType:   assetType,
		Status:      StatusUploading,
		Filename:    filename,
		ContentType: contentType,
		SizeBytes:   size,
		StorageKey:  storageKey,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Save(ctx, asset); err != nil {
		return nil, err
	}

	upload, err := s.storage.PresignedUpload(ctx, storageKey, contentType, uploadURLExpiry)
	if err != nil {
		return nil, err
	}

	remaining, err := s.quota.Charge(ctx, tenantID, 0)
	if err != nil {
		return nil, err
	}

	return &NegotiateUploadResult{
		AssetID:             assetID,
		StorageKey:          storageKey,
		PresignedURL:        upload.URL,
		PresignedHeaders:    upload.Headers,
		RemainingQuotaBytes: remaining,
	}, nil
}

// CompleteUpload transitions an uploading asset to pending, charges quota
// for its original bytes if not already charged, and enqueues a
// processing job at DEFAULT priority for images, LOW for videos.
func (s *Service) CompleteUpload(ctx context.Context, tenantID, assetID uuid.UUID, checksum string) (*Asset, error) {
	asset, err := s.repo.Get(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if asset.Status != StatusUploading {
		return nil, ErrInvalidStatus
	}

	asset.Status = StatusPending
	asset.Checksum = checksum
	asset.UpdatedAt = time.Now().UTC()

	if !asset.QuotaCharged {
		if _, err := s.quota.Charge(ctx, tenantID, asset.SizeBytes); err != nil {
			return nil, err
		}
		asset.QuotaCharged = true
	}

	if err := s.repo.Save(ctx, asset); err != nil {
		return nil, err
	}

	s.enqueueProcess(tenantID, asset)
	return asset, nil
}

func (s *Service) enqueueProcess(tenantID uuid.UUID, asset *Asset) {
	if s.jobs == nil {
		return
	}
	payload, err := json.Marshal(ProcessJob{TenantID: tenantID, AssetID: asset.ID})
	if err != nil {
		return
	}
	priority := jobqueue.Default
	if asset.AssetType == AssetVideo {
		priority = jobqueue.Low
	}
	s.jobs.Submit(jobqueue.NewJob(tenantID, "media.process", priority, payload))
}

// SignedDownloadURL issues a time-limited download URL for asset, up to
// maxDownload times per asset lifetime.
func (s *Service) SignedDownloadURL(ctx context.Context, assetID uuid.UUID) (string, error) {
	asset, err := s.repo.Get(ctx, assetID)
	if err != nil {
		return "", err
	}
	if asset.DownloadAttempts >= s.maxDownload {
		return "", ErrMaxDownloadAttempts
	}

	url, err := s.storage.SignedDownload(ctx, asset.StorageKey, signedURLExpiry)
	if err != nil {
		return "", err
	}

	asset.DownloadAttempts++
	asset.UpdatedAt = time.Now().UTC()
	if err := s.repo.Save(ctx, asset); err != nil {
		return "", err
	}
	return url, nil
}

// ProcessHandler returns the typed jobqueue.Handler processing jobs are
// dispatched to: it downloads the original, hands it to the injected
// MediaProcessor, uploads whatever derivatives come back, and marks the
// asset ready or failed. The temp directory is always removed on exit.
func (s *Service) ProcessHandler() jobqueue.Handler {
	return jobqueue.NewNamedTaskHandler("media.process", func(ctx context.Context, job ProcessJob) error {
		return s.process(ctx, job.AssetID)
	})
}

func (s *Service) process(ctx context.Context, assetID uuid.UUID) error {
	asset, err := s.repo.Get(ctx, assetID)
	if err != nil {
		return err
	}
	if asset.Status != StatusPending {
		return ErrInvalidStatus
	}

	asset.Status = StatusProcessing
	asset.UpdatedAt = time.Now().UTC()
	if err := s.repo.Save(ctx, asset); err != nil {
		return err
	}

	if procErr := s.runPipeline(ctx, asset); procErr != nil {
		asset.Status = StatusFailed
		asset.UpdatedAt = time.Now().UTC()
		_ = s.repo.Save(ctx, asset)
		return procErr
	}

	asset.Status = StatusReady
	asset.UpdatedAt = time.Now().UTC()
	return s.repo.Save(ctx, asset)
}

func (s *Service) runPipeline(ctx context.Context, asset *Asset) error {
	tempDir, err := os.MkdirTemp("", "media-"+asset.ID.String())
	if err != nil {
		return fmt.Errorf("media: create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	originalPath := filepath.Join(tempDir, asset.Filename)
	if err := s.downloadOriginal(ctx, asset, originalPath); err != nil {
		return err
	}

	derivatives, err := s.produceDerivatives(ctx, asset, originalPath, tempDir)
	if err != nil {
		return err
	}

	for _, d := range derivatives {
		f, err := os.Open(d.path)
		if err != nil {
			return fmt.Errorf("media: open derivative %s: %w", d.path, err)
		}
		err = s.storage.Upload(ctx, d.key, f, d.contentType, d.size)
		f.Close()
		if err != nil {
			return fmt.Errorf("media: upload derivative %s: %w", d.key, err)
		}
	}
	return nil
}

func (s *Service) downloadOriginal(ctx context.Context, asset *Asset, destPath string) error {
	body, err := s.storage.Download(ctx, asset.StorageKey)
	if err != nil {
		return fmt.Errorf("media: download original: %w", err)
	}
	defer body.Close()

	f, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("media: create local original: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		return fmt.Errorf("media: write local original: %w", err)
	}
	return nil
}

// derivativeUpload pairs a produced derivative's local path with the
// storage key/content-type/size it uploads under.
type derivativeUpload struct {
	path        string
	key         string
	contentType string
	size        int64
}

func (s *Service) produceDerivatives(ctx context.Context, asset *Asset, originalPath, outDir string) ([]derivativeUpload, error) {
	var raw []collab.Derivative
	switch asset.AssetType {
	case AssetImage:
		if _, err := s.processor.ExtractImageMetadata(ctx, originalPath); err != nil {
			return nil, fmt.Errorf("media: extract image metadata: %w", err)
		}
		derivs, err := s.processor.ProcessImage(ctx, originalPath, outDir)
		if err != nil {
			return nil, fmt.Errorf("media: process image: %w", err)
		}
		raw = derivs
	case AssetVideo:
		if _, err := s.processor.ExtractVideoMetadata(ctx, originalPath); err != nil {
			return nil, fmt.Errorf("media: extract video metadata: %w", err)
		}
		out, err := s.processor.ProcessVideo(ctx, originalPath, outDir)
		if err != nil {
			return nil, fmt.Errorf("media: process video: %w", err)
		}
		raw = append(append([]collab.Derivative{}, out.Variants...), out.Poster)
	default:
		return nil, ErrInvalidAssetType
	}

	uploads := make([]derivativeUpload, 0, len(raw))
	for _, d := range raw {
		contentType := d.ContentType
		if contentType == "" {
			contentType = defaultDerivativeContentType
		}
		uploads = append(uploads, derivativeUpload{
			path:        filepath.Join(outDir, filepath.Base(d.StorageKey)),
			key:         fmt.Sprintf("%s/media/%s/%s/derivatives/%s", asset.TenantID, asset.AssetType, asset.ID, filepath.Base(d.StorageKey)),
			contentType: contentType,
			size:        d.SizeBytes,
		})
	}
	return uploads, nil
}
