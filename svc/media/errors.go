package media

import "errors"

var (
	// ErrNotFound is returned when an asset id doesn't resolve within the
	// current tenant.
	ErrNotFound = errors.New("media: asset not found")

	// ErrInvalidAssetType is returned for an asset type other than image
	// or video.
	ErrInvalidAssetType = errors.New("media: asset type must be image or video")

	// ErrInvalidSize is returned for a non-positive size.
	ErrInvalidSize = errors.New("media: size must be positive")

	// ErrMissingFilename is returned when filename or content type is blank.
	ErrMissingFilename = errors.New("media: filename and content type are required")

	// ErrQuotaExceeded is returned by NegotiateUpload when the tenant's
	// storage quota has no room for the requested size.
	ErrQuotaExceeded = errors.New("media: storage quota exceeded")

	// ErrInvalidStatus is returned when an operation's status
	// precondition isn't met (e.g. completing an asset not in uploading).
	ErrInvalidStatus = errors.New("media: asset is not in the expected status")

	// ErrMaxDownloadAttempts is returned once an asset's signed download
	// URL has been issued max_download_attempts times.
	ErrMaxDownloadAttempts = errors.New("media: max download attempts reached")
)
