package objectstorage

import "errors"

var (
	// ErrInvalidConfig is returned when Config is missing a bucket or region.
	ErrInvalidConfig = errors.New("objectstorage: invalid config")

	// ErrFailedToLoadConfig is returned when the AWS SDK can't resolve a
	// credentials chain.
	ErrFailedToLoadConfig = errors.New("objectstorage: failed to load aws config")

	// ErrNotFound is returned when the requested key doesn't exist.
	ErrNotFound = errors.New("objectstorage: object not found")

	// ErrBucketNotFound is returned when the configured bucket doesn't exist.
	ErrBucketNotFound = errors.New("objectstorage: bucket not found")

	// ErrAccessDenied is returned when the credentials lack permission for
	// the attempted operation.
	ErrAccessDenied = errors.New("objectstorage: access denied")

	// ErrOperationTimeout is returned when the request's context deadline
	// elapses before S3 responds.
	ErrOperationTimeout = errors.New("objectstorage: operation timed out")
)
