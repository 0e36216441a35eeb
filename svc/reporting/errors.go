package reporting

import "errors"

var (
	// ErrNotFound is returned when a report job id doesn't resolve within
	// the current tenant.
	ErrNotFound = errors.New("reporting: job not found")

	// ErrInvalidReportType is returned for a blank report type.
	ErrInvalidReportType = errors.New("reporting: report type is required")

	// ErrInvalidFormat is returned for a format Export doesn't support.
	ErrInvalidFormat = errors.New("reporting: unsupported export format")

	// ErrInvalidAggregateType is returned for a blank aggregate type.
	ErrInvalidAggregateType = errors.New("reporting: aggregate type is required")
)
