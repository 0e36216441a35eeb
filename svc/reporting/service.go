package reporting

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/commercecore/pkg/jobqueue"
)

// supportedFormats lists the export encodings Export accepts.
var supportedFormats = map[string]bool{
	"csv": true,
}

// ProjectionService rebuilds the denormalized rows Export reads from.
type ProjectionService struct {
	store  ProjectionStore
	source AggregateSource
}

// NewProjectionService wires a projection refresh loop over store and
// source.
func NewProjectionService(store ProjectionStore, source AggregateSource) *ProjectionService {
	return &ProjectionService{store: store, source: source}
}

// Refresh recomputes one aggregate/period's projection row and stamps it
// with the time the computation ran, so readers can tell how stale it is.
func (p *ProjectionService) Refresh(ctx context.Context, tenantID uuid.UUID, aggregateType, period string) error {
	if aggregateType == "" {
		return ErrInvalidAggregateType
	}
	data, err := p.source.Aggregate(ctx, tenantID, aggregateType, period)
	if err != nil {
		return fmt.Errorf("reporting: aggregate: %w", err)
	}
	return p.store.Upsert(ctx, ProjectionRow{
		TenantID:               tenantID,
		AggregateType:          aggregateType,
		Period:                 period,
		Data:                   data,
		DataFreshnessTimestamp: time.Now().UTC(),
	})
}

// ExportJob is the payload an export job is enqueued with.
type ExportJob struct {
	TenantID uuid.UUID `json:"tenant_id"`
	JobID    uuid.UUID `json:"job_id"`
}

// Service drives ReportJob exports through their pending -> running ->
// completed|failed lifecycle.
type Service struct {
	jobs    JobRepository
	rows    ProjectionStore
	storage Storage
	enqueue Enqueuer
}

// NewService wires a reporting Service over its collaborators.
func NewService(jobs JobRepository, rows ProjectionStore, storage Storage, enqueue Enqueuer) *Service {
	return &Service{jobs: jobs, rows: rows, storage: storage, enqueue: enqueue}
}

// RequestExport validates and records a new export request, then enqueues
// the job that will actually run it.
func (s *Service) RequestExport(ctx context.Context, tenantID uuid.UUID, reportType, format string, params map[string]string) (*ReportJob, error) {
	if reportType == "" {
		return nil, ErrInvalidReportType
	}
	if !supportedFormats[format] {
		return nil, ErrInvalidFormat
	}

	job := &ReportJob{
		TenantID:   tenantID,
		ReportType: reportType,
		Format:     format,
		Params:     params,
		Status:     ReportPending,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.jobs.Save(ctx, job); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(ExportJob{TenantID: tenantID, JobID: job.ID})
	if err != nil {
		return nil, fmt.Errorf("reporting: encode export job: %w", err)
	}
	s.enqueue.Submit(jobqueue.NewJob(tenantID, "reporting.export", jobqueue.Default, payload))
	return job, nil
}

// ExportHandler runs a previously requested export job to completion.
func (s *Service) ExportHandler() jobqueue.Handler {
	return jobqueue.NewNamedTaskHandler("reporting.export", func(ctx context.Context, job ExportJob) error {
		return s.runExport(ctx, job.JobID)
	})
}

func (s *Service) runExport(ctx context.Context, jobID uuid.UUID) error {
	job, err := s.jobs.Get(ctx, jobID)
	if err != nil {
		return err
	}

	machine := buildJobMachine()
	if err := machine.Fire(ctx, eventStart, job); err != nil {
		return fmt.Errorf("reporting: start export: %w", err)
	}
	job.Status = ReportRunning
	if err := s.jobs.Save(ctx, job); err != nil {
		return err
	}

	key, downloadURL, runErr := s.build(ctx, job)
	now := time.Now().UTC()
	if runErr != nil {
		if err := machine.Fire(ctx, eventFail, job); err != nil {
			return fmt.Errorf("reporting: fail export: %w", err)
		}
		job.Status = ReportFailed
		job.FailReason = runErr.Error()
		job.CompletedAt = &now
		return s.jobs.Save(ctx, job)
	}

	if err := machine.Fire(ctx, eventSucceed, job); err != nil {
		return fmt.Errorf("reporting: complete export: %w", err)
	}
	job.Status = ReportCompleted
	job.StorageKey = key
	job.DownloadURL = downloadURL
	job.CompletedAt = &now
	return s.jobs.Save(ctx, job)
}

func (s *Service) build(ctx context.Context, job *ReportJob) (key, downloadURL string, err error) {
	rows, err := s.rows.Rows(ctx, job.TenantID, job.ReportType)
	if err != nil {
		return "", "", fmt.Errorf("reporting: load rows: %w", err)
	}

	body, err := encodeCSV(rows)
	if err != nil {
		return "", "", err
	}

	key = fmt.Sprintf("%s/reports/%s/%s.csv", job.TenantID, job.ReportType, job.ID)
	if err := s.storage.Upload(ctx, key, bytes.NewReader(body), "text/csv", int64(len(body))); err != nil {
		return "", "", fmt.Errorf("reporting: upload export: %w", err)
	}

	downloadURL, err = s.storage.SignedDownload(ctx, key, exportExpiry)
	if err != nil {
		return "", "", fmt.Errorf("reporting: sign export url: %w", err)
	}
	return key, downloadURL, nil
}

// encodeCSV renders projection rows as CSV, one column per key found
// across all rows plus the period and freshness columns, sorted for
// deterministic output.
func encodeCSV(rows []ProjectionRow) ([]byte, error) {
	columns := map[string]bool{}
	for _, row := range rows {
		for k := range row.Data {
			columns[k] = true
		}
	}
	sortedColumns := make([]string, 0, len(columns))
	for k := range columns {
		sortedColumns = append(sortedColumns, k)
	}
	sort.Strings(sortedColumns)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := append([]string{"period", "data_freshness_timestamp"}, sortedColumns...)
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("reporting: write csv header: %w", err)
	}

	for _, row := range rows {
		record := make([]string, 0, len(header))
		record = append(record, row.Period, row.DataFreshnessTimestamp.Format(time.RFC3339))
		for _, col := range sortedColumns {
			record = append(record, fmt.Sprint(row.Data[col]))
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("reporting: write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
