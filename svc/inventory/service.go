package inventory

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/commercecore/pkg/jobqueue"
	"github.com/dmitrymomot/commercecore/pkg/qrcode"
)

// BarcodeLabelJob is the payload enqueued at Low priority whenever a
// transfer is created - the destination location needs a printable label
// for the incoming stock, and nothing about printing it is urgent enough
// to compete with checkout or payment jobs.
type BarcodeLabelJob struct {
	TenantID   uuid.UUID `json:"tenant_id"`
	TransferID uuid.UUID `json:"transfer_id"`
	VariantID  uuid.UUID `json:"variant_id"`
}

// Service implements inventory transfers and ad hoc adjustments.
type Service struct {
	levels      LevelRepository
	transfers   TransferRepository
	adjustments AdjustmentRepository
	jobs        Enqueuer
}

// NewService builds a Service.
func NewService(levels LevelRepository, transfers TransferRepository, adjustments AdjustmentRepository, jobs Enqueuer) *Service {
	return &Service{levels: levels, transfers: transfers, adjustments: adjustments, jobs: jobs}
}

// CreateTransfer reserves qty of variantID at source, records a pending
// Transfer, and schedules a barcode-label job for the destination. It
// never touches the destination's Level - that happens on receipt.
func (s *Service) CreateTransfer(ctx context.Context, tenantID, variantID uuid.UUID, source, dest string, qty int) (*Transfer, error) {
	if source == dest {
		return nil, ErrSameLocation
	}
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}

	if err := s.levels.Reserve(ctx, variantID, source, qty); err != nil {
		return nil, err
	}

	transfer := &Transfer{
		TenantID:         tenantID,
		VariantID:        variantID,
		SourceLocationID: source,
		DestLocationID:   dest,
		Quantity:         qty,
		Status:           TransferPending,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.transfers.Save(ctx, transfer); err != nil {
		_ = s.levels.Release(ctx, variantID, source, qty)
		return nil, err
	}

	s.enqueueLabel(tenantID, transfer)
	return transfer, nil
}

// ReceiveTransfer commits the reservation at the source location and
// credits the destination, marking the transfer received.
func (s *Service) ReceiveTransfer(ctx context.Context, id uuid.UUID) (*Transfer, error) {
	transfer, err := s.transfers.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if transfer.Status != TransferPending {
		return nil, ErrTransferNotPending
	}

	if err := s.levels.CommitReservation(ctx, transfer.VariantID, transfer.SourceLocationID, transfer.Quantity); err != nil {
		return nil, err
	}
	if err := s.levels.Credit(ctx, transfer.VariantID, transfer.DestLocationID, transfer.Quantity); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	transfer.Status = TransferReceived
	transfer.ReceivedAt = &now
	if err := s.transfers.Save(ctx, transfer); err != nil {
		return nil, err
	}
	return transfer, nil
}

// CancelTransfer releases the reservation at the source location and
// marks the transfer cancelled without ever crediting the destination.
func (s *Service) CancelTransfer(ctx context.Context, id uuid.UUID) (*Transfer, error) {
	transfer, err := s.transfers.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if transfer.Status != TransferPending {
		return nil, ErrTransferNotPending
	}

	if err := s.levels.Release(ctx, transfer.VariantID, transfer.SourceLocationID, transfer.Quantity); err != nil {
		return nil, err
	}

	transfer.Status = TransferCancelled
	if err := s.transfers.Save(ctx, transfer); err != nil {
		return nil, err
	}
	return transfer, nil
}

// RecordAdjustment applies delta directly to a location's on-hand
// quantity (outside of any transfer) and writes the audit row explaining
// why.
func (s *Service) RecordAdjustment(ctx context.Context, tenantID, variantID uuid.UUID, locationID string, delta int, reason AdjustmentReason) error {
	if err := s.levels.Adjust(ctx, variantID, locationID, delta); err != nil {
		return err
	}
	return s.adjustments.Save(ctx, &Adjustment{
		TenantID:   tenantID,
		VariantID:  variantID,
		LocationID: locationID,
		Delta:      delta,
		Reason:     reason,
		CreatedAt:  time.Now().UTC(),
	})
}

// Level returns the current stock level for variantID at locationID.
func (s *Service) Level(ctx context.Context, variantID uuid.UUID, locationID string) (*Level, error) {
	return s.levels.Get(ctx, variantID, locationID)
}

func (s *Service) enqueueLabel(tenantID uuid.UUID, transfer *Transfer) {
	if s.jobs == nil {
		return
	}
	payload, err := json.Marshal(BarcodeLabelJob{
		TenantID:   tenantID,
		TransferID: transfer.ID,
		VariantID:  transfer.VariantID,
	})
	if err != nil {
		return
	}
	s.jobs.Submit(jobqueue.NewJob(tenantID, "inventory.barcode_label", jobqueue.Low, payload))
}

// BarcodeLabelHandler returns the typed jobqueue.Handler barcode-label
// jobs are processed by: it renders a QR code encoding the transfer id so
// a warehouse scanner can look up the shipment on receipt.
func (s *Service) BarcodeLabelHandler() jobqueue.Handler {
	return jobqueue.NewNamedTaskHandler("inventory.barcode_label", func(ctx context.Context, job BarcodeLabelJob) error {
		_, err := qrcode.Generate(job.TransferID.String(), 256)
		return err
	})
}
