package collab_test

import (
	"context"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dmitrymomot/commercecore/pkg/collab"
)

type fakePaymentProvider struct{}

func (fakePaymentProvider) CreateIntent(ctx context.Context, amount decimal.Decimal, currency string, metadata map[string]string, idempotencyKey string) (collab.PaymentIntentRef, error) {
	return collab.PaymentIntentRef("intent_" + idempotencyKey), nil
}

func (fakePaymentProvider) Webhook(ctx context.Context, signature string, body []byte) (collab.PaymentEvent, error) {
	return collab.PaymentEvent{}, nil
}

func (fakePaymentProvider) Refund(ctx context.Context, intentRef collab.PaymentIntentRef, amount decimal.Decimal) (collab.RefundRef, error) {
	return collab.RefundRef("refund_1"), nil
}

var _ collab.PaymentProvider = fakePaymentProvider{}

type fakeMediaProcessor struct{}

func (fakeMediaProcessor) ExtractImageMetadata(ctx context.Context, path string) (collab.ImageMetadata, error) {
	return collab.ImageMetadata{}, nil
}

func (fakeMediaProcessor) ProcessImage(ctx context.Context, path, outDir string) ([]collab.Derivative, error) {
	return nil, nil
}

func (fakeMediaProcessor) ExtractVideoMetadata(ctx context.Context, path string) (collab.VideoMetadata, error) {
	return collab.VideoMetadata{}, nil
}

func (fakeMediaProcessor) ProcessVideo(ctx context.Context, path, outDir string) (collab.VideoOutput, error) {
	return collab.VideoOutput{}, nil
}

var _ collab.MediaProcessor = fakeMediaProcessor{}

type fakeObjectStorage struct{}

func (fakeObjectStorage) PresignedUpload(ctx context.Context, key, contentType string, ttl time.Duration) (collab.PresignedUpload, error) {
	return collab.PresignedUpload{}, nil
}

func (fakeObjectStorage) SignedDownload(ctx context.Context, key string, ttl time.Duration) (string, error) {
	return "", nil
}

func (fakeObjectStorage) Upload(ctx context.Context, key string, body io.Reader, contentType string, size int64) error {
	return nil
}

func (fakeObjectStorage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	return nil, nil
}

func (fakeObjectStorage) Delete(ctx context.Context, key string) error {
	return nil
}

var _ collab.ObjectStorageClient = fakeObjectStorage{}
