package handler

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"github.com/meetscribe/summarizer/internal/logger"
	"github.com/meetscribe/summarizer/internal/model"
	"github.com/meetscribe/summarizer/internal/service"
)

// Ingester starts transcription jobs for uploaded media objects.
type Ingester interface {
	StartJob(ctx context.Context, bucket, key string) (*model.TranscriptionJob, error)
}

// IngestHandler consumes object-created notifications for the source prefix
// and starts a transcription job per media object.
type IngestHandler struct {
	service Ingester
	log     logger.Logger
}

// NewIngestHandler creates the ingest handler
func NewIngestHandler(svc Ingester, log logger.Logger) *IngestHandler {
	return &IngestHandler{
		service: svc,
		log:     log,
	}
}

// Handle processes every record in the notification. The first failing
// record fails the invocation; records before it have already started
// their jobs and are not rolled back.
func (h *IngestHandler) Handle(ctx context.Context, event events.S3Event) error {
	if len(event.Records) == 0 {
		return fmt.Errorf("%w: no records", service.ErrInvalidEvent)
	}

	for _, record := range event.Records {
		bucket := record.S3.Bucket.Name
		rawKey := record.S3.Object.Key
		if bucket == "" || rawKey == "" {
			return fmt.Errorf("%w: record without bucket or key", service.ErrInvalidEvent)
		}

		// Object keys arrive URL-encoded in storage notifications.
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return fmt.Errorf("%w: undecodable object key %q", service.ErrInvalidEvent, rawKey)
		}

		if strings.HasSuffix(key, "/") {
			h.log.Debug(ctx, "skipping folder marker s3://%s/%s", bucket, key)
			continue
		}

		if _, err := h.service.StartJob(ctx, bucket, key); err != nil {
			h.log.Error(ctx, "ingest failed for s3://%s/%s: %v", bucket, key, err)
			return err
		}
	}

	return nil
}
