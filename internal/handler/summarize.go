package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/go-playground/validator/v10"

	"github.com/meetscribe/summarizer/internal/logger"
	"github.com/meetscribe/summarizer/internal/model"
	"github.com/meetscribe/summarizer/internal/service"
)

// Processor handles terminal transcription job notifications.
type Processor interface {
	Process(ctx context.Context, change model.JobStateChange) error
}

// SummarizeHandler consumes transcription job state change notifications
// delivered through the event bus.
type SummarizeHandler struct {
	service   Processor
	validate  *validator.Validate
	jobPrefix string
	log       logger.Logger
}

// NewSummarizeHandler creates the summarize handler
func NewSummarizeHandler(svc Processor, validate *validator.Validate, jobPrefix string, log logger.Logger) *SummarizeHandler {
	return &SummarizeHandler{
		service:   svc,
		validate:  validate,
		jobPrefix: jobPrefix,
		log:       log,
	}
}

// Handle validates the notification and hands terminal states to the
// service. Jobs whose names were not issued by this pipeline are ignored.
func (h *SummarizeHandler) Handle(ctx context.Context, event events.CloudWatchEvent) error {
	if len(event.Detail) == 0 {
		return fmt.Errorf("%w: missing detail", service.ErrInvalidEvent)
	}

	var change model.JobStateChange
	if err := json.Unmarshal(event.Detail, &change); err != nil {
		return fmt.Errorf("%w: %v", service.ErrInvalidEvent, err)
	}

	if err := h.validate.Struct(&change); err != nil {
		return fmt.Errorf("%w: %v", service.ErrInvalidEvent, err)
	}

	if !strings.HasPrefix(change.JobName, h.jobPrefix+"-") {
		h.log.Info(ctx, "ignoring job %s: not started by this pipeline", change.JobName)
		return nil
	}

	h.log.Debug(ctx, "job %s reported %s", change.JobName, change.JobStatus)

	return h.service.Process(ctx, change)
}
