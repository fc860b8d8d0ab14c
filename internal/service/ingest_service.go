package service

import (
	"context"
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/meetscribe/summarizer/internal/client"
	"github.com/meetscribe/summarizer/internal/config"
	"github.com/meetscribe/summarizer/internal/logger"
	"github.com/meetscribe/summarizer/internal/model"
)

// IngestService starts a transcription job for every media object that
// lands under the source prefix.
type IngestService struct {
	transcriber  client.Transcriber
	cfg          *config.TranscribeConfig
	outputBucket string
	log          logger.Logger
}

// NewIngestService creates the ingest service
func NewIngestService(transcriber client.Transcriber, cfg *config.Config, log logger.Logger) *IngestService {
	return &IngestService{
		transcriber:  transcriber,
		cfg:          &cfg.Transcribe,
		outputBucket: cfg.Storage.Bucket,
		log:          log,
	}
}

// StartJob submits a transcription job for a media object and returns the
// job description. The job name carries the configured prefix so the
// completion handler can tell its own jobs apart from unrelated ones.
func (s *IngestService) StartJob(ctx context.Context, bucket, key string) (*model.TranscriptionJob, error) {
	format, err := s.mediaFormat(key)
	if err != nil {
		return nil, err
	}

	job := &model.TranscriptionJob{
		Name:         s.newJobName(),
		MediaURI:     model.MediaURI(bucket, key),
		MediaFormat:  format,
		OutputBucket: s.outputBucket,
	}
	job.OutputKey = model.TranscriptKey(job.Name)

	if err := s.transcriber.StartJob(ctx, job); err != nil {
		return nil, fmt.Errorf("start transcription for %s: %w", job.MediaURI, err)
	}

	s.log.Info(ctx, "transcription job %s started for %s (%s)", job.Name, job.MediaURI, format)

	return job, nil
}

// mediaFormat derives the media format from the object key's extension.
func (s *IngestService) mediaFormat(key string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(key), "."))
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no file extension", ErrUnsupportedFormat, key)
	}
	if !slices.Contains(s.cfg.MediaFormats, ext) {
		return "", fmt.Errorf("%w: .%s", ErrUnsupportedFormat, ext)
	}
	return ext, nil
}

// newJobName builds a collision-free job name. Transcribe job names only
// allow letters, digits, dots, underscores and hyphens.
func (s *IngestService) newJobName() string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")
	return s.cfg.JobPrefix + "-" + suffix
}
