package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/meetscribe/summarizer/internal/client"
	"github.com/meetscribe/summarizer/internal/logger"
	"github.com/meetscribe/summarizer/internal/model"
	"github.com/meetscribe/summarizer/internal/transcript"
)

const systemPrompt = "You are an AI assistant that excels at summarizing conversations."

const promptTemplate = `Summarize the following transcript into one or more clear and readable paragraphs. Speakers are denoted as "Speaker 1", "Speaker 2", and so forth. Capture the ideas discussed, any hot topics you identify, and any other interesting parts of the conversation between the speakers. At the end of your summary, give a bullet point list of the key action items, to-do's, and followup activities:

%s`

const dialogueContentType = "text/plain; charset=utf-8"

// SummarizeService turns a finished transcription job into a speaker
// attributed dialogue document and a generated summary.
type SummarizeService struct {
	store       client.ObjectStore
	transcriber client.Transcriber
	generator   client.TextGenerator
	log         logger.Logger
}

// NewSummarizeService creates the summarize service
func NewSummarizeService(store client.ObjectStore, transcriber client.Transcriber, generator client.TextGenerator, log logger.Logger) *SummarizeService {
	return &SummarizeService{
		store:       store,
		transcriber: transcriber,
		generator:   generator,
		log:         log,
	}
}

// Process handles a terminal job notification. Failed jobs are logged and
// acknowledged so the notification is not redelivered; completed jobs are
// summarized.
func (s *SummarizeService) Process(ctx context.Context, change model.JobStateChange) error {
	if change.JobStatus == model.JobStatusFailed {
		s.logFailure(ctx, change)
		return nil
	}

	return s.summarize(ctx, change.JobName)
}

// logFailure records why a job failed. The notification usually carries the
// reason; when it does not, the job record is consulted best-effort.
func (s *SummarizeService) logFailure(ctx context.Context, change model.JobStateChange) {
	reason := change.FailureReason
	if reason == "" {
		if job, err := s.transcriber.GetJob(ctx, change.JobName); err == nil {
			reason = job.FailureReason
		}
	}
	if reason == "" {
		reason = "unknown"
	}

	s.log.Warn(ctx, "transcription job %s failed: %s", change.JobName, reason)
}

func (s *SummarizeService) summarize(ctx context.Context, jobName string) error {
	summaryKey := model.SummaryKey(jobName)

	// Notifications are delivered at least once.
	exists, err := s.store.Exists(ctx, summaryKey)
	if err != nil {
		return fmt.Errorf("check summary for %s: %w", jobName, err)
	}
	if exists {
		s.log.Info(ctx, "summary %s already exists, skipping", s.store.URI(summaryKey))
		return nil
	}

	data, err := s.store.Download(ctx, model.TranscriptKey(jobName))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTranscriptParse, err)
	}

	doc, err := transcript.Parse(data)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTranscriptParse, err)
	}

	turns, err := doc.Dialogue()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTranscriptParse, err)
	}

	dialogue := transcript.Render(turns)
	dialogueKey := model.DialogueKey(jobName)
	if err := s.store.Upload(ctx, dialogueKey, strings.NewReader(dialogue), dialogueContentType); err != nil {
		return fmt.Errorf("write dialogue for %s: %w", jobName, err)
	}
	s.log.Debug(ctx, "dialogue document written to %s", s.store.URI(dialogueKey))

	summary, err := s.generator.Generate(ctx, systemPrompt, fmt.Sprintf(promptTemplate, dialogue))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	if err := s.store.Upload(ctx, summaryKey, strings.NewReader(summary), dialogueContentType); err != nil {
		return fmt.Errorf("write summary for %s: %w", jobName, err)
	}

	s.log.Info(ctx, "summary written to %s", s.store.URI(summaryKey))

	return nil
}
