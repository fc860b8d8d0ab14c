package client

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/transcribe"
	"github.com/aws/aws-sdk-go-v2/service/transcribe/types"

	"github.com/meetscribe/summarizer/internal/config"
	"github.com/meetscribe/summarizer/internal/model"
)

// Transcriber defines the interface for the transcription service
type Transcriber interface {
	StartJob(ctx context.Context, job *model.TranscriptionJob) error
	GetJob(ctx context.Context, jobName string) (*model.TranscriptionJob, error)
}

// TranscribeClient implements Transcriber against AWS Transcribe
type TranscribeClient struct {
	api *transcribe.Client
	cfg *config.TranscribeConfig
}

// NewTranscribeClient creates a transcription client
func NewTranscribeClient(awsCfg aws.Config, cfg *config.TranscribeConfig) *TranscribeClient {
	return &TranscribeClient{
		api: transcribe.NewFromConfig(awsCfg),
		cfg: cfg,
	}
}

// StartJob submits a transcription job with speaker diarization enabled.
// The transcript document lands at the job's output bucket and key.
func (c *TranscribeClient) StartJob(ctx context.Context, job *model.TranscriptionJob) error {
	input := &transcribe.StartTranscriptionJobInput{
		TranscriptionJobName: aws.String(job.Name),
		Media: &types.Media{
			MediaFileUri: aws.String(job.MediaURI),
		},
		MediaFormat:      types.MediaFormat(job.MediaFormat),
		OutputBucketName: aws.String(job.OutputBucket),
		OutputKey:        aws.String(job.OutputKey),
		Settings: &types.Settings{
			ShowSpeakerLabels:     aws.Bool(true),
			MaxSpeakerLabels:      aws.Int32(int32(c.cfg.MaxSpeakers)),
			ChannelIdentification: aws.Bool(false),
			ShowAlternatives:      aws.Bool(false),
		},
	}

	if c.cfg.IdentifyLanguages {
		input.IdentifyMultipleLanguages = aws.Bool(true)
	} else {
		input.LanguageCode = types.LanguageCode(c.cfg.LanguageCode)
	}

	_, err := c.api.StartTranscriptionJob(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to start transcription job %s: %w", job.Name, err)
	}

	return nil
}

// GetJob fetches the current state of a transcription job
func (c *TranscribeClient) GetJob(ctx context.Context, jobName string) (*model.TranscriptionJob, error) {
	out, err := c.api.GetTranscriptionJob(ctx, &transcribe.GetTranscriptionJobInput{
		TranscriptionJobName: aws.String(jobName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get transcription job %s: %w", jobName, err)
	}

	tj := out.TranscriptionJob
	if tj == nil {
		return nil, fmt.Errorf("transcription job %s not found", jobName)
	}

	job := &model.TranscriptionJob{
		Name:          aws.ToString(tj.TranscriptionJobName),
		Status:        model.JobStatus(tj.TranscriptionJobStatus),
		FailureReason: aws.ToString(tj.FailureReason),
	}
	if tj.Media != nil {
		job.MediaURI = aws.ToString(tj.Media.MediaFileUri)
	}

	return job, nil
}
