package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetscribe/summarizer/internal/config"
	"github.com/meetscribe/summarizer/internal/logger"
)

func newIngestService(transcriber *fakeTranscriber) *IngestService {
	cfg := &config.Config{
		Storage: config.StorageConfig{Bucket: "meeting-recordings"},
		Transcribe: config.TranscribeConfig{
			JobPrefix:         "summarizer",
			MediaFormats:      []string{"mp3", "mp4", "wav", "flac", "ogg", "amr", "webm", "m4a"},
			MaxSpeakers:       10,
			IdentifyLanguages: true,
		},
	}
	return NewIngestService(transcriber, cfg, logger.New("error"))
}

func TestStartJobSubmitsTranscription(t *testing.T) {
	transcriber := &fakeTranscriber{}
	svc := newIngestService(transcriber)

	job, err := svc.StartJob(context.Background(), "upload-bucket", "source/team sync.mp3")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(job.Name, "summarizer-"), "job name %q", job.Name)
	assert.Equal(t, "s3://upload-bucket/source/team sync.mp3", job.MediaURI)
	assert.Equal(t, "mp3", job.MediaFormat)
	assert.Equal(t, "meeting-recordings", job.OutputBucket)
	assert.Equal(t, "transcription/"+job.Name+".json", job.OutputKey)

	require.Len(t, transcriber.started, 1)
	assert.Same(t, job, transcriber.started[0])
}

func TestStartJobNamesAreUnique(t *testing.T) {
	transcriber := &fakeTranscriber{}
	svc := newIngestService(transcriber)

	first, err := svc.StartJob(context.Background(), "b", "source/a.mp3")
	require.NoError(t, err)
	second, err := svc.StartJob(context.Background(), "b", "source/a.mp3")
	require.NoError(t, err)

	assert.NotEqual(t, first.Name, second.Name)

	suffix := strings.TrimPrefix(first.Name, "summarizer-")
	assert.Len(t, suffix, 32)
	assert.NotContains(t, suffix, "-")
}

func TestStartJobNormalizesExtensionCase(t *testing.T) {
	transcriber := &fakeTranscriber{}
	svc := newIngestService(transcriber)

	job, err := svc.StartJob(context.Background(), "b", "source/ALL-HANDS.MP3")
	require.NoError(t, err)

	assert.Equal(t, "mp3", job.MediaFormat)
}

func TestStartJobRejectsUnsupportedMedia(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{"unsupported extension", "source/notes.txt"},
		{"no extension", "source/recording"},
		{"trailing dot", "source/recording."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transcriber := &fakeTranscriber{}
			svc := newIngestService(transcriber)

			_, err := svc.StartJob(context.Background(), "b", tt.key)

			assert.ErrorIs(t, err, ErrUnsupportedFormat)
			assert.Empty(t, transcriber.started)
		})
	}
}

func TestStartJobPropagatesTranscribeFailure(t *testing.T) {
	errBoom := errors.New("rate exceeded")
	transcriber := &fakeTranscriber{startErr: errBoom}
	svc := newIngestService(transcriber)

	_, err := svc.StartJob(context.Background(), "b", "source/a.mp3")

	assert.ErrorIs(t, err, errBoom)
}
