package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetscribe/summarizer/internal/logger"
	"github.com/meetscribe/summarizer/internal/model"
)

const sampleJobName = "summarizer-46f1b2c9"

const sampleTranscript = `{
	"jobName": "summarizer-46f1b2c9",
	"status": "COMPLETED",
	"results": {
		"transcripts": [{"transcript": "Good morning. Hi. Budget first."}],
		"speaker_labels": {
			"speakers": 2,
			"segments": [
				{"start_time": "0.0", "end_time": "1.5", "speaker_label": "spk_0", "items": []},
				{"start_time": "1.5", "end_time": "2.4", "speaker_label": "spk_1", "items": []},
				{"start_time": "2.4", "end_time": "4.0", "speaker_label": "spk_0", "items": []}
			]
		},
		"items": [
			{"start_time": "0.04", "end_time": "0.40", "type": "pronunciation", "alternatives": [{"confidence": "0.99", "content": "Good"}], "speaker_label": "spk_0"},
			{"start_time": "0.45", "end_time": "0.90", "type": "pronunciation", "alternatives": [{"confidence": "0.99", "content": "morning"}], "speaker_label": "spk_0"},
			{"type": "punctuation", "alternatives": [{"confidence": "0.0", "content": "."}]},
			{"start_time": "1.60", "end_time": "1.90", "type": "pronunciation", "alternatives": [{"confidence": "0.98", "content": "Hi"}], "speaker_label": "spk_1"},
			{"type": "punctuation", "alternatives": [{"confidence": "0.0", "content": "."}]},
			{"start_time": "2.50", "end_time": "2.90", "type": "pronunciation", "alternatives": [{"confidence": "0.97", "content": "Budget"}], "speaker_label": "spk_0"},
			{"start_time": "3.00", "end_time": "3.40", "type": "pronunciation", "alternatives": [{"confidence": "0.99", "content": "first"}], "speaker_label": "spk_0"},
			{"type": "punctuation", "alternatives": [{"confidence": "0.0", "content": "."}]}
		]
	}
}`

const expectedDialogue = "Speaker 1: Good morning.\nSpeaker 2: Hi.\nSpeaker 1: Budget first.\n"

func newSummarizeService(store *fakeStore, transcriber *fakeTranscriber, generator *fakeGenerator) *SummarizeService {
	return NewSummarizeService(store, transcriber, generator, logger.New("error"))
}

func completed(jobName string) model.JobStateChange {
	return model.JobStateChange{JobName: jobName, JobStatus: model.JobStatusCompleted}
}

func TestProcessCompletedWritesDialogueAndSummary(t *testing.T) {
	store := newFakeStore()
	store.objects[model.TranscriptKey(sampleJobName)] = []byte(sampleTranscript)
	generator := &fakeGenerator{response: "The team started with the budget.\n\n- Review budget"}
	svc := newSummarizeService(store, &fakeTranscriber{}, generator)

	err := svc.Process(context.Background(), completed(sampleJobName))
	require.NoError(t, err)

	assert.Equal(t, []string{
		model.DialogueKey(sampleJobName),
		model.SummaryKey(sampleJobName),
	}, store.uploads)

	assert.Equal(t, expectedDialogue, string(store.objects[model.DialogueKey(sampleJobName)]))
	assert.Equal(t, generator.response, string(store.objects[model.SummaryKey(sampleJobName)]))

	require.Len(t, generator.prompts, 1)
	assert.Contains(t, generator.prompts[0], "Summarize the following transcript")
	assert.Contains(t, generator.prompts[0], expectedDialogue)
	require.Len(t, generator.systems, 1)
	assert.Contains(t, generator.systems[0], "summarizing conversations")
}

func TestProcessFailedJobWritesNothing(t *testing.T) {
	store := newFakeStore()
	generator := &fakeGenerator{}
	svc := newSummarizeService(store, &fakeTranscriber{}, generator)

	err := svc.Process(context.Background(), model.JobStateChange{
		JobName:       sampleJobName,
		JobStatus:     model.JobStatusFailed,
		FailureReason: "The media format didn't match the detected format.",
	})

	require.NoError(t, err)
	assert.Empty(t, store.uploads)
	assert.Empty(t, generator.prompts)
}

func TestProcessFailedJobLooksUpMissingReason(t *testing.T) {
	transcriber := &fakeTranscriber{
		job: &model.TranscriptionJob{
			Name:          sampleJobName,
			Status:        model.JobStatusFailed,
			FailureReason: "Invalid media file.",
		},
	}
	svc := newSummarizeService(newFakeStore(), transcriber, &fakeGenerator{})

	err := svc.Process(context.Background(), model.JobStateChange{
		JobName:   sampleJobName,
		JobStatus: model.JobStatusFailed,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, transcriber.getCalls)
}

func TestProcessFailedJobToleratesLookupFailure(t *testing.T) {
	transcriber := &fakeTranscriber{getErr: errors.New("access denied")}
	svc := newSummarizeService(newFakeStore(), transcriber, &fakeGenerator{})

	err := svc.Process(context.Background(), model.JobStateChange{
		JobName:   sampleJobName,
		JobStatus: model.JobStatusFailed,
	})

	assert.NoError(t, err)
}

func TestProcessSkipsWhenSummaryExists(t *testing.T) {
	store := newFakeStore()
	store.objects[model.TranscriptKey(sampleJobName)] = []byte(sampleTranscript)
	store.objects[model.SummaryKey(sampleJobName)] = []byte("already summarized")
	generator := &fakeGenerator{response: "new summary"}
	svc := newSummarizeService(store, &fakeTranscriber{}, generator)

	err := svc.Process(context.Background(), completed(sampleJobName))

	require.NoError(t, err)
	assert.Empty(t, store.uploads)
	assert.Empty(t, generator.prompts)
	assert.Equal(t, "already summarized", string(store.objects[model.SummaryKey(sampleJobName)]))
}

func TestProcessMissingTranscript(t *testing.T) {
	svc := newSummarizeService(newFakeStore(), &fakeTranscriber{}, &fakeGenerator{})

	err := svc.Process(context.Background(), completed(sampleJobName))

	assert.ErrorIs(t, err, ErrTranscriptParse)
}

func TestProcessMalformedTranscript(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "AccessDenied"},
		{"wrong shape", `{"Records": []}`},
		{"empty results", `{"results": {"transcripts": [{"transcript": ""}]}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			store.objects[model.TranscriptKey(sampleJobName)] = []byte(tt.body)
			svc := newSummarizeService(store, &fakeTranscriber{}, &fakeGenerator{})

			err := svc.Process(context.Background(), completed(sampleJobName))

			assert.ErrorIs(t, err, ErrTranscriptParse)
			assert.Empty(t, store.uploads)
		})
	}
}

func TestProcessGenerationFailureLeavesNoSummary(t *testing.T) {
	store := newFakeStore()
	store.objects[model.TranscriptKey(sampleJobName)] = []byte(sampleTranscript)
	generator := &fakeGenerator{err: errors.New("model timed out")}
	svc := newSummarizeService(store, &fakeTranscriber{}, generator)

	err := svc.Process(context.Background(), completed(sampleJobName))

	assert.ErrorIs(t, err, ErrGeneration)
	// The dialogue document is written before generation, the summary never is.
	assert.Equal(t, []string{model.DialogueKey(sampleJobName)}, store.uploads)
	assert.NotContains(t, store.objects, model.SummaryKey(sampleJobName))
}

func TestProcessExistsCheckFailure(t *testing.T) {
	store := newFakeStore()
	store.existsErr = errors.New("slow down")
	svc := newSummarizeService(store, &fakeTranscriber{}, &fakeGenerator{})

	err := svc.Process(context.Background(), completed(sampleJobName))

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrTranscriptParse)
}
