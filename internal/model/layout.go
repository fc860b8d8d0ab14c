package model

import "fmt"

// Bucket layout. A single bucket carries the whole pipeline: uploads land
// under source/, raw transcripts and dialogue documents under transcription/,
// finished summaries under processed/.
const (
	SourcePrefix        = "source/"
	TranscriptionPrefix = "transcription/"
	ProcessedPrefix     = "processed/"
)

// TranscriptKey returns the key the transcription service writes the raw
// transcript document to.
func TranscriptKey(jobName string) string {
	return TranscriptionPrefix + jobName + ".json"
}

// DialogueKey returns the key of the speaker-attributed dialogue document
// derived from the raw transcript.
func DialogueKey(jobName string) string {
	return TranscriptionPrefix + jobName + ".txt"
}

// SummaryKey returns the key of the generated summary.
func SummaryKey(jobName string) string {
	return ProcessedPrefix + jobName + ".txt"
}

// MediaURI builds the s3:// URI for an object.
func MediaURI(bucket, key string) string {
	return fmt.Sprintf("s3://%s/%s", bucket, key)
}
