package model

// Job status as reported by the transcription service
type JobStatus string

const (
	JobStatusQueued     JobStatus = "QUEUED"
	JobStatusInProgress JobStatus = "IN_PROGRESS"
	JobStatusCompleted  JobStatus = "COMPLETED"
	JobStatusFailed     JobStatus = "FAILED"
)

// TranscriptionJob describes a job submitted for a single media object.
type TranscriptionJob struct {
	Name          string    `json:"name"`
	Status        JobStatus `json:"status,omitempty"`
	MediaURI      string    `json:"mediaUri"`
	MediaFormat   string    `json:"mediaFormat"`
	OutputBucket  string    `json:"outputBucket"`
	OutputKey     string    `json:"outputKey"`
	FailureReason string    `json:"failureReason,omitempty"`
}
