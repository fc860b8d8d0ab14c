package model

// Transcribe job state change events as delivered by EventBridge
const (
	TranscribeEventSource    = "aws.transcribe"
	TranscribeJobStateDetail = "Transcribe Job State Change"
)

// JobStateChange is the detail payload of a Transcribe job state change
// notification. Only terminal states are accepted; in-flight states never
// reach the handler and are rejected if they do.
type JobStateChange struct {
	JobName       string    `json:"TranscriptionJobName" validate:"required"`
	JobStatus     JobStatus `json:"TranscriptionJobStatus" validate:"required,oneof=COMPLETED FAILED"`
	FailureReason string    `json:"FailureReason,omitempty"`
}
