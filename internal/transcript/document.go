package transcript

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Document is the JSON document the transcription service writes to the
// output bucket when a job finishes.
type Document struct {
	JobName string  `json:"jobName"`
	Status  string  `json:"status"`
	Results Results `json:"results"`
}

type Results struct {
	Transcripts   []TranscriptText `json:"transcripts"`
	SpeakerLabels *SpeakerLabels   `json:"speaker_labels,omitempty"`
	Items         []Item           `json:"items,omitempty"`
}

type TranscriptText struct {
	Transcript string `json:"transcript"`
}

// SpeakerLabels carries the diarization result: per-speaker time segments
// covering the recording.
type SpeakerLabels struct {
	Speakers int       `json:"speakers"`
	Segments []Segment `json:"segments"`
}

type Segment struct {
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	SpeakerLabel string `json:"speaker_label"`
}

// Item is a single recognized word or punctuation mark. Punctuation items
// carry no timestamps and no speaker label.
type Item struct {
	StartTime    string        `json:"start_time,omitempty"`
	EndTime      string        `json:"end_time,omitempty"`
	Type         string        `json:"type"`
	Alternatives []Alternative `json:"alternatives"`
	SpeakerLabel string        `json:"speaker_label,omitempty"`
}

type Alternative struct {
	Confidence string `json:"confidence"`
	Content    string `json:"content"`
}

const (
	itemPronunciation = "pronunciation"
	itemPunctuation   = "punctuation"
)

// Parse decodes a transcript document and rejects payloads that carry
// neither recognized items nor a full-text transcript.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode transcript: %w", err)
	}
	if len(doc.Results.Items) == 0 && len(doc.Results.Transcripts) == 0 {
		return nil, errors.New("transcript has no results")
	}
	return &doc, nil
}

func (d *Document) plainText() string {
	for _, t := range d.Results.Transcripts {
		if t.Transcript != "" {
			return t.Transcript
		}
	}
	return ""
}

func (d *Document) hasSpeakerInfo() bool {
	if d.Results.SpeakerLabels != nil && len(d.Results.SpeakerLabels.Segments) > 0 {
		return true
	}
	for _, it := range d.Results.Items {
		if it.SpeakerLabel != "" {
			return true
		}
	}
	return false
}
