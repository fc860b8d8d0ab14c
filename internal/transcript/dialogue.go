package transcript

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Turn is a maximal run of consecutive words attributed to one speaker.
// Speaker holds the raw diarization label, e.g. "spk_0"; it is empty when
// the document carries no speaker information at all.
type Turn struct {
	Speaker string
	Text    string
}

// window is a diarization segment with parsed time bounds.
type window struct {
	start float64
	end   float64
	label string
}

// Dialogue reconstructs the conversation as an ordered list of speaker
// turns. Words are attributed through their own speaker label when present,
// otherwise through the diarization segment whose time window covers the
// word's start time; unattributed words stay with the current speaker.
// Documents without any speaker information collapse to a single turn
// holding the full transcript text.
func (d *Document) Dialogue() ([]Turn, error) {
	if len(d.Results.Items) == 0 || !d.hasSpeakerInfo() {
		text := d.plainText()
		if text == "" {
			return nil, errors.New("transcript is empty")
		}
		return []Turn{{Text: text}}, nil
	}

	windows, err := d.segmentWindows()
	if err != nil {
		return nil, err
	}

	var turns []Turn
	next := 0
	for _, it := range d.Results.Items {
		switch it.Type {
		case itemPunctuation:
			if len(turns) == 0 || len(it.Alternatives) == 0 {
				continue
			}
			turns[len(turns)-1].Text += it.Alternatives[0].Content

		case itemPronunciation:
			if len(it.Alternatives) == 0 {
				return nil, errors.New("pronunciation item without alternatives")
			}
			label := it.SpeakerLabel
			if label == "" && len(windows) > 0 {
				t, err := strconv.ParseFloat(it.StartTime, 64)
				if err != nil {
					return nil, fmt.Errorf("item start_time %q: %w", it.StartTime, err)
				}
				for next < len(windows) && t >= windows[next].end {
					next++
				}
				if next < len(windows) && t >= windows[next].start {
					label = windows[next].label
				}
			}

			content := it.Alternatives[0].Content
			switch {
			case len(turns) == 0:
				turns = append(turns, Turn{Speaker: label, Text: content})
			case label == "" || label == turns[len(turns)-1].Speaker:
				turns[len(turns)-1].Text += " " + content
			default:
				turns = append(turns, Turn{Speaker: label, Text: content})
			}
		}
	}

	if len(turns) == 0 {
		return nil, errors.New("transcript has no spoken words")
	}
	return turns, nil
}

func (d *Document) segmentWindows() ([]window, error) {
	if d.Results.SpeakerLabels == nil {
		return nil, nil
	}
	segments := d.Results.SpeakerLabels.Segments
	windows := make([]window, 0, len(segments))
	for _, seg := range segments {
		start, err := strconv.ParseFloat(seg.StartTime, 64)
		if err != nil {
			return nil, fmt.Errorf("segment start_time %q: %w", seg.StartTime, err)
		}
		end, err := strconv.ParseFloat(seg.EndTime, 64)
		if err != nil {
			return nil, fmt.Errorf("segment end_time %q: %w", seg.EndTime, err)
		}
		windows = append(windows, window{start: start, end: end, label: seg.SpeakerLabel})
	}
	return windows, nil
}

// Render formats turns as the dialogue document: one line per turn,
// prefixed with a human-readable speaker name.
func Render(turns []Turn) string {
	var b strings.Builder
	for _, t := range turns {
		if t.Speaker == "" {
			b.WriteString(t.Text)
			b.WriteString("\n")
			continue
		}
		b.WriteString(displayName(t.Speaker))
		b.WriteString(": ")
		b.WriteString(t.Text)
		b.WriteString("\n")
	}
	return b.String()
}

// displayName converts a diarization label like "spk_0" to "Speaker 1".
// Labels outside that scheme pass through unchanged.
func displayName(label string) string {
	if n, ok := strings.CutPrefix(label, "spk_"); ok {
		if i, err := strconv.Atoi(n); err == nil && i >= 0 {
			return fmt.Sprintf("Speaker %d", i+1)
		}
	}
	return label
}
