package events

import (
	"fmt"
	"strconv"
	"time"
)

type TrainingStart struct {
	ID        int       `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

type TrainingFinish struct {
	ID        int       `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Calories  int       `json:"calories"`
}

type WeightReport struct {
	ID        int       `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	WeightKg  float64   `json:"weightKg"`
}

// Event (DB level type) is used for events coming from the ios app and
// from the backend itself, such as:
//   - training started (with timestamp)
//   - training finished (with timestamp, calories burned, etc.)
//   - weight report (with timestamp and body weight in kilos)
//   - stats shadow mismatch / error (emitted by the stats facade)
type Event struct {
	ID        int               `json:"id"`
	Type      EventType         `json:"type"`
	Timestamp time.Time         `json:"timestamp"`
	Data      map[string]string `json:"data"`
}

func NewTrainingStartEvent(ts TrainingStart) Event {
	return Event{
		ID:        ts.ID,
		Type:      EventTypeTrainingStarted,
		Timestamp: ts.Timestamp,
		Data:      map[string]string{},
	}
}

func NewTrainingFinishEvent(tf TrainingFinish) Event {
	return Event{
		ID:        tf.ID,
		Type:      EventTypeTrainingFinished,
		Timestamp: tf.Timestamp,
		Data: map[string]string{
			"calories": fmt.Sprintf("%d", tf.Calories),
		},
	}
}

func NewWeightReportEvent(wr WeightReport) Event {
	return Event{
		ID:        wr.ID,
		Type:      EventTypeWeightReport,
		Timestamp: wr.Timestamp,
		Data: map[string]string{
			"weightKg": strconv.FormatFloat(wr.WeightKg, 'f', -1, 64),
		},
	}
}

func NewShadowMismatchEvent(timestamp time.Time, mismatches []string) Event {
	data := map[string]string{
		"count": fmt.Sprintf("%d", len(mismatches)),
	}
	for i, path := range mismatches {
		data[fmt.Sprintf("mismatch.%d", i)] = path
	}
	return Event{
		Type:      EventTypeStatsShadowMismatch,
		Timestamp: timestamp,
		Data:      data,
	}
}

func NewShadowErrorEvent(timestamp time.Time, shadowErr error) Event {
	return Event{
		Type:      EventTypeStatsShadowError,
		Timestamp: timestamp,
		Data: map[string]string{
			"error": shadowErr.Error(),
		},
	}
}

// EventType can be one of:
//   - training_started
//   - training_finished
//   - weight_report
//   - stats_shadow_mismatch
//   - stats_shadow_error
type EventType string

const (
	EventTypeTrainingStarted     EventType = "training_started"
	EventTypeTrainingFinished    EventType = "training_finished"
	EventTypeWeightReport        EventType = "weight_report"
	EventTypeStatsShadowMismatch EventType = "stats_shadow_mismatch"
	EventTypeStatsShadowError    EventType = "stats_shadow_error"
)

func (et EventType) String() string {
	return string(et)
}

func (et EventType) IsValid() bool {
	switch et {
	case EventTypeTrainingStarted,
		EventTypeTrainingFinished,
		EventTypeWeightReport,
		EventTypeStatsShadowMismatch,
		EventTypeStatsShadowError:
		return true
	default:
		return false
	}
}
