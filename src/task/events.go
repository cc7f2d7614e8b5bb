package task

import "time"

type TaskEvent struct {
	JobID     string        `json:"job_id,omitempty"`
	Type      TaskEventType `json:"type"`
	Percent   int           `json:"percent,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

type TaskEventType string

const (
	Started         TaskEventType = "started"
	Downloaded      TaskEventType = "downloaded"
	Decoded         TaskEventType = "decoded"
	Extracting      TaskEventType = "extracting"
	ExtractProgress TaskEventType = "extract-progress"
	ExtractComplete TaskEventType = "extract-complete"
	Encoding        TaskEventType = "encoding"
	EncodeComplete  TaskEventType = "encode-complete"
	Failed          TaskEventType = "failed"
	Completed       TaskEventType = "completed"
	Stopped         TaskEventType = "stopped"
	Cleaned         TaskEventType = "cleaned"
)
