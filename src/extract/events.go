package extract

// EventType is one of the engine's notifications. Progress events are
// non-decreasing; exactly one terminal event (Completed, Cancelled or
// Failed) ends every run, and nothing follows it.
type EventType string

const (
	Progress  EventType = "progress"
	Completed EventType = "completed"
	Cancelled EventType = "cancelled"
	Failed    EventType = "failed"
)

type Event struct {
	Type EventType

	// Percent of cells examined so far, 0-100. Set on Progress.
	Percent int

	// Saved and OutputDir are set on Completed.
	Saved     int
	OutputDir string

	// Message is set on Failed.
	Message string
}

// Terminal reports whether no further events will follow.
func (e Event) Terminal() bool {
	return e.Type != Progress
}
