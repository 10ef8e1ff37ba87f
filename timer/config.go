package timer

import "time"

// State is the coarse state of the countdown.
type State int

const (
	// StateIdle covers both an empty timer and one paused at a value.
	StateIdle State = iota
	StateRunning
	// StateCompleted is entered when a running countdown reaches zero and is
	// left on the next start, reset or accepted input.
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	default:
		return "idle"
	}
}

const (
	// HistoryLimit bounds the accepted-input history.
	HistoryLimit = 20

	// DefaultTickInterval is the cadence hosts tick the engine at.
	DefaultTickInterval = 100 * time.Millisecond

	// DefaultCompletionSound is played when a countdown finishes.
	DefaultCompletionSound = "Bell"
)

// UI constants
const (
	FontSizeTime   float32 = 34.0
	FontSizeStatus float32 = 11.0

	WindowWidth  = 320
	WindowHeight = 260
	ProgressGap  = 4
)

// Messages holds the user-visible strings the engine produces. Hosts replace
// them with translated versions.
type Messages struct {
	// TimerSet is a format string receiving the formatted duration.
	TimerSet          string
	EmptyInput        string
	Unrecognized      string
	Completed         string
	NotificationTitle string
	NotificationBody  string
}

// DefaultMessages returns the English messages.
func DefaultMessages() Messages {
	return Messages{
		TimerSet:          "Timer set for %s",
		EmptyInput:        "Please enter a duration",
		Unrecognized:      "Could not understand input. Try something like '1 hour 30 minutes'",
		Completed:         "Countdown completed!",
		NotificationTitle: "Countdown Timer",
		NotificationBody:  "Your countdown has finished!",
	}
}
