// Package control defines the command messages hosts send to the countdown
// and the Loop that applies them. The Loop is the only goroutine touching the
// timer.Engine; commands and ticks are serialized through it.
package control

// CommandType enumerates supported command operations.
type CommandType int

const (
	CmdSubmit CommandType = iota
	CmdSetInput
	CmdStart
	CmdPause
	CmdReset
	CmdToggle
	CmdHistoryPrevious
	CmdHistoryNext
	CmdSetCompletionSound
)

func (t CommandType) String() string {
	switch t {
	case CmdSubmit:
		return "submit"
	case CmdSetInput:
		return "set-input"
	case CmdStart:
		return "start"
	case CmdPause:
		return "pause"
	case CmdReset:
		return "reset"
	case CmdToggle:
		return "toggle"
	case CmdHistoryPrevious:
		return "history-previous"
	case CmdHistoryNext:
		return "history-next"
	case CmdSetCompletionSound:
		return "set-completion-sound"
	default:
		return "unknown"
	}
}

// Command is the message sent from a host to Loop. Input carries the text for
// CmdSubmit and CmdSetInput and the sound name for CmdSetCompletionSound; an
// empty Input on CmdSubmit submits the engine's
// current input buffer. The optional Reply channel receives the result (the
// parse error for CmdSubmit, nil otherwise).
type Command struct {
	Type  CommandType
	Input string
	Reply chan error
}
