package dgus

import "errors"

// Kind classifies a rejected command.
type Kind uint8

const (
	KindBusy Kind = iota + 1
	KindPrecondition
	KindFeatureDisabled
)

func (k Kind) String() string {
	switch k {
	case KindBusy:
		return "busy"
	case KindPrecondition:
		return "precondition"
	case KindFeatureDisabled:
		return "feature disabled"
	}
	return "unknown"
}

// StatusError rejects a command without side effects. The dispatcher
// shows Message in the status slot.
type StatusError struct {
	Kind    Kind
	Message string
}

func (e *StatusError) Error() string {
	return e.Kind.String() + ": " + e.Message
}

// ErrIgnored marks input that is dropped without a message: unknown
// selectors, cancelled popups, empty buffers.
var ErrIgnored = errors.New("ignored")

func errBusy() error {
	return &StatusError{Kind: KindBusy, Message: MsgBusy}
}

func errPrecondition(msg string) error {
	return &StatusError{Kind: KindPrecondition, Message: msg}
}

func errFeature(msg string) error {
	return &StatusError{Kind: KindFeatureDisabled, Message: msg}
}

// StatusMessage extracts the user visible message of err, if any.
func StatusMessage(err error) (string, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Message, true
	}
	return "", false
}
