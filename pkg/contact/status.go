package contact

// FailureMessage is the only error text shown to visitors.
const FailureMessage = "Failed to send. Please try again."

// State is the lifecycle state of a submission attempt.
type State int

const (
	StateIdle State = iota
	StateSending
	StateSent
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSending:
		return "sending"
	case StateSent:
		return "sent"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Status is the visitor-facing send status.
// Message is set only when State is StateFailed.
type Status struct {
	Message string
	State   State
}

var (
	statusIdle    = Status{State: StateIdle}
	statusSending = Status{State: StateSending}
	statusSent    = Status{State: StateSent}
	statusFailed  = Status{State: StateFailed, Message: FailureMessage}
)

func (s Status) IsIdle() bool    { return s.State == StateIdle }
func (s Status) IsSending() bool { return s.State == StateSending }
func (s Status) IsSent() bool    { return s.State == StateSent }
func (s Status) IsFailed() bool  { return s.State == StateFailed }

// Outcome is delivered once per Submit call when the delivery resolves.
type Outcome struct {
	// Status is the status the attempt resolved to.
	Status Status
	// Discarded is true when the surface was dismissed or reopened while
	// the delivery was in flight; the result was not applied.
	Discarded bool
}

// Snapshot is a consistent copy of a submission's state.
type Snapshot struct {
	Form   Form
	Status Status
	Open   bool
}
