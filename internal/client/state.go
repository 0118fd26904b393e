package client

// State is the phase of a lookup as seen by the form.
type State int

const (
	Idle State = iota
	Validating
	Submitting
	Succeeded
	Failed
	Offline
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Validating:
		return "validating"
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	case Offline:
		return "offline"
	default:
		return "unknown"
	}
}
