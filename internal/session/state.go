package session

type State int

const (
	Stopped State = iota
	Running
	Paused
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	default:
		return "stopped"
	}
}

// scheduler tracks the three inputs the frame loop state is derived from.
type scheduler struct {
	started bool
	paused  bool
	hidden  bool
}

func (s scheduler) state() State {
	switch {
	case !s.started || s.hidden:
		return Stopped
	case s.paused:
		return Paused
	default:
		return Running
	}
}
