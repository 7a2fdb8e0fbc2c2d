package classify

import "fmt"

// state is the per-classification lifecycle. Transitions are strictly
// forward except that any state may jump directly to stateReleased on
// failure.
type state int

const (
	stateInit state = iota
	stateStaged
	stateConditioned
	stateClassified
	stateDelivered
	stateReleased
)

func (s state) String() string {
	switch s {
	case stateInit:
		return "init"
	case stateStaged:
		return "staged"
	case stateConditioned:
		return "conditioned"
	case stateClassified:
		return "classified"
	case stateDelivered:
		return "delivered"
	case stateReleased:
		return "released"
	default:
		return "unknown"
	}
}

// transition moves from s to to, rejecting any move that is neither one
// step forward nor a jump to stateReleased.
func (s state) transition(to state) (state, error) {
	if to == stateReleased {
		return stateReleased, nil
	}
	if to == s+1 {
		return to, nil
	}
	return s, fmt.Errorf("classify: illegal state transition %s -> %s", s, to)
}
