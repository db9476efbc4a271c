package health

import "strconv"

// State is the binary health verdict of a check or of the aggregate.
type State int

const (
	// StateUp indicates the component is functioning.
	StateUp State = iota
	// StateDown indicates the component has failed.
	StateDown
)

// String returns "UP" or "DOWN". Out-of-range values render as State(n).
func (s State) String() string {
	switch s {
	case StateUp:
		return "UP"
	case StateDown:
		return "DOWN"
	default:
		return "State(" + strconv.Itoa(int(s)) + ")"
	}
}

// Valid reports whether s is StateUp or StateDown.
func (s State) Valid() bool {
	return s == StateUp || s == StateDown
}

// ParseState parses "UP" or "DOWN". Matching is exact.
func ParseState(s string) (State, error) {
	switch s {
	case "UP":
		return StateUp, nil
	case "DOWN":
		return StateDown, nil
	default:
		return StateUp, deserializationError("status", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, serializationError("status", s.String())
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(text []byte) error {
	state, err := ParseState(string(text))
	if err != nil {
		return err
	}
	*s = state
	return nil
}
