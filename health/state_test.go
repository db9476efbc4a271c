package health

import (
	"errors"
	"testing"
)

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateUp, "UP"},
		{StateDown, "DOWN"},
		{State(7), "State(7)"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", int(tt.state), got, tt.want)
		}
	}
}

func TestParseState(t *testing.T) {
	tests := []struct {
		input   string
		want    State
		wantErr bool
	}{
		{"UP", StateUp, false},
		{"DOWN", StateDown, false},
		{"up", StateUp, true},
		{"Down", StateUp, true},
		{"UNKNOWN", StateUp, true},
		{"", StateUp, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseState(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseState(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidData) {
					t.Errorf("error should wrap ErrInvalidData, got %v", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseState(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestState_MarshalText_Invalid(t *testing.T) {
	_, err := State(5).MarshalText()

	var ide *InvalidDataError
	if !errors.As(err, &ide) {
		t.Fatalf("MarshalText() error = %v, want *InvalidDataError", err)
	}
	if ide.Kind != KindSerialization {
		t.Errorf("Kind = %v, want %v", ide.Kind, KindSerialization)
	}
}

func TestState_UnmarshalText(t *testing.T) {
	var s State
	if err := s.UnmarshalText([]byte("DOWN")); err != nil {
		t.Fatalf("UnmarshalText() error = %v", err)
	}
	if s != StateDown {
		t.Errorf("State = %v, want DOWN", s)
	}

	if err := s.UnmarshalText([]byte("SIDEWAYS")); err == nil {
		t.Error("UnmarshalText(SIDEWAYS) should fail")
	}
	if s != StateDown {
		t.Errorf("failed UnmarshalText changed state to %v", s)
	}
}
