package health

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/jonwraymond/healthstatus/observe"
)

// Status is an immutable snapshot of aggregate health: a State, the failure
// descriptions that produced it, and the instant it was computed.
//
// The timestamp is held as epoch milliseconds. It is serialized with
// TimestampLayout, which carries whole seconds only, so Equal compares
// timestamps at that precision.
type Status struct {
	state   State
	details []string
	ts      int64
}

// NewStatus returns a Status stamped with the current time.
func NewStatus(state State, details []string) Status {
	return NewStatusAt(state, details, toMillis(time.Now()))
}

// NewStatusAt returns a Status with an explicit epoch-millisecond timestamp.
// The state is taken as given, even when it disagrees with details.
func NewStatusAt(state State, details []string, millis int64) Status {
	return Status{
		state:   state,
		details: cloneDetails(details),
		ts:      millis,
	}
}

// NewStatusWithTimestamp returns a Status whose timestamp is parsed from a
// TimestampLayout string. A malformed timestamp never fails: the current time
// is used instead and a warning is written to the package logger.
func NewStatusWithTimestamp(state State, details []string, timestamp string) Status {
	millis, err := parseTimestamp(timestamp)
	if err != nil {
		millis = toMillis(time.Now())
		currentLogger().Warn(context.Background(), "malformed status timestamp, using current time",
			observe.Field{Key: "timestamp", Value: timestamp},
			observe.Field{Key: "layout", Value: TimestampLayout},
		)
	}
	return NewStatusAt(state, details, millis)
}

func cloneDetails(details []string) []string {
	out := make([]string, len(details))
	copy(out, details)
	return out
}

// State returns the aggregate state.
func (s Status) State() State {
	return s.state
}

// Details returns a copy of the failure descriptions, in evaluation order.
// It is never nil.
func (s Status) Details() []string {
	return cloneDetails(s.details)
}

// TimestampMillis returns the creation time in milliseconds since the epoch.
// The sub-second part does not survive encoding and is ignored by Equal.
func (s Status) TimestampMillis() int64 {
	return s.ts
}

// Timestamp returns the creation time in UTC.
func (s Status) Timestamp() time.Time {
	return fromMillis(s.ts)
}

// FormattedTimestamp returns the creation time formatted with TimestampLayout.
func (s Status) FormattedTimestamp() string {
	return formatTimestamp(s.ts)
}

// FullRepresentation returns a map with exactly the keys "status", "details"
// and "timestamp". Details is an empty slice, never nil, when there are none.
func (s Status) FullRepresentation() map[string]any {
	return map[string]any{
		"status":    s.state.String(),
		"details":   s.Details(),
		"timestamp": s.FormattedTimestamp(),
	}
}

// SimpleRepresentation returns a map with exactly the key "status".
func (s Status) SimpleRepresentation() map[string]any {
	return map[string]any{
		"status": s.state.String(),
	}
}

// Equal reports whether s and other have the same state, the same details in
// the same order, and the same timestamp to the second.
func (s Status) Equal(other Status) bool {
	return s.state == other.state &&
		wholeSeconds(s.ts) == wholeSeconds(other.ts) &&
		slices.Equal(s.details, other.details)
}

func (s Status) String() string {
	if len(s.details) == 0 {
		return fmt.Sprintf("%s at %s", s.state, s.FormattedTimestamp())
	}
	return fmt.Sprintf("%s at %s: %s", s.state, s.FormattedTimestamp(), strings.Join(s.details, "; "))
}

// statusPayload is the wire shape; it mirrors FullRepresentation.
type statusPayload struct {
	Status    string   `json:"status"`
	Details   []string `json:"details"`
	Timestamp string   `json:"timestamp"`
}

// MarshalJSON encodes the Status as {"status","details","timestamp"}.
// An invalid state or a timestamp outside years 0000-9999 is rejected with an
// *InvalidDataError of kind KindSerialization.
func (s Status) MarshalJSON() ([]byte, error) {
	if !s.state.Valid() {
		return nil, serializationError("status", s.state.String())
	}
	if !encodable(s.ts) {
		return nil, serializationError("timestamp", strconv.FormatInt(s.ts, 10))
	}
	return json.Marshal(statusPayload{
		Status:    s.state.String(),
		Details:   s.Details(),
		Timestamp: s.FormattedTimestamp(),
	})
}

// UnmarshalJSON decodes a payload produced by MarshalJSON. An unknown status
// or a timestamp that does not match TimestampLayout is rejected with an
// *InvalidDataError of kind KindDeserialization.
func (s *Status) UnmarshalJSON(data []byte) error {
	var p statusPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("health: decode status: %w", err)
	}

	state, err := ParseState(p.Status)
	if err != nil {
		return err
	}

	millis, err := parseTimestamp(p.Timestamp)
	if err != nil {
		return deserializationError("timestamp", p.Timestamp)
	}

	*s = NewStatusAt(state, p.Details, millis)
	return nil
}

// EncodeStatus encodes s to its JSON wire form.
func EncodeStatus(s Status) ([]byte, error) {
	return s.MarshalJSON()
}

// DecodeStatus decodes a JSON wire payload into a Status.
func DecodeStatus(data []byte) (Status, error) {
	var s Status
	if err := json.Unmarshal(data, &s); err != nil {
		return Status{}, err
	}
	return s, nil
}
