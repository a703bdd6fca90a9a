package interview

import "time"

// TimeRange is a half-open interval [Start, End).
type TimeRange struct {
	Start time.Time `json:"startTime"`
	End   time.Time `json:"endTime"`
}

// NewTimeRange valida que ambos extremos existan y que Start < End.
func NewTimeRange(start, end time.Time) (TimeRange, error) {
	if start.IsZero() || end.IsZero() {
		return TimeRange{}, ErrInvalidTimeRange().WithDetail("reason", "startTime and endTime are required")
	}
	if !start.Before(end) {
		return TimeRange{}, ErrInvalidTimeRange().
			WithDetail("reason", "startTime must be before endTime").
			WithDetail("startTime", start).
			WithDetail("endTime", end)
	}
	return TimeRange{Start: start.UTC(), End: end.UTC()}, nil
}

// Overlaps reports whether the two intervals share any instant. Intervals
// that only touch at a boundary do not overlap.
func (r TimeRange) Overlaps(o TimeRange) bool {
	return r.Start.Before(o.End) && o.Start.Before(r.End)
}

func (r TimeRange) Equal(o TimeRange) bool {
	return r.Start.Equal(o.Start) && r.End.Equal(o.End)
}

func (r TimeRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// Window is an optional [From, To] filter used by interviewer listings.
type Window struct {
	From *time.Time
	To   *time.Time
}

// NewWindow rejects From after To.
func NewWindow(from, to *time.Time) (Window, error) {
	if from != nil && to != nil && from.After(*to) {
		return Window{}, ErrInvalidWindow().
			WithDetail("from", *from).
			WithDetail("to", *to)
	}
	return Window{From: from, To: to}, nil
}

// Includes keeps a session when start <= To and end > From.
func (w Window) Includes(r TimeRange) bool {
	if w.To != nil && r.Start.After(*w.To) {
		return false
	}
	if w.From != nil && !r.End.After(*w.From) {
		return false
	}
	return true
}
