package model

import (
	"errors"
	"time"
)

var ErrHistoryOutOfOrder = errors.New("model: completion history must be newest first")

// CountdownState is the persisted record of the recurring task. The deadline of
// the current cycle is always derived from the head of CompletedAt.
type CountdownState struct {
	CurrentNotificationID string  `json:"currentNotificationId,omitempty"`
	CompletedAt           []int64 `json:"completedAt"`
}

func (s CountdownState) LastCompletedAt() (time.Time, bool) {
	if len(s.CompletedAt) == 0 {
		return time.Time{}, false
	}
	return time.UnixMilli(s.CompletedAt[0]), true
}

// Deadline is completedAt[0]+interval, or now when nothing was ever completed.
func (s CountdownState) Deadline(interval time.Duration, now time.Time) time.Time {
	last, ok := s.LastCompletedAt()
	if !ok {
		return now
	}
	return last.Add(interval)
}

// Complete returns a copy of s with at prepended to the history and the
// notification handle replaced. The receiver is left untouched.
func (s CountdownState) Complete(at time.Time, handle string) CountdownState {
	history := make([]int64, 0, len(s.CompletedAt)+1)
	history = append(history, at.UnixMilli())
	history = append(history, s.CompletedAt...)
	return CountdownState{
		CurrentNotificationID: handle,
		CompletedAt:           history,
	}
}

func (s CountdownState) History() []time.Time {
	out := make([]time.Time, 0, len(s.CompletedAt))
	for _, ms := range s.CompletedAt {
		out = append(out, time.UnixMilli(ms))
	}
	return out
}

func (s CountdownState) Validate() error {
	for i := 1; i < len(s.CompletedAt); i++ {
		if s.CompletedAt[i] > s.CompletedAt[i-1] {
			return ErrHistoryOutOfOrder
		}
	}
	return nil
}

type Distance struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

func (d Distance) IsZero() bool {
	return d.Days == 0 && d.Hours == 0 && d.Minutes == 0 && d.Seconds == 0
}

// DistanceOf breaks d into whole days, hours, minutes and seconds. Fractional
// seconds are dropped and negative durations are measured by magnitude.
func DistanceOf(d time.Duration) Distance {
	if d < 0 {
		d = -d
	}
	total := int64(d / time.Second)
	out := Distance{}
	out.Days = int(total / 86400)
	total %= 86400
	out.Hours = int(total / 3600)
	total %= 3600
	out.Minutes = int(total / 60)
	out.Seconds = int(total % 60)
	return out
}

type CountdownStatus struct {
	IsOverdue bool
	Distance  Distance
}

func ComputeStatus(deadline, now time.Time) CountdownStatus {
	if now.After(deadline) {
		return CountdownStatus{IsOverdue: true, Distance: DistanceOf(now.Sub(deadline))}
	}
	return CountdownStatus{IsOverdue: false, Distance: DistanceOf(deadline.Sub(now))}
}
