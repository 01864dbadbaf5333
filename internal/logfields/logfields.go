package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field names shared across packages.
const (
	KeyKey        = "key"
	KeyHandle     = "notification_id"
	KeyPrevious   = "previous_notification_id"
	KeyPermission = "permission"
	KeyPhase      = "phase"
	KeyItemID     = "item_id"
	KeyCount      = "count"
	KeyAttempt    = "attempt"
	KeyInterval   = "interval"
	KeyDurationMS = "duration_ms"
	KeyPath       = "path"
	KeyAddr       = "addr"
	KeyTitle      = "title"
	KeyMessage    = "message"
	KeyError      = "error"
)

func Key(k string) slog.Attr               { return slog.String(KeyKey, k) }
func Handle(id string) slog.Attr           { return slog.String(KeyHandle, id) }
func Previous(id string) slog.Attr         { return slog.String(KeyPrevious, id) }
func Permission(p string) slog.Attr        { return slog.String(KeyPermission, p) }
func Phase(p string) slog.Attr             { return slog.String(KeyPhase, p) }
func ItemID(id string) slog.Attr           { return slog.String(KeyItemID, id) }
func Count(n int) slog.Attr                { return slog.Int(KeyCount, n) }
func Attempt(n int) slog.Attr              { return slog.Int(KeyAttempt, n) }
func Interval(d time.Duration) slog.Attr   { return slog.Duration(KeyInterval, d) }
func DurationMS(d time.Duration) slog.Attr { return slog.Float64(KeyDurationMS, float64(d)/float64(time.Millisecond)) }
func Path(p string) slog.Attr              { return slog.String(KeyPath, p) }
func Addr(a string) slog.Attr              { return slog.String(KeyAddr, a) }
func Title(t string) slog.Attr             { return slog.String(KeyTitle, t) }
func Message(m string) slog.Attr           { return slog.String(KeyMessage, m) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
