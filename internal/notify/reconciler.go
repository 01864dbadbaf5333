package notify

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sandeepkv93/taskly/internal/logfields"
	"github.com/sandeepkv93/taskly/internal/metrics"
)

const (
	permissionAlertTitle   = "Unable to schedule notification"
	permissionAlertMessage = "Please enable notifications in your device settings"
)

var DefaultContent = Content{
	Title: "The thing is due",
	Body:  "Your countdown ran out. Time to do the thing again.",
}

// Reconciler replaces the notification tied to the previous countdown cycle
// with one for the next cycle. Calls must not overlap.
type Reconciler struct {
	perms    PermissionProvider
	sched    Scheduler
	alerter  Alerter
	isDevice bool
	content  Content
	recorder metrics.Recorder
}

type ReconcilerOption func(*Reconciler)

func WithAlerter(a Alerter) ReconcilerOption {
	return func(r *Reconciler) { r.alerter = a }
}

func WithDevice(isDevice bool) ReconcilerOption {
	return func(r *Reconciler) { r.isDevice = isDevice }
}

func WithContent(c Content) ReconcilerOption {
	return func(r *Reconciler) { r.content = c }
}

func WithRecorder(rec metrics.Recorder) ReconcilerOption {
	return func(r *Reconciler) {
		if rec != nil {
			r.recorder = rec
		}
	}
}

func NewReconciler(perms PermissionProvider, sched Scheduler, opts ...ReconcilerOption) *Reconciler {
	r := &Reconciler{
		perms:    perms,
		sched:    sched,
		isDevice: true,
		content:  DefaultContent,
		recorder: metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reconcile schedules a notification interval from now when permission is
// granted and cancels previous whenever it is set, even if nothing new was
// scheduled. It returns the new handle or "" when none was scheduled. Failures
// are logged and never abort the caller's flow.
func (r *Reconciler) Reconcile(ctx context.Context, previous string, interval time.Duration) string {
	handle := ""

	status, err := Register(ctx, r.perms, r.isDevice)
	if err != nil {
		slog.Warn("Notification permission check failed", logfields.Error(err))
	}

	if status == PermissionGranted {
		h, schedErr := r.sched.ScheduleOneShot(ctx, interval, r.content)
		if schedErr != nil {
			slog.Warn("Scheduling notification failed", logfields.Interval(interval), logfields.Error(schedErr))
			r.recorder.IncReconcile(metrics.ResultFailed)
		} else {
			handle = h
			r.recorder.IncReconcile(metrics.ResultSuccess)
			slog.Debug("Scheduled notification", logfields.Handle(handle), logfields.Interval(interval))
		}
	} else {
		r.recorder.IncReconcile(metrics.ResultPermissionDenied)
		slog.Info("Notification permission not granted", logfields.Permission(string(status)))
		if r.isDevice && r.alerter != nil {
			r.alerter.Alert(permissionAlertTitle, permissionAlertMessage)
		}
	}

	if previous != "" && previous != handle {
		r.cancel(ctx, previous)
	}
	return handle
}

func (r *Reconciler) cancel(ctx context.Context, handle string) {
	err := r.sched.Cancel(ctx, handle)
	switch {
	case err == nil:
		r.recorder.IncCancel(metrics.ResultSuccess)
	case errors.Is(err, ErrUnknownHandle):
		// Already fired or scheduled by an earlier process.
		r.recorder.IncCancel(metrics.ResultSuccess)
		slog.Debug("Previous notification no longer pending", logfields.Previous(handle))
	default:
		r.recorder.IncCancel(metrics.ResultFailed)
		slog.Warn("Cancelling previous notification failed", logfields.Previous(handle), logfields.Error(err))
	}
}
