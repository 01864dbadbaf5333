package metrics

import "time"

// ResultLabel enumerates outcome categories for counters.
type ResultLabel string

const (
	ResultSuccess          ResultLabel = "success"
	ResultFailed           ResultLabel = "failed"
	ResultPermissionDenied ResultLabel = "permission_denied"
	ResultRejected         ResultLabel = "rejected"
)

// Recorder defines observability hooks for the countdown and shopping list.
// NoopRecorder is the default when metrics are not configured.
type Recorder interface {
	ObserveMarkDone(d time.Duration, result ResultLabel)
	IncReconcile(result ResultLabel)
	IncCancel(result ResultLabel)
	IncStorageFailure(op string)
	SetOverdue(overdue bool)
	IncShoppingMutation(op string)
}

type NoopRecorder struct{}

func (NoopRecorder) ObserveMarkDone(time.Duration, ResultLabel) {}
func (NoopRecorder) IncReconcile(ResultLabel)                   {}
func (NoopRecorder) IncCancel(ResultLabel)                      {}
func (NoopRecorder) IncStorageFailure(string)                   {}
func (NoopRecorder) SetOverdue(bool)                            {}
func (NoopRecorder) IncShoppingMutation(string)                 {}
