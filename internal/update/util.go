package update

import "time"

func levelFromError(isErr bool) string {
	if isErr {
		return "error"
	}
	return "info"
}

func (m Model) now() time.Time {
	if m.clock == nil {
		return time.Now()
	}
	return m.clock()
}
