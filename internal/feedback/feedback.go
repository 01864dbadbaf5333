package feedback

import (
	"io"
	"sync"
)

// Haptics mirrors the phone's success/impact feedback. Implementations must
// not block; callers fire and forget.
type Haptics interface {
	Success()
	Impact()
}

// Celebrator plays the celebratory effect after a completion.
type Celebrator interface {
	Celebrate()
}

type Noop struct{}

func (Noop) Success()   {}
func (Noop) Impact()    {}
func (Noop) Celebrate() {}

// Bell rings the terminal bell as a stand-in for haptics.
type Bell struct {
	mu sync.Mutex
	w  io.Writer
}

func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

func (b *Bell) Success() { b.ring(2) }
func (b *Bell) Impact()  { b.ring(1) }

func (b *Bell) ring(n int) {
	if b == nil || b.w == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := 0; i < n; i++ {
		_, _ = b.w.Write([]byte{'\a'})
	}
}

// CelebrateFunc adapts a function to Celebrator.
type CelebrateFunc func()

func (f CelebrateFunc) Celebrate() {
	if f != nil {
		f()
	}
}
