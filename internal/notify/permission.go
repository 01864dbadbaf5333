package notify

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

type PermissionStatus string

const (
	PermissionGranted      PermissionStatus = "granted"
	PermissionDenied       PermissionStatus = "denied"
	PermissionUndetermined PermissionStatus = "undetermined"
)

// PermissionProvider is the platform permission API: Status reads the current
// grant without prompting, Request prompts when the platform allows it.
type PermissionProvider interface {
	Status(ctx context.Context) (PermissionStatus, error)
	Request(ctx context.Context) (PermissionStatus, error)
}

// PermissionMode configures StaticPermissions.
type PermissionMode string

const (
	ModeGranted PermissionMode = "granted"
	ModeDenied  PermissionMode = "denied"
	ModePrompt  PermissionMode = "prompt"
)

func ParsePermissionMode(raw string) (PermissionMode, error) {
	switch mode := PermissionMode(strings.ToLower(strings.TrimSpace(raw))); mode {
	case ModeGranted, ModeDenied, ModePrompt:
		return mode, nil
	default:
		return "", fmt.Errorf("notify: unknown permission mode %q", raw)
	}
}

// StaticPermissions answers permission queries from configuration. In prompt
// mode the status starts undetermined and the first Request grants it.
type StaticPermissions struct {
	mu        sync.Mutex
	mode      PermissionMode
	requested bool
}

func NewStaticPermissions(mode PermissionMode) *StaticPermissions {
	return &StaticPermissions{mode: mode}
}

func (p *StaticPermissions) Status(context.Context) (PermissionStatus, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.statusLocked(), nil
}

func (p *StaticPermissions) statusLocked() PermissionStatus {
	switch p.mode {
	case ModeGranted:
		return PermissionGranted
	case ModePrompt:
		if p.requested {
			return PermissionGranted
		}
		return PermissionUndetermined
	default:
		return PermissionDenied
	}
}

func (p *StaticPermissions) Request(context.Context) (PermissionStatus, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.mode == ModePrompt {
		p.requested = true
	}
	return p.statusLocked(), nil
}

// Register returns the effective permission, prompting only when the current
// status is not already granted. Non-device runs report undetermined without
// touching the provider.
func Register(ctx context.Context, p PermissionProvider, isDevice bool) (PermissionStatus, error) {
	if !isDevice {
		return PermissionUndetermined, nil
	}
	existing, err := p.Status(ctx)
	if err != nil {
		return PermissionUndetermined, fmt.Errorf("permission status: %w", err)
	}
	if existing == PermissionGranted {
		return existing, nil
	}
	status, err := p.Request(ctx)
	if err != nil {
		return PermissionUndetermined, fmt.Errorf("permission request: %w", err)
	}
	return status, nil
}
