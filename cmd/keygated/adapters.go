package main

import (
	"context"
	"log/slog"

	"keygate/internal/authflow/models"
)

// The standalone daemon has no keyguard UI or power subsystem to call into,
// so the session ports are satisfied with logging adapters at the composition
// root. Embedded deployments replace these with bridges into their platform.

type logSessionCallback struct {
	log *slog.Logger
}

func (a *logSessionCallback) OnAttempt(ctx context.Context, success bool) {
	a.log.InfoContext(ctx, "attempt reported", "success", success)
}

func (a *logSessionCallback) OnDismiss(ctx context.Context) {
	a.log.InfoContext(ctx, "keyguard dismissed")
}

func (a *logSessionCallback) OnClearCandidate(ctx context.Context) {
	a.log.DebugContext(ctx, "candidate display cleared")
}

type logMessageSink struct {
	log *slog.Logger
}

func (a *logMessageSink) Show(ctx context.Context, msg models.Message) {
	if msg.Kind == models.MessageLockoutCountdown {
		a.log.InfoContext(ctx, "message", "kind", msg.Kind, "seconds_remaining", msg.SecondsRemaining)
		return
	}
	a.log.InfoContext(ctx, "message", "kind", msg.Kind)
}

type logPowerManager struct {
	log *slog.Logger
}

func (a *logPowerManager) KeepAwake(ctx context.Context) {
	a.log.DebugContext(ctx, "keep-awake poke")
}
