// Package controller composes the attempt counter, lockout policy, countdown
// and activity throttle behind the public contract the UI layer consumes.
// One controller serves one authentication session; all state mutations are
// serialized on its mutex, and timer callbacks carry a run identity so a
// cancelled or superseded timer can never touch fresh state.
package controller

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"keygate/internal/authflow/activity"
	"keygate/internal/authflow/config"
	"keygate/internal/authflow/metrics"
	"keygate/internal/authflow/models"
	"keygate/internal/authflow/policy"
	"keygate/internal/authflow/ports"
	"keygate/internal/authflow/schedule"
	"keygate/internal/gesture"
	"keygate/internal/platform/clock"
	dErrors "keygate/pkg/domain-errors"
)

type Controller struct {
	mu sync.Mutex

	verifier  ports.CredentialVerifier
	store     ports.LockoutStore
	session   ports.SessionCallback
	messages  ports.MessageSink
	power     ports.PowerManager
	biometric ports.BiometricMonitor

	counter   policy.AttemptCounter
	policy    *policy.LockoutPolicy
	countdown *schedule.Countdown
	clear     schedule.OneShot
	throttle  *activity.Throttle

	cfg     *config.Config
	clock   clock.Clock
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer

	inputEnabled     bool
	deadline         *time.Time
	secondsRemaining int
	lastMessage      models.Message
	countdownRun     uuid.UUID
}

type Option func(*Controller)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithConfig(cfg *config.Config) Option {
	return func(c *Controller) {
		if cfg != nil {
			c.cfg = cfg
		}
	}
}

func WithClock(cl clock.Clock) Option {
	return func(c *Controller) {
		if cl != nil {
			c.clock = cl
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Controller) {
		c.metrics = m
	}
}

func WithSessionCallback(cb ports.SessionCallback) Option {
	return func(c *Controller) {
		c.session = cb
	}
}

func WithMessageSink(sink ports.MessageSink) Option {
	return func(c *Controller) {
		c.messages = sink
	}
}

func WithPowerManager(pm ports.PowerManager) Option {
	return func(c *Controller) {
		c.power = pm
	}
}

func WithBiometricMonitor(bm ports.BiometricMonitor) Option {
	return func(c *Controller) {
		c.biometric = bm
	}
}

// New wires a controller. Verifier and store are required; everything else
// defaults to no-ops or the reference configuration.
func New(verifier ports.CredentialVerifier, store ports.LockoutStore, opts ...Option) (*Controller, error) {
	if verifier == nil {
		return nil, fmt.Errorf("credential verifier is required")
	}
	if store == nil {
		return nil, fmt.Errorf("lockout store is required")
	}

	c := &Controller{
		verifier:     verifier,
		store:        store,
		cfg:          config.DefaultConfig(),
		clock:        clock.System(),
		logger:       slog.Default(),
		tracer:       otel.Tracer("keygate/authflow"),
		inputEnabled: true,
		lastMessage:  models.Message{Kind: models.MessageInstructions},
	}
	for _, opt := range opts {
		opt(c)
	}

	var err error
	c.policy, err = policy.New(store,
		policy.WithThreshold(c.cfg.FailureThreshold),
		policy.WithLogger(c.logger),
	)
	if err != nil {
		return nil, err
	}
	c.countdown = schedule.NewCountdown(
		schedule.WithClock(c.clock),
		schedule.WithLogger(c.logger),
	)
	c.throttle = activity.NewThrottle(c.cfg.WakeInterval, c.cfg.WakeTolerance)
	return c, nil
}

// SubmitGesture runs one unlock attempt. A verifier outage surfaces as
// CodeVerifierUnavailable and is not counted as a failed attempt; submitting
// while input is disabled surfaces as CodeInvalidInput.
func (c *Controller) SubmitGesture(ctx context.Context, candidate gesture.Pattern) (*models.AttemptResult, error) {
	ctx, span := c.tracer.Start(ctx, "authflow.SubmitGesture")
	defer span.End()

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.inputEnabled {
		span.SetAttributes(attribute.Bool("auth.locked", true))
		return &models.AttemptResult{
			Locked:              true,
			Deadline:            copyTime(c.deadline),
			ConsecutiveFailures: c.counter.State().ConsecutiveFailures,
		}, dErrors.New(dErrors.CodeInvalidInput, "gesture input is disabled during lockout")
	}

	ok, err := c.verifier.Verify(ctx, candidate)
	if err != nil {
		span.RecordError(err)
		c.logger.WarnContext(ctx, "verifier_unavailable", "error", err)
		c.show(ctx, models.Message{Kind: models.MessageTryAgain})
		c.recordAttempt("error")
		return nil, dErrors.Wrap(err, dErrors.CodeVerifierUnavailable, "verifying gesture")
	}

	if ok {
		span.SetAttributes(attribute.Bool("auth.granted", true))
		return c.grantLocked(ctx), nil
	}

	res := c.denyLocked(ctx)
	span.SetAttributes(
		attribute.Bool("auth.granted", false),
		attribute.Bool("auth.locked", res.Locked),
		attribute.Int("auth.consecutive_failures", res.ConsecutiveFailures),
	)
	return res, nil
}

// Reset re-enables input, clears the candidate display, and re-checks the
// persisted lockout. A still-pending deadline re-enters the locked state
// without touching any counter.
func (c *Controller) Reset(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked(ctx)
}

// Resume is equivalent to Reset.
func (c *Controller) Resume(ctx context.Context) {
	c.Reset(ctx)
}

// Pause cancels all outstanding timers so nothing ticks while the session is
// not visible. Counters and the persisted deadline are kept.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.countdownRun = uuid.Nil
	c.countdown.Cancel()
	c.clear.Cancel()
}

// OnInteraction routes interaction timing through the activity throttle and
// pokes the power manager when a wake signal is due.
func (c *Controller) OnInteraction(ctx context.Context, now time.Time) {
	if !c.throttle.MaybeSignal(now) {
		return
	}
	if c.power != nil {
		c.power.KeepAwake(ctx)
	}
	if c.metrics != nil {
		c.metrics.KeepAwakeSignalsTotal.Inc()
	}
}

// Status returns a snapshot for read-only callers.
func (c *Controller) Status() models.Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	return models.Status{
		InputEnabled:     c.inputEnabled,
		Locked:           c.deadline != nil,
		Deadline:         copyTime(c.deadline),
		SecondsRemaining: c.secondsRemaining,
		LastMessage:      c.lastMessage,
		Attempts:         c.counter.State(),
	}
}

// grantLocked handles a matching gesture. Caller holds c.mu.
func (c *Controller) grantLocked(ctx context.Context) *models.AttemptResult {
	c.clear.Cancel()
	c.counter.RecordSuccess()
	c.deadline = nil
	c.secondsRemaining = 0
	if err := c.store.Clear(ctx); err != nil {
		c.logger.WarnContext(ctx, "lockout_clear_failed", "error", err)
	}

	c.show(ctx, models.Message{Kind: models.MessageUnlockGranted})
	if c.session != nil {
		c.session.OnAttempt(ctx, true)
		c.session.OnDismiss(ctx)
	}
	c.recordAttempt("granted")
	c.setFailureGauge(0)
	c.logger.InfoContext(ctx, "unlock_granted")
	return &models.AttemptResult{Granted: true}
}

// denyLocked handles a mismatching gesture. Caller holds c.mu.
func (c *Controller) denyLocked(ctx context.Context) *models.AttemptResult {
	consecutive := c.counter.RecordFailure()
	if c.session != nil {
		c.session.OnAttempt(ctx, false)
	}
	c.setFailureGauge(consecutive)

	now := c.clock.Now()
	decision, err := c.policy.Evaluate(ctx, c.counter.State(), now)
	if err != nil {
		// Fail closed: persistence is unreachable, so hold input behind a
		// short retry window rather than granting more attempts.
		c.logger.ErrorContext(ctx, "lockout_store_unavailable", "error", err)
		deadline := now.Add(c.cfg.StoreRetryLockout)
		c.enterLockoutLocked(ctx, deadline)
		c.recordAttempt("locked")
		return &models.AttemptResult{
			Locked:              true,
			Deadline:            &deadline,
			ConsecutiveFailures: consecutive,
		}
	}

	if decision.Locked {
		c.enterLockoutLocked(ctx, decision.Deadline)
		c.recordAttempt("locked")
		if c.metrics != nil {
			c.metrics.LockoutsTotal.Inc()
		}
		return &models.AttemptResult{
			Locked:              true,
			Deadline:            &decision.Deadline,
			ConsecutiveFailures: consecutive,
		}
	}

	c.show(ctx, models.Message{Kind: models.MessageWrongAttempt})
	c.clear.Arm(c.cfg.WrongClearDelay, c.clearCandidate)
	c.recordAttempt("denied")
	return &models.AttemptResult{ConsecutiveFailures: consecutive}
}

// enterLockoutLocked disables input and starts the countdown towards
// deadline. Caller holds c.mu.
func (c *Controller) enterLockoutLocked(ctx context.Context, deadline time.Time) {
	d := deadline
	c.deadline = &d
	c.inputEnabled = false
	c.clear.Cancel()
	if c.session != nil {
		c.session.OnClearCandidate(ctx)
	}

	run := uuid.New()
	c.countdownRun = run
	err := c.countdown.Start(deadline, c.cfg.TickInterval,
		func(secs int) { c.handleTick(run, secs) },
		func() { c.handleExpiry(run) },
	)
	if err != nil {
		// Non-future deadline: clamp to an immediate expiry instead of
		// leaving input disabled forever.
		c.logger.WarnContext(ctx, "countdown_rejected_deadline", "error", err, "deadline", deadline)
		c.countdownRun = uuid.Nil
		c.countdown.Cancel()
		c.expireLocked(ctx)
	}
}

// resetLocked implements Reset. Caller holds c.mu.
func (c *Controller) resetLocked(ctx context.Context) {
	c.inputEnabled = true
	c.clear.Cancel()
	if c.session != nil {
		c.session.OnClearCandidate(ctx)
	}

	pending, err := c.store.PendingDeadline(ctx)
	if err != nil {
		c.logger.ErrorContext(ctx, "lockout_store_unavailable", "error", err)
		c.enterLockoutLocked(ctx, c.clock.Now().Add(c.cfg.StoreRetryLockout))
		return
	}
	if pending != nil {
		c.enterLockoutLocked(ctx, *pending)
		return
	}

	c.deadline = nil
	c.secondsRemaining = 0
	c.showDefaultLocked(ctx)
}

// expireLocked ends the lockout: consecutive failures reset without counting
// as a success, the persisted deadline is dropped, input re-enables. Caller
// holds c.mu.
func (c *Controller) expireLocked(ctx context.Context) {
	c.deadline = nil
	c.secondsRemaining = 0
	c.counter.ResetConsecutive()
	if err := c.store.Clear(ctx); err != nil {
		c.logger.WarnContext(ctx, "lockout_clear_failed", "error", err)
	}
	c.inputEnabled = true
	c.setFailureGauge(0)
	c.setRemainingGauge(0)

	c.show(ctx, models.Message{Kind: models.MessageLockoutExpired})
	c.showDefaultLocked(ctx)
	c.logger.InfoContext(ctx, "lockout_expired")
}

func (c *Controller) handleTick(run uuid.UUID, secs int) {
	ctx := context.Background()
	c.mu.Lock()
	defer c.mu.Unlock()

	if run != c.countdownRun {
		return
	}
	c.secondsRemaining = secs
	c.setRemainingGauge(secs)
	c.show(ctx, models.Message{Kind: models.MessageLockoutCountdown, SecondsRemaining: secs})
}

func (c *Controller) handleExpiry(run uuid.UUID) {
	ctx := context.Background()
	c.mu.Lock()
	defer c.mu.Unlock()

	if run != c.countdownRun {
		return
	}
	c.countdownRun = uuid.Nil
	c.expireLocked(ctx)
}

// clearCandidate is the one-shot wrong-gesture clear.
func (c *Controller) clearCandidate() {
	ctx := context.Background()
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session != nil {
		c.session.OnClearCandidate(ctx)
	}
}

// showDefaultLocked emits the instructional message, or the biometric
// variant when the parallel biometric unlock has exhausted its attempts.
// Caller holds c.mu.
func (c *Controller) showDefaultLocked(ctx context.Context) {
	if c.biometric != nil && c.biometric.MaxAttemptsReached(ctx) {
		c.show(ctx, models.Message{Kind: models.MessageTooManyBiometricFailures})
		return
	}
	c.show(ctx, models.Message{Kind: models.MessageInstructions})
}

func (c *Controller) show(ctx context.Context, msg models.Message) {
	c.lastMessage = msg
	if c.messages != nil {
		c.messages.Show(ctx, msg)
	}
}

func (c *Controller) recordAttempt(result string) {
	if c.metrics != nil {
		c.metrics.RecordAttempt(result)
	}
}

func (c *Controller) setFailureGauge(n int) {
	if c.metrics != nil {
		c.metrics.ConsecutiveFailures.Set(float64(n))
	}
}

func (c *Controller) setRemainingGauge(secs int) {
	if c.metrics != nil {
		c.metrics.LockoutSecondsRemaining.Set(float64(secs))
	}
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := *t
	return &d
}
