package httptransport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"keygate/internal/authflow/models"
	"keygate/internal/gesture"
	"keygate/internal/session"
	jsonutil "keygate/internal/transport/http/json"
	dErrors "keygate/pkg/domain-errors"
)

// Service is the controller surface the HTTP layer consumes.
type Service interface {
	SubmitGesture(ctx context.Context, candidate gesture.Pattern) (*models.AttemptResult, error)
	Reset(ctx context.Context)
	Status() models.Status
	OnInteraction(ctx context.Context, now time.Time)
}

type Handler struct {
	service Service
	tokens  *session.Issuer
	logger  *slog.Logger
}

func New(service Service, tokens *session.Issuer, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		tokens:  tokens,
		logger:  logger,
	}
}

type attemptRequest struct {
	Gesture string `json:"gesture"`
}

type attemptResponse struct {
	Granted             bool       `json:"granted"`
	Locked              bool       `json:"locked,omitempty"`
	ConsecutiveFailures int        `json:"consecutive_failures,omitempty"`
	Deadline            *time.Time `json:"deadline,omitempty"`
	SecondsRemaining    int        `json:"seconds_remaining,omitempty"`
	SessionToken        string     `json:"session_token,omitempty"`
	Message             string     `json:"message,omitempty"`
}

type statusResponse struct {
	InputEnabled        bool       `json:"input_enabled"`
	Locked              bool       `json:"locked"`
	Deadline            *time.Time `json:"deadline,omitempty"`
	SecondsRemaining    int        `json:"seconds_remaining"`
	Message             string     `json:"message"`
	ConsecutiveFailures int        `json:"consecutive_failures"`
	LifetimeFailures    int        `json:"lifetime_failures"`
}

// HandleAttempt implements POST /v1/attempt.
//
// Input: { "gesture": "0-4-8-5" }
// Output: 200 granted with session_token, 401 wrong gesture,
// 423 locked out, 503 verifier unreachable.
func (h *Handler) HandleAttempt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := GetRequestID(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, 4*1024)

	var req attemptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode attempt request",
			"error", err,
			"request_id", requestID,
		)
		WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "Invalid JSON in request body"))
		return
	}

	candidate, err := gesture.Parse(req.Gesture)
	if err != nil {
		WriteError(w, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid gesture encoding"))
		return
	}

	now := RequestTimeFrom(ctx)
	h.service.OnInteraction(ctx, now)

	res, err := h.service.SubmitGesture(ctx, candidate)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvalidInput) && res != nil && res.Locked {
			h.writeLocked(w, res)
			return
		}
		h.logger.WarnContext(ctx, "attempt failed",
			"error", err,
			"request_id", requestID,
		)
		WriteError(w, err)
		return
	}

	if res.Granted {
		device := GetDeviceInfo(ctx)
		token, jti, err := h.tokens.Issue(now, device.OS)
		if err != nil {
			h.logger.ErrorContext(ctx, "session token issue failed",
				"error", err,
				"request_id", requestID,
			)
			WriteError(w, err)
			return
		}
		h.logger.InfoContext(ctx, "unlock session issued",
			"jti", jti,
			"request_id", requestID,
		)
		jsonutil.WriteJSON(w, http.StatusOK, attemptResponse{
			Granted:      true,
			SessionToken: token,
		})
		return
	}

	if res.Locked {
		h.writeLocked(w, res)
		return
	}

	jsonutil.WriteJSON(w, http.StatusUnauthorized, attemptResponse{
		Granted:             false,
		ConsecutiveFailures: res.ConsecutiveFailures,
		Message:             string(h.service.Status().LastMessage.Kind),
	})
}

func (h *Handler) writeLocked(w http.ResponseWriter, res *models.AttemptResult) {
	st := h.service.Status()
	jsonutil.WriteJSON(w, http.StatusLocked, attemptResponse{
		Granted:             false,
		Locked:              true,
		ConsecutiveFailures: res.ConsecutiveFailures,
		Deadline:            res.Deadline,
		SecondsRemaining:    st.SecondsRemaining,
		Message:             string(st.LastMessage.Kind),
	})
}

// HandleReset implements POST /v1/reset. It re-runs the resume flow: input
// re-enables unless a persisted lockout deadline is still pending.
//
// Output: 204 No Content
func (h *Handler) HandleReset(w http.ResponseWriter, r *http.Request) {
	h.service.Reset(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// HandleStatus implements GET /v1/status.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	st := h.service.Status()
	jsonutil.WriteJSON(w, http.StatusOK, statusResponse{
		InputEnabled:        st.InputEnabled,
		Locked:              st.Locked,
		Deadline:            st.Deadline,
		SecondsRemaining:    st.SecondsRemaining,
		Message:             string(st.LastMessage.Kind),
		ConsecutiveFailures: st.Attempts.ConsecutiveFailures,
		LifetimeFailures:    st.Attempts.LifetimeFailures,
	})
}
