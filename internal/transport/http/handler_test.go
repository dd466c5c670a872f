package httptransport

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"keygate/internal/authflow/config"
	"keygate/internal/authflow/controller"
	"keygate/internal/authflow/store/lockout"
	"keygate/internal/gesture"
	"keygate/internal/session"
)

// HandlerSuite drives the full stack through httptest: real router, real
// controller, real bcrypt verifier, in-memory lockout store.
type HandlerSuite struct {
	suite.Suite
	server *httptest.Server
	ctrl   *controller.Controller
	tokens *session.Issuer

	enrolled gesture.Pattern
	hash     string
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupSuite() {
	s.enrolled = gesture.Pattern{0, 4, 8, 5}
	hash, err := gesture.Hash(s.enrolled)
	s.Require().NoError(err)
	s.hash = hash
}

func (s *HandlerSuite) SetupTest() {
	verifier, err := gesture.NewVerifier(s.hash)
	s.Require().NoError(err)

	cfg := config.DefaultConfig()
	cfg.FailureThreshold = 2
	cfg.TickInterval = 50 * time.Millisecond

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctrl, err := controller.New(verifier, lockout.NewMemory(),
		controller.WithConfig(cfg),
		controller.WithLogger(logger),
	)
	s.Require().NoError(err)
	s.ctrl = ctrl

	s.tokens = session.NewIssuer("test-signing-key", "keygate", 5*time.Minute)
	s.server = httptest.NewServer(NewRouter(New(ctrl, s.tokens, logger), logger))
}

func (s *HandlerSuite) TearDownTest() {
	s.server.Close()
	s.ctrl.Pause()
}

func (s *HandlerSuite) postAttempt(gestureStr string) (*http.Response, map[string]any) {
	body, err := json.Marshal(map[string]string{"gesture": gestureStr})
	s.Require().NoError(err)

	resp, err := http.Post(s.server.URL+"/v1/attempt", "application/json", bytes.NewReader(body))
	s.Require().NoError(err)
	defer resp.Body.Close()

	var decoded map[string]any
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func (s *HandlerSuite) getStatus() map[string]any {
	resp, err := http.Get(s.server.URL + "/v1/status")
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var decoded map[string]any
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&decoded))
	return decoded
}

func (s *HandlerSuite) TestAttemptGranted() {
	resp, body := s.postAttempt(s.enrolled.String())

	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal(true, body["granted"])

	token, _ := body["session_token"].(string)
	s.Require().NotEmpty(token)
	claims, err := s.tokens.Validate(token)
	s.Require().NoError(err)
	s.Equal("unlock", claims.Subject)
}

func (s *HandlerSuite) TestAttemptWrongGesture() {
	resp, body := s.postAttempt("1-2-3-6")

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	s.Equal(false, body["granted"])
	s.EqualValues(1, body["consecutive_failures"])
	s.Equal("wrong_attempt", body["message"])
	s.NotContains(body, "session_token")
}

func (s *HandlerSuite) TestAttemptInvalidJSON() {
	resp, err := http.Post(s.server.URL+"/v1/attempt", "application/json", bytes.NewReader([]byte("{not json")))
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *HandlerSuite) TestAttemptRejectsShortGesture() {
	resp, body := s.postAttempt("0-4")
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Equal("invalid_input", body["error"])
}

func (s *HandlerSuite) TestLockoutAfterThreshold() {
	resp, _ := s.postAttempt("1-2-3-6")
	s.Equal(http.StatusUnauthorized, resp.StatusCode)

	resp, body := s.postAttempt("1-2-3-6")
	s.Equal(http.StatusLocked, resp.StatusCode)
	s.Equal(true, body["locked"])
	s.NotEmpty(body["deadline"])

	// Further attempts are rejected without reaching the verifier.
	resp, body = s.postAttempt(s.enrolled.String())
	s.Equal(http.StatusLocked, resp.StatusCode)
	s.Equal(true, body["locked"])

	status := s.getStatus()
	s.Equal(false, status["input_enabled"])
	s.Equal(true, status["locked"])
}

func (s *HandlerSuite) TestResetReenablesInput() {
	resp, err := http.Post(s.server.URL+"/v1/reset", "application/json", nil)
	s.Require().NoError(err)
	resp.Body.Close()
	s.Equal(http.StatusNoContent, resp.StatusCode)

	status := s.getStatus()
	s.Equal(true, status["input_enabled"])
	s.Equal("instructions", status["message"])
}

func (s *HandlerSuite) TestStatusReflectsFailures() {
	s.postAttempt("1-2-3-6")

	status := s.getStatus()
	s.EqualValues(1, status["consecutive_failures"])
	s.EqualValues(1, status["lifetime_failures"])
	s.Equal("wrong_attempt", status["message"])
}

func (s *HandlerSuite) TestHealthz() {
	resp, err := http.Get(s.server.URL + "/healthz")
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)
}

func (s *HandlerSuite) TestRequestIDEchoed() {
	req, err := http.NewRequest(http.MethodGet, s.server.URL+"/v1/status", nil)
	s.Require().NoError(err)
	req.Header.Set("X-Request-ID", "test-request-id")

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Equal("test-request-id", resp.Header.Get("X-Request-ID"))
}
