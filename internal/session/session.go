package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/armax-ru/umka-online-gateway/internal/api"
	"github.com/armax-ru/umka-online-gateway/internal/interfaces"
)

const tokenOptionPrefix = "umkaonline_access_token"

// ErrNoToken is returned when the service would not issue a usable token.
var ErrNoToken = errors.New("access token unavailable")

// Session owns the bearer credential of one cashbox terminal. Tokens are
// read through the option store and refreshed against the getToken
// endpoint; staleness is only ever discovered by a 401 downstream, so no
// expiry is tracked here.
type Session struct {
	transport interfaces.Transport
	store     interfaces.OptionStore
	baseURL   string
	groupCode string
	login     string
	pass      string
	logger    *slog.Logger

	// refresh serializes token requests per terminal so concurrent 401s
	// produce one login call instead of a stampede.
	refresh singleflight.Group
}

func New(transport interfaces.Transport, store interfaces.OptionStore, baseURL, groupCode, login, pass string, logger *slog.Logger) *Session {
	return &Session{
		transport: transport,
		store:     store,
		baseURL:   strings.TrimRight(baseURL, "/"),
		groupCode: groupCode,
		login:     login,
		pass:      pass,
		logger:    logger,
	}
}

// Token returns the cached token for this terminal, empty when none is
// persisted yet.
func (s *Session) Token() string {
	return s.store.Get(s.optionName())
}

// Refresh requests a fresh token and persists it before returning.
// The result is never a partially-valid token: any failure yields
// ErrNoToken with the cause attached.
func (s *Session) Refresh(ctx context.Context) (string, error) {
	token, err, _ := s.refresh.Do(s.groupCode, func() (interface{}, error) {
		return s.requestToken(ctx)
	})
	if err != nil {
		return "", err
	}
	return token.(string), nil
}

func (s *Session) requestToken(ctx context.Context) (string, error) {
	body, err := json.Marshal(api.TokenRequest{Login: s.login, Pass: s.pass})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoToken, err)
	}

	url := s.baseURL + "/getToken"
	status, respBody, err := s.transport.Do(ctx, http.MethodPost, url, body)
	if err != nil {
		s.logger.Error("token request failed", "url", url, "error", err)
		return "", fmt.Errorf("%w: %v", ErrNoToken, err)
	}

	var resp api.TokenResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		s.logger.Error("token response unreadable", "url", url, "status", status, "body", snippet(respBody))
		return "", fmt.Errorf("%w: %v", ErrNoToken, err)
	}

	if status != http.StatusOK || resp.Token == "" {
		s.logger.Error("token not issued", "url", url, "status", status, "code", resp.Code, "text", resp.Text)
		return "", fmt.Errorf("%w: status %d", ErrNoToken, status)
	}

	s.store.Set(s.optionName(), resp.Token)
	return resp.Token, nil
}

func (s *Session) optionName() string {
	return tokenOptionPrefix + "_" + strings.ToLower(s.groupCode)
}

// snippet trims a response body for logging.
func snippet(body []byte) string {
	const max = 256
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}
