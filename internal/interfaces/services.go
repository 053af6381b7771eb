package interfaces

import "context"

// Collaborator interfaces the gateway core depends on. The host system
// supplies implementations; internal/storage and internal/services carry
// the defaults.

// OptionStore persists small string options (access tokens in particular)
// across calls. Implementations must be safe for concurrent use.
type OptionStore interface {
	Get(name string) string
	Set(name, value string)
}

// PhoneNormalizer reduces a raw phone string to bare digits. ok is false
// when the input cannot be read as a phone number at all.
type PhoneNormalizer interface {
	Normalize(raw string) (digits string, ok bool)
}

// Transport performs one HTTP exchange with the registration service.
// Implementations return the observed status code and raw body; err is
// reserved for transport-level failures (connect, timeout, DNS).
type Transport interface {
	Do(ctx context.Context, method, url string, body []byte) (status int, respBody []byte, err error)
}
