package market

import "fmt"

// ErrorKind classifies a fetch failure.
type ErrorKind string

const (
	// KindNetwork covers transport failures: DNS, dial, TLS, timeouts.
	KindNetwork ErrorKind = "network"

	// KindUpstreamStatus covers non-2xx responses from the exchange.
	KindUpstreamStatus ErrorKind = "upstream_status"

	// KindMalformed covers responses that are not valid JSON or do not
	// match the expected shape.
	KindMalformed ErrorKind = "malformed"

	// KindConfiguration covers failures caused by local misconfiguration
	// rather than the upstream service.
	KindConfiguration ErrorKind = "configuration"
)

// FetchError is the single error type produced by the fetch pipeline.
type FetchError struct {
	Kind    ErrorKind
	Status  int // HTTP status, set only for KindUpstreamStatus
	Message string
	Err     error
}

func (e *FetchError) Error() string {
	if e.Kind == KindUpstreamStatus {
		return fmt.Sprintf("fetch markets: %s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("fetch markets: %s: %s", e.Kind, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
