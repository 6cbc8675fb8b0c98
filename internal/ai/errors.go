package ai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/openai/openai-go"
)

// ErrorKind classifies a failed remote call.
type ErrorKind int

const (
	KindClient ErrorKind = iota
	KindTransport
	KindTimeout
	KindRateLimited
	KindServer
	KindParse
	KindCanceled
)

var kindNames = map[ErrorKind]string{
	KindClient:      "client_error",
	KindTransport:   "transport",
	KindTimeout:     "timeout",
	KindRateLimited: "rate_limited",
	KindServer:      "server_error",
	KindParse:       "parse_error",
	KindCanceled:    "canceled",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Retryable reports whether a failure of this kind is worth another try.
func (k ErrorKind) Retryable() bool {
	switch k {
	case KindTransport, KindTimeout, KindRateLimited, KindServer, KindParse:
		return true
	}
	return false
}

// RemoteError is a classified failure from the image generator or grader.
type RemoteError struct {
	Op         string
	Kind       ErrorKind
	StatusCode int
	Err        error
}

func (e *RemoteError) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.String())
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (HTTP %d)", e.StatusCode)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// NewParseError wraps a malformed-response failure so it is retried.
func NewParseError(op string, err error) *RemoteError {
	return &RemoteError{Op: op, Kind: KindParse, Err: err}
}

// Classify maps an arbitrary error from a remote call onto a RemoteError.
// Errors that are already classified are returned unchanged.
func Classify(op string, err error) *RemoteError {
	if err == nil {
		return nil
	}

	var re *RemoteError
	if errors.As(err, &re) {
		return re
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return &RemoteError{Op: op, Kind: kindForStatus(apiErr.StatusCode), StatusCode: apiErr.StatusCode, Err: err}
	}

	switch {
	case errors.Is(err, context.Canceled):
		return &RemoteError{Op: op, Kind: KindCanceled, Err: err}
	case errors.Is(err, context.DeadlineExceeded):
		return &RemoteError{Op: op, Kind: KindTimeout, Err: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &RemoteError{Op: op, Kind: KindTimeout, Err: err}
	}

	var urlErr *url.Error
	var opErr *net.OpError
	if errors.As(err, &urlErr) || errors.As(err, &opErr) ||
		errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return &RemoteError{Op: op, Kind: KindTransport, Err: err}
	}

	return &RemoteError{Op: op, Kind: KindClient, Err: err}
}

func kindForStatus(status int) ErrorKind {
	switch {
	case status == http.StatusTooManyRequests:
		return KindRateLimited
	case status == http.StatusRequestTimeout:
		return KindTimeout
	case status >= 500:
		return KindServer
	default:
		return KindClient
	}
}

// IsRetryable is the predicate used by the retry executor.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	return Classify("", err).Kind.Retryable()
}
