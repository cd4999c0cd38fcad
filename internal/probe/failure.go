package probe

import (
	"context"
	"errors"
	"net"
	"strings"
	"syscall"
)

// FailureKind names why a transport call did not complete. It only feeds
// reporting; every kind counts as "did not respond".
type FailureKind string

const (
	FailureDNS      FailureKind = "dns"
	FailureRefused  FailureKind = "refused"
	FailureTimeout  FailureKind = "timeout"
	FailureCanceled FailureKind = "canceled"
	FailureOther    FailureKind = "other"
)

// ClassifyFailure maps a Sender error onto a FailureKind.
func ClassifyFailure(err error) FailureKind {
	if err == nil {
		return ""
	}
	if errors.Is(err, context.Canceled) {
		return FailureCanceled
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return FailureTimeout
	}

	var de *net.DNSError
	if errors.As(err, &de) {
		if de.IsTimeout {
			return FailureTimeout
		}
		return FailureDNS
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return FailureTimeout
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return FailureRefused
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "connection refused"):
		return FailureRefused
	case strings.Contains(msg, "no such host"):
		return FailureDNS
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline exceeded"):
		return FailureTimeout
	}
	return FailureOther
}

// Describe is the user-facing sentence for a failure kind.
func (k FailureKind) Describe() string {
	switch k {
	case FailureDNS:
		return "Service host could not be resolved."
	case FailureRefused:
		return "Service refused the connection."
	case FailureTimeout:
		return "Service did not answer in time."
	case FailureCanceled:
		return "Run was canceled before the service was contacted."
	default:
		return "Service did not answer."
	}
}
