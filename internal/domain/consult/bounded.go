package consult

import (
	"context"
	"errors"
	"strings"
	"time"
)

type bounded struct {
	next    Gateway
	timeout time.Duration
}

// Bounded wraps next so that every call gets its own deadline and every
// failure surfaces as *ConsultationUnavailableError. A nil next yields a
// gateway that always reports ReasonNotConfigured.
func Bounded(next Gateway, timeout time.Duration) Gateway {
	return &bounded{next: next, timeout: timeout}
}

func (b *bounded) Consult(ctx context.Context, pc PromptContext) (string, error) {
	if b.next == nil {
		return "", Unavailable(ReasonNotConfigured, nil)
	}
	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	type reply struct {
		text string
		err  error
	}
	// Returns at the deadline even when next ignores ctx.
	done := make(chan reply, 1)
	go func() {
		text, err := b.next.Consult(ctx, pc)
		done <- reply{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", classify(ctx.Err())
	case r := <-done:
		if r.err != nil {
			if ctx.Err() != nil {
				return "", classify(ctx.Err())
			}
			return "", classify(r.err)
		}
		if strings.TrimSpace(r.text) == "" {
			return "", Unavailable(ReasonEmpty, nil)
		}
		return r.text, nil
	}
}

func classify(err error) error {
	var unavailable *ConsultationUnavailableError
	switch {
	case errors.As(err, &unavailable):
		return unavailable
	case errors.Is(err, context.DeadlineExceeded):
		return Unavailable(ReasonTimeout, err)
	case errors.Is(err, context.Canceled):
		return Unavailable(ReasonCanceled, err)
	default:
		return Unavailable(ReasonUpstream, err)
	}
}
