package tategb

import "context"

// CancelToken is the cooperative cancellation token of spec.md §5: the
// driver checks it at each pair pop and at each inter-reduction pass; on
// cancellation it abandons all intermediate state and reports a
// KindCancelled error without populating the ideal's basis cache.
//
// The zero CancelToken never cancels.
type CancelToken struct {
	ctx context.Context
}

// NewCancelToken wraps a context.Context as a CancelToken.
func NewCancelToken(ctx context.Context) CancelToken {
	return CancelToken{ctx: ctx}
}

func (c CancelToken) check() error {
	if c.ctx == nil {
		return nil
	}
	select {
	case <-c.ctx.Done():
		return errCancelled()
	default:
		return nil
	}
}
