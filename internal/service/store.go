package service

import (
	"context"
	"errors"
	"time"

	appErrors "github.com/megapixel-app/megapixel-api/pkg/errors"
)

const defaultStoreTimeout = 5 * time.Second

// storeContext bounds a store call with the configured per-call timeout.
func storeContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = defaultStoreTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

// storeError maps a failed store call onto the error taxonomy: an expired
// deadline surfaces as a gateway timeout, anything else as internal.
func storeError(err error, message string) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return appErrors.Clone(appErrors.ErrStoreTimeout, message)
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}
