package errutil

import (
	"context"
	"fmt"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ghcrawl/pkg/utils/logging"
)

// HandleError reports err to Sentry (no-op if Sentry is not initialized) and logs it.
func HandleError(ctx context.Context, msg string, err error) {
	if err == nil {
		return
	}

	reqID, _ := logging.CtxRequestID(ctx)

	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("request_id", reqID.String())
		if goErr := goerr.Unwrap(err); goErr != nil {
			for k, v := range goErr.Values() {
				scope.SetExtra(fmt.Sprintf("%v", k), v)
			}
		}
	})
	evID := hub.CaptureException(err)

	logging.From(ctx).Error(msg,
		"error", err,
		"request_id", reqID,
		"sentry.EventID", evID,
	)
}
