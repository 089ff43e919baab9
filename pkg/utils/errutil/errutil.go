package errutil

import (
	"context"
	"errors"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/stayops-lab/xenia/pkg/domain/types"
	"github.com/stayops-lab/xenia/pkg/utils/logging"
)

// Handle logs the error with its goerr context and reports it to Sentry
// when a hub is configured. Validation and cancellation errors are logged
// but not reported, they are expected operational outcomes.
func Handle(ctx context.Context, err error, msg string) error {
	if err == nil {
		return nil
	}

	logger := logging.From(ctx)

	var ge *goerr.Error
	if errors.As(err, &ge) {
		logger.Error(msg,
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		)
	} else {
		logger.Error(msg, "error", err.Error())
	}

	if !goerr.HasTag(err, types.ErrTagValidation) && !goerr.HasTag(err, types.ErrTagCancelled) {
		hub := sentry.GetHubFromContext(ctx)
		if hub == nil {
			hub = sentry.CurrentHub()
		}
		if hub.Client() != nil {
			hub.WithScope(func(scope *sentry.Scope) {
				if ge != nil {
					scope.SetContext("goerr", sentry.Context(ge.Values()))
				}
				hub.CaptureException(err)
			})
		}
	}

	return err
}

// HandleHTTP logs the error and writes an appropriate HTTP error response
func HandleHTTP(ctx context.Context, w http.ResponseWriter, err error, statusCode int) {
	if err == nil {
		return
	}

	_ = Handle(ctx, err, "HTTP error")

	http.Error(w, err.Error(), statusCode)
}
