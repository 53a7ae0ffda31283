package services

import (
	"context"

	"github.com/lotfi029/FreelancerAssignment/internal/apperrors"
	"github.com/lotfi029/FreelancerAssignment/internal/logging"
)

// convertError passes coded domain errors through unchanged and converts
// anything unexpected to the operation's catch-all code, logging the full
// cause first. Raw faults never reach the caller.
func convertError(ctx context.Context, log logging.Logger, code, msg string, err error) error {
	if appErr := apperrors.AsError(err); appErr != nil {
		return appErr
	}
	log.Error(ctx, msg, "error", err)
	return apperrors.FromError(code, err)
}
