package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/invento/inventory-api/internal/auth"
	"github.com/invento/inventory-api/internal/events"
	apperrors "github.com/invento/inventory-api/pkg/util"
)

// storeErr maps a repository error to the API error for resource.
func storeErr(err error, resource string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound(resource, nil)
	}
	return apperrors.MapError(err)
}

// ensureVisible hides entities of other offices behind a not-found, so their
// existence is not disclosed to restricted callers.
func ensureVisible(scope auth.ScopeFilter, officeID, resource string) error {
	if !scope.Permits(officeID) {
		return apperrors.NewNotFound(resource, nil)
	}
	return nil
}

// targetOffice picks the office a new entity belongs to. Restricted callers
// always write into their own office; unrestricted callers must name one.
func targetOffice(scope auth.ScopeFilter, requested string) (string, error) {
	requested = strings.TrimSpace(requested)
	if scope.Unrestricted {
		if requested == "" {
			return "", apperrors.NewValidationError("office_id is required", map[string]any{"office_id": "required"})
		}
		return requested, nil
	}
	if scope.OfficeID == "" {
		return "", auth.Deny(auth.ReasonOfficeMismatch, nil)
	}
	if requested != "" && !auth.SameOffice(requested, scope.OfficeID) {
		return "", auth.Deny(auth.ReasonOfficeMismatch, nil)
	}
	return scope.OfficeID, nil
}

func publish(ctx context.Context, dispatcher events.Dispatcher, logger *zap.Logger, event events.Event) {
	if dispatcher == nil {
		return
	}
	if err := dispatcher.Publish(ctx, event); err != nil {
		logger.Warn("event handler failed", zap.String("type", string(event.Type)), zap.Error(err))
	}
}

func nopIfNil(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
