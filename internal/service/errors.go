package service

import (
	"errors"

	"github.com/jackc/pgx/v5"

	apperrors "github.com/bpdb/power-portal/pkg/util"
)

// notFoundOr names the missing resource on ErrNoRows and maps anything else.
func notFoundOr(err error, resource, id string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound(resource, map[string]any{"id": id})
	}
	return apperrors.MapError(err)
}
