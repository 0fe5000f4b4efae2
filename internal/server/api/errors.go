package api

import (
	"github.com/Alia5/serialpad/apitypes"
	apierror "github.com/Alia5/serialpad/internal/server/api/error"
)

// ErrBadRequest and ErrNotFound are used by the server itself; handlers use apierror.
func ErrBadRequest(detail string) *apitypes.ApiError {
	e := apierror.ErrBadRequest(detail)
	return &e
}
func ErrNotFound(detail string) *apitypes.ApiError {
	e := apierror.ErrNotFound(detail)
	return &e
}

// WrapError normalizes any error into *apitypes.ApiError.
func WrapError(err error) *apitypes.ApiError {
	if err == nil {
		return nil
	}
	e := apierror.WrapError(err)
	return &e
}
