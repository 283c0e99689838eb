// Package testutil provides common test helpers for SDK tests.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	dErrors "github.com/embervm/bindsdk/domain/errors"
)

// RequireErrorType asserts that err converts to a structured detail of
// the given type ("type_mismatch", "access_denied", ...).
func RequireErrorType(t *testing.T, err error, wantType string, msgAndArgs ...interface{}) {
	t.Helper()
	require.Error(t, err, msgAndArgs...)
	detail := dErrors.ToErrorDetail(err)
	require.NotNil(t, detail, msgAndArgs...)
	require.Equal(t, wantType, detail.Type, msgAndArgs...)
}

// RequireErrorCode asserts the structured detail's code, usually the
// member or field name the failure is about.
func RequireErrorCode(t *testing.T, err error, wantCode string, msgAndArgs ...interface{}) {
	t.Helper()
	require.Error(t, err, msgAndArgs...)
	detail := dErrors.ToErrorDetail(err)
	require.NotNil(t, detail, msgAndArgs...)
	require.Equal(t, wantCode, detail.Code, msgAndArgs...)
}
