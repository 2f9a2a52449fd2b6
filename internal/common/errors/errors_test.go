// Package errors 错误码和错误处理单元测试
package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAndWrap(t *testing.T) {
	err := New(1001, "Datos inválidos")
	require.NotNil(t, err)
	assert.Equal(t, 1001, err.Code)
	assert.Nil(t, err.Err)

	cause := stderrors.New("connection refused")
	wrapped := Wrap(1004, "Error en la base de datos", cause)
	assert.Equal(t, cause, wrapped.Err)
	assert.Same(t, cause, stderrors.Unwrap(wrapped))
}

func TestAppError_Error(t *testing.T) {
	assert.Equal(t, "[5000] Reserva no encontrada.", ErrReservationNotFound.Error())
	assert.Equal(t,
		"[1012] Error al crear la reserva: disk full",
		ErrCreateFailed.WithError(stderrors.New("disk full")).Error(),
	)
}

func TestAppError_WithMessageKeepsCode(t *testing.T) {
	err := ErrInvalidParams.WithMessage("El nombre debe tener al menos 2 caracteres")

	assert.Equal(t, ErrInvalidParams.Code, err.Code)
	assert.Equal(t, "El nombre debe tener al menos 2 caracteres", err.Message)
	// 原错误不被修改
	assert.Equal(t, "Datos inválidos", ErrInvalidParams.Message)
}

func TestIsAppError(t *testing.T) {
	assert.True(t, IsAppError(ErrRoomNotFound))
	assert.True(t, IsAppError(fmt.Errorf("wrap: %w", ErrRoomNotFound)))
	assert.False(t, IsAppError(stderrors.New("plain")))
	assert.False(t, IsAppError(nil))
}

func TestGetAppError(t *testing.T) {
	t.Run("应用错误原样返回", func(t *testing.T) {
		assert.Same(t, ErrPaymentNotFound, GetAppError(ErrPaymentNotFound))
	})

	t.Run("包装的应用错误", func(t *testing.T) {
		got := GetAppError(fmt.Errorf("ctx: %w", ErrCannotDeleteCompleted))
		assert.Equal(t, ErrCannotDeleteCompleted.Code, got.Code)
	})

	t.Run("普通错误转为未知错误", func(t *testing.T) {
		plain := stderrors.New("boom")
		got := GetAppError(plain)
		assert.Equal(t, ErrUnknown.Code, got.Code)
		assert.Equal(t, plain, got.Err)
	})
}

func TestIs(t *testing.T) {
	assert.True(t, Is(ErrDuplicateIdentification.WithError(stderrors.New("x")), ErrDuplicateIdentification))
	assert.False(t, Is(ErrDuplicateIdentification, ErrDuplicateRoomNumber))
	assert.False(t, Is(stderrors.New("x"), ErrUnknown))
}

func TestErrorCodesUnique(t *testing.T) {
	all := []*AppError{
		ErrUnknown, ErrInvalidParams, ErrNotFound, ErrAlreadyExists, ErrDatabaseError,
		ErrCacheError, ErrInternalError, ErrRateLimitExceed, ErrMissingFields, ErrCreateFailed,
		ErrUnauthorized, ErrTokenExpired, ErrTokenInvalid, ErrInvalidCredentials,
		ErrDuplicateUsername, ErrCannotDeleteSelf, ErrUserNotFound,
		ErrCustomerNotFound, ErrDuplicateIdentification, ErrInvalidEmail, ErrInvalidPhone,
		ErrRoomNotFound, ErrDuplicateRoomNumber, ErrInvalidRoomStatus,
		ErrReservationNotFound, ErrInvalidDateRange,
		ErrPaymentNotFound, ErrInvalidPaymentStatus, ErrCannotDeleteCompleted, ErrInvalidAmount,
		ErrExportFailed,
	}

	seen := make(map[int]string)
	for _, e := range all {
		prev, dup := seen[e.Code]
		assert.False(t, dup, "错误码 %d 重复: %s / %s", e.Code, prev, e.Message)
		seen[e.Code] = e.Message
	}
}
