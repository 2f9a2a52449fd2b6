// Package errors 定义业务错误码和错误处理
package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError 应用错误
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error 实现 error 接口
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 实现 errors.Unwrap
func (e *AppError) Unwrap() error {
	return e.Err
}

// New 创建新的应用错误
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装错误
func Wrap(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WithMessage 修改错误消息
func (e *AppError) WithMessage(message string) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: message,
		Err:     e.Err,
	}
}

// WithError 添加原始错误
func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: e.Message,
		Err:     err,
	}
}

// 通用错误码 (1000-1999)
var (
	ErrUnknown         = New(1000, "Error desconocido")
	ErrInvalidParams   = New(1001, "Datos inválidos")
	ErrNotFound        = New(1002, "Registro no encontrado")
	ErrAlreadyExists   = New(1003, "El registro ya existe")
	ErrDatabaseError   = New(1004, "Error en la base de datos")
	ErrCacheError      = New(1005, "Error de caché")
	ErrInternalError   = New(1006, "Error interno")
	ErrRateLimitExceed = New(1008, "Demasiadas solicitudes, intente más tarde")
	ErrMissingFields   = New(1011, "Todos los campos son obligatorios.")
	ErrCreateFailed    = New(1012, "Error al crear la reserva")
)

// 认证错误码 (2000-2999)
var (
	ErrUnauthorized       = New(2000, "Debes iniciar sesión para acceder a esta página.")
	ErrTokenExpired       = New(2001, "La sesión ha expirado")
	ErrTokenInvalid       = New(2002, "Sesión inválida")
	ErrInvalidCredentials = New(2007, "Usuario o contraseña incorrectos.")
	ErrDuplicateUsername  = New(2013, "El nombre de usuario ya existe.")
	ErrCannotDeleteSelf   = New(2014, "No puedes eliminar tu propia cuenta.")
	ErrUserNotFound       = New(2015, "Usuario no encontrado.")
)

// 客户错误码 (3000-3999)
var (
	ErrCustomerNotFound        = New(3000, "Cliente no encontrado.")
	ErrDuplicateIdentification = New(3001, "Ya existe un cliente con esa identificación.")
	ErrInvalidEmail            = New(3002, "Email inválido.")
	ErrInvalidPhone            = New(3003, "Teléfono inválido.")
)

// 房间错误码 (4000-4999)
var (
	ErrRoomNotFound        = New(4000, "Habitación no encontrada.")
	ErrDuplicateRoomNumber = New(4001, "El número de habitación ya existe.")
	ErrInvalidRoomStatus   = New(4002, "Estado de habitación no válido.")
)

// 预订错误码 (5000-5999)
var (
	ErrReservationNotFound = New(5000, "Reserva no encontrada.")
	ErrInvalidDateRange    = New(5001, "La fecha de salida no puede ser anterior a la de entrada.")
)

// 付款错误码 (6000-6999)
var (
	ErrPaymentNotFound       = New(6000, "Pago no encontrado.")
	ErrInvalidPaymentStatus  = New(6001, "Estado no válido.")
	ErrCannotDeleteCompleted = New(6002, "No se puede eliminar un pago completado.")
	ErrInvalidAmount         = New(6003, "El monto debe ser mayor a 0.")
)

// 报表错误码 (7000-7999)
var (
	ErrExportFailed = New(7000, "Error al exportar el reporte.")
)

// IsAppError 判断是否为应用错误
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// GetAppError 获取应用错误
func GetAppError(err error) *AppError {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return ErrUnknown.WithError(err)
}

// Is 判断错误是否为指定错误码
func Is(err error, target *AppError) bool {
	var appErr *AppError
	if !stderrors.As(err, &appErr) {
		return false
	}
	return appErr.Code == target.Code
}
