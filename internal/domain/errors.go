package domain

import (
	"errors"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrInsufficientCredit = errors.New("crédito disponible insuficiente")
	ErrAlreadyVoid        = errors.New("la venta ya está anulada")
	ErrAlreadySettled     = errors.New("el crédito ya está saldado o anulado")
	ErrExcessPayment      = errors.New("el pago excede el saldo pendiente")
)

// DetailedError envuelve un error centinela con la lista completa de reglas
// violadas, para que el caller pueda reconstruir qué falló y con qué valores.
// Se valida todo lo validable antes de reportar: Details trae todas las
// violaciones, no solo la primera.
type DetailedError struct {
	Kind    error
	Details []string
}

// Error implementa error: centinela + detalles separados por "; ".
func (e *DetailedError) Error() string {
	if len(e.Details) == 0 {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + strings.Join(e.Details, "; ")
}

// Unwrap permite errors.Is contra el centinela.
func (e *DetailedError) Unwrap() error { return e.Kind }

// Detailed construye un DetailedError sobre un centinela.
func Detailed(kind error, details ...string) error {
	return &DetailedError{Kind: kind, Details: details}
}

// DetailsOf extrae la lista de detalles si err (o su cadena) es un DetailedError.
func DetailsOf(err error) []string {
	var de *DetailedError
	if errors.As(err, &de) {
		return de.Details
	}
	return nil
}
