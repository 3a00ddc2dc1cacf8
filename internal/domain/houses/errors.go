package houses

import (
	"errors"
	"fmt"
)

// Errores de dominio. El texto es el mensaje corto que ve el usuario.
var (
	ErrInvalidID           = errors.New("Error convirtiendo el id")
	ErrInvalidStreetNumber = errors.New("Error convirtiendo el número de la calle")
	ErrInvalidSurface      = errors.New("Error convirtiendo la superficie")
	ErrInvalidBathrooms    = errors.New("Error convirtiendo los baños")
	ErrInvalidRooms        = errors.New("Error convirtiendo las habitaciones")
	ErrInvalidKind         = errors.New("Error convirtiendo el tipo de casa")
	ErrPersistence         = errors.New("Error guardando en la DB")
	ErrNotFound            = errors.New("Elemento no encontrado")
)

// StoreError envuelve cualquier falla del store. Es opaco: el store no
// clasifica errores, eso lo hace el Service.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	if e.Err == nil {
		return "store: " + e.Op
	}
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// persistenceError colapsa una falla del store en ErrPersistence
// sin perder la causa (errors.Is/As siguen funcionando para ambos).
type persistenceError struct {
	cause error
}

func (e *persistenceError) Error() string { return ErrPersistence.Error() }

func (e *persistenceError) Unwrap() []error { return []error{ErrPersistence, e.cause} }
