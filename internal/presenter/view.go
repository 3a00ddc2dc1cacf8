package presenter

import (
	"context"

	"house-catalog/internal/domain/houses"
)

// Row es una línea de la lista. ID viaja fuera de banda; una vista que no
// pueda guardarlo deja ID en 0 y se resuelve por texto.
type Row struct {
	ID   int64
	Text string
}

// Form es el buffer de edición: el id mostrado, los campos de texto y el tipo elegido.
type Form struct {
	ID string
	houses.Fields

	KindID int64 // 0 = sin tipo elegido
}

// View es el contrato con la capa de widgets.
type View interface {
	FilterText() string
	SetRows(rows []Row)
	Selected() (Row, bool)

	Form() Form
	SetForm(f Form)
	SetKinds(kinds []houses.Kind)
	SetFloorEnabled(enabled bool)

	SetArmed(b Button, armed bool)
	ShowMessage(msg string)
}

// Service es lo que el presenter usa de houses.Service.
type Service interface {
	Create(ctx context.Context, f houses.Fields, kindID int64) (int64, error)
	Update(ctx context.Context, id string, f houses.Fields, kindID int64) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	List(ctx context.Context) ([]houses.HouseWithKind, error)

	Kinds() []houses.Kind
	RequiresFloor(kindID int64) bool
}

var _ Service = (*houses.Service)(nil)
