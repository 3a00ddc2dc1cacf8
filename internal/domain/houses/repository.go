package houses

import "context"

// Repository es el Store: CRUD durable y lectura con join.
// No es seguro para uso concurrente; se usa solo desde el pump de la UI.
type Repository interface {
	// ListAll devuelve cada vivienda unida (inner join) con su tipo, ordenada por id asc.
	ListAll(ctx context.Context) ([]HouseWithKind, error)
	// ListKinds devuelve los tipos ordenados por id asc.
	ListKinds(ctx context.Context) ([]Kind, error)

	Insert(ctx context.Context, h NewHouse) (int64, error)
	// Update devuelve 0 filas si el id no existe (no es error).
	Update(ctx context.Context, h House) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}
