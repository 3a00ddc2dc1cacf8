package houses

// Kind clasifica una vivienda (casa, departamento, PH, ...).
// Se siembra fuera de la app y es de solo lectura en runtime.
type Kind struct {
	ID   int64
	Name string

	// RequiresFloor lo calcula el Catalog a partir del slug del nombre,
	// nunca a partir del id.
	RequiresFloor bool
}

// House es una vivienda persistida.
type House struct {
	ID                  int64
	Street              string
	StreetNumber        int32
	StreetFloor         string // vacío salvo para tipos que requieren piso
	PostalCode          string
	SurfaceSquareMeters int32
	Bathrooms           int32
	Rooms               int32
	KindID              int64
}

// NewHouse es una vivienda todavía sin id (lo asigna el store).
type NewHouse struct {
	Street              string
	StreetNumber        int32
	StreetFloor         string
	PostalCode          string
	SurfaceSquareMeters int32
	Bathrooms           int32
	Rooms               int32
	KindID              int64
}

// HouseWithKind es la proyección de lectura: vivienda + nombre del tipo.
// Es un snapshot por valor, no se persiste.
type HouseWithKind struct {
	House
	Kind string

	// KindRequiresFloor se completa en el Service con el Catalog
	// (el store no sabe nada de reglas de negocio).
	KindRequiresFloor bool
}

// Fields son los textos tal cual los entrega el formulario.
// No se hace trim: la UI los entrega verbatim.
type Fields struct {
	Street       string
	StreetNumber string
	StreetFloor  string
	PostalCode   string
	Surface      string
	Bathrooms    string
	Rooms        string
}
