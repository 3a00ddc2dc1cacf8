package houses

import (
	"context"
	"strconv"
)

// Service es la fachada de dominio: parsea los textos del formulario,
// aplica las reglas según el tipo y traduce los errores del store.
// No tiene estado propio más allá del store y del catálogo de tipos.
type Service struct {
	repo       Repository
	floorKinds []string
	catalog    *Catalog
}

type Option func(*Service)

// WithFloorKinds define qué slugs de tipo usan el campo piso.
func WithFloorKinds(slugs []string) Option {
	return func(s *Service) {
		if len(slugs) > 0 {
			s.floorKinds = append([]string(nil), slugs...)
		}
	}
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:       repo,
		floorKinds: DefaultFloorKinds,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadKinds (re)carga el catálogo de tipos desde el store.
// Se llama al arrancar; si no, se carga en el primer uso.
func (s *Service) LoadKinds(ctx context.Context) error {
	kinds, err := s.repo.ListKinds(ctx)
	if err != nil {
		return &persistenceError{cause: err}
	}
	s.catalog = NewCatalog(kinds, s.floorKinds)
	return nil
}

func (s *Service) kinds(ctx context.Context) (*Catalog, error) {
	if s.catalog == nil {
		if err := s.LoadKinds(ctx); err != nil {
			return nil, err
		}
	}
	return s.catalog, nil
}

// Kinds devuelve el catálogo cargado (vacío si todavía no se cargó).
func (s *Service) Kinds() []Kind {
	return s.catalog.Kinds()
}

func (s *Service) RequiresFloor(kindID int64) bool {
	return s.catalog.RequiresFloor(kindID)
}

// Create valida los campos y guarda una vivienda nueva.
// Devuelve la cantidad de filas insertadas.
func (s *Service) Create(ctx context.Context, f Fields, kindID int64) (int64, error) {
	nh, err := s.normalize(ctx, f, kindID)
	if err != nil {
		return 0, err
	}

	n, err := s.repo.Insert(ctx, nh)
	if err != nil {
		return 0, &persistenceError{cause: err}
	}
	return n, nil
}

// Update valida id + campos y reemplaza la vivienda completa.
// Un id inexistente devuelve 0 filas sin error.
func (s *Service) Update(ctx context.Context, id string, f Fields, kindID int64) (int64, error) {
	houseID, err := parseID(id)
	if err != nil {
		return 0, err
	}

	nh, err := s.normalize(ctx, f, kindID)
	if err != nil {
		return 0, err
	}

	n, err := s.repo.Update(ctx, House{
		ID:                  houseID,
		Street:              nh.Street,
		StreetNumber:        nh.StreetNumber,
		StreetFloor:         nh.StreetFloor,
		PostalCode:          nh.PostalCode,
		SurfaceSquareMeters: nh.SurfaceSquareMeters,
		Bathrooms:           nh.Bathrooms,
		Rooms:               nh.Rooms,
		KindID:              nh.KindID,
	})
	if err != nil {
		return 0, &persistenceError{cause: err}
	}
	return n, nil
}

// Delete borra por id. Borrar dos veces devuelve 0 filas, no es error.
func (s *Service) Delete(ctx context.Context, id int64) (int64, error) {
	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		return 0, &persistenceError{cause: err}
	}
	return n, nil
}

func (s *Service) List(ctx context.Context) ([]HouseWithKind, error) {
	items, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, &persistenceError{cause: err}
	}
	cat, err := s.kinds(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].KindRequiresFloor = cat.RequiresFloor(items[i].KindID)
	}
	return items, nil
}

func (s *Service) ListKinds(ctx context.Context) ([]Kind, error) {
	if err := s.LoadKinds(ctx); err != nil {
		return nil, err
	}
	return s.catalog.Kinds(), nil
}

// Get busca una vivienda por id sobre List.
func (s *Service) Get(ctx context.Context, id int64) (HouseWithKind, error) {
	items, err := s.List(ctx)
	if err != nil {
		return HouseWithKind{}, err
	}
	for _, h := range items {
		if h.ID == id {
			return h, nil
		}
	}
	return HouseWithKind{}, ErrNotFound
}

// normalize corta en el primer campo inválido. El piso se borra recién
// después de parsear todo, así que un piso "raro" en un tipo sin piso
// nunca es error.
func (s *Service) normalize(ctx context.Context, f Fields, kindID int64) (NewHouse, error) {
	number, err := parseCount(f.StreetNumber, ErrInvalidStreetNumber)
	if err != nil {
		return NewHouse{}, err
	}
	surface, err := parseCount(f.Surface, ErrInvalidSurface)
	if err != nil {
		return NewHouse{}, err
	}
	bathrooms, err := parseCount(f.Bathrooms, ErrInvalidBathrooms)
	if err != nil {
		return NewHouse{}, err
	}
	rooms, err := parseCount(f.Rooms, ErrInvalidRooms)
	if err != nil {
		return NewHouse{}, err
	}

	cat, err := s.kinds(ctx)
	if err != nil {
		return NewHouse{}, err
	}
	kind, ok := cat.Get(kindID)
	if !ok {
		return NewHouse{}, ErrInvalidKind
	}

	floor := f.StreetFloor
	if !kind.RequiresFloor {
		floor = ""
	}

	return NewHouse{
		Street:              f.Street,
		StreetNumber:        number,
		StreetFloor:         floor,
		PostalCode:          f.PostalCode,
		SurfaceSquareMeters: surface,
		Bathrooms:           bathrooms,
		Rooms:               rooms,
		KindID:              kind.ID,
	}, nil
}

// parseCount acepta solo dígitos ASCII: sin signo, sin decimales, sin unidades.
func parseCount(s string, invalid error) (int32, error) {
	if !isDigits(s) {
		return 0, invalid
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, invalid
	}
	return int32(n), nil
}

func parseID(s string) (int64, error) {
	if !isDigits(s) {
		return 0, ErrInvalidID
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, ErrInvalidID
	}
	return n, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
