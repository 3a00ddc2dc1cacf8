package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"house-catalog/internal/domain/houses"
)

var (
	ErrUnknownKind = errors.New("FOREIGN KEY constraint failed: kind_id")
)

// housesRepo imita al store SQL: ids autoincrementales que no se reusan
// e integridad referencial de kind_id.
type housesRepo struct {
	mu     sync.RWMutex
	kinds  map[int64]houses.Kind
	byID   map[int64]houses.House
	nextID int64
}

// NewHousesRepo crea un store en memoria con los tipos dados ya sembrados.
func NewHousesRepo(kinds []houses.Kind) houses.Repository {
	r := &housesRepo{
		kinds:  make(map[int64]houses.Kind, len(kinds)),
		byID:   make(map[int64]houses.House),
		nextID: 1,
	}
	for _, k := range kinds {
		r.kinds[k.ID] = houses.Kind{ID: k.ID, Name: k.Name}
	}
	return r
}

func (r *housesRepo) ListAll(ctx context.Context) ([]houses.HouseWithKind, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]houses.HouseWithKind, 0, len(r.byID))
	for _, h := range r.byID {
		k, ok := r.kinds[h.KindID]
		if !ok {
			// inner join
			continue
		}
		out = append(out, houses.HouseWithKind{House: h, Kind: k.Name})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *housesRepo) ListKinds(ctx context.Context) ([]houses.Kind, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]houses.Kind, 0, len(r.kinds))
	for _, k := range r.kinds {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *housesRepo) Insert(ctx context.Context, h houses.NewHouse) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.kinds[h.KindID]; !ok {
		return 0, &houses.StoreError{Op: "insert house", Err: ErrUnknownKind}
	}

	id := r.nextID
	r.nextID++
	r.byID[id] = houses.House{
		ID:                  id,
		Street:              h.Street,
		StreetNumber:        h.StreetNumber,
		StreetFloor:         h.StreetFloor,
		PostalCode:          h.PostalCode,
		SurfaceSquareMeters: h.SurfaceSquareMeters,
		Bathrooms:           h.Bathrooms,
		Rooms:               h.Rooms,
		KindID:              h.KindID,
	}
	return 1, nil
}

func (r *housesRepo) Update(ctx context.Context, h houses.House) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[h.ID]; !exists {
		return 0, nil
	}
	if _, ok := r.kinds[h.KindID]; !ok {
		return 0, &houses.StoreError{Op: "update house", Err: ErrUnknownKind}
	}
	r.byID[h.ID] = h
	return 1, nil
}

func (r *housesRepo) Delete(ctx context.Context, id int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return 0, nil
	}
	delete(r.byID, id)
	return 1, nil
}
