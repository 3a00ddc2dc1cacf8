package houses

import (
	"context"
	"errors"
	"sort"
	"testing"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

var errRepoDown = errors.New("repo: down")

type testRepo struct {
	kinds  []Kind
	byID   map[int64]House
	nextID int64

	writes int
	fail   bool
}

func newTestRepo() *testRepo {
	return &testRepo{
		kinds: []Kind{
			{ID: 1, Name: "casa"},
			{ID: 2, Name: "departamento"},
			{ID: 3, Name: "PH"},
		},
		byID:   map[int64]House{},
		nextID: 1,
	}
}

func (r *testRepo) kindName(id int64) (string, bool) {
	for _, k := range r.kinds {
		if k.ID == id {
			return k.Name, true
		}
	}
	return "", false
}

func (r *testRepo) ListAll(ctx context.Context) ([]HouseWithKind, error) {
	if r.fail {
		return nil, &StoreError{Op: "list", Err: errRepoDown}
	}
	out := make([]HouseWithKind, 0, len(r.byID))
	for _, h := range r.byID {
		name, _ := r.kindName(h.KindID)
		out = append(out, HouseWithKind{House: h, Kind: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *testRepo) ListKinds(ctx context.Context) ([]Kind, error) {
	if r.fail {
		return nil, &StoreError{Op: "list kinds", Err: errRepoDown}
	}
	return append([]Kind(nil), r.kinds...), nil
}

func (r *testRepo) Insert(ctx context.Context, h NewHouse) (int64, error) {
	r.writes++
	if r.fail {
		return 0, &StoreError{Op: "insert", Err: errRepoDown}
	}
	if _, ok := r.kindName(h.KindID); !ok {
		return 0, &StoreError{Op: "insert", Err: errors.New("FOREIGN KEY constraint failed")}
	}
	id := r.nextID
	r.nextID++
	r.byID[id] = House{
		ID: id, Street: h.Street, StreetNumber: h.StreetNumber, StreetFloor: h.StreetFloor,
		PostalCode: h.PostalCode, SurfaceSquareMeters: h.SurfaceSquareMeters,
		Bathrooms: h.Bathrooms, Rooms: h.Rooms, KindID: h.KindID,
	}
	return 1, nil
}

func (r *testRepo) Update(ctx context.Context, h House) (int64, error) {
	r.writes++
	if r.fail {
		return 0, &StoreError{Op: "update", Err: errRepoDown}
	}
	if _, ok := r.byID[h.ID]; !ok {
		return 0, nil
	}
	r.byID[h.ID] = h
	return 1, nil
}

func (r *testRepo) Delete(ctx context.Context, id int64) (int64, error) {
	r.writes++
	if r.fail {
		return 0, &StoreError{Op: "delete", Err: errRepoDown}
	}
	if _, ok := r.byID[id]; !ok {
		return 0, nil
	}
	delete(r.byID, id)
	return 1, nil
}

func fields(street, number, floor, cp, surface, bathrooms, rooms string) Fields {
	return Fields{
		Street: street, StreetNumber: number, StreetFloor: floor, PostalCode: cp,
		Surface: surface, Bathrooms: bathrooms, Rooms: rooms,
	}
}

// -------------------------
// Tests
// -------------------------

func TestService_Create_House_RendersWithoutFloor(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	ctx := context.Background()

	n, err := svc.Create(ctx, fields("Av. Siempre Viva", "742", "", "1405", "120", "2", "3"), 1)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 row, got %d", n)
	}

	items, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	want := `#1: Av. Siempre Viva 742 CP: 1405. Con 2 baño/s ,3 habitación/es. Tipo "casa" (120m2)`
	if got := items[0].String(); got != want {
		t.Fatalf("render mismatch:\n got %q\nwant %q", got, want)
	}
}

func TestService_Create_Apartment_KeepsFloorAndUnclosedParen(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	ctx := context.Background()

	if _, err := svc.Create(ctx, fields("Calle Falsa", "123", "5", "1000", "60", "1", "2"), 2); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	items, _ := svc.List(ctx)
	want := `#1: Calle Falsa 123 (piso 5 CP: 1000. Con 1 baño/s ,2 habitación/es. Tipo "departamento" (60m2)`
	if got := items[0].String(); got != want {
		t.Fatalf("render mismatch:\n got %q\nwant %q", got, want)
	}
}

func TestService_Create_ErasesFloor_WhenKindHasNoFloor(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	// un piso cualquiera en una casa no es error: se borra
	if _, err := svc.Create(context.Background(), fields("X", "1", "no-es-piso", "1", "1", "1", "1"), 3); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if got := repo.byID[1].StreetFloor; got != "" {
		t.Fatalf("expected empty floor, got %q", got)
	}
}

func TestService_Create_InvalidNumbers_DoNotTouchStore(t *testing.T) {
	cases := []struct {
		name string
		f    Fields
		want error
	}{
		{"street number letters", fields("X", "abc", "", "1", "1", "1", "1"), ErrInvalidStreetNumber},
		{"street number negative", fields("X", "-1", "", "1", "1", "1", "1"), ErrInvalidStreetNumber},
		{"street number padded", fields("X", " 1", "", "1", "1", "1", "1"), ErrInvalidStreetNumber},
		{"surface decimal", fields("X", "1", "", "1", "60.5", "1", "1"), ErrInvalidSurface},
		{"surface units", fields("X", "1", "", "1", "60m2", "1", "1"), ErrInvalidSurface},
		{"bathrooms empty", fields("X", "1", "", "1", "1", "", "1"), ErrInvalidBathrooms},
		{"rooms plus sign", fields("X", "1", "", "1", "1", "1", "+2"), ErrInvalidRooms},
		{"rooms overflow", fields("X", "1", "", "1", "1", "1", "99999999999"), ErrInvalidRooms},
		// short-circuit: el primer campo inválido gana
		{"first failure wins", fields("X", "a", "", "1", "b", "c", "d"), ErrInvalidStreetNumber},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newTestRepo()
			svc := NewService(repo)

			_, err := svc.Create(context.Background(), tc.f, 1)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if repo.writes != 0 {
				t.Fatalf("expected no store writes, got %d", repo.writes)
			}
		})
	}
}

func TestService_Create_RejectsUnknownKind(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	for _, kind := range []int64{0, -1, 4} {
		_, err := svc.Create(context.Background(), fields("X", "1", "", "1", "1", "1", "1"), kind)
		if !errors.Is(err, ErrInvalidKind) {
			t.Fatalf("kind %d: expected ErrInvalidKind, got %v", kind, err)
		}
	}
	if repo.writes != 0 {
		t.Fatalf("expected no store writes, got %d", repo.writes)
	}
}

func TestService_Update_ReplacesRow(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	ctx := context.Background()

	if _, err := svc.Create(ctx, fields("Av. Siempre Viva", "742", "", "1405", "120", "2", "3"), 1); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	n, err := svc.Update(ctx, "1", fields("Nueva", "10", "", "1405", "130", "2", "3"), 1)
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 row, got %d", n)
	}

	h, err := svc.Get(ctx, 1)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if h.Street != "Nueva" || h.StreetNumber != 10 || h.SurfaceSquareMeters != 130 {
		t.Fatalf("unexpected row after update: %#v", h.House)
	}
}

func TestService_Update_ErasesFloor_WhenKindChangesToHouse(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	ctx := context.Background()

	if _, err := svc.Create(ctx, fields("Calle Falsa", "123", "5", "1000", "60", "1", "2"), 2); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if got := repo.byID[1].StreetFloor; got != "5" {
		t.Fatalf("expected floor 5 for an apartment, got %q", got)
	}

	// pasa de departamento a casa con el piso todavía cargado
	if _, err := svc.Update(ctx, "1", fields("Calle Falsa", "123", "5", "1000", "60", "1", "2"), 1); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if got := repo.byID[1].StreetFloor; got != "" {
		t.Fatalf("expected empty floor after update, got %q", got)
	}
	if got := repo.byID[1].KindID; got != 1 {
		t.Fatalf("expected kind 1, got %d", got)
	}

	h, err := svc.Get(ctx, 1)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	want := `#1: Calle Falsa 123 CP: 1000. Con 1 baño/s ,2 habitación/es. Tipo "casa" (60m2)`
	if got := h.String(); got != want {
		t.Fatalf("render mismatch:\n got %q\nwant %q", got, want)
	}
}

func TestService_Update_InvalidID(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	for _, id := range []string{"", "0", "-3", "abc", "1.0"} {
		_, err := svc.Update(context.Background(), id, fields("X", "bad", "", "1", "1", "1", "1"), 1)
		if !errors.Is(err, ErrInvalidID) {
			t.Fatalf("id %q: expected ErrInvalidID, got %v", id, err)
		}
	}
	if repo.writes != 0 {
		t.Fatalf("expected no store writes, got %d", repo.writes)
	}
}

func TestService_Update_MissingID_ReturnsZeroRows(t *testing.T) {
	svc := NewService(newTestRepo())

	n, err := svc.Update(context.Background(), "99", fields("X", "1", "", "1", "1", "1", "1"), 1)
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 rows, got %d", n)
	}
}

func TestService_Delete_IsIdempotent(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	ctx := context.Background()

	_, _ = svc.Create(ctx, fields("Av. Siempre Viva", "742", "", "1405", "120", "2", "3"), 1)

	n, err := svc.Delete(ctx, 1)
	if err != nil || n != 1 {
		t.Fatalf("first delete: n=%d err=%v", n, err)
	}
	n, err = svc.Delete(ctx, 1)
	if err != nil || n != 0 {
		t.Fatalf("second delete: n=%d err=%v", n, err)
	}

	if _, err := svc.Get(ctx, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestService_StoreFailure_IsPersistenceError(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	ctx := context.Background()

	if err := svc.LoadKinds(ctx); err != nil {
		t.Fatalf("LoadKinds returned error: %v", err)
	}
	repo.fail = true

	_, err := svc.Create(ctx, fields("X", "1", "", "1", "1", "1", "1"), 1)
	if !errors.Is(err, ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
	if !errors.Is(err, errRepoDown) {
		t.Fatalf("expected cause to be kept, got %v", err)
	}
	var se *StoreError
	if !errors.As(err, &se) || se.Op != "insert" {
		t.Fatalf("expected StoreError{Op: insert} in chain, got %v", err)
	}
	if err.Error() != "Error guardando en la DB" {
		t.Fatalf("unexpected message %q", err.Error())
	}

	if _, err := svc.Delete(ctx, 1); !errors.Is(err, ErrPersistence) {
		t.Fatalf("expected ErrPersistence on delete, got %v", err)
	}
	if _, err := svc.List(ctx); !errors.Is(err, ErrPersistence) {
		t.Fatalf("expected ErrPersistence on list, got %v", err)
	}
}

func TestService_FloorKinds_AreConfigurable(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, WithFloorKinds([]string{"PH"}))
	ctx := context.Background()

	if err := svc.LoadKinds(ctx); err != nil {
		t.Fatalf("LoadKinds returned error: %v", err)
	}
	if !svc.RequiresFloor(3) || svc.RequiresFloor(2) {
		t.Fatalf("expected only PH (3) to require floor")
	}

	_, _ = svc.Create(ctx, fields("X", "1", "2B", "1", "1", "1", "1"), 2)
	if got := repo.byID[1].StreetFloor; got != "" {
		t.Fatalf("expected floor erased for departamento, got %q", got)
	}
}
