package sqldb

import (
	"context"
	"database/sql"

	"house-catalog/internal/domain/houses"
)

// HousesRepo es el Store sobre database/sql.
// Dueño exclusivo de la conexión; no es seguro para uso concurrente.
type HousesRepo struct {
	db      *sql.DB
	dialect Dialect
}

func NewHousesRepo(db *sql.DB, dialect Dialect) *HousesRepo {
	return &HousesRepo{db: db, dialect: dialect}
}

var _ houses.Repository = (*HousesRepo)(nil)

func (r *HousesRepo) ListAll(ctx context.Context) ([]houses.HouseWithKind, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			h.id, h.street, h.street_number, h.street_floor, h.postal_code,
			h.surface_square_meters, h.bathrooms, h.rooms,
			k.id, k.kind
		FROM houses h
		INNER JOIN houses_kind k ON h.kind_id = k.id
		ORDER BY h.id ASC
	`)
	if err != nil {
		return nil, &houses.StoreError{Op: "list houses", Err: err}
	}
	defer rows.Close()

	out := make([]houses.HouseWithKind, 0)
	for rows.Next() {
		var h houses.HouseWithKind
		var floor sql.NullString
		if err := rows.Scan(
			&h.ID,
			&h.Street,
			&h.StreetNumber,
			&floor,
			&h.PostalCode,
			&h.SurfaceSquareMeters,
			&h.Bathrooms,
			&h.Rooms,
			&h.KindID,
			&h.Kind,
		); err != nil {
			return nil, &houses.StoreError{Op: "scan house", Err: err}
		}
		h.StreetFloor = floor.String
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, &houses.StoreError{Op: "list houses", Err: err}
	}
	return out, nil
}

func (r *HousesRepo) ListKinds(ctx context.Context) ([]houses.Kind, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, kind FROM houses_kind ORDER BY id ASC`)
	if err != nil {
		return nil, &houses.StoreError{Op: "list kinds", Err: err}
	}
	defer rows.Close()

	out := make([]houses.Kind, 0)
	for rows.Next() {
		var k houses.Kind
		if err := rows.Scan(&k.ID, &k.Name); err != nil {
			return nil, &houses.StoreError{Op: "scan kind", Err: err}
		}
		out = append(out, k)
	}
	if err := rows.Err(); err != nil {
		return nil, &houses.StoreError{Op: "list kinds", Err: err}
	}
	return out, nil
}

func (r *HousesRepo) Insert(ctx context.Context, h houses.NewHouse) (int64, error) {
	res, err := r.db.ExecContext(ctx, r.dialect.rebind(`
		INSERT INTO houses (
			street, street_number, street_floor, postal_code,
			surface_square_meters, bathrooms, rooms, kind_id
		) VALUES (?,?,?,?,?,?,?,?)
	`),
		h.Street,
		h.StreetNumber,
		h.StreetFloor,
		h.PostalCode,
		h.SurfaceSquareMeters,
		h.Bathrooms,
		h.Rooms,
		h.KindID,
	)
	return rowsAffected("insert house", res, err)
}

func (r *HousesRepo) Update(ctx context.Context, h houses.House) (int64, error) {
	res, err := r.db.ExecContext(ctx, r.dialect.rebind(`
		UPDATE houses
		SET
			street = ?,
			street_number = ?,
			street_floor = ?,
			postal_code = ?,
			surface_square_meters = ?,
			bathrooms = ?,
			rooms = ?,
			kind_id = ?
		WHERE id = ?
	`),
		h.Street,
		h.StreetNumber,
		h.StreetFloor,
		h.PostalCode,
		h.SurfaceSquareMeters,
		h.Bathrooms,
		h.Rooms,
		h.KindID,
		h.ID,
	)
	return rowsAffected("update house", res, err)
}

func (r *HousesRepo) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, r.dialect.rebind(`DELETE FROM houses WHERE id = ?`), id)
	return rowsAffected("delete house", res, err)
}

func rowsAffected(op string, res sql.Result, err error) (int64, error) {
	if err != nil {
		return 0, &houses.StoreError{Op: op, Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, &houses.StoreError{Op: op, Err: err}
	}
	return n, nil
}
