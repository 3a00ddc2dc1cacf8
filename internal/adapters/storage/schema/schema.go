// Package schema crea las tablas houses_kind y houses y siembra los tipos.
// La app nunca migra sola: esto lo corre el subcomando "casas schema".
package schema

import (
	"context"
	"database/sql"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"house-catalog/internal/adapters/storage/sqldb"
	"house-catalog/internal/domain/houses"
)

// DefaultKinds se siembran solo si houses_kind está vacía.
var DefaultKinds = []houses.Kind{
	{ID: 1, Name: "casa"},
	{ID: 2, Name: "departamento"},
	{ID: 3, Name: "PH"},
}

type kindRow struct {
	ID   int64  `gorm:"primaryKey;autoIncrement:false"`
	Kind string `gorm:"not null"`
}

func (kindRow) TableName() string { return "houses_kind" }

type houseRow struct {
	ID                  int64   `gorm:"primaryKey"`
	Street              string  `gorm:"not null"`
	StreetNumber        int32   `gorm:"not null"`
	StreetFloor         string  `gorm:"not null;default:''"`
	PostalCode          string  `gorm:"not null"`
	SurfaceSquareMeters int32   `gorm:"not null"`
	Bathrooms           int32   `gorm:"not null"`
	Rooms               int32   `gorm:"not null"`
	KindID              int64   `gorm:"not null;index"`
	Kind                kindRow `gorm:"foreignKey:KindID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (houseRow) TableName() string { return "houses" }

type Options struct {
	// Seed siembra DefaultKinds (o Kinds si viene) cuando no hay tipos.
	Seed  bool
	Kinds []houses.Kind
}

// Provision corre AutoMigrate sobre una conexión ya abierta por sqldb.Open.
func Provision(ctx context.Context, db *sql.DB, dialect sqldb.Dialect, opts Options) error {
	gdb, err := gorm.Open(dialectorFor(db, dialect), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return fmt.Errorf("open gorm: %w", err)
	}
	gdb = gdb.WithContext(ctx)

	if err := gdb.AutoMigrate(&kindRow{}, &houseRow{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	if !opts.Seed {
		return nil
	}
	kinds := opts.Kinds
	if len(kinds) == 0 {
		kinds = DefaultKinds
	}
	return seedKinds(gdb, kinds)
}

func seedKinds(gdb *gorm.DB, kinds []houses.Kind) error {
	var count int64
	if err := gdb.Model(&kindRow{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count kinds: %w", err)
	}
	if count > 0 {
		return nil
	}

	rows := make([]kindRow, 0, len(kinds))
	for _, k := range kinds {
		rows = append(rows, kindRow{ID: k.ID, Kind: k.Name})
	}
	if err := gdb.Create(&rows).Error; err != nil {
		return fmt.Errorf("seed kinds: %w", err)
	}
	return nil
}

func dialectorFor(db *sql.DB, dialect sqldb.Dialect) gorm.Dialector {
	if dialect == sqldb.Postgres {
		return postgres.New(postgres.Config{Conn: db})
	}
	return &sqlite.Dialector{DriverName: "sqlite", Conn: db}
}
