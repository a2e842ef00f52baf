package repository

import (
	"fmt"

	"gorm.io/gorm"
)

// Table definitions are written out as raw DDL instead of AutoMigrate so the
// on-disk shapes (CHECK constraints, FK clauses, AUTOINCREMENT keys) stay
// identical for any other tool that opens the same sqlite file.
var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS material_types
	(
		material_type_id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS units
	(
		unit_id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		abbreviation TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS materials
	(
		material_id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		material_type_id INTEGER NOT NULL,
		unit_id INTEGER NOT NULL,
		unit_price REAL NOT NULL CHECK (unit_price >= 0),
		stock_quantity REAL NOT NULL,
		min_quantity REAL NOT NULL CHECK (min_quantity >= 0),
		package_quantity INTEGER NOT NULL,
		FOREIGN KEY (material_type_id) REFERENCES material_types (material_type_id),
		FOREIGN KEY (unit_id) REFERENCES units (unit_id)
	)`,
	`CREATE TABLE IF NOT EXISTS product_types
	(
		product_type_id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		coefficient REAL NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS products
	(
		product_id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		description TEXT,
		product_type_id INTEGER NOT NULL,
		FOREIGN KEY (product_type_id) REFERENCES product_types (product_type_id)
	)`,
	`CREATE TABLE IF NOT EXISTS product_materials
	(
		product_material_id INTEGER PRIMARY KEY AUTOINCREMENT,
		product_id INTEGER NOT NULL,
		material_id INTEGER NOT NULL,
		required_quantity REAL NOT NULL,
		loss_percentage REAL NOT NULL,
		FOREIGN KEY (product_id) REFERENCES products (product_id) ON DELETE CASCADE,
		FOREIGN KEY (material_id) REFERENCES materials (material_id) ON DELETE CASCADE,
		UNIQUE (product_id, material_id)
	)`,
}

// InitSchema creates the five inventory tables and the BOM link table.
func InitSchema(db *gorm.DB) error {
	for _, ddl := range schemaDDL {
		if err := db.Exec(ddl).Error; err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	return nil
}
