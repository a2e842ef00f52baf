package entity

// MaterialType is the taxonomy a material belongs to (wood, metal, ...).
type MaterialType struct {
	ID   int64  `json:"material_type_id" gorm:"column:material_type_id;primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"column:name;not null"`
}

func (MaterialType) TableName() string {
	return "material_types"
}

// Unit is a measurement unit. Abbreviation is the natural key used when
// matching import rows; unknown abbreviations are registered on the fly.
type Unit struct {
	ID           int64  `json:"unit_id" gorm:"column:unit_id;primaryKey;autoIncrement"`
	Name         string `json:"name" gorm:"column:name;not null"`
	Abbreviation string `json:"abbreviation" gorm:"column:abbreviation;not null"`
}

func (Unit) TableName() string {
	return "units"
}

// Material is a raw material kept in stock.
type Material struct {
	ID              int64   `json:"material_id" gorm:"column:material_id;primaryKey;autoIncrement"`
	Name            string  `json:"name" gorm:"column:name;not null"`
	MaterialTypeID  int64   `json:"material_type_id" gorm:"column:material_type_id;not null"`
	UnitID          int64   `json:"unit_id" gorm:"column:unit_id;not null"`
	UnitPrice       float64 `json:"unit_price" gorm:"column:unit_price;not null"`
	StockQuantity   float64 `json:"stock_quantity" gorm:"column:stock_quantity;not null"`
	MinQuantity     float64 `json:"min_quantity" gorm:"column:min_quantity;not null"`
	PackageQuantity int64   `json:"package_quantity" gorm:"column:package_quantity;not null"`

	// Relations
	MaterialType *MaterialType `json:"material_type,omitempty" gorm:"foreignKey:MaterialTypeID;references:ID"`
	Unit         *Unit         `json:"unit,omitempty" gorm:"foreignKey:UnitID;references:ID"`
}

func (Material) TableName() string {
	return "materials"
}
