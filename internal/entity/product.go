package entity

// ProductType groups products and carries the scaling coefficient used by
// downstream planning tools.
type ProductType struct {
	ID          int64   `json:"product_type_id" gorm:"column:product_type_id;primaryKey;autoIncrement"`
	Name        string  `json:"name" gorm:"column:name;not null"`
	Coefficient float64 `json:"coefficient" gorm:"column:coefficient;not null"`
}

func (ProductType) TableName() string {
	return "product_types"
}

// Product is a finished good assembled from materials.
type Product struct {
	ID            int64  `json:"product_id" gorm:"column:product_id;primaryKey;autoIncrement"`
	Name          string `json:"name" gorm:"column:name;not null"`
	Description   string `json:"description" gorm:"column:description"`
	ProductTypeID int64  `json:"product_type_id" gorm:"column:product_type_id;not null"`

	// Relations
	ProductType *ProductType `json:"product_type,omitempty" gorm:"foreignKey:ProductTypeID;references:ID"`
}

func (Product) TableName() string {
	return "products"
}

// ProductMaterial is one BOM link: how much of a material one product
// consumes, with its waste percentage. At most one row exists per
// (product, material) pair.
type ProductMaterial struct {
	ID               int64   `json:"product_material_id" gorm:"column:product_material_id;primaryKey;autoIncrement"`
	ProductID        int64   `json:"product_id" gorm:"column:product_id;not null;uniqueIndex:idx_product_material"`
	MaterialID       int64   `json:"material_id" gorm:"column:material_id;not null;uniqueIndex:idx_product_material"`
	RequiredQuantity float64 `json:"required_quantity" gorm:"column:required_quantity;not null"`
	LossPercentage   float64 `json:"loss_percentage" gorm:"column:loss_percentage;not null"`

	// Relations
	Product  *Product  `json:"product,omitempty" gorm:"foreignKey:ProductID;references:ID"`
	Material *Material `json:"material,omitempty" gorm:"foreignKey:MaterialID;references:ID"`
}

func (ProductMaterial) TableName() string {
	return "product_materials"
}
