package model

type Dish struct {
	DTO
	Name       string   `gorm:"size:120;not null" json:"name"`
	Price      float64  `gorm:"not null" json:"price"`
	Stock      int      `gorm:"not null;default:0" json:"stock"`
	CategoryID uint     `json:"categoryId"`
	Category   Category `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"category"`
	// ParentID links a variant to the dish whose stock counter it draws from.
	// A dish with a parent keeps its own stock at zero.
	ParentID *uint `gorm:"index" json:"parentId"`
}

// StockOwnerID is the id of the row whose stock counter this dish debits.
func (d *Dish) StockOwnerID() uint {
	if d.ParentID != nil {
		return *d.ParentID
	}
	return d.ID
}

type CreateDishInput struct {
	Name       string  `json:"name" validate:"required,min=2,max=120"`
	Price      float64 `json:"price" validate:"min=0"`
	Stock      int     `json:"stock" validate:"min=0"`
	CategoryID uint    `json:"categoryId" validate:"required"`
	ParentID   *uint   `json:"parentId" validate:"omitempty"`
}

// UpdateDishInput patches only the fields present. ParentID 0 detaches a
// variant from its parent.
type UpdateDishInput struct {
	Name       *string  `json:"name" validate:"omitempty,min=2,max=120"`
	Price      *float64 `json:"price" validate:"omitempty,min=0"`
	Stock      *int     `json:"stock" validate:"omitempty,min=0"`
	CategoryID *uint    `json:"categoryId" validate:"omitempty"`
	ParentID   *uint    `json:"parentId" validate:"omitempty"`
}

type DishFilter struct {
	Pagination
	CategoryID *uint `query:"categoryId"`
}
