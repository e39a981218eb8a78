package model

type Category struct {
	DTO
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Slug string `gorm:"size:120;uniqueIndex" json:"slug"`
}

type CreateCategoryInput struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}
