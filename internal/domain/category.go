package domain

import "time"

// BuiltinCategory is a compiled-in category. Built-ins exist per direction,
// are never persisted, and keep their declaration order in merged lists.
type BuiltinCategory struct {
	ID    string
	Label string
	Icon  string
}

// CustomCategory is a user-created category persisted in the store.
type CustomCategory struct {
	ID        string    `json:"id"`
	Direction Direction `json:"direction"`
	Label     string    `json:"label"`
	Icon      string    `json:"icon"`
	CreatedAt time.Time `json:"createdAt"`
}

// CategoryDescriptor is the display-ready resolution of a category id.
type CategoryDescriptor struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Icon     string `json:"icon"`
	IsCustom bool   `json:"isCustom"`
}

// Validation constants
const (
	MaxCategoryLabelLength = 40
)

type CategoryRepository interface {
	Create(category *CustomCategory) (*CustomCategory, error)
	GetByID(id string) (*CustomCategory, error)
	GetAll() ([]*CustomCategory, error)
	Delete(id string) error
}
