package schedule

import (
	"strings"
	"time"
)

// Category represents the kind of shared resource.
type Category string

const (
	CategoryRoom       Category = "room"
	CategoryInstructor Category = "instructor"
	CategoryEquipment  Category = "equipment"
)

// ParseCategory converts a string into a Category.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "room":
		return CategoryRoom, nil
	case "instructor":
		return CategoryInstructor, nil
	case "equipment":
		return CategoryEquipment, nil
	default:
		return "", ErrInvalidCategory
	}
}

// Resource represents a bookable shared asset: a room, an instructor
// or a piece of equipment.
type Resource struct {
	ID        int64
	Name      string
	Category  Category
	CreatedAt time.Time
}

// NewResource creates a Resource with validation.
func NewResource(name, category string) (*Resource, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	cat, err := ParseCategory(category)
	if err != nil {
		return nil, err
	}

	return &Resource{
		Name:      name,
		Category:  cat,
		CreatedAt: time.Now().UTC(),
	}, nil
}
