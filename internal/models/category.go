// ABOUTME: Category model for grouping exercise types.
// ABOUTME: Categories carry the icon and color used to badge calendar days.
package models

// Default display attributes for categories created without them.
const (
	DefaultIcon  = "figure.walk"
	DefaultColor = "#007AFF"
)

// Category is a user-defined grouping of exercise types, e.g. "Cardio".
type Category struct {
	ID    int64  `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Icon  string `json:"icon" yaml:"icon"`
	Color string `json:"color" yaml:"color"`
}

// NewCategory creates a Category with default icon and color.
func NewCategory(name string) *Category {
	return &Category{
		Name:  name,
		Icon:  DefaultIcon,
		Color: DefaultColor,
	}
}

// WithIcon sets the icon name.
func (c *Category) WithIcon(icon string) *Category {
	c.Icon = icon
	return c
}

// WithColor sets the hex color.
func (c *Category) WithColor(color string) *Category {
	c.Color = color
	return c
}
