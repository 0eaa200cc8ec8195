// ABOUTME: ExerciseType model describing a named activity.
// ABOUTME: Kinds say which of weight, reps, distance, time are meaningful.
package models

// ExerciseType is a named activity such as "Running".
// Icon and Color are optional overrides of the owning category's badge.
type ExerciseType struct {
	ID    int64   `json:"id" yaml:"id"`
	Name  string  `json:"name" yaml:"name"`
	Kinds Kinds   `json:"type" yaml:"type"`
	Icon  *string `json:"icon,omitempty" yaml:"icon,omitempty"`
	Color *string `json:"color,omitempty" yaml:"color,omitempty"`
}

// NewExerciseType creates an ExerciseType tracking the given kinds.
func NewExerciseType(name string, kinds ...Kind) *ExerciseType {
	return &ExerciseType{
		Name:  name,
		Kinds: NewKinds(kinds...),
	}
}

// WithIcon sets the icon override.
func (e *ExerciseType) WithIcon(icon string) *ExerciseType {
	e.Icon = &icon
	return e
}

// WithColor sets the color override.
func (e *ExerciseType) WithColor(color string) *ExerciseType {
	e.Color = &color
	return e
}

// Badge returns the icon and color to display, falling back to the category.
func (e *ExerciseType) Badge(c *Category) (icon, color string) {
	icon, color = DefaultIcon, DefaultColor
	if c != nil {
		icon, color = c.Icon, c.Color
	}
	if e.Icon != nil && *e.Icon != "" {
		icon = *e.Icon
	}
	if e.Color != nil && *e.Color != "" {
		color = *e.Color
	}
	return icon, color
}
