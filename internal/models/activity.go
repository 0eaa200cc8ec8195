// ABOUTME: Activity pairs a category with an exercise type.
// ABOUTME: Used to badge calendar days with the exercises performed.
package models

// Activity is a (Category, ExerciseType) pair exercised on a day.
// Category is nil when the exercise type belongs to no category.
type Activity struct {
	Category     *Category    `json:"category,omitempty" yaml:"category,omitempty"`
	ExerciseType ExerciseType `json:"exercise_type" yaml:"exercise_type"`
}

// CategoryName returns the category name or an empty string.
func (a Activity) CategoryName() string {
	if a.Category == nil {
		return ""
	}
	return a.Category.Name
}

// Badge returns the icon and color for this activity.
func (a Activity) Badge() (icon, color string) {
	return a.ExerciseType.Badge(a.Category)
}
