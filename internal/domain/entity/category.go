package entity

import (
	"errors"
	"strings"
)

// Category classifies a todo card.
type Category string

const (
	CategoryExercise Category = "EXERCISE"
	CategoryStudy    Category = "STUDY"
	CategoryWork     Category = "WORK"
	CategoryPromise  Category = "PROMISE"
	CategoryOther    Category = "OTHER"
)

var ErrInvalidCategory = errors.New("invalid category")

// Categories lists every category in declaration order.
var Categories = []Category{CategoryExercise, CategoryStudy, CategoryWork, CategoryPromise, CategoryOther}

func (c Category) Valid() bool {
	switch c {
	case CategoryExercise, CategoryStudy, CategoryWork, CategoryPromise, CategoryOther:
		return true
	}
	return false
}

// ParseCategory accepts any letter case, e.g. "exercise" or "EXERCISE".
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", ErrInvalidCategory
	}
	return c, nil
}
