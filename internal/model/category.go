package model

import (
	"fmt"
	"strings"
)

// Category labels an expense. Valid values come from a CategorySet.
type Category string

const (
	Bills         Category = "Bills"
	Education     Category = "Education"
	Groceries     Category = "Groceries"
	Miscellaneous Category = "Miscellaneous"
)

// DefaultCategory is assigned when add is called without --category.
const DefaultCategory = Miscellaneous

// CategorySet is the closed set of categories an expense may carry.
type CategorySet struct {
	names []Category
}

// NewCategorySet builds a set, preserving order and dropping duplicates.
func NewCategorySet(names ...Category) CategorySet {
	seen := map[Category]struct{}{}
	out := make([]Category, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok || n == "" {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return CategorySet{names: out}
}

// DefaultCategories returns Bills, Education, Groceries and Miscellaneous.
func DefaultCategories() CategorySet {
	return NewCategorySet(Bills, Education, Groceries, Miscellaneous)
}

func (s CategorySet) Contains(c Category) bool {
	for _, n := range s.names {
		if n == c {
			return true
		}
	}
	return false
}

// Parse matches s exactly against the set.
func (s CategorySet) Parse(str string) (Category, error) {
	c := Category(strings.TrimSpace(str))
	if !s.Contains(c) {
		return "", fmt.Errorf("%w %q: allowed categories are %s", ErrUnknownCategory, str, s)
	}
	return c, nil
}

func (s CategorySet) String() string {
	parts := make([]string, len(s.names))
	for i, n := range s.names {
		parts[i] = string(n)
	}
	return strings.Join(parts, ", ")
}
