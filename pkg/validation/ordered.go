package validation

import (
	"cmp"
	"fmt"
)

// Rule is a reusable check on a single value.
type Rule[P any] struct {
	pred    func(P) bool
	message string
}

// NewRule returns a Rule reporting message when pred fails.
func NewRule[P any](pred func(P) bool, message string) Rule[P] {
	return Rule[P]{pred: pred, message: message}
}

func GreaterThan[P cmp.Ordered](bound P) Rule[P] {
	return NewRule(func(v P) bool { return cmp.Compare(v, bound) > 0 },
		fmt.Sprintf("must be greater than %v", bound))
}

func GreaterThanOrEqual[P cmp.Ordered](bound P) Rule[P] {
	return NewRule(func(v P) bool { return cmp.Compare(v, bound) >= 0 },
		fmt.Sprintf("must be greater than or equal to %v", bound))
}

func LessThan[P cmp.Ordered](bound P) Rule[P] {
	return NewRule(func(v P) bool { return cmp.Compare(v, bound) < 0 },
		fmt.Sprintf("must be less than %v", bound))
}

func LessThanOrEqual[P cmp.Ordered](bound P) Rule[P] {
	return NewRule(func(v P) bool { return cmp.Compare(v, bound) <= 0 },
		fmt.Sprintf("must be less than or equal to %v", bound))
}

// Between is inclusive on both ends.
func Between[P cmp.Ordered](lo, hi P) Rule[P] {
	return NewRule(func(v P) bool { return cmp.Compare(v, lo) >= 0 && cmp.Compare(v, hi) <= 0 },
		fmt.Sprintf("must be between %v and %v", lo, hi))
}
