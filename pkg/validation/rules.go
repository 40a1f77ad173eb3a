package validation

import (
	"context"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/0xsj/overwatch-pkg/types"
)

// Validator validates values of type T.
type Validator[T any] interface {
	Validate(ctx context.Context, v T) (Result, error)
}

// ValidatorFunc adapts a function to Validator.
type ValidatorFunc[T any] func(ctx context.Context, v T) (Result, error)

func (f ValidatorFunc[T]) Validate(ctx context.Context, v T) (Result, error) {
	return f(ctx, v)
}

// Rules is a Validator assembled from property rules, see RuleFor.
// Every property is evaluated; within a property the first failing
// check is reported.
type Rules[T any] struct {
	props []propertyRule[T]
}

type propertyRule[T any] interface {
	validate(ctx context.Context, v T) (*FieldError, error)
}

// Validate implements Validator.
func (s *Rules[T]) Validate(ctx context.Context, v T) (Result, error) {
	var errs []FieldError
	for _, p := range s.props {
		fe, err := p.validate(ctx, v)
		if err != nil {
			return Result{}, err
		}
		if fe != nil {
			errs = append(errs, *fe)
		}
	}
	return Result{Errors: errs}, nil
}

// RuleFor starts a rule for the property of T that get extracts.
func RuleFor[T, P any](rules *Rules[T], field string, get func(T) P) *RuleBuilder[T, P] {
	b := &RuleBuilder[T, P]{field: field, get: get}
	rules.props = append(rules.props, b)
	return b
}

type check[P any] struct {
	pred    func(ctx context.Context, v P) (bool, error)
	message string
}

// RuleBuilder chains checks on one property.
type RuleBuilder[T, P any] struct {
	field  string
	get    func(T) P
	cond   func(T) bool
	checks []check[P]
}

func (b *RuleBuilder[T, P]) validate(ctx context.Context, v T) (*FieldError, error) {
	if b.cond != nil && !b.cond(v) {
		return nil, nil
	}

	value := b.get(v)
	for _, c := range b.checks {
		ok, err := c.pred(ctx, value)
		if err != nil {
			return nil, err
		}
		if !ok {
			return &FieldError{Field: b.field, Message: c.message}, nil
		}
	}
	return nil, nil
}

func (b *RuleBuilder[T, P]) add(pred func(P) bool, format string, args ...any) *RuleBuilder[T, P] {
	return b.addContext(func(_ context.Context, v P) (bool, error) {
		return pred(v), nil
	}, format, args...)
}

func (b *RuleBuilder[T, P]) addContext(pred func(context.Context, P) (bool, error), format string, args ...any) *RuleBuilder[T, P] {
	b.checks = append(b.checks, check[P]{
		pred:    pred,
		message: b.field + " " + fmt.Sprintf(format, args...),
	})
	return b
}

// WithMessage replaces the message of the previous check.
func (b *RuleBuilder[T, P]) WithMessage(message string) *RuleBuilder[T, P] {
	if n := len(b.checks); n > 0 {
		b.checks[n-1].message = message
	}
	return b
}

// When applies the rule only when cond holds.
func (b *RuleBuilder[T, P]) When(cond func(T) bool) *RuleBuilder[T, P] {
	b.cond = cond
	return b
}

// Unless applies the rule only when cond does not hold.
func (b *RuleBuilder[T, P]) Unless(cond func(T) bool) *RuleBuilder[T, P] {
	b.cond = func(v T) bool { return !cond(v) }
	return b
}

func (b *RuleBuilder[T, P]) NotNil() *RuleBuilder[T, P] {
	return b.add(func(v P) bool { return !isNil(v) }, "must not be nil")
}

func (b *RuleBuilder[T, P]) NotZero() *RuleBuilder[T, P] {
	return b.add(func(v P) bool {
		rv := reflect.ValueOf(any(v))
		return rv.IsValid() && !rv.IsZero()
	}, "must not be zero")
}

// NotEmpty fails for nil, empty strings and empty collections.
func (b *RuleBuilder[T, P]) NotEmpty() *RuleBuilder[T, P] {
	return b.add(func(v P) bool {
		if isNil(v) {
			return false
		}
		rv := reflect.ValueOf(any(v))
		switch rv.Kind() {
		case reflect.String, reflect.Slice, reflect.Map, reflect.Array, reflect.Chan:
			return rv.Len() > 0
		default:
			return true
		}
	}, "must not be empty")
}

// Required fails for nil and blank strings.
func (b *RuleBuilder[T, P]) Required() *RuleBuilder[T, P] {
	return b.add(func(v P) bool {
		if isNil(v) {
			return false
		}
		if s, ok := any(v).(string); ok {
			return strings.TrimSpace(s) != ""
		}
		return true
	}, "is required")
}

func (b *RuleBuilder[T, P]) Length(lo, hi int) *RuleBuilder[T, P] {
	return b.add(func(v P) bool {
		s, ok := any(v).(string)
		if !ok {
			return false
		}
		n := utf8.RuneCountInString(s)
		return n >= lo && n <= hi
	}, "must be between %d and %d characters", lo, hi)
}

func (b *RuleBuilder[T, P]) MinLength(n int) *RuleBuilder[T, P] {
	return b.add(func(v P) bool {
		s, ok := any(v).(string)
		return ok && utf8.RuneCountInString(s) >= n
	}, "must be at least %d characters", n)
}

// MaxLength passes for values that are not strings.
func (b *RuleBuilder[T, P]) MaxLength(n int) *RuleBuilder[T, P] {
	return b.add(func(v P) bool {
		s, ok := any(v).(string)
		return !ok || utf8.RuneCountInString(s) <= n
	}, "must not exceed %d characters", n)
}

func (b *RuleBuilder[T, P]) Email() *RuleBuilder[T, P] {
	return b.add(func(v P) bool {
		s, ok := any(v).(string)
		if !ok {
			return false
		}
		_, err := types.NewEmail(s)
		return err == nil
	}, "must be a valid email address")
}

// Matches panics if pattern does not compile.
func (b *RuleBuilder[T, P]) Matches(pattern string) *RuleBuilder[T, P] {
	re := regexp.MustCompile(pattern)
	return b.add(func(v P) bool {
		s, ok := any(v).(string)
		return ok && re.MatchString(s)
	}, "is not in the correct format")
}

func (b *RuleBuilder[T, P]) Equal(want P) *RuleBuilder[T, P] {
	return b.add(func(v P) bool { return reflect.DeepEqual(v, want) }, "must equal %v", want)
}

func (b *RuleBuilder[T, P]) NotEqual(other P) *RuleBuilder[T, P] {
	return b.add(func(v P) bool { return !reflect.DeepEqual(v, other) }, "must not equal %v", other)
}

func (b *RuleBuilder[T, P]) Must(pred func(P) bool) *RuleBuilder[T, P] {
	return b.add(pred, "is invalid")
}

// MustContext runs a check that may block, for example a lookup.
func (b *RuleBuilder[T, P]) MustContext(pred func(context.Context, P) (bool, error)) *RuleBuilder[T, P] {
	return b.addContext(pred, "is invalid")
}

// Check adds a prepared rule such as GreaterThan or Between.
func (b *RuleBuilder[T, P]) Check(rule Rule[P]) *RuleBuilder[T, P] {
	return b.add(rule.pred, "%s", rule.message)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
