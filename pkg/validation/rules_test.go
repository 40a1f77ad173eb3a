package validation_test

import (
	"context"
	"errors"
	"testing"

	"github.com/0xsj/overwatch-mediator/pkg/validation"
)

type signup struct {
	Name    string
	Email   string
	Age     int
	Tags    []string
	Nick    *string
	Company string
	Code    string
}

func validate[T any](t *testing.T, v validation.Validator[T], value T) validation.Result {
	t.Helper()
	res, err := v.Validate(context.Background(), value)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	return res
}

func TestRuleBuilder_Strings(t *testing.T) {
	tests := []struct {
		name    string
		build   func(r *validation.Rules[signup])
		value   signup
		wantErr string
	}{
		{
			name:    "NotEmpty fails on empty string",
			build:   func(r *validation.Rules[signup]) { validation.RuleFor(r, "Name", nameOf).NotEmpty() },
			value:   signup{},
			wantErr: "Name must not be empty",
		},
		{
			name:  "NotEmpty passes on value",
			build: func(r *validation.Rules[signup]) { validation.RuleFor(r, "Name", nameOf).NotEmpty() },
			value: signup{Name: "ada"},
		},
		{
			name:    "Required fails on blank string",
			build:   func(r *validation.Rules[signup]) { validation.RuleFor(r, "Name", nameOf).Required() },
			value:   signup{Name: "   "},
			wantErr: "Name is required",
		},
		{
			name:    "Length bounds are inclusive",
			build:   func(r *validation.Rules[signup]) { validation.RuleFor(r, "Name", nameOf).Length(2, 3) },
			value:   signup{Name: "abcd"},
			wantErr: "Name must be between 2 and 3 characters",
		},
		{
			name:  "Length counts runes",
			build: func(r *validation.Rules[signup]) { validation.RuleFor(r, "Name", nameOf).Length(2, 3) },
			value: signup{Name: "äöü"},
		},
		{
			name:    "MinLength",
			build:   func(r *validation.Rules[signup]) { validation.RuleFor(r, "Name", nameOf).MinLength(3) },
			value:   signup{Name: "ab"},
			wantErr: "Name must be at least 3 characters",
		},
		{
			name:    "MaxLength",
			build:   func(r *validation.Rules[signup]) { validation.RuleFor(r, "Name", nameOf).MaxLength(2) },
			value:   signup{Name: "abc"},
			wantErr: "Name must not exceed 2 characters",
		},
		{
			name:    "Email rejects missing at sign",
			build:   func(r *validation.Rules[signup]) { validation.RuleFor(r, "Email", emailOf).Email() },
			value:   signup{Email: "not-an-email"},
			wantErr: "Email must be a valid email address",
		},
		{
			name:  "Email accepts address",
			build: func(r *validation.Rules[signup]) { validation.RuleFor(r, "Email", emailOf).Email() },
			value: signup{Email: "test@example.com"},
		},
		{
			name:    "Matches",
			build:   func(r *validation.Rules[signup]) { validation.RuleFor(r, "Code", codeOf).Matches(`^[A-Z]{3}-\d+$`) },
			value:   signup{Code: "abc-1"},
			wantErr: "Code is not in the correct format",
		},
		{
			name:  "Matches passes",
			build: func(r *validation.Rules[signup]) { validation.RuleFor(r, "Code", codeOf).Matches(`^[A-Z]{3}-\d+$`) },
			value: signup{Code: "ABC-12"},
		},
		{
			name: "WithMessage replaces the last message",
			build: func(r *validation.Rules[signup]) {
				validation.RuleFor(r, "Name", nameOf).NotEmpty().WithMessage("name please")
			},
			value:   signup{},
			wantErr: "name please",
		},
		{
			name:    "Equal",
			build:   func(r *validation.Rules[signup]) { validation.RuleFor(r, "Company", companyOf).Equal("acme") },
			value:   signup{Company: "globex"},
			wantErr: "Company must equal acme",
		},
		{
			name:    "NotEqual",
			build:   func(r *validation.Rules[signup]) { validation.RuleFor(r, "Company", companyOf).NotEqual("globex") },
			value:   signup{Company: "globex"},
			wantErr: "Company must not equal globex",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rules validation.Rules[signup]
			tt.build(&rules)

			res := validate[signup](t, &rules, tt.value)
			if tt.wantErr == "" {
				if !res.Valid() {
					t.Errorf("expected valid, got %s", res)
				}
				return
			}
			if res.Valid() {
				t.Fatal("expected validation error")
			}
			if res.Errors[0].Message != tt.wantErr {
				t.Errorf("message = %q, want %q", res.Errors[0].Message, tt.wantErr)
			}
		})
	}
}

func TestRuleBuilder_Ordered(t *testing.T) {
	tests := []struct {
		name  string
		rule  validation.Rule[int]
		age   int
		valid bool
	}{
		{"GreaterThan below", validation.GreaterThan(18), 18, false},
		{"GreaterThan above", validation.GreaterThan(18), 19, true},
		{"GreaterThanOrEqual edge", validation.GreaterThanOrEqual(18), 18, true},
		{"LessThan edge", validation.LessThan(65), 65, false},
		{"LessThanOrEqual edge", validation.LessThanOrEqual(65), 65, true},
		{"Between low edge", validation.Between(18, 65), 18, true},
		{"Between high edge", validation.Between(18, 65), 65, true},
		{"Between outside", validation.Between(18, 65), 66, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rules validation.Rules[signup]
			validation.RuleFor(&rules, "Age", func(s signup) int { return s.Age }).Check(tt.rule)

			res := validate[signup](t, &rules, signup{Age: tt.age})
			if res.Valid() != tt.valid {
				t.Errorf("Valid() = %v, want %v (%s)", res.Valid(), tt.valid, res)
			}
		})
	}

	t.Run("message names the field", func(t *testing.T) {
		var rules validation.Rules[signup]
		validation.RuleFor(&rules, "Age", func(s signup) int { return s.Age }).Check(validation.Between(18, 65))

		res := validate[signup](t, &rules, signup{Age: 3})
		if got := res.Errors[0].Message; got != "Age must be between 18 and 65" {
			t.Errorf("message = %q", got)
		}
	})
}

func TestRuleBuilder_Collections(t *testing.T) {
	var rules validation.Rules[signup]
	validation.RuleFor(&rules, "Tags", func(s signup) []string { return s.Tags }).NotEmpty()
	validation.RuleFor(&rules, "Nick", func(s signup) *string { return s.Nick }).NotNil()
	validation.RuleFor(&rules, "Age", func(s signup) int { return s.Age }).NotZero()

	t.Run("reports every property", func(t *testing.T) {
		res := validate[signup](t, &rules, signup{})
		if len(res.Errors) != 3 {
			t.Fatalf("got %d errors, want 3: %s", len(res.Errors), res)
		}
		if len(res.Field("Nick")) != 1 {
			t.Errorf("Field(Nick) = %v", res.Field("Nick"))
		}
	})

	t.Run("passes when populated", func(t *testing.T) {
		nick := "a"
		res := validate[signup](t, &rules, signup{Tags: []string{"x"}, Nick: &nick, Age: 1})
		if !res.Valid() {
			t.Errorf("expected valid, got %s", res)
		}
	})
}

func TestRuleBuilder_FirstFailurePerProperty(t *testing.T) {
	var rules validation.Rules[signup]
	validation.RuleFor(&rules, "Name", nameOf).NotEmpty().MinLength(3)

	res := validate[signup](t, &rules, signup{})
	if len(res.Errors) != 1 {
		t.Fatalf("got %d errors, want 1", len(res.Errors))
	}
	if res.Errors[0].Message != "Name must not be empty" {
		t.Errorf("message = %q", res.Errors[0].Message)
	}
}

func TestRuleBuilder_Conditions(t *testing.T) {
	isMinor := func(s signup) bool { return s.Age < 18 }

	t.Run("When", func(t *testing.T) {
		var rules validation.Rules[signup]
		validation.RuleFor(&rules, "Company", companyOf).NotEmpty().When(isMinor)

		if res := validate[signup](t, &rules, signup{Age: 30}); !res.Valid() {
			t.Errorf("rule should be skipped, got %s", res)
		}
		if res := validate[signup](t, &rules, signup{Age: 10}); res.Valid() {
			t.Error("rule should apply")
		}
	})

	t.Run("Unless", func(t *testing.T) {
		var rules validation.Rules[signup]
		validation.RuleFor(&rules, "Company", companyOf).NotEmpty().Unless(isMinor)

		if res := validate[signup](t, &rules, signup{Age: 10}); !res.Valid() {
			t.Errorf("rule should be skipped, got %s", res)
		}
		if res := validate[signup](t, &rules, signup{Age: 30}); res.Valid() {
			t.Error("rule should apply")
		}
	})
}

func TestRuleBuilder_Must(t *testing.T) {
	var rules validation.Rules[signup]
	validation.RuleFor(&rules, "Name", nameOf).Must(func(s string) bool { return s != "root" })

	res := validate[signup](t, &rules, signup{Name: "root"})
	if res.Valid() || res.Errors[0].Message != "Name is invalid" {
		t.Errorf("unexpected result %s", res)
	}
}

func TestRuleBuilder_MustContext(t *testing.T) {
	lookupFailed := errors.New("lookup failed")

	t.Run("reports failed check", func(t *testing.T) {
		var rules validation.Rules[signup]
		validation.RuleFor(&rules, "Email", emailOf).MustContext(func(ctx context.Context, s string) (bool, error) {
			return s != "taken@example.com", nil
		}).WithMessage("Email is already registered")

		res := validate[signup](t, &rules, signup{Email: "taken@example.com"})
		if res.Valid() || res.Errors[0].Message != "Email is already registered" {
			t.Errorf("unexpected result %s", res)
		}
	})

	t.Run("returns check errors", func(t *testing.T) {
		var rules validation.Rules[signup]
		validation.RuleFor(&rules, "Email", emailOf).MustContext(func(ctx context.Context, s string) (bool, error) {
			return false, lookupFailed
		})

		_, err := rules.Validate(context.Background(), signup{})
		if err != lookupFailed {
			t.Errorf("Validate() error = %v, want %v", err, lookupFailed)
		}
	})
}

func nameOf(s signup) string    { return s.Name }
func emailOf(s signup) string   { return s.Email }
func codeOf(s signup) string    { return s.Code }
func companyOf(s signup) string { return s.Company }
