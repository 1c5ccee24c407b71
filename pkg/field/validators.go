package field

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// NotEmpty rejects absent values and blank strings. Attaching it makes a
// string field required.
func NotEmpty(message string) Validator[string] {
	if message == "" {
		message = "required"
	}
	return func(value string, present bool) error {
		if !present || strings.TrimSpace(value) == "" {
			return errors.New(message)
		}
		return nil
	}
}

// Present rejects absent values of any type, making the field required
// without constraining present values.
func Present[T any](message string) Validator[T] {
	if message == "" {
		message = "required"
	}
	return func(_ T, present bool) error {
		if !present {
			return errors.New(message)
		}
		return nil
	}
}

// MinLength bounds a present string's length from below.
func MinLength(min int) Validator[string] {
	return func(value string, present bool) error {
		if present && len(value) < min {
			return fmt.Errorf("min length %d", min)
		}
		return nil
	}
}

// MaxLength bounds a present string's length from above.
func MaxLength(max int) Validator[string] {
	return func(value string, present bool) error {
		if present && len(value) > max {
			return fmt.Errorf("max length %d", max)
		}
		return nil
	}
}

// Pattern requires a present string to match the compiled expression.
func Pattern(expr, message string) (Validator[string], error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("field: compile pattern %q: %w", expr, err)
	}
	if message == "" {
		message = "does not match required pattern"
	}
	return func(value string, present bool) error {
		if present && !re.MatchString(value) {
			return errors.New(message)
		}
		return nil
	}, nil
}

// Number groups the numeric types validators can bound.
type Number interface {
	~int | ~int64 | ~float64
}

// Min bounds a present numeric value from below; exclusive rejects equality.
func Min[T Number](min T, exclusive bool) Validator[T] {
	return func(value T, present bool) error {
		if !present {
			return nil
		}
		if value < min || (exclusive && value == min) {
			return fmt.Errorf("min %v", min)
		}
		return nil
	}
}

// Max bounds a present numeric value from above; exclusive rejects equality.
func Max[T Number](max T, exclusive bool) Validator[T] {
	return func(value T, present bool) error {
		if !present {
			return nil
		}
		if value > max || (exclusive && value == max) {
			return fmt.Errorf("max %v", max)
		}
		return nil
	}
}

// All chains validators, reporting the first failure. nil entries are
// skipped; an all-nil chain validates everything.
func All[T any](validators ...Validator[T]) Validator[T] {
	return func(value T, present bool) error {
		for _, validate := range validators {
			if validate == nil {
				continue
			}
			if err := validate(value, present); err != nil {
				return err
			}
		}
		return nil
	}
}
