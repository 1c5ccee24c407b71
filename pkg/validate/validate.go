// Package validate is a retrofit validation overlay for controls that were
// not built through the form builder. Rules attach to any value-bearing
// control, run on every change, and report through a pluggable decorator
// plus one observable aggregate flag.
package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/goliatone/go-formkit/pkg/field"
	"github.com/goliatone/go-formkit/pkg/observe"
)

// Control is the minimal surface a rule needs: a current value and a change
// notification. Any widget can participate by satisfying it.
type Control interface {
	Value() any
	OnChange(fn func()) (unsubscribe func())
}

// Result is one rule outcome.
type Result struct {
	Valid   bool
	Message string
}

// OK is the passing result.
func OK() Result { return Result{Valid: true} }

// Fail is a failing result carrying the message shown to the user.
func Fail(message string) Result { return Result{Message: message} }

// Rule evaluates a control's current value.
type Rule func(value any) Result

// Decorator receives every rule outcome so the host UI can mark the control
// (border color, tooltip, inline message). A nil decorator is silent.
type Decorator interface {
	Apply(control Control, result Result)
}

// DecoratorFunc adapts a function to Decorator.
type DecoratorFunc func(control Control, result Result)

func (fn DecoratorFunc) Apply(control Control, result Result) { fn(control, result) }

type ruleState struct {
	rule   Rule
	result Result
}

// entry groups every rule attached to one control behind a single change
// listener.
type entry struct {
	control Control
	rules   []*ruleState
	cancel  func()
}

// Validator tracks registered controls in registration order and keeps an
// aggregate validity flag current. It is meant for single-goroutine UI use.
type Validator struct {
	entries   []*entry
	decorator Decorator
	valid     *observe.Value[bool]
}

// Option configures a Validator.
type Option func(*Validator)

// WithDecorator installs the outcome decorator.
func WithDecorator(d Decorator) Option {
	return func(v *Validator) {
		if d != nil {
			v.decorator = d
		}
	}
}

// New constructs an empty validator; with nothing registered it is valid.
func New(options ...Option) *Validator {
	v := &Validator{valid: observe.NewValue(true)}
	for _, opt := range options {
		if opt != nil {
			opt(v)
		}
	}
	return v
}

// Register attaches a rule to a control, evaluates it once, and re-evaluates
// on every change. Registering the same control again stacks rules on its
// existing entry; the control keeps a single change listener no matter how
// many rules it carries, and each rule keeps its own outcome.
func (v *Validator) Register(control Control, rule Rule) {
	if control == nil || rule == nil {
		return
	}
	e := v.entryFor(control)
	r := &ruleState{rule: rule}
	e.rules = append(e.rules, r)
	v.evaluate(e.control, r)
	v.recompute()
}

// entryFor returns the control's entry, attaching the change listener the
// first time the control registers.
func (v *Validator) entryFor(control Control) *entry {
	for _, e := range v.entries {
		if e.control == control {
			return e
		}
	}
	e := &entry{control: control}
	e.cancel = control.OnChange(func() {
		for _, r := range e.rules {
			v.evaluate(e.control, r)
		}
		v.recompute()
	})
	v.entries = append(v.entries, e)
	return e
}

// Validate re-runs every rule and reports the aggregate outcome.
func (v *Validator) Validate() bool {
	for _, e := range v.entries {
		for _, r := range e.rules {
			v.evaluate(e.control, r)
		}
	}
	v.recompute()
	return v.valid.Get()
}

// Valid reports the last computed aggregate without re-running rules.
func (v *Validator) Valid() bool { return v.valid.Get() }

// ValidCell exposes the aggregate flag for binding.
func (v *Validator) ValidCell() *observe.Value[bool] { return v.valid }

// Results returns the last outcome of every registered rule, grouped by
// control in first-registration order, rules in registration order.
func (v *Validator) Results() []Result {
	var out []Result
	for _, e := range v.entries {
		for _, r := range e.rules {
			out = append(out, r.result)
		}
	}
	return out
}

// Messages returns the outstanding failure messages in the same order as
// Results.
func (v *Validator) Messages() []string {
	var out []string
	for _, e := range v.entries {
		for _, r := range e.rules {
			if !r.result.Valid && r.result.Message != "" {
				out = append(out, r.result.Message)
			}
		}
	}
	return out
}

// Guard wraps an action so it only runs while every rule passes. The
// returned func re-validates first, so a stale flag cannot let a bad submit
// through.
func (v *Validator) Guard(action func()) func() {
	return func() {
		if v.Validate() {
			action()
		}
	}
}

// Close detaches every change listener. The validator is inert afterwards.
func (v *Validator) Close() {
	for _, e := range v.entries {
		if e.cancel != nil {
			e.cancel()
		}
	}
	v.entries = nil
	v.valid.Set(true)
}

func (v *Validator) evaluate(control Control, r *ruleState) {
	r.result = r.rule(control.Value())
	if v.decorator != nil {
		v.decorator.Apply(control, r.result)
	}
}

func (v *Validator) recompute() {
	for _, e := range v.entries {
		for _, r := range e.rules {
			if !r.result.Valid {
				v.valid.Set(false)
				return
			}
		}
	}
	v.valid.Set(true)
}

// DisallowEmpty fails on nil, blank strings, and empty slices.
func DisallowEmpty(message string) Rule {
	return func(value any) Result {
		switch v := value.(type) {
		case nil:
			return Fail(message)
		case string:
			if strings.TrimSpace(v) == "" {
				return Fail(message)
			}
		case []any:
			if len(v) == 0 {
				return Fail(message)
			}
		}
		return OK()
	}
}

// Regex fails when the string form of the value does not match the pattern.
// Absent (nil) values pass; pair with DisallowEmpty to also require one.
func Regex(expr, message string) (Rule, error) {
	pattern, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("validate: compile %q: %w", expr, err)
	}
	return func(value any) Result {
		if value == nil {
			return OK()
		}
		if !pattern.MatchString(fmt.Sprint(value)) {
			return Fail(message)
		}
		return OK()
	}, nil
}

// MustRegex is Regex for patterns known good at compile time.
func MustRegex(expr, message string) Rule {
	rule, err := Regex(expr, message)
	if err != nil {
		panic(err)
	}
	return rule
}

// Check lifts an arbitrary predicate into a rule.
func Check(message string, predicate func(value any) bool) Rule {
	return func(value any) Result {
		if predicate(value) {
			return OK()
		}
		return Fail(message)
	}
}

// ForField adapts a builder-made field to the Control surface so both
// validation styles can share rules.
func ForField(f field.Field) Control {
	return fieldControl{f}
}

type fieldControl struct {
	f field.Field
}

func (c fieldControl) Value() any {
	value, ok := c.f.Value()
	if !ok {
		return nil
	}
	return value
}

func (c fieldControl) OnChange(fn func()) (unsubscribe func()) {
	return c.f.OnValidated(fn)
}
