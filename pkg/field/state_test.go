package field

import (
	"testing"
)

func TestRequiredProbedAtConstruction(t *testing.T) {
	tests := []struct {
		name     string
		validate Validator[string]
		want     bool
	}{
		{name: "nil validator", validate: nil, want: false},
		{name: "rejects absent", validate: NotEmpty("required"), want: true},
		{name: "accepts absent", validate: MinLength(3), want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			state := NewState(tc.validate, nil)
			if got := state.Required(); got != tc.want {
				t.Fatalf("Required() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestClearVersusInvalidate(t *testing.T) {
	state := NewState[int64](nil, nil)

	state.Set(5)
	if _, ok := state.Value(); !ok {
		t.Fatal("expected value present after Set")
	}

	state.Clear()
	if _, ok := state.Value(); ok {
		t.Fatal("expected value absent after Clear")
	}
	if !state.Empty() {
		t.Fatal("expected Empty after Clear")
	}
	if !state.Valid() {
		t.Fatal("unvalidated cleared state should be valid")
	}

	state.Invalidate("bad input")
	if _, ok := state.Value(); ok {
		t.Fatal("expected value absent after Invalidate")
	}
	if state.Empty() {
		t.Fatal("a conversion failure is not an empty input")
	}
	if state.Valid() {
		t.Fatal("expected invalid after Invalidate")
	}
	if got := state.Error(); got != "bad input" {
		t.Fatalf("Error() = %q, want %q", got, "bad input")
	}
}

func TestSetValidatorKeepsRequiredFlag(t *testing.T) {
	state := NewState[string](nil, nil)
	if state.Required() {
		t.Fatal("expected optional at construction")
	}

	state.SetValidator(NotEmpty("required"))
	if state.Required() {
		t.Fatal("SetValidator must not re-probe the required flag")
	}
	if state.Valid() {
		t.Fatal("swapping the validator re-validates the current value")
	}

	state.ReprobeRequired()
	if !state.Required() {
		t.Fatal("ReprobeRequired should pick up the new validator")
	}
}

func TestOverrideErrorRestoresExactly(t *testing.T) {
	state := NewState(NotEmpty("name required"), nil)
	state.Set("ada")
	if !state.Valid() {
		t.Fatalf("expected valid, got error %q", state.Error())
	}

	restore := state.OverrideError("names do not match")
	if state.Valid() {
		t.Fatal("expected invalid during override")
	}
	if got := state.Error(); got != "names do not match" {
		t.Fatalf("Error() = %q during override", got)
	}

	restore()
	if !state.Valid() {
		t.Fatal("expected validity restored")
	}
	if got := state.Error(); got != "" {
		t.Fatalf("Error() = %q after restore, want empty", got)
	}
}

func TestOverrideErrorRestoresInvalidOriginal(t *testing.T) {
	state := NewState(MinLength(5), nil)
	state.Set("abc")
	if state.Valid() {
		t.Fatal("expected invalid value")
	}
	original := state.Error()

	restore := state.OverrideError("different message")
	restore()

	if got := state.Error(); got != original {
		t.Fatalf("Error() = %q after restore, want original %q", got, original)
	}
}

func TestPanickingValidatorMapsToInvalidValue(t *testing.T) {
	validate := func(value string, present bool) error {
		if present {
			panic("boom")
		}
		return nil
	}
	state := NewState(validate, nil)

	state.Set("anything")
	if state.Valid() {
		t.Fatal("expected invalid after validator panic")
	}
	if got := state.Error(); got != ErrInvalidValue.Error() {
		t.Fatalf("Error() = %q, want %q", got, ErrInvalidValue.Error())
	}
}

func TestResetRestoresDefault(t *testing.T) {
	state := NewState(nil, func() (string, bool) { return "fallback", true })

	value, ok := state.Value()
	if !ok || value != "fallback" {
		t.Fatalf("expected seeded default, got (%q, %v)", value, ok)
	}

	state.Set("edited")
	state.Reset()
	value, ok = state.Value()
	if !ok || value != "fallback" {
		t.Fatalf("expected default after Reset, got (%q, %v)", value, ok)
	}
}

func TestResetWithoutDefaultClears(t *testing.T) {
	state := NewState[string](nil, nil)
	state.Set("edited")
	state.Reset()
	if _, ok := state.Value(); ok {
		t.Fatal("expected absent after Reset without a default")
	}
	if !state.Empty() {
		t.Fatal("expected empty after Reset without a default")
	}
}

func TestOnValidatedFiresOnEveryPass(t *testing.T) {
	state := NewState[string](nil, nil)
	calls := 0
	cancel := state.OnValidated(func() { calls++ })

	state.Set("a")
	state.Clear()
	state.Invalidate("x")
	if calls != 3 {
		t.Fatalf("expected 3 notifications, got %d", calls)
	}

	cancel()
	state.Set("b")
	if calls != 3 {
		t.Fatalf("expected no notification after unsubscribe, got %d", calls)
	}
}

func TestAllChainsValidators(t *testing.T) {
	validate := All(NotEmpty("required"), MinLength(3))

	if err := validate("", false); err == nil || err.Error() != "required" {
		t.Fatalf("expected required error, got %v", err)
	}
	if err := validate("ab", true); err == nil {
		t.Fatal("expected min length failure")
	}
	if err := validate("abcd", true); err != nil {
		t.Fatalf("expected pass, got %v", err)
	}
}

func TestPatternValidator(t *testing.T) {
	validate, err := Pattern(`^[a-z]+$`, "lowercase only")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if err := validate("abc", true); err != nil {
		t.Fatalf("expected match, got %v", err)
	}
	if err := validate("Abc", true); err == nil || err.Error() != "lowercase only" {
		t.Fatalf("expected message, got %v", err)
	}
	if err := validate("", false); err != nil {
		t.Fatalf("absent values pass, got %v", err)
	}

	if _, err := Pattern(`([`, ""); err == nil {
		t.Fatal("expected compile error")
	}
}

func TestMinMaxBounds(t *testing.T) {
	min := Min(int64(10), false)
	if err := min(9, true); err == nil {
		t.Fatal("expected failure below bound")
	}
	if err := min(10, true); err != nil {
		t.Fatalf("inclusive bound should pass, got %v", err)
	}

	exclusive := Max(2.5, true)
	if err := exclusive(2.5, true); err == nil {
		t.Fatal("exclusive bound should reject equality")
	}
	if err := exclusive(2.4, true); err != nil {
		t.Fatalf("expected pass, got %v", err)
	}
}

func TestPresentValidator(t *testing.T) {
	validate := Present[float64]("pick one")
	if err := validate(0, false); err == nil || err.Error() != "pick one" {
		t.Fatalf("expected message, got %v", err)
	}
	if err := validate(0, true); err != nil {
		t.Fatalf("present zero should pass, got %v", err)
	}
}
