// Package field defines the capability contract every form input satisfies
// and the validation state machine backing it. Concrete widgets (text inputs,
// numeric inputs, checkboxes, choice lists, sliders, path choosers) share no
// base type; they satisfy the Field interface and delegate validity and value
// access to a State.
package field
