package openapi

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/field"
	"github.com/goliatone/go-formkit/pkg/form"
)

const userSpec = `
openapi: 3.0.3
info:
  title: Users API
  version: 1.0.0
paths:
  /users:
    post:
      operationId: createUser
      requestBody:
        required: true
        content:
          application/json:
            schema:
              type: object
              required: [username, password]
              properties:
                username:
                  type: string
                  minLength: 3
                  pattern: '^[a-z0-9_]+$'
                password:
                  type: string
                  format: password
                displayName:
                  type: string
                  title: Display Name
                  description: Shown on the profile page
                age:
                  type: integer
                  minimum: 13
                  maximum: 120
                score:
                  type: number
                  minimum: 0
                newsletter:
                  type: boolean
                  default: true
                plan:
                  type: string
                  enum: [free, pro, team]
                  default: free
                topics:
                  type: array
                  items:
                    type: string
                    enum: [go, rust, zig]
      responses:
        '201':
          description: created
  /ping:
    get:
      operationId: ping
      responses:
        '204':
          description: pong
`

func loadUserDoc(t *testing.T) *form.Layout {
	t.Helper()
	doc, err := LoadFromData(context.Background(), []byte(userSpec))
	if err != nil {
		t.Fatalf("LoadFromData: %v", err)
	}
	layout, err := BuildForm(doc, "createUser")
	if err != nil {
		t.Fatalf("BuildForm: %v", err)
	}
	return layout
}

func TestBuildFormMapsSchemaTypesToFieldKinds(t *testing.T) {
	layout := loadUserDoc(t)

	want := map[string]field.Kind{
		"username":    field.KindString,
		"password":    field.KindPassword,
		"displayName": field.KindString,
		"age":         field.KindInteger,
		"score":       field.KindDecimal,
		"newsletter":  field.KindBoolean,
		"plan":        field.KindChoice,
		"topics":      field.KindMultiChoice,
	}
	got := make(map[string]field.Kind)
	for _, d := range layout.Descriptors() {
		if d.IsField() {
			got[d.ID] = d.Type
		}
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildFormRequiredAndOptional(t *testing.T) {
	layout := loadUserDoc(t)

	username, _ := layout.Field("username")
	if !username.Required() {
		t.Fatal("username is in the schema's required list")
	}
	age, _ := layout.Field("age")
	if age.Required() {
		t.Fatal("age is optional")
	}
}

func TestBuildFormAppliesConstraints(t *testing.T) {
	layout := loadUserDoc(t)

	username, _ := layout.Field("username")
	if err := username.SetValue("ab"); err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	if username.Valid() {
		t.Fatal("minLength 3 must reject a 2-char name")
	}
	if err := username.SetValue("Not Valid"); err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	if username.Valid() {
		t.Fatal("pattern must reject uppercase and spaces")
	}
	if err := username.SetValue("ada_99"); err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	if !username.Valid() {
		t.Fatalf("expected valid, got %q", username.Error())
	}

	age, _ := layout.Field("age")
	if err := age.SetValue(12); err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	if age.Valid() {
		t.Fatal("minimum 13 must reject 12")
	}
	if err := age.SetValue(30); err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	if !age.Valid() {
		t.Fatalf("expected valid, got %q", age.Error())
	}
}

func TestBuildFormSeedsDefaults(t *testing.T) {
	layout := loadUserDoc(t)

	newsletter, _ := layout.Field("newsletter")
	value, ok := newsletter.Value()
	if !ok || value != true {
		t.Fatalf("newsletter default = (%v, %v)", value, ok)
	}

	plan, _ := layout.Field("plan")
	value, ok = plan.Value()
	if !ok || value != "free" {
		t.Fatalf("plan default = (%v, %v)", value, ok)
	}
}

func TestBuildFormLabels(t *testing.T) {
	layout := loadUserDoc(t)

	labels := make(map[string]string)
	for _, d := range layout.Descriptors() {
		if d.IsField() {
			labels[d.ID] = d.Label
		}
	}
	if labels["displayName"] != "Display Name" {
		t.Fatalf("title should win, got %q", labels["displayName"])
	}
	if labels["username"] != "Username" {
		t.Fatalf("labeler output = %q", labels["username"])
	}
}

func TestBuildFormPlaceholderFromDescription(t *testing.T) {
	layout := loadUserDoc(t)

	f, _ := layout.Field("displayName")
	w, ok := f.Widget().(field.TextWidget)
	if !ok {
		t.Fatal("expected text widget")
	}
	if w.Placeholder() != "Shown on the profile page" {
		t.Fatalf("placeholder = %q", w.Placeholder())
	}
}

func TestBuildFormUnknownOperation(t *testing.T) {
	doc, err := LoadFromData(context.Background(), []byte(userSpec))
	if err != nil {
		t.Fatalf("LoadFromData: %v", err)
	}
	if _, err := BuildForm(doc, "deleteUser"); err == nil || !strings.Contains(err.Error(), `"deleteUser"`) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestBuildFormOperationWithoutBody(t *testing.T) {
	doc, err := LoadFromData(context.Background(), []byte(userSpec))
	if err != nil {
		t.Fatalf("LoadFromData: %v", err)
	}
	if _, err := BuildForm(doc, "ping"); err == nil || !strings.Contains(err.Error(), "request body") {
		t.Fatalf("expected no-body error, got %v", err)
	}
}

func TestBuildFormRejectsNonEnumArrays(t *testing.T) {
	spec := `
openapi: 3.0.3
info: {title: T, version: "1"}
paths:
  /things:
    post:
      operationId: createThing
      requestBody:
        content:
          application/json:
            schema:
              type: object
              properties:
                tags:
                  type: array
                  items:
                    type: string
      responses:
        '201': {description: created}
`
	doc, err := LoadFromData(context.Background(), []byte(spec))
	if err != nil {
		t.Fatalf("LoadFromData: %v", err)
	}
	if _, err := BuildForm(doc, "createThing"); err == nil || !strings.Contains(err.Error(), "enum items") {
		t.Fatalf("expected enum-items error, got %v", err)
	}
}

func TestBuildFormFractionalIntegerBounds(t *testing.T) {
	spec := `
openapi: 3.0.3
info: {title: T, version: "1"}
paths:
  /ratings:
    post:
      operationId: createRating
      requestBody:
        content:
          application/json:
            schema:
              type: object
              properties:
                stars:
                  type: integer
                  minimum: 0.5
                  maximum: 5
                  exclusiveMaximum: true
      responses:
        '201': {description: created}
`
	doc, err := LoadFromData(context.Background(), []byte(spec))
	if err != nil {
		t.Fatalf("LoadFromData: %v", err)
	}
	layout, err := BuildForm(doc, "createRating")
	if err != nil {
		t.Fatalf("BuildForm: %v", err)
	}

	stars, _ := layout.Field("stars")
	// the fractional minimum rounds up: integers above 0.5 start at 1
	_ = stars.SetValue(int64(0))
	if stars.Valid() {
		t.Fatal("0 must not satisfy minimum 0.5")
	}
	_ = stars.SetValue(int64(1))
	if !stars.Valid() {
		t.Fatalf("1 should satisfy minimum 0.5, got %q", stars.Error())
	}
	_ = stars.SetValue(int64(5))
	if stars.Valid() {
		t.Fatal("5 must not satisfy exclusive maximum 5")
	}
	_ = stars.SetValue(int64(4))
	if !stars.Valid() {
		t.Fatalf("4 should pass, got %q", stars.Error())
	}
}

func TestFormBuilderAllowsCrossValidation(t *testing.T) {
	doc, err := LoadFromData(context.Background(), []byte(userSpec))
	if err != nil {
		t.Fatalf("LoadFromData: %v", err)
	}
	builder, err := FormBuilder(doc, "createUser")
	if err != nil {
		t.Fatalf("FormBuilder: %v", err)
	}
	layout, err := builder.
		CrossValidate(func(values map[string]any) map[string]string {
			if values["username"] == values["password"] {
				return map[string]string{"password": "password must differ from username"}
			}
			return nil
		}).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	username, _ := layout.Field("username")
	password, _ := layout.Field("password")
	_ = username.SetValue("ada_99")
	_ = password.SetValue("ada_99")
	if layout.Valid() {
		t.Fatal("expected cross-validation failure")
	}
	if got := layout.CrossErrors()["password"]; got != "password must differ from username" {
		t.Fatalf("cross error = %q", got)
	}
}

func TestBuildFormLayoutOptions(t *testing.T) {
	doc, err := LoadFromData(context.Background(), []byte(userSpec))
	if err != nil {
		t.Fatalf("LoadFromData: %v", err)
	}
	layout, err := BuildForm(doc, "createUser",
		WithColumns(2),
		WithLabelPlacement(form.PlacementAbove),
	)
	if err != nil {
		t.Fatalf("BuildForm: %v", err)
	}
	if layout.Grid().Columns != 4 {
		t.Fatalf("Columns = %d, want 4", layout.Grid().Columns)
	}
	if layout.Placement() != form.PlacementAbove {
		t.Fatalf("Placement = %s", layout.Placement())
	}
}

func TestLoadFromDataRejectsInvalidDocuments(t *testing.T) {
	if _, err := LoadFromData(context.Background(), []byte("openapi: 3.0.3")); err == nil {
		t.Fatal("expected validation failure")
	}
}
