package taxform

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema.json
var schemaJSON string

const schemaURL = "https://taxsheet.local/schema/taxform.json"

var pathDefs = map[Path]string{
	PathPersonalInfo:      "personalInfo",
	PathBankInterest:      "bankInterestList",
	PathDividends:         "dividendList",
	PathRentalProperty:    "rentalPropertyList",
	PathMotorVehicle:      "motorVehicle",
	PathWorkRelatedTravel: "workRelatedTravel",
}

var (
	compileOnce sync.Once
	compiled    map[Path]*jsonschema.Schema
	rootSchema  *jsonschema.Schema
	compileErr  error
)

func compileSchemas() {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	if err := c.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
		compileErr = fmt.Errorf("add schema resource: %w", err)
		return
	}
	root, err := c.Compile(schemaURL)
	if err != nil {
		compileErr = fmt.Errorf("compile schema: %w", err)
		return
	}
	out := make(map[Path]*jsonschema.Schema, len(pathDefs))
	for p, def := range pathDefs {
		s, err := c.Compile(schemaURL + "#/$defs/" + def)
		if err != nil {
			compileErr = fmt.Errorf("compile %s schema: %w", def, err)
			return
		}
		out[p] = s
	}
	rootSchema = root
	compiled = out
}

// FieldError is a problem with one value. Field is a dotted location relative
// to the validated value, e.g. "0.bsb" for the first entry of a list.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every field problem found in one value.
type ValidationError struct {
	Path   Path
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		if f.Field == "" {
			parts = append(parts, f.Message)
			continue
		}
		parts = append(parts, f.Field+": "+f.Message)
	}
	where := string(e.Path)
	if where == "" {
		where = "form"
	}
	return fmt.Sprintf("invalid %s: %s", where, strings.Join(parts, "; "))
}

// For returns the first message recorded for field.
func (e *ValidationError) For(field string) (string, bool) {
	if e == nil {
		return "", false
	}
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message, true
		}
	}
	return "", false
}

// Validate checks a value destined for path. value may be the typed slot
// value, a Record, or a slice of Records.
func Validate(path Path, value any) error {
	compileOnce.Do(compileSchemas)
	if compileErr != nil {
		return compileErr
	}
	schema, ok := compiled[path]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPath, path)
	}
	return validateWith(schema, path, value)
}

// ValidateState checks a whole form state.
func ValidateState(s FormState) error {
	compileOnce.Do(compileSchemas)
	if compileErr != nil {
		return compileErr
	}
	return validateWith(rootSchema, "", s)
}

func validateWith(schema *jsonschema.Schema, path Path, value any) error {
	var doc any
	if err := Decode(value, &doc); err != nil {
		return err
	}
	err := schema.Validate(doc)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	out := &ValidationError{Path: path}
	collectLeaves(ve, out)
	sort.SliceStable(out.Fields, func(i, j int) bool { return out.Fields[i].Field < out.Fields[j].Field })
	return out
}

func collectLeaves(ve *jsonschema.ValidationError, out *ValidationError) {
	if len(ve.Causes) == 0 {
		out.Fields = append(out.Fields, FieldError{
			Field:   pointerToField(ve.InstanceLocation),
			Message: friendlyMessage(ve),
		})
		return
	}
	for _, cause := range ve.Causes {
		collectLeaves(cause, out)
	}
}

func pointerToField(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "/")
	return strings.ReplaceAll(ptr, "/", ".")
}

func friendlyMessage(ve *jsonschema.ValidationError) string {
	loc := ve.KeywordLocation
	keyword := loc[strings.LastIndex(loc, "/")+1:]
	switch keyword {
	case "pattern":
		return "invalid format"
	case "enum":
		return "not an allowed value"
	case "minLength":
		return "must not be empty"
	case "type":
		return "wrong type"
	}
	return ve.Message
}
