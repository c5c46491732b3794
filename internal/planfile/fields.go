package planfile

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/theirongolddev/horizon/internal/model"
)

// SetFields returns a copy of e with each "key=value" assignment applied.
// Keys are the element's document field names. Values are read as TOML
// literals, falling back to a plain string, so both gross_amount=80000 and
// description=Rent work; string fields never take a number or bool. The id
// cannot be changed.
func SetFields(e model.Element, assignments []string) (model.Element, error) {
	var doc strings.Builder
	for _, a := range assignments {
		key, value, ok := strings.Cut(a, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("expected key=value, got %q", a)
		}
		if key == "id" {
			return nil, fmt.Errorf("the id of %s %q cannot be changed", e.Kind(), e.ElementID())
		}
		doc.WriteString(key)
		doc.WriteString(" = ")
		doc.WriteString(literal(e, key, strings.TrimSpace(value)))
		doc.WriteString("\n")
	}

	out, err := decodeInto(e, doc.String())
	if err != nil {
		return nil, err
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

// literal renders v as a TOML value for the field key of e. String fields
// always get a string, so description=2025 stays text; other fields take v
// as written when it is valid TOML and a quoted string otherwise.
func literal(e model.Element, key, v string) string {
	if v == "" {
		return `""`
	}
	var parsed struct{ V any }
	_, err := toml.Decode("V = "+v, &parsed)
	if isStringField(e, key) {
		if _, ok := parsed.V.(string); ok && err == nil {
			return v
		}
		return strconv.Quote(v)
	}
	if err == nil {
		return v
	}
	return strconv.Quote(v)
}

// isStringField reports whether the field of e tagged key holds a string.
func isStringField(e model.Element, key string) bool {
	t := reflect.TypeOf(e)
	for i := range t.NumField() {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("toml"), ",")
		if name == key {
			return t.Field(i).Type.Kind() == reflect.String
		}
	}
	return false
}

func decodeInto(e model.Element, doc string) (model.Element, error) {
	var (
		md  toml.MetaData
		err error
		out model.Element
	)
	switch v := e.(type) {
	case model.IncomeStream:
		md, err = toml.Decode(doc, &v)
		out = v
	case model.RecurringExpense:
		md, err = toml.Decode(doc, &v)
		out = v
	case model.OneTimeExpense:
		md, err = toml.Decode(doc, &v)
		out = v
	case model.OneTimeIncome:
		md, err = toml.Decode(doc, &v)
		out = v
	case model.Debt:
		md, err = toml.Decode(doc, &v)
		out = v
	case model.Investment:
		md, err = toml.Decode(doc, &v)
		out = v
	case model.Asset:
		if v.SellYear != nil {
			y := *v.SellYear
			v.SellYear = &y
		}
		md, err = toml.Decode(doc, &v)
		out = v
	default:
		return nil, fmt.Errorf("unsupported element type %T", e)
	}
	if err != nil {
		return nil, fmt.Errorf("setting %s fields: %w", e.Kind(), err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s has no field %q", e.Kind(), undecoded[0].String())
	}
	return out, nil
}
