// Package forms builds the huh forms used to edit plan elements and the
// first-run configuration, both from the command line and inside the TUI.
package forms

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/horizon/internal/model"
	"github.com/theirongolddev/horizon/internal/planfile"
)

// Field is one editable element attribute bound to a form input.
type Field struct {
	Key      string
	Title    string
	Kind     reflect.Kind
	Optional bool
	Value    string
	Bool     bool
}

// FieldsFor lists the editable fields of e with their current values, in
// declaration order. The id is not editable.
func FieldsFor(e model.Element) []*Field {
	v := reflect.ValueOf(e)
	t := v.Type()

	out := make([]*Field, 0, t.NumField())
	for i := range t.NumField() {
		key, _, _ := strings.Cut(t.Field(i).Tag.Get("toml"), ",")
		if key == "" || key == "id" {
			continue
		}

		fv := v.Field(i)
		f := &Field{Key: key, Title: titleFor(key)}
		if fv.Kind() == reflect.Pointer {
			f.Optional = true
			f.Kind = fv.Type().Elem().Kind()
			if !fv.IsNil() {
				f.Value = formatValue(fv.Elem())
			}
		} else {
			f.Kind = fv.Kind()
			if f.Kind == reflect.Bool {
				f.Bool = fv.Bool()
			} else {
				f.Value = formatValue(fv)
			}
		}
		out = append(out, f)
	}
	return out
}

func formatValue(v reflect.Value) string {
	switch v.Kind() {
	case reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	case reflect.Int:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	}
	return v.String()
}

// titleFor turns "annual_growth_rate" into "Annual growth rate".
func titleFor(key string) string {
	s := strings.ReplaceAll(key, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Validate checks that the field's text parses as its type.
func (f *Field) Validate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" && (f.Optional || f.Kind == reflect.String) {
		return nil
	}
	switch f.Kind {
	case reflect.Int:
		if _, err := strconv.Atoi(s); err != nil {
			return fmt.Errorf("%s must be a whole year", f.Title)
		}
	case reflect.Float64:
		if _, err := strconv.ParseFloat(s, 64); err != nil {
			return fmt.Errorf("%s must be a number", f.Title)
		}
	}
	return nil
}

// Assignment renders the field as a key=value pair for planfile.SetFields.
// Strings are always quoted so a description like "2025" stays text.
func (f *Field) Assignment() string {
	v := strings.TrimSpace(f.Value)
	switch f.Kind {
	case reflect.Bool:
		v = strconv.FormatBool(f.Bool)
	case reflect.String:
		v = strconv.Quote(v)
	}
	return f.Key + "=" + v
}

// Apply returns a copy of e carrying the form's values. Clearing an optional
// field such as an asset's sell year removes it.
func Apply(e model.Element, fields []*Field) (model.Element, error) {
	assignments := make([]string, 0, len(fields))
	var cleared []string
	for _, f := range fields {
		if err := f.Validate(f.Value); err != nil {
			return nil, err
		}
		if f.Optional && strings.TrimSpace(f.Value) == "" {
			cleared = append(cleared, f.Key)
			continue
		}
		assignments = append(assignments, f.Assignment())
	}

	out, err := planfile.SetFields(e, assignments)
	if err != nil {
		return nil, err
	}
	if a, ok := out.(model.Asset); ok && contains(cleared, "sell_year") {
		a.SellYear = nil
		out = a
	}
	return out, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// NewElementForm builds a single-page form editing fields in place.
func NewElementForm(e model.Element, fields []*Field) *huh.Form {
	inputs := make([]huh.Field, 0, len(fields))
	for _, f := range fields {
		if f.Kind == reflect.Bool {
			inputs = append(inputs, huh.NewConfirm().
				Title(f.Title).
				Value(&f.Bool))
			continue
		}
		in := huh.NewInput().
			Title(f.Title).
			Value(&f.Value).
			Validate(f.Validate)
		if f.Optional {
			in = in.Placeholder("leave blank for none")
		}
		inputs = append(inputs, in)
	}

	g := model.GroupFor(e.Kind())
	return huh.NewForm(
		huh.NewGroup(inputs...).
			Title(fmt.Sprintf("%s  %s", g.Label, e.ElementID())).
			Description(g.Tooltip),
	).WithTheme(huh.ThemeCharm())
}
