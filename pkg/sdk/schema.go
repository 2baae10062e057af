package stylematch

import (
	"fmt"
	"reflect"
	"strconv"
)

const tagKey = "stylematch"

// Record roles a struct field can be tagged with.
const (
	roleID          = "id"
	roleName        = "name"
	roleImage       = "image"
	roleBrand       = "brand"
	roleDescription = "description"
	roleColor       = "color"
	roleAttributes  = "attributes"
	rolePrice       = "price"
)

var textRoles = map[string]bool{
	roleName: true, roleImage: true, roleBrand: true,
	roleDescription: true, roleColor: true,
}

// schemaMeta holds parsed struct tag metadata for one struct type.
type schemaMeta struct {
	typ   reflect.Type
	roles map[string]int // role -> struct field index
}

// parseSchema reflects on T and extracts stylematch struct tag metadata.
func parseSchema[T any]() (*schemaMeta, error) {
	t := reflect.TypeFor[T]()
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("stylematch: type %s is not a struct", t)
	}

	meta := &schemaMeta{typ: t, roles: make(map[string]int)}
	for i := range t.NumField() {
		f := t.Field(i)
		tag := f.Tag.Get(tagKey)
		if tag == "" || tag == "-" {
			continue
		}
		if err := applyTag(meta, i, f, tag); err != nil {
			return nil, err
		}
	}

	return validateSchema(meta)
}

// applyTag checks a single struct field's role and type.
func applyTag(meta *schemaMeta, idx int, f reflect.StructField, role string) error {
	if _, dup := meta.roles[role]; dup {
		return fmt.Errorf("stylematch: duplicate %s tag on field %s", role, f.Name)
	}

	kind := f.Type.Kind()
	switch {
	case textRoles[role]:
		if kind != reflect.String {
			return fmt.Errorf("stylematch: field %s tagged %s must be a string", f.Name, role)
		}
	case role == roleID:
		if kind != reflect.String && !isInt(kind) {
			return fmt.Errorf("stylematch: field %s tagged id must be a string or integer", f.Name)
		}
	case role == roleAttributes:
		if kind != reflect.String && f.Type != reflect.TypeFor[map[string]any]() &&
			f.Type != reflect.TypeFor[map[string]string]() {
			return fmt.Errorf("stylematch: field %s tagged attributes must be a string or a string-keyed map", f.Name)
		}
	case role == rolePrice:
		elem := f.Type
		if elem.Kind() == reflect.Pointer {
			elem = elem.Elem()
		}
		if !isNumber(elem.Kind()) && elem.Kind() != reflect.String {
			return fmt.Errorf("stylematch: field %s tagged price must be numeric or a string", f.Name)
		}
	default:
		return fmt.Errorf("stylematch: unknown role %q on field %s", role, f.Name)
	}

	meta.roles[role] = idx
	return nil
}

func validateSchema(meta *schemaMeta) (*schemaMeta, error) {
	for _, role := range []string{roleName, roleImage} {
		if _, ok := meta.roles[role]; !ok {
			return nil, fmt.Errorf("stylematch: no field with `stylematch:%q` tag in %s", role, meta.typ)
		}
	}
	return meta, nil
}

// toRecord converts one struct value using schema metadata.
func (m *schemaMeta) toRecord(v reflect.Value) Record {
	var r Record
	text := func(role string) string {
		if i, ok := m.roles[role]; ok {
			return v.Field(i).String()
		}
		return ""
	}
	r.Name = text(roleName)
	r.Image = text(roleImage)
	r.Brand = text(roleBrand)
	r.Description = text(roleDescription)
	r.Color = text(roleColor)

	if i, ok := m.roles[roleID]; ok {
		f := v.Field(i)
		if f.Kind() == reflect.String {
			r.ID = f.String()
		} else {
			r.ID = strconv.FormatInt(f.Int(), 10)
		}
	}

	if i, ok := m.roles[roleAttributes]; ok {
		f := v.Field(i)
		switch f.Kind() {
		case reflect.String:
			r.AttributesText = f.String()
		default:
			if !f.IsNil() {
				r.Attributes = toAnyMap(f)
			}
		}
	}

	if i, ok := m.roles[rolePrice]; ok {
		f := v.Field(i)
		if f.Kind() == reflect.Pointer {
			if f.IsNil() {
				return r
			}
			f = f.Elem()
		}
		switch {
		case f.Kind() == reflect.String:
			r.PriceText = f.String()
		default:
			p := toFloat64(f)
			r.Price = &p
		}
	}
	return r
}

// RecordsOf converts structs tagged with `stylematch:"<role>"` into
// catalog records. Roles: id, name, image, brand, description, color,
// attributes, price; name and image are required.
//
//	type Product struct {
//	    SKU   int64   `stylematch:"id"`
//	    Title string  `stylematch:"name"`
//	    Photo string  `stylematch:"image"`
//	    Cost  float64 `stylematch:"price"`
//	}
func RecordsOf[T any](items []T) ([]Record, error) {
	meta, err := parseSchema[T]()
	if err != nil {
		return nil, err
	}

	out := make([]Record, len(items))
	for i := range items {
		v := reflect.ValueOf(&items[i]).Elem()
		if v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return nil, fmt.Errorf("stylematch: nil item at position %d", i)
			}
			v = v.Elem()
		}
		out[i] = meta.toRecord(v)
	}
	return out, nil
}

func toAnyMap(v reflect.Value) map[string]any {
	out := make(map[string]any, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out
}

func isInt(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	default:
		return false
	}
}

func isNumber(k reflect.Kind) bool {
	switch k {
	case reflect.Float32, reflect.Float64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	default:
		return isInt(k)
	}
}

func toFloat64(v reflect.Value) float64 {
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return v.Float()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint())
	default:
		return 0
	}
}
