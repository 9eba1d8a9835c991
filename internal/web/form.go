package web

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
)

// decodeForm sets the fields of the struct dst points to from form values,
// matching each field by its JSON name. A bool field is a checkbox: "on",
// "true" and "1" set it. Fields with no form value keep their zero value.
func decodeForm(form url.Values, dst any) error {
	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("decode form: %T is not a struct pointer", dst)
	}
	v = v.Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := formName(f)
		if name == "" || !form.Has(name) {
			continue
		}
		raw := strings.TrimSpace(form.Get(name))
		field := v.Field(i)
		switch field.Kind() {
		case reflect.String:
			field.SetString(form.Get(name))
		case reflect.Bool:
			field.SetBool(raw == "on" || raw == "1" || strings.EqualFold(raw, "true"))
		case reflect.Int, reflect.Int32, reflect.Int64:
			if raw == "" {
				continue
			}
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return fmt.Errorf("decode form: %s: not a number", name)
			}
			field.SetInt(n)
		default:
			return fmt.Errorf("decode form: %s: unsupported field", name)
		}
	}
	return nil
}

func formName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "-" {
		return ""
	}
	if name, _, _ := strings.Cut(tag, ","); name != "" {
		return name
	}
	return f.Name
}
