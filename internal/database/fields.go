package database

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

// Field is one logical field name and its new value in a partial update.
type Field struct {
	Name  string
	Value interface{}
}

// Fields is an ordered partial-update payload. Order is significant: the
// position of a field decides its placeholder number.
type Fields []Field

// Set replaces the value of name in place, or appends it.
func (f Fields) Set(name string, value interface{}) Fields {
	for i := range f {
		if f[i].Name == name {
			f[i].Value = value
			return f
		}
	}
	return append(f, Field{Name: name, Value: value})
}

func (f Fields) Get(name string) (interface{}, bool) {
	for _, field := range f {
		if field.Name == name {
			return field.Value, true
		}
	}
	return nil, false
}

func (f Fields) Keys() []string {
	keys := make([]string, 0, len(f))
	for _, field := range f {
		keys = append(keys, field.Name)
	}
	return keys
}

// UnmarshalJSON decodes a JSON object keeping its key order. Numbers are kept
// as json.Number so integer columns receive exact values.
func (f *Fields) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("fields: expected a JSON object")
	}
	out := Fields{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return errors.Errorf("fields: unexpected token %v", tok)
		}
		var value interface{}
		if err := dec.Decode(&value); err != nil {
			return errors.Wrapf(err, "fields: decoding %q", key)
		}
		out = out.Set(key, value)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*f = out
	return nil
}
