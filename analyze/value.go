package analyze

import (
	"encoding/json"
	"fmt"
)

// ValueKind discriminates a Value.
type ValueKind int

const (
	ValueNull ValueKind = iota
	ValueString
	ValueNumber
	ValueBool
	ValueArray
	ValueObject
)

// Value is a tagged, recursively-defined JSON value. Structured-data
// properties use it instead of an open map of any so that consumers get
// exhaustive-match safety over the possible shapes.
type Value struct {
	Kind ValueKind
	Str  string
	Num  float64
	Bool bool
	Arr  []Value
	Obj  map[string]Value
}

// StringValue wraps a string.
func StringValue(s string) Value { return Value{Kind: ValueString, Str: s} }

// String returns the string form for scalar values, "" otherwise.
func (v Value) String() string {
	switch v.Kind {
	case ValueString:
		return v.Str
	case ValueNumber:
		return fmt.Sprintf("%g", v.Num)
	case ValueBool:
		return fmt.Sprintf("%t", v.Bool)
	}
	return ""
}

// MarshalJSON renders the underlying value, not the tagged wrapper.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case ValueNull:
		return []byte("null"), nil
	case ValueString:
		return json.Marshal(v.Str)
	case ValueNumber:
		return json.Marshal(v.Num)
	case ValueBool:
		return json.Marshal(v.Bool)
	case ValueArray:
		if v.Arr == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.Arr)
	case ValueObject:
		if v.Obj == nil {
			return []byte("{}"), nil
		}
		return json.Marshal(v.Obj)
	}
	return nil, fmt.Errorf("analyze: unknown value kind %d", v.Kind)
}

// UnmarshalJSON decodes any JSON shape into the tagged form.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*v = valueFrom(raw)
	return nil
}

// valueFrom converts a decoded encoding/json value into a Value.
func valueFrom(raw any) Value {
	switch t := raw.(type) {
	case nil:
		return Value{Kind: ValueNull}
	case string:
		return Value{Kind: ValueString, Str: t}
	case float64:
		return Value{Kind: ValueNumber, Num: t}
	case bool:
		return Value{Kind: ValueBool, Bool: t}
	case []any:
		arr := make([]Value, len(t))
		for i, e := range t {
			arr[i] = valueFrom(e)
		}
		return Value{Kind: ValueArray, Arr: arr}
	case map[string]any:
		obj := make(map[string]Value, len(t))
		for k, e := range t {
			obj[k] = valueFrom(e)
		}
		return Value{Kind: ValueObject, Obj: obj}
	}
	return Value{Kind: ValueNull}
}
