package analyze

import (
	"encoding/json"
	"testing"
)

func TestValue_UnmarshalShapes(t *testing.T) {
	var v Value
	if err := json.Unmarshal([]byte(`{"name":"Acme","employees":120,"public":false,"tags":["tools","industrial"],"address":{"city":"Springfield"},"parent":null}`), &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v.Kind != ValueObject {
		t.Fatalf("kind = %d, want object", v.Kind)
	}
	if got := v.Obj["name"]; got.Kind != ValueString || got.Str != "Acme" {
		t.Errorf("name = %+v", got)
	}
	if got := v.Obj["employees"]; got.Kind != ValueNumber || got.Num != 120 {
		t.Errorf("employees = %+v", got)
	}
	if got := v.Obj["public"]; got.Kind != ValueBool || got.Bool {
		t.Errorf("public = %+v", got)
	}
	if got := v.Obj["tags"]; got.Kind != ValueArray || len(got.Arr) != 2 {
		t.Errorf("tags = %+v", got)
	}
	if got := v.Obj["address"]; got.Kind != ValueObject || got.Obj["city"].Str != "Springfield" {
		t.Errorf("address = %+v", got)
	}
	if got := v.Obj["parent"]; got.Kind != ValueNull {
		t.Errorf("parent = %+v", got)
	}
}

func TestValue_MarshalRoundTrip(t *testing.T) {
	// Marshal renders the underlying JSON shape, not the tagged wrapper,
	// so a decode/encode cycle is stable.
	in := `{"a":[1,"two",true,null],"b":{"c":3.5}}`
	var v Value
	if err := json.Unmarshal([]byte(in), &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	out, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var want, got any
	if err := json.Unmarshal([]byte(in), &want); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatal(err)
	}
	wantJSON, _ := json.Marshal(want)
	gotJSON, _ := json.Marshal(got)
	if string(wantJSON) != string(gotJSON) {
		t.Errorf("round trip changed shape:\n in: %s\nout: %s", wantJSON, gotJSON)
	}
}

func TestValue_String(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{StringValue("hello"), "hello"},
		{Value{Kind: ValueNumber, Num: 42}, "42"},
		{Value{Kind: ValueBool, Bool: true}, "true"},
		{Value{Kind: ValueNull}, ""},
		{Value{Kind: ValueArray}, ""},
	}
	for _, c := range cases {
		if got := c.v.String(); got != c.want {
			t.Errorf("String(%+v) = %q, want %q", c.v, got, c.want)
		}
	}
}
