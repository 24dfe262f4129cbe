package rest

import "testing"

func TestParams_Encode(t *testing.T) {
	name := "bob"
	var nilPtr *string

	tests := []struct {
		name   string
		params Params
		want   string
	}{
		{"nil", nil, ""},
		{"empty", Params{}, ""},
		{"sorted scalars", Params{"b": 2, "a": "x y"}, "a=x+y&b=2"},
		{"bool", Params{"on": true, "off": false}, "off=0&on=1"},
		{"float", Params{"f": 1.5, "g": float64(3)}, "f=1.5&g=3"},
		{"nil dropped", Params{"a": nil, "b": 1}, "b=1"},
		{"pointer", Params{"p": &name, "q": nilPtr}, "p=bob"},
		{"slice", Params{"ids": []int{7, 8}}, "ids%5B0%5D=7&ids%5B1%5D=8"},
		{"nested map", Params{"user": map[string]any{"name": "a&b", "age": 3}}, "user%5Bage%5D=3&user%5Bname%5D=a%26b"},
		{"deep", Params{"a": map[string]any{"b": []string{"c"}}}, "a%5Bb%5D%5B0%5D=c"},
		{"bytes", Params{"raw": []byte("hi")}, "raw=hi"},
		{"escaping", Params{"k=": "v/é"}, "k%3D=v%2F%C3%A9"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.params.Encode(); got != tc.want {
				t.Errorf("Encode() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestSignature(t *testing.T) {
	tests := []struct {
		id, secret, want string
	}{
		{"id", "secret", "HMAC id:nC4HmuXPYvopgdoHrcbPvsme/Sk="},
		{"billing-app", "s3cr3t", "HMAC billing-app:e2PSFp9ObVHA7kOoDxbeIXMElD0="},
	}
	for _, tc := range tests {
		if got := Signature(tc.id, tc.secret); got != tc.want {
			t.Errorf("Signature(%q, %q) = %q, want %q", tc.id, tc.secret, got, tc.want)
		}
	}
}
