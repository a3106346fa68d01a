package handler

import (
	"strings"
	"testing"
)

func TestValidator_UserDTO(t *testing.T) {
	v := NewValidator()

	cases := []struct {
		name    string
		in      userDTO
		wantErr string
	}{
		{"valid", userDTO{Name: "Denise"}, ""},
		{"max length", userDTO{Name: strings.Repeat("a", 255)}, ""},
		{"empty", userDTO{Name: ""}, "name is required"},
		{"blank", userDTO{Name: " \t "}, "name must not be blank"},
		{"too long", userDTO{Name: strings.Repeat("a", 256)}, "name can be at most 255 characters long"},
		{"nul byte", userDTO{Name: "Den\x00ise"}, "name must not contain NUL characters"},
	}

	for _, tc := range cases {
		err := v.Validate(&tc.in)
		switch {
		case tc.wantErr == "" && err != nil:
			t.Errorf("%s: unexpected error: %v", tc.name, err)
		case tc.wantErr != "" && (err == nil || err.Error() != tc.wantErr):
			t.Errorf("%s: expected %q, got %v", tc.name, tc.wantErr, err)
		}
	}
}
