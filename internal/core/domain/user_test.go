package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestErrorKinds(t *testing.T) {
	id := uuid.MustParse("00000000-0000-0000-0000-000000000000")

	cases := []struct {
		err  error
		kind error
		msg  string
	}{
		{UserNotFound(id), ErrUserNotFound, "User with ID 00000000-0000-0000-0000-000000000000 does not exist."},
		{MalformedRequest("User id must not be set"), ErrMalformedRequest, "User id must not be set"},
		{DuplicateName("Denise"), ErrDuplicateName, `User with name "Denise" already exists.`},
	}

	for _, tc := range cases {
		if !errors.Is(tc.err, tc.kind) {
			t.Errorf("expected %v to be %v", tc.err, tc.kind)
		}
		if tc.err.Error() != tc.msg {
			t.Errorf("message: expected %q, got %q", tc.msg, tc.err.Error())
		}
	}

	if errors.Is(DuplicateName("x"), ErrUserNotFound) {
		t.Error("DuplicateName must not match ErrUserNotFound")
	}
}
