package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterRequestValidate(t *testing.T) {
	items := []struct {
		name string
		req  RegisterRequest
		ok   bool
	}{
		{"valid", RegisterRequest{Username: "jake", Email: "jake@jake.jake", Password: "hunter2hunter2"}, true},
		{"missing username", RegisterRequest{Email: "jake@jake.jake", Password: "hunter2hunter2"}, false},
		{"bad email", RegisterRequest{Username: "jake", Email: "not-an-email", Password: "hunter2hunter2"}, false},
		{"short password", RegisterRequest{Username: "jake", Email: "jake@jake.jake", Password: "short"}, false},
	}

	for _, item := range items {
		t.Run(item.name, func(t *testing.T) {
			err := item.req.Validate()
			if item.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestUpdateUserRequestValidate(t *testing.T) {
	bad := "x"
	email := "new@jake.jake"

	assert.NoError(t, UpdateUserRequest{}.Validate())
	assert.NoError(t, UpdateUserRequest{Email: &email}.Validate())
	assert.Error(t, UpdateUserRequest{Username: &bad}.Validate())
}
