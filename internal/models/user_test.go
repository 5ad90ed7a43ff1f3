package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodePatch(t *testing.T, body string) UserPatch {
	t.Helper()
	var p UserPatch
	require.NoError(t, json.Unmarshal([]byte(body), &p))
	return p
}

func TestUserPatchPresence(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		complete bool
		empty    bool
	}{
		{"both fields", `{"name":"John","lastname":"Doe"}`, true, false},
		{"extra field ignored", `{"name":"John","lastname":"Doe","age":25}`, true, false},
		{"name only", `{"name":"John"}`, false, false},
		{"lastname only", `{"lastname":"Doe"}`, false, false},
		{"unknown only", `{"age":25}`, false, true},
		{"empty object", `{}`, false, true},
		{"null counts as absent", `{"name":null,"lastname":"Doe"}`, false, false},
		{"empty strings are present", `{"name":"","lastname":""}`, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := decodePatch(t, tt.body)
			assert.Equal(t, tt.complete, p.Complete())
			assert.Equal(t, tt.empty, p.Empty())
		})
	}
}

func TestUserPatchApply(t *testing.T) {
	u := User{ID: 7, Name: "John", Lastname: "Doe"}

	decodePatch(t, `{"lastname":"Smith","age":25}`).Apply(&u)

	assert.Equal(t, User{ID: 7, Name: "John", Lastname: "Smith"}, u)
}

func TestUserPatchUser(t *testing.T) {
	u := decodePatch(t, `{"name":"Jane","lastname":"Roe"}`).User(3)
	assert.Equal(t, User{ID: 3, Name: "Jane", Lastname: "Roe"}, u)

	out, err := json.Marshal(u)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":3,"name":"Jane","lastname":"Roe"}`, string(out))
}
