package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUsernameBase(t *testing.T) {
	tests := []struct {
		name        string
		email       string
		displayName string
		want        string
	}{
		{"local part", "John.Doe@gmail.com", "Someone Else", "johndoe"},
		{"strips symbols", "a_b-c+tag@x.com", "", "abctag"},
		{"falls back to display name", "___@x.com", "Zoë Smith 2", "zosmith2"},
		{"default when nothing usable", "...@x.com", "---", "user"},
		{"truncates to twenty", "abcdefghijklmnopqrstuvwxyz@x.com", "", "abcdefghijklmnopqrst"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, usernameBase(tt.email, tt.displayName))
		})
	}
}
