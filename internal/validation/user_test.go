package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{name: "valid email", email: "user@example.com", wantErr: false},
		{name: "valid with subdomain", email: "user@mail.example.com", wantErr: false},
		{name: "valid with plus", email: "user+tag@example.com", wantErr: false},
		{name: "empty", email: "", wantErr: true},
		{name: "no at sign", email: "userexample.com", wantErr: true},
		{name: "no domain dot", email: "user@example", wantErr: true},
		{name: "spaces", email: "user name@example.com", wantErr: true},
		{name: "double at", email: "user@@example.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "normal name", value: "Ivan", wantErr: false},
		{name: "single character", value: "Y", wantErr: false},
		{name: "max length", value: strings.Repeat("a", MaxNameLen), wantErr: false},
		{name: "empty", value: "", wantErr: true},
		{name: "too long", value: strings.Repeat("a", MaxNameLen+1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName("firstname", tt.value)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateName_FieldInError(t *testing.T) {
	err := ValidateName("surname", "")
	assert.ErrorContains(t, err, "surname")
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "valid password", password: "password123", wantErr: false},
		{name: "min length", password: strings.Repeat("a", MinPasswordLen), wantErr: false},
		{name: "max length", password: strings.Repeat("a", MaxPasswordLen), wantErr: false},
		{name: "too short", password: "short", wantErr: true},
		{name: "empty", password: "", wantErr: true},
		{name: "too long", password: strings.Repeat("a", MaxPasswordLen+1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
