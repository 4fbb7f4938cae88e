package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateHTTPSURL(t *testing.T) {
	v := NewValidator()
	assert.NoError(t, v.ValidateHTTPSURL("https://instagram.com/mybrand"))
	assert.NoError(t, v.ValidateHTTPSURL("  https://facebook.com/mybrand "))
	assert.Error(t, v.ValidateHTTPSURL("http://instagram.com/mybrand"))
	assert.Error(t, v.ValidateHTTPSURL("instagram.com/mybrand"))
	assert.Error(t, v.ValidateHTTPSURL("https://"))
	assert.Error(t, v.ValidateHTTPSURL(""))
}

func TestValidatePasswordStrength(t *testing.T) {
	v := NewValidator()
	assert.NoError(t, v.ValidatePasswordStrength("Password123"))
	assert.Error(t, v.ValidatePasswordStrength("short1A"))
	assert.Error(t, v.ValidatePasswordStrength("password123"))
	assert.Error(t, v.ValidatePasswordStrength("PASSWORD123"))
	assert.Error(t, v.ValidatePasswordStrength("Passwordabc"))
}

func TestValidateEmail(t *testing.T) {
	v := NewValidator()
	assert.NoError(t, v.ValidateEmail("student@school.edu"))
	assert.Error(t, v.ValidateEmail("not-an-email"))
}
