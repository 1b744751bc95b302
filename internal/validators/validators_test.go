package validators_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/screamhq/screams-backend/internal/models"
	"github.com/screamhq/screams-backend/internal/validators"
)

func TestCheckValidSignup(t *testing.T) {
	errs := validators.Check(&models.SignupRequest{
		Handle:          "alice",
		Email:           "alice@example.com",
		Password:        "secret1",
		PasswordConfirm: "secret1",
	})
	assert.Nil(t, errs)
}

func TestCheckReportsFieldKeyedMessages(t *testing.T) {
	errs := validators.Check(&models.SignupRequest{
		Handle:          "",
		Email:           "nope",
		Password:        "abc",
		PasswordConfirm: "xyz",
	})
	assert.Equal(t, "Must not be empty!", errs["handle"])
	assert.Equal(t, "Please provide a valid email address!", errs["email"])
	assert.Equal(t, "please provide a strong password!", errs["password"])
	assert.Equal(t, "Passwords must match!", errs["passwordConfirm"])
}

func TestCheckLoginRequiresBothFields(t *testing.T) {
	errs := validators.Check(&models.LoginRequest{})
	assert.Equal(t, "Must not be empty!", errs["email"])
	assert.Equal(t, "Must not be empty!", errs["password"])
}

func TestCheckScreamBody(t *testing.T) {
	assert.Nil(t, validators.Check(&models.CreateScreamRequest{Body: "hello"}))

	errs := validators.Check(&models.CreateScreamRequest{})
	assert.Equal(t, "Must not be empty!", errs["body"])
}
