package validation

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type loginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password,omitempty" validate:"required,min=5"`
}

func TestFromBindError(t *testing.T) {
	f := loginForm{Email: "nope", Password: "abc"}
	err := validator.New().Struct(f)

	fe := FromBindError(err, &f)
	assert.Equal(t, "Enter a valid email address.", fe["email"])
	assert.Equal(t, "Must be at least 5.", fe["password"])
}

func TestFromOtherError(t *testing.T) {
	fe := FromBindError(errors.New("strconv.ParseInt: invalid syntax"), &loginForm{})
	assert.Equal(t, "The form data is invalid.", fe.First())
}
