package response_test

import (
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinobilet/movie-catalog/internal/http/response"
)

func TestOKWithData(t *testing.T) {
	resp := response.OKWithData(map[string]any{"id": 1})

	assert.Equal(t, response.StatusOK, resp.Status)
	assert.Equal(t, map[string]any{"id": 1}, resp.Data)
}

func TestError(t *testing.T) {
	resp := response.Error("something broke")

	assert.Equal(t, response.StatusError, resp.Status)
	assert.Equal(t, "something broke", resp.Error)
}

func TestValidationError(t *testing.T) {
	type payload struct {
		Username string `validate:"required"`
		Email    string `validate:"required,email"`
	}

	err := validator.New().Struct(payload{Email: "not-an-email"})
	require.Error(t, err)

	resp := response.ValidationError(err.(validator.ValidationErrors))

	assert.Equal(t, response.StatusError, resp.Status)
	assert.Contains(t, resp.Error, "field Username is a required field")
	assert.Contains(t, resp.Error, "field Email must be a valid email address")
}
