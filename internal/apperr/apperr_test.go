package apperr

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected Kind
	}{
		{"not found", NotFound("role not found"), KindNotFound},
		{"validation", Validation("duplicate slug"), KindValidation},
		{"conflict", Conflict("attribute still referenced"), KindConflict},
		{"unauthorized", Unauthorized("no identity"), KindUnauthorized},
		{"forbidden", Forbidden("missing permission"), KindForbidden},
		{"plain error", errors.New("driver exploded"), KindInternal},
		{"wrapped kinded error", errors.Wrap(NotFound("user not found"), "loading user"), KindNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, KindOf(tc.err))
			assert.True(t, IsKind(tc.err, tc.expected))
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, fiber.StatusNotFound, HTTPStatus(NotFound("x")))
	assert.Equal(t, fiber.StatusBadRequest, HTTPStatus(Validation("x")))
	assert.Equal(t, fiber.StatusConflict, HTTPStatus(Conflict("x")))
	assert.Equal(t, fiber.StatusUnauthorized, HTTPStatus(Unauthorized("x")))
	assert.Equal(t, fiber.StatusForbidden, HTTPStatus(Forbidden("x")))
	assert.Equal(t, fiber.StatusInternalServerError, HTTPStatus(errors.New("boom")))
}

func TestSafeMessageNeverLeaksCause(t *testing.T) {
	cause := errors.New("SQLSTATE 23505 duplicate key value violates unique constraint")
	err := Wrap(cause, KindValidation, "attribute slug already exists")

	assert.Equal(t, "attribute slug already exists", SafeMessage(err))
	// the cause stays reachable for logs
	assert.ErrorIs(t, err, cause)

	assert.Equal(t, "internal server error", SafeMessage(cause))
}
