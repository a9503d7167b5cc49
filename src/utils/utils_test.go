package utils

import (
	"testing"
	"time"

	"Backend-TanyaPintar/src/errs"
	"Backend-TanyaPintar/src/models"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFor(t *testing.T) {
	for _, tc := range []struct {
		err    error
		status int
		code   string
	}{
		{errs.ErrPortalClosed, fiber.StatusForbidden, "PORTAL_CLOSED"},
		{&errs.IncompleteAnswersError{Missing: 2}, fiber.StatusUnprocessableEntity, "INCOMPLETE_ANSWERS"},
		{errs.Store(errors.New("timeout"), "insert"), fiber.StatusServiceUnavailable, "STORE_UNAVAILABLE"},
		{errs.AI(errors.New("quota"), "suggest"), fiber.StatusBadGateway, "AI_SERVICE_FAILURE"},
		{errs.ErrUnknownClass, fiber.StatusBadRequest, "UNKNOWN_CLASS"},
		{errs.Invalid("name is required"), fiber.StatusBadRequest, "VALIDATION"},
		{errors.Wrap(errs.ErrDuplicateClass, "X-A"), fiber.StatusConflict, "DUPLICATE_CLASS"},
		{errs.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
		{errors.New("boom"), fiber.StatusInternalServerError, "INTERNAL"},
	} {
		got := ErrorFor(tc.err)
		assert.Equal(t, tc.status, got.Status, tc.err.Error())
		assert.Equal(t, tc.code, got.Code, tc.err.Error())
	}

	assert.Equal(t, 2, ErrorFor(&errs.IncompleteAnswersError{Missing: 2}).Missing)
}

func TestValidateStruct(t *testing.T) {
	assert.Empty(t, ValidateStruct(models.CreateClassRequest{Name: "X-IPA-1"}))
	assert.Contains(t, ValidateStruct(models.CreateClassRequest{Name: "   "}), "name cannot be blank")
	assert.Contains(t, ValidateStruct(models.QuestionRequest{Text: "ok", Type: "choice"}), "type")
}

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT("u1", "admin@sekolah.id", models.RoleAdmin)
	require.NoError(t, err)

	claims, err := ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.InDelta(t, float64(24*time.Hour), float64(TokenTTL(claims)), float64(time.Minute))

	_, err = ParseJWT(token + "x")
	assert.Error(t, err)
}

func TestCodesWithoutRedis(t *testing.T) {
	code := GenerateCode(6)
	require.Len(t, code, 6)

	require.NoError(t, StoreCode("test-reset", code, time.Minute))
	ok, err := ConsumeCode("test-reset", "WRONG1")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = ConsumeCode("test-reset", code)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = ConsumeCode("test-reset", code)
	assert.False(t, ok, "codes are single use")

	require.NoError(t, StoreCode("test-expired", "ABC", -time.Second))
	ok, _ = ConsumeCode("test-expired", "ABC")
	assert.False(t, ok)
}
