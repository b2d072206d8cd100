package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	t.Run("ledger codes", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, GetHTTPStatus(ErrCodeMalformedLedger))
		assert.Equal(t, http.StatusUnprocessableEntity, GetHTTPStatus(ErrCodeEmptyLedger))
		assert.Equal(t, http.StatusUnprocessableEntity, GetHTTPStatus(ErrCodeInconsistentTenant))
	})

	t.Run("input codes", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, GetHTTPStatus(ErrCodeInvalidJSON))
		assert.Equal(t, http.StatusRequestEntityTooLarge, GetHTTPStatus(ErrCodePayloadTooLarge))
		assert.Equal(t, http.StatusUnsupportedMediaType, GetHTTPStatus(ErrCodeUnsupportedMedia))
	})

	t.Run("unknown code falls back to 500", func(t *testing.T) {
		assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus("ERR_NO_SUCH_CODE"))
	})
}

func TestResponses(t *testing.T) {
	t.Run("success envelope", func(t *testing.T) {
		resp := NewSuccessResponse(map[string]string{"k": "v"})
		assert.True(t, resp.Success)
		assert.Nil(t, resp.Error)
		assert.NotNil(t, resp.Data)
	})

	t.Run("error envelope", func(t *testing.T) {
		resp := NewErrorResponse(ErrCodeEmptyLedger, "no events")
		assert.False(t, resp.Success)
		assert.Nil(t, resp.Data)
		assert.Equal(t, ErrCodeEmptyLedger, resp.Error.Code)
		assert.Equal(t, "no events", resp.Error.Message)
	})
}
