package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiobellavita/salon-agenda/internal/httperr"
)

func recordBusinessError(t *testing.T, err error) (*httptest.ResponseRecorder, httperr.HTTPError) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	writeBusinessError(c, err)

	var body httperr.HTTPError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestWriteBusinessError_StatusPorCodigo(t *testing.T) {
	cases := []struct {
		code   string
		status int
	}{
		{"appointment_not_found", 404},
		{"customer_not_found", 404},
		{"invalid_state", 409},
		{"already_finalized", 409},
		{"customer_mismatch", 409},
		{"slot_mismatch", 409},
		{"payment_mismatch", 400},
		{"invalid_coupon", 400},
		{"missing_cancel_reason", 400},
	}

	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			w, body := recordBusinessError(t, httperr.ErrBusiness(tc.code))
			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.code, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestWriteBusinessError_ErroDesconhecidoVira500(t *testing.T) {
	w, body := recordBusinessError(t, errors.New("pg: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal_error", body.Code)
}

func TestWriteBusinessError_CodigoSemMensagemUsaOCodigo(t *testing.T) {
	w, body := recordBusinessError(t, httperr.ErrBusiness("codigo_novo"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "codigo_novo", body.Message)
}
