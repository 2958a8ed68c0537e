package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"health-recipe-modifier/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngredientInput_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "string", raw: `{"ingredients":"sugar, flour"}`, want: "sugar, flour"},
		{name: "array", raw: `{"ingredients":["sugar","flour"]}`, want: "sugar, flour"},
		{name: "missing", raw: `{}`, want: ""},
		{name: "number", raw: `{"ingredients":7}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body struct {
				Ingredients IngredientInput `json:"ingredients"`
			}
			err := json.Unmarshal([]byte(tt.raw), &body)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, body.Ingredients.String())
		})
	}
}

func respond(fn func(c *gin.Context)) (*httptest.ResponseRecorder, common.ErrorResponse) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/test", nil)
	fn(c)

	var resp common.ErrorResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", common.NewValidationError("condition is required"), http.StatusBadRequest, common.ErrCodeValidation},
		{"not found", fmt.Errorf("toggle: %w", common.ErrRecordNotFound), http.StatusNotFound, common.ErrCodeNotFound},
		{"unavailable", fmt.Errorf("rules: %w", common.ErrLookupUnavailable), http.StatusServiceUnavailable, common.ErrCodeServiceUnavailable},
		{"custom", common.ErrConflict, http.StatusConflict, common.ErrCodeConflict},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, common.ErrCodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := respond(func(c *gin.Context) { RespondError(c, tt.err) })
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, resp.Code)
		})
	}
}

func TestRespondBindError(t *testing.T) {
	w, resp := respond(func(c *gin.Context) { RespondBindError(c, &http.MaxBytesError{Limit: 10}) })
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, common.ErrCodePayloadTooLarge, resp.Code)

	w, resp = respond(func(c *gin.Context) { RespondBindError(c, errors.New("unexpected EOF")) })
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, common.ErrCodeInvalidRequest, resp.Code)
	assert.Equal(t, "unexpected EOF", resp.Details)
}

func TestUserID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, UserID(c))

	c.Request.Header.Set("X-User-ID", "  42 ")
	assert.Equal(t, "42", UserID(c))
}
