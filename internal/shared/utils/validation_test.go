package utils

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/backoffice/internal/shared/errors"
)

type bindTarget struct {
	Cycle  string  `json:"billing_cycle" binding:"required,billing_cycle"`
	Start  *string `json:"start_date" binding:"omitempty,date"`
	Method string  `json:"payment_method" binding:"omitempty,payment_method"`
	Users  int     `json:"num_users" binding:"required,min=1"`
}

func bindBody(t *testing.T, body string) error {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var target bindTarget
	return BindJSON(c, &target)
}

func TestBindJSON_Valid(t *testing.T) {
	err := bindBody(t, `{"billing_cycle":"Half-Yearly","start_date":"2026-01-01","payment_method":"upi","num_users":20}`)
	assert.NoError(t, err)
}

func TestBindJSON_FieldErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		detail string
	}{
		{"unknown cycle", `{"billing_cycle":"weekly","num_users":1}`, "billing_cycle must be one of"},
		{"bad date", `{"billing_cycle":"monthly","start_date":"01/02/2026","num_users":1}`, "start_date must be a date in YYYY-MM-DD format"},
		{"bad method", `{"billing_cycle":"monthly","payment_method":"crypto","num_users":1}`, "payment_method must be one of"},
		{"missing users", `{"billing_cycle":"monthly"}`, "num_users is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := bindBody(t, tt.body)
			require.Error(t, err)
			appErr := errors.GetAppError(err)
			require.NotNil(t, appErr)
			assert.Equal(t, http.StatusBadRequest, appErr.Code)
			assert.Contains(t, appErr.Details, tt.detail)
		})
	}
}

func TestBindJSON_Malformed(t *testing.T) {
	for _, body := range []string{`{"billing_cycle":`, `{"billing_cycle" "monthly"}`, ``} {
		err := bindBody(t, body)
		require.Error(t, err, body)
		appErr := errors.GetAppError(err)
		require.NotNil(t, appErr, body)
		assert.Equal(t, errors.ErrorTypeBadRequest, appErr.Type, body)
		assert.Equal(t, http.StatusBadRequest, appErr.Code)
		assert.Equal(t, "Malformed JSON body", appErr.Message)
	}

	err := bindBody(t, `{"billing_cycle":"monthly","num_users":"many"}`)
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}
