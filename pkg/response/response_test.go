package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/srms-gateway/pkg/errors"
)

func TestErrorUsesTypedStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, appErrors.Clone(appErrors.ErrRequestAlreadyResolved, "role request 3 is already Denied"))

	require.Equal(t, http.StatusConflict, w.Code)
	var body struct {
		Error appErrors.Error `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "REQUEST_ALREADY_RESOLVED", body.Error.Code)
	assert.Equal(t, "role request 3 is already Denied", body.Error.Message)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

func TestJSONWrapsDataAndMeta(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	JSON(c, http.StatusOK, []string{"a"}, map[string]interface{}{"count": 1})

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":["a"],"meta":{"count":1}}`, w.Body.String())
}

func TestFileSetsAttachment(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	File(c, "text/csv", "grades.csv", []byte("a,b\n"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="grades.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "a,b\n", w.Body.String())
}
