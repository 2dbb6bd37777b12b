package response

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorEnvelopeCarriesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Set("request_id", "req-1")

	Error(c, CodeConflict, "coupon code already exists")

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, 200, recorder.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, float64(CodeConflict), body["status_code"])
	assert.Equal(t, "coupon code already exists", body["error"])
	assert.Equal(t, "req-1", body["request_id"])
	_, hasData := body["data"]
	assert.False(t, hasData)
}

func TestSuccessEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)

	Success(c, gin.H{"code": "SAVE20"})

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	_, hasError := body["error"]
	assert.False(t, hasError)
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "SAVE20", data["code"])
}

func TestBuildPagination(t *testing.T) {
	p := BuildPagination(2, 20, 41)
	assert.Equal(t, int64(3), p.TotalPage)
	assert.Equal(t, int64(0), BuildPagination(1, 0, 10).TotalPage)
}
