package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestSuccess_WhenCalled_ThenReturnsSuccessResponse(t *testing.T) {
	// Arrange
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	testData := map[string]string{"key": "value"}

	// Act
	Success(c, http.StatusOK, testData, "success message")

	// Assert
	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var response SuccessResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	if err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if response.Message != "success message" {
		t.Errorf("expected message 'success message', got '%s'", response.Message)
	}
}

func TestError_WhenCalledWithRequestID_ThenIncludesTraceID(t *testing.T) {
	// Arrange
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("request_id", "test-trace-id")

	// Act
	Error(c, http.StatusBadRequest, "test error", nil)

	// Assert
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}

	var response ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	if err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if response.Error != "test error" {
		t.Errorf("expected error 'test error', got '%s'", response.Error)
	}
	if response.TraceID != "test-trace-id" {
		t.Errorf("expected trace ID 'test-trace-id', got '%s'", response.TraceID)
	}
}

func TestError_WhenCalledWithoutRequestID_ThenGeneratesTraceID(t *testing.T) {
	// Arrange
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	// Act
	Error(c, http.StatusInternalServerError, "test error", "details")

	// Assert
	var response ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	if err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if response.TraceID == "" {
		t.Error("expected trace ID to be generated")
	}
}

func TestStatusHelpers_WhenCalled_ThenReturnExpectedCodes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		call func(c *gin.Context)
		want int
	}{
		{"bad request", func(c *gin.Context) { BadRequest(c, "bad request", "details") }, http.StatusBadRequest},
		{"unauthorized", func(c *gin.Context) { Unauthorized(c, "unauthorized") }, http.StatusUnauthorized},
		{"forbidden", func(c *gin.Context) { Forbidden(c, "forbidden") }, http.StatusForbidden},
		{"not found", func(c *gin.Context) { NotFound(c, "not found") }, http.StatusNotFound},
		{"conflict", func(c *gin.Context) { Conflict(c, "conflict", nil) }, http.StatusConflict},
		{"internal", func(c *gin.Context) { InternalServerError(c, "internal error") }, http.StatusInternalServerError},
		{"unavailable", func(c *gin.Context) { ServiceUnavailable(c, "mirror down") }, http.StatusServiceUnavailable},
		{"created", func(c *gin.Context) { Created(c, map[string]string{"id": "123"}, "created") }, http.StatusCreated},
		{"ok", func(c *gin.Context) { OK(c, map[string]string{"result": "ok"}) }, http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			tc.call(c)

			if w.Code != tc.want {
				t.Errorf("expected status %d, got %d", tc.want, w.Code)
			}
		})
	}
}

func TestGetRequestID_WhenRequestIDExists_ThenReturnsIt(t *testing.T) {
	// Arrange
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Set("request_id", "existing-request-id")

	// Act
	requestID := GetRequestID(c)

	// Assert
	if requestID != "existing-request-id" {
		t.Errorf("expected 'existing-request-id', got '%s'", requestID)
	}
}

func TestGetRequestID_WhenRequestIDIsNotString_ThenGeneratesNew(t *testing.T) {
	// Arrange
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Set("request_id", 12345)

	// Act
	requestID := GetRequestID(c)

	// Assert
	if requestID == "" {
		t.Error("expected request ID to be generated")
	}
}
