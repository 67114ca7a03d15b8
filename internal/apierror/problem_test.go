package apierror

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	// Set gin to test mode to reduce noise in test output
	gin.SetMode(gin.TestMode)
}

func TestProblemDetailsJSON(t *testing.T) {
	problem := &ProblemDetails{
		Type:        TypeValidation,
		Title:       TitleValidation,
		Status:      http.StatusBadRequest,
		Detail:      "Field validation failed",
		Instance:    "/api/metrics/123",
		RequestID:   "req-abc123",
		UserMessage: "Please fix the errors",
		Errors: []FieldError{
			{Field: "label", Message: "is required", Code: "required"},
			{Field: "timestamp", Message: "must be a valid date", Code: "invalid_date"},
		},
	}

	data, err := json.Marshal(problem)
	if err != nil {
		t.Fatalf("Failed to marshal ProblemDetails: %v", err)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("Failed to unmarshal JSON: %v", err)
	}

	// Check standard RFC 9457 fields
	if result["type"] != TypeValidation {
		t.Errorf("Expected type=%q, got %q", TypeValidation, result["type"])
	}
	if result["title"] != TitleValidation {
		t.Errorf("Expected title=%q, got %q", TitleValidation, result["title"])
	}
	if result["status"] != float64(http.StatusBadRequest) {
		t.Errorf("Expected status=%d, got %v", http.StatusBadRequest, result["status"])
	}
	if result["instance"] != "/api/metrics/123" {
		t.Errorf("Expected instance=%q, got %q", "/api/metrics/123", result["instance"])
	}

	// Check extension fields
	if result["request_id"] != "req-abc123" {
		t.Errorf("Expected request_id=%q, got %q", "req-abc123", result["request_id"])
	}

	errors, ok := result["errors"].([]interface{})
	if !ok || len(errors) != 2 {
		t.Errorf("Expected 2 errors, got %v", result["errors"])
	}
}

func TestProblemDetailsJSONOmitsEmpty(t *testing.T) {
	problem := &ProblemDetails{
		Type:   TypeInternal,
		Title:  TitleInternal,
		Status: http.StatusInternalServerError,
	}

	data, err := json.Marshal(problem)
	if err != nil {
		t.Fatalf("Failed to marshal ProblemDetails: %v", err)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("Failed to unmarshal JSON: %v", err)
	}

	for _, absent := range []string{"detail", "instance", "request_id", "user_message", "retry_after", "errors"} {
		if _, ok := result[absent]; ok {
			t.Errorf("Expected %q to be omitted, got %v", absent, result[absent])
		}
	}
}

func TestProblemDetailsError(t *testing.T) {
	withDetail := &ProblemDetails{Title: "Bad Request", Detail: "metric_id is required"}
	if withDetail.Error() != "metric_id is required" {
		t.Errorf("Error() = %q", withDetail.Error())
	}

	withoutDetail := &ProblemDetails{Title: "Bad Request"}
	if withoutDetail.Error() != "Bad Request" {
		t.Errorf("Error() = %q", withoutDetail.Error())
	}
}

func TestWriteProblem(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	retryAfter := 30
	WriteProblem(c, &ProblemDetails{
		Type:       TypeInternal,
		Title:      TitleInternal,
		Status:     http.StatusInternalServerError,
		RetryAfter: &retryAfter,
	})

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d", w.Code)
	}
	if got := w.Header().Get("Content-Type"); got != ContentTypeProblemJSON {
		t.Errorf("Content-Type = %q", got)
	}
	if got := w.Header().Get("Retry-After"); got != "30" {
		t.Errorf("Retry-After = %q", got)
	}
}

func TestNewNotFoundError(t *testing.T) {
	problem := NewNotFoundError("req-1", "Metric", "abc")

	if problem.Status != http.StatusNotFound {
		t.Errorf("Status = %d", problem.Status)
	}
	if problem.Detail != "Metric with ID 'abc' was not found" {
		t.Errorf("Detail = %q", problem.Detail)
	}
	if problem.RequestID != "req-1" {
		t.Errorf("RequestID = %q", problem.RequestID)
	}
}
