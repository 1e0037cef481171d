package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/mobilehub-pos/pkg/apperror"
)

type decoded struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Reason  string `json:"reason"`
	Errors  []struct {
		Field string `json:"field"`
	} `json:"errors"`
	Meta struct {
		RequestID string `json:"request_id"`
	} `json:"meta"`
}

func render(t *testing.T, fn func(c *gin.Context)) (*httptest.ResponseRecorder, decoded) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set("request_id", "req-1")
	fn(c)
	c.Writer.WriteHeaderNow()

	var body decoded
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode %q: %v", w.Body.String(), err)
		}
	}
	return w, body
}

func TestErrorStatusAndReason(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   int
		reason string
	}{
		{"not found", apperror.NewNotFoundError("Record"), http.StatusNotFound, apperror.ReasonNotFound},
		{"missing field", apperror.NewMissingFieldError("name"), http.StatusUnprocessableEntity, apperror.ReasonMissingField},
		{"conflict", apperror.ErrConflict, http.StatusConflict, ""},
		{"unclassified", errors.New("disk on fire"), http.StatusInternalServerError, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := render(t, func(c *gin.Context) { Error(c, tt.err) })
			if w.Code != tt.code {
				t.Errorf("status = %d, want %d", w.Code, tt.code)
			}
			if body.Success || body.Reason != tt.reason {
				t.Errorf("unexpected body %+v", body)
			}
			if body.Meta.RequestID != "req-1" {
				t.Errorf("request id = %q", body.Meta.RequestID)
			}
		})
	}
}

func TestUnclassifiedErrorHidesDetails(t *testing.T) {
	_, body := render(t, func(c *gin.Context) { Error(c, errors.New("pq: password authentication failed")) })
	if body.Message != apperror.ErrInternalServer.Message {
		t.Errorf("message = %q, want generic", body.Message)
	}
}

func TestFieldErrorsUseValidationShape(t *testing.T) {
	err := apperror.NewValidationError([]apperror.FieldError{{Field: "date", Message: "bad"}})
	w, body := render(t, func(c *gin.Context) { Error(c, err) })
	if w.Code != http.StatusUnprocessableEntity || body.Message != "Validation failed" {
		t.Fatalf("unexpected %d %+v", w.Code, body)
	}
	if len(body.Errors) != 1 || body.Errors[0].Field != "date" {
		t.Errorf("unexpected errors %+v", body.Errors)
	}
}

func TestBadRequestAndNoContent(t *testing.T) {
	w, body := render(t, func(c *gin.Context) { BadRequest(c, "Invalid ID format") })
	if w.Code != http.StatusBadRequest || body.Reason != apperror.ReasonBadRequest || body.Message != "Invalid ID format" {
		t.Errorf("unexpected %d %+v", w.Code, body)
	}

	w, _ = render(t, func(c *gin.Context) { NoContent(c) })
	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", w.Code)
	}
}
