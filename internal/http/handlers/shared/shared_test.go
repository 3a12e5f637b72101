package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/devlegal/internal/service"

	"github.com/gin-gonic/gin"
)

func TestRespondServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{name: "not found", err: service.ErrNotFound, wantCode: http.StatusNotFound, wantMsg: "Not found"},
		{name: "wrapped file missing", err: fmt.Errorf("delete: %w", service.ErrFileNotFound), wantCode: http.StatusNotFound, wantMsg: "File not found"},
		{name: "credentials", err: service.ErrInvalidCredentials, wantCode: http.StatusUnauthorized, wantMsg: "Invalid credentials"},
		{name: "file type", err: service.ErrFileTypeNotAllowed, wantCode: http.StatusBadRequest, wantMsg: "File type not allowed"},
		{name: "store failure", err: errors.New("pq: relation does not exist"), wantCode: http.StatusInternalServerError, wantMsg: "Failed to fetch posts"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/api/posts", nil)

			RespondServiceError(c, tc.err, "Failed to fetch posts")

			if w.Code != tc.wantCode {
				t.Fatalf("status want %d got %d", tc.wantCode, w.Code)
			}
			var body map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("unmarshal response failed: %v", err)
			}
			if body["error"] != tc.wantMsg {
				t.Fatalf("message want %q got %q", tc.wantMsg, body["error"])
			}
		})
	}
}

func TestParseIDAndPagination(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/posts?page=0&limit=500&published=true", nil)
	c.Params = gin.Params{{Key: "id", Value: "42"}, {Key: "bad", Value: "x"}}

	if id, ok := ParseID(c, "id"); !ok || id != 42 {
		t.Fatalf("expected id 42, got %d ok=%v", id, ok)
	}
	if _, ok := ParseID(c, "bad"); ok {
		t.Fatalf("non-numeric id should fail")
	}
	page, limit := ParsePagination(c)
	if page != 1 || limit != 100 {
		t.Fatalf("unexpected pagination: page=%d limit=%d", page, limit)
	}
	if published := ParseOptionalBool(c, "published"); published == nil || !*published {
		t.Fatalf("expected published=true")
	}
	if missing := ParseOptionalBool(c, "missing"); missing != nil {
		t.Fatalf("missing bool should be nil")
	}
}

func TestIdentityContext(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if CurrentIdentity(c) != nil || IsAdmin(c) {
		t.Fatalf("fresh context should be anonymous")
	}
	SetIdentity(c, &service.Identity{UserID: 1, Username: "admin", IsAdmin: true})
	if identity := CurrentIdentity(c); identity == nil || identity.Username != "admin" {
		t.Fatalf("unexpected identity: %+v", identity)
	}
	if !IsAdmin(c) {
		t.Fatalf("expected admin identity")
	}
}
