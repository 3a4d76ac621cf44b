package validator

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

type payload struct {
	Name      string `json:"name" binding:"required"`
	StudentID int64  `json:"studentId" binding:"omitempty,min=1"`
}

type query struct {
	Page int  `form:"page,default=0" binding:"min=0"`
	Size int  `form:"size,default=10" binding:"min=1"`
	Only bool `form:"only"`
}

func init() {
	gin.SetMode(gin.TestMode)
	Setup()
}

func bindBody(t *testing.T, body string) map[string]string {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	var p payload
	return Bind(c, &p)
}

func TestBindUsesJSONFieldNames(t *testing.T) {
	fields := bindBody(t, `{}`)
	if msg, ok := fields["name"]; !ok || !strings.Contains(msg, "required") {
		t.Fatalf("fields = %v, want name required", fields)
	}
}

func TestBindReportsTypeErrors(t *testing.T) {
	fields := bindBody(t, `{"name":"x","studentId":"seven"}`)
	if _, ok := fields["studentId"]; !ok {
		t.Fatalf("fields = %v, want studentId", fields)
	}
}

func TestBindEmptyBody(t *testing.T) {
	fields := bindBody(t, ``)
	if fields["detail"] != "request body is required" {
		t.Fatalf("fields = %v", fields)
	}
}

func TestBindQueryDefaults(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?only=true", nil)

	var q query
	if fields := BindQuery(c, &q); fields != nil {
		t.Fatalf("BindQuery = %v", fields)
	}
	if q.Page != 0 || q.Size != 10 || !q.Only {
		t.Fatalf("query = %+v", q)
	}

	c.Request = httptest.NewRequest(http.MethodGet, "/?size=0", nil)
	q = query{}
	if fields := BindQuery(c, &q); fields["size"] == "" {
		t.Fatalf("fields = %v, want size error", fields)
	}
}
