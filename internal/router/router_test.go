package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/school-backend/internal/config"
	"github.com/stemsi/school-backend/internal/handler"
	"github.com/stemsi/school-backend/internal/middleware"
	"github.com/stemsi/school-backend/internal/model"
	"github.com/stemsi/school-backend/internal/repository/memstore"
	"github.com/stemsi/school-backend/internal/response"
	"github.com/stemsi/school-backend/internal/service"
	"github.com/stemsi/school-backend/internal/validator"
)

func init() {
	validator.Setup()
}

func newTestRouter(t *testing.T, limiter middleware.Limiter) *gin.Engine {
	t.Helper()
	cfg := &config.Config{GinMode: gin.TestMode, MaxPageSize: 100}
	log := zerolog.Nop()
	store := memstore.New()

	courses := service.NewCourseService(store.Courses(), log)
	students := service.NewStudentService(store.Students(), log)
	enrollments := service.NewEnrollmentService(store.Enrollments(), store.Courses(), store.Students(), service.DefaultEnrollmentLimits, log)
	listing := service.NewListingService(store.Courses(), store.Students(), cfg.MaxPageSize)

	return SetupRouter(&Handlers{
		Course:  handler.NewCourseHandler(courses, enrollments, listing),
		Student: handler.NewStudentHandler(students, enrollments, listing),
		System:  handler.NewSystemHandler(nil, log),
	}, limiter, cfg, log)
}

func call(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createdID(t *testing.T, w *httptest.ResponseRecorder) int64 {
	t.Helper()
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var v struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatal(err)
	}
	return v.ID
}

func TestUnenrolledFilters(t *testing.T) {
	r := newTestRouter(t, nil)

	a := createdID(t, call(t, r, http.MethodPost, "/courses", gin.H{"name": "A"}))
	b := createdID(t, call(t, r, http.MethodPost, "/courses", gin.H{"name": "B"}))
	s := createdID(t, call(t, r, http.MethodPost, "/students", gin.H{"firstName": "S", "lastName": "T", "emailAddress": "s@example.com"}))

	if w := call(t, r, http.MethodPost, fmt.Sprintf("/courses/%d/enroll", a), gin.H{"studentId": s}); w.Code != http.StatusCreated {
		t.Fatalf("enroll = %d %s", w.Code, w.Body.String())
	}

	var courses model.Page[model.Course]
	w := call(t, r, http.MethodGet, "/courses?noStudentsOnly=true", nil)
	if err := json.Unmarshal(w.Body.Bytes(), &courses); err != nil {
		t.Fatal(err)
	}
	if len(courses.Content) != 1 || courses.Content[0].ID != b {
		t.Fatalf("unenrolled courses = %v, want [%d]", courses.Content, b)
	}

	var students model.Page[model.Student]
	w = call(t, r, http.MethodGet, "/students?noCoursesOnly=true", nil)
	if err := json.Unmarshal(w.Body.Bytes(), &students); err != nil {
		t.Fatal(err)
	}
	if len(students.Content) != 0 || students.Pagination.TotalElements != 0 {
		t.Fatalf("unenrolled students = %+v", students)
	}

	// Deleting the only course frees the student.
	if w := call(t, r, http.MethodDelete, fmt.Sprintf("/courses/%d", a), nil); w.Code != http.StatusNoContent {
		t.Fatalf("delete = %d", w.Code)
	}
	w = call(t, r, http.MethodGet, "/students?noCoursesOnly=true", nil)
	if err := json.Unmarshal(w.Body.Bytes(), &students); err != nil {
		t.Fatal(err)
	}
	if len(students.Content) != 1 || students.Content[0].ID != s {
		t.Fatalf("after course delete = %v", students.Content)
	}
}

func TestCommonHeaders(t *testing.T) {
	r := newTestRouter(t, nil)

	w := call(t, r, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("health = %d", w.Code)
	}
	if w.Header().Get(response.HeaderRequestID) == "" {
		t.Fatal("missing request id header")
	}
	if w.Header().Get("Cache-Control") != "no-store" {
		t.Fatalf("Cache-Control = %q", w.Header().Get("Cache-Control"))
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(response.HeaderRequestID, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(response.HeaderRequestID); got != "abc-123" {
		t.Fatalf("request id = %q, want abc-123", got)
	}
}

func TestUnknownRoute(t *testing.T) {
	r := newTestRouter(t, nil)

	w := call(t, r, http.MethodGet, "/instructors", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["code"] != string(response.ErrNotFound) {
		t.Fatalf("body = %v", body)
	}
}

func TestPanicReturnsGenericBody(t *testing.T) {
	r := newTestRouter(t, nil)
	r.GET("/crash", func(*gin.Context) { panic("unexpected") })

	for _, enc := range []string{"", "gzip, deflate, br"} {
		req := httptest.NewRequest(http.MethodGet, "/crash", nil)
		req.Header.Set("Accept-Encoding", enc)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("accept %q: status = %d", enc, w.Code)
		}
		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("accept %q: body %q: %v", enc, w.Body.String(), err)
		}
		if body["code"] != string(response.ErrInternal) || body["message"] != "Internal server error" {
			t.Fatalf("accept %q: body = %v", enc, body)
		}
	}
}

func TestRateLimitApplied(t *testing.T) {
	limiter := middleware.NewMemoryLimiter(1, time.Minute)
	defer limiter.Close()
	r := newTestRouter(t, limiter)

	if w := call(t, r, http.MethodGet, "/courses", nil); w.Code != http.StatusOK {
		t.Fatalf("first = %d", w.Code)
	}
	if w := call(t, r, http.MethodGet, "/courses", nil); w.Code != http.StatusTooManyRequests {
		t.Fatalf("second = %d, want 429", w.Code)
	}
}
