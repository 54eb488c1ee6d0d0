package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"quicknotes/middleware"
	"quicknotes/services"
	"quicknotes/testutils"
	"quicknotes/usecase"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router *gin.Engine
	users  *testutils.MemoryUsers
	notes  *testutils.MemoryNotes
}

func newTestServer(dev bool) *testServer {
	users := testutils.NewMemoryUsers()
	notes := testutils.NewMemoryNotes()

	userService := usecase.NewUserService(users, nil)
	notesService := usecase.NewNotesService(notes)
	notesService.Now = testutils.NewStepClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Second).Now

	sessions := services.NewSessionStore("userId", 720*time.Hour, false, nil, userService)
	authHandler := NewAuthHandler(sessions, dev)
	notesHandler := NewNoteHandler(notesService, dev)

	router := gin.New()
	router.Use(middleware.RequestTracingMiddleware())

	api := router.Group("/api")
	api.Use(middleware.SessionMiddleware(sessions))
	{
		api.POST("/auth", authHandler.Login)
		api.GET("/auth", authHandler.Current)
		api.DELETE("/auth", authHandler.Logout)

		protected := api.Group("/notes")
		protected.Use(middleware.RequireSession())
		protected.GET("", notesHandler.SearchNotes)
		protected.POST("", notesHandler.CreateNote)
		protected.PATCH("", notesHandler.UpdateNote)
		protected.DELETE("", notesHandler.DeleteNote)
	}

	return &testServer{router: router, users: users, notes: notes}
}

func (s *testServer) do(method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// login signs in and returns the session cookie.
func (s *testServer) login(t *testing.T, email string) *http.Cookie {
	t.Helper()
	w := s.do(http.MethodPost, "/api/auth", `{"email":"`+email+`"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", w.Code, w.Body.String())
	}
	cookie := sessionCookie(w)
	if cookie == nil {
		t.Fatal("login did not set a session cookie")
	}
	return cookie
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == "userId" {
			return c
		}
	}
	return nil
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("Failed to parse response %q: %v", w.Body.String(), err)
	}
	return out
}

type errorBody struct {
	Error string `json:"error"`
}
