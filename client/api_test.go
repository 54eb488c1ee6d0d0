package client

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"sync"
	"testing"

	"quicknotes/dto"
	"quicknotes/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type recordedRequest struct {
	Method string
	Query  string
	Body   map[string]interface{}
	Cookie string
}

// fakeServer answers the notes API with canned data and records what it saw.
func fakeServer(t *testing.T) (*httptest.Server, func() []recordedRequest) {
	t.Helper()
	var (
		mu   sync.Mutex
		seen []recordedRequest
	)

	record := func(c *gin.Context) recordedRequest {
		r := recordedRequest{Method: c.Request.Method, Query: c.Request.URL.RawQuery}
		r.Cookie, _ = c.Cookie("userId")
		if c.Request.ContentLength > 0 {
			_ = c.ShouldBindJSON(&r.Body)
		}
		mu.Lock()
		seen = append(seen, r)
		mu.Unlock()
		return r
	}
	requests := func() []recordedRequest {
		mu.Lock()
		defer mu.Unlock()
		return append([]recordedRequest(nil), seen...)
	}

	router := gin.New()
	router.POST("/api/auth", func(c *gin.Context) {
		body := record(c).Body
		if body["email"] == "" || body["email"] == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
			return
		}
		c.SetCookie("userId", "u1", 3600, "/", "", false, true)
		c.JSON(http.StatusOK, gin.H{"user": gin.H{"id": "u1", "email": body["email"], "name": "a"}})
	})
	router.GET("/api/auth", func(c *gin.Context) {
		if record(c).Cookie == "" {
			c.JSON(http.StatusOK, gin.H{"user": nil})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": gin.H{"id": "u1", "email": "a@x.com", "name": "a"}})
	})
	router.DELETE("/api/auth", func(c *gin.Context) {
		record(c)
		c.SetCookie("userId", "", -1, "/", "", false, true)
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	router.GET("/api/notes", func(c *gin.Context) {
		if record(c).Cookie == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		c.JSON(http.StatusOK, []gin.H{{"id": "n1", "title": "T", "content": "c", "tags": []string{}}})
	})
	router.POST("/api/notes", func(c *gin.Context) {
		body := record(c).Body
		c.JSON(http.StatusCreated, gin.H{"id": "n2", "title": body["title"], "content": body["content"], "tags": body["tags"]})
	})
	router.PATCH("/api/notes", func(c *gin.Context) {
		body := record(c).Body
		c.JSON(http.StatusOK, body)
	})
	router.DELETE("/api/notes", func(c *gin.Context) {
		switch record(c).Body["id"] {
		case "gone":
			c.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
		case "broken":
			c.JSON(http.StatusInternalServerError, gin.H{"error": "secret detail"})
		default:
			c.Status(http.StatusNoContent)
		}
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, requests
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return New(baseURL, &http.Client{Jar: jar})
}

func TestClientSession(t *testing.T) {
	srv, _ := fakeServer(t)
	api := newTestClient(t, srv.URL)
	ctx := context.Background()

	user, err := api.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)

	user, err = api.Login(ctx, "a@x.com", "")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.UserID)

	user, err = api.CurrentUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "a@x.com", user.Email)

	require.NoError(t, api.Logout(ctx))
	user, err = api.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestClientLoginSurfacesServerMessage(t *testing.T) {
	srv, _ := fakeServer(t)
	api := newTestClient(t, srv.URL)

	_, err := api.Login(context.Background(), "", "")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Email is required", apiErr.Message)
}

func TestClientFetchNotes(t *testing.T) {
	srv, seen := fakeServer(t)
	api := newTestClient(t, srv.URL)
	ctx := context.Background()

	_, err := api.FetchNotes(ctx, "", nil)
	assert.EqualError(t, err, "Failed to fetch notes")

	_, err = api.Login(ctx, "a@x.com", "")
	require.NoError(t, err)

	notes, err := api.FetchNotes(ctx, "milk run", []string{"a", "b"})
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "n1", notes[0].ID)

	all := seen()
	last := all[len(all)-1]
	assert.Equal(t, "q=milk+run&tags=a%2Cb", last.Query)
}

func TestClientCreateAndUpdate(t *testing.T) {
	srv, seen := fakeServer(t)
	api := newTestClient(t, srv.URL)
	ctx := context.Background()

	created, err := api.CreateNote(ctx, dto.CreateNoteRequest{Title: "T", Content: "c"})
	require.NoError(t, err)
	assert.Equal(t, "n2", created.ID)
	assert.Equal(t, []interface{}{}, seen()[0].Body["tags"])

	updated, err := api.UpdateNote(ctx, model.Note{ID: "n2", Title: "New", Content: "Body"})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Title)

	body := seen()[1].Body
	assert.Equal(t, "n2", body["id"])
	assert.Equal(t, "New", body["title"])
	assert.Equal(t, "Body", body["content"])
	assert.Equal(t, []interface{}{}, body["tags"])
	assert.NotContains(t, body, "userId")
}

func TestClientDeleteNote(t *testing.T) {
	srv, _ := fakeServer(t)
	api := newTestClient(t, srv.URL)
	ctx := context.Background()

	assert.NoError(t, api.DeleteNote(ctx, "n1"))
	assert.NoError(t, api.DeleteNote(ctx, "gone"))

	err := api.DeleteNote(ctx, "broken")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Failed to delete note", apiErr.Message)

	assert.Error(t, api.DeleteNote(ctx, ""))
}
