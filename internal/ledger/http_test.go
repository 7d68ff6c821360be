package ledger

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inovalink/inovalink-backend/internal/auth"
)

func newTestRouter(l *Ledger, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(auth.CtxFirebaseUID, "uid-1")
		c.Set(auth.CtxEmail, "biz@x.com")
		c.Set(auth.CtxDisplayName, "Biz Co")
		c.Set(auth.CtxRole, role)
	})
	Register(r.Group("/projects"), l)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestCreateProject_Handler(t *testing.T) {
	l := New(nil)
	r := newTestRouter(l, "business")

	rr := doJSON(t, r, "POST", "/projects", gin.H{
		"title":       "T",
		"description": "D",
		"budget":      "$100",
		"deadline":    "2024-03-01",
		"skills":      []string{"Go"},
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp struct {
		OK      bool     `json:"ok"`
		Project *Project `json:"project"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.Equal(t, "biz@x.com", resp.Project.PostedBy)
	assert.Equal(t, StatusOpen, resp.Project.Status)
	assert.Equal(t, 1, l.Len())
}

func TestCreateProject_RequiresBusinessRole(t *testing.T) {
	l := New(nil)
	r := newTestRouter(l, "freelancer")

	rr := doJSON(t, r, "POST", "/projects", gin.H{
		"title":       "T",
		"description": "D",
		"budget":      "$100",
		"deadline":    "2024-03-01",
	})
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, 0, l.Len())
}

func TestCreateProject_MissingField(t *testing.T) {
	l := New(nil)
	r := newTestRouter(l, "business")

	rr := doJSON(t, r, "POST", "/projects", gin.H{
		"title":       "  ",
		"description": "D",
		"budget":      "$100",
		"deadline":    "2024-03-01",
	})
	require.Equal(t, http.StatusBadRequest, rr.Code)

	var resp struct {
		Field string `json:"field"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "title", resp.Field)
}

func TestListAndGetProject_Handler(t *testing.T) {
	l := New(nil)
	p, err := l.AddProject(ProjectInput{
		Title: "T", Description: "D", Budget: "$1", Deadline: "2024-03-01", PostedBy: "biz@x.com",
	})
	require.NoError(t, err)

	r := newTestRouter(l, "freelancer")

	rr := doJSON(t, r, "GET", "/projects", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var listResp struct {
		Projects []*Project `json:"projects"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &listResp))
	require.Len(t, listResp.Projects, 1)

	rr = doJSON(t, r, "GET", "/projects/"+p.ID, nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, r, "GET", "/projects/missing", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestAddReply_Handler(t *testing.T) {
	l := New(nil)
	p, err := l.AddProject(ProjectInput{
		Title: "T", Description: "D", Budget: "$1", Deadline: "2024-03-01", PostedBy: "biz@x.com",
	})
	require.NoError(t, err)

	r := newTestRouter(l, "freelancer")

	rr := doJSON(t, r, "POST", "/projects/"+p.ID+"/replies", gin.H{"message": "Hi"})
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp struct {
		Reply *Reply `json:"reply"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "uid-1", resp.Reply.UserID)
	assert.Equal(t, "Biz Co", resp.Reply.UserName)
	assert.False(t, resp.Reply.IsBusiness)

	got, err := l.FindProject(p.ID)
	require.NoError(t, err)
	assert.Len(t, got.Replies, 1)
}

func TestAddReply_Handler_NotFound(t *testing.T) {
	l := New(nil)
	r := newTestRouter(l, "freelancer")

	rr := doJSON(t, r, "POST", "/projects/missing/replies", gin.H{"message": "Hi"})
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestAddReply_Handler_EmptyMessage(t *testing.T) {
	l := New(nil)
	p, err := l.AddProject(ProjectInput{
		Title: "T", Description: "D", Budget: "$1", Deadline: "2024-03-01", PostedBy: "biz@x.com",
	})
	require.NoError(t, err)

	r := newTestRouter(l, "freelancer")

	rr := doJSON(t, r, "POST", "/projects/"+p.ID+"/replies", gin.H{"message": "  "})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
