package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelist/reelist/internal/cache"
	"github.com/reelist/reelist/internal/domain"
	"github.com/reelist/reelist/internal/log"
	"github.com/reelist/reelist/internal/service"
	"github.com/reelist/reelist/internal/store"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st, err := store.New(filepath.Join(t.TempDir(), "reelist.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	ctx := context.Background()
	entries := []domain.CatalogueEntry{
		{ContentID: "movie-001", ContentType: domain.ContentTypeMovie, Title: "Heat", Genres: []string{"Crime", "Thriller"}},
		{ContentID: "movie-002", ContentType: domain.ContentTypeMovie, Title: "Ronin", Genres: []string{"Action"}},
		{ContentID: "show-001", ContentType: domain.ContentTypeShow, Title: "Deadwood", Genres: []string{"Western"}},
	}
	for _, e := range entries {
		require.NoError(t, st.PutCatalogueEntry(ctx, e))
	}

	pages := cache.New[domain.ListPage](cache.Config{TTL: time.Minute, MaxItems: 64})
	svc := service.NewMyListService(st, st, pages, log.NullLogger())
	return NewRouter(svc, log.NullLogger())
}

func do(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error.Code
}

// TestScenario walks the add/re-add/paginate/remove/re-remove flow end to end.
func TestScenario(t *testing.T) {
	router := newTestRouter(t)

	// Add a movie.
	w := do(router, http.MethodPost, "/api/v1/users/user-123/list",
		`{"contentId":"movie-001","contentType":"Movie"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created domain.ListItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "user-123", created.UserID)
	assert.Equal(t, "movie-001", created.ContentID)
	assert.Equal(t, domain.ContentTypeMovie, created.ContentType)
	assert.Equal(t, "Heat", created.Title)
	assert.False(t, created.AddedAt.IsZero())

	// Re-add the same pair.
	w = do(router, http.MethodPost, "/api/v1/users/user-123/list",
		`{"contentId":"movie-001","contentType":"Movie"}`)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "already_in_list", errorCode(t, w))

	// A second item, then page with limit=1.
	w = do(router, http.MethodPost, "/api/v1/users/user-123/list",
		`{"contentId":"movie-002","contentType":"Movie"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(router, http.MethodGet, "/api/v1/users/user-123/list?limit=1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var page domain.ListPage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page.Items, 1)
	require.NotEmpty(t, page.NextCursor)

	// Follow the cursor; the second page is the last one.
	w = do(router, http.MethodGet,
		"/api/v1/users/user-123/list?limit=1&cursor="+url.QueryEscape(page.NextCursor), "")
	require.Equal(t, http.StatusOK, w.Code)

	var second domain.ListPage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))
	require.Len(t, second.Items, 1)
	assert.Empty(t, second.NextCursor)
	assert.NotEqual(t, page.Items[0].ContentID, second.Items[0].ContentID)

	// Remove, then remove again.
	w = do(router, http.MethodDelete, "/api/v1/users/user-123/list/movie-001", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(router, http.MethodDelete, "/api/v1/users/user-123/list/movie-001", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_in_list", errorCode(t, w))
}

func TestListLimitTooLarge(t *testing.T) {
	router := newTestRouter(t)

	w := do(router, http.MethodGet, "/api/v1/users/user-123/list?limit=500", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "limit_too_large", errorCode(t, w))
}

func TestListNonNumericLimit(t *testing.T) {
	router := newTestRouter(t)

	w := do(router, http.MethodGet, "/api/v1/users/user-123/list?limit=many", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "limit_too_large", errorCode(t, w))
}

func TestListInvalidCursor(t *testing.T) {
	router := newTestRouter(t)

	w := do(router, http.MethodGet, "/api/v1/users/user-123/list?cursor=not-base64", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_cursor", errorCode(t, w))
}

func TestAddUnknownContent(t *testing.T) {
	router := newTestRouter(t)

	w := do(router, http.MethodPost, "/api/v1/users/user-123/list",
		`{"contentId":"movie-404","contentType":"Movie"}`)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "content_not_found", errorCode(t, w))
}

func TestAddInvalidContentType(t *testing.T) {
	router := newTestRouter(t)

	w := do(router, http.MethodPost, "/api/v1/users/user-123/list",
		`{"contentId":"movie-001","contentType":"Documentary"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_content_type", errorCode(t, w))
}

func TestAddMissingBodyFields(t *testing.T) {
	router := newTestRouter(t)

	w := do(router, http.MethodPost, "/api/v1/users/user-123/list", `{"contentId":"movie-001"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_request", errorCode(t, w))
}

func TestSearchEndpoint(t *testing.T) {
	router := newTestRouter(t)

	for _, body := range []string{
		`{"contentId":"movie-001","contentType":"Movie"}`,
		`{"contentId":"show-001","contentType":"Show"}`,
	} {
		w := do(router, http.MethodPost, "/api/v1/users/user-123/list", body)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := do(router, http.MethodGet, "/api/v1/users/user-123/list/search?q=deadwood", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Items []domain.ListItem `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Items, 1)
	assert.Equal(t, "Deadwood", body.Items[0].Title)
}

func TestRequestIDHeader(t *testing.T) {
	router := newTestRouter(t)

	w := do(router, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
