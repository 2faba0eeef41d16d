package http

import (
	"bytes"
	"context"
	"errors"
	"html"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maksimryndin/superlists/internal/lists/domain"
	"github.com/maksimryndin/superlists/internal/lists/repository"
	"github.com/maksimryndin/superlists/internal/lists/service"
	"github.com/maksimryndin/superlists/internal/web"
)

func setupRouter(t *testing.T, repo repository.Repository) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	views, err := web.NewViews()
	require.NoError(t, err)

	r := gin.New()
	r.HTMLRender = views
	New(service.NewListService(repo)).Register(r)
	return r
}

func do(r *gin.Engine, method, path string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func itemForm(text string) url.Values {
	return url.Values{"item-text": {text}}
}

func stats(t *testing.T, repo repository.Repository) domain.Stats {
	t.Helper()
	s, err := repo.Stats(context.Background())
	require.NoError(t, err)
	return s
}

func TestHomePage(t *testing.T) {
	r := setupRouter(t, repository.NewMemoryRepository())

	rr := do(r, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	views, err := web.NewViews()
	require.NoError(t, err)
	var expected bytes.Buffer
	require.NoError(t, views.Render(&expected, web.HomeView, web.HomePage{}))
	assert.Equal(t, expected.String(), rr.Body.String())
}

func TestListView(t *testing.T) {
	t.Run("uses list template", func(t *testing.T) {
		repo := repository.NewMemoryRepository()
		list, _, err := repo.CreateList(context.Background(), "itemey1")
		require.NoError(t, err)
		r := setupRouter(t, repo)

		rr := do(r, http.MethodGet, domain.ListPath(list.ID), nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Your To-Do list")
		assert.Contains(t, rr.Body.String(), `action="/lists/1/add-item"`)
	})

	t.Run("displays only items for that list", func(t *testing.T) {
		repo := repository.NewMemoryRepository()
		ctx := context.Background()
		correct, _, err := repo.CreateList(ctx, "itemey1")
		require.NoError(t, err)
		_, err = repo.AddItem(ctx, correct.ID, "itemey2")
		require.NoError(t, err)
		other, _, err := repo.CreateList(ctx, "other itemey1")
		require.NoError(t, err)
		_, err = repo.AddItem(ctx, other.ID, "other itemey2")
		require.NoError(t, err)
		r := setupRouter(t, repo)

		rr := do(r, http.MethodGet, domain.ListPath(correct.ID), nil)
		require.Equal(t, http.StatusOK, rr.Code)
		body := rr.Body.String()
		assert.Contains(t, body, "itemey1")
		assert.Contains(t, body, "itemey2")
		assert.NotContains(t, body, "other itemey1")
		assert.NotContains(t, body, "other itemey2")
	})

	t.Run("repeated reads are identical", func(t *testing.T) {
		repo := repository.NewMemoryRepository()
		list, _, err := repo.CreateList(context.Background(), "same")
		require.NoError(t, err)
		r := setupRouter(t, repo)

		first := do(r, http.MethodGet, domain.ListPath(list.ID), nil)
		second := do(r, http.MethodGet, domain.ListPath(list.ID), nil)
		assert.Equal(t, first.Body.String(), second.Body.String())
	})

	t.Run("unknown list is 404", func(t *testing.T) {
		r := setupRouter(t, repository.NewMemoryRepository())

		for _, path := range []string{"/lists/1/", "/lists/abc/", "/lists/0/", "/lists/-3/"} {
			rr := do(r, http.MethodGet, path, nil)
			assert.Equal(t, http.StatusNotFound, rr.Code, path)
		}
	})
}

func TestNewList(t *testing.T) {
	t.Run("saves a POST request", func(t *testing.T) {
		repo := repository.NewMemoryRepository()
		r := setupRouter(t, repo)

		do(r, http.MethodPost, "/lists/new", itemForm("A new list item"))

		assert.Equal(t, domain.Stats{Lists: 1, Items: 1}, stats(t, repo))
		items, err := repo.ListItems(context.Background(), 1)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "A new list item", items[0].Text)
	})

	t.Run("redirects after POST", func(t *testing.T) {
		r := setupRouter(t, repository.NewMemoryRepository())

		rr := do(r, http.MethodPost, "/lists/new", itemForm("A new list item"))
		assert.Equal(t, http.StatusFound, rr.Code)
		assert.Equal(t, "/lists/1/", rr.Header().Get("Location"))

		follow := do(r, http.MethodGet, rr.Header().Get("Location"), nil)
		assert.Equal(t, http.StatusOK, follow.Code)
		assert.Contains(t, follow.Body.String(), "1: A new list item")
	})

	t.Run("each new list gets its own url", func(t *testing.T) {
		r := setupRouter(t, repository.NewMemoryRepository())

		first := do(r, http.MethodPost, "/lists/new", itemForm("one"))
		second := do(r, http.MethodPost, "/lists/new", itemForm("two"))
		assert.Equal(t, "/lists/1/", first.Header().Get("Location"))
		assert.Equal(t, "/lists/2/", second.Header().Get("Location"))
	})

	for _, text := range []string{"", "   "} {
		t.Run("validation errors go back to home page ["+text+"]", func(t *testing.T) {
			repo := repository.NewMemoryRepository()
			r := setupRouter(t, repo)

			rr := do(r, http.MethodPost, "/lists/new", itemForm(text))
			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Contains(t, rr.Body.String(), "Start a new To-Do list")
			assert.Contains(t, rr.Body.String(), html.EscapeString("You can't have an empty list item"))
			assert.Equal(t, domain.Stats{}, stats(t, repo))
		})
	}

	t.Run("missing field counts as empty", func(t *testing.T) {
		repo := repository.NewMemoryRepository()
		r := setupRouter(t, repo)

		rr := do(r, http.MethodPost, "/lists/new", url.Values{})
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, domain.Stats{}, stats(t, repo))
	})
}

func TestAddItem(t *testing.T) {
	t.Run("saves to an existing list", func(t *testing.T) {
		repo := repository.NewMemoryRepository()
		ctx := context.Background()
		correct, _, err := repo.CreateList(ctx, "first")
		require.NoError(t, err)
		other, _, err := repo.CreateList(ctx, "other")
		require.NoError(t, err)
		r := setupRouter(t, repo)

		do(r, http.MethodPost, "/lists/1/add-item", itemForm("A new item for an existing list"))

		items, err := repo.ListItems(ctx, correct.ID)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "A new item for an existing list", items[1].Text)

		otherItems, err := repo.ListItems(ctx, other.ID)
		require.NoError(t, err)
		assert.Len(t, otherItems, 1)
		assert.Equal(t, int64(2), stats(t, repo).Lists)
	})

	t.Run("redirects to list view", func(t *testing.T) {
		repo := repository.NewMemoryRepository()
		ctx := context.Background()
		_, _, err := repo.CreateList(ctx, "first")
		require.NoError(t, err)
		_, _, err = repo.CreateList(ctx, "other")
		require.NoError(t, err)
		r := setupRouter(t, repo)

		rr := do(r, http.MethodPost, "/lists/2/add-item", itemForm("A new item for an existing list"))
		assert.Equal(t, http.StatusFound, rr.Code)
		assert.Equal(t, "/lists/2/", rr.Header().Get("Location"))
	})

	t.Run("blank item shows error on the list page", func(t *testing.T) {
		repo := repository.NewMemoryRepository()
		_, _, err := repo.CreateList(context.Background(), "keep me")
		require.NoError(t, err)
		r := setupRouter(t, repo)

		rr := do(r, http.MethodPost, "/lists/1/add-item", itemForm(" "))
		assert.Equal(t, http.StatusOK, rr.Code)
		body := rr.Body.String()
		assert.Contains(t, body, "Your To-Do list")
		assert.Contains(t, body, "1: keep me")
		assert.Contains(t, body, "You can&#39;t have an empty list item")
		assert.Equal(t, domain.Stats{Lists: 1, Items: 1}, stats(t, repo))
	})

	t.Run("unknown list is 404", func(t *testing.T) {
		repo := repository.NewMemoryRepository()
		r := setupRouter(t, repo)

		rr := do(r, http.MethodPost, "/lists/9/add-item", itemForm("lost"))
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, domain.Stats{}, stats(t, repo))
	})
}

// brokenRepo fails every call after construction.
type brokenRepo struct {
	*repository.MemoryRepository
}

func (brokenRepo) CreateList(context.Context, string) (*domain.List, *domain.Item, error) {
	return nil, nil, errors.New("store unavailable")
}

func (brokenRepo) GetList(context.Context, int64) (*domain.List, error) {
	return nil, errors.New("store unavailable")
}

func TestStoreFailures(t *testing.T) {
	r := setupRouter(t, brokenRepo{repository.NewMemoryRepository()})

	rr := do(r, http.MethodPost, "/lists/new", itemForm("x"))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "Something went wrong.")

	rr = do(r, http.MethodGet, "/lists/1/", nil)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	rr = do(r, http.MethodPost, "/lists/1/add-item", itemForm("x"))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
