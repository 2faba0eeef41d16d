package web

import (
	"bytes"
	"html"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maksimryndin/superlists/internal/lists/domain"
)

func newRenderer(t *testing.T) Renderer {
	t.Helper()
	v, err := NewViews()
	require.NoError(t, err)
	return v
}

func renderView(t *testing.T, view string, data any) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, newRenderer(t).Render(&buf, view, data))
	return buf.String()
}

func TestHomeView(t *testing.T) {
	body := renderView(t, HomeView, HomePage{})

	assert.True(t, strings.HasPrefix(body, "<!DOCTYPE html>"))
	assert.Contains(t, body, "Start a new To-Do list")
	assert.Contains(t, body, `action="/lists/new"`)
	assert.Contains(t, body, `name="item-text"`)
	assert.Contains(t, body, `id="id_new_item"`)
	assert.NotContains(t, body, "has-error")
	assert.NotContains(t, body, "id_list_table")
}

func TestHomeViewEscapesError(t *testing.T) {
	body := renderView(t, HomeView, HomePage{Error: domain.EmptyItemMessage})

	assert.Contains(t, body, html.EscapeString(domain.EmptyItemMessage))
	assert.Contains(t, body, "You can&#39;t have an empty list item")
	assert.Contains(t, body, "has-error")
}

func TestListView(t *testing.T) {
	body := renderView(t, ListView, ListPage{
		List: domain.List{ID: 3},
		Items: []domain.Item{
			{ID: 1, ListID: 3, Text: "itemey1"},
			{ID: 2, ListID: 3, Text: "<b>itemey2</b>"},
		},
	})

	assert.Contains(t, body, "Your To-Do list")
	assert.Contains(t, body, `action="/lists/3/add-item"`)
	assert.Contains(t, body, `id="id_list_table"`)
	assert.Contains(t, body, "1: itemey1")
	assert.Contains(t, body, "2: &lt;b&gt;itemey2&lt;/b&gt;")
	assert.NotContains(t, body, "<b>itemey2</b>")
}

func TestErrorView(t *testing.T) {
	body := renderView(t, ErrorView, ErrorPage{Status: 404, Message: "List not found."})
	assert.Contains(t, body, "<h1>404</h1>")
	assert.Contains(t, body, "List not found.")
}

func TestUnknownView(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, newRenderer(t).Render(&buf, "missing.html", nil))
}

func TestInstanceMatchesRender(t *testing.T) {
	v, err := NewViews()
	require.NoError(t, err)

	page := HomePage{Error: domain.EmptyItemMessage}
	rec := httptest.NewRecorder()
	require.NoError(t, v.Instance(HomeView, page).Render(rec))

	assert.Equal(t, renderView(t, HomeView, page), rec.Body.String())
	assert.Contains(t, rec.Body.String(), "You can&#39;t have an empty list item")

	rec = httptest.NewRecorder()
	require.NoError(t, v.Instance("missing.html", nil).Render(rec))
	assert.Contains(t, rec.Body.String(), `unknown view "missing.html"`)
}

func TestCollectStatic(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "static")

	written, err := CollectStatic(dir)
	require.NoError(t, err)
	assert.Len(t, written, 2)

	js, err := os.ReadFile(filepath.Join(dir, "list.js"))
	require.NoError(t, err)
	assert.Contains(t, string(js), "has-error")
	assert.Contains(t, string(js), "keypress")

	_, err = os.Stat(filepath.Join(dir, "base.css"))
	assert.NoError(t, err)

	// collecting twice overwrites in place
	_, err = CollectStatic(dir)
	require.NoError(t, err)
}

func TestCollectStaticRequiresDir(t *testing.T) {
	_, err := CollectStatic("")
	assert.Error(t, err)
}
