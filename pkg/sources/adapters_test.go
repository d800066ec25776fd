package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGitHubSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search/issues", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "created", q.Get("sort"))
		assert.Equal(t, "desc", q.Get("order"))
		assert.Equal(t, "3", q.Get("per_page"))
		assert.Contains(t, q.Get("q"), "type:issue")

		w.Write([]byte(`{"items":[
			{"number":17,"title":"panic in decoder","html_url":"https://github.com/x/y/issues/17","state":"closed","comments":4},
			{"number":18,"title":"decoder hangs","html_url":"https://github.com/x/y/issues/18","state":"open","comments":1}
		]}`))
	}))
	defer srv.Close()

	gh := NewGitHub(srv.URL, nil)
	items, err := gh.Search(context.Background(), Query{Keywords: "panic in decoder", Limit: 3})
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "17", items[0].ID)
	assert.True(t, items[0].Accepted, "closed issue maps to accepted")
	assert.False(t, items[1].Accepted)
	assert.Equal(t, "https://github.com/x/y/issues/17", items[0].Link)
}

func TestRedditSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/r/golang/search.json", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "1", q.Get("restrict_sr"))
		assert.Equal(t, "new", q.Get("sort"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))

		w.Write([]byte(`{"data":{"children":[
			{"data":{"id":"abc","title":"weird nil pointer","permalink":"/r/golang/comments/abc/","score":12}}
		]}}`))
	}))
	defer srv.Close()

	rd := NewReddit(srv.URL, nil)
	items, err := rd.Search(context.Background(), Query{Keywords: "nil pointer", Subreddit: "golang"})
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, "weird nil pointer", items[0].Title)
	assert.Equal(t, srv.URL+"/r/golang/comments/abc/", items[0].Link)
	assert.Equal(t, 12, items[0].Score)
}

func TestRedditDefaultSubreddit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/r/programming/search.json", r.URL.Path)
		w.Write([]byte(`{"data":{"children":[]}}`))
	}))
	defer srv.Close()

	rd := NewReddit(srv.URL, nil)
	_, err := rd.Search(context.Background(), Query{Keywords: "anything"})
	require.NoError(t, err)
}

func TestSourceUnavailableWrapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusForbidden)
	}))
	defer srv.Close()

	gh := NewGitHub(srv.URL, nil)
	_, err := gh.Search(context.Background(), Query{Keywords: "x"})
	require.ErrorIs(t, err, ErrSourceUnavailable)
}
