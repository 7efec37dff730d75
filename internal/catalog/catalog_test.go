package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions(baseURL string) Options {
	return Options{
		BaseURL:          baseURL,
		APIKey:           "test-key",
		Language:         "tr-TR",
		RateLimit:        1000,
		RateBurst:        1000,
		InitialDelay:     time.Millisecond,
		MaxDelay:         5 * time.Millisecond,
		FailureThreshold: 100,
	}
}

func TestTMDBClient_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/movie", r.URL.Path)
		assert.Equal(t, "inception", r.URL.Query().Get("query"))
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "tr-TR", r.URL.Query().Get("language"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"page":1,"results":[
			{"id":27205,"title":"Inception","release_date":"2010-07-15","poster_path":"/p.jpg","vote_average":8.4},
			{"id":1,"title":"Undated","release_date":"","poster_path":""}
		]}`))
	}))
	defer srv.Close()

	items, err := NewTMDBClient(testOptions(srv.URL)).Search(context.Background(), "inception")
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, Item{
		ID:        "27205",
		Type:      KindMovie,
		Title:     "Inception",
		Year:      2010,
		PosterURL: "https://image.tmdb.org/t/p/w500/p.jpg",
		Rating:    8.4,
	}, items[0])
	assert.Equal(t, 0, items[1].Year)
	assert.Empty(t, items[1].PosterURL)
}

func TestTMDBClient_DiscoverFilterParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/discover/movie", r.URL.Path)
		assert.Equal(t, "1990-01-01", q.Get("primary_release_date.gte"))
		assert.Equal(t, "1999-12-31", q.Get("primary_release_date.lte"))
		assert.Equal(t, "7.5", q.Get("vote_average.gte"))
		w.Write([]byte(`{"page":1,"results":[]}`))
	}))
	defer srv.Close()

	items, err := NewTMDBClient(testOptions(srv.URL)).Discover(context.Background(), DiscoverFilter{
		MinYear: 1990, MaxYear: 1999, MinRating: 7.5,
	})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"id":603,"title":"The Matrix","release_date":"1999-03-31","genres":[{"id":28,"name":"Action"}]}`))
	}))
	defer srv.Close()

	d, err := NewTMDBClient(testOptions(srv.URL)).Details(context.Background(), "603")
	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	assert.Equal(t, "The Matrix", d.Title)
	assert.Equal(t, 1999, d.Year)
	assert.Equal(t, []string{"Action"}, d.Genres)
}

func TestClient_GivesUpAfterMaxRetries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewTMDBClient(testOptions(srv.URL)).Search(context.Background(), "x")
	require.Error(t, err)
	assert.Equal(t, int32(defaultMaxRetries+1), atomic.LoadInt32(&calls))
}

func TestClient_NotFoundIsNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewTMDBClient(testOptions(srv.URL)).Details(context.Background(), "0")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestClient_BadRequestIsNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := NewTMDBClient(testOptions(srv.URL)).Search(context.Background(), "x")
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestClient_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	opts := testOptions(srv.URL)
	opts.MaxRetries = -1
	opts.FailureThreshold = 2
	opts.OpenTimeout = time.Minute
	c := NewTMDBClient(opts)

	for i := 0; i < 2; i++ {
		_, err := c.Search(context.Background(), "x")
		require.Error(t, err)
		assert.False(t, errors.Is(err, ErrUnavailable))
	}

	_, err := c.Search(context.Background(), "x")
	assert.True(t, errors.Is(err, ErrUnavailable))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestClient_ContextCancelledDuringBackoff(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	opts := testOptions(srv.URL)
	opts.InitialDelay = time.Minute
	opts.MaxDelay = time.Minute

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := NewTMDBClient(opts).Search(ctx, "x")
	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestGoogleBooksClient_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "dune", q.Get("q"))
		assert.Equal(t, "tr", q.Get("langRestrict"))
		w.Write([]byte(`{"totalItems":1,"items":[{"id":"vol1","volumeInfo":{
			"title":"Dune","publishedDate":"1965","description":"<p>Desert &amp; spice</p>",
			"imageLinks":{"thumbnail":"http://books.google.com/thumb?id=vol1"}}}]}`))
	}))
	defer srv.Close()

	opts := testOptions(srv.URL)
	opts.Language = "tr"
	items, err := NewGoogleBooksClient(opts).Search(context.Background(), "dune")
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, "vol1", items[0].ID)
	assert.Equal(t, KindBook, items[0].Type)
	assert.Equal(t, 1965, items[0].Year)
	assert.Equal(t, "https://books.google.com/thumb?id=vol1", items[0].PosterURL)
	assert.Equal(t, "Desert & spice", items[0].Overview)
}

func TestGoogleBooksClient_Details(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/vol1", r.URL.Path)
		w.Write([]byte(`{"id":"vol1","volumeInfo":{"title":"Dune","subtitle":"Deluxe Edition",
			"authors":["Frank Herbert"],"pageCount":412,"categories":["Fiction"]}}`))
	}))
	defer srv.Close()

	d, err := NewGoogleBooksClient(testOptions(srv.URL)).Details(context.Background(), "vol1")
	require.NoError(t, err)
	assert.Equal(t, "Dune: Deluxe Edition", d.Title)
	assert.Equal(t, []string{"Frank Herbert"}, d.Authors)
	assert.Equal(t, 412, d.PageCount)
}

func TestCatalog_DetailsUnsupportedKind(t *testing.T) {
	c := New(NewTMDBClient(Options{}), NewGoogleBooksClient(Options{}))
	_, err := c.Details(context.Background(), "podcast", "1")
	assert.True(t, errors.Is(err, ErrUnsupportedKind))
}

func TestSecureURL(t *testing.T) {
	assert.Equal(t, "https://x.test/a", secureURL("http://x.test/a"))
	assert.Equal(t, "https://x.test/a", secureURL("https://x.test/a"))
	assert.Equal(t, "", secureURL(""))
}
