package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"cinelibri/database/dbtest"
	"cinelibri/internal/catalog"
	"cinelibri/internal/microservices/http-api/dto"
	"cinelibri/internal/microservices/http-api/models"
	"cinelibri/internal/microservices/http-api/repository"
	"cinelibri/internal/microservices/http-api/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeProvider struct {
	movies    []catalog.Item
	discover  []catalog.Item
	books     []catalog.Item
	details   *catalog.Details
	moviesErr error
	booksErr  error
	detailErr error

	lastBookQuery string
	lastFilter    catalog.DiscoverFilter
}

func (f *fakeProvider) SearchMovies(ctx context.Context, query string) ([]catalog.Item, error) {
	return f.movies, f.moviesErr
}

func (f *fakeProvider) DiscoverMovies(ctx context.Context, filter catalog.DiscoverFilter) ([]catalog.Item, error) {
	f.lastFilter = filter
	return f.discover, f.moviesErr
}

func (f *fakeProvider) SearchBooks(ctx context.Context, query string) ([]catalog.Item, error) {
	f.lastBookQuery = query
	return f.books, f.booksErr
}

func (f *fakeProvider) Details(ctx context.Context, kind, id string) (*catalog.Details, error) {
	if f.detailErr != nil {
		return nil, f.detailErr
	}
	d := *f.details
	return &d, nil
}

func newContentService(t *testing.T, p catalog.Provider) (service.ContentService, service.LibraryService, *models.User, *models.User) {
	t.Helper()
	db := dbtest.New(t)
	libraryRepo := repository.NewLibraryRepository(db)
	users := repository.NewUserRepository(db)
	ledger := service.NewActivityLedger(repository.NewActivityRepository(db), users, zap.NewNop())
	return service.NewContentService(p, libraryRepo, zap.NewNop()),
		service.NewLibraryService(libraryRepo, ledger, zap.NewNop()),
		dbtest.CreateUser(t, db, "alice"),
		dbtest.CreateUser(t, db, "bob")
}

func TestContentSearch(t *testing.T) {
	p := &fakeProvider{
		movies: []catalog.Item{
			{ID: "1", Type: catalog.KindMovie, Title: "Old", Year: 1970, Rating: 8},
			{ID: "2", Type: catalog.KindMovie, Title: "Mid", Year: 1995, Rating: 6},
			{ID: "3", Type: catalog.KindMovie, Title: "Good", Year: 1998, Rating: 8.1},
			{ID: "4", Type: catalog.KindMovie, Title: "Undated", Rating: 9},
		},
		books: []catalog.Item{
			{ID: "b1", Type: catalog.KindBook, Title: "Rated", Rating: 4.5},
			{ID: "b2", Type: catalog.KindBook, Title: "Unrated"},
		},
	}
	svc, _, _, _ := newContentService(t, p)

	resp, err := svc.Search(context.Background(), service.SearchQuery{Query: "x", Type: "all", MinYear: 1990, MaxYear: 2000, MinRating: 7})
	require.NoError(t, err)

	var titles []string
	for _, m := range resp.Movies {
		titles = append(titles, m.Title)
	}
	assert.Equal(t, []string{"Good", "Undated"}, titles)
	assert.Empty(t, resp.Books)
	assert.Equal(t, "x", p.lastBookQuery)

	resp, err = svc.Search(context.Background(), service.SearchQuery{Type: catalog.KindBook})
	require.NoError(t, err)
	assert.Empty(t, resp.Movies)
	assert.Len(t, resp.Books, 2)
	assert.Equal(t, "subject:general", p.lastBookQuery)
}

func TestContentSearchDiscoversWithoutQuery(t *testing.T) {
	p := &fakeProvider{discover: []catalog.Item{{ID: "9", Title: "Popular", Year: 2020, Rating: 7}}}
	svc, _, _, _ := newContentService(t, p)

	resp, err := svc.Search(context.Background(), service.SearchQuery{Type: catalog.KindMovie, MinYear: 2010, MinRating: 6.5})
	require.NoError(t, err)
	require.Len(t, resp.Movies, 1)
	assert.Equal(t, catalog.DiscoverFilter{MinYear: 2010, MinRating: 6.5}, p.lastFilter)
}

func TestContentSearchUpstreamFailureYieldsEmptyList(t *testing.T) {
	p := &fakeProvider{
		moviesErr: catalog.ErrUnavailable,
		books:     []catalog.Item{{ID: "b1", Title: "Still here"}},
	}
	svc, _, _, _ := newContentService(t, p)

	resp, err := svc.Search(context.Background(), service.SearchQuery{Query: "dune"})
	require.NoError(t, err)
	assert.NotNil(t, resp.Movies)
	assert.Empty(t, resp.Movies)
	assert.Len(t, resp.Books, 1)

	_, err = svc.Search(context.Background(), service.SearchQuery{Query: "dune", Type: "music"})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestContentPopularCapsResults(t *testing.T) {
	var many []catalog.Item
	for i := 0; i < 30; i++ {
		many = append(many, catalog.Item{ID: fmt.Sprint(i)})
	}
	p := &fakeProvider{discover: many, books: many[:5]}
	svc, _, _, _ := newContentService(t, p)

	resp, err := svc.Popular(context.Background())
	require.NoError(t, err)
	assert.Len(t, resp.Movies, 21)
	assert.Len(t, resp.Books, 5)
	assert.Equal(t, "subject:fiction", p.lastBookQuery)
}

func TestContentDetails(t *testing.T) {
	p := &fakeProvider{details: &catalog.Details{ID: "tt500", Type: catalog.KindMovie, Title: "Film"}}
	svc, library, alice, bob := newContentService(t, p)
	ctx := context.Background()

	eight, seven := 8, 7
	great := "great"
	_, err := library.RateOrReview(ctx, alice.ID, &dto.ReviewRequest{APIID: "tt500", ContentType: catalog.KindMovie, Rating: &eight, Review: &great})
	require.NoError(t, err)
	_, err = library.RateOrReview(ctx, bob.ID, &dto.ReviewRequest{APIID: "tt500", ContentType: catalog.KindMovie, Rating: &seven})
	require.NoError(t, err)

	resp, err := svc.Details(ctx, alice.ID, catalog.KindMovie, "tt500")
	require.NoError(t, err)
	assert.Equal(t, "Film", resp.Title)
	assert.Len(t, resp.Reviews, 2)
	assert.Equal(t, 7.5, resp.PlatformRating)
	assert.EqualValues(t, 2, resp.TotalVotes)
	require.NotNil(t, resp.MyRating)
	assert.Equal(t, 8, *resp.MyRating)
	assert.Equal(t, models.StatusWatched, resp.MyStatus)
	assert.NotNil(t, resp.LibraryID)

	// unknown to the platform: no reviews, no shelf entry
	p.details = &catalog.Details{ID: "tt501", Type: catalog.KindMovie, Title: "Other"}
	resp, err = svc.Details(ctx, alice.ID, catalog.KindMovie, "tt501")
	require.NoError(t, err)
	assert.Empty(t, resp.Reviews)
	assert.Zero(t, resp.PlatformRating)
	assert.Nil(t, resp.LibraryID)
}

func TestContentDetailsErrors(t *testing.T) {
	p := &fakeProvider{}
	svc, _, _, _ := newContentService(t, p)
	ctx := context.Background()

	_, err := svc.Details(ctx, "", "music", "1")
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	p.detailErr = fmt.Errorf("tmdb: %w", catalog.ErrNotFound)
	_, err = svc.Details(ctx, "", catalog.KindMovie, "1")
	assert.ErrorIs(t, err, service.ErrNotFoundOrForbidden)

	p.detailErr = errors.New("connection refused")
	_, err = svc.Details(ctx, "", catalog.KindMovie, "1")
	assert.ErrorIs(t, err, service.ErrUpstreamUnavailable)
}
