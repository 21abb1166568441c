package listingService

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/context"

	"github.com/salman-gourmet/bookmyagents/internal/api/listing"
	listingRepository "github.com/salman-gourmet/bookmyagents/internal/api/listing/repository"
	"github.com/salman-gourmet/bookmyagents/internal/entity"
)

type fakeListingStore struct {
	hits       []listing.NearbyListing
	total      int
	lastQuery  listing.GeoQuery
	lastLimit  int
	lastOffset int
}

func (s *fakeListingStore) NewClient(tx bool) (listingRepository.Client, error) {
	return listingRepository.Client{
		Listings: &fakeListings{store: s},
		Commit:   func() error { return nil },
		Rollback: func() error { return nil },
	}, nil
}

type fakeListings struct {
	store *fakeListingStore
}

func (f *fakeListings) CreateListing(_ context.Context, _ entity.Listing) error {
	return nil
}

func (f *fakeListings) GetListingByID(_ context.Context, _ string) (entity.Listing, error) {
	return entity.Listing{}, listing.ErrListingNotFound
}

func (f *fakeListings) ListListings(_ context.Context, _ listing.Filters, _, _ int) ([]entity.Listing, int, error) {
	return nil, 0, nil
}

func (f *fakeListings) SearchNearby(_ context.Context, q listing.GeoQuery, limit, offset int) ([]listing.NearbyListing, int, error) {
	f.store.lastQuery = q
	f.store.lastLimit = limit
	f.store.lastOffset = offset
	return f.store.hits, f.store.total, nil
}

func (f *fakeListings) UpdateListing(_ context.Context, _ entity.Listing) error {
	return nil
}

func (f *fakeListings) DeleteListing(_ context.Context, _ string) error {
	return nil
}

func (f *fakeListings) GetStatistics(_ context.Context, _ string) (int, float64, []listing.CategoryCount, error) {
	return 0, 0, nil, nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func tourListing(id, title string, lat, lng float64) entity.Listing {
	return entity.Listing{
		ID:        id,
		Title:     title,
		Category:  entity.CategoryTours,
		Price:     120,
		City:      "Bandung",
		Country:   "Indonesia",
		Latitude:  lat,
		Longitude: lng,
		AgentID:   "agent-1",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func TestSearchTours_PinsTourCategoryAndDefaultsRadius(t *testing.T) {
	store := &fakeListingStore{}
	svc := New(quietLogger(), store, nil, nil)

	_, err := svc.SearchTours(context.Background(), listing.GeoQuery{
		Latitude:  -6.9175,
		Longitude: 107.6191,
	})
	require.NoError(t, err)

	assert.Equal(t, string(entity.CategoryTours), store.lastQuery.Category)
	assert.Equal(t, float64(defaultSearchRadiusKm), store.lastQuery.RadiusKm)
	assert.Equal(t, 10, store.lastLimit)
	assert.Equal(t, 0, store.lastOffset)
}

func TestSearchTours_KeepsCallerRadiusAndPaging(t *testing.T) {
	store := &fakeListingStore{}
	svc := New(quietLogger(), store, nil, nil)

	_, err := svc.SearchTours(context.Background(), listing.GeoQuery{
		Latitude:  -6.9175,
		Longitude: 107.6191,
		RadiusKm:  5,
		Page:      3,
		Limit:     20,
	})
	require.NoError(t, err)

	assert.Equal(t, float64(5), store.lastQuery.RadiusKm)
	assert.Equal(t, 20, store.lastLimit)
	assert.Equal(t, 40, store.lastOffset)
}

func TestSearchTours_MapsDistanceIntoResponse(t *testing.T) {
	store := &fakeListingStore{
		hits: []listing.NearbyListing{
			{Listing: tourListing("t1", "City Walk", -6.917, 107.619), DistanceKm: 1.2},
			{Listing: tourListing("t2", "Volcano Trek", -6.88, 107.6), DistanceKm: 9.7},
		},
		total: 2,
	}
	svc := New(quietLogger(), store, nil, nil)

	res, err := svc.SearchTours(context.Background(), listing.GeoQuery{
		Latitude:  -6.9175,
		Longitude: 107.6191,
		RadiusKm:  10,
	})
	require.NoError(t, err)

	require.Len(t, res.Data, 2)
	assert.Equal(t, 2, res.Count)
	assert.Equal(t, "t1", res.Data[0].ID)
	assert.InDelta(t, 1.2, res.Data[0].DistanceKm, 0.001)
	assert.Equal(t, "t2", res.Data[1].ID)
	assert.InDelta(t, 9.7, res.Data[1].DistanceKm, 0.001)
	assert.Equal(t, 2, res.Pagination.Total)
}

func TestSearchTours_RejectsBadCoordinates(t *testing.T) {
	store := &fakeListingStore{}
	svc := New(quietLogger(), store, nil, nil)

	_, err := svc.SearchTours(context.Background(), listing.GeoQuery{Latitude: 91, Longitude: 0})
	assert.ErrorIs(t, err, listing.ErrInvalidCoordinates)

	_, err = svc.SearchTours(context.Background(), listing.GeoQuery{Latitude: 0, Longitude: -181})
	assert.ErrorIs(t, err, listing.ErrInvalidCoordinates)
}
