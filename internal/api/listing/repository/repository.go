package listingRepository

import (
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"github.com/salman-gourmet/bookmyagents/internal/api/listing"
	"github.com/salman-gourmet/bookmyagents/internal/entity"
)

type SQLExecutor interface {
	sqlx.ExtContext
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	Rebind(query string) string
}

func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
}

type Repository interface {
	NewClient(tx bool) (Client, error)
}

func (r *repository) NewClient(tx bool) (Client, error) {
	var sqlExecutor SQLExecutor
	var commitFunc, rollbackFunc func() error

	sqlExecutor = r.DB

	if tx {
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		sqlExecutor = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	} else {
		commitFunc = func() error { return nil }
		rollbackFunc = func() error { return nil }
	}

	return Client{
		Listings: &listingsRepository{q: sqlExecutor, log: r.log},
		Commit:   commitFunc,
		Rollback: rollbackFunc,
	}, nil
}

type Client struct {
	Listings interface {
		CreateListing(ctx context.Context, listing entity.Listing) error
		GetListingByID(ctx context.Context, id string) (entity.Listing, error)
		ListListings(ctx context.Context, filters listing.Filters, limit, offset int) ([]entity.Listing, int, error)
		SearchNearby(ctx context.Context, q listing.GeoQuery, limit, offset int) ([]listing.NearbyListing, int, error)
		UpdateListing(ctx context.Context, listing entity.Listing) error
		DeleteListing(ctx context.Context, id string) error
		GetStatistics(ctx context.Context, agentID string) (int, float64, []listing.CategoryCount, error)
	}

	Commit   func() error
	Rollback func() error
}

type listingsRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}
