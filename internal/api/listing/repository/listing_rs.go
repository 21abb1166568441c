package listingRepository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/salman-gourmet/bookmyagents/internal/api/listing"
	"github.com/salman-gourmet/bookmyagents/internal/entity"
	contextPkg "github.com/salman-gourmet/bookmyagents/pkg/context"
)

type ListingDB struct {
	ID           sql.NullString  `db:"id"`
	Title        sql.NullString  `db:"title"`
	Description  sql.NullString  `db:"description"`
	Pictures     pq.StringArray  `db:"pictures"`
	Phone        sql.NullString  `db:"phone"`
	ContactEmail sql.NullString  `db:"contact_email"`
	Address      sql.NullString  `db:"address"`
	Website      sql.NullString  `db:"website"`
	Category     sql.NullString  `db:"category"`
	Price        sql.NullFloat64 `db:"price"`
	City         sql.NullString  `db:"city"`
	State        sql.NullString  `db:"state"`
	Country      sql.NullString  `db:"country"`
	Latitude     sql.NullFloat64 `db:"latitude"`
	Longitude    sql.NullFloat64 `db:"longitude"`
	AgentID      sql.NullString  `db:"agent_id"`
	CreatedAt    sql.NullTime    `db:"created_at"`
	UpdatedAt    sql.NullTime    `db:"updated_at"`
}

func (r *listingsRepository) makeListing(row ListingDB) entity.Listing {
	return entity.Listing{
		ID:           row.ID.String,
		Title:        row.Title.String,
		Description:  row.Description.String,
		Pictures:     row.Pictures,
		Phone:        row.Phone.String,
		ContactEmail: row.ContactEmail.String,
		Address:      row.Address.String,
		Website:      row.Website.String,
		Category:     entity.ListingCategory(row.Category.String),
		Price:        row.Price.Float64,
		City:         row.City.String,
		State:        row.State.String,
		Country:      row.Country.String,
		Latitude:     row.Latitude.Float64,
		Longitude:    row.Longitude.Float64,
		AgentID:      row.AgentID.String,
		CreatedAt:    row.CreatedAt.Time,
		UpdatedAt:    row.UpdatedAt.Time,
	}
}

func listingArgs(l entity.Listing) map[string]interface{} {
	return map[string]interface{}{
		"id":            l.ID,
		"title":         l.Title,
		"description":   l.Description,
		"pictures":      l.Pictures,
		"phone":         l.Phone,
		"contact_email": l.ContactEmail,
		"address":       l.Address,
		"website":       l.Website,
		"category":      string(l.Category),
		"price":         l.Price,
		"city":          l.City,
		"state":         l.State,
		"country":       l.Country,
		"latitude":      l.Latitude,
		"longitude":     l.Longitude,
		"agent_id":      l.AgentID,
		"created_at":    l.CreatedAt,
		"updated_at":    l.UpdatedAt,
	}
}

func (r *listingsRepository) CreateListing(ctx context.Context, l entity.Listing) error {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryCreateListing, listingArgs(l))
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateListing")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating listing")
		return err
	}

	return nil
}

func (r *listingsRepository) GetListingByID(ctx context.Context, id string) (entity.Listing, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var row ListingDB

	query, args, err := sqlx.Named(queryGetListingByID, map[string]interface{}{"id": id})
	if err != nil {
		return entity.Listing{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Listing{}, listing.ErrListingNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetListingByID execution err")
		return entity.Listing{}, err
	}

	return r.makeListing(row), nil
}

func (r *listingsRepository) ListListings(ctx context.Context, filters listing.Filters, limit, offset int) ([]entity.Listing, int, error) {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"category":  filters.Category,
		"city":      filters.City,
		"agent_id":  filters.AgentID,
		"min_price": filters.MinPrice,
		"max_price": filters.MaxPrice,
		"search":    filters.Search,
		"limit":     limit,
		"offset":    offset,
	}

	query, args, err := sqlx.Named(queryListListings, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListListings named query preparation err")
		return nil, 0, err
	}
	query = r.q.Rebind(query)

	var rows []ListingDB
	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListListings execution err")
		return nil, 0, err
	}

	countQuery, countArgs, err := sqlx.Named(queryCountListings, argsKV)
	if err != nil {
		return nil, 0, err
	}
	countQuery = r.q.Rebind(countQuery)

	var total int
	if err := r.q.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListListings count execution err")
		return nil, 0, err
	}

	listings := make([]entity.Listing, 0, len(rows))
	for _, row := range rows {
		listings = append(listings, r.makeListing(row))
	}

	return listings, total, nil
}

type listingDistanceDB struct {
	ListingDB
	DistanceKm sql.NullFloat64 `db:"distance_km"`
}

// SearchNearby returns listings within q.RadiusKm of the given point,
// closest first.
func (r *listingsRepository) SearchNearby(ctx context.Context, q listing.GeoQuery, limit, offset int) ([]listing.NearbyListing, int, error) {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"latitude":  q.Latitude,
		"longitude": q.Longitude,
		"radius_km": q.RadiusKm,
		"category":  q.Category,
		"search":    q.Search,
		"limit":     limit,
		"offset":    offset,
	}

	query, args, err := sqlx.Named(querySearchNearby, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("SearchNearby named query preparation err")
		return nil, 0, err
	}
	query = r.q.Rebind(query)

	var rows []listingDistanceDB
	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("SearchNearby execution err")
		return nil, 0, err
	}

	countQuery, countArgs, err := sqlx.Named(queryCountNearby, argsKV)
	if err != nil {
		return nil, 0, err
	}
	countQuery = r.q.Rebind(countQuery)

	var total int
	if err := r.q.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("SearchNearby count execution err")
		return nil, 0, err
	}

	results := make([]listing.NearbyListing, 0, len(rows))
	for _, row := range rows {
		results = append(results, listing.NearbyListing{
			Listing:    r.makeListing(row.ListingDB),
			DistanceKm: row.DistanceKm.Float64,
		})
	}

	return results, total, nil
}

func (r *listingsRepository) UpdateListing(ctx context.Context, l entity.Listing) error {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := listingArgs(l)
	argsKV["updated_at"] = time.Now()

	query, args, err := sqlx.Named(queryUpdateListing, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateListing named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateListing execution err")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return listing.ErrListingNotFound
	}

	return nil
}

func (r *listingsRepository) DeleteListing(ctx context.Context, id string) error {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryDeleteListing, map[string]interface{}{"id": id})
	if err != nil {
		return err
	}
	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteListing execution err")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return listing.ErrListingNotFound
	}

	return nil
}

// GetStatistics returns the total listing count, the average price, and the
// per-category breakdown, optionally scoped to a single agent.
func (r *listingsRepository) GetStatistics(ctx context.Context, agentID string) (int, float64, []listing.CategoryCount, error) {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{"agent_id": agentID}

	totalsQuery, totalsArgs, err := sqlx.Named(queryListingTotals, argsKV)
	if err != nil {
		return 0, 0, nil, err
	}
	totalsQuery = r.q.Rebind(totalsQuery)

	var totals struct {
		Total        int     `db:"total"`
		AveragePrice float64 `db:"average_price"`
	}
	if err := r.q.GetContext(ctx, &totals, totalsQuery, totalsArgs...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetStatistics totals execution err")
		return 0, 0, nil, err
	}

	byCategoryQuery, byCategoryArgs, err := sqlx.Named(queryListingsByCategory, argsKV)
	if err != nil {
		return 0, 0, nil, err
	}
	byCategoryQuery = r.q.Rebind(byCategoryQuery)

	var byCategory []listing.CategoryCount
	if err := r.q.SelectContext(ctx, &byCategory, byCategoryQuery, byCategoryArgs...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetStatistics by category execution err")
		return 0, 0, nil, err
	}

	return totals.Total, totals.AveragePrice, byCategory, nil
}
