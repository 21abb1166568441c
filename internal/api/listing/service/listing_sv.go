package listingService

import (
	"mime/multipart"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"github.com/salman-gourmet/bookmyagents/internal/api/listing"
	"github.com/salman-gourmet/bookmyagents/internal/entity"
	contextPkg "github.com/salman-gourmet/bookmyagents/pkg/context"
	"github.com/salman-gourmet/bookmyagents/pkg/pagination"
)

func (s *listingsService) CreateListing(ctx context.Context, req listing.CreateListingRequest, agentID string) (listing.ListingResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.listingsRepo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return listing.ListingResponse{}, err
	}
	defer repo.Rollback()

	category := entity.ListingCategory(req.Category)
	if !category.Valid() {
		return listing.ListingResponse{}, listing.ErrInvalidCategory
	}

	listingID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return listing.ListingResponse{}, err
	}

	now := time.Now()
	l := entity.Listing{
		ID:           listingID,
		Title:        req.Title,
		Description:  req.Description,
		Pictures:     req.Pictures,
		Phone:        req.Contact.Phone,
		ContactEmail: req.Contact.Email,
		Address:      req.Contact.Address,
		Website:      req.Contact.Website,
		Category:     category,
		Price:        req.Price,
		City:         req.Location.City,
		State:        req.Location.State,
		Country:      req.Location.Country,
		Latitude:     req.Location.Latitude,
		Longitude:    req.Location.Longitude,
		AgentID:      agentID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := repo.Listings.CreateListing(ctx, l); err != nil {
		return listing.ListingResponse{}, listing.ErrCreateListing
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit transaction")
		return listing.ListingResponse{}, listing.ErrCreateListing
	}

	return makeListingResponse(l), nil
}

func (s *listingsService) GetListingByID(ctx context.Context, id string) (listing.ListingResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.listingsRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return listing.ListingResponse{}, err
	}

	l, err := repo.Listings.GetListingByID(ctx, id)
	if err != nil {
		return listing.ListingResponse{}, err
	}

	return makeListingResponse(l), nil
}

func (s *listingsService) ListListings(ctx context.Context, filters listing.Filters) (*listing.ListingListResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if filters.Category != "" && !entity.ListingCategory(filters.Category).Valid() {
		return nil, listing.ErrInvalidCategory
	}

	repo, err := s.listingsRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	meta := pagination.New(0, filters.Page, filters.Limit)

	listings, total, err := repo.Listings.ListListings(ctx, filters, meta.Limit, meta.Offset())
	if err != nil {
		return nil, err
	}

	response := &listing.ListingListResponse{
		Count:      len(listings),
		Data:       make([]listing.ListingResponse, 0, len(listings)),
		Pagination: pagination.New(total, meta.Page, meta.Limit),
	}

	for _, l := range listings {
		response.Data = append(response.Data, makeListingResponse(l))
	}

	return response, nil
}

// defaultSearchRadiusKm applies when the caller gives no radius.
const defaultSearchRadiusKm = 50

// SearchTours finds tour listings around a coordinate, nearest first.
func (s *listingsService) SearchTours(ctx context.Context, q listing.GeoQuery) (*listing.TourSearchResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if q.Latitude < -90 || q.Latitude > 90 || q.Longitude < -180 || q.Longitude > 180 {
		return nil, listing.ErrInvalidCoordinates
	}
	if q.RadiusKm <= 0 {
		q.RadiusKm = defaultSearchRadiusKm
	}
	q.Category = string(entity.CategoryTours)

	repo, err := s.listingsRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	meta := pagination.New(0, q.Page, q.Limit)

	hits, total, err := repo.Listings.SearchNearby(ctx, q, meta.Limit, meta.Offset())
	if err != nil {
		return nil, err
	}

	response := &listing.TourSearchResponse{
		Count:      len(hits),
		Data:       make([]listing.SearchResultResponse, 0, len(hits)),
		Pagination: pagination.New(total, meta.Page, meta.Limit),
	}

	for _, hit := range hits {
		response.Data = append(response.Data, listing.SearchResultResponse{
			ListingResponse: makeListingResponse(hit.Listing),
			DistanceKm:      hit.DistanceKm,
		})
	}

	return response, nil
}

func (s *listingsService) UpdateListing(ctx context.Context, id string, req listing.UpdateListingRequest, actor entity.UserLoginData) (listing.ListingResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.listingsRepo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return listing.ListingResponse{}, err
	}
	defer repo.Rollback()

	existing, err := repo.Listings.GetListingByID(ctx, id)
	if err != nil {
		return listing.ListingResponse{}, err
	}

	if !actor.IsAdmin() && existing.AgentID != actor.ID {
		s.log.WithFields(logrus.Fields{
			"request_id":   requestID,
			"id":           id,
			"listing_owner": existing.AgentID,
			"request_user": actor.ID,
		}).Warn("User is not the owner of the listing")
		return listing.ListingResponse{}, listing.ErrListingNotOwned
	}

	if req.Title != "" {
		existing.Title = req.Title
	}
	if req.Description != "" {
		existing.Description = req.Description
	}
	if req.Pictures != nil {
		existing.Pictures = req.Pictures
	}
	if req.Contact != nil {
		existing.Phone = req.Contact.Phone
		existing.ContactEmail = req.Contact.Email
		existing.Address = req.Contact.Address
		existing.Website = req.Contact.Website
	}
	if req.Category != "" {
		category := entity.ListingCategory(req.Category)
		if !category.Valid() {
			return listing.ListingResponse{}, listing.ErrInvalidCategory
		}
		existing.Category = category
	}
	if req.Price != nil {
		existing.Price = *req.Price
	}
	if req.Location != nil {
		existing.City = req.Location.City
		existing.State = req.Location.State
		existing.Country = req.Location.Country
		existing.Latitude = req.Location.Latitude
		existing.Longitude = req.Location.Longitude
	}
	existing.UpdatedAt = time.Now()

	if err := repo.Listings.UpdateListing(ctx, existing); err != nil {
		return listing.ListingResponse{}, err
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit transaction")
		return listing.ListingResponse{}, listing.ErrUpdateListing
	}

	return makeListingResponse(existing), nil
}

func (s *listingsService) DeleteListing(ctx context.Context, id string, actor entity.UserLoginData) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.listingsRepo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return err
	}
	defer repo.Rollback()

	existing, err := repo.Listings.GetListingByID(ctx, id)
	if err != nil {
		return err
	}

	if !actor.IsAdmin() && existing.AgentID != actor.ID {
		return listing.ErrListingNotOwned
	}

	if err := repo.Listings.DeleteListing(ctx, id); err != nil {
		return err
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit transaction")
		return listing.ErrDeleteListing
	}

	// Orphaned pictures are cleaned up best effort after the row is gone.
	if len(existing.Pictures) > 0 {
		fileNames := make([]string, 0, len(existing.Pictures))
		for _, url := range existing.Pictures {
			parts := strings.Split(url, "/")
			fileNames = append(fileNames, parts[len(parts)-1])
		}
		if err := s.s3Client.DeleteFiles(fileNames); err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("Failed to delete listing pictures")
		}
	}

	return nil
}

func (s *listingsService) GetStats(ctx context.Context, agentID string) (*listing.ListingStatsResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.listingsRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	total, averagePrice, byCategory, err := repo.Listings.GetStatistics(ctx, agentID)
	if err != nil {
		return nil, err
	}
	if byCategory == nil {
		byCategory = []listing.CategoryCount{}
	}

	return &listing.ListingStatsResponse{
		TotalServices:      total,
		ServicesByCategory: byCategory,
		AveragePrice:       averagePrice,
	}, nil
}

func (s *listingsService) UploadImages(ctx context.Context, files []*multipart.FileHeader) (listing.UploadImagesResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if len(files) == 0 {
		return listing.UploadImagesResponse{}, listing.ErrNoImagesProvided
	}

	for _, file := range files {
		if err := s.utils.ValidateImageFile(file); err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"file_name":  file.Filename,
				"error":      err.Error(),
			}).Warn("Invalid image file")
			return listing.UploadImagesResponse{}, err
		}
	}

	urls, err := s.s3Client.UploadFiles(files)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to upload images")
		return listing.UploadImagesResponse{}, listing.ErrFailedToUpload
	}

	return listing.UploadImagesResponse{URLs: urls}, nil
}

func (s *listingsService) DeleteImages(ctx context.Context, req listing.DeleteImagesRequest) error {
	requestID := contextPkg.GetRequestID(ctx)

	fileNames := make([]string, 0, len(req.URLs))
	for _, url := range req.URLs {
		parts := strings.Split(url, "/")
		fileNames = append(fileNames, parts[len(parts)-1])
	}

	if err := s.s3Client.DeleteFiles(fileNames); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to delete images")
		return listing.ErrDeleteListing
	}

	return nil
}
