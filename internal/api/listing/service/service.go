package listingService

import (
	"context"
	"mime/multipart"

	"github.com/sirupsen/logrus"

	"github.com/salman-gourmet/bookmyagents/internal/api/listing"
	listingRepository "github.com/salman-gourmet/bookmyagents/internal/api/listing/repository"
	"github.com/salman-gourmet/bookmyagents/internal/entity"
	"github.com/salman-gourmet/bookmyagents/pkg/s3"
	"github.com/salman-gourmet/bookmyagents/pkg/utils"
)

type IListingService interface {
	CreateListing(ctx context.Context, req listing.CreateListingRequest, agentID string) (listing.ListingResponse, error)
	GetListingByID(ctx context.Context, id string) (listing.ListingResponse, error)
	ListListings(ctx context.Context, filters listing.Filters) (*listing.ListingListResponse, error)
	SearchTours(ctx context.Context, q listing.GeoQuery) (*listing.TourSearchResponse, error)
	UpdateListing(ctx context.Context, id string, req listing.UpdateListingRequest, actor entity.UserLoginData) (listing.ListingResponse, error)
	DeleteListing(ctx context.Context, id string, actor entity.UserLoginData) error
	GetStats(ctx context.Context, agentID string) (*listing.ListingStatsResponse, error)
	UploadImages(ctx context.Context, files []*multipart.FileHeader) (listing.UploadImagesResponse, error)
	DeleteImages(ctx context.Context, req listing.DeleteImagesRequest) error
}

type listingsService struct {
	log          *logrus.Logger
	listingsRepo listingRepository.Repository
	s3Client     s3.ItfS3
	utils        utils.IUtils
}

func New(
	log *logrus.Logger,
	listingsRepo listingRepository.Repository,
	s3Client s3.ItfS3,
	utils utils.IUtils,
) IListingService {
	return &listingsService{
		log:          log,
		listingsRepo: listingsRepo,
		s3Client:     s3Client,
		utils:        utils,
	}
}

func makeListingResponse(l entity.Listing) listing.ListingResponse {
	pictures := []string(l.Pictures)
	if pictures == nil {
		pictures = []string{}
	}

	return listing.ListingResponse{
		ID:          l.ID,
		Title:       l.Title,
		Description: l.Description,
		Pictures:    pictures,
		Contact: listing.ContactDetails{
			Phone:   l.Phone,
			Email:   l.ContactEmail,
			Address: l.Address,
			Website: l.Website,
		},
		Category: l.Category,
		Price:    l.Price,
		Location: listing.Location{
			City:      l.City,
			State:     l.State,
			Country:   l.Country,
			Latitude:  l.Latitude,
			Longitude: l.Longitude,
		},
		AgentID:   l.AgentID,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}
