package listing

import (
	"time"

	"github.com/salman-gourmet/bookmyagents/internal/entity"
	"github.com/salman-gourmet/bookmyagents/pkg/pagination"
)

type ContactDetails struct {
	Phone   string `json:"phone" validate:"omitempty,min=5,max=32"`
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"address" validate:"omitempty,max=500"`
	Website string `json:"website" validate:"omitempty,url"`
}

type Location struct {
	City      string  `json:"city" validate:"required,max=128"`
	State     string  `json:"state" validate:"omitempty,max=128"`
	Country   string  `json:"country" validate:"required,max=128"`
	Latitude  float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude float64 `json:"longitude" validate:"omitempty,longitude"`
}

type CreateListingRequest struct {
	Title       string         `json:"title" validate:"required,min=3,max=255"`
	Description string         `json:"description" validate:"required,min=10"`
	Pictures    []string       `json:"pictures" validate:"omitempty,dive,url"`
	Contact     ContactDetails `json:"contactDetails"`
	Category    string         `json:"category" validate:"required,oneof=accommodation transportation tours food entertainment shopping other"`
	Price       float64        `json:"price" validate:"required,gt=0"`
	Location    Location       `json:"location"`
}

type UpdateListingRequest struct {
	Title       string          `json:"title" validate:"omitempty,min=3,max=255"`
	Description string          `json:"description" validate:"omitempty,min=10"`
	Pictures    []string        `json:"pictures" validate:"omitempty,dive,url"`
	Contact     *ContactDetails `json:"contactDetails" validate:"omitempty"`
	Category    string          `json:"category" validate:"omitempty,oneof=accommodation transportation tours food entertainment shopping other"`
	Price       *float64        `json:"price" validate:"omitempty,gt=0"`
	Location    *Location       `json:"location" validate:"omitempty"`
}

type Filters struct {
	Page     int
	Limit    int
	Search   string
	Category string
	City     string
	MinPrice float64
	MaxPrice float64
	AgentID  string
}

// GeoQuery drives the nearby tour search. Distances are in kilometres.
type GeoQuery struct {
	Page      int
	Limit     int
	Search    string
	Category  string
	Latitude  float64
	Longitude float64
	RadiusKm  float64
}

// NearbyListing pairs a listing with its distance from the searched point.
type NearbyListing struct {
	Listing    entity.Listing
	DistanceKm float64
}

type ListingResponse struct {
	ID          string                 `json:"id"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Pictures    []string               `json:"pictures"`
	Contact     ContactDetails         `json:"contactDetails"`
	Category    entity.ListingCategory `json:"category"`
	Price       float64                `json:"price"`
	Location    Location               `json:"location"`
	AgentID     string                 `json:"agentId"`
	CreatedAt   time.Time              `json:"createdAt"`
	UpdatedAt   time.Time              `json:"updatedAt"`
}

type ListingListResponse struct {
	Count      int                 `json:"count"`
	Data       []ListingResponse   `json:"data"`
	Pagination pagination.Metadata `json:"pagination"`
}

type SearchResultResponse struct {
	ListingResponse
	DistanceKm float64 `json:"distanceKm"`
}

type TourSearchResponse struct {
	Count      int                    `json:"count"`
	Data       []SearchResultResponse `json:"data"`
	Pagination pagination.Metadata    `json:"pagination"`
}

type CategoryCount struct {
	Category string `db:"category" json:"category"`
	Count    int    `db:"count" json:"count"`
}

type ListingStatsResponse struct {
	TotalServices      int             `json:"totalServices"`
	ServicesByCategory []CategoryCount `json:"servicesByCategory"`
	AveragePrice       float64         `json:"averagePrice"`
}

type UploadImagesResponse struct {
	URLs []string `json:"urls"`
}

type DeleteImagesRequest struct {
	URLs []string `json:"urls" validate:"required,min=1,dive,required"`
}
