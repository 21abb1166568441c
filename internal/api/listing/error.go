package listing

import (
	"net/http"

	"github.com/salman-gourmet/bookmyagents/pkg/response"
)

var (
	ErrListingNotFound    = response.NewError(http.StatusNotFound, "service listing not found")
	ErrListingNotOwned    = response.NewError(http.StatusForbidden, "you are not the owner of this listing")
	ErrInvalidCategory    = response.NewError(http.StatusBadRequest, "invalid service category")
	ErrInvalidCoordinates = response.NewError(http.StatusBadRequest, "valid latitude and longitude are required")
	ErrCreateListing      = response.NewError(http.StatusInternalServerError, "failed to create listing")
	ErrUpdateListing      = response.NewError(http.StatusInternalServerError, "failed to update listing")
	ErrDeleteListing      = response.NewError(http.StatusInternalServerError, "failed to delete listing")
	ErrFailedToUpload     = response.NewError(http.StatusInternalServerError, "failed to upload images")
	ErrNoImagesProvided   = response.NewError(http.StatusBadRequest, "no images provided")
)
