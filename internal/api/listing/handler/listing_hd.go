package listingHandler

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"

	"github.com/salman-gourmet/bookmyagents/internal/api/listing"
	contextPkg "github.com/salman-gourmet/bookmyagents/pkg/context"
	"github.com/salman-gourmet/bookmyagents/pkg/handlerUtil"
	jwtPkg "github.com/salman-gourmet/bookmyagents/pkg/jwt"
)

func queryFilters(ctx *fiber.Ctx) listing.Filters {
	minPrice, _ := strconv.ParseFloat(ctx.Query("minPrice"), 64)
	maxPrice, _ := strconv.ParseFloat(ctx.Query("maxPrice"), 64)

	return listing.Filters{
		Page:     ctx.QueryInt("page", 1),
		Limit:    ctx.QueryInt("limit", 10),
		Search:   ctx.Query("search"),
		Category: ctx.Query("category"),
		City:     ctx.Query("city"),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		AgentID:  ctx.Query("agent"),
	}
}

func geoQuery(ctx *fiber.Ctx) listing.GeoQuery {
	latitude, _ := strconv.ParseFloat(ctx.Query("latitude"), 64)
	longitude, _ := strconv.ParseFloat(ctx.Query("longitude"), 64)
	radius, _ := strconv.ParseFloat(ctx.Query("radius"), 64)

	return listing.GeoQuery{
		Page:      ctx.QueryInt("page", 1),
		Limit:     ctx.QueryInt("limit", 10),
		Search:    ctx.Query("query"),
		Latitude:  latitude,
		Longitude: longitude,
		RadiusKm:  radius,
	}
}

func (h *ListingHandler) HandleListListings(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	res, err := h.listingService.ListListings(c, queryFilters(ctx))
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "list_listings")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, res)
	}
}

func (h *ListingHandler) HandleSearchTours(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	if ctx.Query("latitude") == "" || ctx.Query("longitude") == "" {
		return errHandler.Handle(ctx, requestID, listing.ErrInvalidCoordinates, ctx.Path(), "parse_search_query")
	}

	res, err := h.listingService.SearchTours(c, geoQuery(ctx))
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "search_tours")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, res)
	}
}

func (h *ListingHandler) HandleGetListing(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	res, err := h.listingService.GetListingByID(c, ctx.Params("id"))
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_listing")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, res)
	}
}

func (h *ListingHandler) HandleCreateListing(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	user, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Invalid session")
	}

	var req listing.CreateListingRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	res, err := h.listingService.CreateListing(c, req, user.ID)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "create_listing")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusCreated, res)
	}
}

func (h *ListingHandler) HandleUpdateListing(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	user, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Invalid session")
	}

	var req listing.UpdateListingRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	res, err := h.listingService.UpdateListing(c, ctx.Params("id"), req, user)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "update_listing")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, res)
	}
}

func (h *ListingHandler) HandleDeleteListing(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	user, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Invalid session")
	}

	if err := h.listingService.DeleteListing(c, ctx.Params("id"), user); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "delete_listing")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusNoContent, nil)
	}
}

func (h *ListingHandler) HandleGetStats(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	res, err := h.listingService.GetStats(c, "")
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_listing_stats")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, res)
	}
}

// HandleGetAgentStats scopes the stats to one agent. Agents may only read
// their own numbers; admins may read anyone's.
func (h *ListingHandler) HandleGetAgentStats(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	user, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Invalid session")
	}

	agentID := ctx.Params("id")
	if !user.IsAdmin() && user.ID != agentID {
		return errHandler.HandleForbidden(ctx, requestID, "You can only view your own statistics")
	}

	res, err := h.listingService.GetStats(c, agentID)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_agent_listing_stats")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, res)
	}
}

func (h *ListingHandler) HandleUploadImages(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 30*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	form, err := ctx.MultipartForm()
	if err != nil {
		return errHandler.Handle(ctx, requestID, listing.ErrNoImagesProvided, ctx.Path(), "parse_multipart_form")
	}

	res, err := h.listingService.UploadImages(c, form.File["images"])
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "upload_images")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusCreated, res)
	}
}

func (h *ListingHandler) HandleDeleteImages(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req listing.DeleteImagesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.listingService.DeleteImages(c, req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "delete_images")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
			"message": "Images deleted",
		})
	}
}
