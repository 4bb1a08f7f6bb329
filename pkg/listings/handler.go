package listings

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"swapyard/pkg/response"
)

type ListingHandler struct {
	service ListingService
	images  ImageURLBuilder
}

func NewListingHandler(service ListingService, images ImageURLBuilder) *ListingHandler {
	return &ListingHandler{service: service, images: images}
}

func isValidType(listingType string) bool {
	switch listingType {
	case TypeHome, TypeCar, TypeOthers:
		return true
	default:
		return false
	}
}

func isValidSwapType(swapType string) bool {
	switch swapType {
	case SwapPermanent, SwapTemporary:
		return true
	default:
		return false
	}
}

func (h *ListingHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/listings", h.createListing)
	router.PUT("/listings/:id", h.updateListing)
	router.DELETE("/listings/:id", h.deactivateListing)
	router.GET("/listings", h.listListings)
	router.GET("/listings/:id", h.getListingByID)
	router.GET("/users/:uuid/listings", h.listListingsByUser)
}

type createListingRequest struct {
	UserUUID    string   `json:"user_uuid" binding:"required"`
	Type        string   `json:"type" binding:"required"`
	SwapType    string   `json:"swap_type"`
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Price       *int64   `json:"price"`
	Images      []string `json:"images"`
}

type updateListingRequest struct {
	UserUUID    string   `json:"user_uuid" binding:"required"`
	Type        string   `json:"type" binding:"required"`
	SwapType    string   `json:"swap_type" binding:"required"`
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Price       *int64   `json:"price"`
	Images      []string `json:"images"`
}

// validateListingFields checks the invariants shared by create and update:
// coordinates come in pairs and prices are never negative.
func validateListingFields(c *gin.Context, listingType, swapType string, lat, lon *float64, price *int64) bool {
	if !isValidType(listingType) {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid type", nil)
		return false
	}
	if swapType != "" && !isValidSwapType(swapType) {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid swap_type", nil)
		return false
	}
	if (lat == nil) != (lon == nil) {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "latitude and longitude must be provided together", nil)
		return false
	}
	if price != nil && *price < 0 {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "price cannot be negative", nil)
		return false
	}
	return true
}

// @Summary      Create a new listing
// @Description  Creates a swap listing owned by the given user
// @Tags         listings
// @Accept       json
// @Produce      json
// @Param        request body createListingRequest true "Listing creation request"
// @Success      201  {object}  response.APIResponse{data=Listing} "Listing created successfully"
// @Failure      400  {object}  response.APIResponse "Invalid request payload"
// @Failure      500  {object}  response.APIResponse "Internal server error"
// @Router       /listings [post]
func (h *ListingHandler) createListing(c *gin.Context) {
	var req createListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid request payload", nil)
		return
	}

	if _, err := uuid.Parse(req.UserUUID); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid user_uuid", nil)
		return
	}

	if !validateListingFields(c, req.Type, req.SwapType, req.Latitude, req.Longitude, req.Price) {
		return
	}

	listing, err := h.service.CreateListing(c.Request.Context(), Listing{
		UserUUID:    req.UserUUID,
		Type:        req.Type,
		SwapType:    req.SwapType,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Price:       req.Price,
		Images:      h.images.Resolve(req.Images),
	})
	if err != nil {
		response.SendAPIResponse(c, http.StatusInternalServerError, false, err.Error(), nil)
		return
	}

	response.SendAPIResponse(c, http.StatusCreated, true, "listing created", listing)
}

// @Summary      Update a listing
// @Description  Updates a listing's details; only the owner may update
// @Tags         listings
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Listing ID"
// @Param        request body updateListingRequest true "Listing update request"
// @Success      200  {object}  response.APIResponse{data=Listing} "Listing updated successfully"
// @Failure      400  {object}  response.APIResponse "Invalid request"
// @Failure      404  {object}  response.APIResponse "Listing not found"
// @Failure      500  {object}  response.APIResponse "Internal server error"
// @Router       /listings/{id} [put]
func (h *ListingHandler) updateListing(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid listing id", nil)
		return
	}

	var req updateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid request payload", nil)
		return
	}

	if !validateListingFields(c, req.Type, req.SwapType, req.Latitude, req.Longitude, req.Price) {
		return
	}

	listing, err := h.service.UpdateListing(c.Request.Context(), Listing{
		ID:          id,
		UserUUID:    req.UserUUID,
		Type:        req.Type,
		SwapType:    req.SwapType,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Price:       req.Price,
		Images:      h.images.Resolve(req.Images),
	})
	if err != nil {
		if err == ErrListingNotFound {
			response.SendAPIResponse(c, http.StatusNotFound, false, "listing not found", nil)
			return
		}
		response.SendAPIResponse(c, http.StatusInternalServerError, false, err.Error(), nil)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "listing updated", listing)
}

// @Summary      Deactivate a listing
// @Description  Soft-removes a listing so it never appears in feeds again
// @Tags         listings
// @Produce      json
// @Param        id   path      string  true  "Listing ID"
// @Param        user_uuid query string true "Owner UUID"
// @Success      200  {object}  response.APIResponse "Listing removed successfully"
// @Failure      400  {object}  response.APIResponse "Invalid listing ID"
// @Failure      404  {object}  response.APIResponse "Listing not found"
// @Failure      500  {object}  response.APIResponse "Internal server error"
// @Router       /listings/{id} [delete]
func (h *ListingHandler) deactivateListing(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid listing id", nil)
		return
	}

	ownerUUID := c.Query("user_uuid")
	if _, err := uuid.Parse(ownerUUID); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid user_uuid", nil)
		return
	}

	if err := h.service.DeactivateListing(c.Request.Context(), id, ownerUUID); err != nil {
		if err == ErrListingNotFound {
			response.SendAPIResponse(c, http.StatusNotFound, false, "listing not found", nil)
			return
		}
		response.SendAPIResponse(c, http.StatusInternalServerError, false, err.Error(), nil)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "listing removed", nil)
}

// @Summary      Get listing by ID
// @Tags         listings
// @Produce      json
// @Param        id   path      string  true  "Listing ID"
// @Success      200  {object}  response.APIResponse{data=Listing} "Listing retrieved successfully"
// @Failure      400  {object}  response.APIResponse "Invalid listing ID"
// @Failure      404  {object}  response.APIResponse "Listing not found"
// @Failure      500  {object}  response.APIResponse "Internal server error"
// @Router       /listings/{id} [get]
func (h *ListingHandler) getListingByID(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid listing id", nil)
		return
	}

	listing, err := h.service.GetListingByID(c.Request.Context(), id)
	if err != nil {
		if err == ErrListingNotFound {
			response.SendAPIResponse(c, http.StatusNotFound, false, "listing not found", nil)
			return
		}
		response.SendAPIResponse(c, http.StatusInternalServerError, false, err.Error(), nil)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "listing fetched", listing)
}

// @Summary      List listings
// @Description  Retrieves a paginated list of active listings with optional filters
// @Tags         listings
// @Produce      json
// @Param        page       query     int     false  "Page number" default(1)
// @Param        limit      query     int     false  "Items per page" default(10)
// @Param        user_uuid  query     string  false  "Filter by owner UUID"
// @Param        type       query     string  false  "Filter by listing type" Enums(home, car, others)
// @Param        swap_type  query     string  false  "Filter by swap mode" Enums(permanent, temporary)
// @Success      200  {object}  response.APIResponse{data=ListingList} "Listings retrieved successfully"
// @Failure      500  {object}  response.APIResponse "Internal server error"
// @Router       /listings [get]
func (h *ListingHandler) listListings(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	filters := ListingFilters{}

	if userUUID := c.Query("user_uuid"); userUUID != "" {
		if _, err := uuid.Parse(userUUID); err == nil {
			filters.UserUUID = &userUUID
		}
	}

	if listingType := c.Query("type"); listingType != "" {
		if isValidType(listingType) {
			filters.Type = &listingType
		}
	}

	if swapType := c.Query("swap_type"); swapType != "" {
		if isValidSwapType(swapType) {
			filters.SwapType = &swapType
		}
	}

	list, total, err := h.service.ListListings(c.Request.Context(), filters, page, limit)
	if err != nil {
		response.SendAPIResponse(c, http.StatusInternalServerError, false, err.Error(), nil)
		return
	}

	data := ListingList{Items: list, Total: total, Page: page, Limit: limit}
	response.SendAPIResponse(c, http.StatusOK, true, "listings listed", data)
}

// @Summary      List listings by user
// @Tags         listings
// @Produce      json
// @Param        uuid   path      string  true   "Owner UUID"
// @Param        page   query     int  false  "Page number" default(1)
// @Param        limit  query     int  false  "Items per page" default(10)
// @Success      200  {object}  response.APIResponse{data=ListingList} "User listings retrieved successfully"
// @Failure      400  {object}  response.APIResponse "Invalid user UUID"
// @Failure      500  {object}  response.APIResponse "Internal server error"
// @Router       /users/{uuid}/listings [get]
func (h *ListingHandler) listListingsByUser(c *gin.Context) {
	userUUID := c.Param("uuid")
	if _, err := uuid.Parse(userUUID); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid user uuid", nil)
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	list, total, err := h.service.ListListingsByUser(c.Request.Context(), userUUID, page, limit)
	if err != nil {
		response.SendAPIResponse(c, http.StatusInternalServerError, false, err.Error(), nil)
		return
	}

	data := ListingList{Items: list, Total: total, Page: page, Limit: limit}
	response.SendAPIResponse(c, http.StatusOK, true, "user listings listed", data)
}
