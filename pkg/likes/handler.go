package likes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"swapyard/pkg/listings"
	"swapyard/pkg/response"
)

type LikeHandler struct {
	service LikeService
	state   LikeStateStore
}

func NewLikeHandler(service LikeService, state LikeStateStore) *LikeHandler {
	return &LikeHandler{service: service, state: state}
}

func (h *LikeHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/likes", h.likeListing)
	router.DELETE("/likes", h.unlikeListing)
	router.GET("/users/:uuid/likes", h.listLikes)
	router.PUT("/likes/state", h.setLikeState)
	router.GET("/likes/state", h.getLikeState)
}

type likeRequest struct {
	UserUUID  string `json:"user_uuid" binding:"required"`
	ListingID string `json:"listing_id" binding:"required"`
}

// likeListing godoc
// @Summary Like a listing
// @Description Records a like and, when the listing owner already liked one of the user's listings, creates a match
// @Tags likes
// @Accept json
// @Produce json
// @Param like body likeRequest true "Like"
// @Success 201 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Failure 500 {object} response.APIResponse
// @Router /likes [post]
func (h *LikeHandler) likeListing(c *gin.Context) {
	var req likeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid request body", nil)
		return
	}
	if _, err := uuid.Parse(req.UserUUID); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid user_uuid, must be UUID", nil)
		return
	}
	if _, err := uuid.Parse(req.ListingID); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid listing_id, must be UUID", nil)
		return
	}

	result, err := h.service.LikeListing(c.Request.Context(), req.UserUUID, req.ListingID)
	if err != nil {
		switch {
		case errors.Is(err, listings.ErrListingNotFound):
			response.SendAPIResponse(c, http.StatusNotFound, false, "listing not found", nil)
		case errors.Is(err, ErrSelfLike):
			response.SendAPIResponse(c, http.StatusBadRequest, false, "cannot like your own listing", nil)
		case errors.Is(err, ErrAlreadyLiked):
			response.SendAPIResponse(c, http.StatusConflict, false, "listing already liked", nil)
		default:
			response.SendAPIResponse(c, http.StatusInternalServerError, false, "failed to like listing", nil)
		}
		return
	}

	response.SendAPIResponse(c, http.StatusCreated, true, "listing liked", result)
}

// unlikeListing godoc
// @Summary Remove a like
// @Tags likes
// @Param user_uuid query string true "User UUID"
// @Param listing_id query string true "Listing UUID"
// @Produce json
// @Success 200 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Failure 500 {object} response.APIResponse
// @Router /likes [delete]
func (h *LikeHandler) unlikeListing(c *gin.Context) {
	userUUID := c.Query("user_uuid")
	listingID := c.Query("listing_id")
	if _, err := uuid.Parse(userUUID); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid user_uuid, must be UUID", nil)
		return
	}
	if _, err := uuid.Parse(listingID); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid listing_id, must be UUID", nil)
		return
	}

	if err := h.service.UnlikeListing(c.Request.Context(), userUUID, listingID); err != nil {
		if errors.Is(err, ErrLikeNotFound) {
			response.SendAPIResponse(c, http.StatusNotFound, false, "like not found", nil)
			return
		}
		response.SendAPIResponse(c, http.StatusInternalServerError, false, "failed to remove like", nil)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "like removed", nil)
}

// listLikes godoc
// @Summary List a user's likes
// @Tags likes
// @Param uuid path string true "User UUID"
// @Produce json
// @Success 200 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Failure 500 {object} response.APIResponse
// @Router /users/{uuid}/likes [get]
func (h *LikeHandler) listLikes(c *gin.Context) {
	uid := c.Param("uuid")
	if _, err := uuid.Parse(uid); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid user uuid, must be UUID", nil)
		return
	}

	items, err := h.service.ListLikes(c.Request.Context(), uid)
	if err != nil {
		response.SendAPIResponse(c, http.StatusInternalServerError, false, "failed to fetch likes", nil)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "likes", map[string]interface{}{
		"likes": items,
		"count": len(items),
	})
}

type likeStateRequest struct {
	ClientID  string `json:"client_id" binding:"required"`
	ListingID string `json:"listing_id" binding:"required"`
	Liked     bool   `json:"liked"`
}

// setLikeState godoc
// @Summary Set anonymous like state
// @Description Persists a like toggle for a client that has no account yet
// @Tags likes
// @Accept json
// @Produce json
// @Param state body likeStateRequest true "Like state"
// @Success 200 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Failure 500 {object} response.APIResponse
// @Router /likes/state [put]
func (h *LikeHandler) setLikeState(c *gin.Context) {
	var req likeStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid request body", nil)
		return
	}

	if err := h.state.SetLiked(c.Request.Context(), req.ClientID, req.ListingID, req.Liked); err != nil {
		response.SendAPIResponse(c, http.StatusInternalServerError, false, "failed to save like state", nil)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "like state saved", map[string]interface{}{
		"listing_id": req.ListingID,
		"liked":      req.Liked,
	})
}

// getLikeState godoc
// @Summary Get anonymous like state
// @Tags likes
// @Param client_id query string true "Client id"
// @Param listing_id query string true "Listing UUID"
// @Produce json
// @Success 200 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Failure 500 {object} response.APIResponse
// @Router /likes/state [get]
func (h *LikeHandler) getLikeState(c *gin.Context) {
	clientID := c.Query("client_id")
	listingID := c.Query("listing_id")
	if clientID == "" || listingID == "" {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "client_id and listing_id are required", nil)
		return
	}

	liked, err := h.state.IsLiked(c.Request.Context(), clientID, listingID)
	if err != nil {
		response.SendAPIResponse(c, http.StatusInternalServerError, false, "failed to read like state", nil)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "like state", map[string]interface{}{
		"listing_id": listingID,
		"liked":      liked,
	})
}
