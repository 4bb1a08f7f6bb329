package push

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"swapyard/pkg/response"
)

type PushHandler struct {
	repo SubscriptionRepository
}

func NewPushHandler(repo SubscriptionRepository) *PushHandler {
	return &PushHandler{repo: repo}
}

func (h *PushHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/push/subscriptions", h.addSubscription)
	router.DELETE("/push/subscriptions/:id", h.removeSubscription)
}

type addSubscriptionRequest struct {
	UserUUID    string `json:"user_uuid" binding:"required"`
	EndpointARN string `json:"endpoint_arn" binding:"required"`
}

// addSubscription godoc
// @Summary Register a push subscription
// @Tags push
// @Accept json
// @Produce json
// @Param subscription body addSubscriptionRequest true "Subscription"
// @Success 201 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Failure 500 {object} response.APIResponse
// @Router /push/subscriptions [post]
func (h *PushHandler) addSubscription(c *gin.Context) {
	var req addSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid request body", nil)
		return
	}
	if _, err := uuid.Parse(req.UserUUID); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid user_uuid, must be UUID", nil)
		return
	}

	sub, err := h.repo.AddSubscription(c.Request.Context(), req.UserUUID, req.EndpointARN)
	if err != nil {
		response.SendAPIResponse(c, http.StatusInternalServerError, false, "failed to register subscription", nil)
		return
	}

	response.SendAPIResponse(c, http.StatusCreated, true, "subscription registered", sub)
}

// removeSubscription godoc
// @Summary Remove a push subscription
// @Tags push
// @Param id path string true "Subscription UUID"
// @Param user_uuid query string true "Owner UUID"
// @Produce json
// @Success 200 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Failure 500 {object} response.APIResponse
// @Router /push/subscriptions/{id} [delete]
func (h *PushHandler) removeSubscription(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid subscription id, must be UUID", nil)
		return
	}
	userUUID := c.Query("user_uuid")
	if _, err := uuid.Parse(userUUID); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid user_uuid, must be UUID", nil)
		return
	}

	if err := h.repo.RemoveSubscription(c.Request.Context(), id, userUUID); err != nil {
		if errors.Is(err, ErrSubscriptionNotFound) {
			response.SendAPIResponse(c, http.StatusNotFound, false, "subscription not found", nil)
			return
		}
		response.SendAPIResponse(c, http.StatusInternalServerError, false, "failed to remove subscription", nil)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "subscription removed", nil)
}
