package matches

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"swapyard/pkg/response"
)

type MatchHandler struct {
	service MatchService
}

func NewMatchHandler(service MatchService) *MatchHandler {
	return &MatchHandler{service: service}
}

func (h *MatchHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/matches", h.listMatches)
	router.GET("/matches/:id", h.getMatch)
	router.DELETE("/matches/:id", h.deleteMatch)
}

// listMatches godoc
// @Summary List matches for a user
// @Description Returns the user's matches, newest first, with listing details. Sides whose listing no longer exists are flagged stale.
// @Tags matches
// @Param user_uuid query string true "User UUID"
// @Produce json
// @Success 200 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Failure 500 {object} response.APIResponse
// @Router /matches [get]
func (h *MatchHandler) listMatches(c *gin.Context) {
	uid := c.Query("user_uuid")
	if _, err := uuid.Parse(uid); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid user_uuid, must be UUID", nil)
		return
	}

	items, err := h.service.ListMatches(c.Request.Context(), uid)
	if err != nil {
		response.SendAPIResponse(c, http.StatusInternalServerError, false, "failed to fetch matches", nil)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "matches", map[string]interface{}{
		"matches": items,
		"count":   len(items),
	})
}

// getMatch godoc
// @Summary Get a match by id
// @Tags matches
// @Param id path string true "Match UUID"
// @Produce json
// @Success 200 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Failure 500 {object} response.APIResponse
// @Router /matches/{id} [get]
func (h *MatchHandler) getMatch(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid match id, must be UUID", nil)
		return
	}

	m, err := h.service.GetMatch(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrMatchNotFound) {
			response.SendAPIResponse(c, http.StatusNotFound, false, "match not found", nil)
			return
		}
		response.SendAPIResponse(c, http.StatusInternalServerError, false, "failed to fetch match", nil)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "match", m)
}

// deleteMatch godoc
// @Summary Delete a match
// @Description Removes a match, typically after one of its listings has gone stale
// @Tags matches
// @Param id path string true "Match UUID"
// @Param user_uuid query string true "Requesting participant UUID"
// @Produce json
// @Success 200 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Failure 500 {object} response.APIResponse
// @Router /matches/{id} [delete]
func (h *MatchHandler) deleteMatch(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid match id, must be UUID", nil)
		return
	}
	uid := c.Query("user_uuid")
	if _, err := uuid.Parse(uid); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid user_uuid, must be UUID", nil)
		return
	}

	if err := h.service.DeleteMatch(c.Request.Context(), id, uid); err != nil {
		if errors.Is(err, ErrMatchNotFound) {
			response.SendAPIResponse(c, http.StatusNotFound, false, "match not found", nil)
			return
		}
		response.SendAPIResponse(c, http.StatusInternalServerError, false, "failed to delete match", nil)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "match deleted", nil)
}
