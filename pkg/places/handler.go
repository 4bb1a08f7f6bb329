package places

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"swapyard/pkg/response"
)

type PlacesHandler struct {
	client *Client
}

func NewPlacesHandler(client *Client) *PlacesHandler {
	return &PlacesHandler{client: client}
}

func (h *PlacesHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/places/autocomplete", h.autocomplete)
	router.GET("/places/details", h.details)
	router.GET("/places/reverse-geocode", h.reverseGeocode)
}

// autocomplete godoc
// @Summary Place autocomplete
// @Description Proxies a partial location query to the geocoding upstream
// @Tags places
// @Param q query string true "Partial query"
// @Produce json
// @Success 200 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Failure 502 {object} response.APIResponse
// @Router /places/autocomplete [get]
func (h *PlacesHandler) autocomplete(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "q is required", nil)
		return
	}

	result, err := h.client.Autocomplete(c.Request.Context(), query)
	if err != nil {
		response.SendAPIResponse(c, http.StatusBadGateway, false, "place lookup failed", nil)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "suggestions", result)
}

// details godoc
// @Summary Place details
// @Tags places
// @Param place_id query string true "Place id"
// @Produce json
// @Success 200 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Failure 502 {object} response.APIResponse
// @Router /places/details [get]
func (h *PlacesHandler) details(c *gin.Context) {
	placeID := c.Query("place_id")
	if placeID == "" {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "place_id is required", nil)
		return
	}

	result, err := h.client.Details(c.Request.Context(), placeID)
	if err != nil {
		response.SendAPIResponse(c, http.StatusBadGateway, false, "place lookup failed", nil)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "place details", result)
}

// reverseGeocode godoc
// @Summary Reverse geocode
// @Tags places
// @Param lat query number true "Latitude"
// @Param lon query number true "Longitude"
// @Produce json
// @Success 200 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Failure 502 {object} response.APIResponse
// @Router /places/reverse-geocode [get]
func (h *PlacesHandler) reverseGeocode(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lon, lonErr := strconv.ParseFloat(c.Query("lon"), 64)
	if latErr != nil || lonErr != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "lat and lon are required numbers", nil)
		return
	}

	result, err := h.client.ReverseGeocode(c.Request.Context(), lat, lon)
	if err != nil {
		response.SendAPIResponse(c, http.StatusBadGateway, false, "reverse geocode failed", nil)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "place", result)
}
