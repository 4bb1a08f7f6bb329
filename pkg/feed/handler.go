package feed

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"swapyard/pkg/geo"
	"swapyard/pkg/response"
)

const defaultPriceMax = 1_000_000

type FeedHandler struct {
	service FeedService
}

func NewFeedHandler(service FeedService) *FeedHandler {
	return &FeedHandler{service: service}
}

func (h *FeedHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/feed", h.getFeed)
}

// @Summary      Get the browse feed
// @Description  Returns active listings filtered and ranked for a viewer. The viewer's own listings are always excluded.
// @Tags         feed
// @Produce      json
// @Param        viewer_uuid query string false "Viewer UUID"
// @Param        type        query string false "Category filter" Enums(all, home, car, others) default(all)
// @Param        swap_type   query string false "Swap mode filter" Enums(all, permanent, temporary) default(all)
// @Param        price_min   query int    false "Inclusive price lower bound" default(0)
// @Param        price_max   query int    false "Inclusive price upper bound" default(1000000)
// @Param        lat         query number false "Radius filter center latitude"
// @Param        lon         query number false "Radius filter center longitude"
// @Param        radius_km   query number false "Radius in kilometers" default(50)
// @Param        sort        query string false "Sort strategy" Enums(most-relevant, highest-cost, lowest-cost, nearest-location, verified-first) default(most-relevant)
// @Success      200 {object} response.APIResponse
// @Failure      400 {object} response.APIResponse
// @Failure      500 {object} response.APIResponse
// @Router       /feed [get]
func (h *FeedHandler) getFeed(c *gin.Context) {
	viewerUUID := c.Query("viewer_uuid")
	if viewerUUID != "" {
		if _, err := uuid.Parse(viewerUUID); err != nil {
			response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid viewer_uuid", nil)
			return
		}
	}

	spec := Spec{
		Type:     c.DefaultQuery("type", FilterAll),
		SwapType: c.DefaultQuery("swap_type", FilterAll),
		PriceMax: defaultPriceMax,
		RadiusKm: 50,
	}

	if v := c.Query("price_min"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid price_min", nil)
			return
		}
		spec.PriceMin = n
	}
	if v := c.Query("price_max"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid price_max", nil)
			return
		}
		spec.PriceMax = n
	}
	if v := c.Query("radius_km"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid radius_km", nil)
			return
		}
		spec.RadiusKm = f
	}

	latStr, lonStr := c.Query("lat"), c.Query("lon")
	if (latStr == "") != (lonStr == "") {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "lat and lon must be provided together", nil)
		return
	}
	if latStr != "" {
		lat, errLat := strconv.ParseFloat(latStr, 64)
		lon, errLon := strconv.ParseFloat(lonStr, 64)
		if errLat != nil || errLon != nil {
			response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid lat/lon", nil)
			return
		}
		spec.Center = &geo.Point{Latitude: lat, Longitude: lon}
	}

	strategy := c.DefaultQuery("sort", SortMostRelevant)

	list, err := h.service.GetFeed(c.Request.Context(), viewerUUID, spec, strategy)
	if err != nil {
		response.SendAPIResponse(c, http.StatusInternalServerError, false, err.Error(), nil)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "feed", map[string]interface{}{
		"items": list,
		"count": len(list),
	})
}
