package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/umalmyha/crm/internal/service"
)

type activityFeedQuery struct {
	Limit int `query:"limit" validate:"gte=0"`
}

// ActivityHTTPHandler is http handler for the read-only activity feed
type ActivityHTTPHandler struct {
	activitySvc service.ActivityService
}

// NewActivityHTTPHandler builds new ActivityHTTPHandler
func NewActivityHTTPHandler(activitySvc service.ActivityService) *ActivityHTTPHandler {
	return &ActivityHTTPHandler{activitySvc: activitySvc}
}

// GetFeed gets latest activities
// @Summary     Get activity feed
// @Description Returns latest activities sorted by timestamp descending
// @Tags        activities
// @Produce     json
// @Param       limit  query    int false "Maximum feed entries, default 10"
// @Success     200    {array}  model.Activity
// @Failure     400    {object} echo.HTTPError
// @Failure     500    {object} echo.HTTPError
// @Router      /api/v1/activities [get]
func (h *ActivityHTTPHandler) GetFeed(c echo.Context) error {
	var q activityFeedQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.Validate(&q); err != nil {
		return err
	}

	activities, err := h.activitySvc.Feed(c.Request().Context(), q.Limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, activities)
}
