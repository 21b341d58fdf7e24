package infra

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	apperrors "github.com/umalmyha/crm/internal/errors"
	"github.com/umalmyha/crm/internal/handlers"
	"github.com/umalmyha/crm/internal/service"
	"github.com/umalmyha/crm/internal/validation"
)

// Services groups the service layer the router exposes over HTTP
type Services struct {
	CustomerSvc  service.CustomerService
	ContactSvc   service.ContactService
	DealSvc      service.DealService
	ActivitySvc  service.ActivityService
	DashboardSvc service.DashboardService
}

// Router wires the HTTP surface: validator, error mapping and per-entity routes
func Router(svc Services) (*echo.Echo, error) {
	e := echo.New()

	v, err := validation.NewEcho()
	if err != nil {
		return nil, err
	}
	e.Validator = v

	e.HTTPErrorHandler = httpErrorHandler(e)

	// Handlers
	customerHandler := handlers.NewCustomerHTTPHandler(svc.CustomerSvc)
	contactHandler := handlers.NewContactHTTPHandler(svc.ContactSvc)
	dealHandler := handlers.NewDealHTTPHandler(svc.DealSvc)
	activityHandler := handlers.NewActivityHTTPHandler(svc.ActivitySvc)
	dashboardHandler := handlers.NewDashboardHTTPHandler(svc.DashboardSvc)

	// API routes
	api := e.Group("/api/v1")

	customersAPI := api.Group("/customers")
	customersAPI.GET("", customerHandler.GetAll)
	customersAPI.GET("/:id", customerHandler.Get)
	customersAPI.POST("", customerHandler.Post)
	customersAPI.PUT("/:id", customerHandler.Put)
	customersAPI.DELETE("/:id", customerHandler.DeleteByID)

	contactsAPI := api.Group("/contacts")
	contactsAPI.GET("", contactHandler.GetAll)
	contactsAPI.GET("/:id", contactHandler.Get)
	contactsAPI.POST("", contactHandler.Post)
	contactsAPI.PUT("/:id", contactHandler.Put)
	contactsAPI.DELETE("/:id", contactHandler.DeleteByID)

	dealsAPI := api.Group("/deals")
	dealsAPI.GET("", dealHandler.GetAll)
	dealsAPI.GET("/:id", dealHandler.Get)
	dealsAPI.POST("", dealHandler.Post)
	dealsAPI.PUT("/:id", dealHandler.Put)
	dealsAPI.DELETE("/:id", dealHandler.DeleteByID)

	api.GET("/activities", activityHandler.GetFeed)
	api.GET("/dashboard", dashboardHandler.Get)

	return e, nil
}

// httpErrorHandler maps the error taxonomy to HTTP statuses:
// absent entry - 404, payload/business violations - 400, storage trouble - 500
func httpErrorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var (
			notFoundErr *apperrors.EntryNotFoundErr
			payloadErr  *validation.PayloadError
			businessErr *apperrors.BusinessErr
			storageErr  *apperrors.StorageErr
		)

		switch {
		case errors.As(err, &notFoundErr):
			err = echo.NewHTTPError(http.StatusNotFound, notFoundErr.Error())
		case errors.As(err, &payloadErr):
			if !c.Response().Committed {
				if jsonErr := c.JSON(http.StatusBadRequest, payloadErr); jsonErr != nil {
					logrus.Errorf("failed to write validation error response - %v", jsonErr)
				}
			}
			return
		case errors.As(err, &businessErr):
			if !c.Response().Committed {
				if jsonErr := c.JSON(http.StatusBadRequest, businessErr); jsonErr != nil {
					logrus.Errorf("failed to write business error response - %v", jsonErr)
				}
			}
			return
		case errors.As(err, &storageErr):
			logrus.Errorf("storage error on %s %s - %v", c.Request().Method, c.Request().URL.Path, err)
			err = echo.NewHTTPError(http.StatusInternalServerError, "storage failure")
		}

		e.DefaultHTTPErrorHandler(err, c)
	}
}
