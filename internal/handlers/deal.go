package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/umalmyha/crm/internal/model"
	"github.com/umalmyha/crm/internal/service"
)

type newDeal struct {
	CustomerID        string      `json:"customerId" validate:"required,uuid"`
	ContactID         *string     `json:"contactId" validate:"omitempty,uuid"`
	Title             string      `json:"title" validate:"required"`
	Value             int64       `json:"value" validate:"gt=0"`
	Stage             model.Stage `json:"stage" validate:"omitempty,oneof=qualification proposal negotiation closed-won closed-lost"`
	Probability       int         `json:"probability" validate:"gte=0,lte=100"`
	ExpectedCloseDate *time.Time  `json:"expectedCloseDate"`
	Description       string      `json:"description"`
}

type updateDeal struct {
	ID                string       `param:"id" validate:"required,uuid"`
	CustomerID        *string      `json:"customerId" validate:"omitempty,uuid"`
	ContactID         *string      `json:"contactId" validate:"omitempty,uuid"`
	Title             *string      `json:"title" validate:"omitempty,min=1"`
	Value             *int64       `json:"value" validate:"omitempty,gt=0"`
	Stage             *model.Stage `json:"stage" validate:"omitempty,oneof=qualification proposal negotiation closed-won closed-lost"`
	Probability       *int         `json:"probability" validate:"omitempty,gte=0,lte=100"`
	ExpectedCloseDate *time.Time   `json:"expectedCloseDate"`
	Description       *string      `json:"description"`
}

func (ud *updateDeal) patch() model.DealPatch {
	return model.DealPatch{
		CustomerID:        ud.CustomerID,
		ContactID:         ud.ContactID,
		Title:             ud.Title,
		Value:             ud.Value,
		Stage:             ud.Stage,
		Probability:       ud.Probability,
		ExpectedCloseDate: ud.ExpectedCloseDate,
		Description:       ud.Description,
	}
}

// DealHTTPHandler is http handler for deal endpoint
type DealHTTPHandler struct {
	dealSvc service.DealService
}

// NewDealHTTPHandler builds new DealHTTPHandler
func NewDealHTTPHandler(dealSvc service.DealService) *DealHTTPHandler {
	return &DealHTTPHandler{dealSvc: dealSvc}
}

// Get gets deal
// @Summary     Get single deal by id
// @Description Returns single deal with provided id
// @Tags        deals
// @Produce     json
// @Param       id     path 	string true "Deal guid" Format(uuid)
// @Success     200    {object} model.Deal
// @Failure     400    {object} echo.HTTPError
// @Failure     404    {object} echo.HTTPError
// @Failure     500    {object} echo.HTTPError
// @Router      /api/v1/deals/{id} [get]
func (h *DealHTTPHandler) Get(c echo.Context) error {
	id := c.Param("id")
	if err := c.Validate(&identifier{ID: id}); err != nil {
		return err
	}

	deal, err := h.dealSvc.FindByID(c.Request().Context(), id)
	if err != nil {
		return err
	}

	if deal == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Deal not found")
	}
	return c.JSON(http.StatusOK, deal)
}

// GetAll gets all deals
// @Summary     Get all deals
// @Description Returns all deals, optionally restricted to one customer
// @Tags        deals
// @Produce     json
// @Param       customerId query    string false "Customer guid" Format(uuid)
// @Success     200    	   {array}  model.Deal
// @Failure     500    	   {object} echo.HTTPError
// @Router      /api/v1/deals [get]
func (h *DealHTTPHandler) GetAll(c echo.Context) error {
	customerID := c.QueryParam("customerId")
	if customerID != "" {
		if err := c.Validate(&identifier{ID: customerID}); err != nil {
			return err
		}

		deals, err := h.dealSvc.FindByCustomerID(c.Request().Context(), customerID)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, deals)
	}

	deals, err := h.dealSvc.FindAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deals)
}

// Post creates new deal
// @Summary     New deal
// @Description Creates new deal, status is derived from stage
// @Tags        deals
// @Accept		json
// @Produce     json
// @Param 		newDeal body	 newDeal true "Data for new deal"
// @Success     201    	{object} model.Deal
// @Failure     400    	{object} echo.HTTPError
// @Failure     500    	{object} echo.HTTPError
// @Router      /api/v1/deals [post]
func (h *DealHTTPHandler) Post(c echo.Context) error {
	var nd newDeal
	if err := c.Bind(&nd); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.Validate(&nd); err != nil {
		return err
	}

	deal, err := h.dealSvc.Create(c.Request().Context(), &model.Deal{
		CustomerID:        nd.CustomerID,
		ContactID:         nd.ContactID,
		Title:             nd.Title,
		Value:             nd.Value,
		Stage:             nd.Stage,
		Probability:       nd.Probability,
		ExpectedCloseDate: nd.ExpectedCloseDate,
		Description:       nd.Description,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, deal)
}

// Put updates deal
// @Summary     Update deal
// @Description Merges provided fields over existing deal, status follows stage
// @Tags        deals
// @Accept		json
// @Produce     json
// @Param       id     	   path 	string 	   true "Deal guid" Format(uuid)
// @Param 		updateDeal body	    updateDeal true "Deal fields to change"
// @Success     200    	   {object} model.Deal
// @Failure     400    	   {object} echo.HTTPError
// @Failure     404    	   {object} echo.HTTPError
// @Failure     500    	   {object} echo.HTTPError
// @Router      /api/v1/deals/{id} [put]
func (h *DealHTTPHandler) Put(c echo.Context) error {
	var ud updateDeal
	if err := c.Bind(&ud); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.Validate(&ud); err != nil {
		return err
	}

	deal, err := h.dealSvc.Update(c.Request().Context(), ud.ID, ud.patch())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, deal)
}

// DeleteByID deletes deal
// @Summary     Delete deal by id
// @Description Deletes deal with provided id
// @Tags        deals
// @Produce     json
// @Param       id     path 	string true "Deal guid" Format(uuid)
// @Success     204    "Successful status code"
// @Failure     400    {object} echo.HTTPError
// @Failure     404    {object} echo.HTTPError
// @Failure     500    {object} echo.HTTPError
// @Router      /api/v1/deals/{id} [delete]
func (h *DealHTTPHandler) DeleteByID(c echo.Context) error {
	id := c.Param("id")
	if err := c.Validate(&identifier{ID: id}); err != nil {
		return err
	}

	if err := h.dealSvc.DeleteByID(c.Request().Context(), id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
