package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/umalmyha/crm/internal/model"
	"github.com/umalmyha/crm/internal/service"
)

type newContact struct {
	CustomerID  string              `json:"customerId" validate:"required,uuid"`
	FirstName   string              `json:"firstName" validate:"required"`
	LastName    string              `json:"lastName" validate:"required"`
	Email       string              `json:"email" validate:"required,email"`
	Phone       string              `json:"phone"`
	Title       string              `json:"title"`
	Department  string              `json:"department"`
	Status      model.ContactStatus `json:"status" validate:"omitempty,oneof=active inactive"`
	Avatar      string              `json:"avatar"`
	LastContact *time.Time          `json:"lastContact"`
}

type updateContact struct {
	ID          string               `param:"id" validate:"required,uuid"`
	CustomerID  *string              `json:"customerId" validate:"omitempty,uuid"`
	FirstName   *string              `json:"firstName" validate:"omitempty,min=1"`
	LastName    *string              `json:"lastName" validate:"omitempty,min=1"`
	Email       *string              `json:"email" validate:"omitempty,email"`
	Phone       *string              `json:"phone"`
	Title       *string              `json:"title"`
	Department  *string              `json:"department"`
	Status      *model.ContactStatus `json:"status" validate:"omitempty,oneof=active inactive"`
	Avatar      *string              `json:"avatar"`
	LastContact *time.Time           `json:"lastContact"`
}

func (uc *updateContact) patch() model.ContactPatch {
	return model.ContactPatch{
		CustomerID:  uc.CustomerID,
		FirstName:   uc.FirstName,
		LastName:    uc.LastName,
		Email:       uc.Email,
		Phone:       uc.Phone,
		Title:       uc.Title,
		Department:  uc.Department,
		Status:      uc.Status,
		Avatar:      uc.Avatar,
		LastContact: uc.LastContact,
	}
}

// ContactHTTPHandler is http handler for contact endpoint
type ContactHTTPHandler struct {
	contactSvc service.ContactService
}

// NewContactHTTPHandler builds new ContactHTTPHandler
func NewContactHTTPHandler(contactSvc service.ContactService) *ContactHTTPHandler {
	return &ContactHTTPHandler{contactSvc: contactSvc}
}

// Get gets contact
// @Summary     Get single contact by id
// @Description Returns single contact with provided id
// @Tags        contacts
// @Produce     json
// @Param       id     path 	string true "Contact guid" Format(uuid)
// @Success     200    {object} model.Contact
// @Failure     400    {object} echo.HTTPError
// @Failure     404    {object} echo.HTTPError
// @Failure     500    {object} echo.HTTPError
// @Router      /api/v1/contacts/{id} [get]
func (h *ContactHTTPHandler) Get(c echo.Context) error {
	id := c.Param("id")
	if err := c.Validate(&identifier{ID: id}); err != nil {
		return err
	}

	contact, err := h.contactSvc.FindByID(c.Request().Context(), id)
	if err != nil {
		return err
	}

	if contact == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Contact not found")
	}
	return c.JSON(http.StatusOK, contact)
}

// GetAll gets all contacts
// @Summary     Get all contacts
// @Description Returns all contacts, optionally restricted to one customer
// @Tags        contacts
// @Produce     json
// @Param       customerId query    string false "Customer guid" Format(uuid)
// @Success     200    	   {array}  model.Contact
// @Failure     500    	   {object} echo.HTTPError
// @Router      /api/v1/contacts [get]
func (h *ContactHTTPHandler) GetAll(c echo.Context) error {
	customerID := c.QueryParam("customerId")
	if customerID != "" {
		if err := c.Validate(&identifier{ID: customerID}); err != nil {
			return err
		}

		contacts, err := h.contactSvc.FindByCustomerID(c.Request().Context(), customerID)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, contacts)
	}

	contacts, err := h.contactSvc.FindAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, contacts)
}

// Post creates new contact
// @Summary     New contact
// @Description Creates new contact with generated id and lifecycle defaults
// @Tags        contacts
// @Accept		json
// @Produce     json
// @Param 		newContact body	    newContact true "Data for new contact"
// @Success     201    	   {object} model.Contact
// @Failure     400    	   {object} echo.HTTPError
// @Failure     500    	   {object} echo.HTTPError
// @Router      /api/v1/contacts [post]
func (h *ContactHTTPHandler) Post(c echo.Context) error {
	var nc newContact
	if err := c.Bind(&nc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.Validate(&nc); err != nil {
		return err
	}

	contact, err := h.contactSvc.Create(c.Request().Context(), &model.Contact{
		CustomerID:  nc.CustomerID,
		FirstName:   nc.FirstName,
		LastName:    nc.LastName,
		Email:       nc.Email,
		Phone:       nc.Phone,
		Title:       nc.Title,
		Department:  nc.Department,
		Status:      nc.Status,
		Avatar:      nc.Avatar,
		LastContact: nc.LastContact,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, contact)
}

// Put updates contact
// @Summary     Update contact
// @Description Merges provided fields over existing contact
// @Tags        contacts
// @Accept		json
// @Produce     json
// @Param       id     		  path 	   string 		 true "Contact guid" Format(uuid)
// @Param 		updateContact body	   updateContact true "Contact fields to change"
// @Success     200    		  {object} model.Contact
// @Failure     400    		  {object} echo.HTTPError
// @Failure     404    		  {object} echo.HTTPError
// @Failure     500    		  {object} echo.HTTPError
// @Router      /api/v1/contacts/{id} [put]
func (h *ContactHTTPHandler) Put(c echo.Context) error {
	var uc updateContact
	if err := c.Bind(&uc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.Validate(&uc); err != nil {
		return err
	}

	contact, err := h.contactSvc.Update(c.Request().Context(), uc.ID, uc.patch())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, contact)
}

// DeleteByID deletes contact
// @Summary     Delete contact by id
// @Description Deletes contact with provided id
// @Tags        contacts
// @Produce     json
// @Param       id     path 	string true "Contact guid" Format(uuid)
// @Success     204    "Successful status code"
// @Failure     400    {object} echo.HTTPError
// @Failure     404    {object} echo.HTTPError
// @Failure     500    {object} echo.HTTPError
// @Router      /api/v1/contacts/{id} [delete]
func (h *ContactHTTPHandler) DeleteByID(c echo.Context) error {
	id := c.Param("id")
	if err := c.Validate(&identifier{ID: id}); err != nil {
		return err
	}

	if err := h.contactSvc.DeleteByID(c.Request().Context(), id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
