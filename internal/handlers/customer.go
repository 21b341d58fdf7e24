package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/umalmyha/crm/internal/model"
	"github.com/umalmyha/crm/internal/service"
)

type identifier struct {
	ID string `json:"id" validate:"required,uuid"`
}

type newCustomer struct {
	Name        string               `json:"name" validate:"required"`
	Email       string               `json:"email" validate:"required,email"`
	Phone       string               `json:"phone"`
	Industry    string               `json:"industry"`
	Status      model.CustomerStatus `json:"status" validate:"omitempty,oneof=active inactive"`
	Tier        model.Tier           `json:"tier" validate:"omitempty,oneof=enterprise growth startup"`
	Revenue     int64                `json:"revenue" validate:"gte=0"`
	Employees   int                  `json:"employees" validate:"gte=0"`
	Website     string               `json:"website"`
	Logo        string               `json:"logo"`
	HealthScore int                  `json:"healthScore" validate:"gte=0,lte=100"`
	LastContact *time.Time           `json:"lastContact"`
	Address     model.Address        `json:"address"`
}

type updateCustomer struct {
	ID          string                `param:"id" validate:"required,uuid"`
	Name        *string               `json:"name" validate:"omitempty,min=1"`
	Email       *string               `json:"email" validate:"omitempty,email"`
	Phone       *string               `json:"phone"`
	Industry    *string               `json:"industry"`
	Status      *model.CustomerStatus `json:"status" validate:"omitempty,oneof=active inactive"`
	Tier        *model.Tier           `json:"tier" validate:"omitempty,oneof=enterprise growth startup"`
	Revenue     *int64                `json:"revenue" validate:"omitempty,gte=0"`
	Employees   *int                  `json:"employees" validate:"omitempty,gte=0"`
	Website     *string               `json:"website"`
	Logo        *string               `json:"logo"`
	HealthScore *int                  `json:"healthScore" validate:"omitempty,gte=0,lte=100"`
	LastContact *time.Time            `json:"lastContact"`
	Address     *model.Address        `json:"address"`
}

func (uc *updateCustomer) patch() model.CustomerPatch {
	return model.CustomerPatch{
		Name:        uc.Name,
		Email:       uc.Email,
		Phone:       uc.Phone,
		Industry:    uc.Industry,
		Status:      uc.Status,
		Tier:        uc.Tier,
		Revenue:     uc.Revenue,
		Employees:   uc.Employees,
		Website:     uc.Website,
		Logo:        uc.Logo,
		HealthScore: uc.HealthScore,
		LastContact: uc.LastContact,
		Address:     uc.Address,
	}
}

// CustomerHTTPHandler is http handler for customer endpoint
type CustomerHTTPHandler struct {
	customerSvc service.CustomerService
}

// NewCustomerHTTPHandler builds new CustomerHTTPHandler
func NewCustomerHTTPHandler(customerSvc service.CustomerService) *CustomerHTTPHandler {
	return &CustomerHTTPHandler{customerSvc: customerSvc}
}

// Get gets customer
// @Summary     Get single customer by id
// @Description Returns single customer with provided id
// @Tags        customers
// @Produce     json
// @Param       id     path 	string true "Customer guid" Format(uuid)
// @Success     200    {object} model.Customer
// @Failure     400    {object} echo.HTTPError
// @Failure     404    {object} echo.HTTPError
// @Failure     500    {object} echo.HTTPError
// @Router      /api/v1/customers/{id} [get]
func (h *CustomerHTTPHandler) Get(c echo.Context) error {
	id := c.Param("id")
	if err := c.Validate(&identifier{ID: id}); err != nil {
		return err
	}

	customer, err := h.customerSvc.FindByID(c.Request().Context(), id)
	if err != nil {
		return err
	}

	if customer == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Customer not found")
	}
	return c.JSON(http.StatusOK, customer)
}

// GetAll gets all customers
// @Summary     Get all customers
// @Description Returns all customers in store insertion order
// @Tags        customers
// @Produce     json
// @Success     200    {array}  model.Customer
// @Failure     500    {object} echo.HTTPError
// @Router      /api/v1/customers [get]
func (h *CustomerHTTPHandler) GetAll(c echo.Context) error {
	customers, err := h.customerSvc.FindAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customers)
}

// Post creates new customer
// @Summary     New customer
// @Description Creates new customer with generated id and lifecycle defaults
// @Tags        customers
// @Accept		json
// @Produce     json
// @Param 		newCustomer body	 newCustomer true "Data for new customer"
// @Success     201    		{object} model.Customer
// @Failure     400    		{object} echo.HTTPError
// @Failure     500    		{object} echo.HTTPError
// @Router      /api/v1/customers [post]
func (h *CustomerHTTPHandler) Post(c echo.Context) error {
	var nc newCustomer
	if err := c.Bind(&nc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.Validate(&nc); err != nil {
		return err
	}

	customer, err := h.customerSvc.Create(c.Request().Context(), &model.Customer{
		Name:        nc.Name,
		Email:       nc.Email,
		Phone:       nc.Phone,
		Industry:    nc.Industry,
		Status:      nc.Status,
		Tier:        nc.Tier,
		Revenue:     nc.Revenue,
		Employees:   nc.Employees,
		Website:     nc.Website,
		Logo:        nc.Logo,
		HealthScore: nc.HealthScore,
		LastContact: nc.LastContact,
		Address:     nc.Address,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, customer)
}

// Put updates customer
// @Summary     Update customer
// @Description Merges provided fields over existing customer, address is replaced as a whole
// @Tags        customers
// @Accept		json
// @Produce     json
// @Param       id     		   path 	string 		   true "Customer guid" Format(uuid)
// @Param 		updateCustomer body	    updateCustomer true "Customer fields to change"
// @Success     200    		   {object} model.Customer
// @Failure     400    		   {object} echo.HTTPError
// @Failure     404    		   {object} echo.HTTPError
// @Failure     500    		   {object} echo.HTTPError
// @Router      /api/v1/customers/{id} [put]
func (h *CustomerHTTPHandler) Put(c echo.Context) error {
	var uc updateCustomer
	if err := c.Bind(&uc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.Validate(&uc); err != nil {
		return err
	}

	customer, err := h.customerSvc.Update(c.Request().Context(), uc.ID, uc.patch())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, customer)
}

// DeleteByID deletes customer
// @Summary     Delete customer by id
// @Description Deletes customer with provided id, contacts and deals are left in place
// @Tags        customers
// @Produce     json
// @Param       id     path 	string true "Customer guid" Format(uuid)
// @Success     204    "Successful status code"
// @Failure     400    {object} echo.HTTPError
// @Failure     404    {object} echo.HTTPError
// @Failure     500    {object} echo.HTTPError
// @Router      /api/v1/customers/{id} [delete]
func (h *CustomerHTTPHandler) DeleteByID(c echo.Context) error {
	id := c.Param("id")
	if err := c.Validate(&identifier{ID: id}); err != nil {
		return err
	}

	if err := h.customerSvc.DeleteByID(c.Request().Context(), id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
