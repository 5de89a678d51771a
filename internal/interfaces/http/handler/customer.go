package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	customerapp "github.com/shopizer/backend/internal/application/customer"
	"github.com/shopizer/backend/internal/domain/merchant"
	"github.com/shopizer/backend/internal/domain/reference"
	"github.com/shopizer/backend/internal/domain/shared"
)

// CustomerService is the customer surface used by CustomerHandler
type CustomerService interface {
	ResourceService[customerapp.ReadableCustomer, customerapp.PersistableCustomer]
	List(ctx context.Context, store *merchant.Store, lang *reference.Language, criteria customerapp.CustomerListCriteria, page, count int) (*shared.Paginated[customerapp.ReadableCustomer], error)
}

// CustomerHandler handles customer administration endpoints
type CustomerHandler struct {
	resource[customerapp.ReadableCustomer, customerapp.PersistableCustomer]
	customers CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customers CustomerService) *CustomerHandler {
	h := &CustomerHandler{customers: customers}
	h.svc = customers
	return h
}

// List godoc
// @Summary      List customers
// @Description  Retrieve a page of the store customers, filtered by email or name
// @Tags         customers
// @Produce      json
// @Param        email query string false "Email filter"
// @Param        name query string false "Name filter"
// @Param        page query int false "Page number, 0 with count 0 returns every item"
// @Param        count query int false "Page size"
// @Param        store query string false "Store code" default(DEFAULT)
// @Param        lang query string false "Language code"
// @Success      200 {object} shared.Paginated[customerapp.ReadableCustomer]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /private/customers [get]
func (h *CustomerHandler) List(c *gin.Context) {
	var criteria customerapp.CustomerListCriteria
	if !h.bindQuery(c, &criteria) {
		return
	}
	q, ok := h.pageQuery(c)
	if !ok {
		return
	}
	store, lang := scope(c)
	out, err := h.customers.List(c.Request.Context(), store, lang, criteria, q.Page, q.Count)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, out)
}

// OptionService is the customer option surface
type OptionService interface {
	ResourceService[customerapp.ReadableOption, customerapp.PersistableOption]
	ListService[customerapp.ReadableOption]
	CodeChecker
}

// OptionValueService is the customer option value surface
type OptionValueService interface {
	ResourceService[customerapp.ReadableOptionValue, customerapp.PersistableOptionValue]
	ListService[customerapp.ReadableOptionValue]
	CodeChecker
}

// OptionHandler handles customer option endpoints
type OptionHandler struct {
	resource[customerapp.ReadableOption, customerapp.PersistableOption]
	options OptionService
}

// NewOptionHandler creates a new OptionHandler
func NewOptionHandler(options OptionService) *OptionHandler {
	h := &OptionHandler{options: options}
	h.svc = options
	return h
}

// List godoc
// @Summary      List customer options
// @Description  Retrieve a page of the store customer options
// @Tags         customer-options
// @Produce      json
// @Param        page query int false "Page number, 0 with count 0 returns every item"
// @Param        count query int false "Page size"
// @Param        store query string false "Store code" default(DEFAULT)
// @Param        lang query string false "Language code"
// @Success      200 {object} shared.Paginated[customerapp.ReadableOption]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /private/customers/options [get]
func (h *OptionHandler) List(c *gin.Context) { list(&h.BaseHandler, c, h.options) }

// Unique godoc
// @Summary      Check customer option code
// @Description  Report whether the store already uses a customer option code
// @Tags         customer-options
// @Produce      json
// @Param        code query string true "Code to check"
// @Param        store query string false "Store code" default(DEFAULT)
// @Param        lang query string false "Language code"
// @Success      200 {object} dto.UniqueResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /private/customers/options/unique [get]
func (h *OptionHandler) Unique(c *gin.Context) { h.unique(c, h.options) }

// OptionValueHandler handles customer option value endpoints
type OptionValueHandler struct {
	resource[customerapp.ReadableOptionValue, customerapp.PersistableOptionValue]
	values OptionValueService
}

// NewOptionValueHandler creates a new OptionValueHandler
func NewOptionValueHandler(values OptionValueService) *OptionValueHandler {
	h := &OptionValueHandler{values: values}
	h.svc = values
	return h
}

// List godoc
// @Summary      List customer option values
// @Description  Retrieve a page of the store customer option values
// @Tags         customer-options
// @Produce      json
// @Param        page query int false "Page number, 0 with count 0 returns every item"
// @Param        count query int false "Page size"
// @Param        store query string false "Store code" default(DEFAULT)
// @Param        lang query string false "Language code"
// @Success      200 {object} shared.Paginated[customerapp.ReadableOptionValue]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /private/customers/options/values [get]
func (h *OptionValueHandler) List(c *gin.Context) { list(&h.BaseHandler, c, h.values) }

// Unique godoc
// @Summary      Check customer option value code
// @Description  Report whether the store already uses a customer option value code
// @Tags         customer-options
// @Produce      json
// @Param        code query string true "Code to check"
// @Param        store query string false "Store code" default(DEFAULT)
// @Param        lang query string false "Language code"
// @Success      200 {object} dto.UniqueResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /private/customers/options/values/unique [get]
func (h *OptionValueHandler) Unique(c *gin.Context) { h.unique(c, h.values) }


// Get godoc
// @Summary      Get customer by ID
// @Description  Retrieve a customer of the store by its ID
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        id path string true "Customer ID" format(uuid)
// @Param        store query string false "Store code" default(DEFAULT)
// @Param        lang query string false "Language code"
// @Success      200 {object} customerapp.ReadableCustomer
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /private/customers/{id} [get]
func (h *CustomerHandler) Get(c *gin.Context) { h.resource.Get(c) }

// Create godoc
// @Summary      Create a customer
// @Description  Create a customer in the store. Descriptions are upserted by language.
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        request body customerapp.PersistableCustomer true "Customer payload"
// @Param        store query string false "Store code" default(DEFAULT)
// @Param        lang query string false "Language code"
// @Success      201 {object} customerapp.ReadableCustomer
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /private/customers [post]
func (h *CustomerHandler) Create(c *gin.Context) { h.resource.Create(c) }

// Update godoc
// @Summary      Update a customer
// @Description  Update a customer of the store. Omitted fields keep their stored value.
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        id path string true "Customer ID" format(uuid)
// @Param        request body customerapp.PersistableCustomer true "Customer payload"
// @Param        store query string false "Store code" default(DEFAULT)
// @Param        lang query string false "Language code"
// @Success      200 {object} customerapp.ReadableCustomer
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /private/customers/{id} [put]
func (h *CustomerHandler) Update(c *gin.Context) { h.resource.Update(c) }

// Delete godoc
// @Summary      Delete a customer
// @Description  Delete a customer of the store
// @Tags         customers
// @Produce      json
// @Param        id path string true "Customer ID" format(uuid)
// @Param        store query string false "Store code" default(DEFAULT)
// @Param        lang query string false "Language code"
// @Success      204 "No Content"
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /private/customers/{id} [delete]
func (h *CustomerHandler) Delete(c *gin.Context) { h.resource.Delete(c) }


// Get godoc
// @Summary      Get customer option by ID
// @Description  Retrieve a customer option of the store by its ID
// @Tags         customer-options
// @Accept       json
// @Produce      json
// @Param        id path string true "Option ID" format(uuid)
// @Param        store query string false "Store code" default(DEFAULT)
// @Param        lang query string false "Language code"
// @Success      200 {object} customerapp.ReadableOption
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /private/customers/options/{id} [get]
func (h *OptionHandler) Get(c *gin.Context) { h.resource.Get(c) }

// Create godoc
// @Summary      Create a customer option
// @Description  Create a customer option in the store. Descriptions are upserted by language.
// @Tags         customer-options
// @Accept       json
// @Produce      json
// @Param        request body customerapp.PersistableOption true "Option payload"
// @Param        store query string false "Store code" default(DEFAULT)
// @Param        lang query string false "Language code"
// @Success      201 {object} customerapp.ReadableOption
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /private/customers/options [post]
func (h *OptionHandler) Create(c *gin.Context) { h.resource.Create(c) }

// Update godoc
// @Summary      Update a customer option
// @Description  Update a customer option of the store. Omitted fields keep their stored value.
// @Tags         customer-options
// @Accept       json
// @Produce      json
// @Param        id path string true "Option ID" format(uuid)
// @Param        request body customerapp.PersistableOption true "Option payload"
// @Param        store query string false "Store code" default(DEFAULT)
// @Param        lang query string false "Language code"
// @Success      200 {object} customerapp.ReadableOption
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /private/customers/options/{id} [put]
func (h *OptionHandler) Update(c *gin.Context) { h.resource.Update(c) }

// Delete godoc
// @Summary      Delete a customer option
// @Description  Delete a customer option of the store
// @Tags         customer-options
// @Produce      json
// @Param        id path string true "Option ID" format(uuid)
// @Param        store query string false "Store code" default(DEFAULT)
// @Param        lang query string false "Language code"
// @Success      204 "No Content"
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /private/customers/options/{id} [delete]
func (h *OptionHandler) Delete(c *gin.Context) { h.resource.Delete(c) }


// Get godoc
// @Summary      Get customer option value by ID
// @Description  Retrieve a customer option value of the store by its ID
// @Tags         customer-options
// @Accept       json
// @Produce      json
// @Param        id path string true "Option value ID" format(uuid)
// @Param        store query string false "Store code" default(DEFAULT)
// @Param        lang query string false "Language code"
// @Success      200 {object} customerapp.ReadableOptionValue
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /private/customers/options/values/{id} [get]
func (h *OptionValueHandler) Get(c *gin.Context) { h.resource.Get(c) }

// Create godoc
// @Summary      Create a customer option value
// @Description  Create a customer option value in the store. Descriptions are upserted by language.
// @Tags         customer-options
// @Accept       json
// @Produce      json
// @Param        request body customerapp.PersistableOptionValue true "Option value payload"
// @Param        store query string false "Store code" default(DEFAULT)
// @Param        lang query string false "Language code"
// @Success      201 {object} customerapp.ReadableOptionValue
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /private/customers/options/values [post]
func (h *OptionValueHandler) Create(c *gin.Context) { h.resource.Create(c) }

// Update godoc
// @Summary      Update a customer option value
// @Description  Update a customer option value of the store. Omitted fields keep their stored value.
// @Tags         customer-options
// @Accept       json
// @Produce      json
// @Param        id path string true "Option value ID" format(uuid)
// @Param        request body customerapp.PersistableOptionValue true "Option value payload"
// @Param        store query string false "Store code" default(DEFAULT)
// @Param        lang query string false "Language code"
// @Success      200 {object} customerapp.ReadableOptionValue
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /private/customers/options/values/{id} [put]
func (h *OptionValueHandler) Update(c *gin.Context) { h.resource.Update(c) }

// Delete godoc
// @Summary      Delete a customer option value
// @Description  Delete a customer option value of the store
// @Tags         customer-options
// @Produce      json
// @Param        id path string true "Option value ID" format(uuid)
// @Param        store query string false "Store code" default(DEFAULT)
// @Param        lang query string false "Language code"
// @Success      204 "No Content"
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /private/customers/options/values/{id} [delete]
func (h *OptionValueHandler) Delete(c *gin.Context) { h.resource.Delete(c) }
