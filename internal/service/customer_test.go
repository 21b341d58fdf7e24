package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	cacheMocks "github.com/umalmyha/crm/internal/cache/mocks"
	apperrors "github.com/umalmyha/crm/internal/errors"
	"github.com/umalmyha/crm/internal/model"
	rpsMocks "github.com/umalmyha/crm/internal/repository/mocks"
)

type customerTestData struct {
	ctx      context.Context
	now      time.Time
	customer *model.Customer
}

type customerServiceTestSuite struct {
	suite.Suite
	customerSvc       *customerService
	customerRpsMock   *rpsMocks.CustomerRepository
	customerCacheMock *cacheMocks.CustomerCacheRepository
	testData          *customerTestData
}

func (s *customerServiceTestSuite) SetupSuite() {
	now := time.Date(2024, time.March, 14, 10, 30, 0, 0, time.UTC)
	s.testData = &customerTestData{
		ctx: context.Background(),
		now: now,
		customer: &model.Customer{
			ID:          "ecc770d9-4576-4f72-affa-8b1454246692",
			Name:        "Acme Corporation",
			Email:       "contact@acme.example",
			Phone:       "555-0134",
			Industry:    "Manufacturing",
			Status:      model.CustomerStatusActive,
			Tier:        model.TierEnterprise,
			Revenue:     4800000,
			Employees:   1200,
			HealthScore: 88,
			Address:     model.Address{City: "Springfield", State: "IL"},
			CreatedAt:   now.Add(-24 * time.Hour),
			UpdatedAt:   now.Add(-24 * time.Hour),
		},
	}
}

func (s *customerServiceTestSuite) SetupTest() {
	t := s.T()
	s.customerRpsMock = rpsMocks.NewCustomerRepository(t)
	s.customerCacheMock = cacheMocks.NewCustomerCacheRepository(t)

	svc := NewCustomerService(s.customerRpsMock, s.customerCacheMock).(*customerService)
	svc.newID = func() string { return "fa2e5380-21b4-4711-a2a2-3c2e30316ffb" }
	svc.now = func() time.Time { return s.testData.now }
	s.customerSvc = svc
}

func (s *customerServiceTestSuite) TestFindByIDFromCache() {
	ctx := s.testData.ctx
	customer := s.testData.customer

	s.customerCacheMock.On("FindByID", ctx, customer.ID).Return(customer, nil).Once()

	s.T().Log("customer must be found in cache")
	{
		_, err := s.customerSvc.FindByID(ctx, customer.ID)
		s.Assert().NoError(err, "no error must be raised")
		s.customerRpsMock.AssertNotCalled(s.T(), "FindByID", ctx, customer.ID)
	}
}

func (s *customerServiceTestSuite) TestFindByIDNotFound() {
	ctx := s.testData.ctx
	customer := s.testData.customer

	s.customerCacheMock.On("FindByID", ctx, customer.ID).Return(nil, nil).Once()
	s.customerRpsMock.On("FindByID", ctx, customer.ID).Return(nil, nil).Once()

	s.T().Log("customer is missing in cache and in primary datasource")
	{
		c, err := s.customerSvc.FindByID(ctx, customer.ID)
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().Nil(c, "no customer must be present but it was found")
		s.customerCacheMock.AssertNotCalled(s.T(), "Create", mock.AnythingOfType("*model.Customer"))
	}
}

func (s *customerServiceTestSuite) TestFindByIDCached() {
	ctx := s.testData.ctx
	customer := s.testData.customer

	s.customerCacheMock.On("FindByID", ctx, customer.ID).Return(nil, nil).Once()
	s.customerRpsMock.On("FindByID", ctx, customer.ID).Return(customer, nil).Once()
	s.customerCacheMock.On("Create", ctx, customer).Return(nil).Once()

	s.T().Log("customer is not in cache, found in primary datasource and cached")
	{
		c, err := s.customerSvc.FindByID(ctx, customer.ID)
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().NotNil(c, "customer must be found")
		s.customerCacheMock.AssertCalled(s.T(), "Create", ctx, mock.AnythingOfType("*model.Customer"))
	}
}

func (s *customerServiceTestSuite) TestCreateAssignsDefaults() {
	ctx := s.testData.ctx

	s.customerRpsMock.On("Create", ctx, mock.AnythingOfType("*model.Customer")).Return(nil).Once()

	s.T().Log("created customer must get generated id, default status and lifecycle dates")
	{
		c, err := s.customerSvc.Create(ctx, &model.Customer{
			Name:     "Test Co",
			Email:    "t@test.com",
			Phone:    "555",
			Industry: "Tech",
			Address:  model.Address{City: "X", State: "Y"},
		})
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().NotEmpty(c.ID, "id must be generated")
		s.Assert().Equal(model.CustomerStatusActive, c.Status, "status must default to active")
		s.Assert().Equal(s.testData.now, c.CreatedAt, "createdAt must be stamped with current time")
		s.Assert().Equal(c.CreatedAt, c.UpdatedAt, "createdAt and updatedAt must match on creation")
		s.Assert().Equal("Test Co", c.Name, "caller fields must be kept")
	}
}

func (s *customerServiceTestSuite) TestUpdateNotFound() {
	ctx := s.testData.ctx
	customer := s.testData.customer

	s.customerRpsMock.On("FindByID", ctx, customer.ID).Return(nil, nil).Once()

	s.T().Log("update of absent customer must fail with not found")
	{
		_, err := s.customerSvc.Update(ctx, customer.ID, model.CustomerPatch{})
		var notFoundErr *apperrors.EntryNotFoundErr
		s.Assert().ErrorAs(err, &notFoundErr, "not found error must be raised")
		s.customerRpsMock.AssertNotCalled(s.T(), "Update", ctx, mock.AnythingOfType("*model.Customer"))
	}
}

func (s *customerServiceTestSuite) TestUpdateMergesPatch() {
	ctx := s.testData.ctx
	customer := s.testData.customer

	name := "Acme Holdings"
	s.customerRpsMock.On("FindByID", ctx, customer.ID).Return(customer, nil).Once()
	s.customerRpsMock.On("Update", ctx, mock.AnythingOfType("*model.Customer")).Return(true, nil).Once()
	s.customerCacheMock.On("DeleteByID", ctx, customer.ID).Return(nil).Once()

	s.T().Log("only supplied fields must change, updatedAt must advance")
	{
		c, err := s.customerSvc.Update(ctx, customer.ID, model.CustomerPatch{Name: &name})
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().Equal(name, c.Name, "name must be replaced")
		s.Assert().Equal(customer.Email, c.Email, "email must stay untouched")
		s.Assert().True(c.UpdatedAt.After(customer.UpdatedAt), "updatedAt must advance")
	}
}

func (s *customerServiceTestSuite) TestDeleteByIDCacheFailed() {
	ctx := s.testData.ctx
	customer := s.testData.customer

	s.customerCacheMock.On("DeleteByID", ctx, customer.ID).Return(errors.New("cache err")).Once()

	s.T().Log("delete customer from cache failed")
	{
		err := s.customerSvc.DeleteByID(ctx, customer.ID)
		s.Assert().Error(err, "cache raised error - error must be raised up")
	}
}

func (s *customerServiceTestSuite) TestDeleteByIDNotFound() {
	ctx := s.testData.ctx
	customer := s.testData.customer

	s.customerCacheMock.On("DeleteByID", ctx, customer.ID).Return(nil).Once()
	s.customerRpsMock.On("DeleteByID", ctx, customer.ID).Return(false, nil).Once()

	s.T().Log("delete of absent customer must fail with not found")
	{
		err := s.customerSvc.DeleteByID(ctx, customer.ID)
		var notFoundErr *apperrors.EntryNotFoundErr
		s.Assert().ErrorAs(err, &notFoundErr, "not found error must be raised")
	}
}

func (s *customerServiceTestSuite) TestDeleteByIDSuccessfully() {
	ctx := s.testData.ctx
	customer := s.testData.customer

	s.customerCacheMock.On("DeleteByID", ctx, customer.ID).Return(nil).Once()
	s.customerRpsMock.On("DeleteByID", ctx, customer.ID).Return(true, nil).Once()

	s.T().Log("deleted successfully")
	{
		err := s.customerSvc.DeleteByID(ctx, customer.ID)
		s.Assert().NoError(err, "no error must be raised")
		s.customerRpsMock.AssertCalled(s.T(), "DeleteByID", ctx, customer.ID)
	}
}

func (s *customerServiceTestSuite) TestFindAllSuccessfully() {
	ctx := s.testData.ctx
	customer := s.testData.customer

	customers := []*model.Customer{
		customer,
	}

	s.customerRpsMock.On("FindAll", ctx).Return(customers, nil).Once()

	s.T().Log("customers must be found from data source")
	{
		_, err := s.customerSvc.FindAll(ctx)
		s.Assert().NoError(err, "no error must be raised")
	}
}

// start customer service test suite
func TestCustomerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(customerServiceTestSuite))
}
