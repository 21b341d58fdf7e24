package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/umalmyha/crm/internal/cache"
	"github.com/umalmyha/crm/internal/errors"
	"github.com/umalmyha/crm/internal/model"
	"github.com/umalmyha/crm/internal/repository"
)

// CustomerService is the customer CRUD facade. Deleting a customer does not
// cascade to its contacts or deals, they are orphaned in place.
type CustomerService interface {
	FindAll(context.Context) ([]*model.Customer, error)
	FindByID(context.Context, string) (*model.Customer, error)
	Create(context.Context, *model.Customer) (*model.Customer, error)
	Update(context.Context, string, model.CustomerPatch) (*model.Customer, error)
	DeleteByID(context.Context, string) error
}

type customerService struct {
	customerRps   repository.CustomerRepository
	customerCache cache.CustomerCacheRepository
	newID         func() string
	now           func() time.Time
}

// NewCustomerService builds new CustomerService
func NewCustomerService(customerRps repository.CustomerRepository, customerCache cache.CustomerCacheRepository) CustomerService {
	return &customerService{
		customerRps:   customerRps,
		customerCache: customerCache,
		newID:         uuid.NewString,
		now:           time.Now,
	}
}

func (s *customerService) FindAll(ctx context.Context) ([]*model.Customer, error) {
	customers, err := s.customerRps.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return customers, nil
}

func (s *customerService) FindByID(ctx context.Context, id string) (*model.Customer, error) {
	c, err := s.customerCache.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if c != nil {
		return c, nil
	}

	c, err = s.customerRps.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if c == nil {
		return nil, nil
	}

	if err := s.customerCache.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *customerService) Create(ctx context.Context, c *model.Customer) (*model.Customer, error) {
	now := s.now().UTC()

	c.ID = s.newID()
	if c.Status == "" {
		c.Status = model.CustomerStatusActive
	}
	c.CreatedAt = now
	c.UpdatedAt = now

	if err := s.customerRps.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *customerService) Update(ctx context.Context, id string, patch model.CustomerPatch) (*model.Customer, error) {
	existing, err := s.customerRps.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		return nil, errors.NewEntryNotFoundErr("Customer not found")
	}

	merged := existing.MergePatch(patch)
	merged.UpdatedAt = s.now().UTC()

	updated, err := s.customerRps.Update(ctx, &merged)
	if err != nil {
		return nil, err
	}

	if !updated {
		return nil, errors.NewEntryNotFoundErr("Customer not found")
	}

	if err := s.customerCache.DeleteByID(ctx, merged.ID); err != nil {
		return nil, err
	}
	return &merged, nil
}

func (s *customerService) DeleteByID(ctx context.Context, id string) error {
	if err := s.customerCache.DeleteByID(ctx, id); err != nil {
		return err
	}

	deleted, err := s.customerRps.DeleteByID(ctx, id)
	if err != nil {
		return err
	}

	if !deleted {
		return errors.NewEntryNotFoundErr("Customer not found")
	}
	return nil
}
