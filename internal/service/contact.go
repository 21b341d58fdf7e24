package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/umalmyha/crm/internal/errors"
	"github.com/umalmyha/crm/internal/model"
	"github.com/umalmyha/crm/internal/repository"
)

// ContactService is the contact CRUD facade
type ContactService interface {
	FindAll(context.Context) ([]*model.Contact, error)
	FindByCustomerID(context.Context, string) ([]*model.Contact, error)
	FindByID(context.Context, string) (*model.Contact, error)
	Create(context.Context, *model.Contact) (*model.Contact, error)
	Update(context.Context, string, model.ContactPatch) (*model.Contact, error)
	DeleteByID(context.Context, string) error
}

type contactService struct {
	contactRps repository.ContactRepository
	newID      func() string
	now        func() time.Time
}

// NewContactService builds new ContactService
func NewContactService(contactRps repository.ContactRepository) ContactService {
	return &contactService{
		contactRps: contactRps,
		newID:      uuid.NewString,
		now:        time.Now,
	}
}

func (s *contactService) FindAll(ctx context.Context) ([]*model.Contact, error) {
	contacts, err := s.contactRps.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return contacts, nil
}

func (s *contactService) FindByCustomerID(ctx context.Context, customerID string) ([]*model.Contact, error) {
	contacts, err := s.contactRps.FindByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return contacts, nil
}

func (s *contactService) FindByID(ctx context.Context, id string) (*model.Contact, error) {
	c, err := s.contactRps.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *contactService) Create(ctx context.Context, c *model.Contact) (*model.Contact, error) {
	now := s.now().UTC()

	c.ID = s.newID()
	if c.Status == "" {
		c.Status = model.ContactStatusActive
	}
	c.CreatedAt = now
	c.UpdatedAt = now

	if err := s.contactRps.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *contactService) Update(ctx context.Context, id string, patch model.ContactPatch) (*model.Contact, error) {
	existing, err := s.contactRps.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		return nil, errors.NewEntryNotFoundErr("Contact not found")
	}

	merged := existing.MergePatch(patch)
	merged.UpdatedAt = s.now().UTC()

	updated, err := s.contactRps.Update(ctx, &merged)
	if err != nil {
		return nil, err
	}

	if !updated {
		return nil, errors.NewEntryNotFoundErr("Contact not found")
	}
	return &merged, nil
}

func (s *contactService) DeleteByID(ctx context.Context, id string) error {
	deleted, err := s.contactRps.DeleteByID(ctx, id)
	if err != nil {
		return err
	}

	if !deleted {
		return errors.NewEntryNotFoundErr("Contact not found")
	}
	return nil
}
