package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/umalmyha/crm/internal/errors"
	"github.com/umalmyha/crm/internal/model"
	"github.com/umalmyha/crm/internal/repository"
)

// DealService is the deal CRUD facade. Status always follows stage and
// actualCloseDate is stamped when a deal leaves the active status,
// cleared again if it is reopened.
type DealService interface {
	FindAll(context.Context) ([]*model.Deal, error)
	FindByCustomerID(context.Context, string) ([]*model.Deal, error)
	FindByID(context.Context, string) (*model.Deal, error)
	Create(context.Context, *model.Deal) (*model.Deal, error)
	Update(context.Context, string, model.DealPatch) (*model.Deal, error)
	DeleteByID(context.Context, string) error
}

type dealService struct {
	dealRps repository.DealRepository
	newID   func() string
	now     func() time.Time
}

// NewDealService builds new DealService
func NewDealService(dealRps repository.DealRepository) DealService {
	return &dealService{
		dealRps: dealRps,
		newID:   uuid.NewString,
		now:     time.Now,
	}
}

func (s *dealService) FindAll(ctx context.Context) ([]*model.Deal, error) {
	deals, err := s.dealRps.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return deals, nil
}

func (s *dealService) FindByCustomerID(ctx context.Context, customerID string) ([]*model.Deal, error) {
	deals, err := s.dealRps.FindByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return deals, nil
}

func (s *dealService) FindByID(ctx context.Context, id string) (*model.Deal, error) {
	d, err := s.dealRps.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (s *dealService) Create(ctx context.Context, d *model.Deal) (*model.Deal, error) {
	now := s.now().UTC()

	d.ID = s.newID()
	if d.Stage == "" {
		d.Stage = model.StageQualification
	}
	d.Status = model.StatusForStage(d.Stage)
	if d.Status != model.DealStatusActive {
		d.ActualCloseDate = &now
	}
	d.CreatedAt = now
	d.UpdatedAt = now

	if err := s.dealRps.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *dealService) Update(ctx context.Context, id string, patch model.DealPatch) (*model.Deal, error) {
	existing, err := s.dealRps.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		return nil, errors.NewEntryNotFoundErr("Deal not found")
	}

	now := s.now().UTC()

	merged := existing.MergePatch(patch)
	merged.UpdatedAt = now

	switch {
	case existing.Status == model.DealStatusActive && merged.Status != model.DealStatusActive:
		merged.ActualCloseDate = &now
	case merged.Status == model.DealStatusActive:
		merged.ActualCloseDate = nil
	}

	updated, err := s.dealRps.Update(ctx, &merged)
	if err != nil {
		return nil, err
	}

	if !updated {
		return nil, errors.NewEntryNotFoundErr("Deal not found")
	}
	return &merged, nil
}

func (s *dealService) DeleteByID(ctx context.Context, id string) error {
	deleted, err := s.dealRps.DeleteByID(ctx, id)
	if err != nil {
		return err
	}

	if !deleted {
		return errors.NewEntryNotFoundErr("Deal not found")
	}
	return nil
}
