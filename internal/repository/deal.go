package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/jackc/pgx/v4"
	apperrors "github.com/umalmyha/crm/internal/errors"
	"github.com/umalmyha/crm/internal/model"
	"github.com/umalmyha/crm/pkg/db/transactor"
)

// DealRepository is the deal store contract
type DealRepository interface {
	FindByID(context.Context, string) (*model.Deal, error)
	FindAll(context.Context) ([]*model.Deal, error)
	FindByCustomerID(context.Context, string) ([]*model.Deal, error)
	Create(context.Context, *model.Deal) error
	Update(context.Context, *model.Deal) (bool, error)
	DeleteByID(context.Context, string) (bool, error)
}

type memoryDealRepository struct {
	mu    sync.RWMutex
	items []model.Deal
	index map[string]int
}

// NewMemoryDealRepository builds a mutex-guarded in-memory deal store
func NewMemoryDealRepository() DealRepository {
	return &memoryDealRepository{
		items: make([]model.Deal, 0),
		index: make(map[string]int),
	}
}

func (r *memoryDealRepository) FindByID(_ context.Context, id string) (*model.Deal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return nil, nil
	}

	d := r.items[i]
	return &d, nil
}

func (r *memoryDealRepository) FindAll(_ context.Context) ([]*model.Deal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	deals := make([]*model.Deal, 0, len(r.items))
	for i := range r.items {
		d := r.items[i]
		deals = append(deals, &d)
	}
	return deals, nil
}

func (r *memoryDealRepository) FindByCustomerID(_ context.Context, customerID string) ([]*model.Deal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	deals := make([]*model.Deal, 0)
	for i := range r.items {
		if r.items[i].CustomerID == customerID {
			d := r.items[i]
			deals = append(deals, &d)
		}
	}
	return deals, nil
}

func (r *memoryDealRepository) Create(_ context.Context, d *model.Deal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.index[d.ID]; ok {
		return apperrors.NewBusinessErr("id", "deal with such id already exists")
	}

	r.items = append(r.items, *d)
	r.index[d.ID] = len(r.items) - 1
	return nil
}

func (r *memoryDealRepository) Update(_ context.Context, d *model.Deal) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[d.ID]
	if !ok {
		return false, nil
	}

	r.items[i] = *d
	return true, nil
}

func (r *memoryDealRepository) DeleteByID(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[id]
	if !ok {
		return false, nil
	}

	r.items = append(r.items[:i], r.items[i+1:]...)
	delete(r.index, id)
	for j := i; j < len(r.items); j++ {
		r.index[r.items[j].ID] = j
	}
	return true, nil
}

type postgresDealRepository struct {
	trx transactor.PgxWithinTransactionExecutor
}

// NewPostgresDealRepository builds deal store over postgres
func NewPostgresDealRepository(trx transactor.PgxWithinTransactionExecutor) DealRepository {
	return &postgresDealRepository{trx: trx}
}

const dealColumns = `id, customer_id, contact_id, title, value, stage, probability, expected_close_date,
					 actual_close_date, status, description, created_at, updated_at`

func (r *postgresDealRepository) FindByID(ctx context.Context, id string) (*model.Deal, error) {
	q := "SELECT " + dealColumns + " FROM deals WHERE id = $1"
	row := r.trx.Executor(ctx).QueryRow(ctx, q, id)

	d, err := r.scanRow(row)
	if err != nil {
		return nil, apperrors.NewStorageErr("find deal by id", err)
	}
	return d, nil
}

func (r *postgresDealRepository) FindAll(ctx context.Context) ([]*model.Deal, error) {
	q := "SELECT " + dealColumns + " FROM deals ORDER BY created_at"
	rows, err := r.trx.Executor(ctx).Query(ctx, q)
	if err != nil {
		return nil, apperrors.NewStorageErr("find all deals", err)
	}
	defer rows.Close()

	deals, err := r.scanRows(rows)
	if err != nil {
		return nil, apperrors.NewStorageErr("find all deals", err)
	}
	return deals, nil
}

func (r *postgresDealRepository) FindByCustomerID(ctx context.Context, customerID string) ([]*model.Deal, error) {
	q := "SELECT " + dealColumns + " FROM deals WHERE customer_id = $1 ORDER BY created_at"
	rows, err := r.trx.Executor(ctx).Query(ctx, q, customerID)
	if err != nil {
		return nil, apperrors.NewStorageErr("find deals by customer id", err)
	}
	defer rows.Close()

	deals, err := r.scanRows(rows)
	if err != nil {
		return nil, apperrors.NewStorageErr("find deals by customer id", err)
	}
	return deals, nil
}

func (r *postgresDealRepository) Create(ctx context.Context, d *model.Deal) error {
	q := `INSERT INTO deals(` + dealColumns + `)
		  VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.trx.Executor(ctx).Exec(ctx, q,
		d.ID, d.CustomerID, d.ContactID, d.Title, d.Value, d.Stage, d.Probability, d.ExpectedCloseDate,
		d.ActualCloseDate, d.Status, d.Description, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return apperrors.NewStorageErr("create deal", err)
	}
	return nil
}

func (r *postgresDealRepository) Update(ctx context.Context, d *model.Deal) (bool, error) {
	q := `UPDATE deals SET customer_id = $1, contact_id = $2, title = $3, value = $4, stage = $5,
			  probability = $6, expected_close_date = $7, actual_close_date = $8, status = $9,
			  description = $10, updated_at = $11
		  WHERE id = $12`
	comm, err := r.trx.Executor(ctx).Exec(ctx, q,
		d.CustomerID, d.ContactID, d.Title, d.Value, d.Stage, d.Probability, d.ExpectedCloseDate,
		d.ActualCloseDate, d.Status, d.Description, d.UpdatedAt, d.ID,
	)
	if err != nil {
		return false, apperrors.NewStorageErr("update deal", err)
	}
	return comm.RowsAffected() > 0, nil
}

func (r *postgresDealRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	q := "DELETE FROM deals WHERE id = $1"
	comm, err := r.trx.Executor(ctx).Exec(ctx, q, id)
	if err != nil {
		return false, apperrors.NewStorageErr("delete deal", err)
	}
	return comm.RowsAffected() > 0, nil
}

func (r *postgresDealRepository) scanRow(row pgx.Row) (*model.Deal, error) {
	var d model.Deal
	err := row.Scan(&d.ID, &d.CustomerID, &d.ContactID, &d.Title, &d.Value, &d.Stage, &d.Probability,
		&d.ExpectedCloseDate, &d.ActualCloseDate, &d.Status, &d.Description, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (r *postgresDealRepository) scanRows(rows pgx.Rows) ([]*model.Deal, error) {
	deals := make([]*model.Deal, 0)
	for rows.Next() {
		d, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		deals = append(deals, d)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return deals, nil
}
