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

// CustomerRepository is the customer store contract. FindByID returns
// nil without error when id is absent. Update and DeleteByID report
// whether any row was touched.
type CustomerRepository interface {
	FindByID(context.Context, string) (*model.Customer, error)
	FindAll(context.Context) ([]*model.Customer, error)
	Create(context.Context, *model.Customer) error
	Update(context.Context, *model.Customer) (bool, error)
	DeleteByID(context.Context, string) (bool, error)
}

type memoryCustomerRepository struct {
	mu    sync.RWMutex
	items []model.Customer
	index map[string]int
}

// NewMemoryCustomerRepository builds a mutex-guarded in-memory customer store,
// insertion order preserved
func NewMemoryCustomerRepository() CustomerRepository {
	return &memoryCustomerRepository{
		items: make([]model.Customer, 0),
		index: make(map[string]int),
	}
}

func (r *memoryCustomerRepository) FindByID(_ context.Context, id string) (*model.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return nil, nil
	}

	c := r.items[i]
	return &c, nil
}

func (r *memoryCustomerRepository) FindAll(_ context.Context) ([]*model.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customers := make([]*model.Customer, 0, len(r.items))
	for i := range r.items {
		c := r.items[i]
		customers = append(customers, &c)
	}
	return customers, nil
}

func (r *memoryCustomerRepository) Create(_ context.Context, c *model.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.index[c.ID]; ok {
		return apperrors.NewBusinessErr("id", "customer with such id already exists")
	}

	r.items = append(r.items, *c)
	r.index[c.ID] = len(r.items) - 1
	return nil
}

func (r *memoryCustomerRepository) Update(_ context.Context, c *model.Customer) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[c.ID]
	if !ok {
		return false, nil
	}

	r.items[i] = *c
	return true, nil
}

func (r *memoryCustomerRepository) DeleteByID(_ context.Context, id string) (bool, error) {
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

type postgresCustomerRepository struct {
	trx transactor.PgxWithinTransactionExecutor
}

// NewPostgresCustomerRepository builds customer store over postgres,
// queries go through the context transaction when one is carried
func NewPostgresCustomerRepository(trx transactor.PgxWithinTransactionExecutor) CustomerRepository {
	return &postgresCustomerRepository{trx: trx}
}

func (r *postgresCustomerRepository) FindByID(ctx context.Context, id string) (*model.Customer, error) {
	q := `SELECT id, name, email, phone, industry, status, tier, revenue, employees, website, logo,
				 health_score, last_contact, street, city, state, zip, country, created_at, updated_at
		  FROM customers WHERE id = $1`
	row := r.trx.Executor(ctx).QueryRow(ctx, q, id)

	c, err := r.scanRow(row)
	if err != nil {
		return nil, apperrors.NewStorageErr("find customer by id", err)
	}
	return c, nil
}

func (r *postgresCustomerRepository) FindAll(ctx context.Context) ([]*model.Customer, error) {
	customers := make([]*model.Customer, 0)
	q := `SELECT id, name, email, phone, industry, status, tier, revenue, employees, website, logo,
				 health_score, last_contact, street, city, state, zip, country, created_at, updated_at
		  FROM customers ORDER BY created_at`

	rows, err := r.trx.Executor(ctx).Query(ctx, q)
	if err != nil {
		return nil, apperrors.NewStorageErr("find all customers", err)
	}
	defer rows.Close()

	for rows.Next() {
		c, err := r.scanRow(rows)
		if err != nil {
			return nil, apperrors.NewStorageErr("find all customers", err)
		}
		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageErr("find all customers", err)
	}
	return customers, nil
}

func (r *postgresCustomerRepository) Create(ctx context.Context, c *model.Customer) error {
	q := `INSERT INTO customers(id, name, email, phone, industry, status, tier, revenue, employees, website, logo,
								health_score, last_contact, street, city, state, zip, country, created_at, updated_at)
		  VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.trx.Executor(ctx).Exec(ctx, q,
		c.ID, c.Name, c.Email, c.Phone, c.Industry, c.Status, c.Tier, c.Revenue, c.Employees, c.Website, c.Logo,
		c.HealthScore, c.LastContact, c.Address.Street, c.Address.City, c.Address.State, c.Address.Zip,
		c.Address.Country, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return apperrors.NewStorageErr("create customer", err)
	}
	return nil
}

func (r *postgresCustomerRepository) Update(ctx context.Context, c *model.Customer) (bool, error) {
	q := `UPDATE customers SET name = $1, email = $2, phone = $3, industry = $4, status = $5, tier = $6,
			  revenue = $7, employees = $8, website = $9, logo = $10, health_score = $11, last_contact = $12,
			  street = $13, city = $14, state = $15, zip = $16, country = $17, updated_at = $18
		  WHERE id = $19`
	comm, err := r.trx.Executor(ctx).Exec(ctx, q,
		c.Name, c.Email, c.Phone, c.Industry, c.Status, c.Tier, c.Revenue, c.Employees, c.Website, c.Logo,
		c.HealthScore, c.LastContact, c.Address.Street, c.Address.City, c.Address.State, c.Address.Zip,
		c.Address.Country, c.UpdatedAt, c.ID,
	)
	if err != nil {
		return false, apperrors.NewStorageErr("update customer", err)
	}
	return comm.RowsAffected() > 0, nil
}

func (r *postgresCustomerRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	q := "DELETE FROM customers WHERE id = $1"
	comm, err := r.trx.Executor(ctx).Exec(ctx, q, id)
	if err != nil {
		return false, apperrors.NewStorageErr("delete customer", err)
	}
	return comm.RowsAffected() > 0, nil
}

func (r *postgresCustomerRepository) scanRow(row pgx.Row) (*model.Customer, error) {
	var c model.Customer
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Industry, &c.Status, &c.Tier, &c.Revenue,
		&c.Employees, &c.Website, &c.Logo, &c.HealthScore, &c.LastContact, &c.Address.Street, &c.Address.City,
		&c.Address.State, &c.Address.Zip, &c.Address.Country, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}
