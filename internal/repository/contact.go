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

// ContactRepository is the contact store contract
type ContactRepository interface {
	FindByID(context.Context, string) (*model.Contact, error)
	FindAll(context.Context) ([]*model.Contact, error)
	FindByCustomerID(context.Context, string) ([]*model.Contact, error)
	Create(context.Context, *model.Contact) error
	Update(context.Context, *model.Contact) (bool, error)
	DeleteByID(context.Context, string) (bool, error)
}

type memoryContactRepository struct {
	mu    sync.RWMutex
	items []model.Contact
	index map[string]int
}

// NewMemoryContactRepository builds a mutex-guarded in-memory contact store
func NewMemoryContactRepository() ContactRepository {
	return &memoryContactRepository{
		items: make([]model.Contact, 0),
		index: make(map[string]int),
	}
}

func (r *memoryContactRepository) FindByID(_ context.Context, id string) (*model.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return nil, nil
	}

	c := r.items[i]
	return &c, nil
}

func (r *memoryContactRepository) FindAll(_ context.Context) ([]*model.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	contacts := make([]*model.Contact, 0, len(r.items))
	for i := range r.items {
		c := r.items[i]
		contacts = append(contacts, &c)
	}
	return contacts, nil
}

func (r *memoryContactRepository) FindByCustomerID(_ context.Context, customerID string) ([]*model.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	contacts := make([]*model.Contact, 0)
	for i := range r.items {
		if r.items[i].CustomerID == customerID {
			c := r.items[i]
			contacts = append(contacts, &c)
		}
	}
	return contacts, nil
}

func (r *memoryContactRepository) Create(_ context.Context, c *model.Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.index[c.ID]; ok {
		return apperrors.NewBusinessErr("id", "contact with such id already exists")
	}

	r.items = append(r.items, *c)
	r.index[c.ID] = len(r.items) - 1
	return nil
}

func (r *memoryContactRepository) Update(_ context.Context, c *model.Contact) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[c.ID]
	if !ok {
		return false, nil
	}

	r.items[i] = *c
	return true, nil
}

func (r *memoryContactRepository) DeleteByID(_ context.Context, id string) (bool, error) {
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

type postgresContactRepository struct {
	trx transactor.PgxWithinTransactionExecutor
}

// NewPostgresContactRepository builds contact store over postgres
func NewPostgresContactRepository(trx transactor.PgxWithinTransactionExecutor) ContactRepository {
	return &postgresContactRepository{trx: trx}
}

const contactColumns = `id, customer_id, first_name, last_name, email, phone, title, department, status,
						avatar, last_contact, created_at, updated_at`

func (r *postgresContactRepository) FindByID(ctx context.Context, id string) (*model.Contact, error) {
	q := "SELECT " + contactColumns + " FROM contacts WHERE id = $1"
	row := r.trx.Executor(ctx).QueryRow(ctx, q, id)

	c, err := r.scanRow(row)
	if err != nil {
		return nil, apperrors.NewStorageErr("find contact by id", err)
	}
	return c, nil
}

func (r *postgresContactRepository) FindAll(ctx context.Context) ([]*model.Contact, error) {
	q := "SELECT " + contactColumns + " FROM contacts ORDER BY created_at"
	rows, err := r.trx.Executor(ctx).Query(ctx, q)
	if err != nil {
		return nil, apperrors.NewStorageErr("find all contacts", err)
	}
	defer rows.Close()

	contacts, err := r.scanRows(rows)
	if err != nil {
		return nil, apperrors.NewStorageErr("find all contacts", err)
	}
	return contacts, nil
}

func (r *postgresContactRepository) FindByCustomerID(ctx context.Context, customerID string) ([]*model.Contact, error) {
	q := "SELECT " + contactColumns + " FROM contacts WHERE customer_id = $1 ORDER BY created_at"
	rows, err := r.trx.Executor(ctx).Query(ctx, q, customerID)
	if err != nil {
		return nil, apperrors.NewStorageErr("find contacts by customer id", err)
	}
	defer rows.Close()

	contacts, err := r.scanRows(rows)
	if err != nil {
		return nil, apperrors.NewStorageErr("find contacts by customer id", err)
	}
	return contacts, nil
}

func (r *postgresContactRepository) Create(ctx context.Context, c *model.Contact) error {
	q := `INSERT INTO contacts(` + contactColumns + `)
		  VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.trx.Executor(ctx).Exec(ctx, q,
		c.ID, c.CustomerID, c.FirstName, c.LastName, c.Email, c.Phone, c.Title, c.Department, c.Status,
		c.Avatar, c.LastContact, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return apperrors.NewStorageErr("create contact", err)
	}
	return nil
}

func (r *postgresContactRepository) Update(ctx context.Context, c *model.Contact) (bool, error) {
	q := `UPDATE contacts SET customer_id = $1, first_name = $2, last_name = $3, email = $4, phone = $5,
			  title = $6, department = $7, status = $8, avatar = $9, last_contact = $10, updated_at = $11
		  WHERE id = $12`
	comm, err := r.trx.Executor(ctx).Exec(ctx, q,
		c.CustomerID, c.FirstName, c.LastName, c.Email, c.Phone, c.Title, c.Department, c.Status,
		c.Avatar, c.LastContact, c.UpdatedAt, c.ID,
	)
	if err != nil {
		return false, apperrors.NewStorageErr("update contact", err)
	}
	return comm.RowsAffected() > 0, nil
}

func (r *postgresContactRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	q := "DELETE FROM contacts WHERE id = $1"
	comm, err := r.trx.Executor(ctx).Exec(ctx, q, id)
	if err != nil {
		return false, apperrors.NewStorageErr("delete contact", err)
	}
	return comm.RowsAffected() > 0, nil
}

func (r *postgresContactRepository) scanRow(row pgx.Row) (*model.Contact, error) {
	var c model.Contact
	err := row.Scan(&c.ID, &c.CustomerID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Title,
		&c.Department, &c.Status, &c.Avatar, &c.LastContact, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *postgresContactRepository) scanRows(rows pgx.Rows) ([]*model.Contact, error) {
	contacts := make([]*model.Contact, 0)
	for rows.Next() {
		c, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return contacts, nil
}
