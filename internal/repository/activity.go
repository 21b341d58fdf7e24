package repository

import (
	"context"
	"sort"
	"sync"

	apperrors "github.com/umalmyha/crm/internal/errors"
	"github.com/umalmyha/crm/internal/model"
	"github.com/umalmyha/crm/pkg/db/transactor"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ActivityRepository is the activity feed store contract. The feed is
// read-only for API callers, Create exists for seeding.
type ActivityRepository interface {
	FindLatest(ctx context.Context, limit int) ([]*model.Activity, error)
	Create(context.Context, *model.Activity) error
}

type memoryActivityRepository struct {
	mu    sync.RWMutex
	items []model.Activity
}

// NewMemoryActivityRepository builds a mutex-guarded in-memory activity store
func NewMemoryActivityRepository() ActivityRepository {
	return &memoryActivityRepository{items: make([]model.Activity, 0)}
}

func (r *memoryActivityRepository) FindLatest(_ context.Context, limit int) ([]*model.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	activities := make([]*model.Activity, 0, len(r.items))
	for i := range r.items {
		a := r.items[i]
		activities = append(activities, &a)
	}

	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].Timestamp.After(activities[j].Timestamp)
	})

	if limit > 0 && len(activities) > limit {
		activities = activities[:limit]
	}
	return activities, nil
}

func (r *memoryActivityRepository) Create(_ context.Context, a *model.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID == a.ID {
			return apperrors.NewBusinessErr("id", "activity with such id already exists")
		}
	}

	r.items = append(r.items, *a)
	return nil
}

type postgresActivityRepository struct {
	trx transactor.PgxWithinTransactionExecutor
}

// NewPostgresActivityRepository builds activity store over postgres
func NewPostgresActivityRepository(trx transactor.PgxWithinTransactionExecutor) ActivityRepository {
	return &postgresActivityRepository{trx: trx}
}

func (r *postgresActivityRepository) FindLatest(ctx context.Context, limit int) ([]*model.Activity, error) {
	activities := make([]*model.Activity, 0)
	q := `SELECT id, type, title, description, value, timestamp, user_id, related_id
		  FROM activities ORDER BY timestamp DESC LIMIT $1`

	rows, err := r.trx.Executor(ctx).Query(ctx, q, limit)
	if err != nil {
		return nil, apperrors.NewStorageErr("find latest activities", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a model.Activity
		if err := rows.Scan(&a.ID, &a.Type, &a.Title, &a.Description, &a.Value, &a.Timestamp, &a.UserID, &a.RelatedID); err != nil {
			return nil, apperrors.NewStorageErr("find latest activities", err)
		}
		activities = append(activities, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageErr("find latest activities", err)
	}
	return activities, nil
}

func (r *postgresActivityRepository) Create(ctx context.Context, a *model.Activity) error {
	q := `INSERT INTO activities(id, type, title, description, value, timestamp, user_id, related_id)
		  VALUES($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.trx.Executor(ctx).Exec(ctx, q,
		a.ID, a.Type, a.Title, a.Description, a.Value, a.Timestamp, a.UserID, a.RelatedID)
	if err != nil {
		return apperrors.NewStorageErr("create activity", err)
	}
	return nil
}

const (
	activitiesCollection = "activities"
)

type mongoActivityRepository struct {
	client   *mongo.Client
	database string
}

// NewMongoActivityRepository builds activity store over a mongo collection,
// the feed access pattern fits a document store
func NewMongoActivityRepository(client *mongo.Client, database string) ActivityRepository {
	return &mongoActivityRepository{client: client, database: database}
}

func (r *mongoActivityRepository) collection() *mongo.Collection {
	return r.client.Database(r.database).Collection(activitiesCollection)
}

func (r *mongoActivityRepository) FindLatest(ctx context.Context, limit int) ([]*model.Activity, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}).SetLimit(int64(limit))
	cursor, err := r.collection().Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, apperrors.NewStorageErr("find latest activities", err)
	}

	activities := make([]*model.Activity, 0)
	if err := cursor.All(ctx, &activities); err != nil {
		return nil, apperrors.NewStorageErr("find latest activities", err)
	}
	return activities, nil
}

func (r *mongoActivityRepository) Create(ctx context.Context, a *model.Activity) error {
	if _, err := r.collection().InsertOne(ctx, a); err != nil {
		return apperrors.NewStorageErr("create activity", err)
	}
	return nil
}
