package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/labstack/gommon/log"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/require"
	"github.com/umalmyha/crm/internal/model"
	"github.com/umalmyha/crm/pkg/db/transactor"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	connectionTimeout = 3 * time.Second
)

const (
	pgContainerName = "pg-test-crm"
	pgPort          = "5432"
	pgTestUser      = "test"
	pgTestPassword  = "test"
	pgTestDB        = "crm"
)

const (
	mongoContainerName = "mongo-test-crm"
	mongoPort          = "27017"
	mongoTestUser      = "test"
	mongoTestPassword  = "test"
	mongoTestDB        = "crm"
)

var pgPool *pgxpool.Pool
var mongoClient *mongo.Client

func TestMain(m *testing.M) {
	if os.Getenv("INTEGRATION") == "" {
		log.Info("INTEGRATION is not set, running memory store tests only")
		os.Exit(m.Run())
	}

	// build docker pool
	dockerPool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("failed to create pool - %v", err)
	}

	if err := dockerPool.Client.Ping(); err != nil {
		log.Fatalf("failed to connect to docker - %v", err)
	}

	// create network for containers
	network, err := dockerPool.Client.CreateNetwork(docker.CreateNetworkOptions{Name: "crm-test-net"})
	if err != nil {
		log.Fatalf("failed to create network - %v", err)
	}

	// start postgres
	postgres, err := dockerPool.RunWithOptions(&dockertest.RunOptions{
		Name:       pgContainerName,
		Repository: "postgres",
		Tag:        "latest",
		NetworkID:  network.ID,
		Env: []string{
			fmt.Sprintf("POSTGRES_USER=%s", pgTestUser),
			fmt.Sprintf("POSTGRES_PASSWORD=%s", pgTestPassword),
			fmt.Sprintf("POSTGRES_DB=%s", pgTestDB),
		},
		PortBindings: map[docker.Port][]docker.PortBinding{
			"5432/tcp": {{HostIP: "localhost", HostPort: fmt.Sprintf("%s/tcp", pgPort)}},
		},
	})
	if err != nil {
		log.Fatalf("failed to start postgresql - %v", err)
	}

	// run migrations
	flywayCmd := []string{
		fmt.Sprintf("-url=jdbc:postgresql://%s:%s/%s", pgContainerName, pgPort, pgTestDB),
		fmt.Sprintf("-user=%s", pgTestUser),
		fmt.Sprintf("-password=%s", pgTestPassword),
		"-connectRetries=5",
		"migrate",
	}

	migrationsPath, err := filepath.Abs("../../migrations")
	if err != nil {
		log.Fatalf("failed to find migrations path - %v", err)
	}

	flywayMounts := []string{
		fmt.Sprintf("%s:/flyway/sql", migrationsPath),
	}

	flyway, err := dockerPool.RunWithOptions(&dockertest.RunOptions{
		Repository: "flyway/flyway",
		Tag:        "latest",
		NetworkID:  network.ID,
		Cmd:        flywayCmd,
		Mounts:     flywayMounts,
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
	})
	if err != nil {
		log.Fatalf("failed to start flyway migrations - %v", err)
	}

	// waiting for flyway container to be destroyed
	err = dockerPool.Retry(func() error {
		if _, ok := dockerPool.ContainerByName(flyway.Container.Name); ok {
			return errors.New("flyway migrations are still in progress")
		}
		return nil
	})
	if err != nil {
		log.Fatalf("failed to await flyway migrations - %v", err)
	}

	// connect to postgres
	pgUri := fmt.Sprintf("postgres://%s:%s@localhost:%s/%s?sslmode=disable", pgTestUser, pgTestPassword, pgPort, pgTestDB)
	err = dockerPool.Retry(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
		defer cancel()

		var err error
		pgPool, err = pgxpool.Connect(ctx, pgUri)
		if err != nil {
			return err
		}
		return pgPool.Ping(ctx)
	})
	if err != nil {
		log.Fatalf("failed to establish connection to postgresql - %v", err)
	}

	// start mongo
	mongodb, err := dockerPool.RunWithOptions(&dockertest.RunOptions{
		Name:       mongoContainerName,
		Repository: "mongo",
		Tag:        "latest",
		NetworkID:  network.ID,
		Env: []string{
			fmt.Sprintf("MONGO_INITDB_ROOT_USERNAME=%s", mongoTestUser),
			fmt.Sprintf("MONGO_INITDB_ROOT_PASSWORD=%s", mongoTestPassword),
		},
		PortBindings: map[docker.Port][]docker.PortBinding{
			"27017/tcp": {{HostIP: "localhost", HostPort: fmt.Sprintf("%s/tcp", mongoPort)}},
		},
	})
	if err != nil {
		log.Fatalf("failed to start mongodb - %v", err)
	}

	// connect to mongo
	mongoUri := fmt.Sprintf("mongodb://%s:%s@localhost:%s/?maxPoolSize=100", mongoTestUser, mongoTestPassword, mongoPort)
	err = dockerPool.Retry(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
		defer cancel()

		var err error
		mongoClient, err = mongo.Connect(ctx, options.Client().ApplyURI(mongoUri))
		if err != nil {
			return err
		}
		return mongoClient.Ping(ctx, readpref.Primary())
	})
	if err != nil {
		log.Fatalf("failed to establish connection to mongodb - %v", err)
	}

	// start tests
	code := m.Run()

	// purge postgresql
	if err := dockerPool.Purge(postgres); err != nil {
		log.Fatalf("failed to purge postgresql - %v", err)
	}

	// purge mongodb
	if err := dockerPool.Purge(mongodb); err != nil {
		log.Fatalf("failed to purge mongodb - %v", err)
	}

	// remove network
	if err := dockerPool.Client.RemoveNetwork(network.ID); err != nil {
		log.Fatalf("failed to remove network - %v", err)
	}

	os.Exit(code)
}

func skipWithoutIntegration(t *testing.T) {
	if os.Getenv("INTEGRATION") == "" {
		t.Skip("set INTEGRATION to run store integration tests against docker containers")
	}
}

func TestPostgresCustomerRps(t *testing.T) {
	skipWithoutIntegration(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	customerRps := NewPostgresCustomerRepository(transactor.NewPgxWithinTransactionExecutor(pgPool))

	createdAt := time.Date(2024, time.March, 14, 10, 30, 0, 0, time.UTC)

	customers := []*model.Customer{
		{
			ID:          "53b9062b-0f45-4671-8c01-52fce0d8c750",
			Name:        "Acme Corporation",
			Email:       "sales@acme.example",
			Phone:       "555-0134",
			Industry:    "Manufacturing",
			Status:      model.CustomerStatusActive,
			Tier:        model.TierEnterprise,
			Revenue:     1200000,
			Employees:   3400,
			HealthScore: 82,
			Address: model.Address{
				Street:  "12 Foundry Rd",
				City:    "Springfield",
				State:   "IL",
				Zip:     "62701",
				Country: "USA",
			},
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		},
		{
			ID:          "48fa2e4f-7937-4257-ac61-a42ef9f45f69",
			Name:        "Globex Software",
			Email:       "hello@globex.example",
			Status:      model.CustomerStatusInactive,
			Tier:        model.TierStartup,
			Revenue:     90000,
			Employees:   12,
			HealthScore: 44,
			CreatedAt:   createdAt.Add(time.Minute),
			UpdatedAt:   createdAt.Add(time.Minute),
		},
	}

	acme := customers[0]

	t.Logf("create %d customers", len(customers))
	{
		for _, c := range customers {
			err := customerRps.Create(ctx, c)
			require.NoError(t, err, "failed to create customer %s", c.Name)
		}
	}

	t.Logf("verify %d customers in database", len(customers))
	{
		dbCustomers, err := customerRps.FindAll(ctx)
		require.NoError(t, err, "failed to read customers")
		require.Len(t, dbCustomers, len(customers), "all created customers must be present")
		require.Equal(t, acme.ID, dbCustomers[0].ID, "customers must come back ordered by created_at")
	}

	t.Logf("find customer by id %s", acme.ID)
	{
		dbCustomer, err := customerRps.FindByID(ctx, acme.ID)
		require.NoError(t, err, "failed to read customer by id")
		require.NotNil(t, dbCustomer, "customer was created recently but not found by id")
		require.Equal(t, acme.Name, dbCustomer.Name)
		require.Equal(t, acme.Tier, dbCustomer.Tier)
		require.Equal(t, acme.Address, dbCustomer.Address, "address columns must round trip")
		require.True(t, acme.CreatedAt.Equal(dbCustomer.CreatedAt), "created_at must round trip")
	}

	t.Logf("update customer %s", acme.ID)
	{
		changed := *acme
		changed.Name = "Acme Holdings"
		changed.Status = model.CustomerStatusInactive
		changed.UpdatedAt = createdAt.Add(time.Hour)

		updated, err := customerRps.Update(ctx, &changed)
		require.NoError(t, err, "failed to update customer")
		require.True(t, updated, "update of existing customer must report a touched row")

		dbCustomer, err := customerRps.FindByID(ctx, acme.ID)
		require.NoError(t, err, "failed to read customer by id")
		require.Equal(t, "Acme Holdings", dbCustomer.Name, "customer is in database, but wasn't updated correctly")
	}

	t.Log("update absent customer")
	{
		ghost := *acme
		ghost.ID = "aaaaaaaa-0000-0000-0000-000000000000"
		updated, err := customerRps.Update(ctx, &ghost)
		require.NoError(t, err, "update of absent customer must not raise error")
		require.False(t, updated, "update of absent customer must report no rows touched")
	}

	t.Logf("delete customer by id %s", acme.ID)
	{
		deleted, err := customerRps.DeleteByID(ctx, acme.ID)
		require.NoError(t, err, "failed to delete customer")
		require.True(t, deleted, "delete of existing customer must report a touched row")

		dbCustomer, err := customerRps.FindByID(ctx, acme.ID)
		require.NoError(t, err, "failed to read customer by id")
		require.Nil(t, dbCustomer, "customer was deleted, but still present in database")

		deleted, err = customerRps.DeleteByID(ctx, acme.ID)
		require.NoError(t, err, "repeated delete must not raise error")
		require.False(t, deleted, "repeated delete must report no rows touched")
	}
}

func TestPostgresContactRps(t *testing.T) {
	skipWithoutIntegration(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	contactRps := NewPostgresContactRepository(transactor.NewPgxWithinTransactionExecutor(pgPool))

	createdAt := time.Date(2024, time.March, 14, 10, 30, 0, 0, time.UTC)
	customerID := "b3d0fa55-1ca2-4e26-a361-a8c04c1bf1a0"

	contacts := []*model.Contact{
		{
			ID:         "19264f8d-8862-47e0-9892-44930e2de59f",
			CustomerID: customerID,
			FirstName:  "John",
			LastName:   "Norman",
			Email:      "john.norman@acme.example",
			Title:      "VP Engineering",
			Status:     model.ContactStatusActive,
			CreatedAt:  createdAt,
			UpdatedAt:  createdAt,
		},
		{
			ID:         "55ed2faa-de40-4344-a512-0ffbc43d4184",
			CustomerID: customerID,
			FirstName:  "Sarah",
			LastName:   "Peers",
			Email:      "sarah.peers@acme.example",
			Status:     model.ContactStatusActive,
			CreatedAt:  createdAt.Add(time.Minute),
			UpdatedAt:  createdAt.Add(time.Minute),
		},
		{
			ID:         "112a54c0-e744-4712-8acf-59e6b1a386e5",
			CustomerID: "f917ab49-55f3-4b92-8abd-1f1124630cd9",
			FirstName:  "Andrew",
			LastName:   "Wallet",
			Email:      "andrew.wallet@globex.example",
			Status:     model.ContactStatusInactive,
			CreatedAt:  createdAt.Add(2 * time.Minute),
			UpdatedAt:  createdAt.Add(2 * time.Minute),
		},
	}

	t.Logf("create %d contacts", len(contacts))
	{
		for _, c := range contacts {
			err := contactRps.Create(ctx, c)
			require.NoError(t, err, "failed to create contact %s", c.Email)
		}
	}

	t.Logf("find contacts of customer %s", customerID)
	{
		dbContacts, err := contactRps.FindByCustomerID(ctx, customerID)
		require.NoError(t, err, "failed to read contacts by customer id")
		require.Len(t, dbContacts, 2, "customer has 2 contacts")
		require.Equal(t, "John", dbContacts[0].FirstName, "contacts must come back ordered by created_at")
	}

	t.Logf("delete contact %s", contacts[0].ID)
	{
		deleted, err := contactRps.DeleteByID(ctx, contacts[0].ID)
		require.NoError(t, err, "failed to delete contact")
		require.True(t, deleted)

		dbContacts, err := contactRps.FindByCustomerID(ctx, customerID)
		require.NoError(t, err, "failed to read contacts by customer id")
		require.Len(t, dbContacts, 1, "one customer contact left after delete")
	}
}

func TestPostgresDealRps(t *testing.T) {
	skipWithoutIntegration(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dealRps := NewPostgresDealRepository(transactor.NewPgxWithinTransactionExecutor(pgPool))

	createdAt := time.Date(2024, time.March, 14, 10, 30, 0, 0, time.UTC)
	customerID := "0583d7f3-5ae1-416a-92fa-120851905551"
	contactID := "afa94457-c29a-4569-a4aa-0ae3b7e5a255"
	closedAt := createdAt.Add(time.Hour)

	deal := &model.Deal{
		ID:          "3b9974de-ed71-4a5d-9121-42213e526234",
		CustomerID:  customerID,
		ContactID:   &contactID,
		Title:       "Platform renewal",
		Value:       250000,
		Stage:       model.StageNegotiation,
		Probability: 70,
		Status:      model.DealStatusActive,
		Description: "Multi-year renewal under negotiation",
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}

	t.Logf("create deal %s", deal.ID)
	{
		err := dealRps.Create(ctx, deal)
		require.NoError(t, err, "failed to create deal")
	}

	t.Logf("find deal by id %s", deal.ID)
	{
		dbDeal, err := dealRps.FindByID(ctx, deal.ID)
		require.NoError(t, err, "failed to read deal by id")
		require.NotNil(t, dbDeal, "deal was created recently but not found by id")
		require.Equal(t, deal.Title, dbDeal.Title)
		require.NotNil(t, dbDeal.ContactID, "contact reference must round trip")
		require.Equal(t, contactID, *dbDeal.ContactID)
		require.Nil(t, dbDeal.ActualCloseDate, "open deal must carry no close date")
	}

	t.Logf("close deal %s", deal.ID)
	{
		closed := *deal
		closed.Stage = model.StageClosedWon
		closed.Status = model.DealStatusWon
		closed.ActualCloseDate = &closedAt
		closed.UpdatedAt = closedAt

		updated, err := dealRps.Update(ctx, &closed)
		require.NoError(t, err, "failed to update deal")
		require.True(t, updated)

		dbDeal, err := dealRps.FindByID(ctx, deal.ID)
		require.NoError(t, err, "failed to read deal by id")
		require.Equal(t, model.DealStatusWon, dbDeal.Status, "deal is in database, but wasn't updated correctly")
		require.NotNil(t, dbDeal.ActualCloseDate, "closed deal must carry close date")
		require.True(t, closedAt.Equal(*dbDeal.ActualCloseDate), "close date must round trip")
	}

	t.Logf("find deals of customer %s", customerID)
	{
		dbDeals, err := dealRps.FindByCustomerID(ctx, customerID)
		require.NoError(t, err, "failed to read deals by customer id")
		require.Len(t, dbDeals, 1, "customer has a single deal")
	}

	t.Logf("delete deal %s", deal.ID)
	{
		deleted, err := dealRps.DeleteByID(ctx, deal.ID)
		require.NoError(t, err, "failed to delete deal")
		require.True(t, deleted)

		dbDeal, err := dealRps.FindByID(ctx, deal.ID)
		require.NoError(t, err, "failed to read deal by id")
		require.Nil(t, dbDeal, "deal was deleted, but still present in database")
	}
}

func TestPostgresActivityRps(t *testing.T) {
	skipWithoutIntegration(t)
	activityRps := NewPostgresActivityRepository(transactor.NewPgxWithinTransactionExecutor(pgPool))
	t.Log("running activity feed tests for postgres")
	testActivityRps(t, activityRps)
}

func TestMongoActivityRps(t *testing.T) {
	skipWithoutIntegration(t)
	activityRps := NewMongoActivityRepository(mongoClient, mongoTestDB)
	t.Log("running activity feed tests for mongo")
	testActivityRps(t, activityRps)
}

func testActivityRps(t *testing.T, activityRps ActivityRepository) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	base := time.Date(2024, time.March, 14, 10, 30, 0, 0, time.UTC)
	wonValue := int64(100000)

	activities := []*model.Activity{
		{
			ID:        "c40a2c86-71b7-4516-9b96-f90f9e9cf945",
			Type:      model.ActivityCall,
			Title:     "Discovery call",
			Timestamp: base.Add(-2 * time.Hour),
			UserID:    "sales-1",
		},
		{
			ID:        "7d222cbd-868e-4b39-9b6c-81791457d4f5",
			Type:      model.ActivityDealWon,
			Title:     "Deal won: Platform renewal",
			Value:     &wonValue,
			Timestamp: base,
			UserID:    "sales-1",
			RelatedID: "3b9974de-ed71-4a5d-9121-42213e526234",
		},
		{
			ID:        "9f7ce182-f2b5-47b2-8d78-771d7d20bfc7",
			Type:      model.ActivityEmail,
			Title:     "Sent proposal",
			Timestamp: base.Add(-time.Hour),
			UserID:    "sales-2",
		},
	}

	t.Logf("create %d activities", len(activities))
	{
		for _, a := range activities {
			err := activityRps.Create(ctx, a)
			require.NoError(t, err, "failed to create activity %s", a.ID)
		}
	}

	t.Log("read latest activities")
	{
		feed, err := activityRps.FindLatest(ctx, 10)
		require.NoError(t, err, "failed to read activity feed")
		require.Len(t, feed, len(activities), "all activities must be in the feed")
		require.Equal(t, activities[1].ID, feed[0].ID, "feed must be ordered newest first")
		require.NotNil(t, feed[0].Value, "won value must round trip")
		require.Equal(t, wonValue, *feed[0].Value)
	}

	t.Log("read limited feed")
	{
		feed, err := activityRps.FindLatest(ctx, 2)
		require.NoError(t, err, "failed to read activity feed")
		require.Len(t, feed, 2, "limit must truncate the feed")
	}
}
