// Package seed loads the synthetic demo dataset so the dashboard renders
// non-trivially on a fresh store.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/Pallinder/go-randomdata"
	"github.com/google/uuid"
	"github.com/umalmyha/crm/internal/model"
	"github.com/umalmyha/crm/internal/repository"
	"github.com/umalmyha/crm/pkg/db/transactor"
)

const fillerCustomers = 5

// Stores groups the repositories the seeder writes to
type Stores struct {
	CustomerRps repository.CustomerRepository
	ContactRps  repository.ContactRepository
	DealRps     repository.DealRepository
	ActivityRps repository.ActivityRepository
}

// Demo populates the stores with a fixed roster plus random filler,
// all writes run within one transaction where the backend supports it
func Demo(ctx context.Context, trx transactor.Transactor, stores Stores) error {
	return trx.WithinTransaction(ctx, func(ctx context.Context) error {
		now := time.Now().UTC()

		for i, fc := range fixedRoster(now) {
			if err := stores.CustomerRps.Create(ctx, fc.customer); err != nil {
				return fmt.Errorf("failed to seed customer %q - %w", fc.customer.Name, err)
			}

			for _, contact := range fc.contacts {
				if err := stores.ContactRps.Create(ctx, contact); err != nil {
					return fmt.Errorf("failed to seed contact for %q - %w", fc.customer.Name, err)
				}
			}

			for _, deal := range fc.deals {
				if err := stores.DealRps.Create(ctx, deal); err != nil {
					return fmt.Errorf("failed to seed deal for %q - %w", fc.customer.Name, err)
				}

				activity := dealActivity(deal, now.Add(-time.Duration(i+1)*time.Hour))
				if err := stores.ActivityRps.Create(ctx, activity); err != nil {
					return fmt.Errorf("failed to seed activity for %q - %w", fc.customer.Name, err)
				}
			}
		}

		for i := 0; i < fillerCustomers; i++ {
			if err := fillerCustomer(ctx, stores, now, i); err != nil {
				return err
			}
		}

		return nil
	})
}

type fixedCustomer struct {
	customer *model.Customer
	contacts []*model.Contact
	deals    []*model.Deal
}

// fixedRoster is the stable part of the demo dataset, values are chosen so
// the dashboard shows a non-empty pipeline and a meaningful top-customers list
func fixedRoster(now time.Time) []fixedCustomer {
	acme := demoCustomer(now, "Acme Corporation", "contact@acme.example", "Manufacturing",
		model.TierEnterprise, 4800000, 1200, 88)
	globex := demoCustomer(now, "Globex Software", "hello@globex.example", "Technology",
		model.TierGrowth, 950000, 140, 72)
	initech := demoCustomer(now, "Initech Labs", "team@initech.example", "Technology",
		model.TierStartup, 120000, 18, 55)

	return []fixedCustomer{
		{
			customer: acme,
			contacts: []*model.Contact{
				demoContact(now, acme.ID, "Helen", "Ramirez", "VP Procurement", "Purchasing"),
				demoContact(now, acme.ID, "Marcus", "Boyd", "CTO", "Engineering"),
			},
			deals: []*model.Deal{
				demoDeal(now, acme.ID, "Assembly line telemetry", 100000, model.StageClosedWon, 100),
				demoDeal(now, acme.ID, "Plant expansion rollout", 250000, model.StageNegotiation, 70),
			},
		},
		{
			customer: globex,
			contacts: []*model.Contact{
				demoContact(now, globex.ID, "Priya", "Nair", "Head of Platform", "Engineering"),
			},
			deals: []*model.Deal{
				demoDeal(now, globex.ID, "Platform licensing", 50000, model.StageClosedWon, 100),
				demoDeal(now, globex.ID, "Support renewal", 30000, model.StageProposal, 45),
			},
		},
		{
			customer: initech,
			contacts: []*model.Contact{
				demoContact(now, initech.ID, "Tom", "Silva", "Founder", "Management"),
			},
			deals: []*model.Deal{
				demoDeal(now, initech.ID, "Pilot subscription", 12000, model.StageQualification, 20),
				demoDeal(now, initech.ID, "Legacy migration", 18000, model.StageClosedLost, 0),
			},
		},
	}
}

func fillerCustomer(ctx context.Context, stores Stores, now time.Time, ordinal int) error {
	tiers := []model.Tier{model.TierEnterprise, model.TierGrowth, model.TierStartup}
	stages := []model.Stage{model.StageQualification, model.StageProposal, model.StageNegotiation}

	customer := demoCustomer(now,
		randomdata.SillyName(),
		randomdata.Email(),
		"Services",
		tiers[ordinal%len(tiers)],
		int64(randomdata.Number(50000, 2000000)),
		randomdata.Number(10, 500),
		randomdata.Number(30, 100),
	)
	if err := stores.CustomerRps.Create(ctx, customer); err != nil {
		return fmt.Errorf("failed to seed filler customer - %w", err)
	}

	contact := demoContact(now, customer.ID,
		randomdata.FirstName(randomdata.RandomGender),
		randomdata.LastName(),
		"Account Manager",
		"Sales",
	)
	if err := stores.ContactRps.Create(ctx, contact); err != nil {
		return fmt.Errorf("failed to seed filler contact - %w", err)
	}

	deal := demoDeal(now, customer.ID,
		fmt.Sprintf("%s engagement", customer.Name),
		int64(randomdata.Number(5000, 80000)),
		stages[ordinal%len(stages)],
		randomdata.Number(10, 90),
	)
	if err := stores.DealRps.Create(ctx, deal); err != nil {
		return fmt.Errorf("failed to seed filler deal - %w", err)
	}

	activity := dealActivity(deal, now.Add(-time.Duration(ordinal+10)*time.Hour))
	if err := stores.ActivityRps.Create(ctx, activity); err != nil {
		return fmt.Errorf("failed to seed filler activity - %w", err)
	}
	return nil
}

func demoCustomer(now time.Time, name, email, industry string, tier model.Tier, revenue int64, employees, health int) *model.Customer {
	lastContact := now.Add(-72 * time.Hour)
	return &model.Customer{
		ID:          uuid.NewString(),
		Name:        name,
		Email:       email,
		Phone:       randomdata.StringNumber(3, "-"),
		Industry:    industry,
		Status:      model.CustomerStatusActive,
		Tier:        tier,
		Revenue:     revenue,
		Employees:   employees,
		Website:     fmt.Sprintf("https://%s.example", uuid.NewString()[:8]),
		Logo:        "",
		HealthScore: health,
		LastContact: &lastContact,
		Address: model.Address{
			Street:  randomdata.Street(),
			City:    randomdata.City(),
			State:   randomdata.State(randomdata.Small),
			Zip:     randomdata.PostalCode("US"),
			Country: "USA",
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func demoContact(now time.Time, customerID, firstName, lastName, title, department string) *model.Contact {
	lastContact := now.Add(-48 * time.Hour)
	return &model.Contact{
		ID:          uuid.NewString(),
		CustomerID:  customerID,
		FirstName:   firstName,
		LastName:    lastName,
		Email:       randomdata.Email(),
		Phone:       randomdata.StringNumber(3, "-"),
		Title:       title,
		Department:  department,
		Status:      model.ContactStatusActive,
		LastContact: &lastContact,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func demoDeal(now time.Time, customerID, title string, value int64, stage model.Stage, probability int) *model.Deal {
	expected := now.Add(30 * 24 * time.Hour)
	d := &model.Deal{
		ID:                uuid.NewString(),
		CustomerID:        customerID,
		Title:             title,
		Value:             value,
		Stage:             stage,
		Probability:       probability,
		ExpectedCloseDate: &expected,
		Status:            model.StatusForStage(stage),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if d.Status != model.DealStatusActive {
		closed := now.Add(-24 * time.Hour)
		d.ActualCloseDate = &closed
	}
	return d
}

func dealActivity(d *model.Deal, at time.Time) *model.Activity {
	activityType := model.ActivityDealCreated
	title := fmt.Sprintf("New deal: %s", d.Title)
	if d.Status == model.DealStatusWon {
		activityType = model.ActivityDealWon
		title = fmt.Sprintf("Deal won: %s", d.Title)
	}

	value := d.Value
	return &model.Activity{
		ID:        uuid.NewString(),
		Type:      activityType,
		Title:     title,
		Value:     &value,
		Timestamp: at,
		UserID:    "demo",
		RelatedID: d.ID,
	}
}
