package service

import (
	"context"
	"sort"

	"github.com/umalmyha/crm/internal/model"
	"github.com/umalmyha/crm/internal/repository"
	"github.com/umalmyha/crm/pkg/db/transactor"
)

const topCustomersLimit = 5

const recentActivitiesLimit = 10

// monthlyRevenueSample is a hand-authored presentational series, it is not
// derived from deal or customer records
var monthlyRevenueSample = []model.MonthlyRevenuePoint{
	{Month: "Jan", Revenue: 185000},
	{Month: "Feb", Revenue: 210000},
	{Month: "Mar", Revenue: 196000},
	{Month: "Apr", Revenue: 242000},
	{Month: "May", Revenue: 231000},
	{Month: "Jun", Revenue: 268000},
}

// DashboardService derives summary statistics from current store contents.
// Nothing is cached, every call recomputes from a fresh snapshot.
type DashboardService interface {
	Stats(context.Context) (*model.DashboardStats, error)
}

type dashboardService struct {
	customerRps repository.CustomerRepository
	contactRps  repository.ContactRepository
	dealRps     repository.DealRepository
	activityRps repository.ActivityRepository
	trx         transactor.Transactor
}

// NewDashboardService builds new DashboardService. The transactor makes the
// four store reads a consistent snapshot where the backend supports it.
func NewDashboardService(
	customerRps repository.CustomerRepository,
	contactRps repository.ContactRepository,
	dealRps repository.DealRepository,
	activityRps repository.ActivityRepository,
	trx transactor.Transactor,
) DashboardService {
	return &dashboardService{
		customerRps: customerRps,
		contactRps:  contactRps,
		dealRps:     dealRps,
		activityRps: activityRps,
		trx:         trx,
	}
}

func (s *dashboardService) Stats(ctx context.Context) (*model.DashboardStats, error) {
	var (
		customers  []*model.Customer
		contacts   []*model.Contact
		deals      []*model.Deal
		activities []*model.Activity
	)

	err := s.trx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		if customers, err = s.customerRps.FindAll(ctx); err != nil {
			return err
		}
		if contacts, err = s.contactRps.FindAll(ctx); err != nil {
			return err
		}
		if deals, err = s.dealRps.FindAll(ctx); err != nil {
			return err
		}
		if activities, err = s.activityRps.FindLatest(ctx, recentActivitiesLimit); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	stats := &model.DashboardStats{
		TotalCustomers: len(customers),
		TotalContacts:  len(contacts),
		TotalDeals:     len(deals),
		MonthlyRevenue: monthlyRevenueSample,
	}

	healthTotal := 0
	for _, c := range customers {
		if c.Status == model.CustomerStatusActive {
			stats.ActiveCustomers++
		}
		stats.TotalRevenue += c.Revenue
		healthTotal += c.HealthScore
	}

	if len(customers) > 0 {
		stats.AverageHealthScore = float64(healthTotal) / float64(len(customers))
	}

	for _, d := range deals {
		switch d.Status {
		case model.DealStatusActive:
			stats.ActiveDeals++
			stats.ActiveDealValue += d.Value
		case model.DealStatusWon:
			stats.WonDeals++
			stats.WonDealValue += d.Value
		case model.DealStatusLost:
			stats.LostDeals++
		}
	}

	if closed := stats.WonDeals + stats.LostDeals; closed > 0 {
		stats.ConversionRate = float64(stats.WonDeals) / float64(closed) * 100
	}

	stats.Pipeline = pipelineBuckets(deals)
	stats.TopCustomers = topCustomers(customers, deals)

	stats.RecentActivities = make([]model.Activity, 0, len(activities))
	for _, a := range activities {
		stats.RecentActivities = append(stats.RecentActivities, *a)
	}

	return stats, nil
}

// pipelineBuckets partitions active deals among the open pipeline stages,
// member deals are retained per bucket
func pipelineBuckets(deals []*model.Deal) []model.PipelineBucket {
	stages := []model.Stage{model.StageQualification, model.StageProposal, model.StageNegotiation}

	buckets := make([]model.PipelineBucket, 0, len(stages))
	for _, stage := range stages {
		bucket := model.PipelineBucket{Stage: stage, Deals: make([]model.Deal, 0)}
		for _, d := range deals {
			if d.Status != model.DealStatusActive || d.Stage != stage {
				continue
			}
			bucket.Deals = append(bucket.Deals, *d)
			bucket.Count++
			bucket.Value += d.Value
		}
		buckets = append(buckets, bucket)
	}
	return buckets
}

// topCustomers ranks customers by their summed won-deal value, customers
// without won value are filtered out. Ties break on ascending id to keep
// the ordering deterministic.
func topCustomers(customers []*model.Customer, deals []*model.Deal) []model.TopCustomer {
	wonByCustomer := make(map[string]int64)
	for _, d := range deals {
		if d.Status == model.DealStatusWon {
			wonByCustomer[d.CustomerID] += d.Value
		}
	}

	top := make([]model.TopCustomer, 0, len(wonByCustomer))
	for _, c := range customers {
		value := wonByCustomer[c.ID]
		if value <= 0 {
			continue
		}
		top = append(top, model.TopCustomer{Customer: *c, DealValue: value})
	}

	sort.Slice(top, func(i, j int) bool {
		if top[i].DealValue != top[j].DealValue {
			return top[i].DealValue > top[j].DealValue
		}
		return top[i].Customer.ID < top[j].Customer.ID
	})

	if len(top) > topCustomersLimit {
		top = top[:topCustomersLimit]
	}
	return top
}
