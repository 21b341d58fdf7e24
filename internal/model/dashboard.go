package model

// PipelineBucket groups the active deals sitting in one open pipeline stage.
// Member deals are retained for sub-aggregation by the caller.
type PipelineBucket struct {
	Stage Stage  `json:"stage"`
	Count int    `json:"count"`
	Value int64  `json:"value"`
	Deals []Deal `json:"deals"`
}

// TopCustomer is a dashboard entry for a customer ranked by won-deal value
type TopCustomer struct {
	Customer  Customer `json:"customer"`
	DealValue int64    `json:"dealValue"`
}

// MonthlyRevenuePoint is one entry of the monthly revenue trend
type MonthlyRevenuePoint struct {
	Month   string `json:"month"`
	Revenue int64  `json:"revenue"`
}

// DashboardStats is the summary the dashboard aggregator derives from
// current store contents, recomputed on every call
type DashboardStats struct {
	TotalCustomers  int `json:"totalCustomers"`
	ActiveCustomers int `json:"activeCustomers"`
	TotalContacts   int `json:"totalContacts"`
	TotalDeals      int `json:"totalDeals"`
	ActiveDeals     int `json:"activeDeals"`
	WonDeals        int `json:"wonDeals"`
	LostDeals       int `json:"lostDeals"`

	ActiveDealValue int64 `json:"activeDealValue"`
	WonDealValue    int64 `json:"wonDealValue"`
	TotalRevenue    int64 `json:"totalRevenue"`

	ConversionRate     float64 `json:"conversionRate"`
	AverageHealthScore float64 `json:"averageHealthScore"`

	Pipeline       []PipelineBucket      `json:"pipeline"`
	TopCustomers   []TopCustomer         `json:"topCustomers"`
	MonthlyRevenue []MonthlyRevenuePoint `json:"monthlyRevenue"`

	RecentActivities []Activity `json:"recentActivities"`
}
