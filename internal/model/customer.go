package model

import "time"

// CustomerStatus tells whether customer account is still worked on
type CustomerStatus string

const (
	// CustomerStatusActive means customer account is active
	CustomerStatusActive CustomerStatus = "active"
	// CustomerStatusInactive means customer account is dormant
	CustomerStatusInactive CustomerStatus = "inactive"
)

// Tier is customer classification used for display grouping
type Tier string

const (
	// TierEnterprise is the largest customer classification
	TierEnterprise Tier = "enterprise"
	// TierGrowth is the mid-size customer classification
	TierGrowth Tier = "growth"
	// TierStartup is the smallest customer classification
	TierStartup Tier = "startup"
)

// Address is customer postal address, replaced wholesale on patch
type Address struct {
	Street  string `json:"street" bson:"street"`
	City    string `json:"city" bson:"city"`
	State   string `json:"state" bson:"state"`
	Zip     string `json:"zip" bson:"zip"`
	Country string `json:"country" bson:"country"`
}

// Customer is customer model entity
type Customer struct {
	ID          string         `json:"id" bson:"_id,omitempty"`
	Name        string         `json:"name" bson:"name"`
	Email       string         `json:"email" bson:"email"`
	Phone       string         `json:"phone" bson:"phone"`
	Industry    string         `json:"industry" bson:"industry"`
	Status      CustomerStatus `json:"status" bson:"status"`
	Tier        Tier           `json:"tier" bson:"tier"`
	Revenue     int64          `json:"revenue" bson:"revenue"`
	Employees   int            `json:"employees" bson:"employees"`
	Website     string         `json:"website" bson:"website"`
	Logo        string         `json:"logo" bson:"logo"`
	HealthScore int            `json:"healthScore" bson:"healthScore"`
	LastContact *time.Time     `json:"lastContact" bson:"lastContact"`
	Address     Address        `json:"address" bson:"address"`
	CreatedAt   time.Time      `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt" bson:"updatedAt"`
}

// CustomerPatch carries customer fields for partial update
type CustomerPatch struct {
	Name        *string         `json:"name"`
	Email       *string         `json:"email"`
	Phone       *string         `json:"phone"`
	Industry    *string         `json:"industry"`
	Status      *CustomerStatus `json:"status"`
	Tier        *Tier           `json:"tier"`
	Revenue     *int64          `json:"revenue"`
	Employees   *int            `json:"employees"`
	Website     *string         `json:"website"`
	Logo        *string         `json:"logo"`
	HealthScore *int            `json:"healthScore"`
	LastContact *time.Time      `json:"lastContact"`
	Address     *Address        `json:"address"`
}

// MergePatch applies provided fields over customer, address is replaced as a whole
func (c Customer) MergePatch(patch CustomerPatch) Customer {
	if patch.Name != nil {
		c.Name = *patch.Name
	}

	if patch.Email != nil {
		c.Email = *patch.Email
	}

	if patch.Phone != nil {
		c.Phone = *patch.Phone
	}

	if patch.Industry != nil {
		c.Industry = *patch.Industry
	}

	if patch.Status != nil {
		c.Status = *patch.Status
	}

	if patch.Tier != nil {
		c.Tier = *patch.Tier
	}

	if patch.Revenue != nil {
		c.Revenue = *patch.Revenue
	}

	if patch.Employees != nil {
		c.Employees = *patch.Employees
	}

	if patch.Website != nil {
		c.Website = *patch.Website
	}

	if patch.Logo != nil {
		c.Logo = *patch.Logo
	}

	if patch.HealthScore != nil {
		c.HealthScore = *patch.HealthScore
	}

	if patch.LastContact != nil {
		t := *patch.LastContact
		c.LastContact = &t
	}

	if patch.Address != nil {
		c.Address = *patch.Address
	}

	return c
}
