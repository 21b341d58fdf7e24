package model

import "time"

// ContactStatus tells whether contact person is still reachable
type ContactStatus string

const (
	// ContactStatusActive means contact is actively engaged
	ContactStatusActive ContactStatus = "active"
	// ContactStatusInactive means contact left or went silent
	ContactStatusInactive ContactStatus = "inactive"
)

// Contact is contact person model entity
type Contact struct {
	ID          string        `json:"id" bson:"_id,omitempty"`
	CustomerID  string        `json:"customerId" bson:"customerId"`
	FirstName   string        `json:"firstName" bson:"firstName"`
	LastName    string        `json:"lastName" bson:"lastName"`
	Email       string        `json:"email" bson:"email"`
	Phone       string        `json:"phone" bson:"phone"`
	Title       string        `json:"title" bson:"title"`
	Department  string        `json:"department" bson:"department"`
	Status      ContactStatus `json:"status" bson:"status"`
	Avatar      string        `json:"avatar" bson:"avatar"`
	LastContact *time.Time    `json:"lastContact" bson:"lastContact"`
	CreatedAt   time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt" bson:"updatedAt"`
}

// ContactPatch carries contact fields for partial update
type ContactPatch struct {
	CustomerID  *string        `json:"customerId"`
	FirstName   *string        `json:"firstName"`
	LastName    *string        `json:"lastName"`
	Email       *string        `json:"email"`
	Phone       *string        `json:"phone"`
	Title       *string        `json:"title"`
	Department  *string        `json:"department"`
	Status      *ContactStatus `json:"status"`
	Avatar      *string        `json:"avatar"`
	LastContact *time.Time     `json:"lastContact"`
}

// MergePatch applies provided fields over contact
func (c Contact) MergePatch(patch ContactPatch) Contact {
	if patch.CustomerID != nil {
		c.CustomerID = *patch.CustomerID
	}

	if patch.FirstName != nil {
		c.FirstName = *patch.FirstName
	}

	if patch.LastName != nil {
		c.LastName = *patch.LastName
	}

	if patch.Email != nil {
		c.Email = *patch.Email
	}

	if patch.Phone != nil {
		c.Phone = *patch.Phone
	}

	if patch.Title != nil {
		c.Title = *patch.Title
	}

	if patch.Department != nil {
		c.Department = *patch.Department
	}

	if patch.Status != nil {
		c.Status = *patch.Status
	}

	if patch.Avatar != nil {
		c.Avatar = *patch.Avatar
	}

	if patch.LastContact != nil {
		t := *patch.LastContact
		c.LastContact = &t
	}

	return c
}
