package model

import "time"

// Stage is deal position in the sales pipeline
type Stage string

const (
	// StageQualification is the earliest pipeline stage
	StageQualification Stage = "qualification"
	// StageProposal means proposal has been sent
	StageProposal Stage = "proposal"
	// StageNegotiation means terms are being negotiated
	StageNegotiation Stage = "negotiation"
	// StageClosedWon means deal is closed and won
	StageClosedWon Stage = "closed-won"
	// StageClosedLost means deal is closed and lost
	StageClosedLost Stage = "closed-lost"
)

// DealStatus is deal outcome derived from its stage
type DealStatus string

const (
	// DealStatusActive means deal is still in the pipeline
	DealStatusActive DealStatus = "active"
	// DealStatusWon means deal was closed-won
	DealStatusWon DealStatus = "won"
	// DealStatusLost means deal was closed-lost
	DealStatusLost DealStatus = "lost"
)

// StatusForStage derives deal status from its pipeline stage.
// Status is stored redundantly, services always recompute it on mutation
// so it cannot diverge from the stage.
func StatusForStage(stage Stage) DealStatus {
	switch stage {
	case StageClosedWon:
		return DealStatusWon
	case StageClosedLost:
		return DealStatusLost
	default:
		return DealStatusActive
	}
}

// Deal is deal model entity
type Deal struct {
	ID                string     `json:"id" bson:"_id,omitempty"`
	CustomerID        string     `json:"customerId" bson:"customerId"`
	ContactID         *string    `json:"contactId" bson:"contactId"`
	Title             string     `json:"title" bson:"title"`
	Value             int64      `json:"value" bson:"value"`
	Stage             Stage      `json:"stage" bson:"stage"`
	Probability       int        `json:"probability" bson:"probability"`
	ExpectedCloseDate *time.Time `json:"expectedCloseDate" bson:"expectedCloseDate"`
	ActualCloseDate   *time.Time `json:"actualCloseDate" bson:"actualCloseDate"`
	Status            DealStatus `json:"status" bson:"status"`
	Description       string     `json:"description" bson:"description"`
	CreatedAt         time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// DealPatch carries deal fields for partial update
type DealPatch struct {
	CustomerID        *string    `json:"customerId"`
	ContactID         *string    `json:"contactId"`
	Title             *string    `json:"title"`
	Value             *int64     `json:"value"`
	Stage             *Stage     `json:"stage"`
	Probability       *int       `json:"probability"`
	ExpectedCloseDate *time.Time `json:"expectedCloseDate"`
	Description       *string    `json:"description"`
}

// MergePatch applies provided fields over deal, status follows stage
func (d Deal) MergePatch(patch DealPatch) Deal {
	if patch.CustomerID != nil {
		d.CustomerID = *patch.CustomerID
	}

	if patch.ContactID != nil {
		s := *patch.ContactID
		d.ContactID = &s
	}

	if patch.Title != nil {
		d.Title = *patch.Title
	}

	if patch.Value != nil {
		d.Value = *patch.Value
	}

	if patch.Stage != nil {
		d.Stage = *patch.Stage
		d.Status = StatusForStage(d.Stage)
	}

	if patch.Probability != nil {
		d.Probability = *patch.Probability
	}

	if patch.ExpectedCloseDate != nil {
		t := *patch.ExpectedCloseDate
		d.ExpectedCloseDate = &t
	}

	if patch.Description != nil {
		d.Description = *patch.Description
	}

	return d
}
