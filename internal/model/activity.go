package model

import "time"

// ActivityType classifies an entry in the activity feed
type ActivityType string

const (
	// ActivityDealWon records a deal closed-won
	ActivityDealWon ActivityType = "deal_won"
	// ActivityDealCreated records a new deal entering the pipeline
	ActivityDealCreated ActivityType = "deal_created"
	// ActivityMeeting records a held meeting
	ActivityMeeting ActivityType = "meeting"
	// ActivityEmail records a sent or received email
	ActivityEmail ActivityType = "email"
	// ActivityCall records a phone call
	ActivityCall ActivityType = "call"
	// ActivityContactAdded records a new contact person
	ActivityContactAdded ActivityType = "contact_added"
	// ActivityOther records anything unclassified
	ActivityOther ActivityType = "other"
)

// Activity is activity feed model entity. RelatedID points at whichever
// entity the activity references, no referential integrity is enforced.
type Activity struct {
	ID          string       `json:"id" bson:"_id,omitempty"`
	Type        ActivityType `json:"type" bson:"type"`
	Title       string       `json:"title" bson:"title"`
	Description string       `json:"description" bson:"description"`
	Value       *int64       `json:"value" bson:"value"`
	Timestamp   time.Time    `json:"timestamp" bson:"timestamp"`
	UserID      string       `json:"userId" bson:"userId"`
	RelatedID   string       `json:"relatedId" bson:"relatedId"`
}
