// internal/domain/models/team.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment status values for a team's registration fee.
const (
	PaymentPending  = "pending"
	PaymentApproved = "approved"
	PaymentRejected = "rejected"
)

// Team is the single aggregate for one registered hackathon team:
// the leader who registered it, the other members, and the payment state.
//
// NOTE:
//   - TeamID is the human-readable code (HIT101, HIT102, …) printed on
//     confirmations and payment references. It is assigned once at
//     registration and never reassigned.
//   - Leader.PasswordHash is excluded from default read projections;
//     only the login path fetches it explicitly.
type Team struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TeamID  string             `bson:"team_id" json:"teamId"`
	Leader  TeamLeader         `bson:"team_leader" json:"teamLeader"`
	Members []TeamMember       `bson:"team_members" json:"teamMembers"`

	// Payment is nil on records created before the fee workflow existed.
	// Approval refuses to act on a team without a payment block.
	Payment *Payment `bson:"payment,omitempty" json:"payment,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// TeamLeader is the registering member: the only one with credentials
// and the sole self-service editor of the team record.
type TeamLeader struct {
	Name        string `bson:"name" json:"name"`
	NameCI      string `bson:"name_ci" json:"-"` // lowercase, diacritics-stripped
	College     string `bson:"college" json:"college"`
	CollegeCI   string `bson:"college_ci" json:"-"`
	Department  string `bson:"department" json:"department"`
	City        string `bson:"city" json:"city"`
	PhoneNumber string `bson:"phone_number" json:"phoneNumber"`
	Email       string `bson:"email" json:"email"`
	EmailCI     string `bson:"email_ci" json:"-"`

	// PasswordHash holds the bcrypt hash, never the plaintext.
	PasswordHash string `bson:"password,omitempty" json:"-"`

	// TeamSize is always len(Members)+1; stores recompute it on edit
	// rather than trusting caller-supplied values.
	TeamSize int `bson:"team_size" json:"teamSize"`
}

// TeamMember is one non-leader participant.
type TeamMember struct {
	Name        string `bson:"name" json:"name"`
	Email       string `bson:"email" json:"email"`
	PhoneNumber string `bson:"phone_number" json:"phoneNumber"`
}

// Payment tracks settlement of the registration fee.
// Status starts at pending and moves to approved or rejected by an
// administrative action; "mark as sent" re-arms it back to pending.
type Payment struct {
	Amount    int       `bson:"amount" json:"amount"` // currency units, team_size × per-head fee
	Status    string    `bson:"status" json:"status"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"` // last status transition
}
