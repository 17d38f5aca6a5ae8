package models

import "time"

// Investment brackets mirror the self-reported capital ranges collected at
// registration.
const (
	BracketUnder10K = "under_10k"
	Bracket10KTo50K = "10k_to_50k"
	BracketOver50K  = "over_50k"
)

// User represents a platform user profile.
type User struct {
	ID                string    `bson:"id" json:"id"`
	Email             string    `bson:"email" json:"email"`
	PasswordHash      string    `bson:"passwordHash" json:"-"`
	Role              Role      `bson:"role" json:"role"`
	RiskLevel         RiskLevel `bson:"riskLevel,omitempty" json:"riskLevel,omitempty"`
	InvestmentBracket string    `bson:"investmentBracket,omitempty" json:"investmentBracket,omitempty"`
	CreatedAt         time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time `bson:"updatedAt" json:"updatedAt"`
}

// SafeView returns a copy of the user with credential material stripped.
func (u User) SafeView() User {
	u.PasswordHash = ""
	return u
}
