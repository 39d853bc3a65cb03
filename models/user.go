package models

import "time"

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

type User struct {
	UserID        string     `json:"userid" bson:"userid"`
	Name          string     `json:"name,omitempty" bson:"name,omitempty"`
	Email         string     `json:"email" bson:"email"`
	Password      string     `json:"-" bson:"password"`
	Role          string     `json:"role" bson:"role"`
	Phone         string     `json:"phone,omitempty" bson:"phone,omitempty"`
	Organization  string     `json:"organization,omitempty" bson:"organization,omitempty"`
	Address       string     `json:"address,omitempty" bson:"address,omitempty"`
	LastLoginAt   *time.Time `json:"lastLoginAt,omitempty" bson:"lastLoginAt,omitempty"`
	RefreshToken  string     `json:"-" bson:"refreshtoken,omitempty"`
	RefreshExpiry time.Time  `json:"-" bson:"refreshexp,omitempty"`
	CreatedAt     time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// UserSummary is the shape embedded in order listings.
type UserSummary struct {
	UserID string `json:"userid" bson:"userid"`
	Name   string `json:"name,omitempty" bson:"name,omitempty"`
	Email  string `json:"email" bson:"email"`
	Phone  string `json:"phone,omitempty" bson:"phone,omitempty"`
}

func (u *User) Summary() *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{UserID: u.UserID, Name: u.Name, Email: u.Email, Phone: u.Phone}
}
