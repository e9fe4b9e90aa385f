package models

import "time"

// User is the account document. Password always holds a bcrypt hash.
type User struct {
	UserID        string    `json:"userid" bson:"userid"`
	Email         string    `json:"email" bson:"email"`
	Password      string    `json:"password,omitempty" bson:"password"`
	FirstName     string    `json:"fname" bson:"fname"`
	LastName      string    `json:"lname" bson:"lname"`
	Mobile        string    `json:"mobile" bson:"mobile"`
	Role          []string  `json:"role" bson:"role"`
	EmailVerified bool      `json:"email_verified" bson:"email_verified"`
	RefreshToken  string    `json:"-" bson:"refresh_token,omitempty"`
	RefreshExpiry time.Time `json:"-" bson:"refresh_expiry,omitempty"`
	LastLogin     time.Time `json:"last_login,omitempty" bson:"last_login,omitempty"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
}

type Address struct {
	AddressID string    `json:"addressid" bson:"addressid"`
	UserID    string    `json:"userid" bson:"userid"`
	Line1     string    `json:"line1" bson:"line1"`
	Line2     string    `json:"line2,omitempty" bson:"line2,omitempty"`
	City      string    `json:"city" bson:"city"`
	State     string    `json:"state" bson:"state"`
	Pincode   string    `json:"pincode" bson:"pincode"`
	Phone     string    `json:"phone" bson:"phone"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
