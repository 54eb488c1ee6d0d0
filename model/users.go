package model

import "time"

type User struct {
	UserID    string    `bson:"_id" json:"id"`      // Opaque ID, also the session cookie value
	Email     string    `bson:"email" json:"email"` // Unique across users
	Name      string    `bson:"name" json:"name"`   // Defaults to the email local part
	CreatedAt time.Time `bson:"createdAt" json:"-"` // Time created for account life
}
