package model

import (
	"time"
)

type Note struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	UserID    string    `bson:"user_id" json:"userId"`
	Title     string    `bson:"title" json:"title" validate:"required,max=100"`
	Content   string    `bson:"content" json:"content" validate:"required"`
	Tags      []string  `bson:"tags" json:"tags" validate:"required,max=5,dive,max=20"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// NotePatch carries a partial update. A nil field is left untouched.
type NotePatch struct {
	Title   *string
	Content *string
	Tags    *[]string
}

// IsEmpty reports whether no field was supplied.
func (p NotePatch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil && p.Tags == nil
}
