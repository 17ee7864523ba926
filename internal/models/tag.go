package models

// Tag is a user-created restaurant category. Names are free text and are not
// required to be unique; identity is the id.
type Tag struct {
	ID     string `bson:"_id" json:"_id"`
	Name   string `bson:"name" json:"name" validate:"required"`
	UserID string `bson:"userId" json:"userId"`
}
