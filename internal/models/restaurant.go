package models

import "time"

type Restaurant struct {
	ID      string   `bson:"_id" json:"_id"`
	Name    string   `bson:"name" json:"name" validate:"required"`
	Number  string   `bson:"number,omitempty" json:"number,omitempty"`
	Address string   `bson:"address,omitempty" json:"address,omitempty"`
	Website string   `bson:"website,omitempty" json:"website,omitempty"`
	Notes   string   `bson:"notes,omitempty" json:"notes,omitempty"`
	Tags    []string `bson:"tags" json:"tags"`
	UserID  string   `bson:"userId" json:"userId"`
	// ListType on the canonical record is authoritative for which of the
	// owner's two lists this restaurant belongs to.
	ListType ListType `bson:"listType" json:"listType"`
	Photo    *Photo   `bson:"photo,omitempty" json:"photo,omitempty"`
}

// Photo records an object uploaded to the photo bucket for a restaurant.
type Photo struct {
	Object      string    `bson:"object" json:"object"`
	ContentType string    `bson:"content_type,omitempty" json:"content_type,omitempty"`
	UploadedAt  time.Time `bson:"uploaded_at" json:"uploaded_at"`
}
