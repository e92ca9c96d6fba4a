package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Gif is a GIF saved into a user's collection. IDs are unique within the owner only.
type Gif struct {
	ID        primitive.ObjectID `json:"id" bson:"_id"`
	URL       string             `json:"url" bson:"url"`
	Title     string             `json:"title" bson:"title"`
	DateAdded time.Time          `json:"dateAdded" bson:"dateAdded"`
	Likes     int                `json:"likes" bson:"likes"`
}

// SaveGifRequest saves a direct URL into the caller's collection.
type SaveGifRequest struct {
	URL   string `json:"url" validate:"required,url"`
	Title string `json:"title" validate:"omitempty,max=200"`
}

// AcquireGifRequest asks for a GIF the caller has not seen yet.
type AcquireGifRequest struct {
	Query         string `json:"q" validate:"required,max=100"`
	SessionID     string `json:"session_id" validate:"omitempty,max=64"`
	Save          bool   `json:"save"`
	ContentFilter string `json:"content_filter" validate:"omitempty,oneof=off low medium high"`
	Locale        string `json:"locale" validate:"omitempty,max=10"`
}
