package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FeedItem is a read-time projection of a Gif tagged with its owner.
type FeedItem struct {
	GifID     primitive.ObjectID `json:"id"`
	URL       string             `json:"url"`
	Title     string             `json:"title"`
	DateAdded time.Time          `json:"dateAdded"`
	Likes     int                `json:"likes"`
	OwnerID   string             `json:"ownerId"`
	OwnerName string             `json:"ownerName"`
}

type FeedPage struct {
	Items    []FeedItem `json:"items"`
	Page     int        `json:"page"`
	PageSize int        `json:"pageSize"`
	Total    int        `json:"total"`
	HasMore  bool       `json:"hasMore"`
}
