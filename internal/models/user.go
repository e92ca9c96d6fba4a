package models

import (
	"slices"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the per-user document: profile, saved GIFs and the following set.
type User struct {
	MongoID   primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	ID        string             `json:"id" bson:"id"` // identity provider UID
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email" bson:"email"`
	Gifs      []Gif              `json:"gifs" bson:"gifs"`
	Following []string           `json:"following" bson:"following"`
}

// UserCompact is the public projection used in listings.
type UserCompact struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (u *User) ToCompact() UserCompact {
	return UserCompact{ID: u.ID, Name: u.Name}
}

// IsFollowing reports whether targetID is in the following set.
func (u *User) IsFollowing(targetID string) bool {
	return slices.Contains(u.Following, targetID)
}

// GifURLs returns the set of URLs already saved by the user.
func (u *User) GifURLs() map[string]struct{} {
	urls := make(map[string]struct{}, len(u.Gifs))
	for _, g := range u.Gifs {
		urls[g.URL] = struct{}{}
	}
	return urls
}

type RegisterUserRequest struct {
	Name string `json:"name" validate:"omitempty,min=1,max=80"`
}
