package models

import "time"

// Prompt is a saved search query owned by a user (PostgreSQL)
type Prompt struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      string    `json:"userId" gorm:"index;not null"`
	Title       string    `json:"title" gorm:"not null"`
	SearchQuery string    `json:"searchQuery" gorm:"not null"`
	CreatedAt   time.Time `json:"createdAt"`
	LastUsed    time.Time `json:"lastUsed" gorm:"index"`
}

type CreatePromptRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=100"`
	SearchQuery string `json:"searchQuery" validate:"required,min=1,max=100"`
}

type UpdatePromptRequest struct {
	Title       string `json:"title,omitempty" validate:"omitempty,min=1,max=100"`
	SearchQuery string `json:"searchQuery,omitempty" validate:"omitempty,min=1,max=100"`
}
