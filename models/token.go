package models

import (
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

// Token is an opaque bearer credential. A user may hold several at once
// (one per device); logout drops all of them.
type Token struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Key       string    `gorm:"uniqueIndex;size:64;not null" json:"key"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

func NewToken(userID uint) Token {
	return Token{Key: GenerateKey(), UserID: userID}
}

// GenerateKey returns 32 hex chars from a random UUID.
func GenerateKey() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])
}
