package models

import "time"

// ConventionSignature records a signing event on a convention document.
// The unique triple index makes re-signing idempotent, including under
// concurrent requests.
type ConventionSignature struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	ProjectID       uint      `gorm:"uniqueIndex:idx_project_user_document;not null" json:"project_id"`
	UserID          uint      `gorm:"uniqueIndex:idx_project_user_document;not null" json:"user_id"`
	User            *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	DocumentID      uint      `gorm:"uniqueIndex:idx_project_user_document;not null" json:"document_id"`
	Document        *Document `gorm:"foreignKey:DocumentID" json:"document,omitempty"`
	SignerIP        string    `gorm:"size:50" json:"signer_ip"`
	SignerUserAgent string    `gorm:"size:255" json:"signer_user_agent"`
	CreatedAt       time.Time `json:"created_at"`
}

func (ConventionSignature) TableName() string { return "convention_signatures" }
