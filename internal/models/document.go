package models

import "time"

// Document is a file attached to a project. Documents are write-once:
// never updated or deleted.
type Document struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ProjectID   uint      `gorm:"index;not null" json:"project_id"`
	Project     *Project  `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	UploadedBy  uint      `gorm:"not null" json:"uploaded_by"`
	Uploader    *User     `gorm:"foreignKey:UploadedBy" json:"uploader,omitempty"`
	DocType     string    `gorm:"size:100;not null;default:plan" json:"doc_type"`
	Filename    string    `gorm:"size:255;not null" json:"filename"`
	StoragePath string    `gorm:"size:500;not null" json:"storage_path"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
}

func (Document) TableName() string { return "documents" }
