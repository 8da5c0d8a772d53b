package services

import (
	"errors"
	"io"
	"strings"

	"github.com/skanderbz/batitrack/internal/models"
	"github.com/skanderbz/batitrack/pkg/response"
	"gorm.io/gorm"
)

type DocumentService struct {
	db      *gorm.DB
	access  *AccessService
	storage *FileStorage
}

func NewDocumentService(db *gorm.DB, access *AccessService, storage *FileStorage) *DocumentService {
	return &DocumentService{db: db, access: access, storage: storage}
}

// DocumentWithUploader is a document row joined with the uploader's email.
type DocumentWithUploader struct {
	models.Document
	UploaderEmail string `json:"uploader_email"`
}

// List returns a project's documents with uploader emails, newest first.
func (s *DocumentService) List(projectID, requesterID uint) ([]DocumentWithUploader, error) {
	ok, err := s.access.CanAccess(projectID, requesterID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, response.NewForbidden("access denied")
	}

	var docs []DocumentWithUploader
	err = s.db.Model(&models.Document{}).
		Select("documents.*, users.email AS uploader_email").
		Joins("JOIN users ON users.id = documents.uploaded_by").
		Where("documents.project_id = ?", projectID).
		Order("documents.created_at DESC").
		Scan(&docs).Error
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// Upload stores the file and records its metadata. The caller must have
// project access; the transport layer additionally restricts uploads to
// architecte and moa roles. An empty docType defaults to "plan".
func (s *DocumentService) Upload(projectID, requesterID uint, docType string, file io.Reader, originalName string) (*models.Document, error) {
	ok, err := s.access.CanAccess(projectID, requesterID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, response.NewForbidden("access denied")
	}

	docType = strings.TrimSpace(docType)
	if docType == "" {
		docType = "plan"
	}

	storagePath, safeName, err := s.storage.Save(file, originalName)
	if err != nil {
		if errors.Is(err, ErrFileTooLarge) {
			return nil, response.NewBadRequest("file exceeds maximum allowed size")
		}
		return nil, err
	}

	doc := models.Document{
		ProjectID:   projectID,
		UploadedBy:  requesterID,
		DocType:     docType,
		Filename:    safeName,
		StoragePath: storagePath,
	}
	if err := s.db.Create(&doc).Error; err != nil {
		return nil, err
	}

	return &doc, nil
}

// SignResult reports whether this call created the signature or found an
// existing one.
type SignResult struct {
	Signature *models.ConventionSignature `json:"signature"`
	Created   bool                        `json:"created"`
}

// Sign records a signature on a convention document. Re-signing the same
// (project, user, document) triple is a no-op. The user agent is truncated
// to 255 characters before storage.
func (s *DocumentService) Sign(projectID, documentID, requesterID uint, signerIP, signerUserAgent string) (*SignResult, error) {
	ok, err := s.access.CanAccess(projectID, requesterID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, response.NewForbidden("access denied")
	}

	var doc models.Document
	if err := s.db.Where("id = ? AND project_id = ?", documentID, projectID).First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("document not found")
		}
		return nil, err
	}

	if doc.DocType != "convention" {
		return nil, response.NewBadRequest("document is not a convention")
	}

	if len(signerUserAgent) > 255 {
		signerUserAgent = signerUserAgent[:255]
	}

	var existing models.ConventionSignature
	if err := s.db.Where("project_id = ? AND user_id = ? AND document_id = ?",
		projectID, requesterID, documentID).First(&existing).Error; err == nil {
		return &SignResult{Signature: &existing, Created: false}, nil
	}

	signature := models.ConventionSignature{
		ProjectID:       projectID,
		UserID:          requesterID,
		DocumentID:      documentID,
		SignerIP:        signerIP,
		SignerUserAgent: signerUserAgent,
	}
	if err := s.db.Create(&signature).Error; err != nil {
		// A concurrent sign hit the unique triple index first
		if err2 := s.db.Where("project_id = ? AND user_id = ? AND document_id = ?",
			projectID, requesterID, documentID).First(&existing).Error; err2 == nil {
			return &SignResult{Signature: &existing, Created: false}, nil
		}
		return nil, err
	}

	return &SignResult{Signature: &signature, Created: true}, nil
}
