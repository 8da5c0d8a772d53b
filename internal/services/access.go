package services

import (
	"errors"
	"strings"

	"github.com/skanderbz/batitrack/internal/models"
	"github.com/skanderbz/batitrack/pkg/response"
	"gorm.io/gorm"
)

// AccessService is the single authority for project access decisions.
// Access is two-tier: the owner administers the project, members get
// uniform read/contribute access, everyone else is a stranger.
type AccessService struct {
	db *gorm.DB
}

func NewAccessService(db *gorm.DB) *AccessService {
	return &AccessService{db: db}
}

// CanAccess reports whether the user is the project's owner or a member.
// Every project and document read/write goes through this predicate, except
// project creation (global role gate) and project update (ownership gate).
func (s *AccessService) CanAccess(projectID, userID uint) (bool, error) {
	var project models.Project
	if err := s.db.Select("owner_id").First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	if project.OwnerID == userID {
		return true, nil
	}

	var count int64
	err := s.db.Model(&models.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

type InviteRequest struct {
	Email         string `json:"email" binding:"required"`
	RoleInProject string `json:"role_in_project"`
}

// Invite adds an existing user to a project. Only the owner may invite.
// Inviting a user who is already a member is a silent no-op; the unique
// (project_id, user_id) index gives the same outcome under concurrent
// invites. The project role defaults to the invitee's global role.
func (s *AccessService) Invite(projectID, inviterID uint, req *InviteRequest) (*models.ProjectMember, error) {
	var project models.Project
	if err := s.db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("project not found")
		}
		return nil, err
	}

	if project.OwnerID != inviterID {
		return nil, response.NewForbidden("only the project owner can invite members")
	}

	var invitee models.User
	if err := s.db.Where("email = ?", strings.TrimSpace(req.Email)).First(&invitee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("no user with this email")
		}
		return nil, err
	}

	role := invitee.Role
	if req.RoleInProject != "" {
		parsed, ok := models.ParseRole(req.RoleInProject)
		if !ok {
			return nil, response.NewBadRequest("invalid role")
		}
		role = parsed
	}

	var existing models.ProjectMember
	if err := s.db.Where("project_id = ? AND user_id = ?", projectID, invitee.ID).
		First(&existing).Error; err == nil {
		return &existing, nil
	}

	member := models.ProjectMember{
		ProjectID:     projectID,
		UserID:        invitee.ID,
		RoleInProject: role,
	}
	if err := s.db.Create(&member).Error; err != nil {
		// A concurrent invite hit the unique pair index first
		if err2 := s.db.Where("project_id = ? AND user_id = ?", projectID, invitee.ID).
			First(&existing).Error; err2 == nil {
			return &existing, nil
		}
		return nil, err
	}

	return &member, nil
}

// ListMembers returns a project's members with user info, for anyone with
// access to the project.
func (s *AccessService) ListMembers(projectID, requesterID uint) ([]models.ProjectMember, error) {
	ok, err := s.CanAccess(projectID, requesterID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, response.NewForbidden("access denied")
	}

	var members []models.ProjectMember
	if err := s.db.Where("project_id = ?", projectID).
		Preload("User").
		Order("created_at ASC").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}
