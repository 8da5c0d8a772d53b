package services

import (
	"errors"
	"strings"

	"github.com/skanderbz/batitrack/internal/models"
	"github.com/skanderbz/batitrack/pkg/response"
	"gorm.io/gorm"
)

type ProjectService struct {
	db     *gorm.DB
	access *AccessService
}

func NewProjectService(db *gorm.DB, access *AccessService) *ProjectService {
	return &ProjectService{db: db, access: access}
}

type CreateProjectRequest struct {
	Name     string  `json:"name"`
	Location string  `json:"location"`
	Type     string  `json:"type"`
	Surface  float64 `json:"surface"`
	Budget   float64 `json:"budget"`
}

// UpdateProjectRequest is a partial patch: nil fields keep their prior
// value, so a field sent as an empty string is a real update attempt.
type UpdateProjectRequest struct {
	Name     *string  `json:"name"`
	Location *string  `json:"location"`
	Type     *string  `json:"type"`
	Surface  *float64 `json:"surface"`
	Budget   *float64 `json:"budget"`
	Status   *string  `json:"status"`
}

// Create registers a new project owned by the caller. Only MOA users may
// create projects.
func (s *ProjectService) Create(ownerID uint, ownerRole models.Role, req *CreateProjectRequest) (*models.Project, error) {
	if ownerRole != models.RoleMOA {
		return nil, response.NewForbidden("only MOA can create projects")
	}

	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Location) == "" {
		return nil, response.NewBadRequest("name and location are required")
	}

	project := models.Project{
		OwnerID:  ownerID,
		Name:     req.Name,
		Location: req.Location,
		Type:     req.Type,
		Surface:  req.Surface,
		Budget:   req.Budget,
		Status:   models.StatusEnCours,
	}
	if err := s.db.Create(&project).Error; err != nil {
		return nil, err
	}

	return &project, nil
}

// Get returns a project to its owner or a member.
func (s *ProjectService) Get(projectID, requesterID uint) (*models.Project, error) {
	var project models.Project
	if err := s.db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("project not found")
		}
		return nil, err
	}

	ok, err := s.access.CanAccess(projectID, requesterID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, response.NewForbidden("access denied")
	}

	return &project, nil
}

// List returns the projects the requester owns plus the ones they are a
// member of, newest first, without duplicates.
func (s *ProjectService) List(requesterID uint) ([]models.Project, error) {
	var projects []models.Project
	err := s.db.
		Where("owner_id = ?", requesterID).
		Or("id IN (?)", s.db.Model(&models.ProjectMember{}).
			Select("project_id").
			Where("user_id = ?", requesterID)).
		Order("created_at DESC").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// Update applies a partial patch to a project. Only the owner may update;
// absent fields keep their prior value.
func (s *ProjectService) Update(projectID, requesterID uint, req *UpdateProjectRequest) (*models.Project, error) {
	var project models.Project
	if err := s.db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("project not found")
		}
		return nil, err
	}

	if project.OwnerID != requesterID {
		return nil, response.NewForbidden("only the project owner can update it")
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, response.NewBadRequest("name cannot be blank")
	}
	if req.Location != nil && strings.TrimSpace(*req.Location) == "" {
		return nil, response.NewBadRequest("location cannot be blank")
	}
	if req.Status != nil && !models.ValidStatus(*req.Status) {
		return nil, response.NewBadRequest("invalid status")
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.Type != nil {
		updates["type"] = *req.Type
	}
	if req.Surface != nil {
		updates["surface"] = *req.Surface
	}
	if req.Budget != nil {
		updates["budget"] = *req.Budget
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}

	if len(updates) > 0 {
		if err := s.db.Model(&project).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return &project, nil
}
