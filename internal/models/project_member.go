package models

import "time"

// ProjectMember grants a user read/contribute access to a project. A user
// joins a project at most once; the unique pair index makes concurrent
// duplicate invites resolve as no-ops.
type ProjectMember struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ProjectID     uint      `gorm:"uniqueIndex:idx_project_user;not null" json:"project_id"`
	Project       *Project  `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	UserID        uint      `gorm:"uniqueIndex:idx_project_user;not null" json:"user_id"`
	User          *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	RoleInProject Role      `gorm:"size:50;not null" json:"role_in_project"`
	CreatedAt     time.Time `json:"created_at"`
}

func (ProjectMember) TableName() string { return "project_members" }
