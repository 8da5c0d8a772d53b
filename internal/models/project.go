package models

import "time"

// Project statuses. French labels come from the commissioning workflow and
// are stored verbatim.
const (
	StatusBrouillon = "Brouillon"
	StatusEnCours   = "En cours"
	StatusComplet   = "Complet"
)

// ValidStatus reports whether s is one of the three project statuses.
func ValidStatus(s string) bool {
	return s == StatusBrouillon || s == StatusEnCours || s == StatusComplet
}

// Project represents a construction project. The owner is set at creation
// and never changes; only the owner may edit project fields.
type Project struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OwnerID   uint      `gorm:"index;not null" json:"owner_id"`
	Owner     *User     `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Name      string    `gorm:"size:200;not null" json:"name"`
	Location  string    `gorm:"size:255;not null" json:"location"`
	Type      string    `gorm:"size:100" json:"type"`
	Surface   float64   `json:"surface"`
	Budget    float64   `json:"budget"`
	Status    string    `gorm:"size:50;not null;default:En cours" json:"status"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Project) TableName() string { return "projects" }
