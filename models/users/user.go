package users

import (
	"time"

	"gorm.io/gorm"

	"unimatch-backend/config"
	"unimatch-backend/recommendations"
)

// Role names a user can hold. A user may carry several role profiles at
// once (an academic who is also an admin).
const (
	RoleStudent  = "student"
	RoleAcademic = "academic"
	RoleAdmin    = "admin"
)

type User struct {
	ID        uint       `gorm:"primaryKey"`
	ZID       string     `json:"zID" gorm:"uniqueIndex;not null"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Email     string     `json:"email" gorm:"uniqueIndex;not null"`
	Password  string     `json:"-" gorm:"not null"`
	Headline  string     `json:"headline"`
	Summary   string     `json:"summary"`
	ImageURL  string     `json:"imageURL"`
	Private   bool       `json:"private"`
	Roles     []UserRole `json:"roles"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// UserRole is one role profile of a user with its accumulated skill and
// knowledge weight maps, stored as JSON text.
type UserRole struct {
	ID        uint   `gorm:"primaryKey" json:"-"`
	UserID    uint   `gorm:"index" json:"-"`
	Role      string `json:"role" gorm:"not null"`
	Skills    string `json:"-" gorm:"type:text"`
	Knowledge string `json:"-" gorm:"type:text"`
}

// SkillsMap decodes the role's persisted skills blob.
func (r *UserRole) SkillsMap() (recommendations.WeightMap, error) {
	return recommendations.ParseWeightMap(r.Skills)
}

// KnowledgeMap decodes the role's persisted knowledge blob.
func (r *UserRole) KnowledgeMap() (recommendations.WeightMap, error) {
	return recommendations.ParseWeightMap(r.Knowledge)
}

// RoleProfile returns the user's profile for the given role, or nil.
func (u *User) RoleProfile(role string) *UserRole {
	for i := range u.Roles {
		if u.Roles[i].Role == role {
			return &u.Roles[i]
		}
	}
	return nil
}

// GetUserByZID loads a user and their role profiles.
func GetUserByZID(zID string) (*User, error) {
	var user User
	if err := config.DB.Preload("Roles").Where("z_id = ?", zID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByID loads a user and their role profiles by primary key.
func GetUserByID(userID uint) (*User, error) {
	var user User
	if err := config.DB.Preload("Roles").First(&user, userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// StudentProfiles builds the peer-matching population: every user with a
// student role, keyed by zID, with skills and knowledge combined.
func StudentProfiles() ([]recommendations.StudentProfile, error) {
	var all []User
	if err := config.DB.Preload("Roles").Find(&all).Error; err != nil {
		return nil, err
	}

	profiles := make([]recommendations.StudentProfile, 0, len(all))
	for i := range all {
		role := all[i].RoleProfile(RoleStudent)
		if role == nil {
			continue
		}
		skills, err := role.SkillsMap()
		if err != nil {
			return nil, err
		}
		knowledge, err := role.KnowledgeMap()
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, recommendations.StudentProfile{
			ZID:    all[i].ZID,
			Vector: recommendations.Combine(skills, knowledge),
		})
	}
	return profiles, nil
}
