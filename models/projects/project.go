package projects

import (
	"time"

	"unimatch-backend/config"
	"unimatch-backend/recommendations"
)

// Project is a client project students can be matched to, with its
// required skill and knowledge weight maps stored as JSON text.
type Project struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `json:"name" gorm:"not null"`
	Client    string `json:"client"`
	Thumbnail string `json:"thumbnail"`
	Skills    string `json:"-" gorm:"type:text"`
	Knowledge string `json:"-" gorm:"type:text"`
	CreatorID uint   `json:"creatorID" gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Group is one member group working on a project.
type Group struct {
	ID        uint   `gorm:"primaryKey"`
	ProjectID uint   `json:"projectID" gorm:"index;not null"`
	Name      string `json:"name"`
	Capacity  int    `json:"capacity"`
}

type GroupMember struct {
	ID      uint `gorm:"primaryKey"`
	GroupID uint `json:"groupID" gorm:"index;not null"`
	UserID  uint `json:"userID" gorm:"index;not null"`
}

// SkillsMap decodes the project's required-skills blob.
func (p *Project) SkillsMap() (recommendations.WeightMap, error) {
	return recommendations.ParseWeightMap(p.Skills)
}

// KnowledgeMap decodes the project's required-knowledge blob.
func (p *Project) KnowledgeMap() (recommendations.WeightMap, error) {
	return recommendations.ParseWeightMap(p.Knowledge)
}

// Candidate converts a project row into its scoring representation.
func (p *Project) Candidate() (recommendations.ProjectCandidate, error) {
	skills, err := p.SkillsMap()
	if err != nil {
		return recommendations.ProjectCandidate{}, err
	}
	knowledge, err := p.KnowledgeMap()
	if err != nil {
		return recommendations.ProjectCandidate{}, err
	}
	return recommendations.ProjectCandidate{ID: p.ID, Skills: skills, Knowledge: knowledge}, nil
}

// AllCandidates loads every project as a scoring candidate in insertion
// order.
func AllCandidates() ([]recommendations.ProjectCandidate, error) {
	var rows []Project
	if err := config.DB.Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}

	candidates := make([]recommendations.ProjectCandidate, 0, len(rows))
	for i := range rows {
		candidate, err := rows[i].Candidate()
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, candidate)
	}
	return candidates, nil
}
