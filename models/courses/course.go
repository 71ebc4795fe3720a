package courses

import (
	"time"

	"unimatch-backend/config"
	"unimatch-backend/recommendations"
)

// Course is one archived version of a course outline. The same code
// appears once per (YearDate, Term) it ran in; the most recent row is
// the one that represents the code for recommendations.
type Course struct {
	ID        uint   `gorm:"primaryKey"`
	Code      string `json:"code" gorm:"index;not null"`
	Name      string `json:"name"`
	School    string `json:"school"`
	YearDate  int    `json:"yearDate"`
	Term      int    `json:"term"`
	Skills    string `json:"-" gorm:"type:text"`
	Knowledge string `json:"-" gorm:"type:text"`
	Topics    string `json:"-" gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Enrolment links a user to a course version they are taking or have
// completed under a given role.
type Enrolment struct {
	ID       uint   `gorm:"primaryKey"`
	UserID   uint   `gorm:"index;not null"`
	CourseID uint   `gorm:"index;not null"`
	Role     string `gorm:"not null"`
}

// SkillsMap decodes the course's persisted skills blob.
func (c *Course) SkillsMap() (recommendations.WeightMap, error) {
	return recommendations.ParseWeightMap(c.Skills)
}

// KnowledgeMap decodes the course's persisted knowledge blob.
func (c *Course) KnowledgeMap() (recommendations.WeightMap, error) {
	return recommendations.ParseWeightMap(c.Knowledge)
}

// Candidate converts a course row into its scoring representation.
func (c *Course) Candidate() (recommendations.CourseCandidate, error) {
	skills, err := c.SkillsMap()
	if err != nil {
		return recommendations.CourseCandidate{}, err
	}
	knowledge, err := c.KnowledgeMap()
	if err != nil {
		return recommendations.CourseCandidate{}, err
	}
	return recommendations.CourseCandidate{
		Code:      c.Code,
		YearDate:  c.YearDate,
		Term:      c.Term,
		Skills:    skills,
		Knowledge: knowledge,
	}, nil
}

// LatestByCode returns the most recent version of a course code.
func LatestByCode(code string) (*Course, error) {
	var course Course
	err := config.DB.Where("code = ?", code).
		Order("year_date DESC").Order("term DESC").
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// AllCandidates loads every course row as a scoring candidate, newest
// versions first so the latest-version dedup keeps the right row.
func AllCandidates() ([]recommendations.CourseCandidate, error) {
	var rows []Course
	err := config.DB.Order("code").Order("year_date DESC").Order("term DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	candidates := make([]recommendations.CourseCandidate, 0, len(rows))
	for i := range rows {
		candidate, err := rows[i].Candidate()
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, candidate)
	}
	return candidates, nil
}

// CompletedCourseCodes returns the codes of every course a user is or
// was enrolled in; they are excluded from course recommendations.
func CompletedCourseCodes(userID uint) (map[string]bool, error) {
	var enrolments []Enrolment
	if err := config.DB.Where("user_id = ?", userID).Find(&enrolments).Error; err != nil {
		return nil, err
	}

	completed := make(map[string]bool, len(enrolments))
	for _, enrolment := range enrolments {
		var course Course
		if err := config.DB.First(&course, enrolment.CourseID).Error; err != nil {
			return nil, err
		}
		completed[course.Code] = true
	}
	return completed, nil
}
