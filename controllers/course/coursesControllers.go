package course

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"unimatch-backend/config"
	"unimatch-backend/controllers/authentication"
	"unimatch-backend/models/courses"
	"unimatch-backend/models/users"
	"unimatch-backend/recommendations"
	"unimatch-backend/services/recommender"
)

// ListCourses returns every stored course version.
func ListCourses(c *gin.Context) {
	var all []courses.Course
	if err := config.DB.Order("code").Order("year_date DESC").Order("term DESC").Find(&all).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list courses"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"courses": all})
}

type courseInput struct {
	Code      string                    `json:"code" binding:"required"`
	Name      string                    `json:"name" binding:"required"`
	School    string                    `json:"school"`
	YearDate  int                       `json:"yearDate" binding:"required"`
	Term      int                       `json:"term" binding:"required"`
	Skills    recommendations.WeightMap `json:"skills"`
	Knowledge recommendations.WeightMap `json:"knowledge"`
	Topics    []string                  `json:"topics"`
}

// CreateCourse stores a new course version. Admin only.
func CreateCourse(c *gin.Context) {
	if c.GetString("userRole") != users.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin role required"})
		return
	}

	var input courseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if err := recommendations.Validate(input.Skills); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := recommendations.Validate(input.Knowledge); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	skills, err := encodeJSON(input.Skills)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error encoding skills"})
		return
	}
	knowledge, err := encodeJSON(input.Knowledge)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error encoding knowledge"})
		return
	}
	topics, err := encodeJSON(input.Topics)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error encoding topics"})
		return
	}

	course := courses.Course{
		Code:      input.Code,
		Name:      input.Name,
		School:    input.School,
		YearDate:  input.YearDate,
		Term:      input.Term,
		Skills:    skills,
		Knowledge: knowledge,
		Topics:    topics,
	}
	if err := config.DB.Create(&course).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create course"})
		return
	}
	c.JSON(http.StatusCreated, course)
}

// GetCourse returns the latest version of a course code with its skill
// and knowledge maps bucketed to the top entries plus "other".
func GetCourse(c *gin.Context) {
	course, err := courses.LatestByCode(c.Param("code"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}

	skills, err := course.SkillsMap()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Corrupt skills data"})
		return
	}
	knowledge, err := course.KnowledgeMap()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Corrupt knowledge data"})
		return
	}

	topTerms := recommender.Engine().Config().CourseTopTerms
	c.JSON(http.StatusOK, gin.H{
		"code":      course.Code,
		"name":      course.Name,
		"school":    course.School,
		"yearDate":  course.YearDate,
		"term":      course.Term,
		"skills":    recommendations.TopK(skills, topTerms),
		"knowledge": recommendations.TopK(knowledge, topTerms),
	})
}

// Enrol links the caller to a course version under their role.
func Enrol(c *gin.Context) {
	courseID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid course id"})
		return
	}

	var course courses.Course
	if err := config.DB.First(&course, uint(courseID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}

	userID := c.GetUint("userID")
	role := c.GetString("userRole")
	var existing courses.Enrolment
	if err := config.DB.Where("user_id = ? AND course_id = ?", userID, uint(courseID)).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Already enrolled"})
		return
	}

	enrolment := courses.Enrolment{UserID: userID, CourseID: uint(courseID), Role: role}
	if err := config.DB.Create(&enrolment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to enrol"})
		return
	}
	c.JSON(http.StatusCreated, enrolment)
}

// Unenrol removes the caller's enrolment in a course version.
func Unenrol(c *gin.Context) {
	courseID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid course id"})
		return
	}

	userID := c.GetUint("userID")
	result := config.DB.Where("user_id = ? AND course_id = ?", userID, uint(courseID)).Delete(&courses.Enrolment{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unenrol"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Enrolment not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Enrolment removed"})
}

// RecommendedCourses ranks the catalogue against the caller's student
// profile and resolves the top codes to course records.
func RecommendedCourses(c *gin.Context) {
	user, ok := authentication.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}
	profile := user.RoleProfile(users.RoleStudent)
	if profile == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No student profile"})
		return
	}

	skills, err := profile.SkillsMap()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Corrupt skills data"})
		return
	}
	knowledge, err := profile.KnowledgeMap()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Corrupt knowledge data"})
		return
	}

	candidates, err := courses.AllCandidates()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load courses"})
		return
	}
	completed, err := courses.CompletedCourseCodes(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load enrolments"})
		return
	}

	combined := recommendations.Combine(skills, knowledge)
	ranked, err := recommender.Engine().RecommendCourses(combined, candidates, completed)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to rank courses"})
		return
	}

	info := make([]gin.H, 0, len(ranked))
	for _, entry := range ranked {
		course, err := courses.LatestByCode(entry.Code)
		if err != nil {
			continue
		}
		info = append(info, gin.H{
			"code":     course.Code,
			"name":     course.Name,
			"school":   course.School,
			"yearDate": course.YearDate,
			"term":     course.Term,
			"score":    entry.Score,
		})
	}
	c.JSON(http.StatusOK, gin.H{"courses": info})
}

func encodeJSON(v interface{}) (string, error) {
	if v == nil {
		return "{}", nil
	}
	blob, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(blob), nil
}
