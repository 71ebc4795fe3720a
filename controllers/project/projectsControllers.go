package project

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"unimatch-backend/config"
	"unimatch-backend/controllers/authentication"
	"unimatch-backend/models/projects"
	"unimatch-backend/models/users"
	"unimatch-backend/recommendations"
	"unimatch-backend/services/recommender"
)

// ListProjects returns every project.
func ListProjects(c *gin.Context) {
	var all []projects.Project
	if err := config.DB.Order("id").Find(&all).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list projects"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": all})
}

type projectInput struct {
	Name      string                    `json:"name" binding:"required"`
	Client    string                    `json:"client"`
	Thumbnail string                    `json:"thumbnail"`
	Skills    recommendations.WeightMap `json:"skills"`
	Knowledge recommendations.WeightMap `json:"knowledge"`
}

// CreateProject stores a new project. Academic or admin only.
func CreateProject(c *gin.Context) {
	role := c.GetString("userRole")
	if role != users.RoleAcademic && role != users.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Academic or admin role required"})
		return
	}

	var input projectInput
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

	project := projects.Project{
		Name:      input.Name,
		Client:    input.Client,
		Thumbnail: input.Thumbnail,
		Skills:    skills,
		Knowledge: knowledge,
		CreatorID: c.GetUint("userID"),
	}
	if err := config.DB.Create(&project).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
		return
	}
	c.JSON(http.StatusCreated, project)
}

// RecommendedProjects ranks all projects against the caller's student
// profile and resolves the top ids to project records.
func RecommendedProjects(c *gin.Context) {
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

	candidates, err := projects.AllCandidates()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load projects"})
		return
	}

	ranked, err := recommender.Engine().RecommendProjects(skills, knowledge, candidates, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to rank projects"})
		return
	}

	info := make([]gin.H, 0, len(ranked))
	for _, entry := range ranked {
		var project projects.Project
		if err := config.DB.First(&project, entry.ProjectID).Error; err != nil {
			continue
		}
		info = append(info, gin.H{
			"id":        project.ID,
			"name":      project.Name,
			"client":    project.Client,
			"thumbnail": project.Thumbnail,
			"score":     entry.Score,
		})
	}
	c.JSON(http.StatusOK, gin.H{"projects": info})
}

// ProjectMatch reports the caller's gap against one project: which
// required skills and knowledge they lack and how much of the required
// vocabulary they cover.
func ProjectMatch(c *gin.Context) {
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

	projectID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project id"})
		return
	}
	var project projects.Project
	if err := config.DB.First(&project, uint(projectID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}

	candidate, err := project.Candidate()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Corrupt project data"})
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

	report, err := recommender.Engine().Match(candidate, skills, knowledge)
	if err != nil {
		if errors.Is(err, recommendations.ErrNoRequiredTerms) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Project has no required terms"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute match"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":               project.ID,
		"name":             project.Name,
		"client":           project.Client,
		"thumbnail":        project.Thumbnail,
		"skills":           candidate.Skills,
		"knowledge":        candidate.Knowledge,
		"missingSkills":    report.MissingSkills,
		"missingKnowledge": report.MissingKnowledge,
		"percentageMatch":  report.PercentageMatch,
	})
}

type groupInput struct {
	Name     string `json:"name" binding:"required"`
	Capacity int    `json:"capacity"`
}

// CreateGroup adds a member group to a project.
func CreateGroup(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project id"})
		return
	}
	var project projects.Project
	if err := config.DB.First(&project, uint(projectID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}

	var input groupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	group := projects.Group{ProjectID: uint(projectID), Name: input.Name, Capacity: input.Capacity}
	if err := config.DB.Create(&group).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create group"})
		return
	}
	c.JSON(http.StatusCreated, group)
}

// JoinGroup adds the caller to a group, respecting its capacity.
func JoinGroup(c *gin.Context) {
	groupID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group id"})
		return
	}
	var group projects.Group
	if err := config.DB.First(&group, uint(groupID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	userID := c.GetUint("userID")
	var existing projects.GroupMember
	if err := config.DB.Where("group_id = ? AND user_id = ?", uint(groupID), userID).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Already a member"})
		return
	}

	if group.Capacity > 0 {
		var members int64
		config.DB.Model(&projects.GroupMember{}).Where("group_id = ?", uint(groupID)).Count(&members)
		if members >= int64(group.Capacity) {
			c.JSON(http.StatusConflict, gin.H{"error": "Group is full"})
			return
		}
	}

	member := projects.GroupMember{GroupID: uint(groupID), UserID: userID}
	if err := config.DB.Create(&member).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to join group"})
		return
	}
	c.JSON(http.StatusCreated, member)
}

// ListGroupMembers returns the members of a group with public fields.
func ListGroupMembers(c *gin.Context) {
	groupID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group id"})
		return
	}

	var members []projects.GroupMember
	if err := config.DB.Where("group_id = ?", uint(groupID)).Find(&members).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list members"})
		return
	}

	info := make([]gin.H, 0, len(members))
	for _, member := range members {
		user, err := users.GetUserByID(member.UserID)
		if err != nil {
			continue
		}
		info = append(info, gin.H{
			"zID":       user.ZID,
			"firstName": user.FirstName,
			"lastName":  user.LastName,
			"imageURL":  user.ImageURL,
		})
	}
	c.JSON(http.StatusOK, gin.H{"members": info})
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
