package profile

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"unimatch-backend/config"
	"unimatch-backend/controllers/authentication"
	"unimatch-backend/models/users"
	"unimatch-backend/recommendations"
	"unimatch-backend/services/recommender"
)

// GetProfile returns the authenticated user's own profile.
func GetProfile(c *gin.Context) {
	user, ok := authentication.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetPublicProfile returns the public fields of any user. Private
// profiles only expose the name.
func GetPublicProfile(c *gin.Context) {
	user, err := users.GetUserByZID(c.Param("zid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid User"})
		return
	}

	info := gin.H{
		"zID":       user.ZID,
		"firstName": user.FirstName,
		"lastName":  user.LastName,
		"private":   user.Private,
	}
	if !user.Private {
		info["headline"] = user.Headline
		info["summary"] = user.Summary
		info["imageURL"] = user.ImageURL
	}
	c.JSON(http.StatusOK, info)
}

type introInput struct {
	Headline string `json:"headline"`
	Summary  string `json:"summary"`
}

// UpdateIntro edits the headline and summary shown on the profile.
func UpdateIntro(c *gin.Context) {
	user, ok := authentication.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	var input introInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if len(input.Summary) > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Input - Summary too long!"})
		return
	}

	user.Headline = input.Headline
	user.Summary = input.Summary
	if err := config.DB.Save(user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating profile"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdatePrivacy toggles whether the profile is publicly visible.
func UpdatePrivacy(c *gin.Context) {
	user, ok := authentication.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	var input struct {
		Private *bool `json:"private" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	user.Private = *input.Private
	if err := config.DB.Save(user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"private": user.Private})
}

// roleProfile resolves the ?role= query against the caller's profiles.
func roleProfile(c *gin.Context) (*users.UserRole, bool) {
	user, ok := authentication.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return nil, false
	}

	role := c.DefaultQuery("role", users.RoleStudent)
	profile := user.RoleProfile(role)
	if profile == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No profile for role"})
		return nil, false
	}
	return profile, true
}

// GetProfileSkills returns the caller's skills for one role, percent
// normalized and bucketed to the top terms plus "other".
func GetProfileSkills(c *gin.Context) {
	profile, ok := roleProfile(c)
	if !ok {
		return
	}

	skills, err := profile.SkillsMap()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Corrupt skills data"})
		return
	}

	cfg := recommender.Engine().Config()
	skills = recommendations.NormalizeToPercent(skills)
	skills = recommendations.TopK(skills, cfg.ProfileTopTerms)
	skills = recommendations.NormalizeToPercent(skills)
	c.JSON(http.StatusOK, gin.H{"skills": skills})
}

// GetProfileKnowledge returns the caller's knowledge for one role. The
// vocabulary is cleaned through the term normalizer first so duplicated
// spellings collapse before bucketing.
func GetProfileKnowledge(c *gin.Context) {
	profile, ok := roleProfile(c)
	if !ok {
		return
	}

	knowledge, err := profile.KnowledgeMap()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Corrupt knowledge data"})
		return
	}

	engine := recommender.Engine()
	knowledge = recommendations.NormalizeToPercent(knowledge)
	cleaned, err := engine.NormalizeVocabulary(knowledge)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to normalize terms"})
		return
	}
	cleaned = recommendations.NormalizeToPercent(cleaned)
	cleaned = recommendations.TopK(cleaned, engine.Config().ProfileTopTerms)
	cleaned = recommendations.NormalizeToPercent(cleaned)
	c.JSON(http.StatusOK, gin.H{"knowledge": cleaned})
}

type weightMapsInput struct {
	Skills    recommendations.WeightMap `json:"skills"`
	Knowledge recommendations.WeightMap `json:"knowledge"`
}

// UpdateWeightMaps replaces the skills and knowledge maps of one role
// profile. Malformed maps are rejected at this boundary.
func UpdateWeightMaps(c *gin.Context) {
	profile, ok := roleProfile(c)
	if !ok {
		return
	}

	var input weightMapsInput
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

	skills, err := encodeWeightMap(input.Skills)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error encoding skills"})
		return
	}
	knowledge, err := encodeWeightMap(input.Knowledge)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error encoding knowledge"})
		return
	}

	profile.Skills = skills
	profile.Knowledge = knowledge
	if err := config.DB.Save(profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"skills": input.Skills, "knowledge": input.Knowledge})
}

func encodeWeightMap(m recommendations.WeightMap) (string, error) {
	if m == nil {
		return "{}", nil
	}
	blob, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	return string(blob), nil
}
