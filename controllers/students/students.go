package students

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"unimatch-backend/models/users"
	"unimatch-backend/services/recommender"
)

// RecommendedStudents ranks every other student against the caller by
// profile similarity. The list always covers the full population of
// other students, most similar first; students sharing no vocabulary
// with the caller come last in their original order.
func RecommendedStudents(c *gin.Context) {
	zID := c.GetString("zID")
	if zID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	profiles, err := users.StudentProfiles()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load students"})
		return
	}

	ranked, err := recommender.Engine().RecommendStudents(zID, profiles)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	info := make([]gin.H, 0, len(ranked))
	for _, entry := range ranked {
		user, err := users.GetUserByZID(entry.ZID)
		if err != nil {
			continue
		}
		role := user.RoleProfile(users.RoleStudent)
		skills := []string{}
		knowledge := []string{}
		if role != nil {
			if m, err := role.SkillsMap(); err == nil {
				for term := range m {
					skills = append(skills, term)
				}
			}
			if m, err := role.KnowledgeMap(); err == nil {
				for term := range m {
					knowledge = append(knowledge, term)
				}
			}
		}
		info = append(info, gin.H{
			"zID":       user.ZID,
			"firstName": user.FirstName,
			"lastName":  user.LastName,
			"headline":  user.Headline,
			"skills":    skills,
			"knowledge": knowledge,
			"imageURL":  user.ImageURL,
			"score":     entry.Score,
		})
	}
	c.JSON(http.StatusOK, gin.H{"students": info})
}
