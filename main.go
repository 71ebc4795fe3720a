package main

import (
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"

	"unimatch-backend/config"
	"unimatch-backend/controllers/authentication"
	"unimatch-backend/controllers/course"
	"unimatch-backend/controllers/httpcors"
	"unimatch-backend/controllers/profile"
	"unimatch-backend/controllers/project"
	"unimatch-backend/controllers/students"
	"unimatch-backend/models/courses"
	"unimatch-backend/models/projects"
	"unimatch-backend/models/users"
	"unimatch-backend/recommendations"
	"unimatch-backend/services/embeddings"
	"unimatch-backend/services/recommender"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := config.InitDB(); err != nil {
		log.Fatalf("Database initialization failed: %v", err)
	}

	err := config.DB.AutoMigrate(
		&users.User{},
		&users.UserRole{},
		&courses.Course{},
		&courses.Enrolment{},
		&projects.Project{},
		&projects.Group{},
		&projects.GroupMember{},
	)
	if err != nil {
		log.Fatalf("Database migration failed: %v", err)
	}

	encoder, err := embeddings.NewEncoder(embeddings.Config{
		LibraryPath:   os.Getenv("ONNXRUNTIME_LIB"),
		ModelPath:     os.Getenv("EMBED_MODEL_PATH"),
		TokenizerPath: os.Getenv("EMBED_TOKENIZER_PATH"),
		MaxSeqLen:     envInt("EMBED_MAX_SEQ_LEN", 0),
	})
	if err != nil {
		log.Fatalf("Embedding model load failed: %v", err)
	}
	defer encoder.Close()

	recommender.Init(embeddings.NewModel(encoder), recommendations.DefaultConfig())
	log.Println("Embedding model loaded")

	router := gin.Default()

	router.POST("/register", authentication.Register)
	router.POST("/login", authentication.Login)
	router.POST("/logout", authentication.Logout)

	router.GET("/users/:zid/profile", profile.GetPublicProfile)

	authed := router.Group("/")
	authed.Use(authentication.AuthMiddleware())
	{
		authed.GET("/profile", profile.GetProfile)
		authed.PUT("/profile/intro", profile.UpdateIntro)
		authed.PUT("/profile/privacy", profile.UpdatePrivacy)
		authed.GET("/profile/skills", profile.GetProfileSkills)
		authed.GET("/profile/knowledge", profile.GetProfileKnowledge)
		authed.PUT("/profile/weights", profile.UpdateWeightMaps)

		authed.GET("/courses", course.ListCourses)
		authed.POST("/courses", course.CreateCourse)
		authed.GET("/courses/recommended", course.RecommendedCourses)
		authed.GET("/courses/:code", course.GetCourse)
		authed.POST("/courses/id/:id/enrol", course.Enrol)
		authed.DELETE("/courses/id/:id/enrol", course.Unenrol)

		authed.GET("/projects", project.ListProjects)
		authed.POST("/projects", project.CreateProject)
		authed.GET("/projects/recommended", project.RecommendedProjects)
		authed.GET("/projects/:id/match", project.ProjectMatch)
		authed.POST("/projects/:id/groups", project.CreateGroup)
		authed.POST("/groups/:id/join", project.JoinGroup)
		authed.GET("/groups/:id/members", project.ListGroupMembers)

		authed.GET("/students/recommended", students.RecommendedStudents)
	}

	handler := httpcors.CorsSettings().Handler(router)

	log.Printf("Server listening on port %s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Ignoring invalid %s=%q", key, value)
		return fallback
	}
	return parsed
}
