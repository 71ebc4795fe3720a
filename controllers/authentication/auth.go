package authentication

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"unimatch-backend/config"
	"unimatch-backend/models/users"
)

var JwtKey = []byte(os.Getenv("JWT_SECRET"))

type Claims struct {
	ZID    string `json:"zID"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	UserID uint   `json:"userID"`
	jwt.StandardClaims
}

type registerInput struct {
	ZID       string `json:"zID" binding:"required"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	Role      string `json:"role" binding:"required"`
}

func validRole(role string) bool {
	return role == users.RoleStudent || role == users.RoleAcademic || role == users.RoleAdmin
}

// Register creates a user with one role profile and empty weight maps.
func Register(c *gin.Context) {
	var input registerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	if !validRole(input.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role. Allowed roles: student, academic, admin"})
		return
	}

	var existing users.User
	if err := config.DB.Where("z_id = ? OR email = ?", input.ZID, input.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "zID or email already registered"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error hashing password"})
		return
	}

	user := users.User{
		ZID:       input.ZID,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Password:  string(hashed),
		Roles: []users.UserRole{
			{Role: input.Role, Skills: "{}", Knowledge: "{}"},
		},
	}
	if err := config.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating user"})
		return
	}

	token, err := issueToken(&user, input.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generating token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user, "token": token})
}

type loginInput struct {
	ZID      string `json:"zID" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login checks the password and returns a fresh JWT. The zID is also
// kept in the cookie session for browser clients.
func Login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	user, err := users.GetUserByZID(input.ZID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid password"})
		return
	}

	role := users.RoleStudent
	if len(user.Roles) > 0 {
		role = user.Roles[0].Role
	}
	token, err := issueToken(user, role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generating token"})
		return
	}

	session, _ := config.Store.Get(c.Request, "session-name")
	session.Values["zID"] = user.ZID
	_ = session.Save(c.Request, c.Writer)

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Logout drops the cookie session. The JWT simply expires.
func Logout(c *gin.Context) {
	session, _ := config.Store.Get(c.Request, "session-name")
	delete(session.Values, "zID")
	session.Options.MaxAge = -1
	_ = session.Save(c.Request, c.Writer)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func issueToken(user *users.User, role string) (string, error) {
	expirationTime := time.Now().Add(24 * time.Hour)
	claims := &Claims{
		ZID:    user.ZID,
		Email:  user.Email,
		Role:   role,
		UserID: user.ID,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expirationTime.Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JwtKey)
}

// AuthMiddleware validates the bearer token and stores the caller's
// identity in the gin context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return JwtKey, nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("zID", claims.ZID)
		c.Set("userRole", claims.Role)
		c.Next()
	}
}

// CurrentUser loads the authenticated user set by AuthMiddleware.
func CurrentUser(c *gin.Context) (*users.User, bool) {
	userID, exists := c.Get("userID")
	if !exists {
		return nil, false
	}
	user, err := users.GetUserByID(userID.(uint))
	if err != nil {
		return nil, false
	}
	return user, true
}
