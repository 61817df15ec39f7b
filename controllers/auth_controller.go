package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Tinnitussen/DAT250/auth"
	"github.com/Tinnitussen/DAT250/models"
	"github.com/Tinnitussen/DAT250/repositories"
	"github.com/Tinnitussen/DAT250/services"
	"github.com/Tinnitussen/DAT250/utils"
)

type AuthController struct {
	users        *repositories.UserRepository
	sessions     *auth.Manager
	hasher       auth.Hasher
	emailService *services.EmailService
	logger       *logrus.Logger
}

func NewAuthController(users *repositories.UserRepository, sessions *auth.Manager, hasher auth.Hasher, emailService *services.EmailService, logger *logrus.Logger) *AuthController {
	return &AuthController{
		users:        users,
		sessions:     sessions,
		hasher:       hasher,
		emailService: emailService,
		logger:       logger,
	}
}

type LoginForm struct {
	Username string `json:"username" form:"username" binding:"required,max=50"`
	Password string `json:"password" form:"password" binding:"required"`
}

type RegisterForm struct {
	Username  string `json:"username" form:"username" binding:"required,max=50"`
	Password  string `json:"password" form:"password" binding:"required,min=8,max=72"`
	FirstName string `json:"first_name" form:"first_name" binding:"required,max=50"`
	LastName  string `json:"last_name" form:"last_name" binding:"required,max=50"`
	Email     string `json:"email" form:"email" binding:"omitempty,email,max=255"`
}

// IndexForm is the composite body of the index page: exactly one of
// the two sections is expected per submission.
type IndexForm struct {
	Login    *LoginForm    `json:"login"`
	Register *RegisterForm `json:"register"`
}

// Index answers GET on / and /index.
func (ac *AuthController) Index(c *gin.Context) {
	utils.SendSuccess(c, "Welcome to Social Insecurity", gin.H{
		"login":    "POST / with a login object",
		"register": "POST / with a register object",
	})
}

// Submit handles the composite login/register form on / and /index.
func (ac *AuthController) Submit(c *gin.Context) {
	var form IndexForm
	if err := c.ShouldBindJSON(&form); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	switch {
	case form.Login != nil:
		ac.login(c, form.Login)
	case form.Register != nil:
		ac.register(c, form.Register)
	default:
		utils.SendValidationError(c, "Submit either a login or a register form")
	}
}

func (ac *AuthController) login(c *gin.Context, form *LoginForm) {
	user, err := ac.users.ByUsername(form.Username)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			utils.SendError(c, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		ac.logger.WithError(err).Error("login lookup failed")
		utils.SendError(c, http.StatusInternalServerError, "Failed to log in")
		return
	}

	if !ac.hasher.Compare(user.Password, form.Password) {
		utils.SendError(c, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	principal := auth.Principal{
		ID:        user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
	if _, err := ac.sessions.Issue(c, principal); err != nil {
		ac.logger.WithError(err).Error("failed to issue session token")
		utils.SendError(c, http.StatusInternalServerError, "Failed to log in")
		return
	}

	utils.SendSuccess(c, "You have been logged in", principal)
}

func (ac *AuthController) register(c *gin.Context, form *RegisterForm) {
	hashed, err := ac.hasher.Hash(form.Password)
	if err != nil {
		ac.logger.WithError(err).Error("failed to hash password")
		utils.SendError(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	user := models.User{
		ID:        uuid.New().String(),
		Username:  form.Username,
		Password:  hashed,
		Email:     form.Email,
		FirstName: form.FirstName,
		LastName:  form.LastName,
	}

	// No exists-check first: the unique index on username arbitrates
	// concurrent registrations, so exactly one insert can win.
	if err := ac.users.Create(&user); err != nil {
		if errors.Is(err, models.ErrDuplicateUser) {
			utils.SendError(c, http.StatusConflict, "User already exists")
			return
		}
		ac.logger.WithError(err).Error("failed to create user")
		utils.SendError(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	if user.Email != "" {
		go func(email, firstName string) {
			if err := ac.emailService.SendWelcomeEmail(email, firstName); err != nil {
				ac.logger.WithError(err).Warn("welcome email not sent")
			}
		}(user.Email, user.FirstName)
	}

	// Registration does not log the user in; they authenticate next.
	utils.SendCreated(c, "User successfully created", user)
}

// Logout clears the session cookie.
func (ac *AuthController) Logout(c *gin.Context) {
	ac.sessions.Clear(c)
	utils.SendSuccess(c, "You have been logged out", nil)
}
