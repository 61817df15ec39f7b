package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Tinnitussen/DAT250/middleware"
	"github.com/Tinnitussen/DAT250/models"
	"github.com/Tinnitussen/DAT250/repositories"
	"github.com/Tinnitussen/DAT250/utils"
)

type ProfileController struct {
	users  *repositories.UserRepository
	logger *logrus.Logger
}

func NewProfileController(users *repositories.UserRepository, logger *logrus.Logger) *ProfileController {
	return &ProfileController{users: users, logger: logger}
}

// GetProfile shows any user's profile to any authenticated user.
func (pc *ProfileController) GetProfile(c *gin.Context) {
	username := c.Param("username")

	user, err := pc.users.Profile(username)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			utils.SendError(c, http.StatusNotFound, "User does not exist")
			return
		}
		pc.logger.WithError(err).Error("profile lookup failed")
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch profile")
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateProfile lets a user change their own profile and nobody
// else's.
func (pc *ProfileController) UpdateProfile(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)
	username := c.Param("username")

	target, err := pc.users.Profile(username)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			utils.SendError(c, http.StatusNotFound, "User does not exist")
			return
		}
		pc.logger.WithError(err).Error("profile lookup failed")
		utils.SendError(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	if principal.ID != target.ID {
		utils.SendError(c, http.StatusForbidden, "You cannot update another user's profile")
		return
	}

	var fields models.ProfileFields
	if err := c.ShouldBind(&fields); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	if err := pc.users.UpdateProfile(target.ID, fields); err != nil {
		pc.logger.WithError(err).Error("failed to update profile")
		utils.SendError(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	utils.SendSuccess(c, "Profile updated", nil)
}
