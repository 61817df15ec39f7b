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

type FriendController struct {
	users   *repositories.UserRepository
	friends *repositories.FriendRepository
	logger  *logrus.Logger
}

func NewFriendController(users *repositories.UserRepository, friends *repositories.FriendRepository, logger *logrus.Logger) *FriendController {
	return &FriendController{
		users:   users,
		friends: friends,
		logger:  logger,
	}
}

type FriendForm struct {
	Username string `json:"username" form:"username" binding:"required,max=50"`
}

// GetFriends lists a user's current friends.
func (fc *FriendController) GetFriends(c *gin.Context) {
	username := c.Param("username")

	user, err := fc.users.Profile(username)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			utils.SendError(c, http.StatusNotFound, "User does not exist")
			return
		}
		fc.logger.WithError(err).Error("friend list user lookup failed")
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch friends")
		return
	}

	friends, err := fc.friends.FriendsOf(user.ID)
	if err != nil {
		fc.logger.WithError(err).Error("failed to fetch friends")
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch friends")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"username": user.Username,
		"friends":  friends,
	})
}

// AddFriend befriends the submitted username on behalf of the
// authenticated user. The relation is mutual.
func (fc *FriendController) AddFriend(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)

	var form FriendForm
	if err := c.ShouldBind(&form); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	friend, err := fc.users.ByUsername(form.Username)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			utils.SendError(c, http.StatusNotFound, "User does not exist")
			return
		}
		fc.logger.WithError(err).Error("friend lookup failed")
		utils.SendError(c, http.StatusInternalServerError, "Failed to add friend")
		return
	}

	if err := fc.friends.Add(principal.ID, friend.ID); err != nil {
		switch {
		case errors.Is(err, models.ErrSelfFriendship):
			utils.SendError(c, http.StatusConflict, "You cannot be friends with yourself")
		case errors.Is(err, models.ErrAlreadyFriends):
			utils.SendError(c, http.StatusConflict, "You are already friends with this user")
		default:
			fc.logger.WithError(err).Error("failed to add friend")
			utils.SendError(c, http.StatusInternalServerError, "Failed to add friend")
		}
		return
	}

	utils.SendCreated(c, "Friend successfully added", nil)
}
