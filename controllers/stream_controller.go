package controllers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Tinnitussen/DAT250/middleware"
	"github.com/Tinnitussen/DAT250/models"
	"github.com/Tinnitussen/DAT250/repositories"
	"github.com/Tinnitussen/DAT250/utils"
)

type StreamController struct {
	users      *repositories.UserRepository
	posts      *repositories.PostRepository
	uploadsDir string
	logger     *logrus.Logger
}

func NewStreamController(users *repositories.UserRepository, posts *repositories.PostRepository, uploadsDir string, logger *logrus.Logger) *StreamController {
	return &StreamController{
		users:      users,
		posts:      posts,
		uploadsDir: uploadsDir,
		logger:     logger,
	}
}

type PostForm struct {
	Content string                `form:"content" binding:"required,max=500"`
	Image   *multipart.FileHeader `form:"image" json:"-"`
}

// GetStream lists the posts visible on a user's stream: their own and
// their friends', newest first.
func (sc *StreamController) GetStream(c *gin.Context) {
	username := c.Param("username")

	streamUser, err := sc.users.Profile(username)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			utils.SendError(c, http.StatusNotFound, "User does not exist")
			return
		}
		sc.logger.WithError(err).Error("stream user lookup failed")
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch stream")
		return
	}

	posts, err := sc.posts.VisibleTo(streamUser.ID)
	if err != nil {
		sc.logger.WithError(err).Error("failed to fetch posts")
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch stream")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"username": streamUser.Username,
		"posts":    posts,
	})
}

// CreatePost inserts a post for the authenticated user, storing an
// uploaded image when one is attached. Nothing is persisted when the
// image is rejected.
func (sc *StreamController) CreatePost(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)

	var form PostForm
	if err := c.ShouldBind(&form); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	filename := ""
	if form.Image != nil {
		if !utils.IsAllowedImageFile(form.Image.Filename) {
			utils.SendValidationError(c, "Invalid file type")
			return
		}
		filename = utils.SanitizeFilename(form.Image.Filename)
		if filename == "" {
			utils.SendValidationError(c, "Invalid file name")
			return
		}
		if err := c.SaveUploadedFile(form.Image, filepath.Join(sc.uploadsDir, filename)); err != nil {
			sc.logger.WithError(err).Error("failed to store uploaded image")
			utils.SendError(c, http.StatusInternalServerError, "Failed to store image")
			return
		}
	}

	post := models.Post{
		ID:        uuid.New().String(),
		UserID:    principal.ID,
		Content:   form.Content,
		ImageFile: filename,
	}
	if err := sc.posts.Create(&post); err != nil {
		sc.logger.WithError(err).Error("failed to create post")
		utils.SendError(c, http.StatusInternalServerError, "Failed to create post")
		return
	}

	utils.SendCreated(c, "Post created", post)
}
