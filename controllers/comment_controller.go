package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Tinnitussen/DAT250/middleware"
	"github.com/Tinnitussen/DAT250/models"
	"github.com/Tinnitussen/DAT250/repositories"
	"github.com/Tinnitussen/DAT250/utils"
)

type CommentController struct {
	posts    *repositories.PostRepository
	comments *repositories.CommentRepository
	logger   *logrus.Logger
}

func NewCommentController(posts *repositories.PostRepository, comments *repositories.CommentRepository, logger *logrus.Logger) *CommentController {
	return &CommentController{
		posts:    posts,
		comments: comments,
		logger:   logger,
	}
}

type CommentForm struct {
	Comment string `json:"comment" form:"comment" binding:"required,max=500"`
}

// GetComments returns a post together with its comments, newest first.
func (cc *CommentController) GetComments(c *gin.Context) {
	postID := c.Param("post_id")

	post, err := cc.posts.ByID(postID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			utils.SendError(c, http.StatusNotFound, "Post does not exist")
			return
		}
		cc.logger.WithError(err).Error("post lookup failed")
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch comments")
		return
	}

	comments, err := cc.comments.ForPost(postID)
	if err != nil {
		cc.logger.WithError(err).Error("failed to fetch comments")
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch comments")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"post":     post,
		"comments": comments,
	})
}

// CreateComment inserts a comment by the authenticated user on an
// existing post.
func (cc *CommentController) CreateComment(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)
	postID := c.Param("post_id")

	var form CommentForm
	if err := c.ShouldBind(&form); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	if _, err := cc.posts.ByID(postID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			utils.SendError(c, http.StatusNotFound, "Post does not exist")
			return
		}
		cc.logger.WithError(err).Error("post lookup failed")
		utils.SendError(c, http.StatusInternalServerError, "Failed to create comment")
		return
	}

	comment := models.Comment{
		ID:     uuid.New().String(),
		PostID: postID,
		UserID: principal.ID,
		Body:   form.Comment,
	}
	if err := cc.comments.Create(&comment); err != nil {
		cc.logger.WithError(err).Error("failed to create comment")
		utils.SendError(c, http.StatusInternalServerError, "Failed to create comment")
		return
	}

	utils.SendCreated(c, "Comment created", comment)
}
