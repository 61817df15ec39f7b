package repositories

import (
	"gorm.io/gorm"

	"github.com/Tinnitussen/DAT250/models"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// ForPost returns a post's comments, newest first.
func (r *CommentRepository) ForPost(postID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Preload("User").
		Where("post_id = ?", postID).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}
