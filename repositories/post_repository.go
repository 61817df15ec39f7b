package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Tinnitussen/DAT250/models"
)

type PostRepository struct {
	db      *gorm.DB
	friends *FriendRepository
}

func NewPostRepository(db *gorm.DB, friends *FriendRepository) *PostRepository {
	return &PostRepository{db: db, friends: friends}
}

func (r *PostRepository) Create(post *models.Post) error {
	return r.db.Create(post).Error
}

func (r *PostRepository) ByID(id string) (*models.Post, error) {
	var post models.Post
	if err := r.db.Preload("User").First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// VisibleTo returns the posts a user can see: their own and their
// friends', newest first.
func (r *PostRepository) VisibleTo(userID string) ([]models.Post, error) {
	friendIDs, err := r.friends.FriendIDs(userID)
	if err != nil {
		return nil, err
	}
	visibleIDs := append(friendIDs, userID)

	var posts []models.Post
	err = r.db.Preload("User").
		Where("user_id IN ?", visibleIDs).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}
