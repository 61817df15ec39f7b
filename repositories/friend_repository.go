package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Tinnitussen/DAT250/models"
)

type FriendRepository struct {
	db *gorm.DB
}

func NewFriendRepository(db *gorm.DB) *FriendRepository {
	return &FriendRepository{db: db}
}

// Add creates the friendship between two users. The pair is stored
// once (normalized ordering in the model hook); a concurrent duplicate
// add loses on the unique index and reports ErrAlreadyFriends.
func (r *FriendRepository) Add(userID, friendID string) error {
	if userID == friendID {
		return models.ErrSelfFriendship
	}

	friendship := models.Friendship{
		User1ID: userID,
		User2ID: friendID,
	}
	if err := r.db.Create(&friendship).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.ErrAlreadyFriends
		}
		return err
	}
	return nil
}

// AreFriends reports whether the pair has a stored friendship.
func (r *FriendRepository) AreFriends(user1ID, user2ID string) (bool, error) {
	if user1ID > user2ID {
		user1ID, user2ID = user2ID, user1ID
	}

	var count int64
	err := r.db.Model(&models.Friendship{}).
		Where("user1_id = ? AND user2_id = ?", user1ID, user2ID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// FriendIDs returns the ids of everyone the user is friends with,
// resolving the stored pair in both directions.
func (r *FriendRepository) FriendIDs(userID string) ([]string, error) {
	var friendships []models.Friendship
	err := r.db.Where("user1_id = ? OR user2_id = ?", userID, userID).Find(&friendships).Error
	if err != nil {
		return nil, err
	}

	friendIDs := make([]string, 0, len(friendships))
	for _, friendship := range friendships {
		if friendship.User1ID == userID {
			friendIDs = append(friendIDs, friendship.User2ID)
		} else {
			friendIDs = append(friendIDs, friendship.User1ID)
		}
	}
	return friendIDs, nil
}

// FriendsOf returns the full user rows for a user's friends.
func (r *FriendRepository) FriendsOf(userID string) ([]models.User, error) {
	friendIDs, err := r.FriendIDs(userID)
	if err != nil {
		return nil, err
	}
	if len(friendIDs) == 0 {
		return []models.User{}, nil
	}

	var friends []models.User
	if err := r.db.Where("id IN ?", friendIDs).Find(&friends).Error; err != nil {
		return nil, err
	}
	return friends, nil
}
