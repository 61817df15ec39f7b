package database

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Tinnitussen/DAT250/models"
)

// Initialize opens the configured database. The default driver is
// sqlite with a file next to the binary; mysql is available for
// deployments that outgrow it.
func Initialize(driver, dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		// Unique-index violations must surface as gorm.ErrDuplicatedKey
		// so the repositories can map them to domain errors.
		TranslateError: true,
	}

	var (
		db  *gorm.DB
		err error
	)
	switch driver {
	case "mysql":
		db, err = gorm.Open(mysql.Open(dsn), cfg)
	case "sqlite":
		db, err = gorm.Open(sqlite.Open(dsn), cfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Friendship{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := addDatabaseConstraints(db); err != nil {
		return fmt.Errorf("failed to add database constraints: %w", err)
	}

	return nil
}

func addDatabaseConstraints(db *gorm.DB) error {
	// Self-friendship is rejected in the repository as well; the CHECK
	// keeps hand-written rows honest. Not every driver supports adding
	// it after the fact, so a failure here is non-fatal.
	if err := db.Exec("ALTER TABLE friendships ADD CONSTRAINT ck_friendships_no_self CHECK (user1_id != user2_id)").Error; err != nil {
		fmt.Printf("Warning: Could not add check constraint for friendships: %v\n", err)
	}

	return nil
}

// SeedData populates the database with a pair of users for development.
func SeedData(db *gorm.DB, hash func(string) (string, error)) error {
	var userCount int64
	db.Model(&models.User{}).Count(&userCount)

	if userCount > 0 {
		return nil
	}

	seedUsers := []struct {
		username, password, first, last string
	}{
		{"alice", "correcthorse", "Alice", "Anderson"},
		{"bob", "batterystaple", "Bob", "Berntsen"},
	}

	for _, su := range seedUsers {
		hashed, err := hash(su.password)
		if err != nil {
			return err
		}
		user := models.User{
			ID:        newID(),
			Username:  su.username,
			Password:  hashed,
			FirstName: su.first,
			LastName:  su.last,
		}
		if err := db.Create(&user).Error; err != nil {
			fmt.Printf("Warning: Could not create seed user %s: %v\n", su.username, err)
		}
	}

	return nil
}

func newID() string {
	return uuid.New().String()
}
