package utils

import (
	"fmt"

	"codeclub/backend/config"
	"codeclub/backend/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates the schema and seeds the built-in roles.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Course{},
		&models.CourseTag{},
		&models.Lesson{},
		&models.Chapter{},
		&models.ChapterElement{},
		&models.QuizForm{},
		&models.QuizQuestion{},
		&models.QuizSubmission{},
		&models.Badge{},
		&models.ExternalBadge{},
		&models.UserBadge{},
		&models.UserExternalBadge{},
		&models.Portfolio{},
		&models.UserLearningCourse{},
		&models.UserLesson{},
		&models.UserChapter{},
	)
	if err != nil {
		return err
	}

	for _, name := range []string{"Admin", "User"} {
		role := models.Role{Name: name}
		if err := db.Where(models.Role{Name: name}).FirstOrCreate(&role).Error; err != nil {
			return err
		}
	}
	return nil
}
