package services

import (
	"strings"
	"testing"
	"time"

	"codeclub/backend/config"
	"codeclub/backend/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	err = db.AutoMigrate(
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
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:       "testsecret",
		JWTIssuer:       "codeclub",
		JWTAudience:     "codeclub-web",
		AccessTokenTTL:  5 * time.Minute,
		RefreshTokenTTL: time.Hour,
		BcryptCost:      13,
	}
}

func registerInput(username, email string) RegisterInput {
	return RegisterInput{
		Username:  username,
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Password:  "password123",
	}
}
