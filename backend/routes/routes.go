package routes

import (
	"codeclub/backend/config"
	"codeclub/backend/controllers"
	"codeclub/backend/middleware"
	"codeclub/backend/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	authService := services.NewAuthService(db, cfg)
	courseService := services.NewCourseService(db)
	quizService := services.NewQuizService(db)
	badgeService := services.NewBadgeService(db)
	portfolioService := services.NewPortfolioService(db)
	progressService := services.NewProgressService(db)
	userService := services.NewUserService(db)

	protected := middleware.Protected(cfg)
	adminOnly := middleware.RequireRole("Admin")

	// Auth routes
	authController := controllers.NewAuthController(authService)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)
	app.Post("/api/auth/refresh-token", authController.RefreshToken)
	app.Get("/api/auth/username/:username", authController.CheckUsername)
	app.Get("/api/auth/email/:email", authController.CheckEmail)

	// User routes
	usersController := controllers.NewUsersController(userService)
	app.Get("/api/user/profile", protected, usersController.GetProfile)
	adminUsers := app.Group("/api/admin/users", protected, adminOnly)
	adminUsers.Get("/", usersController.ListUsers)
	adminUsers.Put("/:id/locked", usersController.SetLocked)
	adminUsers.Put("/:id/roles", usersController.AssignRole)
	adminUsers.Delete("/:id", usersController.DeleteUser)

	// Course routes
	coursesController := controllers.NewCoursesController(courseService)
	courses := app.Group("/api/courses", protected)
	courses.Get("/", coursesController.ListCourses)
	courses.Get("/:id", coursesController.GetCourse)
	courses.Post("/", adminOnly, coursesController.CreateCourse)
	courses.Put("/:id", adminOnly, coursesController.UpdateCourse)
	courses.Delete("/:id", adminOnly, coursesController.DeleteCourse)
	courses.Post("/:id/lessons", adminOnly, coursesController.AddLesson)
	courses.Put("/:id/lessons/reorder", adminOnly, coursesController.ReorderLessons)

	lessons := app.Group("/api/lessons", protected, adminOnly)
	lessons.Delete("/:id", coursesController.DeleteLesson)
	lessons.Post("/:id/chapters", coursesController.AddChapter)
	lessons.Put("/:id/chapters/reorder", coursesController.ReorderChapters)

	chapters := app.Group("/api/chapters", protected, adminOnly)
	chapters.Delete("/:id", coursesController.DeleteChapter)
	chapters.Post("/:id/elements", coursesController.AddElement)
	chapters.Put("/:id/elements/reorder", coursesController.ReorderElements)

	elements := app.Group("/api/elements", protected, adminOnly)
	elements.Delete("/:id", coursesController.DeleteElement)

	// Quiz routes
	quizzesController := controllers.NewQuizzesController(quizService)
	quizzes := app.Group("/api/quizzes", protected)
	quizzes.Get("/:id", quizzesController.GetQuiz)
	quizzes.Post("/:id/submit", quizzesController.Submit)
	quizzes.Get("/:id/submissions", quizzesController.ListSubmissions)
	quizzes.Post("/", adminOnly, quizzesController.CreateQuiz)
	quizzes.Delete("/:id", adminOnly, quizzesController.DeleteQuiz)

	// Badge routes
	badgesController := controllers.NewBadgesController(badgeService)
	badges := app.Group("/api/badges", protected)
	badges.Get("/", badgesController.ListBadges)
	badges.Get("/mine", badgesController.MyBadges)
	badges.Post("/", adminOnly, badgesController.CreateBadge)
	badges.Delete("/:id", adminOnly, badgesController.DeleteBadge)
	external := app.Group("/api/external-badges", protected)
	external.Get("/", badgesController.ListExternalBadges)
	external.Post("/", adminOnly, badgesController.CreateExternalBadge)

	// Portfolio routes
	portfoliosController := controllers.NewPortfoliosController(portfolioService)
	portfolios := app.Group("/api/portfolios", protected)
	portfolios.Post("/", portfoliosController.Submit)
	portfolios.Get("/", portfoliosController.ListMine)
	adminPortfolios := app.Group("/api/admin/portfolios", protected, adminOnly)
	adminPortfolios.Get("/", portfoliosController.ListPending)
	adminPortfolios.Put("/:id/review", portfoliosController.Review)

	// Progress routes
	progressController := controllers.NewProgressController(progressService)
	progress := app.Group("/api/progress", protected)
	progress.Post("/courses/:id/start", progressController.StartCourse)
	progress.Get("/courses/:id", progressController.GetCourseProgress)
	progress.Post("/lessons/:id/complete", progressController.CompleteLesson)
	progress.Post("/chapters/:id/complete", progressController.CompleteChapter)
}
