package controllers

import (
	"encoding/json"

	"codeclub/backend/middleware"
	"codeclub/backend/services"
	"codeclub/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type QuizzesController struct {
	Quizzes *services.QuizService
}

func NewQuizzesController(quizzes *services.QuizService) *QuizzesController {
	return &QuizzesController{Quizzes: quizzes}
}

func (qc *QuizzesController) CreateQuiz(c *fiber.Ctx) error {
	var input services.QuizInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "cannot parse JSON")
	}
	form, err := qc.Quizzes.CreateQuiz(input)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Created(c, form)
}

// GetQuiz returns the quiz with its options unpacked. The answer key is only
// included for admins.
func (qc *QuizzesController) GetQuiz(c *fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}
	form, err := qc.Quizzes.GetQuiz(id)
	if err != nil {
		return utils.Fail(c, err)
	}

	identity := middleware.CurrentIdentity(c)
	isAdmin := identity != nil && identity.HasRole("Admin")

	questions := make([]fiber.Map, 0, len(form.Questions))
	for _, q := range form.Questions {
		var options []string
		json.Unmarshal([]byte(q.Options), &options)

		entry := fiber.Map{
			"id":       q.ID,
			"question": q.Question,
			"options":  options,
			"index":    q.Index,
		}
		if isAdmin {
			entry["correctAnswer"] = q.CorrectAnswer
		}
		questions = append(questions, entry)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"id":        form.ID,
		"title":     form.Title,
		"questions": questions,
	})
}

func (qc *QuizzesController) DeleteQuiz(c *fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}
	if err := qc.Quizzes.DeleteQuiz(id); err != nil {
		return utils.Fail(c, err)
	}
	return utils.NoContent(c)
}

func (qc *QuizzesController) Submit(c *fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}
	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		return utils.Unauthorized(c, "no identity on request")
	}

	var input struct {
		Answers []int `json:"answers"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "cannot parse JSON")
	}

	submission, err := qc.Quizzes.Score(identity.UserID, id, input.Answers)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"score":       submission.Score,
		"total":       submission.Total,
		"submittedAt": submission.SubmittedAt,
	})
}

func (qc *QuizzesController) ListSubmissions(c *fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}
	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		return utils.Unauthorized(c, "no identity on request")
	}
	submissions, err := qc.Quizzes.ListSubmissions(identity.UserID, id)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, fiber.StatusOK, submissions)
}
