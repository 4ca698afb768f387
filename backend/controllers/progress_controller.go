package controllers

import (
	"codeclub/backend/middleware"
	"codeclub/backend/services"
	"codeclub/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type ProgressController struct {
	Progress *services.ProgressService
}

func NewProgressController(progress *services.ProgressService) *ProgressController {
	return &ProgressController{Progress: progress}
}

func (pc *ProgressController) StartCourse(c *fiber.Ctx) error {
	courseID, err := paramUint(c, "id")
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}
	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		return utils.Unauthorized(c, "no identity on request")
	}
	progress, err := pc.Progress.StartCourse(identity.UserID, courseID)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, fiber.StatusOK, progress)
}

func (pc *ProgressController) CompleteLesson(c *fiber.Ctx) error {
	lessonID, err := paramUint(c, "id")
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}
	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		return utils.Unauthorized(c, "no identity on request")
	}
	if err := pc.Progress.CompleteLesson(identity.UserID, lessonID); err != nil {
		return utils.Fail(c, err)
	}
	return utils.NoContent(c)
}

func (pc *ProgressController) CompleteChapter(c *fiber.Ctx) error {
	chapterID, err := paramUint(c, "id")
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}
	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		return utils.Unauthorized(c, "no identity on request")
	}
	if err := pc.Progress.CompleteChapter(identity.UserID, chapterID); err != nil {
		return utils.Fail(c, err)
	}
	return utils.NoContent(c)
}

func (pc *ProgressController) GetCourseProgress(c *fiber.Ctx) error {
	courseID, err := paramUint(c, "id")
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}
	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		return utils.Unauthorized(c, "no identity on request")
	}
	progress, err := pc.Progress.GetCourseProgress(identity.UserID, courseID)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, fiber.StatusOK, progress)
}
