package controllers

import (
	"codeclub/backend/services"
	"codeclub/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type CoursesController struct {
	Courses *services.CourseService
}

func NewCoursesController(courses *services.CourseService) *CoursesController {
	return &CoursesController{Courses: courses}
}

func (cc *CoursesController) ListCourses(c *fiber.Ctx) error {
	publishedOnly := c.Query("published") == "true"
	courses, err := cc.Courses.ListCourses(publishedOnly)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, fiber.StatusOK, courses)
}

func (cc *CoursesController) GetCourse(c *fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}
	course, err := cc.Courses.GetCourse(id)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, fiber.StatusOK, course)
}

func (cc *CoursesController) CreateCourse(c *fiber.Ctx) error {
	var input services.CourseInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "cannot parse JSON")
	}
	course, err := cc.Courses.CreateCourse(input)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Created(c, course)
}

func (cc *CoursesController) UpdateCourse(c *fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}
	var input services.CourseInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "cannot parse JSON")
	}
	course, err := cc.Courses.UpdateCourse(id, input)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, fiber.StatusOK, course)
}

func (cc *CoursesController) DeleteCourse(c *fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}
	if err := cc.Courses.DeleteCourse(id); err != nil {
		return utils.Fail(c, err)
	}
	return utils.NoContent(c)
}

func (cc *CoursesController) AddLesson(c *fiber.Ctx) error {
	courseID, err := paramUint(c, "id")
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}
	var input services.LessonInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "cannot parse JSON")
	}
	lesson, err := cc.Courses.CreateLesson(courseID, input)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Created(c, lesson)
}

func (cc *CoursesController) ReorderLessons(c *fiber.Ctx) error {
	courseID, err := paramUint(c, "id")
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}
	var pairs []services.ReorderPair
	if err := c.BodyParser(&pairs); err != nil {
		return utils.BadRequest(c, "cannot parse JSON")
	}
	if err := cc.Courses.ReorderLessons(courseID, pairs); err != nil {
		return utils.Fail(c, err)
	}
	return utils.NoContent(c)
}

func (cc *CoursesController) DeleteLesson(c *fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}
	if err := cc.Courses.DeleteLesson(id); err != nil {
		return utils.Fail(c, err)
	}
	return utils.NoContent(c)
}

func (cc *CoursesController) AddChapter(c *fiber.Ctx) error {
	lessonID, err := paramUint(c, "id")
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}
	var input services.LessonInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "cannot parse JSON")
	}
	chapter, err := cc.Courses.CreateChapter(lessonID, input)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Created(c, chapter)
}

func (cc *CoursesController) ReorderChapters(c *fiber.Ctx) error {
	lessonID, err := paramUint(c, "id")
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}
	var pairs []services.ReorderPair
	if err := c.BodyParser(&pairs); err != nil {
		return utils.BadRequest(c, "cannot parse JSON")
	}
	if err := cc.Courses.ReorderChapters(lessonID, pairs); err != nil {
		return utils.Fail(c, err)
	}
	return utils.NoContent(c)
}

func (cc *CoursesController) DeleteChapter(c *fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}
	if err := cc.Courses.DeleteChapter(id); err != nil {
		return utils.Fail(c, err)
	}
	return utils.NoContent(c)
}

func (cc *CoursesController) AddElement(c *fiber.Ctx) error {
	chapterID, err := paramUint(c, "id")
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}
	var input services.ElementInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "cannot parse JSON")
	}
	element, err := cc.Courses.CreateElement(chapterID, input)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Created(c, element)
}

func (cc *CoursesController) ReorderElements(c *fiber.Ctx) error {
	chapterID, err := paramUint(c, "id")
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}
	var pairs []services.ReorderPair
	if err := c.BodyParser(&pairs); err != nil {
		return utils.BadRequest(c, "cannot parse JSON")
	}
	if err := cc.Courses.ReorderElements(chapterID, pairs); err != nil {
		return utils.Fail(c, err)
	}
	return utils.NoContent(c)
}

func (cc *CoursesController) DeleteElement(c *fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}
	if err := cc.Courses.DeleteElement(id); err != nil {
		return utils.Fail(c, err)
	}
	return utils.NoContent(c)
}
