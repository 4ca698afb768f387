package services

import (
	"testing"

	"codeclub/backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fourOptions() []string {
	return []string{"a", "b", "c", "d"}
}

func createQuiz(t *testing.T, svc *QuizService, correct ...int) *models.QuizForm {
	t.Helper()
	input := QuizInput{Title: "Quiz"}
	for _, c := range correct {
		input.Questions = append(input.Questions, QuizQuestionInput{
			Question:      "?",
			Options:       fourOptions(),
			CorrectAnswer: c,
		})
	}
	form, err := svc.CreateQuiz(input)
	require.NoError(t, err)
	return form
}

func TestCreateQuizValidation(t *testing.T) {
	svc := NewQuizService(newTestDB(t))
	var verr *ValidationError

	_, err := svc.CreateQuiz(QuizInput{Title: "Q", Questions: []QuizQuestionInput{
		{Question: "?", Options: []string{"a", "b", "c"}, CorrectAnswer: 0},
	}})
	assert.ErrorAs(t, err, &verr)

	_, err = svc.CreateQuiz(QuizInput{Title: "Q", Questions: []QuizQuestionInput{
		{Question: "?", Options: fourOptions(), CorrectAnswer: 4},
	}})
	assert.ErrorAs(t, err, &verr)

	_, err = svc.CreateQuiz(QuizInput{Title: "Q", Questions: []QuizQuestionInput{
		{Question: "?", Options: fourOptions(), CorrectAnswer: -1},
	}})
	assert.ErrorAs(t, err, &verr)
}

func TestScore(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuizService(db)
	form := createQuiz(t, svc, 0, 2, 1)

	submission, err := svc.Score(1, form.ID, []int{0, 2, 1})
	require.NoError(t, err)
	assert.Equal(t, 3, submission.Score)
	assert.Equal(t, 3, submission.Total)
	assert.False(t, submission.SubmittedAt.IsZero())

	submission, err = svc.Score(1, form.ID, []int{1, 2, 1})
	require.NoError(t, err)
	assert.Equal(t, 2, submission.Score)
}

func TestScoreOutOfRangeAnswersAreWrong(t *testing.T) {
	svc := NewQuizService(newTestDB(t))
	form := createQuiz(t, svc, 0, 2, 1)

	submission, err := svc.Score(1, form.ID, []int{9, 2, -3})
	require.NoError(t, err)
	assert.Equal(t, 1, submission.Score)
}

func TestScoreShortSubmission(t *testing.T) {
	svc := NewQuizService(newTestDB(t))
	form := createQuiz(t, svc, 0, 2, 1)

	// unanswered questions score as wrong
	submission, err := svc.Score(1, form.ID, []int{0})
	require.NoError(t, err)
	assert.Equal(t, 1, submission.Score)
	assert.Equal(t, 3, submission.Total)
}

func TestEveryAttemptIsRecorded(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuizService(db)
	form := createQuiz(t, svc, 0, 2, 1)

	_, err := svc.Score(7, form.ID, []int{0, 2, 1})
	require.NoError(t, err)
	_, err = svc.Score(7, form.ID, []int{3, 3, 3})
	require.NoError(t, err)

	submissions, err := svc.ListSubmissions(7, form.ID)
	require.NoError(t, err)
	assert.Len(t, submissions, 2)
}

func TestScoreMissingQuiz(t *testing.T) {
	svc := NewQuizService(newTestDB(t))
	var nferr *NotFoundError
	_, err := svc.Score(1, 999, []int{0})
	assert.ErrorAs(t, err, &nferr)
}

func TestDeleteQuizReferencedByElement(t *testing.T) {
	db := newTestDB(t)
	quizzes := NewQuizService(db)
	courses := NewCourseService(db)

	form := createQuiz(t, quizzes, 0)
	course := createCourse(t, courses, "A")
	lesson, err := courses.CreateLesson(course.ID, LessonInput{Title: "L"})
	require.NoError(t, err)
	chapter, err := courses.CreateChapter(lesson.ID, LessonInput{Title: "C"})
	require.NoError(t, err)
	_, err = courses.CreateElement(chapter.ID, ElementInput{Type: models.ElementForm, QuizFormID: &form.ID})
	require.NoError(t, err)

	var cerr *ConflictError
	err = quizzes.DeleteQuiz(form.ID)
	assert.ErrorAs(t, err, &cerr)
}
