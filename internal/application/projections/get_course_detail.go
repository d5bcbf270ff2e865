package projections

import (
	"context"

	domainCourse "campus/internal/domain/course"
	domainEnrollment "campus/internal/domain/enrollment"
	domainLesson "campus/internal/domain/lesson"
	domainQuiz "campus/internal/domain/quiz"
)

// GetCourseDetailQuery carries query parameters. StudentID is empty for
// anonymous or non-student viewers.
type GetCourseDetailQuery struct {
	CourseID  string
	StudentID string
}

// CourseQuizEntry pairs a quiz with the viewing student's latest attempt.
type CourseQuizEntry struct {
	Quiz      domainQuiz.Quiz
	Attempted bool
	Score     float64
	Passed    bool
}

// GetCourseDetailResult carries the query result.
type GetCourseDetailResult struct {
	Course           domainCourse.Course
	CategoryName     string
	InstructorName   string
	Lessons          []domainLesson.Lesson
	Quizzes          []CourseQuizEntry
	Enrolled         bool
	Enrollment       domainEnrollment.Enrollment
	CompletedLessons map[string]bool // lesson ID -> done
}

// GetCourseDetailDeps holds dependencies for GetCourseDetail.
type GetCourseDetailDeps struct {
	CourseStore     CourseStore
	CategoryStore   CategoryStore
	AccountStore    AccountStore // optional: nil skips instructor name
	LessonStore     LessonStore
	QuizStore       QuizStore
	QuizResultStore QuizResultStore
	EnrollmentStore EnrollmentStore
	CompletionStore CompletionStore
}

// QueryGetCourseDetail retrieves one course with its lessons and quizzes,
// plus the viewing student's enrollment state when StudentID is set.
// PRE: Valid course ID
// POST: Lessons keep store order; CompletedLessons is populated only when enrolled
func QueryGetCourseDetail(ctx context.Context, query GetCourseDetailQuery, deps GetCourseDetailDeps) (GetCourseDetailResult, error) {
	c, err := deps.CourseStore.GetByID(ctx, query.CourseID)
	if err != nil {
		return GetCourseDetailResult{}, err
	}

	result := GetCourseDetailResult{Course: c, CompletedLessons: make(map[string]bool)}

	if cat, err := deps.CategoryStore.GetByID(ctx, c.CategoryID); err == nil {
		result.CategoryName = cat.Name
	}
	if deps.AccountStore != nil && c.InstructorID != "" {
		if a, err := deps.AccountStore.GetByID(ctx, c.InstructorID); err == nil {
			result.InstructorName = a.FullName
		}
	}

	lessons, err := deps.LessonStore.ListByCourse(ctx, query.CourseID)
	if err != nil {
		return GetCourseDetailResult{}, err
	}
	result.Lessons = lessons

	quizzes, err := deps.QuizStore.ListByCourse(ctx, query.CourseID)
	if err != nil {
		return GetCourseDetailResult{}, err
	}

	for _, q := range quizzes {
		entry := CourseQuizEntry{Quiz: q}
		if query.StudentID != "" {
			if r, err := deps.QuizResultStore.GetByStudentAndQuiz(ctx, query.StudentID, q.ID); err == nil {
				entry.Attempted = true
				entry.Score = r.Score
				entry.Passed = r.Passed
			}
		}
		result.Quizzes = append(result.Quizzes, entry)
	}

	if query.StudentID != "" {
		if e, err := deps.EnrollmentStore.GetByStudentAndCourse(ctx, query.StudentID, query.CourseID); err == nil {
			result.Enrolled = true
			result.Enrollment = e
			if completions, err := deps.CompletionStore.ListByStudentAndCourse(ctx, query.StudentID, query.CourseID); err == nil {
				for _, done := range completions {
					result.CompletedLessons[done.LessonID] = true
				}
			}
		}
	}

	return result, nil
}
