package projections

import (
	"context"

	"campus/internal/adapters/storage/account"
	"campus/internal/adapters/storage/course"
	"campus/internal/adapters/storage/internship"
	domainAccount "campus/internal/domain/account"
	domainCategory "campus/internal/domain/category"
	domainCourse "campus/internal/domain/course"
	domainEnrollment "campus/internal/domain/enrollment"
	domainInternship "campus/internal/domain/internship"
	domainLesson "campus/internal/domain/lesson"
	domainNotification "campus/internal/domain/notification"
	domainQuiz "campus/internal/domain/quiz"
)

// AccountStore interface for account queries.
type AccountStore interface {
	GetByID(ctx context.Context, id string) (domainAccount.Account, error)
	List(ctx context.Context, filter account.ListFilter) ([]domainAccount.Account, error)
	Count(ctx context.Context, filter account.ListFilter) (int, error)
}

// CategoryStore interface for category queries.
type CategoryStore interface {
	GetByID(ctx context.Context, id string) (domainCategory.Category, error)
	List(ctx context.Context) ([]domainCategory.Category, error)
}

// CourseStore interface for course queries.
type CourseStore interface {
	GetByID(ctx context.Context, id string) (domainCourse.Course, error)
	List(ctx context.Context, filter course.ListFilter) ([]domainCourse.Course, error)
	Count(ctx context.Context, filter course.ListFilter) (int, error)
}

// LessonStore interface for lesson queries.
type LessonStore interface {
	ListByCourse(ctx context.Context, courseID string) ([]domainLesson.Lesson, error)
	CountByCourse(ctx context.Context, courseID string) (int, error)
}

// QuizStore interface for course quiz queries.
type QuizStore interface {
	ListByCourse(ctx context.Context, courseID string) ([]domainQuiz.Quiz, error)
}

// QuizResultStore interface for quiz attempt queries.
type QuizResultStore interface {
	GetByStudentAndQuiz(ctx context.Context, studentID, quizID string) (domainQuiz.Result, error)
	ListByStudent(ctx context.Context, studentID string) ([]domainQuiz.Result, error)
}

// EnrollmentStore interface for course enrollment queries.
type EnrollmentStore interface {
	GetByStudentAndCourse(ctx context.Context, studentID, courseID string) (domainEnrollment.Enrollment, error)
	ListByStudent(ctx context.Context, studentID string) ([]domainEnrollment.Enrollment, error)
	ListByCourse(ctx context.Context, courseID string) ([]domainEnrollment.Enrollment, error)
	ListAll(ctx context.Context, limit int) ([]domainEnrollment.Enrollment, error)
	Count(ctx context.Context) (int, error)
}

// CompletionStore interface for lesson completion queries.
type CompletionStore interface {
	ListByStudentAndCourse(ctx context.Context, studentID, courseID string) ([]domainEnrollment.LessonCompletion, error)
}

// NotificationStore interface for notification queries.
type NotificationStore interface {
	ListByStudent(ctx context.Context, studentID string, unreadOnly bool) ([]domainNotification.Notification, error)
	CountUnread(ctx context.Context, studentID string) (int, error)
}

// InternshipStore interface for internship queries.
type InternshipStore interface {
	GetByID(ctx context.Context, id string) (domainInternship.Internship, error)
	List(ctx context.Context, filter internship.ListFilter) ([]domainInternship.Internship, error)
	Count(ctx context.Context) (int, error)
}

// InternshipMaterialStore interface for internship material queries.
type InternshipMaterialStore interface {
	ListByInternship(ctx context.Context, internshipID string) ([]domainInternship.Material, error)
}

// InternshipQuizStore interface for internship quiz queries.
type InternshipQuizStore interface {
	ListByInternship(ctx context.Context, internshipID string) ([]domainInternship.Quiz, error)
}

// InternshipProjectStore interface for internship project queries.
type InternshipProjectStore interface {
	GetByInternship(ctx context.Context, internshipID string) (domainInternship.Project, error)
}

// InternshipEnrollmentStore interface for internship enrollment queries.
type InternshipEnrollmentStore interface {
	GetByID(ctx context.Context, id string) (domainInternship.Enrollment, error)
	GetByStudentAndInternship(ctx context.Context, studentID, internshipID string) (domainInternship.Enrollment, error)
	ListByStudent(ctx context.Context, studentID string) ([]domainInternship.Enrollment, error)
	ListByProjectStatus(ctx context.Context, projectStatus string) ([]domainInternship.Enrollment, error)
	Count(ctx context.Context) (int, error)
}
