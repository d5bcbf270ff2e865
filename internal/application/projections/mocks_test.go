package projections

import (
	"context"
	"errors"
	"time"

	"campus/internal/adapters/storage/account"
	"campus/internal/adapters/storage/course"
	"campus/internal/adapters/storage/internship"
	domainAccount "campus/internal/domain/account"
	domainCategory "campus/internal/domain/category"
	domainCourse "campus/internal/domain/course"
	domainEnrollment "campus/internal/domain/enrollment"
	domainInternship "campus/internal/domain/internship"
	domainLesson "campus/internal/domain/lesson"
)

var errNotFound = errors.New("not found")

var fixedTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// mockAccounts implements AccountStore over a map.
type mockAccounts struct {
	accounts map[string]domainAccount.Account
}

func (m *mockAccounts) GetByID(_ context.Context, id string) (domainAccount.Account, error) {
	a, ok := m.accounts[id]
	if !ok {
		return domainAccount.Account{}, errNotFound
	}
	return a, nil
}

func (m *mockAccounts) List(_ context.Context, _ account.ListFilter) ([]domainAccount.Account, error) {
	var out []domainAccount.Account
	for _, a := range m.accounts {
		out = append(out, a)
	}
	return out, nil
}

func (m *mockAccounts) Count(_ context.Context, filter account.ListFilter) (int, error) {
	count := 0
	for _, a := range m.accounts {
		if filter.Role == "" || a.Role == filter.Role {
			count++
		}
	}
	return count, nil
}

// mockCourses implements CourseStore over a slice, honoring the status,
// category, and instructor filters the queries rely on.
type mockCourses struct {
	courses []domainCourse.Course
}

func (m *mockCourses) GetByID(_ context.Context, id string) (domainCourse.Course, error) {
	for _, c := range m.courses {
		if c.ID == id {
			return c, nil
		}
	}
	return domainCourse.Course{}, errNotFound
}

func (m *mockCourses) matches(c domainCourse.Course, filter course.ListFilter) bool {
	if filter.Status != "" && c.Status != filter.Status {
		return false
	}
	if filter.CategoryID != "" && c.CategoryID != filter.CategoryID {
		return false
	}
	if filter.InstructorID != "" && c.InstructorID != filter.InstructorID {
		return false
	}
	return true
}

func (m *mockCourses) List(_ context.Context, filter course.ListFilter) ([]domainCourse.Course, error) {
	var out []domainCourse.Course
	for _, c := range m.courses {
		if m.matches(c, filter) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockCourses) Count(_ context.Context, filter course.ListFilter) (int, error) {
	list, _ := m.List(context.Background(), filter)
	return len(list), nil
}

// mockCategories implements CategoryStore over a slice.
type mockCategories struct {
	categories []domainCategory.Category
}

func (m *mockCategories) GetByID(_ context.Context, id string) (domainCategory.Category, error) {
	for _, c := range m.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return domainCategory.Category{}, errNotFound
}

func (m *mockCategories) List(_ context.Context) ([]domainCategory.Category, error) {
	return m.categories, nil
}

// mockLessons implements LessonStore over a slice.
type mockLessons struct {
	lessons []domainLesson.Lesson
}

func (m *mockLessons) ListByCourse(_ context.Context, courseID string) ([]domainLesson.Lesson, error) {
	var out []domainLesson.Lesson
	for _, l := range m.lessons {
		if l.CourseID == courseID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *mockLessons) CountByCourse(ctx context.Context, courseID string) (int, error) {
	list, _ := m.ListByCourse(ctx, courseID)
	return len(list), nil
}

// mockEnrollments implements EnrollmentStore over a slice.
type mockEnrollments struct {
	enrollments []domainEnrollment.Enrollment
}

func (m *mockEnrollments) GetByStudentAndCourse(_ context.Context, studentID, courseID string) (domainEnrollment.Enrollment, error) {
	for _, e := range m.enrollments {
		if e.StudentID == studentID && e.CourseID == courseID {
			return e, nil
		}
	}
	return domainEnrollment.Enrollment{}, errNotFound
}

func (m *mockEnrollments) ListByStudent(_ context.Context, studentID string) ([]domainEnrollment.Enrollment, error) {
	var out []domainEnrollment.Enrollment
	for _, e := range m.enrollments {
		if e.StudentID == studentID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockEnrollments) ListByCourse(_ context.Context, courseID string) ([]domainEnrollment.Enrollment, error) {
	var out []domainEnrollment.Enrollment
	for _, e := range m.enrollments {
		if e.CourseID == courseID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockEnrollments) ListAll(_ context.Context, limit int) ([]domainEnrollment.Enrollment, error) {
	if limit > len(m.enrollments) {
		limit = len(m.enrollments)
	}
	return m.enrollments[:limit], nil
}

func (m *mockEnrollments) Count(_ context.Context) (int, error) {
	return len(m.enrollments), nil
}

// mockInternships implements InternshipStore over a slice.
type mockInternships struct {
	internships []domainInternship.Internship
}

func (m *mockInternships) GetByID(_ context.Context, id string) (domainInternship.Internship, error) {
	for _, i := range m.internships {
		if i.ID == id {
			return i, nil
		}
	}
	return domainInternship.Internship{}, errNotFound
}

func (m *mockInternships) List(_ context.Context, filter internship.ListFilter) ([]domainInternship.Internship, error) {
	var out []domainInternship.Internship
	for _, i := range m.internships {
		if filter.InstructorID == "" || i.InstructorID == filter.InstructorID {
			out = append(out, i)
		}
	}
	return out, nil
}

func (m *mockInternships) Count(_ context.Context) (int, error) {
	return len(m.internships), nil
}

// mockInternEnrollments implements InternshipEnrollmentStore over a slice.
type mockInternEnrollments struct {
	enrollments []domainInternship.Enrollment
}

func (m *mockInternEnrollments) GetByID(_ context.Context, id string) (domainInternship.Enrollment, error) {
	for _, e := range m.enrollments {
		if e.ID == id {
			return e, nil
		}
	}
	return domainInternship.Enrollment{}, errNotFound
}

func (m *mockInternEnrollments) GetByStudentAndInternship(_ context.Context, studentID, internshipID string) (domainInternship.Enrollment, error) {
	for _, e := range m.enrollments {
		if e.StudentID == studentID && e.InternshipID == internshipID {
			return e, nil
		}
	}
	return domainInternship.Enrollment{}, errNotFound
}

func (m *mockInternEnrollments) GetByCertificateID(_ context.Context, certificateID string) (domainInternship.Enrollment, error) {
	for _, e := range m.enrollments {
		if e.CertificateID == certificateID && certificateID != "" {
			return e, nil
		}
	}
	return domainInternship.Enrollment{}, errNotFound
}

func (m *mockInternEnrollments) ListByStudent(_ context.Context, studentID string) ([]domainInternship.Enrollment, error) {
	var out []domainInternship.Enrollment
	for _, e := range m.enrollments {
		if e.StudentID == studentID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockInternEnrollments) ListByProjectStatus(_ context.Context, projectStatus string) ([]domainInternship.Enrollment, error) {
	var out []domainInternship.Enrollment
	for _, e := range m.enrollments {
		if e.ProjectStatus == projectStatus {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockInternEnrollments) Count(_ context.Context) (int, error) {
	return len(m.enrollments), nil
}
