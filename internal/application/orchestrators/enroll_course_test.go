package orchestrators

import (
	"context"
	"testing"

	"campus/internal/domain/course"
	"campus/internal/domain/enrollment"
	"campus/internal/domain/lesson"
)

// mockCourseEnrollmentStore implements EnrollmentStoreForEnroll in memory.
type mockCourseEnrollmentStore struct {
	enrollments map[string]enrollment.Enrollment
}

func newMockCourseEnrollmentStore() *mockCourseEnrollmentStore {
	return &mockCourseEnrollmentStore{enrollments: make(map[string]enrollment.Enrollment)}
}

func (m *mockCourseEnrollmentStore) GetByStudentAndCourse(_ context.Context, studentID, courseID string) (enrollment.Enrollment, error) {
	for _, e := range m.enrollments {
		if e.StudentID == studentID && e.CourseID == courseID {
			return e, nil
		}
	}
	return enrollment.Enrollment{}, errNotFound
}

func (m *mockCourseEnrollmentStore) Save(_ context.Context, e enrollment.Enrollment) error {
	m.enrollments[e.ID] = e
	return nil
}

// mockCourseStore implements CourseStoreForEnroll in memory.
type mockCourseStore struct {
	courses map[string]course.Course
}

func (m *mockCourseStore) GetByID(_ context.Context, id string) (course.Course, error) {
	c, ok := m.courses[id]
	if !ok {
		return course.Course{}, errNotFound
	}
	return c, nil
}

// mockLessonStore implements LessonStoreForComplete in memory.
type mockLessonStore struct {
	lessons map[string]lesson.Lesson
}

func (m *mockLessonStore) GetByID(_ context.Context, id string) (lesson.Lesson, error) {
	l, ok := m.lessons[id]
	if !ok {
		return lesson.Lesson{}, errNotFound
	}
	return l, nil
}

func (m *mockLessonStore) CountByCourse(_ context.Context, courseID string) (int, error) {
	count := 0
	for _, l := range m.lessons {
		if l.CourseID == courseID {
			count++
		}
	}
	return count, nil
}

// mockCompletionStore implements CompletionStoreForComplete in memory,
// deduplicating on the (student, lesson) pair like the real table.
type mockCompletionStore struct {
	lessons     map[string]lesson.Lesson
	completions map[string]bool // studentID + "/" + lessonID
}

func (m *mockCompletionStore) Save(_ context.Context, c enrollment.LessonCompletion) error {
	m.completions[c.StudentID+"/"+c.LessonID] = true
	return nil
}

func (m *mockCompletionStore) CountByStudentAndCourse(_ context.Context, studentID, courseID string) (int, error) {
	count := 0
	for key := range m.completions {
		for id, l := range m.lessons {
			if l.CourseID == courseID && key == studentID+"/"+id {
				count++
			}
		}
	}
	return count, nil
}

func TestExecuteEnrollCourse_ApprovedOnly(t *testing.T) {
	courses := &mockCourseStore{courses: map[string]course.Course{
		"c1": {ID: "c1", Title: "Go Basics", CategoryID: "cat-1", Status: course.StatusApproved},
		"c2": {ID: "c2", Title: "Pending Course", CategoryID: "cat-1", Status: course.StatusProposed},
	}}
	enrollments := newMockCourseEnrollmentStore()
	deps := EnrollCourseDeps{
		EnrollmentStore: enrollments,
		CourseStore:     courses,
		GenerateID:      seqID(),
		Now:             fixedNow,
	}

	result, err := ExecuteEnrollCourse(context.Background(), EnrollCourseInput{StudentID: "stu-1", CourseID: "c1"}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.AlreadyEnrolled {
		t.Error("fresh enrollment should not report AlreadyEnrolled")
	}

	if _, err := ExecuteEnrollCourse(context.Background(), EnrollCourseInput{StudentID: "stu-1", CourseID: "c2"}, deps); err != ErrCourseNotApproved {
		t.Errorf("proposed course err = %v, want ErrCourseNotApproved", err)
	}
}

func TestExecuteEnrollCourse_DuplicateIsInformational(t *testing.T) {
	courses := &mockCourseStore{courses: map[string]course.Course{
		"c1": {ID: "c1", Title: "Go Basics", CategoryID: "cat-1", Status: course.StatusApproved},
	}}
	enrollments := newMockCourseEnrollmentStore()
	deps := EnrollCourseDeps{
		EnrollmentStore: enrollments,
		CourseStore:     courses,
		GenerateID:      seqID(),
		Now:             fixedNow,
	}
	input := EnrollCourseInput{StudentID: "stu-1", CourseID: "c1"}

	if _, err := ExecuteEnrollCourse(context.Background(), input, deps); err != nil {
		t.Fatalf("first enroll failed: %v", err)
	}
	second, err := ExecuteEnrollCourse(context.Background(), input, deps)
	if err != nil {
		t.Fatalf("second enroll should not error: %v", err)
	}
	if !second.AlreadyEnrolled {
		t.Error("second enroll should report AlreadyEnrolled")
	}
	if len(enrollments.enrollments) != 1 {
		t.Errorf("enrollment count = %d, want 1", len(enrollments.enrollments))
	}
}

func TestExecuteCompleteLesson_ProgressAndCompletion(t *testing.T) {
	lessons := &mockLessonStore{lessons: map[string]lesson.Lesson{
		"l1": {ID: "l1", CourseID: "c1", Title: "Intro"},
		"l2": {ID: "l2", CourseID: "c1", Title: "Advanced"},
	}}
	completions := &mockCompletionStore{lessons: lessons.lessons, completions: make(map[string]bool)}
	enrollments := newMockCourseEnrollmentStore()
	enrollments.enrollments["e1"] = enrollment.Enrollment{
		ID: "e1", StudentID: "stu-1", CourseID: "c1", Status: enrollment.StatusActive, CreatedAt: fixedTime,
	}
	notifications := &mockNotificationStore{}
	deps := CompleteLessonDeps{
		LessonStore:       lessons,
		CompletionStore:   completions,
		EnrollmentStore:   enrollments,
		NotificationStore: notifications,
		GenerateID:        seqID(),
		Now:               fixedNow,
	}

	first, err := ExecuteCompleteLesson(context.Background(), CompleteLessonInput{StudentID: "stu-1", LessonID: "l1"}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Enrollment.Progress != 50 {
		t.Errorf("progress = %v, want 50", first.Enrollment.Progress)
	}
	if first.CourseCompleted {
		t.Error("course should not be completed at 50%")
	}

	second, err := ExecuteCompleteLesson(context.Background(), CompleteLessonInput{StudentID: "stu-1", LessonID: "l2"}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Enrollment.Progress != 100 {
		t.Errorf("progress = %v, want 100", second.Enrollment.Progress)
	}
	if !second.CourseCompleted {
		t.Error("finishing the last lesson should complete the course")
	}
	if second.Enrollment.Status != enrollment.StatusCompleted {
		t.Errorf("status = %q, want Completed", second.Enrollment.Status)
	}
	if len(notifications.saved) != 1 {
		t.Errorf("notifications = %d, want 1 on completion", len(notifications.saved))
	}

	// Marking an already-done lesson keeps progress stable.
	third, err := ExecuteCompleteLesson(context.Background(), CompleteLessonInput{StudentID: "stu-1", LessonID: "l2"}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if third.Enrollment.Progress != 100 {
		t.Errorf("progress = %v, want 100 after repeat completion", third.Enrollment.Progress)
	}
	if third.CourseCompleted {
		t.Error("repeat completion should not re-announce the course")
	}
}
