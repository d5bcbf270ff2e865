package web

import (
	"errors"
	"net/http"
	"strconv"

	"campus/internal/adapters/http/middleware"
	"campus/internal/application/orchestrators"
	"campus/internal/application/projections"
)

// handleGetStudentDashboard handles GET /student/dashboard.
func handleGetStudentDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, _ := middleware.GetSessionFromContext(ctx)

	result, err := projections.QueryGetStudentDashboard(ctx, projections.GetStudentDashboardQuery{
		StudentID: sess.AccountID,
	}, projections.GetStudentDashboardDeps{
		EnrollmentStore:           stores.EnrollmentStore,
		CourseStore:               stores.CourseStore,
		InternshipEnrollmentStore: stores.InternshipEnrollmentStore,
		InternshipStore:           stores.InternshipStore,
		QuizResultStore:           stores.QuizResultStore,
		NotificationStore:         stores.NotificationStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "student_dashboard.html", map[string]any{
			"Enrollments":   result.Enrollments,
			"Internships":   result.Internships,
			"QuizResults":   result.QuizResults,
			"Notifications": result.Notifications,
			"UnreadCount":   result.UnreadCount,
		})
		return
	}
	writeJSON(w, result)
}

// handlePostEnrollCourse handles POST /student/enroll/{course_id}.
// Enrolling in an already-enrolled course is informational, not an error.
func handlePostEnrollCourse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, _ := middleware.GetSessionFromContext(ctx)
	courseID := r.PathValue("course_id")

	result, err := orchestrators.ExecuteEnrollCourse(ctx, orchestrators.EnrollCourseInput{
		StudentID: sess.AccountID,
		CourseID:  courseID,
	}, orchestrators.EnrollCourseDeps{
		EnrollmentStore: stores.EnrollmentStore,
		CourseStore:     stores.CourseStore,
		GenerateID:      generateID,
		Now:             timeNow,
	})
	if errors.Is(err, orchestrators.ErrCourseNotApproved) {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}
	if err != nil {
		internalError(w, err)
		return
	}

	if isHTMLRequest(r) {
		http.Redirect(w, r, "/course/"+courseID, http.StatusSeeOther)
		return
	}
	writeJSON(w, map[string]any{
		"enrollment_id":    result.Enrollment.ID,
		"already_enrolled": result.AlreadyEnrolled,
	})
}

// handlePostCompleteLesson handles POST /student/lesson/{lesson_id}/complete.
func handlePostCompleteLesson(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, _ := middleware.GetSessionFromContext(ctx)

	result, err := orchestrators.ExecuteCompleteLesson(ctx, orchestrators.CompleteLessonInput{
		StudentID: sess.AccountID,
		LessonID:  r.PathValue("lesson_id"),
	}, orchestrators.CompleteLessonDeps{
		LessonStore:       stores.LessonStore,
		CompletionStore:   stores.CompletionStore,
		EnrollmentStore:   stores.EnrollmentStore,
		NotificationStore: stores.NotificationStore,
		GenerateID:        generateID,
		Now:               timeNow,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	if isHTMLRequest(r) {
		http.Redirect(w, r, "/course/"+result.Enrollment.CourseID, http.StatusSeeOther)
		return
	}
	writeJSON(w, map[string]any{
		"progress":         result.Enrollment.Progress,
		"course_completed": result.CourseCompleted,
	})
}

// handleQuiz handles GET and POST /student/quiz/{quiz_id}. GET shows the
// questions; POST grades the submitted answers and records the result.
func handleQuiz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, _ := middleware.GetSessionFromContext(ctx)
	quizID := r.PathValue("quiz_id")

	q, err := stores.QuizStore.GetByID(ctx, quizID)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if r.Method == http.MethodGet {
		questions, err := q.Questions()
		if err != nil {
			internalError(w, err)
			return
		}
		renderTemplate(w, r, "quiz.html", map[string]any{
			"Quiz":      q,
			"Questions": questions,
			"Action":    "/student/quiz/" + q.ID,
		})
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	result, err := orchestrators.ExecuteTakeQuiz(ctx, orchestrators.TakeQuizInput{
		StudentID: sess.AccountID,
		QuizID:    quizID,
		Answers:   parseAnswers(r),
	}, orchestrators.TakeQuizDeps{
		QuizStore:   stores.QuizStore,
		ResultStore: stores.QuizResultStore,
		GenerateID:  generateID,
		Now:         timeNow,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "quiz_result.html", map[string]any{
			"QuizTitle": q.Title,
			"Score":     result.Score,
			"Passed":    result.Passed,
			"BackURL":   "/course/" + q.CourseID,
		})
		return
	}
	writeJSON(w, map[string]any{"score": result.Score, "passed": result.Passed})
}

// handleNotifications handles GET /student/notifications and
// POST /student/notifications/read (mark all read).
func handleNotifications(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, _ := middleware.GetSessionFromContext(ctx)

	if r.Method == http.MethodPost {
		if err := stores.NotificationStore.MarkAllRead(ctx, sess.AccountID); err != nil {
			internalError(w, err)
			return
		}
		http.Redirect(w, r, "/student/notifications", http.StatusSeeOther)
		return
	}

	notices, err := stores.NotificationStore.ListByStudent(ctx, sess.AccountID, false)
	if err != nil {
		internalError(w, err)
		return
	}
	if isHTMLRequest(r) {
		renderTemplate(w, r, "notifications.html", map[string]any{"Notifications": notices})
		return
	}
	writeJSON(w, notices)
}

// parseAnswers reads q<N> form fields into the answer map the grader expects.
func parseAnswers(r *http.Request) map[int]string {
	answers := make(map[int]string)
	for key, values := range r.PostForm {
		if len(values) == 0 || len(key) < 2 || key[0] != 'q' {
			continue
		}
		idx, err := strconv.Atoi(key[1:])
		if err != nil {
			continue
		}
		answers[idx] = values[0]
	}
	return answers
}
