package web

import (
	"net/http"
	"strconv"

	"campus/internal/adapters/http/middleware"
	internshipStore "campus/internal/adapters/storage/internship"
	"campus/internal/application/projections"
)

func internshipListFilter(r *http.Request) internshipStore.ListFilter {
	return internshipStore.ListFilter{
		Limit:  100,
		Search: r.URL.Query().Get("q"),
	}
}

// handleGetCatalog handles GET /: the public course catalog.
func handleGetCatalog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	const perPage = 24

	query := projections.GetCatalogQuery{
		CategoryID: r.URL.Query().Get("category"),
		Search:     r.URL.Query().Get("q"),
		Limit:      perPage,
		Offset:     (page - 1) * perPage,
	}
	result, err := projections.QueryGetCatalog(ctx, query, projections.GetCatalogDeps{
		CourseStore:   stores.CourseStore,
		CategoryStore: stores.CategoryStore,
		LessonStore:   stores.LessonStore,
		AccountStore:  stores.AccountStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "catalog.html", map[string]any{
			"Courses":    result.Courses,
			"Categories": result.Categories,
			"Category":   query.CategoryID,
			"Search":     query.Search,
			"Page":       page,
			"HasNext":    page*perPage < result.Total,
		})
		return
	}
	writeJSON(w, result)
}

// handleGetCourse handles GET /course/{id}: the public course page.
// Enrolled students additionally see their progress and quiz attempts.
func handleGetCourse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	studentID := ""
	if sess, ok := middleware.GetSessionFromContext(ctx); ok {
		studentID = sess.AccountID
	}

	query := projections.GetCourseDetailQuery{
		CourseID:  r.PathValue("id"),
		StudentID: studentID,
	}
	result, err := projections.QueryGetCourseDetail(ctx, query, projections.GetCourseDetailDeps{
		CourseStore:     stores.CourseStore,
		CategoryStore:   stores.CategoryStore,
		AccountStore:    stores.AccountStore,
		LessonStore:     stores.LessonStore,
		QuizStore:       stores.QuizStore,
		QuizResultStore: stores.QuizResultStore,
		EnrollmentStore: stores.EnrollmentStore,
		CompletionStore: stores.CompletionStore,
	})
	if err != nil {
		http.NotFound(w, r)
		return
	}

	// Unapproved courses are only visible to staff
	if !result.Course.IsApproved() && !middleware.IsInstructorOrAdmin(ctx) {
		http.NotFound(w, r)
		return
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "course_detail.html", map[string]any{
			"Course":           result.Course,
			"CategoryName":     result.CategoryName,
			"InstructorName":   result.InstructorName,
			"Lessons":          result.Lessons,
			"Quizzes":          result.Quizzes,
			"Enrolled":         result.Enrolled,
			"Enrollment":       result.Enrollment,
			"CompletedLessons": result.CompletedLessons,
		})
		return
	}
	writeJSON(w, result)
}

// handleGetInternships handles GET /internships: the public internship list.
func handleGetInternships(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	internships, err := stores.InternshipStore.List(ctx, internshipListFilter(r))
	if err != nil {
		internalError(w, err)
		return
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "internships.html", map[string]any{
			"Internships": internships,
			"Search":      r.URL.Query().Get("q"),
		})
		return
	}
	writeJSON(w, internships)
}

// handleVerifyCertificate handles GET /certificate/verify?id=X: a public
// endpoint for third parties checking a certificate ID.
func handleVerifyCertificate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	certID := r.URL.Query().Get("id")

	if certID == "" {
		renderTemplate(w, r, "certificate_verify.html", map[string]any{})
		return
	}

	result, err := projections.QueryVerifyCertificate(ctx, projections.VerifyCertificateQuery{
		CertificateID: certID,
	}, projections.VerifyCertificateDeps{
		EnrollmentStore: stores.InternshipEnrollmentStore,
		AccountStore:    stores.AccountStore,
		InternshipStore: stores.InternshipStore,
	})

	if isHTMLRequest(r) {
		data := map[string]any{"Searched": certID}
		if err == nil {
			data["Certificate"] = result
		}
		renderTemplate(w, r, "certificate_verify.html", data)
		return
	}
	if err != nil {
		http.Error(w, "certificate not found", http.StatusNotFound)
		return
	}
	writeJSON(w, result)
}
