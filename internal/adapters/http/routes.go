package web

import (
	"net/http"

	"campus/internal/adapters/http/middleware"
	"campus/internal/domain/account"
)

// guard adapts a role middleware into a wrapper taking plain handler funcs.
func guard(mw func(http.Handler) http.Handler) func(http.HandlerFunc) http.Handler {
	return func(h http.HandlerFunc) http.Handler { return mw(h) }
}

func registerRoutes(mux *http.ServeMux) {
	// Public
	mux.HandleFunc("GET /{$}", handleGetCatalog)
	mux.HandleFunc("GET /course/{id}", handleGetCourse)
	mux.HandleFunc("GET /internships", handleGetInternships)
	mux.HandleFunc("GET /certificate/verify", handleVerifyCertificate)
	mux.HandleFunc("GET /login", handleGetLogin)
	mux.HandleFunc("POST /login", handlePostLogin)
	mux.HandleFunc("GET /register", handleGetRegister)
	mux.HandleFunc("POST /register", handlePostRegister)
	mux.HandleFunc("GET /logout", handleLogout)

	// Any authenticated account
	authed := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireAuth(h)
	}
	mux.Handle("GET /profile", authed(handleProfile))
	mux.Handle("POST /profile", authed(handleProfile))

	// Student surfaces
	student := guard(middleware.RequireRole(account.RoleStudent))
	mux.Handle("GET /student/dashboard", student(handleGetStudentDashboard))
	mux.Handle("POST /student/enroll/{course_id}", student(handlePostEnrollCourse))
	mux.Handle("POST /student/lesson/{lesson_id}/complete", student(handlePostCompleteLesson))
	mux.Handle("GET /student/quiz/{quiz_id}", student(handleQuiz))
	mux.Handle("POST /student/quiz/{quiz_id}", student(handleQuiz))
	mux.Handle("GET /student/notifications", student(handleNotifications))
	mux.Handle("POST /student/notifications/read", student(handleNotifications))
	mux.Handle("POST /student/enroll_internship/{id}", student(handlePostEnrollInternship))
	mux.Handle("GET /student/my_internship/{id}", student(handleGetMyInternship))
	mux.Handle("POST /student/my_internship/{id}/submit", student(handlePostSubmitProject))
	mux.Handle("GET /student/internship/{internship_id}/quiz/{quiz_id}", student(handleInternshipQuiz))
	mux.Handle("POST /student/internship/{internship_id}/quiz/{quiz_id}", student(handleInternshipQuiz))
	mux.Handle("GET /student/internship_certificate/{enrollment_id}", student(handleGetInternshipCertificate))

	// Instructor surfaces; admins may enter them too
	instructor := guard(middleware.RequireRole(account.RoleInstructor, account.RoleAdmin))
	mux.Handle("GET /instructor/dashboard", instructor(handleGetInstructorDashboard))
	mux.Handle("GET /instructor/course/new", instructor(handleCourseNew))
	mux.Handle("POST /instructor/course/new", instructor(handleCourseNew))
	mux.Handle("GET /instructor/course/{id}/edit", instructor(handleCourseEdit))
	mux.Handle("POST /instructor/course/{id}/edit", instructor(handleCourseEdit))
	mux.Handle("POST /instructor/course/{id}/lesson", instructor(handlePostAddLesson))
	mux.Handle("POST /instructor/course/{id}/quiz", instructor(handlePostAddQuiz))
	mux.Handle("GET /instructor/internship/new", instructor(handleInternshipNew))
	mux.Handle("POST /instructor/internship/new", instructor(handleInternshipNew))
	mux.Handle("GET /instructor/internship/{id}", instructor(handleInternshipManage))
	mux.Handle("POST /instructor/internship/{id}/material", instructor(handlePostAddMaterial))
	mux.Handle("POST /instructor/internship/{id}/quiz", instructor(handlePostAddInternshipQuiz))
	mux.Handle("POST /instructor/internship/{id}/project", instructor(handlePostSetProject))

	// Admin surfaces
	admin := guard(middleware.RequireRole(account.RoleAdmin))
	mux.Handle("GET /admin/dashboard", admin(handleGetAdminDashboard))
	mux.Handle("GET /admin/proposals", admin(handleGetProposals))
	mux.Handle("POST /admin/course/{id}/{action}", admin(handlePostReviewCourse))
	mux.Handle("GET /admin/enrollments", admin(handleGetEnrollments))
	mux.Handle("GET /admin/categories", admin(handleCategories))
	mux.Handle("POST /admin/categories", admin(handleCategories))
	mux.Handle("POST /admin/categories/{id}/delete", admin(handlePostDeleteCategory))
	mux.Handle("GET /admin/accounts", admin(handleAccounts))
	mux.Handle("POST /admin/accounts", admin(handleAccounts))
	mux.Handle("GET /admin/submissions", admin(handleGetSubmissions))
	mux.Handle("POST /admin/submission/{enrollment_id}/{action}", admin(handlePostReviewSubmission))
	mux.Handle("GET /admin/audit", admin(handleAdminAudit))
	mux.Handle("GET /admin/outbox", admin(handleAdminOutbox))
	mux.Handle("POST /admin/outbox/{id}/{action}", admin(handleAdminOutbox))
	mux.Handle("GET /admin/perf", admin(handleAdminPerf))
}
