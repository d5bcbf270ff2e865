package web

import (
	"errors"
	"net/http"

	"campus/internal/adapters/http/middleware"
	"campus/internal/application/orchestrators"
	"campus/internal/application/projections"
)

// maxProjectUploadBytes caps project submission size (20 MiB).
const maxProjectUploadBytes = 20 << 20

// handlePostEnrollInternship handles POST /student/enroll_internship/{id}.
func handlePostEnrollInternship(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, _ := middleware.GetSessionFromContext(ctx)
	internshipID := r.PathValue("id")

	result, err := orchestrators.ExecuteEnrollInternship(ctx, orchestrators.EnrollInternshipInput{
		StudentID:    sess.AccountID,
		InternshipID: internshipID,
	}, orchestrators.EnrollInternshipDeps{
		EnrollmentStore: stores.InternshipEnrollmentStore,
		InternshipStore: stores.InternshipStore,
		GenerateID:      generateID,
		Now:             timeNow,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	if isHTMLRequest(r) {
		if result.AlreadyEnrolled {
			middleware.SetFlash(w, "You are already enrolled in this internship.")
		}
		http.Redirect(w, r, "/student/my_internship/"+internshipID, http.StatusSeeOther)
		return
	}
	writeJSON(w, map[string]any{
		"enrollment_id":    result.Enrollment.ID,
		"already_enrolled": result.AlreadyEnrolled,
	})
}

// handleGetMyInternship handles GET /student/my_internship/{id}: the
// enrolled student's workspace with materials, quizzes, and the project.
func handleGetMyInternship(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, _ := middleware.GetSessionFromContext(ctx)

	result, err := projections.QueryGetInternshipView(ctx, projections.GetInternshipViewQuery{
		InternshipID: r.PathValue("id"),
		StudentID:    sess.AccountID,
	}, internshipViewDeps())
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if !result.Enrolled {
		middleware.SetFlash(w, "Enroll in the internship to access its workspace.")
		http.Redirect(w, r, "/internships", http.StatusSeeOther)
		return
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "my_internship.html", map[string]any{
			"Internship":     result.Internship,
			"InstructorName": result.InstructorName,
			"Materials":      result.Materials,
			"Quizzes":        result.Quizzes,
			"HasProject":     result.HasProject,
			"Project":        result.Project,
			"Enrollment":     result.Enrollment,
		})
		return
	}
	writeJSON(w, result)
}

// handlePostSubmitProject handles POST /student/my_internship/{id}/submit.
// The multipart upload is stored first; only its stored name reaches the
// workflow.
func handlePostSubmitProject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, _ := middleware.GetSessionFromContext(ctx)
	internshipID := r.PathValue("id")

	if err := r.ParseMultipartForm(maxProjectUploadBytes); err != nil {
		http.Error(w, "Upload too large or malformed", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("ProjectFile")
	if err != nil {
		http.Error(w, "A project file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	storedName, err := mediaStore.Save("proj_sub", header.Filename, file)
	if err != nil {
		internalError(w, err)
		return
	}

	_, err = orchestrators.ExecuteSubmitProject(ctx, orchestrators.SubmitProjectInput{
		StudentID:    sess.AccountID,
		InternshipID: internshipID,
		FileRef:      storedName,
	}, orchestrators.SubmitProjectDeps{
		EnrollmentStore: stores.InternshipEnrollmentStore,
	})
	if errors.Is(err, orchestrators.ErrNotEnrolled) {
		if isHTMLRequest(r) {
			middleware.SetFlash(w, "Enroll in the internship before submitting a project.")
			http.Redirect(w, r, "/internships", http.StatusSeeOther)
			return
		}
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}
	if err != nil {
		internalError(w, err)
		return
	}

	if isHTMLRequest(r) {
		http.Redirect(w, r, "/student/my_internship/"+internshipID, http.StatusSeeOther)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleInternshipQuiz handles GET and POST
// /student/internship/{internship_id}/quiz/{quiz_id}. Scores are shown
// immediately and never stored.
func handleInternshipQuiz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, _ := middleware.GetSessionFromContext(ctx)
	internshipID := r.PathValue("internship_id")
	quizID := r.PathValue("quiz_id")

	// Only enrolled students may take internship quizzes
	if _, err := stores.InternshipEnrollmentStore.GetByStudentAndInternship(ctx, sess.AccountID, internshipID); err != nil {
		http.Redirect(w, r, "/internships", http.StatusSeeOther)
		return
	}

	q, err := stores.InternshipQuizStore.GetByID(ctx, quizID)
	if err != nil || q.InternshipID != internshipID {
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
			"Action":    "/student/internship/" + internshipID + "/quiz/" + quizID,
		})
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	result, err := orchestrators.ExecuteTakeInternshipQuiz(ctx, orchestrators.TakeQuizInput{
		StudentID: sess.AccountID,
		QuizID:    quizID,
		Answers:   parseAnswers(r),
	}, orchestrators.TakeInternshipQuizDeps{
		QuizStore: stores.InternshipQuizStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "quiz_result.html", map[string]any{
			"QuizTitle": result.QuizTitle,
			"Score":     result.Score,
			"Practice":  true,
			"BackURL":   "/student/my_internship/" + internshipID,
		})
		return
	}
	writeJSON(w, map[string]any{"score": result.Score})
}

// handleGetInternshipCertificate handles GET
// /student/internship_certificate/{enrollment_id}.
func handleGetInternshipCertificate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, _ := middleware.GetSessionFromContext(ctx)

	result, err := projections.QueryGetCertificate(ctx, projections.GetCertificateQuery{
		EnrollmentID: r.PathValue("enrollment_id"),
		StudentID:    sess.AccountID,
	}, projections.GetCertificateDeps{
		EnrollmentStore: stores.InternshipEnrollmentStore,
		AccountStore:    stores.AccountStore,
		InternshipStore: stores.InternshipStore,
	})
	if errors.Is(err, projections.ErrNotCertificate) {
		if isHTMLRequest(r) {
			middleware.SetFlash(w, "That certificate is not available.")
			http.Redirect(w, r, "/internships", http.StatusSeeOther)
			return
		}
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}
	if errors.Is(err, projections.ErrNoCertificate) {
		if isHTMLRequest(r) {
			middleware.SetFlash(w, "No certificate has been issued yet. It becomes available once your project is approved.")
			if e, lookupErr := stores.InternshipEnrollmentStore.GetByID(ctx, r.PathValue("enrollment_id")); lookupErr == nil {
				http.Redirect(w, r, "/student/my_internship/"+e.InternshipID, http.StatusSeeOther)
				return
			}
			http.Redirect(w, r, "/internships", http.StatusSeeOther)
			return
		}
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "internship_certificate.html", map[string]any{
			"Certificate": result,
		})
		return
	}
	writeJSON(w, result)
}

func internshipViewDeps() projections.GetInternshipViewDeps {
	return projections.GetInternshipViewDeps{
		InternshipStore: stores.InternshipStore,
		MaterialStore:   stores.InternshipMaterialStore,
		QuizStore:       stores.InternshipQuizStore,
		ProjectStore:    stores.InternshipProjectStore,
		EnrollmentStore: stores.InternshipEnrollmentStore,
		AccountStore:    stores.AccountStore,
	}
}
