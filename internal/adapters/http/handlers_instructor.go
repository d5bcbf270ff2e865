package web

import (
	"net/http"
	"strconv"

	"campus/internal/adapters/http/middleware"
	"campus/internal/application/orchestrators"
	"campus/internal/application/projections"
)

// maxCourseImageBytes caps course image uploads (5 MiB).
const maxCourseImageBytes = 5 << 20

// courseForm carries the course editor fields.
type courseForm struct {
	Title       string `validate:"required,max=120"`
	CategoryID  string `validate:"required"`
	Description string `validate:"max=10000"`
}

// handleGetInstructorDashboard handles GET /instructor/dashboard.
func handleGetInstructorDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, _ := middleware.GetSessionFromContext(ctx)

	result, err := projections.QueryGetInstructorDashboard(ctx, projections.GetInstructorDashboardQuery{
		InstructorID: sess.AccountID,
	}, projections.GetInstructorDashboardDeps{
		CourseStore:     stores.CourseStore,
		LessonStore:     stores.LessonStore,
		EnrollmentStore: stores.EnrollmentStore,
		InternshipStore: stores.InternshipStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "instructor_dashboard.html", map[string]any{
			"Courses":       result.Courses,
			"Internships":   result.Internships,
			"ProposedCount": result.ProposedCount,
		})
		return
	}
	writeJSON(w, result)
}

// handleCourseNew handles GET and POST /instructor/course/new. Instructor
// submissions become proposals; courses created by admins go live directly.
func handleCourseNew(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, _ := middleware.GetSessionFromContext(ctx)

	if r.Method == http.MethodGet {
		categories, err := stores.CategoryStore.List(ctx)
		if err != nil {
			internalError(w, err)
			return
		}
		renderTemplate(w, r, "course_form.html", map[string]any{"Categories": categories})
		return
	}

	form, imageName, ok := parseCourseForm(w, r)
	if !ok {
		return
	}

	c, err := orchestrators.ExecuteCreateCourse(ctx, orchestrators.CreateCourseInput{
		Title:       form.Title,
		CategoryID:  form.CategoryID,
		Description: form.Description,
		ImageFile:   imageName,
		CreatorID:   sess.AccountID,
		CreatorRole: sess.Role,
	}, orchestrators.CreateCourseDeps{
		CourseStore: stores.CourseStore,
		GenerateID:  generateID,
		Now:         timeNow,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	if isHTMLRequest(r) {
		http.Redirect(w, r, "/course/"+c.ID, http.StatusSeeOther)
		return
	}
	writeJSON(w, map[string]string{"course_id": c.ID, "status": c.Status})
}

// handleCourseEdit handles GET and POST /instructor/course/{id}/edit.
func handleCourseEdit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, _ := middleware.GetSessionFromContext(ctx)
	courseID := r.PathValue("id")

	c, err := stores.CourseStore.GetByID(ctx, courseID)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if c.InstructorID != sess.AccountID && !middleware.IsAdmin(ctx) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	if r.Method == http.MethodGet {
		categories, err := stores.CategoryStore.List(ctx)
		if err != nil {
			internalError(w, err)
			return
		}
		lessons, err := stores.LessonStore.ListByCourse(ctx, courseID)
		if err != nil {
			internalError(w, err)
			return
		}
		quizzes, err := stores.QuizStore.ListByCourse(ctx, courseID)
		if err != nil {
			internalError(w, err)
			return
		}
		renderTemplate(w, r, "course_form.html", map[string]any{
			"Course":     c,
			"Categories": categories,
			"Lessons":    lessons,
			"Quizzes":    quizzes,
		})
		return
	}

	form, imageName, ok := parseCourseForm(w, r)
	if !ok {
		return
	}

	updated, err := orchestrators.ExecuteUpdateCourse(ctx, orchestrators.UpdateCourseInput{
		CourseID:    courseID,
		Title:       form.Title,
		CategoryID:  form.CategoryID,
		Description: form.Description,
		ImageFile:   imageName,
	}, orchestrators.CreateCourseDeps{
		CourseStore: stores.CourseStore,
		GenerateID:  generateID,
		Now:         timeNow,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	if isHTMLRequest(r) {
		http.Redirect(w, r, "/course/"+updated.ID, http.StatusSeeOther)
		return
	}
	writeJSON(w, map[string]string{"course_id": updated.ID})
}

// handlePostAddLesson handles POST /instructor/course/{id}/lesson.
func handlePostAddLesson(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, _ := middleware.GetSessionFromContext(ctx)
	courseID := r.PathValue("id")

	if !ownsCourse(w, r, courseID, sess.AccountID) {
		return
	}

	if err := r.ParseMultipartForm(maxProjectUploadBytes); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	videoName := saveOptionalUpload(w, r, "VideoFile", "lesson_video")
	notesName := saveOptionalUpload(w, r, "NotesFile", "lesson_notes")

	order, _ := strconv.Atoi(r.FormValue("Order"))
	_, err := orchestrators.ExecuteAddLesson(ctx, orchestrators.AddLessonInput{
		CourseID:  courseID,
		Title:     r.FormValue("Title"),
		Content:   r.FormValue("Content"),
		VideoFile: videoName,
		NotesFile: notesName,
		Order:     order,
	}, orchestrators.AddLessonDeps{
		LessonStore: stores.LessonStore,
		GenerateID:  generateID,
		Now:         timeNow,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	if isHTMLRequest(r) {
		http.Redirect(w, r, "/instructor/course/"+courseID+"/edit", http.StatusSeeOther)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handlePostAddQuiz handles POST /instructor/course/{id}/quiz.
func handlePostAddQuiz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, _ := middleware.GetSessionFromContext(ctx)
	courseID := r.PathValue("id")

	if !ownsCourse(w, r, courseID, sess.AccountID) {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	_, err := orchestrators.ExecuteCreateQuiz(ctx, orchestrators.CreateQuizInput{
		CourseID:      courseID,
		Title:         r.FormValue("Title"),
		QuestionsData: r.FormValue("QuestionsData"),
	}, orchestrators.CreateQuizDeps{
		QuizStore:  stores.QuizStore,
		GenerateID: generateID,
		Now:        timeNow,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if isHTMLRequest(r) {
		http.Redirect(w, r, "/instructor/course/"+courseID+"/edit", http.StatusSeeOther)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleInternshipNew handles GET and POST /instructor/internship/new.
func handleInternshipNew(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, _ := middleware.GetSessionFromContext(ctx)

	if r.Method == http.MethodGet {
		renderTemplate(w, r, "internship_form.html", map[string]any{})
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	i, err := orchestrators.ExecuteCreateInternship(ctx, orchestrators.CreateInternshipInput{
		Title:        r.FormValue("Title"),
		Description:  r.FormValue("Description"),
		Duration:     r.FormValue("Duration"),
		InstructorID: sess.AccountID,
	}, manageInternshipDeps())
	if err != nil {
		internalError(w, err)
		return
	}

	if isHTMLRequest(r) {
		http.Redirect(w, r, "/instructor/internship/"+i.ID, http.StatusSeeOther)
		return
	}
	writeJSON(w, map[string]string{"internship_id": i.ID})
}

// handleInternshipManage handles GET /instructor/internship/{id}: the
// management page for materials, quizzes, the project, and enrollees.
func handleInternshipManage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, _ := middleware.GetSessionFromContext(ctx)
	internshipID := r.PathValue("id")

	if !ownsInternship(w, r, internshipID, sess.AccountID) {
		return
	}

	result, err := projections.QueryGetInternshipView(ctx, projections.GetInternshipViewQuery{
		InternshipID: internshipID,
	}, internshipViewDeps())
	if err != nil {
		http.NotFound(w, r)
		return
	}
	enrollees, err := stores.InternshipEnrollmentStore.ListByInternship(ctx, internshipID)
	if err != nil {
		internalError(w, err)
		return
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "internship_manage.html", map[string]any{
			"Internship": result.Internship,
			"Materials":  result.Materials,
			"Quizzes":    result.Quizzes,
			"HasProject": result.HasProject,
			"Project":    result.Project,
			"Enrollees":  enrollees,
		})
		return
	}
	writeJSON(w, map[string]any{"internship": result, "enrollees": enrollees})
}

// handlePostAddMaterial handles POST /instructor/internship/{id}/material.
func handlePostAddMaterial(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, _ := middleware.GetSessionFromContext(ctx)
	internshipID := r.PathValue("id")

	if !ownsInternship(w, r, internshipID, sess.AccountID) {
		return
	}

	if err := r.ParseMultipartForm(maxProjectUploadBytes); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	fileName := saveOptionalUpload(w, r, "File", "material")
	if fileName == "" {
		http.Error(w, "A material file is required", http.StatusBadRequest)
		return
	}

	_, err := orchestrators.ExecuteAddMaterial(ctx, orchestrators.AddMaterialInput{
		InternshipID: internshipID,
		Title:        r.FormValue("Title"),
		ResourceType: r.FormValue("ResourceType"),
		FilePath:     fileName,
	}, manageInternshipDeps())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Redirect(w, r, "/instructor/internship/"+internshipID, http.StatusSeeOther)
}

// handlePostAddInternshipQuiz handles POST /instructor/internship/{id}/quiz.
func handlePostAddInternshipQuiz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, _ := middleware.GetSessionFromContext(ctx)
	internshipID := r.PathValue("id")

	if !ownsInternship(w, r, internshipID, sess.AccountID) {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	_, err := orchestrators.ExecuteAddInternshipQuiz(ctx, orchestrators.AddInternshipQuizInput{
		InternshipID:  internshipID,
		Title:         r.FormValue("Title"),
		QuestionsData: r.FormValue("QuestionsData"),
	}, manageInternshipDeps())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Redirect(w, r, "/instructor/internship/"+internshipID, http.StatusSeeOther)
}

// handlePostSetProject handles POST /instructor/internship/{id}/project.
func handlePostSetProject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, _ := middleware.GetSessionFromContext(ctx)
	internshipID := r.PathValue("id")

	if !ownsInternship(w, r, internshipID, sess.AccountID) {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	_, err := orchestrators.ExecuteSetProject(ctx, orchestrators.SetProjectInput{
		InternshipID: internshipID,
		Title:        r.FormValue("Title"),
		Description:  r.FormValue("Description"),
	}, manageInternshipDeps())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Redirect(w, r, "/instructor/internship/"+internshipID, http.StatusSeeOther)
}

// parseCourseForm reads the course editor form, validates it, and stores an
// optional image upload. Reports false after writing an error response.
func parseCourseForm(w http.ResponseWriter, r *http.Request) (courseForm, string, bool) {
	if err := r.ParseMultipartForm(maxCourseImageBytes); err != nil {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return courseForm{}, "", false
		}
	}
	form := courseForm{
		Title:       r.FormValue("Title"),
		CategoryID:  r.FormValue("CategoryID"),
		Description: r.FormValue("Description"),
	}
	if err := validate.Struct(form); err != nil {
		http.Error(w, "Title and category are required", http.StatusBadRequest)
		return courseForm{}, "", false
	}
	imageName := saveOptionalUpload(w, r, "Image", "course_img")
	return form, imageName, true
}

// saveOptionalUpload stores a multipart file field if present and returns
// the stored name, or "" when the field was omitted.
func saveOptionalUpload(w http.ResponseWriter, r *http.Request, field, prefix string) string {
	file, header, err := r.FormFile(field)
	if err != nil {
		return ""
	}
	defer file.Close()
	name, err := mediaStore.Save(prefix, header.Filename, file)
	if err != nil {
		internalError(w, err)
		return ""
	}
	return name
}

// ownsCourse loads the course and enforces instructor ownership (admins
// pass). Reports false after writing an error response.
func ownsCourse(w http.ResponseWriter, r *http.Request, courseID, accountID string) bool {
	c, err := stores.CourseStore.GetByID(r.Context(), courseID)
	if err != nil {
		http.NotFound(w, r)
		return false
	}
	if c.InstructorID != accountID && !middleware.IsAdmin(r.Context()) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return false
	}
	return true
}

// ownsInternship mirrors ownsCourse for internships.
func ownsInternship(w http.ResponseWriter, r *http.Request, internshipID, accountID string) bool {
	i, err := stores.InternshipStore.GetByID(r.Context(), internshipID)
	if err != nil {
		http.NotFound(w, r)
		return false
	}
	if i.InstructorID != accountID && !middleware.IsAdmin(r.Context()) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return false
	}
	return true
}

func manageInternshipDeps() orchestrators.ManageInternshipDeps {
	return orchestrators.ManageInternshipDeps{
		InternshipStore: stores.InternshipStore,
		MaterialStore:   stores.InternshipMaterialStore,
		QuizStore:       stores.InternshipQuizStore,
		ProjectStore:    stores.InternshipProjectStore,
		GenerateID:      generateID,
		Now:             timeNow,
	}
}
