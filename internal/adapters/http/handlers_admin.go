package web

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"campus/internal/adapters/http/middleware"
	accountStore "campus/internal/adapters/storage/account"
	auditStore "campus/internal/adapters/storage/audit"
	courseStore "campus/internal/adapters/storage/course"
	"campus/internal/application/orchestrators"
	"campus/internal/application/projections"
	accountDomain "campus/internal/domain/account"
	auditDomain "campus/internal/domain/audit"
	courseDomain "campus/internal/domain/course"
	outboxDomain "campus/internal/domain/outbox"
)

// handleGetAdminDashboard handles GET /admin/dashboard: overview counters.
func handleGetAdminDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	result, err := projections.QueryGetReports(ctx, projections.GetReportsDeps{
		AccountStore:              stores.AccountStore,
		CourseStore:               stores.CourseStore,
		EnrollmentStore:           stores.EnrollmentStore,
		InternshipStore:           stores.InternshipStore,
		InternshipEnrollmentStore: stores.InternshipEnrollmentStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "admin_dashboard.html", map[string]any{"Reports": result})
		return
	}
	writeJSON(w, result)
}

// handleGetProposals handles GET /admin/proposals: courses awaiting review.
func handleGetProposals(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	proposals, err := stores.CourseStore.List(ctx, courseStore.ListFilter{
		Limit:  200,
		Status: courseDomain.StatusProposed,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "admin_proposals.html", map[string]any{"Proposals": proposals})
		return
	}
	writeJSON(w, proposals)
}

// handlePostReviewCourse handles POST /admin/course/{id}/{action} with
// action approve or reject.
func handlePostReviewCourse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, _ := middleware.GetSessionFromContext(ctx)

	_, err := orchestrators.ExecuteReviewCourse(ctx, orchestrators.ReviewCourseInput{
		CourseID:  r.PathValue("id"),
		Action:    r.PathValue("action"),
		AdminID:   sess.AccountID,
		AdminName: sess.FullName,
	}, orchestrators.ReviewCourseDeps{
		CourseStore: stores.CourseStore,
		AuditStore:  stores.AuditStore,
		GenerateID:  generateID,
		Now:         timeNow,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	if isHTMLRequest(r) {
		http.Redirect(w, r, "/admin/proposals", http.StatusSeeOther)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleCategories handles GET /admin/categories and POST /admin/categories.
func handleCategories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		_, err := orchestrators.ExecuteCreateCategory(ctx, orchestrators.CreateCategoryInput{
			Name: r.FormValue("Name"),
		}, orchestrators.CreateCategoryDeps{
			CategoryStore: stores.CategoryStore,
			GenerateID:    generateID,
			Now:           timeNow,
		})
		if errors.Is(err, orchestrators.ErrCategoryExists) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		if err != nil {
			internalError(w, err)
			return
		}
		http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
		return
	}

	categories, err := stores.CategoryStore.List(ctx)
	if err != nil {
		internalError(w, err)
		return
	}
	if isHTMLRequest(r) {
		renderTemplate(w, r, "admin_categories.html", map[string]any{"Categories": categories})
		return
	}
	writeJSON(w, categories)
}

// handlePostDeleteCategory handles POST /admin/categories/{id}/delete.
func handlePostDeleteCategory(w http.ResponseWriter, r *http.Request) {
	err := orchestrators.ExecuteDeleteCategory(r.Context(), r.PathValue("id"), orchestrators.CreateCategoryDeps{
		CategoryStore: stores.CategoryStore,
		GenerateID:    generateID,
		Now:           timeNow,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
}

// handleAccounts handles GET /admin/accounts (list with filters) and
// POST /admin/accounts (create an instructor account).
func handleAccounts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		form := registerForm{
			Username: r.FormValue("Username"),
			Email:    r.FormValue("Email"),
			FullName: r.FormValue("FullName"),
			Password: r.FormValue("Password"),
		}
		if err := validate.Struct(form); err != nil {
			http.Error(w, "invalid input", http.StatusBadRequest)
			return
		}
		_, err := orchestrators.ExecuteRegisterAccount(ctx, orchestrators.RegisterAccountInput{
			Username: form.Username,
			Email:    form.Email,
			FullName: form.FullName,
			Password: form.Password,
			Role:     accountDomain.RoleInstructor,
		}, orchestrators.RegisterAccountDeps{
			AccountStore: stores.AccountStore,
			GenerateID:   generateID,
			Now:          timeNow,
		})
		if errors.Is(err, accountDomain.ErrUsernameTaken) || errors.Is(err, accountDomain.ErrEmailTaken) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		if err != nil {
			internalError(w, err)
			return
		}
		http.Redirect(w, r, "/admin/accounts", http.StatusSeeOther)
		return
	}

	filter := accountListFilter(r)
	accounts, err := stores.AccountStore.List(ctx, filter)
	if err != nil {
		internalError(w, err)
		return
	}
	if isHTMLRequest(r) {
		renderTemplate(w, r, "admin_accounts.html", map[string]any{
			"Accounts": accounts,
			"Role":     filter.Role,
			"Search":   filter.Search,
		})
		return
	}
	writeJSON(w, accounts)
}

// handleGetSubmissions handles GET /admin/submissions: the review queue.
func handleGetSubmissions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	result, err := projections.QueryGetSubmissions(ctx, projections.GetSubmissionsQuery{
		ProjectStatus: r.URL.Query().Get("status"),
	}, projections.GetSubmissionsDeps{
		EnrollmentStore: stores.InternshipEnrollmentStore,
		AccountStore:    stores.AccountStore,
		InternshipStore: stores.InternshipStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "admin_submissions.html", map[string]any{
			"Submissions": result.Submissions,
		})
		return
	}
	writeJSON(w, result)
}

// handleGetEnrollments handles GET /admin/enrollments: all course
// enrollments across students, newest first.
func handleGetEnrollments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	result, err := projections.QueryGetEnrollments(ctx, projections.GetEnrollmentsQuery{}, projections.GetEnrollmentsDeps{
		EnrollmentStore: stores.EnrollmentStore,
		AccountStore:    stores.AccountStore,
		CourseStore:     stores.CourseStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "admin_enrollments.html", map[string]any{
			"Enrollments": result.Enrollments,
			"Total":       result.Total,
		})
		return
	}
	writeJSON(w, result)
}

// handlePostReviewSubmission handles POST /admin/submission/{enrollment_id}/{action}
// with action approve or reject. Approval issues the certificate.
func handlePostReviewSubmission(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, _ := middleware.GetSessionFromContext(ctx)

	result, err := orchestrators.ExecuteReviewSubmission(ctx, orchestrators.ReviewSubmissionInput{
		EnrollmentID: r.PathValue("enrollment_id"),
		Action:       r.PathValue("action"),
		AdminID:      sess.AccountID,
		AdminName:    sess.FullName,
		IP:           r.RemoteAddr,
	}, orchestrators.ReviewSubmissionDeps{
		EnrollmentStore:       stores.InternshipEnrollmentStore,
		InternshipStore:       stores.InternshipStore,
		AccountStore:          stores.AccountStore,
		NotificationStore:     stores.NotificationStore,
		AuditStore:            stores.AuditStore,
		OutboxStore:           stores.OutboxStore,
		EmailSender:           emailSender,
		EmailFrom:             emailFromAddress,
		EmailReplyTo:          emailReplyTo,
		GenerateID:            generateID,
		GenerateCertificateID: generateCertificateID,
		Now:                   timeNow,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	if isHTMLRequest(r) {
		http.Redirect(w, r, "/admin/submissions", http.StatusSeeOther)
		return
	}
	writeJSON(w, map[string]any{
		"applied":        result.Applied,
		"project_status": result.Enrollment.ProjectStatus,
		"certificate_id": result.Enrollment.CertificateID,
	})
}

// handleAdminAudit handles GET /admin/audit: the audit trail with filters.
func handleAdminAudit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter := auditStore.Filter{}
	if category := r.URL.Query().Get("category"); category != "" {
		cat := auditDomain.Category(category)
		filter.Category = &cat
	}
	if action := r.URL.Query().Get("action"); action != "" {
		act := auditDomain.Action(action)
		filter.Action = &act
	}
	if actorID := r.URL.Query().Get("actor_id"); actorID != "" {
		filter.ActorID = &actorID
	}
	if resourceID := r.URL.Query().Get("resource_id"); resourceID != "" {
		filter.ResourceID = &resourceID
	}
	if fromDate := r.URL.Query().Get("from"); fromDate != "" {
		filter.FromDate = &fromDate
	}
	if toDate := r.URL.Query().Get("to"); toDate != "" {
		filter.ToDate = &toDate
	}

	limit := 100
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 1000 {
			limit = l
		}
	}

	events, err := stores.AuditStore.List(ctx, filter, limit)
	if err != nil {
		internalError(w, err)
		return
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "admin_audit.html", map[string]any{
			"Events": events,
			"Limit":  limit,
		})
		return
	}
	writeJSON(w, events)
}

// handleAdminOutbox handles GET /admin/outbox (list) and
// POST /admin/outbox/{id}/{action} with action retry or abandon.
func handleAdminOutbox(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method == http.MethodGet {
		limit := 50
		if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
			if n, err := strconv.Atoi(limitStr); err == nil && n > 0 && n <= 100 {
				limit = n
			}
		}

		var entries []outboxDomain.Entry
		var err error
		if r.URL.Query().Get("status") == "pending" {
			entries, err = stores.OutboxStore.ListPending(ctx, limit)
		} else {
			entries, err = stores.OutboxStore.ListFailed(ctx, limit)
		}
		if err != nil {
			internalError(w, err)
			return
		}

		if isHTMLRequest(r) {
			renderTemplate(w, r, "admin_outbox.html", map[string]any{"Entries": entries})
			return
		}
		writeJSON(w, entries)
		return
	}

	entryID := r.PathValue("id")
	entry, err := stores.OutboxStore.GetByID(ctx, entryID)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	switch r.PathValue("action") {
	case "retry":
		// Reset to pending so the scheduler picks it up on its next pass
		entry.Status = outboxDomain.StatusPending
		if err := stores.OutboxStore.Save(ctx, entry); err != nil {
			internalError(w, err)
			return
		}
	case "abandon":
		entry.MarkAbandoned()
		if err := stores.OutboxStore.Save(ctx, entry); err != nil {
			internalError(w, err)
			return
		}
	default:
		http.Error(w, "unknown action", http.StatusBadRequest)
		return
	}

	if isHTMLRequest(r) {
		http.Redirect(w, r, "/admin/outbox", http.StatusSeeOther)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAdminPerf handles GET /admin/perf: a JSON snapshot of recent
// request and query timings.
func handleAdminPerf(w http.ResponseWriter, r *http.Request) {
	if perfCollector == nil {
		http.Error(w, "perf collection disabled", http.StatusNotFound)
		return
	}
	minutes := 15
	if v := r.URL.Query().Get("minutes"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 240 {
			minutes = n
		}
	}
	snapshot := perfCollector.Snapshot(timeNow().Add(-time.Duration(minutes)*time.Minute), 20)
	writeJSON(w, snapshot)
}

func accountListFilter(r *http.Request) accountStore.ListFilter {
	return accountStore.ListFilter{
		Limit:  200,
		Role:   r.URL.Query().Get("role"),
		Search: r.URL.Query().Get("q"),
	}
}
