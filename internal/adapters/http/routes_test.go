package web

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"campus/internal/adapters/email"
	"campus/internal/adapters/http/middleware"
	"campus/internal/adapters/media"
	accountStore "campus/internal/adapters/storage/account"
	auditStorePkg "campus/internal/adapters/storage/audit"
	courseStorePkg "campus/internal/adapters/storage/course"
	internshipStorePkg "campus/internal/adapters/storage/internship"
	accountDomain "campus/internal/domain/account"
	auditDomain "campus/internal/domain/audit"
	courseDomain "campus/internal/domain/course"
	enrollmentDomain "campus/internal/domain/enrollment"
	internshipDomain "campus/internal/domain/internship"
	notificationDomain "campus/internal/domain/notification"
	outboxDomain "campus/internal/domain/outbox"
)

func TestMain(m *testing.M) {
	templatesDir = "templates"
	sessions = middleware.NewSessionStore()
	os.Exit(m.Run())
}

// Mock implementations for testing

type mockAccountStore struct {
	accounts map[string]accountDomain.Account
}

func (m *mockAccountStore) GetByID(ctx context.Context, id string) (accountDomain.Account, error) {
	if a, ok := m.accounts[id]; ok {
		return a, nil
	}
	return accountDomain.Account{}, sql.ErrNoRows
}

func (m *mockAccountStore) GetByUsername(ctx context.Context, username string) (accountDomain.Account, error) {
	for _, a := range m.accounts {
		if a.Username == username {
			return a, nil
		}
	}
	return accountDomain.Account{}, sql.ErrNoRows
}

func (m *mockAccountStore) GetByEmail(ctx context.Context, em string) (accountDomain.Account, error) {
	for _, a := range m.accounts {
		if a.Email == em {
			return a, nil
		}
	}
	return accountDomain.Account{}, sql.ErrNoRows
}

func (m *mockAccountStore) Save(ctx context.Context, a accountDomain.Account) error {
	if m.accounts == nil {
		m.accounts = make(map[string]accountDomain.Account)
	}
	m.accounts[a.ID] = a
	return nil
}

func (m *mockAccountStore) Delete(ctx context.Context, id string) error {
	delete(m.accounts, id)
	return nil
}

func (m *mockAccountStore) List(ctx context.Context, filter accountStore.ListFilter) ([]accountDomain.Account, error) {
	var list []accountDomain.Account
	for _, a := range m.accounts {
		if filter.Role != "" && a.Role != filter.Role {
			continue
		}
		list = append(list, a)
	}
	return list, nil
}

func (m *mockAccountStore) Count(ctx context.Context, filter accountStore.ListFilter) (int, error) {
	list, _ := m.List(ctx, filter)
	return len(list), nil
}

type mockInternshipStore struct {
	internships map[string]internshipDomain.Internship
}

func (m *mockInternshipStore) GetByID(ctx context.Context, id string) (internshipDomain.Internship, error) {
	if i, ok := m.internships[id]; ok {
		return i, nil
	}
	return internshipDomain.Internship{}, sql.ErrNoRows
}

func (m *mockInternshipStore) Save(ctx context.Context, i internshipDomain.Internship) error {
	if m.internships == nil {
		m.internships = make(map[string]internshipDomain.Internship)
	}
	m.internships[i.ID] = i
	return nil
}

func (m *mockInternshipStore) Delete(ctx context.Context, id string) error {
	delete(m.internships, id)
	return nil
}

func (m *mockInternshipStore) List(ctx context.Context, filter internshipStorePkg.ListFilter) ([]internshipDomain.Internship, error) {
	var list []internshipDomain.Internship
	for _, i := range m.internships {
		list = append(list, i)
	}
	return list, nil
}

func (m *mockInternshipStore) Count(ctx context.Context) (int, error) {
	return len(m.internships), nil
}

type mockInternEnrollmentStore struct {
	enrollments map[string]internshipDomain.Enrollment
}

func (m *mockInternEnrollmentStore) GetByID(ctx context.Context, id string) (internshipDomain.Enrollment, error) {
	if e, ok := m.enrollments[id]; ok {
		return e, nil
	}
	return internshipDomain.Enrollment{}, sql.ErrNoRows
}

func (m *mockInternEnrollmentStore) GetByStudentAndInternship(ctx context.Context, studentID, internshipID string) (internshipDomain.Enrollment, error) {
	for _, e := range m.enrollments {
		if e.StudentID == studentID && e.InternshipID == internshipID {
			return e, nil
		}
	}
	return internshipDomain.Enrollment{}, sql.ErrNoRows
}

func (m *mockInternEnrollmentStore) GetByCertificateID(ctx context.Context, certificateID string) (internshipDomain.Enrollment, error) {
	for _, e := range m.enrollments {
		if e.CertificateID == certificateID && certificateID != "" {
			return e, nil
		}
	}
	return internshipDomain.Enrollment{}, sql.ErrNoRows
}

func (m *mockInternEnrollmentStore) Save(ctx context.Context, e internshipDomain.Enrollment) error {
	if m.enrollments == nil {
		m.enrollments = make(map[string]internshipDomain.Enrollment)
	}
	m.enrollments[e.ID] = e
	return nil
}

func (m *mockInternEnrollmentStore) Delete(ctx context.Context, id string) error {
	delete(m.enrollments, id)
	return nil
}

func (m *mockInternEnrollmentStore) ListByStudent(ctx context.Context, studentID string) ([]internshipDomain.Enrollment, error) {
	var list []internshipDomain.Enrollment
	for _, e := range m.enrollments {
		if e.StudentID == studentID {
			list = append(list, e)
		}
	}
	return list, nil
}

func (m *mockInternEnrollmentStore) ListByInternship(ctx context.Context, internshipID string) ([]internshipDomain.Enrollment, error) {
	var list []internshipDomain.Enrollment
	for _, e := range m.enrollments {
		if e.InternshipID == internshipID {
			list = append(list, e)
		}
	}
	return list, nil
}

func (m *mockInternEnrollmentStore) ListByProjectStatus(ctx context.Context, projectStatus string) ([]internshipDomain.Enrollment, error) {
	var list []internshipDomain.Enrollment
	for _, e := range m.enrollments {
		if e.ProjectStatus == projectStatus {
			list = append(list, e)
		}
	}
	return list, nil
}

func (m *mockInternEnrollmentStore) Count(ctx context.Context) (int, error) {
	return len(m.enrollments), nil
}

type mockCourseStore struct {
	courses map[string]courseDomain.Course
}

func (m *mockCourseStore) GetByID(ctx context.Context, id string) (courseDomain.Course, error) {
	if c, ok := m.courses[id]; ok {
		return c, nil
	}
	return courseDomain.Course{}, sql.ErrNoRows
}

func (m *mockCourseStore) Save(ctx context.Context, c courseDomain.Course) error {
	if m.courses == nil {
		m.courses = make(map[string]courseDomain.Course)
	}
	m.courses[c.ID] = c
	return nil
}

func (m *mockCourseStore) Delete(ctx context.Context, id string) error {
	delete(m.courses, id)
	return nil
}

func (m *mockCourseStore) List(ctx context.Context, filter courseStorePkg.ListFilter) ([]courseDomain.Course, error) {
	var list []courseDomain.Course
	for _, c := range m.courses {
		list = append(list, c)
	}
	return list, nil
}

func (m *mockCourseStore) Count(ctx context.Context, filter courseStorePkg.ListFilter) (int, error) {
	return len(m.courses), nil
}

type mockCourseEnrollmentStore struct {
	enrollments []enrollmentDomain.Enrollment
}

func (m *mockCourseEnrollmentStore) GetByID(ctx context.Context, id string) (enrollmentDomain.Enrollment, error) {
	for _, e := range m.enrollments {
		if e.ID == id {
			return e, nil
		}
	}
	return enrollmentDomain.Enrollment{}, sql.ErrNoRows
}

func (m *mockCourseEnrollmentStore) GetByStudentAndCourse(ctx context.Context, studentID, courseID string) (enrollmentDomain.Enrollment, error) {
	for _, e := range m.enrollments {
		if e.StudentID == studentID && e.CourseID == courseID {
			return e, nil
		}
	}
	return enrollmentDomain.Enrollment{}, sql.ErrNoRows
}

func (m *mockCourseEnrollmentStore) Save(ctx context.Context, e enrollmentDomain.Enrollment) error {
	m.enrollments = append(m.enrollments, e)
	return nil
}

func (m *mockCourseEnrollmentStore) Delete(ctx context.Context, id string) error {
	for i, e := range m.enrollments {
		if e.ID == id {
			m.enrollments = append(m.enrollments[:i], m.enrollments[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *mockCourseEnrollmentStore) ListByStudent(ctx context.Context, studentID string) ([]enrollmentDomain.Enrollment, error) {
	var list []enrollmentDomain.Enrollment
	for _, e := range m.enrollments {
		if e.StudentID == studentID {
			list = append(list, e)
		}
	}
	return list, nil
}

func (m *mockCourseEnrollmentStore) ListByCourse(ctx context.Context, courseID string) ([]enrollmentDomain.Enrollment, error) {
	var list []enrollmentDomain.Enrollment
	for _, e := range m.enrollments {
		if e.CourseID == courseID {
			list = append(list, e)
		}
	}
	return list, nil
}

func (m *mockCourseEnrollmentStore) ListAll(ctx context.Context, limit int) ([]enrollmentDomain.Enrollment, error) {
	if limit > len(m.enrollments) {
		limit = len(m.enrollments)
	}
	return m.enrollments[:limit], nil
}

func (m *mockCourseEnrollmentStore) Count(ctx context.Context) (int, error) {
	return len(m.enrollments), nil
}

type mockNotificationStore struct {
	notifications map[string]notificationDomain.Notification
}

func (m *mockNotificationStore) GetByID(ctx context.Context, id string) (notificationDomain.Notification, error) {
	if n, ok := m.notifications[id]; ok {
		return n, nil
	}
	return notificationDomain.Notification{}, sql.ErrNoRows
}

func (m *mockNotificationStore) Save(ctx context.Context, n notificationDomain.Notification) error {
	if m.notifications == nil {
		m.notifications = make(map[string]notificationDomain.Notification)
	}
	m.notifications[n.ID] = n
	return nil
}

func (m *mockNotificationStore) Delete(ctx context.Context, id string) error {
	delete(m.notifications, id)
	return nil
}

func (m *mockNotificationStore) ListByStudent(ctx context.Context, studentID string, unreadOnly bool) ([]notificationDomain.Notification, error) {
	var list []notificationDomain.Notification
	for _, n := range m.notifications {
		if n.StudentID != studentID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		list = append(list, n)
	}
	return list, nil
}

func (m *mockNotificationStore) CountUnread(ctx context.Context, studentID string) (int, error) {
	list, _ := m.ListByStudent(ctx, studentID, true)
	return len(list), nil
}

func (m *mockNotificationStore) MarkAllRead(ctx context.Context, studentID string) error {
	for id, n := range m.notifications {
		if n.StudentID == studentID {
			n.IsRead = true
			m.notifications[id] = n
		}
	}
	return nil
}

type mockAuditStore struct {
	events []auditDomain.Event
}

func (m *mockAuditStore) Save(ctx context.Context, event auditDomain.Event) error {
	m.events = append(m.events, event)
	return nil
}

func (m *mockAuditStore) List(ctx context.Context, filter auditStorePkg.Filter, limit int) ([]auditDomain.Event, error) {
	return m.events, nil
}

func (m *mockAuditStore) GetByID(ctx context.Context, id string) (auditDomain.Event, error) {
	for _, e := range m.events {
		if e.ID == id {
			return e, nil
		}
	}
	return auditDomain.Event{}, sql.ErrNoRows
}

type mockOutboxStore struct {
	entries map[string]outboxDomain.Entry
}

func (m *mockOutboxStore) GetByID(ctx context.Context, id string) (outboxDomain.Entry, error) {
	if e, ok := m.entries[id]; ok {
		return e, nil
	}
	return outboxDomain.Entry{}, sql.ErrNoRows
}

func (m *mockOutboxStore) Save(ctx context.Context, e outboxDomain.Entry) error {
	if m.entries == nil {
		m.entries = make(map[string]outboxDomain.Entry)
	}
	m.entries[e.ID] = e
	return nil
}

func (m *mockOutboxStore) ListPending(ctx context.Context, limit int) ([]outboxDomain.Entry, error) {
	var list []outboxDomain.Entry
	for _, e := range m.entries {
		if e.Status == outboxDomain.StatusPending || e.Status == outboxDomain.StatusRetrying {
			list = append(list, e)
		}
	}
	return list, nil
}

func (m *mockOutboxStore) ListFailed(ctx context.Context, limit int) ([]outboxDomain.Entry, error) {
	var list []outboxDomain.Entry
	for _, e := range m.entries {
		if e.Status == outboxDomain.StatusFailed {
			list = append(list, e)
		}
	}
	return list, nil
}

func (m *mockOutboxStore) Delete(ctx context.Context, id string) error {
	delete(m.entries, id)
	return nil
}

// Test helpers

func studentSession() middleware.Session {
	return middleware.Session{
		AccountID: "stu-1",
		Username:  "ana",
		FullName:  "Ana Silva",
		Role:      accountDomain.RoleStudent,
	}
}

func adminSession() middleware.Session {
	return middleware.Session{
		AccountID: "adm-1",
		Username:  "admin",
		FullName:  "Administrator",
		Role:      accountDomain.RoleAdmin,
	}
}

func withSession(req *http.Request, sess middleware.Session) *http.Request {
	return req.WithContext(middleware.ContextWithSession(req.Context(), sess))
}

func internshipTestStores() (*Stores, *mockInternEnrollmentStore) {
	enrollments := &mockInternEnrollmentStore{enrollments: make(map[string]internshipDomain.Enrollment)}
	s := &Stores{
		AccountStore: &mockAccountStore{accounts: map[string]accountDomain.Account{
			"stu-1": {ID: "stu-1", Username: "ana", Email: "ana@example.com", FullName: "Ana Silva", Role: accountDomain.RoleStudent},
			"adm-1": {ID: "adm-1", Username: "admin", Email: "admin@example.com", FullName: "Administrator", Role: accountDomain.RoleAdmin},
		}},
		InternshipStore: &mockInternshipStore{internships: map[string]internshipDomain.Internship{
			"int-1": {ID: "int-1", Title: "Backend Internship", Duration: "3 Months", InstructorID: "ins-1"},
		}},
		InternshipEnrollmentStore: enrollments,
		NotificationStore:         &mockNotificationStore{notifications: make(map[string]notificationDomain.Notification)},
		AuditStore:                &mockAuditStore{},
		OutboxStore:               &mockOutboxStore{entries: make(map[string]outboxDomain.Entry)},
	}
	return s, enrollments
}

// TestInternshipWorkflow drives the whole path a student walks: enroll in an
// internship, submit the project file, get the admin decision, and read the
// resulting certificate.
func TestInternshipWorkflow(t *testing.T) {
	var enrollments *mockInternEnrollmentStore
	stores, enrollments = internshipTestStores()
	SetEmailSender(email.NewNoopSender(), "Campus <noreply@campus.local>", "")

	mediaDir := t.TempDir()
	ms, err := media.NewStore(mediaDir)
	if err != nil {
		t.Fatalf("media store: %v", err)
	}
	SetMediaStore(ms)

	// Step 1: student enrolls
	req := httptest.NewRequest("POST", "/student/enroll_internship/int-1", nil)
	req.SetPathValue("id", "int-1")
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()
	handlePostEnrollInternship(rec, withSession(req, studentSession()))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("enroll: got status %d, body %s", rec.Code, rec.Body.String())
	}
	enrollment, err := enrollments.GetByStudentAndInternship(context.Background(), "stu-1", "int-1")
	if err != nil {
		t.Fatalf("enrollment not created: %v", err)
	}
	if enrollment.Status != internshipDomain.StatusActive {
		t.Errorf("got status %q, want %q", enrollment.Status, internshipDomain.StatusActive)
	}
	if enrollment.ProjectStatus != internshipDomain.ProjectPending {
		t.Errorf("got project status %q, want %q", enrollment.ProjectStatus, internshipDomain.ProjectPending)
	}

	// Enrolling again must not create a second row
	req = httptest.NewRequest("POST", "/student/enroll_internship/int-1", nil)
	req.SetPathValue("id", "int-1")
	rec = httptest.NewRecorder()
	handlePostEnrollInternship(rec, withSession(req, studentSession()))
	var enrollResp struct {
		EnrollmentID    string `json:"enrollment_id"`
		AlreadyEnrolled bool   `json:"already_enrolled"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &enrollResp); err != nil {
		t.Fatalf("decode enroll response: %v", err)
	}
	if !enrollResp.AlreadyEnrolled {
		t.Error("expected already_enrolled on repeat enrollment")
	}
	if n, _ := enrollments.Count(context.Background()); n != 1 {
		t.Errorf("expected 1 enrollment, got %d", n)
	}

	// Step 2: student submits the project file
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("ProjectFile", "project.zip")
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	if _, err := part.Write([]byte("archive bytes")); err != nil {
		t.Fatalf("write file: %v", err)
	}
	mw.Close()

	req = httptest.NewRequest("POST", "/student/my_internship/int-1/submit", &body)
	req.SetPathValue("id", "int-1")
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "text/html")
	rec = httptest.NewRecorder()
	handlePostSubmitProject(rec, withSession(req, studentSession()))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("submit: got status %d, body %s", rec.Code, rec.Body.String())
	}
	enrollment, _ = enrollments.GetByID(context.Background(), enrollment.ID)
	if enrollment.ProjectStatus != internshipDomain.ProjectSubmitted {
		t.Errorf("got project status %q, want %q", enrollment.ProjectStatus, internshipDomain.ProjectSubmitted)
	}
	if enrollment.ProjectSubmission == "" {
		t.Error("expected a stored project file reference")
	}

	// Step 3: admin approves the submission
	req = httptest.NewRequest("POST", "/admin/submission/"+enrollment.ID+"/approve", nil)
	req.SetPathValue("enrollment_id", enrollment.ID)
	req.SetPathValue("action", "approve")
	rec = httptest.NewRecorder()
	handlePostReviewSubmission(rec, withSession(req, adminSession()))

	if rec.Code != http.StatusOK {
		t.Fatalf("approve: got status %d, body %s", rec.Code, rec.Body.String())
	}
	enrollment, _ = enrollments.GetByID(context.Background(), enrollment.ID)
	if enrollment.ProjectStatus != internshipDomain.ProjectApproved {
		t.Errorf("got project status %q, want %q", enrollment.ProjectStatus, internshipDomain.ProjectApproved)
	}
	if enrollment.Status != internshipDomain.StatusCompleted {
		t.Errorf("got status %q, want %q", enrollment.Status, internshipDomain.StatusCompleted)
	}
	if enrollment.CertificateID == "" {
		t.Fatal("expected a certificate ID after approval")
	}
	if notices, _ := stores.NotificationStore.ListByStudent(context.Background(), "stu-1", true); len(notices) != 1 {
		t.Errorf("expected 1 unread notification, got %d", len(notices))
	}

	// Step 4: student views the certificate
	req = httptest.NewRequest("GET", "/student/internship_certificate/"+enrollment.ID, nil)
	req.SetPathValue("enrollment_id", enrollment.ID)
	req.Header.Set("Accept", "text/html")
	rec = httptest.NewRecorder()
	handleGetInternshipCertificate(rec, withSession(req, studentSession()))

	if rec.Code != http.StatusOK {
		t.Fatalf("certificate: got status %d, body %s", rec.Code, rec.Body.String())
	}
	page := rec.Body.String()
	if !strings.Contains(page, "Certificate of Completion") {
		t.Error("certificate page missing heading")
	}
	if !strings.Contains(page, "Ana Silva") {
		t.Error("certificate page missing student name")
	}
	if !strings.Contains(page, enrollment.CertificateID) {
		t.Error("certificate page missing certificate ID")
	}
}

// TestReviewSubmissionUnknownAction checks that an unrecognized decision
// leaves the enrollment untouched.
func TestReviewSubmissionUnknownAction(t *testing.T) {
	var enrollments *mockInternEnrollmentStore
	stores, enrollments = internshipTestStores()
	SetEmailSender(email.NewNoopSender(), "Campus <noreply@campus.local>", "")

	e := internshipDomain.NewEnrollment("enr-1", "stu-1", "int-1", timeNow())
	_ = e.SubmitProject("upload.zip")
	if err := enrollments.Save(context.Background(), e); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("POST", "/admin/submission/enr-1/escalate", nil)
	req.SetPathValue("enrollment_id", "enr-1")
	req.SetPathValue("action", "escalate")
	rec := httptest.NewRecorder()
	handlePostReviewSubmission(rec, withSession(req, adminSession()))

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Applied bool `json:"applied"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Applied {
		t.Error("unknown action must not be applied")
	}
	got, _ := enrollments.GetByID(context.Background(), "enr-1")
	if got.ProjectStatus != internshipDomain.ProjectSubmitted {
		t.Errorf("got project status %q, want %q", got.ProjectStatus, internshipDomain.ProjectSubmitted)
	}
}

// TestVerifyCertificateRoute checks the public verification endpoint.
func TestVerifyCertificateRoute(t *testing.T) {
	var enrollments *mockInternEnrollmentStore
	stores, enrollments = internshipTestStores()

	e := internshipDomain.NewEnrollment("enr-1", "stu-1", "int-1", timeNow())
	_ = e.SubmitProject("upload.zip")
	_ = e.Approve("CERT-ABCD", timeNow())
	if err := enrollments.Save(context.Background(), e); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("GET", "/certificate/verify?id=CERT-ABCD", nil)
	rec := httptest.NewRecorder()
	handleVerifyCertificate(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d", rec.Code)
	}
	var resp struct {
		StudentName     string
		InternshipTitle string
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.StudentName != "Ana Silva" || resp.InternshipTitle != "Backend Internship" {
		t.Errorf("unexpected verification payload: %+v", resp)
	}

	req = httptest.NewRequest("GET", "/certificate/verify?id=NOPE", nil)
	rec = httptest.NewRecorder()
	handleVerifyCertificate(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown certificate: got status %d, want 404", rec.Code)
	}
}

// TestPostRegister checks student self-registration.
func TestPostRegister(t *testing.T) {
	tests := []struct {
		name       string
		formData   url.Values
		wantStatus int
	}{
		{
			name: "valid registration",
			formData: url.Values{
				"Username": []string{"ben"},
				"Email":    []string{"ben@example.com"},
				"FullName": []string{"Ben Ortiz"},
				"Password": []string{"long enough pw"},
			},
			wantStatus: http.StatusSeeOther,
		},
		{
			name: "short password",
			formData: url.Values{
				"Username": []string{"ben"},
				"Email":    []string{"ben@example.com"},
				"FullName": []string{"Ben Ortiz"},
				"Password": []string{"short"},
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "duplicate username",
			formData: url.Values{
				"Username": []string{"ana"},
				"Email":    []string{"other@example.com"},
				"FullName": []string{"Other Ana"},
				"Password": []string{"long enough pw"},
			},
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stores, _ = internshipTestStores()

			req := httptest.NewRequest("POST", "/register", strings.NewReader(tt.formData.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			rec := httptest.NewRecorder()
			handlePostRegister(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("got status %d, want %d. Body: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

// flashCookie returns the flash cookie set on the response, if any.
func flashCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == "campus_flash" && c.Value != "" {
			return c
		}
	}
	return nil
}

// TestSubmitProjectWithoutEnrollment checks that a browser submission from a
// student with no enrollment is sent back to the internship list with a
// message, while API clients keep the 403.
func TestSubmitProjectWithoutEnrollment(t *testing.T) {
	stores, _ = internshipTestStores()
	ms, err := media.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("media store: %v", err)
	}
	SetMediaStore(ms)

	submit := func(accept string) *httptest.ResponseRecorder {
		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		part, err := mw.CreateFormFile("ProjectFile", "project.zip")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		if _, err := part.Write([]byte("archive bytes")); err != nil {
			t.Fatalf("write file: %v", err)
		}
		mw.Close()

		req := httptest.NewRequest("POST", "/student/my_internship/int-1/submit", &body)
		req.SetPathValue("id", "int-1")
		req.Header.Set("Content-Type", mw.FormDataContentType())
		if accept != "" {
			req.Header.Set("Accept", accept)
		}
		rec := httptest.NewRecorder()
		handlePostSubmitProject(rec, withSession(req, studentSession()))
		return rec
	}

	rec := submit("text/html")
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("got status %d, want 303. Body: %s", rec.Code, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != "/internships" {
		t.Errorf("redirect location = %q, want /internships", loc)
	}
	if flashCookie(rec) == nil {
		t.Error("expected a flash message on the redirect")
	}

	rec = submit("")
	if rec.Code != http.StatusForbidden {
		t.Errorf("API client: got status %d, want 403", rec.Code)
	}
}

// TestCertificateBeforeApproval checks that asking for a certificate while
// the project is still under review redirects back to the workspace with a
// message instead of hard-failing.
func TestCertificateBeforeApproval(t *testing.T) {
	var enrollments *mockInternEnrollmentStore
	stores, enrollments = internshipTestStores()

	e := internshipDomain.NewEnrollment("enr-1", "stu-1", "int-1", timeNow())
	_ = e.SubmitProject("upload.zip")
	if err := enrollments.Save(context.Background(), e); err != nil {
		t.Fatal(err)
	}

	get := func(enrollmentID, accept string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("GET", "/student/internship_certificate/"+enrollmentID, nil)
		req.SetPathValue("enrollment_id", enrollmentID)
		if accept != "" {
			req.Header.Set("Accept", accept)
		}
		rec := httptest.NewRecorder()
		handleGetInternshipCertificate(rec, withSession(req, studentSession()))
		return rec
	}

	rec := get("enr-1", "text/html")
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("got status %d, want 303. Body: %s", rec.Code, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != "/student/my_internship/int-1" {
		t.Errorf("redirect location = %q, want /student/my_internship/int-1", loc)
	}
	if flashCookie(rec) == nil {
		t.Error("expected a flash message on the redirect")
	}

	// API clients keep the explicit refusal
	rec = get("enr-1", "")
	if rec.Code != http.StatusForbidden {
		t.Errorf("API client: got status %d, want 403", rec.Code)
	}

	// Someone else's enrollment never reveals the workspace location
	other := internshipDomain.NewEnrollment("enr-2", "stu-2", "int-1", timeNow())
	if err := enrollments.Save(context.Background(), other); err != nil {
		t.Fatal(err)
	}
	rec = get("enr-2", "text/html")
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("got status %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/internships" {
		t.Errorf("redirect location = %q, want /internships", loc)
	}
}

// TestFlashMessageRendered checks that a queued message shows up once on the
// next page and is cleared.
func TestFlashMessageRendered(t *testing.T) {
	stores, _ = internshipTestStores()

	req := httptest.NewRequest("GET", "/internships", nil)
	req.Header.Set("Accept", "text/html")
	req.AddCookie(&http.Cookie{Name: "campus_flash", Value: url.QueryEscape("Please log in to continue.")})
	rec := httptest.NewRecorder()
	handleGetInternships(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d. Body: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Please log in to continue.") {
		t.Error("flash message missing from the rendered page")
	}
	cleared := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == "campus_flash" && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("flash cookie should be cleared after rendering")
	}
}

// TestAdminEnrollmentsPage checks the admin overview of course enrollments.
func TestAdminEnrollmentsPage(t *testing.T) {
	s, _ := internshipTestStores()
	s.CourseStore = &mockCourseStore{courses: map[string]courseDomain.Course{
		"c-1": {ID: "c-1", Title: "Go Basics", Status: courseDomain.StatusApproved},
	}}
	s.EnrollmentStore = &mockCourseEnrollmentStore{enrollments: []enrollmentDomain.Enrollment{
		{ID: "ce-1", StudentID: "stu-1", CourseID: "c-1", Status: enrollmentDomain.StatusActive, Progress: 50, CreatedAt: timeNow()},
	}}
	stores = s

	req := httptest.NewRequest("GET", "/admin/enrollments", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()
	handleGetEnrollments(rec, withSession(req, adminSession()))

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d. Body: %s", rec.Code, rec.Body.String())
	}
	page := rec.Body.String()
	if !strings.Contains(page, "Ana Silva") {
		t.Error("page missing student name")
	}
	if !strings.Contains(page, "Go Basics") {
		t.Error("page missing course title")
	}

	req = httptest.NewRequest("GET", "/admin/enrollments", nil)
	rec = httptest.NewRecorder()
	handleGetEnrollments(rec, withSession(req, adminSession()))
	var resp struct {
		Total int
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Total != 1 {
		t.Errorf("total = %d, want 1", resp.Total)
	}
}
