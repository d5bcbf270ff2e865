package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"time"

	"campus/internal/adapters/email"
	auditStore "campus/internal/adapters/storage/audit"
	"campus/internal/domain/account"
	"campus/internal/domain/audit"
	"campus/internal/domain/internship"
	"campus/internal/domain/notification"
	"campus/internal/domain/outbox"
	"campus/internal/domain/quiz"
)

var fixedTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return fixedTime }

// seqID returns a generator producing id-1, id-2, ...
func seqID() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

var errNotFound = errors.New("not found")

// mockInternshipEnrollmentStore implements InternshipEnrollmentStore in memory.
type mockInternshipEnrollmentStore struct {
	enrollments map[string]internship.Enrollment
	saveErr     error
}

func newMockInternshipEnrollmentStore() *mockInternshipEnrollmentStore {
	return &mockInternshipEnrollmentStore{enrollments: make(map[string]internship.Enrollment)}
}

func (m *mockInternshipEnrollmentStore) GetByID(_ context.Context, id string) (internship.Enrollment, error) {
	e, ok := m.enrollments[id]
	if !ok {
		return internship.Enrollment{}, errNotFound
	}
	return e, nil
}

func (m *mockInternshipEnrollmentStore) GetByStudentAndInternship(_ context.Context, studentID, internshipID string) (internship.Enrollment, error) {
	for _, e := range m.enrollments {
		if e.StudentID == studentID && e.InternshipID == internshipID {
			return e, nil
		}
	}
	return internship.Enrollment{}, errNotFound
}

func (m *mockInternshipEnrollmentStore) Save(_ context.Context, e internship.Enrollment) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.enrollments[e.ID] = e
	return nil
}

// mockInternshipStore implements the internship lookups used by the workflow.
type mockInternshipStore struct {
	internships map[string]internship.Internship
}

func newMockInternshipStore(items ...internship.Internship) *mockInternshipStore {
	m := &mockInternshipStore{internships: make(map[string]internship.Internship)}
	for _, i := range items {
		m.internships[i.ID] = i
	}
	return m
}

func (m *mockInternshipStore) GetByID(_ context.Context, id string) (internship.Internship, error) {
	i, ok := m.internships[id]
	if !ok {
		return internship.Internship{}, errNotFound
	}
	return i, nil
}

// mockAccountStore implements account lookups in memory.
type mockAccountStore struct {
	accounts map[string]account.Account
}

func newMockAccountStore(items ...account.Account) *mockAccountStore {
	m := &mockAccountStore{accounts: make(map[string]account.Account)}
	for _, a := range items {
		m.accounts[a.ID] = a
	}
	return m
}

func (m *mockAccountStore) GetByID(_ context.Context, id string) (account.Account, error) {
	a, ok := m.accounts[id]
	if !ok {
		return account.Account{}, errNotFound
	}
	return a, nil
}

func (m *mockAccountStore) GetByUsername(_ context.Context, username string) (account.Account, error) {
	for _, a := range m.accounts {
		if a.Username == username {
			return a, nil
		}
	}
	return account.Account{}, errNotFound
}

func (m *mockAccountStore) GetByEmail(_ context.Context, email string) (account.Account, error) {
	for _, a := range m.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return account.Account{}, errNotFound
}

func (m *mockAccountStore) Save(_ context.Context, a account.Account) error {
	m.accounts[a.ID] = a
	return nil
}

// mockNotificationStore records saved notifications.
type mockNotificationStore struct {
	saved []notification.Notification
}

func (m *mockNotificationStore) Save(_ context.Context, n notification.Notification) error {
	m.saved = append(m.saved, n)
	return nil
}

// mockAuditStore records saved audit events.
type mockAuditStore struct {
	events []audit.Event
}

func (m *mockAuditStore) Save(_ context.Context, e audit.Event) error {
	m.events = append(m.events, e)
	return nil
}

func (m *mockAuditStore) List(_ context.Context, _ auditStore.Filter, _ int) ([]audit.Event, error) {
	return m.events, nil
}

func (m *mockAuditStore) GetByID(_ context.Context, id string) (audit.Event, error) {
	for _, e := range m.events {
		if e.ID == id {
			return e, nil
		}
	}
	return audit.Event{}, errNotFound
}

// mockOutboxStore implements the outbox store in memory.
type mockOutboxStore struct {
	entries map[string]outbox.Entry
}

func newMockOutboxStore() *mockOutboxStore {
	return &mockOutboxStore{entries: make(map[string]outbox.Entry)}
}

func (m *mockOutboxStore) GetByID(_ context.Context, id string) (outbox.Entry, error) {
	e, ok := m.entries[id]
	if !ok {
		return outbox.Entry{}, errNotFound
	}
	return e, nil
}

func (m *mockOutboxStore) Save(_ context.Context, e outbox.Entry) error {
	m.entries[e.ID] = e
	return nil
}

func (m *mockOutboxStore) ListPending(_ context.Context, limit int) ([]outbox.Entry, error) {
	var out []outbox.Entry
	for _, e := range m.entries {
		if e.Status == outbox.StatusPending || e.Status == outbox.StatusRetrying {
			out = append(out, e)
		}
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (m *mockOutboxStore) ListFailed(_ context.Context, limit int) ([]outbox.Entry, error) {
	var out []outbox.Entry
	for _, e := range m.entries {
		if e.Status == outbox.StatusFailed && e.Attempts >= e.MaxAttempts {
			out = append(out, e)
		}
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (m *mockOutboxStore) Delete(_ context.Context, id string) error {
	delete(m.entries, id)
	return nil
}

// mockSender implements email.Sender with a configurable failure.
type mockSender struct {
	sent    []email.SendRequest
	sendErr error
}

func (m *mockSender) Send(_ context.Context, req email.SendRequest) (email.SendResult, error) {
	if m.sendErr != nil {
		return email.SendResult{}, m.sendErr
	}
	m.sent = append(m.sent, req)
	return email.SendResult{MessageID: "msg-1", SentAt: fixedTime}, nil
}

// mockQuizStore implements course quiz lookups.
type mockQuizStore struct {
	quizzes map[string]quiz.Quiz
}

func (m *mockQuizStore) GetByID(_ context.Context, id string) (quiz.Quiz, error) {
	q, ok := m.quizzes[id]
	if !ok {
		return quiz.Quiz{}, errNotFound
	}
	return q, nil
}

// mockResultStore records graded attempts.
type mockResultStore struct {
	saved []quiz.Result
}

func (m *mockResultStore) Save(_ context.Context, r quiz.Result) error {
	m.saved = append(m.saved, r)
	return nil
}

// mockInternshipQuizStore implements internship quiz lookups.
type mockInternshipQuizStore struct {
	quizzes map[string]internship.Quiz
}

func (m *mockInternshipQuizStore) GetByID(_ context.Context, id string) (internship.Quiz, error) {
	q, ok := m.quizzes[id]
	if !ok {
		return internship.Quiz{}, errNotFound
	}
	return q, nil
}
