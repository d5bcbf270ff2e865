package orchestrators

import (
	"context"
	"errors"
	"strings"
	"testing"

	"campus/internal/domain/account"
	"campus/internal/domain/internship"
	"campus/internal/domain/outbox"
)

func fixedCertID() string { return "ABCD1234-0000-0000-0000-000000000000" }

func reviewDeps(enrollments *mockInternshipEnrollmentStore) (ReviewSubmissionDeps, *mockNotificationStore, *mockAuditStore, *mockOutboxStore, *mockSender) {
	notifications := &mockNotificationStore{}
	audits := &mockAuditStore{}
	outboxStore := newMockOutboxStore()
	sender := &mockSender{}
	deps := ReviewSubmissionDeps{
		EnrollmentStore:       enrollments,
		InternshipStore:       newMockInternshipStore(internship.Internship{ID: "int-1", Title: "Backend Internship"}),
		AccountStore:          newMockAccountStore(account.Account{ID: "stu-1", Username: "ada", Email: "ada@example.com", FullName: "Ada Lovelace", Role: account.RoleStudent}),
		NotificationStore:     notifications,
		AuditStore:            audits,
		OutboxStore:           outboxStore,
		EmailSender:           sender,
		EmailFrom:             "Campus <noreply@campus.example>",
		EmailReplyTo:          "support@campus.example",
		GenerateID:            seqID(),
		GenerateCertificateID: fixedCertID,
		Now:                   fixedNow,
	}
	return deps, notifications, audits, outboxStore, sender
}

func submittedEnrollment(store *mockInternshipEnrollmentStore) internship.Enrollment {
	e := seedEnrollment(store, "e1", "stu-1", "int-1")
	if err := e.SubmitProject("proj_sub_abcd1234_report.pdf"); err != nil {
		panic(err)
	}
	store.enrollments["e1"] = e
	return e
}

func TestExecuteReviewSubmission_Approve(t *testing.T) {
	enrollments := newMockInternshipEnrollmentStore()
	submittedEnrollment(enrollments)
	deps, notifications, audits, _, sender := reviewDeps(enrollments)

	result, err := ExecuteReviewSubmission(context.Background(), ReviewSubmissionInput{
		EnrollmentID: "e1",
		Action:       ReviewActionApprove,
		AdminID:      "adm-1",
		AdminName:    "admin",
	}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Applied {
		t.Error("approve should be applied")
	}
	e := result.Enrollment
	if e.ProjectStatus != internship.ProjectApproved {
		t.Errorf("project status = %q, want Approved", e.ProjectStatus)
	}
	if e.Status != internship.StatusCompleted {
		t.Errorf("status = %q, want Completed", e.Status)
	}
	if e.CertificateID != fixedCertID() {
		t.Errorf("certificate = %q, want %q", e.CertificateID, fixedCertID())
	}
	if !e.CompletedAt.Equal(fixedTime) {
		t.Errorf("completed_at = %v, want %v", e.CompletedAt, fixedTime)
	}

	if len(notifications.saved) != 1 {
		t.Fatalf("notifications = %d, want 1", len(notifications.saved))
	}
	if notifications.saved[0].StudentID != "stu-1" {
		t.Errorf("notification student = %q", notifications.saved[0].StudentID)
	}
	if len(audits.events) != 1 {
		t.Fatalf("audit events = %d, want 1", len(audits.events))
	}
	if audits.events[0].Action != "approve" {
		t.Errorf("audit action = %q, want approve", audits.events[0].Action)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("emails sent = %d, want 1", len(sender.sent))
	}
	if sender.sent[0].To[0] != "ada@example.com" {
		t.Errorf("email to = %q", sender.sent[0].To[0])
	}
	if sender.sent[0].ReplyTo != "support@campus.example" {
		t.Errorf("email reply-to = %q, want support@campus.example", sender.sent[0].ReplyTo)
	}
}

func TestExecuteReviewSubmission_Reject(t *testing.T) {
	enrollments := newMockInternshipEnrollmentStore()
	submittedEnrollment(enrollments)
	deps, notifications, _, _, _ := reviewDeps(enrollments)

	result, err := ExecuteReviewSubmission(context.Background(), ReviewSubmissionInput{
		EnrollmentID: "e1",
		Action:       ReviewActionReject,
		AdminID:      "adm-1",
		AdminName:    "admin",
	}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	e := result.Enrollment
	if e.ProjectStatus != internship.ProjectRejected {
		t.Errorf("project status = %q, want Rejected", e.ProjectStatus)
	}
	if e.Status != internship.StatusActive {
		t.Errorf("status = %q, want Active after rejection", e.Status)
	}
	if e.CertificateID != "" {
		t.Errorf("certificate should stay empty, got %q", e.CertificateID)
	}
	if !e.CompletedAt.IsZero() {
		t.Error("completed_at should stay zero after rejection")
	}
	if len(notifications.saved) != 1 {
		t.Fatalf("notifications = %d, want 1", len(notifications.saved))
	}
	if !strings.Contains(notifications.saved[0].Message, "rejected") {
		t.Errorf("notification message = %q", notifications.saved[0].Message)
	}
}

func TestExecuteReviewSubmission_UnknownActionIsNoOp(t *testing.T) {
	enrollments := newMockInternshipEnrollmentStore()
	before := submittedEnrollment(enrollments)
	deps, notifications, audits, _, sender := reviewDeps(enrollments)

	result, err := ExecuteReviewSubmission(context.Background(), ReviewSubmissionInput{
		EnrollmentID: "e1",
		Action:       "escalate",
		AdminID:      "adm-1",
	}, deps)
	if err != nil {
		t.Fatalf("unknown action should not error: %v", err)
	}
	if result.Applied {
		t.Error("unknown action should not be applied")
	}
	after := enrollments.enrollments["e1"]
	if after.ProjectStatus != before.ProjectStatus {
		t.Errorf("project status changed to %q", after.ProjectStatus)
	}
	if len(notifications.saved) != 0 || len(audits.events) != 0 || len(sender.sent) != 0 {
		t.Error("unknown action should produce no side effects")
	}
}

func TestExecuteReviewSubmission_ApproveWithoutSubmission(t *testing.T) {
	enrollments := newMockInternshipEnrollmentStore()
	seedEnrollment(enrollments, "e1", "stu-1", "int-1")
	deps, _, _, _, _ := reviewDeps(enrollments)

	_, err := ExecuteReviewSubmission(context.Background(), ReviewSubmissionInput{
		EnrollmentID: "e1",
		Action:       ReviewActionApprove,
		AdminID:      "adm-1",
	}, deps)
	if err != internship.ErrNothingToReview {
		t.Fatalf("err = %v, want ErrNothingToReview", err)
	}
}

func TestExecuteReviewSubmission_EmailFailureQueuesOutbox(t *testing.T) {
	enrollments := newMockInternshipEnrollmentStore()
	submittedEnrollment(enrollments)
	deps, _, _, outboxEntries, sender := reviewDeps(enrollments)
	sender.sendErr = errors.New("provider down")

	result, err := ExecuteReviewSubmission(context.Background(), ReviewSubmissionInput{
		EnrollmentID: "e1",
		Action:       ReviewActionApprove,
		AdminID:      "adm-1",
	}, deps)
	if err != nil {
		t.Fatalf("email failure must not fail the review: %v", err)
	}
	if result.Enrollment.ProjectStatus != internship.ProjectApproved {
		t.Errorf("project status = %q, want Approved", result.Enrollment.ProjectStatus)
	}
	if len(outboxEntries.entries) != 1 {
		t.Fatalf("outbox entries = %d, want 1", len(outboxEntries.entries))
	}
	for _, entry := range outboxEntries.entries {
		if entry.ActionType != outbox.ActionTypeEmail {
			t.Errorf("action type = %q, want email", entry.ActionType)
		}
		if entry.Status != outbox.StatusPending {
			t.Errorf("status = %q, want pending", entry.Status)
		}
		if !strings.Contains(entry.Payload, "ada@example.com") {
			t.Errorf("payload = %q, should carry recipient", entry.Payload)
		}
	}
}
