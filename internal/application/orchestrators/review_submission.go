package orchestrators

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"campus/internal/adapters/email"
	auditStore "campus/internal/adapters/storage/audit"
	outboxStore "campus/internal/adapters/storage/outbox"
	"campus/internal/domain/account"
	"campus/internal/domain/audit"
	"campus/internal/domain/internship"
	"campus/internal/domain/notification"
	"campus/internal/domain/outbox"
)

// Review actions accepted from the admin surface. Anything else is ignored.
const (
	ReviewActionApprove = "approve"
	ReviewActionReject  = "reject"
)

// AccountStoreForReview defines the account lookup needed by review.
type AccountStoreForReview interface {
	GetByID(ctx context.Context, id string) (account.Account, error)
}

// NotificationStoreForReview records the decision notice for the student.
type NotificationStoreForReview interface {
	Save(ctx context.Context, n notification.Notification) error
}

// ReviewSubmissionInput carries an admin's decision on a submitted project.
type ReviewSubmissionInput struct {
	EnrollmentID string
	Action       string
	AdminID      string
	AdminName    string
	IP           string
}

// ReviewSubmissionResult reports the outcome of the review.
type ReviewSubmissionResult struct {
	Enrollment internship.Enrollment
	Applied    bool // false when the action was unrecognized and ignored
}

// ReviewSubmissionDeps holds dependencies for submission review.
type ReviewSubmissionDeps struct {
	EnrollmentStore       InternshipEnrollmentStore
	InternshipStore       InternshipStoreForEnroll
	AccountStore          AccountStoreForReview
	NotificationStore     NotificationStoreForReview
	AuditStore            auditStore.Store
	OutboxStore           outboxStore.Store
	EmailSender           email.Sender
	EmailFrom             string
	EmailReplyTo          string
	GenerateID            func() string
	GenerateCertificateID func() string
	Now                   func() time.Time
}

// reviewEmailPayload is the outbox replay payload for decision emails.
type reviewEmailPayload struct {
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// ExecuteReviewSubmission applies an admin decision to a submitted project.
//
// Approval marks the project Approved, completes the enrollment, and issues
// the certificate. Rejection only flips the project status; the enrollment
// stays Active so the student can resubmit. An unrecognized action changes
// nothing and is reported as not applied.
//
// The decision is audited and the student is notified in-app. A decision
// email is attempted inline; on failure it is queued in the outbox for the
// retry worker, never failing the review itself.
// PRE: caller is an admin; the enrollment has a submission
// POST: Enrollment state reflects the decision
func ExecuteReviewSubmission(ctx context.Context, input ReviewSubmissionInput, deps ReviewSubmissionDeps) (ReviewSubmissionResult, error) {
	e, err := deps.EnrollmentStore.GetByID(ctx, input.EnrollmentID)
	if err != nil {
		return ReviewSubmissionResult{}, fmt.Errorf("load enrollment: %w", err)
	}

	var (
		action  audit.Action
		message string
	)
	now := deps.Now()
	switch input.Action {
	case ReviewActionApprove:
		if err := e.Approve(deps.GenerateCertificateID(), now); err != nil {
			return ReviewSubmissionResult{}, err
		}
		action = audit.ActionApprove
		message = "Your internship project has been approved. Your certificate is ready."
	case ReviewActionReject:
		if err := e.Reject(); err != nil {
			return ReviewSubmissionResult{}, err
		}
		action = audit.ActionReject
		message = "Your internship project has been rejected. Please revise and resubmit."
	default:
		slog.Info("internship_event", "event", "review_ignored", "enrollment_id", e.ID, "action", input.Action)
		return ReviewSubmissionResult{Enrollment: e}, nil
	}

	if err := deps.EnrollmentStore.Save(ctx, e); err != nil {
		return ReviewSubmissionResult{}, fmt.Errorf("save enrollment: %w", err)
	}

	event := audit.NewEvent(deps.GenerateID(), now, input.AdminID, input.AdminName, account.RoleAdmin,
		audit.CategoryInternship, action).
		WithResource("internship_enrollment", e.ID).
		WithDescription(fmt.Sprintf("project %s for student %s", e.ProjectStatus, e.StudentID)).
		WithIP(input.IP)
	if err := deps.AuditStore.Save(ctx, event); err != nil {
		slog.Error("audit_save_failed", "error", err.Error(), "enrollment_id", e.ID)
	}

	n := notification.Notification{
		ID:        deps.GenerateID(),
		StudentID: e.StudentID,
		Message:   message,
		CreatedAt: now,
	}
	if err := deps.NotificationStore.Save(ctx, n); err != nil {
		slog.Error("notification_save_failed", "error", err.Error(), "student_id", e.StudentID)
	}

	deps.sendDecisionEmail(ctx, e, message, now)

	slog.Info("internship_event", "event", "submission_reviewed", "enrollment_id", e.ID,
		"action", input.Action, "project_status", e.ProjectStatus)
	return ReviewSubmissionResult{Enrollment: e, Applied: true}, nil
}

// sendDecisionEmail delivers the decision email inline, falling back to the
// outbox when the provider is unreachable.
func (deps ReviewSubmissionDeps) sendDecisionEmail(ctx context.Context, e internship.Enrollment, message string, now time.Time) {
	if deps.EmailSender == nil {
		return
	}

	student, err := deps.AccountStore.GetByID(ctx, e.StudentID)
	if err != nil || student.Email == "" {
		slog.Warn("decision_email_skipped", "enrollment_id", e.ID, "reason", "no_address")
		return
	}

	subject := "Internship project update"
	html := fmt.Sprintf("<p>Hi %s,</p><p>%s</p>", student.DisplayName(), message)
	req := email.SendRequest{
		To:      []string{student.Email},
		From:    deps.EmailFrom,
		ReplyTo: deps.EmailReplyTo,
		Subject: subject,
		HTML:    html,
	}

	if _, err := deps.EmailSender.Send(ctx, req); err == nil {
		return
	}

	payload, err := json.Marshal(reviewEmailPayload{To: req.To, Subject: subject, HTML: html})
	if err != nil {
		slog.Error("decision_email_payload_failed", "error", err.Error(), "enrollment_id", e.ID)
		return
	}
	entry := outbox.Entry{
		ID:          deps.GenerateID(),
		ActionType:  outbox.ActionTypeEmail,
		Payload:     string(payload),
		Status:      outbox.StatusPending,
		MaxAttempts: 5,
		CreatedAt:   now,
	}
	if err := deps.OutboxStore.Save(ctx, entry); err != nil {
		slog.Error("decision_email_outbox_failed", "error", err.Error(), "enrollment_id", e.ID)
		return
	}
	slog.Warn("decision_email_queued", "enrollment_id", e.ID, "outbox_id", entry.ID)
}
