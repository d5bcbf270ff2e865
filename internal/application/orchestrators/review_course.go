package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	auditStore "campus/internal/adapters/storage/audit"
	"campus/internal/domain/audit"
	"campus/internal/domain/course"
)

// ReviewCourseInput carries an admin's decision on a proposed course.
type ReviewCourseInput struct {
	CourseID  string
	Action    string // "approve" or "reject"
	AdminID   string
	AdminName string
}

// ReviewCourseDeps holds dependencies for course review.
type ReviewCourseDeps struct {
	CourseStore CourseStoreForCreate
	AuditStore  auditStore.Store
	GenerateID  func() string
	Now         func() time.Time
}

// ExecuteReviewCourse applies an admin decision to a proposed course. An
// unrecognized action leaves the course untouched.
// PRE: caller is an admin
// POST: Course status reflects the decision; the decision is audited
func ExecuteReviewCourse(ctx context.Context, input ReviewCourseInput, deps ReviewCourseDeps) (course.Course, error) {
	c, err := deps.CourseStore.GetByID(ctx, input.CourseID)
	if err != nil {
		return course.Course{}, fmt.Errorf("load course: %w", err)
	}

	var action audit.Action
	switch input.Action {
	case "approve":
		if err := c.Approve(); err != nil {
			return course.Course{}, err
		}
		action = audit.ActionApprove
	case "reject":
		if err := c.Reject(); err != nil {
			return course.Course{}, err
		}
		action = audit.ActionReject
	default:
		slog.Info("catalog_event", "event", "course_review_ignored", "course_id", c.ID, "action", input.Action)
		return c, nil
	}

	if err := deps.CourseStore.Save(ctx, c); err != nil {
		return course.Course{}, fmt.Errorf("save course: %w", err)
	}

	event := audit.NewEvent(deps.GenerateID(), deps.Now(), input.AdminID, input.AdminName, "admin", audit.CategoryCatalog, action).
		WithResource("course", c.ID).
		WithDescription(fmt.Sprintf("course %q %sd", c.Title, input.Action))
	if err := deps.AuditStore.Save(ctx, event); err != nil {
		slog.Error("audit_save_failed", "error", err.Error(), "course_id", c.ID)
	}

	slog.Info("catalog_event", "event", "course_reviewed", "course_id", c.ID, "action", input.Action)
	return c, nil
}
