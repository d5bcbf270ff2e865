package projections

import (
	"context"
	"errors"
	"time"

	domainInternship "campus/internal/domain/internship"
)

// Certificate query errors.
var (
	ErrNoCertificate  = errors.New("no certificate has been issued for this enrollment")
	ErrNotCertificate = errors.New("certificate does not belong to this student")
)

// GetCertificateQuery carries query parameters. StudentID is the viewer;
// only the enrollment's own student may see the certificate.
type GetCertificateQuery struct {
	EnrollmentID string
	StudentID    string
}

// GetCertificateResult carries the query result.
type GetCertificateResult struct {
	CertificateID   string
	StudentName     string
	InternshipTitle string
	Duration        string
	CompletedAt     time.Time
}

// GetCertificateDeps holds dependencies for GetCertificate.
type GetCertificateDeps struct {
	EnrollmentStore InternshipEnrollmentStore
	AccountStore    AccountStore
	InternshipStore InternshipStore
}

// QueryGetCertificate retrieves the certificate for an approved internship
// enrollment. Enrollments whose project has not been approved have no
// certificate.
// PRE: Viewer owns the enrollment
// POST: Returns ErrNoCertificate unless ProjectStatus is Approved
func QueryGetCertificate(ctx context.Context, query GetCertificateQuery, deps GetCertificateDeps) (GetCertificateResult, error) {
	e, err := deps.EnrollmentStore.GetByID(ctx, query.EnrollmentID)
	if err != nil {
		return GetCertificateResult{}, err
	}
	if e.StudentID != query.StudentID {
		return GetCertificateResult{}, ErrNotCertificate
	}
	if !e.CertificateAvailable() {
		return GetCertificateResult{}, ErrNoCertificate
	}

	result := GetCertificateResult{
		CertificateID: e.CertificateID,
		CompletedAt:   e.CompletedAt,
	}
	if a, err := deps.AccountStore.GetByID(ctx, e.StudentID); err == nil {
		result.StudentName = a.FullName
	}
	if i, err := deps.InternshipStore.GetByID(ctx, e.InternshipID); err == nil {
		result.InternshipTitle = i.Title
		result.Duration = i.Duration
	}

	return result, nil
}

// VerifyCertificateQuery carries the public lookup parameter.
type VerifyCertificateQuery struct {
	CertificateID string
}

// CertificateLookupStore narrows the enrollment store to certificate lookup.
type CertificateLookupStore interface {
	GetByCertificateID(ctx context.Context, certificateID string) (domainInternship.Enrollment, error)
}

// VerifyCertificateDeps holds dependencies for VerifyCertificate.
type VerifyCertificateDeps struct {
	EnrollmentStore CertificateLookupStore
	AccountStore    AccountStore
	InternshipStore InternshipStore
}

// QueryVerifyCertificate resolves a certificate ID to its holder, for
// third parties checking a certificate's authenticity.
// POST: Succeeds only for IDs attached to an approved enrollment
func QueryVerifyCertificate(ctx context.Context, query VerifyCertificateQuery, deps VerifyCertificateDeps) (GetCertificateResult, error) {
	e, err := deps.EnrollmentStore.GetByCertificateID(ctx, query.CertificateID)
	if err != nil {
		return GetCertificateResult{}, ErrNoCertificate
	}
	if !e.CertificateAvailable() {
		return GetCertificateResult{}, ErrNoCertificate
	}

	result := GetCertificateResult{
		CertificateID: e.CertificateID,
		CompletedAt:   e.CompletedAt,
	}
	if a, err := deps.AccountStore.GetByID(ctx, e.StudentID); err == nil {
		result.StudentName = a.FullName
	}
	if i, err := deps.InternshipStore.GetByID(ctx, e.InternshipID); err == nil {
		result.InternshipTitle = i.Title
		result.Duration = i.Duration
	}

	return result, nil
}
