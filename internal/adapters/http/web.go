package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"campus/internal/adapters/email"
	"campus/internal/adapters/http/middleware"
	"campus/internal/adapters/http/perf"
	"campus/internal/adapters/media"
	accountStore "campus/internal/adapters/storage/account"
	auditStore "campus/internal/adapters/storage/audit"
	categoryStore "campus/internal/adapters/storage/category"
	courseStore "campus/internal/adapters/storage/course"
	enrollmentStore "campus/internal/adapters/storage/enrollment"
	internshipStore "campus/internal/adapters/storage/internship"
	lessonStore "campus/internal/adapters/storage/lesson"
	notificationStore "campus/internal/adapters/storage/notification"
	outboxStore "campus/internal/adapters/storage/outbox"
	quizStore "campus/internal/adapters/storage/quiz"
)

// Stores holds all storage dependencies.
type Stores struct {
	AccountStore              accountStore.Store
	CategoryStore             categoryStore.Store
	CourseStore               courseStore.Store
	LessonStore               lessonStore.Store
	QuizStore                 quizStore.Store
	QuizResultStore           quizStore.ResultStore
	EnrollmentStore           enrollmentStore.Store
	CompletionStore           enrollmentStore.CompletionStore
	NotificationStore         notificationStore.Store
	InternshipStore           internshipStore.Store
	InternshipMaterialStore   internshipStore.MaterialStore
	InternshipQuizStore       internshipStore.QuizStore
	InternshipProjectStore    internshipStore.ProjectStore
	InternshipEnrollmentStore internshipStore.EnrollmentStore
	AuditStore                auditStore.Store
	OutboxStore               outboxStore.Store
}

// loadCSRFKey reads the CSRF secret from CAMPUS_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("CAMPUS_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("CAMPUS_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("CAMPUS_ENV") == "production" {
		log.Fatal("CAMPUS_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set CAMPUS_CSRF_KEY for production.")
	return key
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global session store instance
var sessions *middleware.SessionStore

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global perf collector (set by NewMux)
var perfCollector *perf.Collector

// Global media store for uploaded files (set by SetMediaStore)
var mediaStore *media.Store

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

// Email configuration
var emailFromAddress string
var emailReplyTo string

// SetEmailSender sets the global email sender for the application.
func SetEmailSender(sender email.Sender, from, replyTo string) {
	emailSender = sender
	emailFromAddress = from
	emailReplyTo = replyTo
}

// SetMediaStore sets the media store used for uploads.
func SetMediaStore(s *media.Store) {
	mediaStore = s
}

// generateCertificateID issues a public certificate reference.
// POST: uppercase UUID, unique per issuance
func generateCertificateID() string {
	return strings.ToUpper(uuid.New().String())
}

// NewMux wires HTTP handlers for the app.
func NewMux(staticDir, mediaDir string, s *Stores, collector *perf.Collector) http.Handler {
	stores = s
	perfCollector = collector
	sessions = middleware.NewSessionStore()
	middleware.SecureCookies = os.Getenv("CAMPUS_ENV") == "production"

	mux := http.NewServeMux()
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	mux.Handle("/media/", http.StripPrefix("/media/", http.FileServer(http.Dir(mediaDir))))
	registerRoutes(mux)

	// CSRF key: 32-byte hex-encoded secret from env var
	csrfKey := loadCSRFKey()

	// Rate limiter: configurable requests per second per IP (OWASP A04)
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: Timing -> RateLimit -> Auth -> CSRF -> SecurityHeaders -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
		middleware.Timing(collector),
	)
}
