package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	emailPkg "campus/internal/adapters/email"
	web "campus/internal/adapters/http"
	"campus/internal/adapters/http/perf"
	"campus/internal/adapters/media"
	"campus/internal/adapters/storage"
	accountStore "campus/internal/adapters/storage/account"
	auditStorePkg "campus/internal/adapters/storage/audit"
	categoryStore "campus/internal/adapters/storage/category"
	courseStore "campus/internal/adapters/storage/course"
	enrollmentStore "campus/internal/adapters/storage/enrollment"
	internshipStore "campus/internal/adapters/storage/internship"
	lessonStore "campus/internal/adapters/storage/lesson"
	notificationStore "campus/internal/adapters/storage/notification"
	outboxStorePkg "campus/internal/adapters/storage/outbox"
	quizStore "campus/internal/adapters/storage/quiz"
	"campus/internal/application/orchestrators"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Optional .env for local development; real deployments use the environment
	_ = godotenv.Load()

	dbPath := envOrDefault("CAMPUS_DB_PATH", "campus.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Performance instrumentation: wrap DB with timing, create collector
	collector := perf.NewCollector(perf.DefaultRingSize)
	timedDB := storage.NewTimedDB(db, collector)

	acctStore := accountStore.NewSQLiteStore(timedDB)
	catStore := categoryStore.NewSQLiteStore(timedDB)
	internStore := internshipStore.NewSQLiteStore(timedDB)
	stores := &web.Stores{
		AccountStore:              acctStore,
		CategoryStore:             catStore,
		CourseStore:               courseStore.NewSQLiteStore(timedDB),
		LessonStore:               lessonStore.NewSQLiteStore(timedDB),
		QuizStore:                 quizStore.NewSQLiteStore(timedDB),
		QuizResultStore:           quizStore.NewResultSQLiteStore(timedDB),
		EnrollmentStore:           enrollmentStore.NewSQLiteStore(timedDB),
		CompletionStore:           enrollmentStore.NewCompletionSQLiteStore(timedDB),
		NotificationStore:         notificationStore.NewSQLiteStore(timedDB),
		InternshipStore:           internStore,
		InternshipMaterialStore:   internshipStore.NewMaterialSQLiteStore(timedDB),
		InternshipQuizStore:       internshipStore.NewQuizSQLiteStore(timedDB),
		InternshipProjectStore:    internshipStore.NewProjectSQLiteStore(timedDB),
		InternshipEnrollmentStore: internshipStore.NewEnrollmentSQLiteStore(timedDB),
		AuditStore:                auditStorePkg.NewSQLiteStore(timedDB),
		OutboxStore:               outboxStorePkg.NewSQLiteStore(timedDB),
	}

	// Seed the admin account and the default categories; idempotent
	seedInput := orchestrators.SeedInput{
		AdminUsername: envOrDefault("CAMPUS_ADMIN_USERNAME", "admin"),
		AdminEmail:    envOrDefault("CAMPUS_ADMIN_EMAIL", "admin@campus.local"),
		AdminPassword: envOrDefault("CAMPUS_ADMIN_PASSWORD", "change me please"),
		Categories:    orchestrators.DefaultCategories,
	}
	seedDeps := orchestrators.SeedDeps{
		AccountStore:  acctStore,
		CategoryStore: catStore,
		GenerateID:    uuid.NewString,
		Now:           time.Now,
	}
	if err := orchestrators.ExecuteSeed(context.Background(), seedInput, seedDeps); err != nil {
		log.Fatalf("failed to seed: %v", err)
	}

	// Uploaded course images, lesson files, and project submissions
	mediaDir := envOrDefault("CAMPUS_MEDIA_DIR", "media")
	mediaStore, err := media.NewStore(mediaDir)
	if err != nil {
		log.Fatalf("failed to open media dir: %v", err)
	}
	web.SetMediaStore(mediaStore)

	// Configure email sender
	resendKey := os.Getenv("CAMPUS_RESEND_KEY")
	emailFrom := envOrDefault("CAMPUS_RESEND_FROM", "Campus <noreply@campus.local>")
	emailReply := envOrDefault("CAMPUS_REPLY_TO", "support@campus.local")
	var sender emailPkg.Sender
	if resendKey != "" {
		sender = emailPkg.NewResendSender(resendKey, emailFrom)
		log.Println("Email sender configured (Resend)")
	} else {
		sender = emailPkg.NewNoopSender()
		if os.Getenv("CAMPUS_ENV") == "production" {
			log.Println("WARNING: CAMPUS_RESEND_KEY is not set: email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop: set CAMPUS_RESEND_KEY for real delivery)")
		}
	}
	web.SetEmailSender(sender, emailFrom, emailReply)

	// Background retry loop for emails that failed inline delivery
	stopOutbox := orchestrators.StartOutboxRetryScheduler(context.Background(), orchestrators.OutboxRetryDeps{
		OutboxStore: stores.OutboxStore,
		EmailSender: sender,
		Now:         time.Now,
	}, 1*time.Minute)
	defer stopOutbox()

	mux := web.NewMux("static", mediaDir, stores, collector)

	addr := envOrDefault("CAMPUS_ADDR", ":8080")
	log.Printf("Campus %s starting on %s (env=%s)", version, addr, envOrDefault("CAMPUS_ENV", "development"))

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
