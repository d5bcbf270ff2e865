package browser_test

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"

	_ "modernc.org/sqlite"

	emailPkg "campus/internal/adapters/email"
	web "campus/internal/adapters/http"
	"campus/internal/adapters/http/middleware"
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

	"github.com/google/uuid"
)

const (
	testAdminUsername = "admin"
	testAdminPassword = "TestPass123!"
)

// testApp holds the running test server and Playwright handles.
type testApp struct {
	BaseURL string
	DB      *sql.DB
	Server  *http.Server
	PW      *playwright.Playwright
	Browser playwright.Browser
	Stores  *web.Stores
}

// newTestApp creates a fully wired app with a temp SQLite DB and starts an HTTP server.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("failed to open test DB: %v", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := storage.InitDB(db); err != nil {
		t.Fatalf("failed to initialize test DB: %v", err)
	}

	acctStore := accountStore.NewSQLiteStore(db)
	catStore := categoryStore.NewSQLiteStore(db)
	stores := &web.Stores{
		AccountStore:              acctStore,
		CategoryStore:             catStore,
		CourseStore:               courseStore.NewSQLiteStore(db),
		LessonStore:               lessonStore.NewSQLiteStore(db),
		QuizStore:                 quizStore.NewSQLiteStore(db),
		QuizResultStore:           quizStore.NewResultSQLiteStore(db),
		EnrollmentStore:           enrollmentStore.NewSQLiteStore(db),
		CompletionStore:           enrollmentStore.NewCompletionSQLiteStore(db),
		NotificationStore:         notificationStore.NewSQLiteStore(db),
		InternshipStore:           internshipStore.NewSQLiteStore(db),
		InternshipMaterialStore:   internshipStore.NewMaterialSQLiteStore(db),
		InternshipQuizStore:       internshipStore.NewQuizSQLiteStore(db),
		InternshipProjectStore:    internshipStore.NewProjectSQLiteStore(db),
		InternshipEnrollmentStore: internshipStore.NewEnrollmentSQLiteStore(db),
		AuditStore:                auditStorePkg.NewSQLiteStore(db),
		OutboxStore:               outboxStorePkg.NewSQLiteStore(db),
	}

	ctx := context.Background()
	err = orchestrators.ExecuteSeed(ctx, orchestrators.SeedInput{
		AdminUsername: testAdminUsername,
		AdminEmail:    "admin@test.com",
		AdminPassword: testAdminPassword,
		Categories:    orchestrators.DefaultCategories,
	}, orchestrators.SeedDeps{
		AccountStore:  acctStore,
		CategoryStore: catStore,
		GenerateID:    uuid.NewString,
		Now:           time.Now,
	})
	if err != nil {
		t.Fatalf("failed to seed: %v", err)
	}

	mediaDir := filepath.Join(tmpDir, "media")
	ms, err := media.NewStore(mediaDir)
	if err != nil {
		t.Fatalf("failed to open media dir: %v", err)
	}
	web.SetMediaStore(ms)
	web.SetEmailSender(emailPkg.NewNoopSender(), "Campus <noreply@test.local>", "")

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to find free port: %v", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	listener.Close()

	// Change to project root so relative template/static paths work
	projectRoot := findProjectRoot(t)
	origDir, _ := os.Getwd()
	if err := os.Chdir(projectRoot); err != nil {
		t.Fatalf("failed to chdir to project root: %v", err)
	}
	t.Cleanup(func() { os.Chdir(origDir) })

	// Add test port to CSRF trusted origins before creating mux
	middleware.ExtraTrustedOrigins = append(middleware.ExtraTrustedOrigins,
		fmt.Sprintf("127.0.0.1:%d", port),
		fmt.Sprintf("localhost:%d", port),
	)

	collector := perf.NewCollector(perf.DefaultRingSize)
	web.RateLimitPerSecond = 1000
	mux := web.NewMux("static", mediaDir, stores, collector)
	srv := &http.Server{
		Addr:    fmt.Sprintf("127.0.0.1:%d", port),
		Handler: mux,
	}
	go func() {
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("test server error: %v", err)
		}
	}()

	// Wait for server to be ready
	baseURL := fmt.Sprintf("http://127.0.0.1:%d", port)
	for i := 0; i < 50; i++ {
		resp, err := http.Get(baseURL + "/login")
		if err == nil {
			resp.Body.Close()
			break
		}
		time.Sleep(100 * time.Millisecond)
	}

	pw, err := playwright.Run()
	if err != nil {
		t.Fatalf("failed to start Playwright: %v", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		t.Fatalf("failed to launch browser: %v", err)
	}

	app := &testApp{
		BaseURL: baseURL,
		DB:      db,
		Server:  srv,
		PW:      pw,
		Browser: browser,
		Stores:  stores,
	}

	t.Cleanup(func() {
		browser.Close()
		pw.Stop()
		srv.Close()
		db.Close()
	})

	return app
}

// newPage creates a new browser page (tab).
func (a *testApp) newPage(t *testing.T) playwright.Page {
	t.Helper()
	page, err := a.Browser.NewPage()
	if err != nil {
		t.Fatalf("failed to create page: %v", err)
	}
	t.Cleanup(func() { page.Close() })
	return page
}

// loginAdmin logs in as the seeded admin account.
func (a *testApp) loginAdmin(t *testing.T, page playwright.Page) {
	t.Helper()
	a.login(t, page, testAdminUsername, testAdminPassword, "/admin/dashboard")
}

// login fills the login form and waits for the role home redirect.
func (a *testApp) login(t *testing.T, page playwright.Page, username, password, wantPath string) {
	t.Helper()
	if _, err := page.Goto(a.BaseURL + "/login"); err != nil {
		t.Fatalf("failed to navigate to login: %v", err)
	}
	if err := page.Locator("input[name=Username]").Fill(username); err != nil {
		t.Fatalf("failed to fill username: %v", err)
	}
	if err := page.Locator("input[name=Password]").Fill(password); err != nil {
		t.Fatalf("failed to fill password: %v", err)
	}
	if err := page.Locator("button[type=submit]").Click(); err != nil {
		t.Fatalf("failed to click login: %v", err)
	}
	if err := page.WaitForURL(a.BaseURL+wantPath, playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		t.Fatalf("login did not land on %s: %v", wantPath, err)
	}
}

// findProjectRoot walks up from the working directory to find the project root (contains go.mod).
func findProjectRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatalf("could not find project root (go.mod) from working directory")
		}
		dir = parent
	}
}
