package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"terra-form/internal/database"
	"terra-form/internal/mailer"
	"terra-form/internal/middleware"
	"terra-form/internal/repository"
	"terra-form/internal/service"
	"terra-form/internal/storage"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	testSecret   = "transport-secret"
	testPassword = "admin123"
)

type fakeMailer struct {
	enabled bool
	err     error
	sent    []mailer.Message
}

func (f *fakeMailer) Enabled() bool { return f.enabled }

func (f *fakeMailer) Send(ctx context.Context, msg mailer.Message) error {
	f.sent = append(f.sent, msg)
	return f.err
}

type testEnv struct {
	router  chi.Router
	db      database.Service
	images  *storage.ImageStore
	mailer  *fakeMailer
	admin   service.AdminService
	enforce bool
	cached  string
}

// newTestEnv wires every handler against a fresh SQLite file
func newTestEnv(t *testing.T, enforce bool) *testEnv {
	t.Helper()

	dir := t.TempDir()
	db, err := database.OpenSQLite(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := database.RunMigrations(db.DB(), db.Dialect(), zap.NewNop()); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	images, err := storage.NewImageStore(filepath.Join(dir, "img"), "/img")
	if err != nil {
		t.Fatalf("image store: %v", err)
	}

	logger := zap.NewNop()
	productRepo := repository.NewProductRepository(db.DB(), db.Dialect())
	testimonialRepo := repository.NewTestimonialRepository(db.DB(), db.Dialect())
	configRepo := repository.NewAdminConfigRepository(db.DB(), db.Dialect())

	adminService := service.NewAdminService(configRepo, testSecret, time.Hour)
	if _, err := adminService.EnsurePassword(context.Background(), testPassword); err != nil {
		t.Fatalf("seed password: %v", err)
	}

	fm := &fakeMailer{}
	adminOnly := middleware.AdminOnly(enforce, testSecret, logger)
	noLimit := func(next http.Handler) http.Handler { return next }

	r := chi.NewRouter()
	NewProductHandler(service.NewProductService(productRepo), logger).RegisterRoutes(r, adminOnly)
	NewTestimonialHandler(service.NewTestimonialService(testimonialRepo), logger).RegisterRoutes(r, adminOnly)
	NewUploadHandler(images, 1<<20, logger).RegisterRoutes(r, adminOnly)
	NewAdminHandler(adminService, logger).RegisterRoutes(r, noLimit)
	NewContactHandler(service.NewContactService(fm, logger), logger).RegisterRoutes(r, noLimit)

	return &testEnv{router: r, db: db, images: images, mailer: fm, admin: adminService, enforce: enforce}
}

func (e *testEnv) token(t *testing.T) string {
	t.Helper()
	if e.cached != "" {
		return e.cached
	}
	token, err := e.admin.Login(context.Background(), testPassword)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	e.cached = token
	return token
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}, authorized bool) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authorized {
		req.Header.Set("Authorization", "Bearer "+e.token(t))
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}
