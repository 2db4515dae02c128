package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/ayush-assistant/herbcatalog/internal/catalog"
	"github.com/ayush-assistant/herbcatalog/internal/domain"
	"github.com/ayush-assistant/herbcatalog/internal/handler"
	"github.com/ayush-assistant/herbcatalog/internal/service"
)

// Hand-written test doubles for the handler's servicer interfaces.
// Set only the method fields your test needs.

type mockHerbServicer struct {
	create  func(ctx context.Context, herb domain.Herb) (domain.Herb, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Herb, error)
	delete  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockHerbServicer) Create(ctx context.Context, h domain.Herb) (domain.Herb, error) {
	return m.create(ctx, h)
}
func (m *mockHerbServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Herb, error) {
	return m.getByID(ctx, id)
}
func (m *mockHerbServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

type mockCatalogServicer struct {
	search     func(q catalog.Query, p domain.PaginationParams) service.SearchResult
	categories func() []string
}

func (m *mockCatalogServicer) Search(q catalog.Query, p domain.PaginationParams) service.SearchResult {
	return m.search(q, p)
}
func (m *mockCatalogServicer) Categories() []string { return m.categories() }

type mockImportServicer struct {
	importCSV func(ctx context.Context, text string) (domain.ImportResult, error)
	template  func() []byte
}

func (m *mockImportServicer) Import(ctx context.Context, text string) (domain.ImportResult, error) {
	return m.importCSV(ctx, text)
}
func (m *mockImportServicer) Template() []byte { return m.template() }

type mockExportServicer struct {
	export  func(ctx context.Context) ([]domain.Herb, error)
	records func(ctx context.Context) ([][]string, error)
}

func (m *mockExportServicer) Export(ctx context.Context) ([]domain.Herb, error) {
	return m.export(ctx)
}
func (m *mockExportServicer) Records(ctx context.Context) ([][]string, error) {
	return m.records(ctx)
}

type mockChatServicer struct {
	intercept func(ctx context.Context, message string) domain.ChatReply
}

func (m *mockChatServicer) Intercept(ctx context.Context, message string) domain.ChatReply {
	return m.intercept(ctx, message)
}

type mockAuthServicer struct {
	signIn  func(ctx context.Context, email, password string) (domain.Session, error)
	signOut func(token string) error
}

func (m *mockAuthServicer) SignIn(ctx context.Context, email, password string) (domain.Session, error) {
	return m.signIn(ctx, email, password)
}

// Verify accepts only adminToken.
func (m *mockAuthServicer) Verify(token string) (string, error) {
	if token == adminToken {
		return "admin@example.com", nil
	}
	return "", domain.ErrUnauthorized
}
func (m *mockAuthServicer) SignOut(token string) error {
	if m.signOut == nil {
		return nil
	}
	return m.signOut(token)
}

// compile-time checks: every mock must satisfy its servicer interface.
var (
	_ handler.HerbServicer    = (*mockHerbServicer)(nil)
	_ handler.CatalogServicer = (*mockCatalogServicer)(nil)
	_ handler.ImportServicer  = (*mockImportServicer)(nil)
	_ handler.ExportServicer  = (*mockExportServicer)(nil)
	_ handler.ChatServicer    = (*mockChatServicer)(nil)
	_ handler.AuthServicer    = (*mockAuthServicer)(nil)
)

// ---- helpers ---------------------------------------------------------------

const adminToken = "admin-token"

// newHTTPHandler wires a Server with the given deps into its chi router, the
// same way main.go does. An auth mock is always present so admin routes mount.
// Logs are discarded unless the test supplies its own logger.
func newHTTPHandler(d handler.Deps) http.Handler {
	if d.Auth == nil {
		d.Auth = &mockAuthServicer{}
	}
	if d.Logger == nil {
		d.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return handler.NewServer(d).Handler()
}

func asAdmin(r *http.Request) *http.Request {
	r.Header.Set("Authorization", "Bearer "+adminToken)
	return r
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func decodeError(t *testing.T, body io.Reader) handler.ErrorDetail {
	t.Helper()
	var resp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(body).Decode(&resp))
	return resp.Error
}

var errDB = errors.New("connection refused")
