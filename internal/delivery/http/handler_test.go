package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"elitepainters/internal/entity"
	"elitepainters/internal/usecase"
	"elitepainters/pkg/jwt"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChat struct {
	usecase.ChatUsecase
	send    func(sender *entity.TokenClaims, customerId, body string) (entity.Message, error)
	history func(viewer *entity.TokenClaims, customerId string) ([]entity.Message, error)
}

func (s *stubChat) Send(_ context.Context, sender *entity.TokenClaims, customerId, body string) (entity.Message, error) {
	return s.send(sender, customerId, body)
}

func (s *stubChat) History(_ context.Context, viewer *entity.TokenClaims, customerId string) ([]entity.Message, error) {
	return s.history(viewer, customerId)
}

type stubQuotes struct {
	usecase.QuoteUsecase
	created []entity.QuoteRequest
}

func (s *stubQuotes) Create(_ context.Context, req entity.QuoteRequest) (entity.Quote, error) {
	s.created = append(s.created, req)
	return entity.Quote{Id: "q1", Name: req.Name, EstimatedPrice: 42}, nil
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

type stubConnections int

func (c stubConnections) GetClientCount() int { return int(c) }

type testServer struct {
	router  *chi.Mux
	manager *jwt.JWTManager
	chat    *stubChat
	quotes  *stubQuotes
}

func newTestServer(t *testing.T, store Pinger) *testServer {
	t.Helper()
	logger := zerolog.Nop()
	manager := jwt.NewJWTManager("handler-test-secret-handler-test-secret", time.Hour)
	authUc := usecase.NewAuthUsecase(nil, nil, manager)

	s := &testServer{
		manager: manager,
		chat:    &stubChat{},
		quotes:  &stubQuotes{},
	}
	s.router = NewRouter(logger, []string{"http://localhost:3000"})
	MapHttpRoutes(s.router, Handlers{
		Http:      NewHttpHandler(s.chat, store, stubConnections(3), logger),
		Auth:      NewAuthHandler(authUc, logger),
		Quote:     NewQuoteHandler(s.quotes, logger),
		Employee:  NewEmployeeHandler(nil, logger),
		Gallery:   NewGalleryHandler(nil, logger),
		Dashboard: NewDashboardHandler(nil, logger),
	}, NewAuthMiddleware(authUc))
	return s
}

func (s *testServer) token(t *testing.T, userId, role string) string {
	t.Helper()
	token, err := s.manager.GenerateAccessToken(entity.User{Id: userId, Name: userId}, role)
	require.NoError(t, err)
	return token
}

func (s *testServer) do(req *http.Request) (*httptest.ResponseRecorder, Response) {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var body Response
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestWriteError_Status(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: body is required", usecase.ErrValidation), http.StatusBadRequest},
		{usecase.ErrUnauthorized, http.StatusUnauthorized},
		{usecase.ErrInvalidCredentials, http.StatusUnauthorized},
		{usecase.ErrForbidden, http.StatusForbidden},
		{fmt.Errorf("%w: %w", usecase.ErrNotFound, errors.New("quote not found")), http.StatusNotFound},
		{usecase.ErrUnresolvedRecipient, http.StatusConflict},
		{usecase.ErrEmailAlreadyTaken, http.StatusConflict},
		{fmt.Errorf("%w: %w", usecase.ErrStore, errors.New("socket closed")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			writeError(w, zerolog.Nop(), tt.err)

			assert.Equal(t, tt.want, w.Code)
			var body Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.False(t, body.Ok)
			assert.NotEmpty(t, body.Message)
			assert.NotContains(t, body.Message, "socket closed")
		})
	}
}

func TestAuthenticate(t *testing.T) {
	s := newTestServer(t, stubPinger{})
	s.chat.history = func(*entity.TokenClaims, string) ([]entity.Message, error) {
		return []entity.Message{}, nil
	}

	req := httptest.NewRequest(http.MethodGet, "/chat/c1/messages", nil)
	w, body := s.do(req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, body.Ok)

	req = httptest.NewRequest(http.MethodGet, "/chat/c1/messages", nil)
	req.Header.Set("Authorization", "Token abc")
	w, _ = s.do(req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/chat/c1/messages", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	w, _ = s.do(req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/chat/c1/messages", nil)
	req.Header.Set("Authorization", "Bearer "+s.token(t, "c1", entity.RoleCustomer))
	w, body = s.do(req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, body.Ok)
}

func TestRequireRole(t *testing.T) {
	s := newTestServer(t, stubPinger{})

	req := httptest.NewRequest(http.MethodGet, "/admin/quotes", nil)
	req.Header.Set("Authorization", "Bearer "+s.token(t, "c1", entity.RoleCustomer))
	w, body := s.do(req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, body.Ok)
}

func TestSendMessage(t *testing.T) {
	s := newTestServer(t, stubPinger{})

	var gotSender *entity.TokenClaims
	var gotCustomer, gotBody string
	s.chat.send = func(sender *entity.TokenClaims, customerId, body string) (entity.Message, error) {
		gotSender, gotCustomer, gotBody = sender, customerId, body
		return entity.Message{Id: "m1", ConversationId: entity.ConversationKey(customerId), Body: body}, nil
	}

	req := httptest.NewRequest(http.MethodPost, "/chat/messages", strings.NewReader(`{"body":"Is Tuesday ok?"}`))
	req.Header.Set("Authorization", "Bearer "+s.token(t, "c1", entity.RoleCustomer))
	w, body := s.do(req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, body.Ok)
	assert.Equal(t, "c1", gotSender.UserId)
	assert.Equal(t, "c1", gotCustomer)
	assert.Equal(t, "Is Tuesday ok?", gotBody)

	data, _ := json.Marshal(body.Data)
	var msg entity.Message
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, "cust_c1__admin", msg.ConversationId)
}

func TestSendMessage_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"empty body", fmt.Errorf("%w: body is required", usecase.ErrValidation), http.StatusBadRequest},
		{"no admin yet", usecase.ErrUnresolvedRecipient, http.StatusConflict},
		{"store down", fmt.Errorf("%w: %w", usecase.ErrStore, errors.New("timeout")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, stubPinger{})
			s.chat.send = func(*entity.TokenClaims, string, string) (entity.Message, error) {
				return entity.Message{}, tt.err
			}

			req := httptest.NewRequest(http.MethodPost, "/chat/messages", strings.NewReader(`{"customerId":"c1","body":""}`))
			req.Header.Set("Authorization", "Bearer "+s.token(t, "a1", entity.RoleAdmin))
			w, body := s.do(req)

			assert.Equal(t, tt.want, w.Code)
			assert.False(t, body.Ok)
		})
	}

	s := newTestServer(t, stubPinger{})
	req := httptest.NewRequest(http.MethodPost, "/chat/messages", strings.NewReader(`{not json`))
	req.Header.Set("Authorization", "Bearer "+s.token(t, "a1", entity.RoleAdmin))
	w, _ := s.do(req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateQuote_Public(t *testing.T) {
	s := newTestServer(t, stubPinger{})

	req := httptest.NewRequest(http.MethodPost, "/quote", strings.NewReader(`{"name":"Mere","area":20,"windows":2}`))
	w, body := s.do(req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, body.Ok)
	require.Len(t, s.quotes.created, 1)
	assert.Equal(t, 20.0, s.quotes.created[0].Area)
	assert.Equal(t, 2, s.quotes.created[0].Windows)
}

func TestHealth(t *testing.T) {
	w, body := newTestServer(t, stubPinger{}).do(httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, body.Ok)
	assert.Equal(t, map[string]any{"status": "ok", "mongo": "up", "connections": float64(3)}, body.Data)

	w, body = newTestServer(t, stubPinger{err: errors.New("no reachable servers")}).do(httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.False(t, body.Ok)
}

func TestCreateEmployee_RejectsNonFiniteSalary(t *testing.T) {
	s := newTestServer(t, stubPinger{})

	for _, salary := range []string{"NaN", "Inf", "-Inf", "lots"} {
		t.Run(salary, func(t *testing.T) {
			var buf bytes.Buffer
			form := multipart.NewWriter(&buf)
			require.NoError(t, form.WriteField("name", "Ravi"))
			require.NoError(t, form.WriteField("role", "Painter"))
			require.NoError(t, form.WriteField("salary", salary))
			require.NoError(t, form.Close())

			req := httptest.NewRequest(http.MethodPost, "/admin/employees", &buf)
			req.Header.Set("Content-Type", form.FormDataContentType())
			req.Header.Set("Authorization", "Bearer "+s.token(t, "a1", entity.RoleAdmin))

			w, body := s.do(req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "salary must be a number", body.Message)
		})
	}
}
