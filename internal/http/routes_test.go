package httpx

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	jwtadapter "github.com/sb-patel/notification-system-backend/internal/adapters/jwt"
	"github.com/sb-patel/notification-system-backend/internal/data/cryptoutil"
	"github.com/sb-patel/notification-system-backend/internal/domain/model"
	"github.com/sb-patel/notification-system-backend/internal/mocks"
	mockauth "github.com/sb-patel/notification-system-backend/internal/mocks/auth"
	"github.com/sb-patel/notification-system-backend/internal/service"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	tokens, err := jwtadapter.NewTokenService(jwtadapter.TokenServiceOptions{
		UserSecret:  []byte("user-secret-for-tests"),
		AdminSecret: []byte("admin-secret-for-tests"),
	})
	require.NoError(t, err)
	hasher, err := cryptoutil.NewBcryptHasherWithCost(bcrypt.MinCost)
	require.NoError(t, err)

	authSvc := service.NewAuthService(service.AuthServiceOptions{
		Principals: mocks.NewMemoryPrincipalRepo(),
		Tokens:     tokens,
		Revocation: mockauth.NewMemoryRevocationStore(),
		Hasher:     hasher,
	})
	notifSvc := service.NewNotificationService(service.NotificationServiceOptions{
		Notifications: mocks.NewMemoryNotificationRepo(),
	})

	return NewRouter(RouterServices{Auth: authSvc, Notifications: notifSvc})
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	r := httptest.NewRequest(method, path, reader)
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

func signUpAndIn(t *testing.T, router http.Handler, base, email string) string {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, base+"/signup", "", model.SignUpRequest{
		Email: email, Password: "s3cret-pass", FirstName: "Test", LastName: "Person",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodPost, base+"/signin", "", model.SignInRequest{
		Email: email, Password: "s3cret-pass",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.NotEmpty(t, res.Token)
	return res.Token
}

func TestRoutes_SignUpAndSignIn(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/users/signup", "", model.SignUpRequest{
		Email: "alice@example.com", Password: "s3cret-pass", FirstName: "Alice", LastName: "Smith",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	// the password hash never leaves the server
	assert.NotContains(t, w.Body.String(), "password")

	// duplicate email in the same role namespace
	w = doJSON(t, router, http.MethodPost, "/api/users/signup", "", model.SignUpRequest{
		Email: "alice@example.com", Password: "s3cret-pass", FirstName: "Alice", LastName: "Smith",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// same email signs up fine as an admin
	w = doJSON(t, router, http.MethodPost, "/api/admins/signup", "", model.SignUpRequest{
		Email: "alice@example.com", Password: "s3cret-pass", FirstName: "Alice", LastName: "Smith",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// invalid body
	w = doJSON(t, router, http.MethodPost, "/api/users/signup", "", model.SignUpRequest{
		Email: "not-an-email", Password: "s3cret-pass", FirstName: "A", LastName: "B",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// wrong password
	w = doJSON(t, router, http.MethodPost, "/api/users/signin", "", model.SignInRequest{
		Email: "alice@example.com", Password: "wrong-pass",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoutes_NotificationFlow(t *testing.T) {
	router := newTestRouter(t)

	userToken := signUpAndIn(t, router, "/api/users", "bob@example.com")
	adminToken := signUpAndIn(t, router, "/api/admins", "root@example.com")

	// the recipient id comes from the signin response
	w := doJSON(t, router, http.MethodPost, "/api/users/signin", "", model.SignInRequest{
		Email: "bob@example.com", Password: "s3cret-pass",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var signin struct {
		User model.Principal `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &signin))
	bobID := signin.User.ID

	// admin targets bob
	w = doJSON(t, router, http.MethodPost, "/api/admins/notifications", adminToken, model.CreateNotificationRequest{
		Message: "hi bob", Type: model.NotificationTypeIndividual, TargetUserID: bobID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created model.Notification
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	// and broadcasts
	w = doJSON(t, router, http.MethodPost, "/api/admins/notifications", adminToken, model.CreateNotificationRequest{
		Message: "hello everyone", Type: model.NotificationTypeBroadcast,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// bob sees both, newest first
	w = doJSON(t, router, http.MethodGet, "/api/users/notifications", userToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var listing struct {
		Notifications []model.Notification `json:"notifications"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listing))
	require.Len(t, listing.Notifications, 2)
	assert.Equal(t, "hello everyone", listing.Notifications[0].Message)
	assert.Equal(t, "hi bob", listing.Notifications[1].Message)

	// mark the individual one read, twice
	for i := 0; i < 2; i++ {
		w = doJSON(t, router, http.MethodPut, "/api/users/notifications/"+created.ID+"/read", userToken, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	// the unread filter now only shows the broadcast
	w = doJSON(t, router, http.MethodGet, "/api/users/notifications?status=unread", userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listing))
	require.Len(t, listing.Notifications, 1)
	assert.Equal(t, "hello everyone", listing.Notifications[0].Message)

	// a bogus status filter is rejected
	w = doJSON(t, router, http.MethodGet, "/api/users/notifications?status=archived", userToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// unknown notification id
	w = doJSON(t, router, http.MethodPut, "/api/users/notifications/does-not-exist/read", userToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRoutes_RoleEnforcement(t *testing.T) {
	router := newTestRouter(t)

	userToken := signUpAndIn(t, router, "/api/users", "carol@example.com")
	adminToken := signUpAndIn(t, router, "/api/admins", "root@example.com")

	// a user token never verifies against the admin secret
	w := doJSON(t, router, http.MethodPost, "/api/admins/notifications", userToken, model.CreateNotificationRequest{
		Message: "sneaky", Type: model.NotificationTypeBroadcast,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// and vice versa for user-only endpoints
	w = doJSON(t, router, http.MethodGet, "/api/users/notifications", adminToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// no token at all
	w = doJSON(t, router, http.MethodGet, "/api/users/notifications", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoutes_Logout(t *testing.T) {
	router := newTestRouter(t)
	userToken := signUpAndIn(t, router, "/api/users", "dave@example.com")

	// the token works before logout
	w := doJSON(t, router, http.MethodGet, "/api/users/notifications", userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/auth/logout", userToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// idempotent
	w = doJSON(t, router, http.MethodPost, "/api/auth/logout", userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// the revoked token is refused before signature verification
	w = doJSON(t, router, http.MethodGet, "/api/users/notifications", userToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "logged_out")

	// logout without a token
	w = doJSON(t, router, http.MethodPost, "/api/auth/logout", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// logout with an undecodable token
	w = doJSON(t, router, http.MethodPost, "/api/auth/logout", "garbage", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "malformed_token")
}

func TestRoutes_Healthz(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRoutes_CreateNotificationValidation(t *testing.T) {
	router := newTestRouter(t)
	adminToken := signUpAndIn(t, router, "/api/admins", "root@example.com")

	tests := []struct {
		name string
		req  model.CreateNotificationRequest
	}{
		{"missing message", model.CreateNotificationRequest{Type: model.NotificationTypeBroadcast}},
		{"individual without target", model.CreateNotificationRequest{
			Message: "hi", Type: model.NotificationTypeIndividual,
		}},
		{"unknown type", model.CreateNotificationRequest{Message: "hi", Type: "urgent"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, http.MethodPost, "/api/admins/notifications", adminToken, tt.req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}
