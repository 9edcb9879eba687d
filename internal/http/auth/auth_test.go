package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nidofinanciero/nido/internal/http/auth"
)

var secret = []byte("test-secret")

func signedToken(t *testing.T, subject string, method jwt.SigningMethod) string {
	t.Helper()

	token := jwt.NewWithClaims(method, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})

	s, err := token.SignedString(secret)
	require.NoError(t, err)

	return s
}

func call(t *testing.T, authorization string) (*httptest.ResponseRecorder, uuid.UUID, bool) {
	t.Helper()

	var (
		gotID uuid.UUID
		seen  bool
	)

	handler := auth.Middleware(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, seen = auth.UserID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	return rec, gotID, seen
}

func TestMiddleware_ValidToken(t *testing.T) {
	userID := uuid.New()

	rec, gotID, seen := call(t, "Bearer "+signedToken(t, userID.String(), jwt.SigningMethodHS256))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, seen)
	assert.Equal(t, userID, gotID)
}

func TestMiddleware_MissingHeader(t *testing.T) {
	rec, _, seen := call(t, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, seen)
}

func TestMiddleware_BadSubject(t *testing.T) {
	rec, _, _ := call(t, "Bearer "+signedToken(t, "not-a-uuid", jwt.SigningMethodHS256))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddleware_WrongSignature(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: uuid.NewString(),
	})

	s, err := token.SignedString([]byte("other-secret"))
	require.NoError(t, err)

	rec, _, _ := call(t, "Bearer "+s)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
