package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vastra/globals"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, claims *Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(globals.JwtSecret)
	require.NoError(t, err)
	return signed
}

func TestAuthenticateSetsContext(t *testing.T) {
	signed := signToken(t, &Claims{
		UserID: "u123",
		Role:   []string{"user"},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	var gotUser string
	var gotRoles []string
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gotUser, _ = r.Context().Value(globals.UserIDKey).(string)
		gotRoles, _ = r.Context().Value(globals.RoleKey).([]string)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	handler(rec, req, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u123", gotUser)
	assert.Equal(t, []string{"user"}, gotRoles)
}

func TestAuthenticateRejects(t *testing.T) {
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		t.Fatal("handler must not run")
	})

	cases := []struct {
		name  string
		token string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic abc"},
		{"garbage token", "Bearer not.a.jwt"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.token != "" {
				req.Header.Set("Authorization", tc.token)
			}
			rec := httptest.NewRecorder()
			handler(rec, req, nil)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestAuthenticateRejectsExpired(t *testing.T) {
	signed := signToken(t, &Claims{
		UserID: "u123",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})

	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		t.Fatal("handler must not run")
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	handler(rec, req, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOptionalAuthSetsContextWhenTokenPresent(t *testing.T) {
	signed := signToken(t, &Claims{
		UserID: "u123",
		Role:   []string{"user"},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	var gotUser string
	handler := OptionalAuth(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gotUser, _ = r.Context().Value(globals.UserIDKey).(string)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	handler(rec, req, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u123", gotUser)
}

func TestOptionalAuthPassesThroughAnonymous(t *testing.T) {
	cases := []struct {
		name  string
		token string
	}{
		{"no token", ""},
		{"wrong scheme", "Basic abc"},
		{"garbage token", "Bearer not.a.jwt"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			called := false
			handler := OptionalAuth(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
				called = true
				_, ok := r.Context().Value(globals.UserIDKey).(string)
				assert.False(t, ok)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.token != "" {
				req.Header.Set("Authorization", tc.token)
			}
			rec := httptest.NewRecorder()
			handler(rec, req, nil)

			assert.True(t, called)
			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}
}

func TestRequireRoles(t *testing.T) {
	run := func(roles []string) int {
		handler := RequireRoles("admin")(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
			w.WriteHeader(http.StatusNoContent)
		})
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(context.WithValue(req.Context(), globals.RoleKey, roles))
		rec := httptest.NewRecorder()
		handler(rec, req, nil)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, run([]string{"admin"}))
	assert.Equal(t, http.StatusNoContent, run([]string{"user", "admin"}))
	assert.Equal(t, http.StatusForbidden, run([]string{"user"}))
	assert.Equal(t, http.StatusForbidden, run(nil))
}

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) func(httprouter.Handle) httprouter.Handle {
		return func(next httprouter.Handle) httprouter.Handle {
			return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
				order = append(order, name)
				next(w, r, ps)
			}
		}
	}

	handler := Chain(mw("outer"), mw("inner"))(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		order = append(order, "handler")
	})
	handler(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), nil)

	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}
