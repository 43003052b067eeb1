package main

import (
	"net/http"
	"strings"
	"time"

	"isafari/internal/handlers"
	"isafari/internal/models"
)

func secureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("X-Frame-Options", "deny")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (app *application) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		app.log.Infow("request",
			"method", r.Method,
			"path", r.URL.RequestURI(),
			"status", rec.status,
			"duration", time.Since(start),
			"remote", r.RemoteAddr,
		)
	})
}

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				app.log.Errorf("panic: %s %s: %v", r.Method, r.URL.Path, err)
				handlers.Fail(w, http.StatusInternalServerError, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer ")), true
}

func (app *application) JWTMiddleware(next http.Handler, requiredRole string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accessToken, ok := bearerToken(r)
		if !ok {
			handlers.Fail(w, http.StatusUnauthorized, "Access token required")
			return
		}
		claims, err := app.tokens.Parse(accessToken)
		if err != nil {
			handlers.Fail(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		if msg, ok := roleAllowed(claims.UserType, requiredRole); !ok {
			handlers.Fail(w, http.StatusForbidden, msg)
			return
		}

		next.ServeHTTP(w, r.WithContext(handlers.WithClaims(r.Context(), claims)))
	})
}

// roleAllowed lets admins through every role gate.
func roleAllowed(userType, requiredRole string) (string, bool) {
	switch requiredRole {
	case "admin":
		if userType != models.UserTypeAdmin {
			return "Admin access required", false
		}
	case "provider":
		if userType != models.UserTypeProvider && userType != models.UserTypeAdmin {
			return "Service provider access required", false
		}
	}
	return "", true
}

// optionalAuth attaches the caller when a valid token is present and lets
// anonymous requests through otherwise.
func (app *application) optionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if accessToken, ok := bearerToken(r); ok {
			if claims, err := app.tokens.Parse(accessToken); err == nil {
				r = r.WithContext(handlers.WithClaims(r.Context(), claims))
			}
		}
		next.ServeHTTP(w, r)
	})
}
