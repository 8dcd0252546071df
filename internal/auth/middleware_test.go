package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"portalgambit/backend/pkg/jwt"
)

func newRouter(codec *jwt.Codec) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	protected := r.Group("/", AuthMiddleware(codec))
	protected.GET("/me", func(c *gin.Context) {
		id, _ := CurrentIdentity(c)
		c.JSON(http.StatusOK, gin.H{"uid": CurrentUserID(c), "email": id.Email})
	})
	protected.PATCH("/profiles/:uid", RequireSelf("uid"), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func do(r http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	now := time.Now()
	codec := jwt.NewCodec("secret", time.Minute).WithClock(func() time.Time { return now })
	r := newRouter(codec)

	token, _ := codec.Issue(jwt.Identity{UID: "u1", Email: "u1@example.com"})
	if w := do(r, http.MethodGet, "/me", token); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body)
	}

	for name, tok := range map[string]string{"missing": "", "garbage": "not-a-jwt"} {
		w := do(r, http.MethodGet, "/me", tok)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", name, w.Code)
		}
		if w.Header().Get("WWW-Authenticate") != "Bearer" {
			t.Fatalf("%s: missing WWW-Authenticate header", name)
		}
	}

	other := jwt.NewCodec("other-secret", time.Minute)
	forged, _ := other.Issue(jwt.Identity{UID: "u1"})
	if w := do(r, http.MethodGet, "/me", forged); w.Code != http.StatusUnauthorized {
		t.Fatalf("forged token: expected 401, got %d", w.Code)
	}

	now = now.Add(2 * time.Minute)
	if w := do(r, http.MethodGet, "/me", token); w.Code != http.StatusUnauthorized {
		t.Fatalf("expired token: expected 401, got %d", w.Code)
	}
}

func TestRequireSelf(t *testing.T) {
	codec := jwt.NewCodec("secret", time.Minute)
	r := newRouter(codec)
	token, _ := codec.Issue(jwt.Identity{UID: "u1"})

	if w := do(r, http.MethodPatch, "/profiles/u1", token); w.Code != http.StatusNoContent {
		t.Fatalf("own profile: expected 204, got %d", w.Code)
	}
	if w := do(r, http.MethodPatch, "/profiles/u2", token); w.Code != http.StatusForbidden {
		t.Fatalf("other profile: expected 403, got %d", w.Code)
	}
}

type fixedLimiter struct {
	allow int
	err   error
	seen  []string
}

func (l *fixedLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.seen = append(l.seen, key)
	if l.err != nil {
		return false, l.err
	}
	l.allow--
	return l.allow >= 0, nil
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := &fixedLimiter{allow: 2}
	r := gin.New()
	r.POST("/auth/token", RateLimit(limiter, "token"), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := []int{}
	for i := 0; i < 3; i++ {
		codes = append(codes, do(r, http.MethodPost, "/auth/token", "").Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("unexpected status sequence %v", codes)
	}
	if limiter.seen[0] != "token:192.0.2.1" {
		t.Fatalf("unexpected limiter key %q", limiter.seen[0])
	}

	limiter.err = errors.New("redis down")
	if w := do(r, http.MethodPost, "/auth/token", ""); w.Code != http.StatusOK {
		t.Fatalf("limiter failure should let the request through, got %d", w.Code)
	}
}
