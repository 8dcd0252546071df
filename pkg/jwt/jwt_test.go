package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestIssueAndVerify(t *testing.T) {
	codec := NewCodec("secret", 0)
	if codec.TTL() != DefaultTTL {
		t.Fatalf("expected default ttl, got %v", codec.TTL())
	}

	token, err := codec.Issue(Identity{UID: "u1", Email: "a@b.c", EmailVerified: true})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	id, err := codec.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if id.UID != "u1" || id.Email != "a@b.c" || !id.EmailVerified {
		t.Fatalf("unexpected identity %+v", id)
	}
}

func TestExpiredToken(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	codec := NewCodec("secret", time.Second).WithClock(func() time.Time { return now })

	token, err := codec.Issue(Identity{UID: "u1"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	now = now.Add(2 * time.Second)

	if _, err := codec.Verify(token); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated after expiry, got %v", err)
	}
}

func TestRejectsWrongSecretAndGarbage(t *testing.T) {
	token, _ := NewCodec("one", time.Minute).Issue(Identity{UID: "u1"})
	if _, err := NewCodec("two", time.Minute).Verify(token); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected signature failure, got %v", err)
	}
	if _, err := NewCodec("one", time.Minute).Verify("not-a-token"); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected malformed failure, got %v", err)
	}
}

func TestRejectsMissingUID(t *testing.T) {
	claims := jwt.MapClaims{"exp": time.Now().Add(time.Minute).Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := NewCodec("secret", time.Minute).Verify(token); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected missing uid failure, got %v", err)
	}
}

func TestIgnoresAudience(t *testing.T) {
	claims := jwt.MapClaims{
		"uid": "u1",
		"aud": "someone-else",
		"exp": time.Now().Add(time.Minute).Unix(),
	}
	token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	id, err := NewCodec("secret", time.Minute).Verify(token)
	if err != nil || id.UID != "u1" {
		t.Fatalf("audience should not be checked: %v %+v", err, id)
	}
}

func TestIssueRequiresUID(t *testing.T) {
	if _, err := NewCodec("secret", time.Minute).Issue(Identity{}); err == nil {
		t.Fatal("expected error for empty uid")
	}
}
