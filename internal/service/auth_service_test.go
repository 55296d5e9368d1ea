package service

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/apfdpotter-ops/dryer-dashboard/internal/models"
)

type stubAuthRepo struct {
	createID  int
	createErr error
	user      *models.User
	getErr    error

	lastUsername string
	lastHash     string
}

func (s *stubAuthRepo) Create(username, passwordHash string) (int, error) {
	s.lastUsername = username
	s.lastHash = passwordHash
	return s.createID, s.createErr
}

func (s *stubAuthRepo) GetByUsername(username string) (*models.User, error) {
	s.lastUsername = username
	return s.user, s.getErr
}

const testSigningKey = "unit-test-key"

func TestSignUpHashesPassword(t *testing.T) {
	repo := &stubAuthRepo{createID: 5}
	svc := NewAuthService(repo, testSigningKey)

	id, err := svc.SignUp("operator", "harvest26")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if id != 5 {
		t.Fatalf("id=%d", id)
	}
	if repo.lastHash == "harvest26" || repo.lastHash == "" {
		t.Fatalf("password stored without hashing: %q", repo.lastHash)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(repo.lastHash), []byte("harvest26")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
}

func TestSignUpRejectsEmptyPassword(t *testing.T) {
	svc := NewAuthService(&stubAuthRepo{}, testSigningKey)
	if _, err := svc.SignUp("operator", "   "); err == nil {
		t.Fatal("expected error for blank password")
	}
}

func TestGenerateAndParseToken(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("harvest26"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	repo := &stubAuthRepo{user: &models.User{ID: 9, Username: "operator", PasswordHash: string(hash)}}
	svc := NewAuthService(repo, testSigningKey)

	token, err := svc.GenerateToken("operator", "harvest26")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}

	id, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if id != 9 {
		t.Fatalf("user id=%d, want 9", id)
	}
}

func TestGenerateTokenErrors(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("harvest26"), bcrypt.MinCost)

	t.Run("unknown user", func(t *testing.T) {
		svc := NewAuthService(&stubAuthRepo{}, testSigningKey)
		if _, err := svc.GenerateToken("ghost", "x"); !errors.Is(err, ErrUserNotFound) {
			t.Fatalf("err=%v", err)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := &stubAuthRepo{user: &models.User{ID: 1, PasswordHash: string(hash)}}
		svc := NewAuthService(repo, testSigningKey)
		if _, err := svc.GenerateToken("operator", "wrong"); !errors.Is(err, ErrInvalidPassword) {
			t.Fatalf("err=%v", err)
		}
	})

	t.Run("repository failure", func(t *testing.T) {
		repo := &stubAuthRepo{getErr: errors.New("db closed")}
		svc := NewAuthService(repo, testSigningKey)
		if _, err := svc.GenerateToken("operator", "x"); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestParseTokenRejectsForeignSignature(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	repo := &stubAuthRepo{user: &models.User{ID: 2, PasswordHash: string(hash)}}

	issuer := NewAuthService(repo, "other-key")
	token, err := issuer.GenerateToken("operator", "pw")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	verifier := NewAuthService(repo, testSigningKey)
	if _, err := verifier.ParseToken(token); err == nil {
		t.Fatal("token signed with a different key must not verify")
	}
}
