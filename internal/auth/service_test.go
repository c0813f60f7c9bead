package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Ssnnee/theo-afrique-website/internal/domain"
)

type captureMailer struct {
	email string
	link  string
}

func (m *captureMailer) SendLoginLink(email, link string) error {
	m.email = email
	m.link = link
	return nil
}

var testDBSeq int64

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:authtest%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := db.AutoMigrate(&domain.User{}, &domain.LoginToken{}); err != nil {
		t.Fatal(err)
	}
	return db
}

func newTestService(t *testing.T) (*Service, *captureMailer) {
	mailer := &captureMailer{}
	svc := NewService(testDB(t), mailer, "test-secret", "http://localhost:1989")
	return svc, mailer
}

func issuedToken(t *testing.T, link string) string {
	t.Helper()
	i := strings.LastIndex(link, "token=")
	if i < 0 {
		t.Fatalf("no token in link %q", link)
	}
	return link[i+len("token="):]
}

func TestLoginRoundTrip(t *testing.T) {
	svc, mailer := newTestService(t)
	ctx := context.Background()

	if err := svc.RequestLogin(ctx, "Awa@Example.com"); err != nil {
		t.Fatal(err)
	}
	if mailer.email != "awa@example.com" {
		t.Fatalf("mail sent to %q, want normalized address", mailer.email)
	}

	session, err := svc.VerifyLogin(ctx, "awa@example.com", issuedToken(t, mailer.link))
	if err != nil {
		t.Fatal(err)
	}

	claims, err := svc.ParseSession(session)
	if err != nil {
		t.Fatal(err)
	}
	if claims.Email != "awa@example.com" || claims.Role != domain.RoleUser {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestTokenIsSingleUse(t *testing.T) {
	svc, mailer := newTestService(t)
	ctx := context.Background()

	if err := svc.RequestLogin(ctx, "awa@example.com"); err != nil {
		t.Fatal(err)
	}
	token := issuedToken(t, mailer.link)

	if _, err := svc.VerifyLogin(ctx, "awa@example.com", token); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.VerifyLogin(ctx, "awa@example.com", token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("second use succeeded, want ErrInvalidToken, got %v", err)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	svc, mailer := newTestService(t)
	ctx := context.Background()

	if err := svc.RequestLogin(ctx, "awa@example.com"); err != nil {
		t.Fatal(err)
	}
	token := issuedToken(t, mailer.link)

	svc.now = func() time.Time { return time.Now().Add(25 * time.Hour) }
	if _, err := svc.VerifyLogin(ctx, "awa@example.com", token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expired token accepted: %v", err)
	}
}

func TestPurgeExpiredTokens(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.RequestLogin(ctx, "a@example.com"); err != nil {
		t.Fatal(err)
	}
	svc.now = func() time.Time { return time.Now().Add(25 * time.Hour) }
	if err := svc.RequestLogin(ctx, "b@example.com"); err != nil {
		t.Fatal(err)
	}

	svc.now = func() time.Time { return time.Now().Add(26 * time.Hour) }
	if err := svc.PurgeExpiredTokens(ctx); err != nil {
		t.Fatal(err)
	}

	var rows []domain.LoginToken
	svc.db.Find(&rows)
	if len(rows) != 1 || rows[0].Identifier != "b@example.com" {
		t.Fatalf("expected only the fresh token to survive, got %+v", rows)
	}
}

func TestParseSessionRejectsTampering(t *testing.T) {
	svc, mailer := newTestService(t)
	ctx := context.Background()

	if err := svc.RequestLogin(ctx, "awa@example.com"); err != nil {
		t.Fatal(err)
	}
	session, err := svc.VerifyLogin(ctx, "awa@example.com", issuedToken(t, mailer.link))
	if err != nil {
		t.Fatal(err)
	}

	other := NewService(testDB(t), mailer, "other-secret", "http://localhost:1989")
	if _, err := other.ParseSession(session); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("session accepted across secrets: %v", err)
	}
}
