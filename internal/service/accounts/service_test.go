package accounts

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"clinicbook/backend/internal/domain"
	"clinicbook/backend/internal/store/memory"
)

type fakeIssuer struct {
	issued []domain.Caller
}

func (f *fakeIssuer) Issue(caller domain.Caller) (string, error) {
	f.issued = append(f.issued, caller)
	return "token-for-" + caller.ID, nil
}

type failingUsers struct {
	err error
}

func (f failingUsers) CreateUser(ctx context.Context, user domain.User) (domain.User, error) {
	return domain.User{}, f.err
}

func (f failingUsers) FindUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return domain.User{}, f.err
}

func (f failingUsers) FindUserByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return domain.User{}, f.err
}

func newTestService() (*Service, *fakeIssuer) {
	issuer := &fakeIssuer{}
	return NewService(memory.NewUserRepo(), issuer, Options{HashCost: bcrypt.MinCost}), issuer
}

func TestRegister_CreatesPatient(t *testing.T) {
	svc, _ := newTestService()

	u, err := svc.Register(context.Background(), " Ada ", "Ada@Example.com", "s3cret")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if u.Role != domain.RolePatient {
		t.Fatalf("role = %q, want %q", u.Role, domain.RolePatient)
	}
	if u.Name != "Ada" || u.Email != "ada@example.com" {
		t.Fatalf("user = %+v", u)
	}
	if u.PasswordHash == "s3cret" || bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret")) != nil {
		t.Fatalf("password not hashed with bcrypt")
	}
}

func TestRegister_Rejects(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	if _, err := svc.Register(ctx, "Ada", "ada@example.com", "pw"); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	tests := []struct {
		name                  string
		inName, email, passwd string
		want                  error
	}{
		{name: "missing name", email: "b@example.com", passwd: "pw", want: ErrInvalidRequest},
		{name: "missing password", inName: "B", email: "b@example.com", want: ErrInvalidRequest},
		{name: "bad email", inName: "B", email: "not-an-email", passwd: "pw", want: ErrInvalidRequest},
		{name: "email with display name", inName: "Bob", email: "Bob <bob@example.com>", passwd: "pw", want: ErrInvalidRequest},
		{name: "duplicate email", inName: "Ada 2", email: "ADA@example.com", passwd: "pw", want: ErrUserExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.inName, tt.email, tt.passwd)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	svc, issuer := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "Ada", "ada@example.com", "s3cret")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	session, err := svc.Login(ctx, "ADA@example.com", "s3cret")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if session.User.ID != u.ID || session.Token != "token-for-"+u.ID.String() {
		t.Fatalf("session = %+v", session)
	}
	if len(issuer.issued) != 1 || issuer.issued[0].Name != "Ada" || issuer.issued[0].Role != domain.RolePatient {
		t.Fatalf("issued = %+v", issuer.issued)
	}

	if _, err := svc.Login(ctx, "ada@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password err = %v, want %v", err, ErrInvalidCredentials)
	}
	if _, err := svc.Login(ctx, "nobody@example.com", "s3cret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email err = %v, want %v", err, ErrInvalidCredentials)
	}
	if _, err := svc.Login(ctx, "", "s3cret"); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("missing email err = %v, want %v", err, ErrInvalidRequest)
	}
}

func TestEnsureAdmin_Idempotent(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.EnsureAdmin(ctx, "Admin", "admin@example.com", "adminpw")
	if err != nil || !created {
		t.Fatalf("EnsureAdmin = %v, %v, want created", created, err)
	}
	created, err = svc.EnsureAdmin(ctx, "Admin", "admin@example.com", "adminpw")
	if err != nil || created {
		t.Fatalf("second EnsureAdmin = %v, %v, want no-op", created, err)
	}

	session, err := svc.Login(ctx, "admin@example.com", "adminpw")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if session.User.Role != domain.RoleAdmin {
		t.Fatalf("role = %q, want admin", session.User.Role)
	}

	if created, err := svc.EnsureAdmin(ctx, "", "", ""); err != nil || created {
		t.Fatalf("unconfigured EnsureAdmin = %v, %v", created, err)
	}
}

func TestStoreFailuresAreWrapped(t *testing.T) {
	boom := errors.New("connection refused")
	svc := NewService(failingUsers{err: boom}, &fakeIssuer{}, Options{HashCost: bcrypt.MinCost})
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Ada", "ada@example.com", "pw"); !errors.Is(err, ErrStoreUnavailable) || !errors.Is(err, boom) {
		t.Fatalf("Register err = %v", err)
	}
	if _, err := svc.Login(ctx, "ada@example.com", "pw"); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("Login err = %v", err)
	}
	if _, err := svc.EnsureAdmin(ctx, "Admin", "admin@example.com", "pw"); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("EnsureAdmin err = %v", err)
	}
}
