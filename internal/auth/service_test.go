package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/blissmahlathi/campusmarket-backend/internal/users"
	pkgauth "github.com/blissmahlathi/campusmarket-backend/pkg/auth"
	"github.com/blissmahlathi/campusmarket-backend/pkg/auth/session"
	"github.com/blissmahlathi/campusmarket-backend/pkg/config"
	"github.com/blissmahlathi/campusmarket-backend/pkg/db/models"
	"github.com/blissmahlathi/campusmarket-backend/pkg/enums"
	pkgerrors "github.com/blissmahlathi/campusmarket-backend/pkg/errors"
	"github.com/blissmahlathi/campusmarket-backend/pkg/security"
)

type stubUserRepo struct {
	byEmail    map[string]*models.User
	byID       map[uuid.UUID]*models.User
	created    *models.User
	lastLogin  *time.Time
	createErr  error
	findErrMap map[string]error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		byEmail: make(map[string]*models.User),
		byID:    make(map[uuid.UUID]*models.User),
	}
}

func (s *stubUserRepo) add(user *models.User) {
	s.byEmail[user.Email] = user
	s.byID[user.ID] = user
}

func (s *stubUserRepo) Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	user := &models.User{
		ID:           uuid.New(),
		Email:        dto.Email,
		PasswordHash: dto.PasswordHash,
		Name:         dto.Name,
		Phone:        dto.Phone,
		StudentID:    dto.StudentID,
		Role:         enums.UserRoleBuyer,
		IsActive:     true,
	}
	s.created = user
	s.add(user)
	return user, nil
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if err, ok := s.findErrMap[email]; ok {
		return nil, err
	}
	if user, ok := s.byEmail[email]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if user, ok := s.byID[id]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	s.lastLogin = &at
	return nil
}

type stubSessions struct {
	generated []string
	revoked   []string
	rotateErr error
	rotatedID string
}

func (s *stubSessions) Generate(ctx context.Context, accessID string) (string, error) {
	s.generated = append(s.generated, accessID)
	return "refresh-" + accessID, nil
}

func (s *stubSessions) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	if s.rotateErr != nil {
		return "", "", s.rotateErr
	}
	s.rotatedID = session.NewAccessID()
	return s.rotatedID, "refresh-" + s.rotatedID, nil
}

func (s *stubSessions) Revoke(ctx context.Context, accessID string) error {
	s.revoked = append(s.revoked, accessID)
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret-test-secret-test-secret!",
		Issuer:            "campusmarket-test",
		ExpirationMinutes: 15,
	}
}

// Small parameters keep argon2id fast in tests.
func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8192,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func newTestService(t *testing.T, repo *stubUserRepo, sessions *stubSessions) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		SessionManager: sessions,
		JWTConfig:      testJWTConfig(),
		PasswordConfig: testPasswordConfig(),
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func activeUser(t *testing.T, email, password string) *models.User {
	t.Helper()
	hash, err := security.HashPassword(password, testPasswordConfig())
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		Name:         "Thabo M",
		Role:         enums.UserRoleBuyer,
		IsActive:     true,
	}
}

func TestRegisterIssuesTokens(t *testing.T) {
	repo := newStubUserRepo()
	sessions := &stubSessions{}
	svc := newTestService(t, repo, sessions)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Thabo M",
		Email:    "Thabo@Campus.Example",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if repo.created == nil || repo.created.Email != "thabo@campus.example" {
		t.Fatalf("email must be stored lowercased, got %+v", repo.created)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("expected token pair")
	}
	if resp.User == nil || resp.User.Role != enums.UserRoleBuyer {
		t.Fatalf("new accounts start as buyers, got %+v", resp.User)
	}
	if len(sessions.generated) != 1 {
		t.Fatalf("expected one session, got %d", len(sessions.generated))
	}

	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("parse minted token: %v", err)
	}
	if claims.UserID != repo.created.ID || claims.Role != enums.UserRoleBuyer {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	repo.add(activeUser(t, "thabo@campus.example", "pw-irrelevant"))
	svc := newTestService(t, repo, &stubSessions{})

	_, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Thabo M",
		Email:    "thabo@campus.example",
		Password: "correct-horse",
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestLoginVerifiesPassword(t *testing.T) {
	repo := newStubUserRepo()
	repo.add(activeUser(t, "thabo@campus.example", "correct-horse"))
	sessions := &stubSessions{}
	svc := newTestService(t, repo, sessions)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "THABO@campus.example",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatal("expected access token")
	}
	if repo.lastLogin == nil {
		t.Fatal("last login must be recorded")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	repo.add(activeUser(t, "thabo@campus.example", "correct-horse"))
	svc := newTestService(t, repo, &stubSessions{})

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "thabo@campus.example",
		Password: "wrong-horse",
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginUnknownEmailSameError(t *testing.T) {
	svc := newTestService(t, newStubUserRepo(), &stubSessions{})

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@campus.example",
		Password: "whatever",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if typed.Message() != invalidCredentialsMessage {
		t.Fatalf("unknown email must not be distinguishable: %q", typed.Message())
	}
}

func TestLoginInactiveAccount(t *testing.T) {
	repo := newStubUserRepo()
	user := activeUser(t, "thabo@campus.example", "correct-horse")
	user.IsActive = false
	repo.add(user)
	svc := newTestService(t, repo, &stubSessions{})

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "thabo@campus.example",
		Password: "correct-horse",
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for inactive account, got %v", err)
	}
}

func TestRefreshRotatesSession(t *testing.T) {
	repo := newStubUserRepo()
	user := activeUser(t, "thabo@campus.example", "correct-horse")
	repo.add(user)
	sessions := &stubSessions{}
	svc := newTestService(t, repo, sessions)

	accessToken, err := pkgauth.MintAccessToken(testJWTConfig(), time.Now().UTC(), pkgauth.AccessTokenPayload{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		JTI:    session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	resp, err := svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  accessToken,
		RefreshToken: "refresh-whatever",
	})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}

	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("parse rotated token: %v", err)
	}
	if claims.ID != sessions.rotatedID {
		t.Fatalf("new token must carry the rotated access id, got %q want %q", claims.ID, sessions.rotatedID)
	}
	if resp.RefreshToken != "refresh-"+sessions.rotatedID {
		t.Fatalf("unexpected refresh token %q", resp.RefreshToken)
	}
}

func TestRefreshInvalidRefreshToken(t *testing.T) {
	repo := newStubUserRepo()
	user := activeUser(t, "thabo@campus.example", "correct-horse")
	repo.add(user)
	svc := newTestService(t, repo, &stubSessions{rotateErr: session.ErrInvalidRefreshToken})

	accessToken, err := pkgauth.MintAccessToken(testJWTConfig(), time.Now().UTC(), pkgauth.AccessTokenPayload{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		JTI:    session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	_, err = svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  accessToken,
		RefreshToken: "stolen",
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestRefreshGarbageAccessToken(t *testing.T) {
	svc := newTestService(t, newStubUserRepo(), &stubSessions{})

	_, err := svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  "not-a-jwt",
		RefreshToken: "whatever",
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestProfile(t *testing.T) {
	repo := newStubUserRepo()
	user := activeUser(t, "thabo@campus.example", "correct-horse")
	repo.add(user)
	svc := newTestService(t, repo, &stubSessions{})

	profile, err := svc.Profile(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if profile.ID != user.ID || profile.Email != user.Email {
		t.Fatalf("unexpected profile: %+v", profile)
	}

	_, err = svc.Profile(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestLogout(t *testing.T) {
	sessions := &stubSessions{}
	svc := newTestService(t, newStubUserRepo(), sessions)

	if err := svc.Logout(context.Background(), "access-id-1"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if len(sessions.revoked) != 1 || sessions.revoked[0] != "access-id-1" {
		t.Fatalf("expected revoke call, got %+v", sessions.revoked)
	}

	err := svc.Logout(context.Background(), "  ")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for blank access id, got %v", err)
	}
}
