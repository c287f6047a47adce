package service

import (
	"context"
	"testing"
	"time"

	"anoa.com/magangportal/internal/entity"
	"anoa.com/magangportal/internal/modules/user/dto"
	"anoa.com/magangportal/pkg/apperror"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

type fakeUserRepo struct {
	users []*entity.User
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	f.users = append(f.users, u)
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range f.users {
		if u.ID.String() == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindRoleByName(_ context.Context, name string) (*entity.Role, error) {
	return &entity.Role{Name: name}, nil
}

func newUser(t *testing.T, email, password, role string) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &entity.User{
		ID:           uuid.New(),
		Username:     "reviewer1",
		Email:        email,
		FullName:     "Rina Reviewer",
		PasswordHash: string(hash),
		Role:         entity.Role{Name: role},
	}
}

func TestLoginIssuesToken(t *testing.T) {
	u := newUser(t, "rina@magang.local", "rahasia123", entity.RoleReviewer)
	svc := NewAuthService(&fakeUserRepo{users: []*entity.User{u}}, testSecret, 30*time.Minute, zap.NewNop()).(*authService)
	issued := time.Now().Truncate(time.Second)
	svc.now = func() time.Time { return issued }

	res, err := svc.Login(context.Background(), dto.LoginInput{Email: "rina@magang.local", Password: "rahasia123"})
	require.NoError(t, err)

	assert.Equal(t, "Bearer", res.TokenType)
	assert.Equal(t, issued.Add(30*time.Minute).Unix(), res.ExpiresIn)
	assert.Equal(t, entity.RoleReviewer, res.User.Role)

	claims := &jwt.RegisteredClaims{}
	_, err = jwt.ParseWithClaims(res.AccessToken, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	assert.Equal(t, u.ID.String(), claims.Subject)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	u := newUser(t, "rina@magang.local", "rahasia123", entity.RoleAdmin)
	svc := NewAuthService(&fakeUserRepo{users: []*entity.User{u}}, testSecret, time.Hour, zap.NewNop())

	_, err := svc.Login(context.Background(), dto.LoginInput{Email: "rina@magang.local", Password: "salah"})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	_, err = svc.Login(context.Background(), dto.LoginInput{Email: "siapa@magang.local", Password: "rahasia123"})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestLoginRefusesNonStaff(t *testing.T) {
	u := newUser(t, "tamu@magang.local", "rahasia123", "guest")
	svc := NewAuthService(&fakeUserRepo{users: []*entity.User{u}}, testSecret, time.Hour, zap.NewNop())

	_, err := svc.Login(context.Background(), dto.LoginInput{Email: "tamu@magang.local", Password: "rahasia123"})
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestMe(t *testing.T) {
	u := newUser(t, "rina@magang.local", "rahasia123", entity.RoleAdmin)
	svc := NewAuthService(&fakeUserRepo{users: []*entity.User{u}}, testSecret, time.Hour, zap.NewNop())

	res, err := svc.Me(context.Background(), u.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "rina@magang.local", res.Email)
	assert.Equal(t, entity.RoleAdmin, res.Role)

	_, err = svc.Me(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
