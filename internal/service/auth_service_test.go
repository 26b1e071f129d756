package service_test // 公開APIだけをテストする

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"cinepetro_api/internal/config"
	"cinepetro_api/internal/model"
	"cinepetro_api/internal/repository/mocks"
	"cinepetro_api/internal/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceTestSuite struct {
	suite.Suite

	mockUserRepo *mocks.UserRepository
	cfg          *config.Config
	authService  service.AuthService
	passwordHash string
}

func (s *AuthServiceTestSuite) SetupSuite() {
	hash, err := bcrypt.GenerateFromPassword([]byte("senha-correta"), bcrypt.MinCost)
	s.Require().NoError(err)
	s.passwordHash = string(hash)
}

// 各テストの前にモックを作り直す
func (s *AuthServiceTestSuite) SetupTest() {
	s.mockUserRepo = new(mocks.UserRepository)
	s.cfg = &config.Config{
		App: config.AppConfig{Name: "cinepetro-test"},
		JWT: config.JWTConfig{
			SecretKey:      "test-secret",
			AccessTokenTTL: 15 * time.Minute,
		},
	}
	s.authService = service.NewAuthService(nil, s.mockUserRepo, s.cfg)
}

func (s *AuthServiceTestSuite) TearDownTest() {
	s.mockUserRepo.AssertExpectations(s.T())
}

func TestAuthService(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func (s *AuthServiceTestSuite) TestLogin() {
	user := &model.User{ID: 42, Name: "Ana", Email: "ana@example.com", PasswordHash: "", IsAdmin: true}

	testCases := []struct {
		name        string
		req         *model.LoginRequest
		setupMocks  func()
		checkResult func(res *model.LoginResponse, err error)
	}{
		{
			name: "正常系: メールは小文字化して検索し、トークンを返す",
			req:  &model.LoginRequest{Email: "  Ana@Example.com ", Password: "senha-correta"},
			setupMocks: func() {
				u := *user
				u.PasswordHash = s.passwordHash
				s.mockUserRepo.On("FindByEmail", mock.Anything, mock.Anything, "ana@example.com").Return(&u, nil).Once()
			},
			checkResult: func(res *model.LoginResponse, err error) {
				s.Require().NoError(err)
				s.Equal("bearer", res.TokenType)
				s.Equal(uint(42), res.UserID)
				s.True(res.IsAdmin)
				s.Equal("Ana", res.Name)

				claims := &model.JWTCustomClaims{}
				token, err := jwt.ParseWithClaims(res.AccessToken, claims, func(t *jwt.Token) (interface{}, error) {
					return []byte(s.cfg.JWT.SecretKey), nil
				}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
				s.Require().NoError(err)
				s.True(token.Valid)
				s.Equal(strconv.Itoa(42), claims.Subject)
				s.Equal("cinepetro-test", claims.Issuer)
				s.True(claims.IsAdmin)
				s.NotEmpty(claims.ID)
				s.WithinDuration(time.Now().Add(15*time.Minute), claims.ExpiresAt.Time, 5*time.Second)
			},
		},
		{
			name: "異常系: パスワード不一致は AUTHENTICATION_FAILED",
			req:  &model.LoginRequest{Email: "ana@example.com", Password: "errada"},
			setupMocks: func() {
				u := *user
				u.PasswordHash = s.passwordHash
				s.mockUserRepo.On("FindByEmail", mock.Anything, mock.Anything, "ana@example.com").Return(&u, nil).Once()
			},
			checkResult: func(res *model.LoginResponse, err error) {
				s.Nil(res)
				s.ErrorIs(err, model.ErrUnauthorized)
				var appErr *model.AppError
				s.Require().ErrorAs(err, &appErr)
				s.Equal("AUTHENTICATION_FAILED", appErr.Detail.Code)
			},
		},
		{
			name: "異常系: 存在しないユーザーも同じエラー",
			req:  &model.LoginRequest{Email: "ninguem@example.com", Password: "x"},
			setupMocks: func() {
				s.mockUserRepo.On("FindByEmail", mock.Anything, mock.Anything, "ninguem@example.com").Return(nil, model.ErrNotFound).Once()
			},
			checkResult: func(res *model.LoginResponse, err error) {
				s.Nil(res)
				s.ErrorIs(err, model.ErrUnauthorized)
			},
		},
		{
			name: "異常系: DBエラー",
			req:  &model.LoginRequest{Email: "ana@example.com", Password: "x"},
			setupMocks: func() {
				s.mockUserRepo.On("FindByEmail", mock.Anything, mock.Anything, "ana@example.com").Return(nil, errors.New("db down")).Once()
			},
			checkResult: func(res *model.LoginResponse, err error) {
				s.Nil(res)
				s.Error(err)
				s.NotErrorIs(err, model.ErrUnauthorized)
			},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest()
			tc.setupMocks()

			res, err := s.authService.Login(context.Background(), tc.req)

			tc.checkResult(res, err)
			s.mockUserRepo.AssertExpectations(s.T())
		})
	}
}

func (s *AuthServiceTestSuite) TestResolvePrincipal() {
	s.Run("正常系: 現在の管理者フラグを返す", func() {
		s.SetupTest()
		s.mockUserRepo.On("FindByID", mock.Anything, mock.Anything, uint(7)).
			Return(&model.User{ID: 7, Email: "x@example.com", IsAdmin: false}, nil).Once()

		p, err := s.authService.ResolvePrincipal(context.Background(), 7)
		s.Require().NoError(err)
		s.Equal(uint(7), p.UserID)
		s.False(p.IsAdmin)
	})

	s.Run("異常系: 削除済みユーザーは NotFound", func() {
		s.SetupTest()
		s.mockUserRepo.On("FindByID", mock.Anything, mock.Anything, uint(8)).Return(nil, model.ErrNotFound).Once()

		p, err := s.authService.ResolvePrincipal(context.Background(), 8)
		s.Nil(p)
		s.ErrorIs(err, model.ErrNotFound)
	})
}
