// internal/service/user_service_test.go
package service

import (
	"context"
	"errors"
	"testing"

	"cinepetro_api/internal/model"
	"cinepetro_api/internal/repository"
	"cinepetro_api/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newRealUserService(t *testing.T, mailer Mailer) (UserService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	svc := NewUserService(db, repository.NewGormUserRepository(), repository.NewGormProgressRepository(), mailer, testConfig())
	return svc, db
}

func Test_userService_CreateUser(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		req       *model.CreateUserRequest
		wantAdmin bool
	}{
		{
			name:      "正常系: 通常ユーザー",
			req:       &model.CreateUserRequest{Name: " Ana ", Email: "Ana@Example.com", Password: "senha-segura"},
			wantAdmin: false,
		},
		{
			name:      "正常系: 管理者リストのメールは is_admin=true",
			req:       &model.CreateUserRequest{Name: "Admin", Email: "ADMIN@cinepetro.com.br", Password: "senha-segura"},
			wantAdmin: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mailer := &recordingMailer{}
			svc, _ := newRealUserService(t, mailer)

			user, err := svc.CreateUser(ctx, tt.req)
			require.NoError(t, err)
			assert.NotZero(t, user.ID)
			assert.Equal(t, tt.wantAdmin, user.IsAdmin)
			assert.NotEqual(t, tt.req.Password, user.PasswordHash)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(tt.req.Password)))
			assert.Equal(t, []string{user.Email}, mailer.sent)
		})
	}

	t.Run("正常系: メール送信に失敗しても登録は成功する", func(t *testing.T) {
		mailer := mocks.NewMailer(t)
		mailer.On("Send", mock.Anything, "bia@example.com", mock.AnythingOfType("string"), mock.AnythingOfType("string")).
			Return(errors.New("smtp down")).Once()
		svc, _ := newRealUserService(t, mailer)

		user, err := svc.CreateUser(ctx, &model.CreateUserRequest{Name: "Bia", Email: "bia@example.com", Password: "senha-segura"})
		require.NoError(t, err)
		assert.Equal(t, "bia@example.com", user.Email)
	})

	t.Run("異常系: 大文字小文字違いの同じメールは DUPLICATE_EMAIL", func(t *testing.T) {
		svc, _ := newRealUserService(t, &recordingMailer{})

		_, err := svc.CreateUser(ctx, &model.CreateUserRequest{Name: "Caio", Email: "caio@example.com", Password: "senha-segura"})
		require.NoError(t, err)
		_, err = svc.CreateUser(ctx, &model.CreateUserRequest{Name: "Caio 2", Email: "CAIO@example.com", Password: "senha-segura"})

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrConflict)
		var appErr *model.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "DUPLICATE_EMAIL", appErr.Detail.Code)
		assert.Equal(t, "email", appErr.Detail.Field)
	})
}

func Test_userService_UpdateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: 名前とパスワードを更新", func(t *testing.T) {
		svc, db := newRealUserService(t, &recordingMailer{})
		user := seedUser(t, db)

		updated, err := svc.UpdateUser(ctx, user.ID, &model.UpdateUserRequest{Name: strPtr("Novo Nome"), Password: strPtr("outra-senha")})
		require.NoError(t, err)
		assert.Equal(t, "Novo Nome", updated.Name)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("outra-senha")))
	})

	t.Run("正常系: 空の更新はそのまま返す", func(t *testing.T) {
		svc, db := newRealUserService(t, &recordingMailer{})
		user := seedUser(t, db)

		updated, err := svc.UpdateUser(ctx, user.ID, &model.UpdateUserRequest{})
		require.NoError(t, err)
		assert.Equal(t, user.Name, updated.Name)
	})

	t.Run("異常系: 存在しないユーザー", func(t *testing.T) {
		svc, _ := newRealUserService(t, &recordingMailer{})

		_, err := svc.UpdateUser(ctx, 999, &model.UpdateUserRequest{Name: strPtr("x")})
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func Test_userService_DeleteUser(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: ユーザーの視聴進捗も削除される", func(t *testing.T) {
		svc, db := newRealUserService(t, &recordingMailer{})
		user := seedUser(t, db)
		other := seedUser(t, db)
		movie := seedMovie(t, db, "Filme", intPtr(100))
		progressSvc := NewProgressService(db, repository.NewGormProgressRepository())
		_, err := progressSvc.SaveProgress(ctx, user.ID, model.MovieRef(movie.ID), 10)
		require.NoError(t, err)
		_, err = progressSvc.SaveProgress(ctx, other.ID, model.MovieRef(movie.ID), 20)
		require.NoError(t, err)

		require.NoError(t, svc.DeleteUser(ctx, user.ID))

		_, err = svc.GetUser(ctx, user.ID)
		assert.ErrorIs(t, err, model.ErrNotFound)

		var remaining []model.WatchProgress
		require.NoError(t, db.Find(&remaining).Error)
		require.Len(t, remaining, 1)
		assert.Equal(t, other.ID, remaining[0].UserID)
	})

	t.Run("異常系: 存在しないユーザー", func(t *testing.T) {
		svc, _ := newRealUserService(t, &recordingMailer{})

		err := svc.DeleteUser(ctx, 12345)
		assert.ErrorIs(t, err, model.ErrNotFound)
		var appErr *model.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "USER_NOT_FOUND", appErr.Detail.Code)
	})
}

func Test_userService_ListUsers(t *testing.T) {
	svc, db := newRealUserService(t, &recordingMailer{})
	first := seedUser(t, db)
	second := seedUser(t, db)

	users, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, first.ID, users[0].ID)
	assert.Equal(t, second.ID, users[1].ID)
}
