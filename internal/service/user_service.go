// internal/service/user_service.go
//go:generate mockery --name UserService --output ./mocks --outpkg mocks --case=underscore --structname MockUserService --filename mock_user_service.go
package service

import (
	"context"
	"errors"
	"strings"

	"cinepetro_api/internal/config"
	"cinepetro_api/internal/middleware"
	"cinepetro_api/internal/model"
	"cinepetro_api/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService はユーザーの登録と管理。
// 本人か管理者かの判定はハンドラで行い、ここでは存在確認のみ。
type UserService interface {
	CreateUser(ctx context.Context, req *model.CreateUserRequest) (*model.User, error)
	ListUsers(ctx context.Context) ([]*model.User, error)
	GetUser(ctx context.Context, userID uint) (*model.User, error)
	UpdateUser(ctx context.Context, userID uint, req *model.UpdateUserRequest) (*model.User, error)
	DeleteUser(ctx context.Context, userID uint) error
}

type userService struct {
	db           *gorm.DB
	userRepo     repository.UserRepository
	progressRepo repository.ProgressRepository
	mailer       Mailer
	cfg          *config.Config
}

func NewUserService(db *gorm.DB, userRepo repository.UserRepository, progressRepo repository.ProgressRepository, mailer Mailer, cfg *config.Config) UserService {
	return &userService{
		db:           db,
		userRepo:     userRepo,
		progressRepo: progressRepo,
		mailer:       mailer,
		cfg:          cfg,
	}
}

func (s *userService) CreateUser(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	logger := middleware.GetLogger(ctx).With("email", email)
	var newUser *model.User

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := s.userRepo.FindByEmail(ctx, tx, email)
		if err == nil {
			logger.Warn("Email already exists")
			return model.NewAppError("DUPLICATE_EMAIL", "Este e-mail já está cadastrado.", "email", model.ErrConflict)
		}
		if !errors.Is(err, model.ErrNotFound) {
			logger.Error("Failed to check email existence", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Ocorreu um erro interno no servidor.", "", err)
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			logger.Error("Failed to hash password", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Erro ao processar a senha.", "", err)
		}

		user := &model.User{
			Name:         strings.TrimSpace(req.Name),
			Email:        email,
			PasswordHash: string(hashedPassword),
			IsAdmin:      s.isAdminEmail(email),
		}
		if err := s.userRepo.Create(ctx, tx, user); err != nil {
			// 重複チェック後に別リクエストが同じ email で登録した
			if errors.Is(err, model.ErrConflict) {
				logger.Warn("Conflict during user creation (race condition)")
				return model.NewAppError("DUPLICATE_EMAIL", "Este e-mail já está cadastrado.", "email", model.ErrConflict)
			}
			logger.Error("Failed to create user in DB", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Erro ao criar o usuário.", "", err)
		}
		newUser = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	// メール送信の失敗で登録は失敗させない
	subject, body := welcomeMail(s.cfg.App.Name, newUser.Name)
	if err := s.mailer.Send(ctx, newUser.Email, subject, body); err != nil {
		logger.Error("Failed to send welcome email", "error", err, "user_id", newUser.ID)
	}

	logger.Info("User registered", "user_id", newUser.ID, "is_admin", newUser.IsAdmin)
	return newUser, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]*model.User, error) {
	logger := middleware.GetLogger(ctx)
	users, err := s.userRepo.FindAll(ctx, s.db)
	if err != nil {
		logger.Error("Failed to list users", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Erro ao listar usuários.", "", err)
	}
	return users, nil
}

func (s *userService) GetUser(ctx context.Context, userID uint) (*model.User, error) {
	logger := middleware.GetLogger(ctx).With("target_user_id", userID)
	user, err := s.userRepo.FindByID(ctx, s.db, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Warn("User not found")
			return nil, model.NewAppError("USER_NOT_FOUND", "Usuário não encontrado.", "", model.ErrNotFound)
		}
		logger.Error("Failed to get user", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Ocorreu um erro interno no servidor.", "", err)
	}
	return user, nil
}

func (s *userService) UpdateUser(ctx context.Context, userID uint, req *model.UpdateUserRequest) (*model.User, error) {
	logger := middleware.GetLogger(ctx).With("target_user_id", userID)
	var updated *model.User

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := s.userRepo.FindByID(ctx, tx, userID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("USER_NOT_FOUND", "Usuário não encontrado.", "", model.ErrNotFound)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Ocorreu um erro interno no servidor.", "", err)
		}

		updates := make(map[string]interface{})
		if req.Name != nil {
			updates["name"] = strings.TrimSpace(*req.Name)
		}
		if req.Password != nil {
			hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
			if err != nil {
				logger.Error("Failed to hash password", "error", err)
				return model.NewAppError("INTERNAL_SERVER_ERROR", "Erro ao processar a senha.", "", err)
			}
			updates["password_hash"] = string(hashed)
		}
		if req.IsAdmin != nil {
			updates["is_admin"] = *req.IsAdmin
		}

		if len(updates) > 0 {
			if err := s.userRepo.Update(ctx, tx, userID, updates); err != nil {
				if errors.Is(err, model.ErrNotFound) {
					return model.NewAppError("USER_NOT_FOUND", "Usuário não encontrado.", "", model.ErrNotFound)
				}
				logger.Error("Failed to update user", "error", err)
				return model.NewAppError("INTERNAL_SERVER_ERROR", "Erro ao atualizar o usuário.", "", err)
			}
			user, err = s.userRepo.FindByID(ctx, tx, userID)
			if err != nil {
				return model.NewAppError("INTERNAL_SERVER_ERROR", "Erro ao atualizar o usuário.", "", err)
			}
		}
		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("User updated")
	return updated, nil
}

// DeleteUser はユーザーを論理削除し、視聴進捗は物理削除する
func (s *userService) DeleteUser(ctx context.Context, userID uint) error {
	logger := middleware.GetLogger(ctx).With("target_user_id", userID)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.progressRepo.DeleteByUser(ctx, tx, userID); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Erro ao remover o usuário.", "", err)
		}
		if err := s.userRepo.Delete(ctx, tx, userID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("USER_NOT_FOUND", "Usuário não encontrado.", "", model.ErrNotFound)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Erro ao remover o usuário.", "", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Warn("User not found for deletion")
		} else {
			logger.Error("Failed to delete user", "error", err)
		}
		return err
	}

	logger.Info("User deleted")
	return nil
}

func (s *userService) isAdminEmail(email string) bool {
	for _, admin := range s.cfg.Auth.AdminEmails {
		if strings.EqualFold(strings.TrimSpace(admin), email) {
			return true
		}
	}
	return false
}
