package services

import (
	"context"
	"errors"
	"log"

	"school-backend/internal/apperr"
	"school-backend/internal/auth"
	"school-backend/internal/cache"
	"school-backend/internal/models"
	"school-backend/internal/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// UserService handles accounts and login. Admin accounts are created once
// through the initial signup (closed as soon as an admin exists) or by an
// existing admin; teacher accounts are tied to a teacher record.
type UserService struct {
	users    *repositories.UserRepository
	teachers *repositories.TeacherRepository
	jwt      *auth.JWTManager
	logger   *log.Logger
}

func NewUserService(users *repositories.UserRepository, teachers *repositories.TeacherRepository,
	jwt *auth.JWTManager, logger *log.Logger) *UserService {
	return &UserService{users: users, teachers: teachers, jwt: jwt, logger: logger}
}

// Login verifies credentials and issues a JWT. Accounts with 2FA enabled
// get a short-lived temp token instead; the caller must follow up with the
// TOTP code to trade it for a real token.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.Unauthorized("invalid username or password")
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, apperr.Unauthorized("account is disabled")
	}

	if _, ok := cache.GetCachedAuth(ctx, req.Username, req.Password); !ok {
		if !auth.VerifyPassword(user.PasswordHash, req.Password) {
			return nil, apperr.Unauthorized("invalid username or password")
		}
		cache.CacheAuth(ctx, req.Username, req.Password, int64(user.ID))
	}

	if user.TOTPEnabled {
		tempToken, err := s.jwt.GenerateTempToken(user)
		if err != nil {
			return nil, err
		}
		return &models.AuthResponse{
			TempToken:   tempToken,
			RequiresOTP: true,
			Username:    user.Username,
			Role:        user.Role,
			Message:     "OTP verification required",
		}, nil
	}

	token, err := s.jwt.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	s.logger.Printf("[Auth] user %s logged in", user.Username)
	return &models.AuthResponse{
		Token:     token,
		Username:  user.Username,
		Role:      user.Role,
		TeacherID: user.TeacherID,
		FullName:  user.FullName,
		Message:   "login successful",
	}, nil
}

// Signup creates the initial admin account. Once any admin exists this
// path is closed and new accounts must come from an admin.
func (s *UserService) Signup(ctx context.Context, req *models.SignupRequest) (*models.User, error) {
	exists, err := s.users.ExistsByRole(ctx, models.RoleAdmin)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Forbidden("signup is closed; ask an administrator to create your account")
	}
	return s.createUser(ctx, req.Username, req.Password, req.FullName, models.RoleAdmin, "")
}

// CreateAdmin adds another admin account. Caller must already be an admin.
func (s *UserService) CreateAdmin(ctx context.Context, req *models.SignupRequest) (*models.User, error) {
	return s.createUser(ctx, req.Username, req.Password, req.FullName, models.RoleAdmin, "")
}

// CreateTeacherAccount creates a login for an existing teacher record.
// The teacher ID doubles as the username.
func (s *UserService) CreateTeacherAccount(ctx context.Context, req *models.CreateTeacherAccountRequest) (*models.User, error) {
	if _, err := s.teachers.GetByTeacherID(ctx, req.TeacherID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("teacher not found: %s", req.TeacherID)
		}
		return nil, err
	}
	return s.createUser(ctx, req.TeacherID, req.Password, req.FullName, models.RoleTeacher, req.TeacherID)
}

func (s *UserService) createUser(ctx context.Context, username, password, fullName, role, teacherID string) (*models.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		TeacherID:    teacherID,
		FullName:     fullName,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperr.Conflict("username already taken: %s", username)
		}
		return nil, err
	}

	s.logger.Printf("[Auth] created %s account %s", role, username)
	return user, nil
}

// ChangePassword verifies the old password before setting the new one and
// drops any cached credentials for the account.
func (s *UserService) ChangePassword(ctx context.Context, userID int, req *models.ChangePasswordRequest) error {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound("user not found")
		}
		return err
	}
	if !auth.VerifyPassword(user.PasswordHash, req.OldPassword) {
		return apperr.Unauthorized("old password is incorrect")
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}

	cache.InvalidateAuth(ctx, user.Username, req.OldPassword)
	s.logger.Printf("[Auth] user %s changed password", user.Username)
	return nil
}
