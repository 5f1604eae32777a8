package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image/png"
	"log"

	"school-backend/internal/apperr"
	"school-backend/internal/auth"
	"school-backend/internal/models"
	"school-backend/internal/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const totpIssuer = "SchoolBackend"

// TOTPService manages optional two-factor authentication for accounts.
type TOTPService struct {
	users  *repositories.UserRepository
	jwt    *auth.JWTManager
	logger *log.Logger
}

func NewTOTPService(users *repositories.UserRepository, jwt *auth.JWTManager, logger *log.Logger) *TOTPService {
	return &TOTPService{users: users, jwt: jwt, logger: logger}
}

// GenerateSetup creates a new TOTP secret for the user and returns it with
// a QR code. 2FA stays disabled until the user confirms a code.
func (s *TOTPService) GenerateSetup(ctx context.Context, userID int) (*models.TOTPSetupResponse, error) {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: user.Username,
		Period:      30,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return nil, err
	}

	if err := s.users.SetTOTPSecret(ctx, user.ID, key.Secret()); err != nil {
		return nil, err
	}

	qrImage, err := key.Image(200, 200)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, qrImage); err != nil {
		return nil, err
	}

	return &models.TOTPSetupResponse{
		Secret:      key.Secret(),
		QRCode:      "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()),
		Issuer:      totpIssuer,
		AccountName: user.Username,
	}, nil
}

// VerifyAndEnable confirms the code against the pending secret and turns
// 2FA on for the account.
func (s *TOTPService) VerifyAndEnable(ctx context.Context, userID int, code string) error {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound("user not found")
		}
		return err
	}
	if user.TOTPSecret == "" {
		return apperr.BadRequest("2FA setup not initiated")
	}
	if !totp.Validate(code, user.TOTPSecret) {
		return apperr.Unauthorized("invalid verification code")
	}

	if err := s.users.EnableTOTP(ctx, userID); err != nil {
		return err
	}
	s.logger.Printf("[Auth] 2FA enabled for user %s", user.Username)
	return nil
}

// VerifyLogin trades a pending temp token plus a valid TOTP code for a
// full session token.
func (s *TOTPService) VerifyLogin(ctx context.Context, req *models.VerifyOTPRequest) (*models.AuthResponse, error) {
	claims, err := s.jwt.ValidateTempToken(req.TempToken)
	if err != nil {
		return nil, apperr.Unauthorized("invalid or expired temp token")
	}

	user, err := s.users.Get(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.Unauthorized("invalid or expired temp token")
		}
		return nil, err
	}
	if !user.TOTPEnabled || user.TOTPSecret == "" {
		return nil, apperr.BadRequest("2FA is not enabled")
	}
	if !totp.Validate(req.Code, user.TOTPSecret) {
		return nil, apperr.Unauthorized("invalid verification code")
	}

	token, err := s.jwt.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	s.logger.Printf("[Auth] user %s completed 2FA login", user.Username)
	return &models.AuthResponse{
		Token:     token,
		Username:  user.Username,
		Role:      user.Role,
		TeacherID: user.TeacherID,
		FullName:  user.FullName,
		Message:   "login successful",
	}, nil
}
