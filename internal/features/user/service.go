package user

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sampledev-eng/freshcart-express-backend/internal/servererrors"
	"golang.org/x/crypto/bcrypt"
)

type storer interface {
	createOne(ctx context.Context, email, hashedPassword string) (*User, error)
	findByEmail(ctx context.Context, email string) (*User, error)
	findByID(ctx context.Context, userID uuid.UUID) (*User, error)
	updateProfileImage(ctx context.Context, userID uuid.UUID, imagePath string) (bool, error)
	setResetCode(ctx context.Context, email, code string) (bool, error)
	resetPassword(ctx context.Context, email, code, newHashedPassword string) (bool, error)
}

type service struct {
	store    storer
	mediaDir string
}

func NewService(store storer, mediaDir string) *service {
	return &service{
		store:    store,
		mediaDir: mediaDir,
	}
}

func (s *service) register(ctx context.Context, req *RegisterUserRequest) (*User, error) {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	existing, err := s.store.findByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		return nil, servererrors.ErrEmailAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword(
		[]byte(req.Password),
		bcrypt.DefaultCost,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return s.store.createOne(ctx, req.Email, string(hashedPassword))
}

func (s *service) updateProfile(ctx context.Context, req *UpdateProfileRequest) (*User, error) {
	existing, err := s.store.findByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		return nil, servererrors.ErrUserNotFound
	}

	if req.ProfileImage != nil {
		updated, err := s.store.updateProfileImage(ctx, req.UserID, *req.ProfileImage)
		if err != nil {
			return nil, err
		}

		if !updated {
			return nil, servererrors.ErrUserNotFound
		}
	}

	return s.store.findByID(ctx, req.UserID)
}

// uploadProfileImage writes the uploaded file under the media directory as
// <uuid>_<filename> and stores the resulting path on the user.
func (s *service) uploadProfileImage(ctx context.Context, userID uuid.UUID, filename string, file io.Reader) (*User, error) {
	existing, err := s.store.findByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		return nil, servererrors.ErrUserNotFound
	}

	if err := os.MkdirAll(s.mediaDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media dir: %w", err)
	}

	imagePath := filepath.Join(
		s.mediaDir,
		fmt.Sprintf("%s_%s", strings.ReplaceAll(uuid.New().String(), "-", ""), filepath.Base(filename)),
	)

	dst, err := os.Create(imagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create media file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return nil, fmt.Errorf("failed to write media file: %w", err)
	}

	if _, err := s.store.updateProfileImage(ctx, userID, imagePath); err != nil {
		return nil, err
	}

	return s.store.findByID(ctx, userID)
}

// forgotPassword stores a short random reset code on the user. Delivery of
// the code is out of scope.
func (s *service) forgotPassword(ctx context.Context, email string) error {
	existing, err := s.store.findByEmail(ctx, email)
	if err != nil {
		return err
	}

	if existing == nil {
		return servererrors.ErrUserNotFound
	}

	code := strings.Split(uuid.New().String(), "-")[0]

	if _, err := s.store.setResetCode(ctx, email, code); err != nil {
		return err
	}

	return nil
}

func (s *service) resetPassword(ctx context.Context, req *ResetPasswordRequest) error {
	hashedPassword, err := bcrypt.GenerateFromPassword(
		[]byte(req.NewPassword),
		bcrypt.DefaultCost,
	)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	updated, err := s.store.resetPassword(
		ctx,
		req.Email,
		req.Code,
		string(hashedPassword),
	)
	if err != nil {
		return err
	}

	if !updated {
		return servererrors.ErrInvalidResetCode
	}

	return nil
}
