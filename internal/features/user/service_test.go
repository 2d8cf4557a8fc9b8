package user

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/sampledev-eng/freshcart-express-backend/internal/servererrors"
	"golang.org/x/crypto/bcrypt"
)

type fakeStore struct {
	usersByEmail map[string]*User
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		usersByEmail: make(map[string]*User),
	}
}

func (f *fakeStore) createOne(_ context.Context, email, hashedPassword string) (*User, error) {
	newUser := &User{
		UserID:         uuid.New(),
		Email:          email,
		HashedPassword: hashedPassword,
		IsActive:       true,
	}
	f.usersByEmail[email] = newUser

	return newUser, nil
}

func (f *fakeStore) findByEmail(_ context.Context, email string) (*User, error) {
	return f.usersByEmail[email], nil
}

func (f *fakeStore) findByID(_ context.Context, userID uuid.UUID) (*User, error) {
	for _, u := range f.usersByEmail {
		if u.UserID == userID {
			return u, nil
		}
	}

	return nil, nil
}

func (f *fakeStore) updateProfileImage(_ context.Context, userID uuid.UUID, imagePath string) (bool, error) {
	for _, u := range f.usersByEmail {
		if u.UserID == userID {
			u.ProfileImage = imagePath
			return true, nil
		}
	}

	return false, nil
}

func (f *fakeStore) setResetCode(_ context.Context, email, code string) (bool, error) {
	u, ok := f.usersByEmail[email]
	if !ok {
		return false, nil
	}

	u.ResetCode = code

	return true, nil
}

func (f *fakeStore) resetPassword(_ context.Context, email, code, newHashedPassword string) (bool, error) {
	u, ok := f.usersByEmail[email]
	if !ok || u.ResetCode == "" || u.ResetCode != code {
		return false, nil
	}

	u.HashedPassword = newHashedPassword
	u.ResetCode = ""

	return true, nil
}

func Test_service_RegisterHashesPassword(t *testing.T) {
	store := newFakeStore()
	userService := NewService(store, t.TempDir())

	newUser, err := userService.register(
		context.Background(),
		&RegisterUserRequest{Email: "Jane@Example.com", Password: "hunter2hunter2"},
	)
	if err != nil {
		t.Fatal(err)
	}

	if newUser.Email != "jane@example.com" {
		t.Errorf("expected normalized email, got %q", newUser.Email)
	}

	if newUser.HashedPassword == "hunter2hunter2" {
		t.Fatal("password stored in plaintext")
	}

	err = bcrypt.CompareHashAndPassword(
		[]byte(newUser.HashedPassword),
		[]byte("hunter2hunter2"),
	)
	if err != nil {
		t.Error("stored hash does not verify against the password")
	}
}

func Test_service_RegisterDuplicateEmail(t *testing.T) {
	store := newFakeStore()
	userService := NewService(store, t.TempDir())
	ctx := context.Background()

	req := &RegisterUserRequest{Email: "jane@example.com", Password: "hunter2hunter2"}
	if _, err := userService.register(ctx, req); err != nil {
		t.Fatal(err)
	}

	_, err := userService.register(
		ctx,
		&RegisterUserRequest{Email: "jane@example.com", Password: "otherpassword"},
	)
	if !errors.Is(err, servererrors.ErrEmailAlreadyExists) {
		t.Errorf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func Test_service_PasswordResetFlow(t *testing.T) {
	store := newFakeStore()
	userService := NewService(store, t.TempDir())
	ctx := context.Background()

	if _, err := userService.register(
		ctx,
		&RegisterUserRequest{Email: "jane@example.com", Password: "hunter2hunter2"},
	); err != nil {
		t.Fatal(err)
	}

	if err := userService.forgotPassword(ctx, "nobody@example.com"); !errors.Is(err, servererrors.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound for unknown email, got %v", err)
	}

	if err := userService.forgotPassword(ctx, "jane@example.com"); err != nil {
		t.Fatal(err)
	}

	code := store.usersByEmail["jane@example.com"].ResetCode
	if code == "" {
		t.Fatal("expected a reset code to be stored")
	}

	err := userService.resetPassword(ctx, &ResetPasswordRequest{
		Email:       "jane@example.com",
		Code:        "wrong-code",
		NewPassword: "newpassword1",
	})
	if !errors.Is(err, servererrors.ErrInvalidResetCode) {
		t.Errorf("expected ErrInvalidResetCode, got %v", err)
	}

	err = userService.resetPassword(ctx, &ResetPasswordRequest{
		Email:       "jane@example.com",
		Code:        code,
		NewPassword: "newpassword1",
	})
	if err != nil {
		t.Fatal(err)
	}

	updated := store.usersByEmail["jane@example.com"]
	if updated.ResetCode != "" {
		t.Error("expected reset code to be cleared")
	}

	err = bcrypt.CompareHashAndPassword(
		[]byte(updated.HashedPassword),
		[]byte("newpassword1"),
	)
	if err != nil {
		t.Error("new password does not verify after reset")
	}
}

func Test_service_UpdateProfileUnknownUser(t *testing.T) {
	userService := NewService(newFakeStore(), t.TempDir())

	imagePath := "media/avatar.png"
	_, err := userService.updateProfile(
		context.Background(),
		&UpdateProfileRequest{UserID: uuid.New(), ProfileImage: &imagePath},
	)
	if !errors.Is(err, servererrors.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}
