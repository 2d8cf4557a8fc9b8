package user

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/google/uuid"
	"github.com/sampledev-eng/freshcart-express-backend/internal/handlerutils"
	"github.com/sampledev-eng/freshcart-express-backend/internal/servererrors"
	"github.com/sampledev-eng/freshcart-express-backend/internal/validate"
)

type servicer interface {
	register(ctx context.Context, req *RegisterUserRequest) (*User, error)
	updateProfile(ctx context.Context, req *UpdateProfileRequest) (*User, error)
	uploadProfileImage(ctx context.Context, userID uuid.UUID, filename string, file io.Reader) (*User, error)
	forgotPassword(ctx context.Context, email string) error
	resetPassword(ctx context.Context, req *ResetPasswordRequest) error
}

type middleware interface {
	AuthWithContext(h handlerutils.APIHandler) handlerutils.APIHandler
}

type handler struct {
	service    servicer
	middleware middleware
}

func NewHandler(userService servicer, middleware middleware) *handler {
	return &handler{
		service:    userService,
		middleware: middleware,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Post(
		"/auth/register",
		handlerutils.MakeHandler(
			h.registerHandler,
		),
	)

	router.Post(
		"/auth/forgot-password",
		handlerutils.MakeHandler(
			h.forgotPasswordHandler,
		),
	)

	router.Post(
		"/auth/reset-password",
		handlerutils.MakeHandler(
			h.resetPasswordHandler,
		),
	)

	// protected routes
	router.Put(
		"/auth/profile",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.updateProfileHandler,
			),
		),
	)

	router.Post(
		"/auth/profile/image",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.uploadProfileImageHandler,
			),
		),
	)
}

func (h *handler) registerHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	var payload *RegisterUserRequest
	defer r.Body.Close()

	if err := handlerutils.ParseJSON(r, &payload); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	if err := validate.StructFields(payload); err != nil {
		return servererrors.New(
			http.StatusUnprocessableEntity,
			servererrors.ErrValidationFailed.Error(),
			err,
		)
	}

	newUser, err := h.service.register(ctx, payload)
	if err != nil {
		switch {
		case errors.Is(err, servererrors.ErrEmailAlreadyExists):
			return servererrors.New(
				http.StatusConflict,
				servererrors.ErrEmailAlreadyExists.Error(),
				nil,
			)

		default:
			return err
		}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"user registered",
		newUser,
	)
}

func (h *handler) updateProfileHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	var payload *UpdateProfileRequest
	defer r.Body.Close()

	if err := handlerutils.ParseJSON(r, &payload); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	if err := validate.StructFields(payload); err != nil {
		return servererrors.New(
			http.StatusUnprocessableEntity,
			servererrors.ErrValidationFailed.Error(),
			err,
		)
	}

	updatedUser, err := h.service.updateProfile(ctx, payload)
	if err != nil {
		switch {
		case errors.Is(err, servererrors.ErrUserNotFound):
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrUserNotFound.Error(),
				nil,
			)

		default:
			return err
		}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"profile updated",
		updatedUser,
	)
}

func (h *handler) uploadProfileImageHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	userID, err := uuid.Parse(r.FormValue("user_id"))
	if err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}
	defer file.Close()

	updatedUser, err := h.service.uploadProfileImage(
		ctx,
		userID,
		fileHeader.Filename,
		file,
	)
	if err != nil {
		switch {
		case errors.Is(err, servererrors.ErrUserNotFound):
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrUserNotFound.Error(),
				nil,
			)

		default:
			return err
		}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"profile image uploaded",
		updatedUser,
	)
}

func (h *handler) forgotPasswordHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	email := r.URL.Query().Get("email")
	if email == "" {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrURLQueryParams.Error(),
			nil,
		)
	}

	if err := h.service.forgotPassword(ctx, email); err != nil {
		switch {
		case errors.Is(err, servererrors.ErrUserNotFound):
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrUserNotFound.Error(),
				nil,
			)

		default:
			return err
		}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"OTP sent",
		nil,
	)
}

func (h *handler) resetPasswordHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	queries := r.URL.Query()
	payload := &ResetPasswordRequest{
		Email:       queries.Get("email"),
		Code:        queries.Get("code"),
		NewPassword: queries.Get("new_password"),
	}

	if err := validate.StructFields(payload); err != nil {
		return servererrors.New(
			http.StatusUnprocessableEntity,
			servererrors.ErrURLQueryParams.Error(),
			err,
		)
	}

	if err := h.service.resetPassword(ctx, payload); err != nil {
		switch {
		case errors.Is(err, servererrors.ErrInvalidResetCode):
			return servererrors.New(
				http.StatusBadRequest,
				servererrors.ErrInvalidResetCode.Error(),
				nil,
			)

		default:
			return err
		}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"password updated",
		nil,
	)
}
