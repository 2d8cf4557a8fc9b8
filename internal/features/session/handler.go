package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/sampledev-eng/freshcart-express-backend/internal/auth"
	"github.com/sampledev-eng/freshcart-express-backend/internal/handlerutils"
	"github.com/sampledev-eng/freshcart-express-backend/internal/servererrors"
	"github.com/sampledev-eng/freshcart-express-backend/internal/validate"
)

type servicer interface {
	login(ctx context.Context, email, password string) (*auth.TokenPair, error)
	refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error)
	logout(ctx context.Context, refreshToken string) error
}

type handler struct {
	service servicer
}

func NewHandler(sessionService servicer) *handler {
	return &handler{
		service: sessionService,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Post(
		"/auth/token",
		handlerutils.MakeHandler(
			h.loginHandler,
		),
	)

	router.Post(
		"/auth/refresh",
		handlerutils.MakeHandler(
			h.refreshHandler,
		),
	)

	router.Post(
		"/auth/logout",
		handlerutils.MakeHandler(
			h.logoutHandler,
		),
	)
}

// loginHandler accepts form fields username and password and returns a
// bearer token pair.
func (h *handler) loginHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	if err := r.ParseForm(); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	payload := &LoginRequest{
		Email:    r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}

	if err := validate.StructFields(payload); err != nil {
		return servererrors.New(
			http.StatusUnprocessableEntity,
			servererrors.ErrValidationFailed.Error(),
			err,
		)
	}

	tokenPair, err := h.service.login(ctx, payload.Email, payload.Password)
	if err != nil {
		switch {
		case errors.Is(err, servererrors.ErrInvalidCredentials):
			return servererrors.New(
				http.StatusUnauthorized,
				servererrors.ErrInvalidCredentials.Error(),
				nil,
			)

		default:
			return err
		}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"logged in",
		tokenPair,
	)
}

func (h *handler) refreshHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	var payload *TokenRequest
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

	tokenPair, err := h.service.refresh(ctx, payload.Token)
	if err != nil {
		switch {
		case errors.Is(err, servererrors.ErrInvalidToken),
			errors.Is(err, servererrors.ErrTokenRevoked):
			return servererrors.New(
				http.StatusUnauthorized,
				err.Error(),
				nil,
			)

		default:
			return err
		}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"token refreshed",
		tokenPair,
	)
}

func (h *handler) logoutHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	var payload *TokenRequest
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

	if err := h.service.logout(ctx, payload.Token); err != nil {
		switch {
		case errors.Is(err, servererrors.ErrInvalidToken):
			return servererrors.New(
				http.StatusUnauthorized,
				servererrors.ErrInvalidToken.Error(),
				nil,
			)

		default:
			return err
		}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"logged out",
		nil,
	)
}
