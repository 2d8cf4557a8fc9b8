package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/sampledev-eng/freshcart-express-backend/internal/handlerutils"
	"github.com/sampledev-eng/freshcart-express-backend/internal/servererrors"
)

type contextKey struct{}

var EntityKey contextKey = contextKey{}

// AuthWithContext guards h behind a valid access token presented as an
// "Authorization: Bearer <token>" header and puts the token's subject email
// on the request context.
func (mw *middleware) AuthWithContext(h handlerutils.APIHandler) handlerutils.APIHandler {
	return func(w http.ResponseWriter, r *http.Request) error {
		authHeader := r.Header.Get("Authorization")

		tokenStr, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || tokenStr == "" {
			return servererrors.New(
				http.StatusUnauthorized,
				servererrors.ErrNoAuthorizationHeader.Error(),
				nil,
			)
		}

		isValid, claims, err := mw.jwtManager.ValidateAccessToken(tokenStr)
		if err != nil {
			return err
		}

		if !isValid {
			return servererrors.New(
				http.StatusUnauthorized,
				servererrors.ErrUnauthorized.Error(),
				nil,
			)
		}

		ctx := context.WithValue(
			r.Context(),
			EntityKey,
			claims.Email,
		)
		r = r.WithContext(ctx)

		return h(w, r)
	}
}

func GetUserEmailFromContext(ctx context.Context) string {
	email, ok := ctx.Value(EntityKey).(string)
	if !ok {
		return ""
	}

	return email
}
