package middlewares

import (
	"context"
	"net/http"

	"devtinder_server/helpers"
	"devtinder_server/models"
	"devtinder_server/services"
	"devtinder_server/utils"
)

// TokenCookie is the cookie carrying the auth token
const TokenCookie = "token"

type contextKey string

const userContextKey contextKey = "authedUser"

// UserAuth resolves the token cookie to a user record and injects it
// into the request context. Requests without a valid token get 401.
func UserAuth(users *services.UserService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(TokenCookie)
			if err != nil || cookie.Value == "" {
				helpers.WriteError(w, http.StatusUnauthorized, "Please login")
				return
			}

			userID, err := utils.VerifyToken(cookie.Value)
			if err != nil {
				helpers.WriteError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			user, err := users.GetUserByID(r.Context(), userID)
			if err != nil {
				helpers.WriteError(w, http.StatusUnauthorized, "Please login")
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the authenticated user stored by UserAuth
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userContextKey).(*models.User)
	return user, ok
}
