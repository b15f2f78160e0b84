package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/eduhub/WSB-BookingService/internal/api/handlers"
)

// UserIDHeader заголовок с идентификатором актора.
// Аутентификацию выполняет внешний gateway, сервис доверяет заголовку.
const UserIDHeader = "X-User-ID"

const (
	msgMissingUserID = "требуется заголовок X-User-ID"
	msgInvalidUserID = "некорректный заголовок X-User-ID"
)

type ctxKey int

const userIDKey ctxKey = iota

// Auth проверяет наличие и формат X-User-ID и кладет ID актора в контекст
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headerValue := r.Header.Get(UserIDHeader)
		if headerValue == "" {
			handlers.RespondError(w, http.StatusUnauthorized, msgMissingUserID)
			return
		}

		userID, err := strconv.ParseInt(headerValue, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondError(w, http.StatusUnauthorized, msgInvalidUserID)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFromContext возвращает ID актора, положенный Auth middleware
func UserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}
