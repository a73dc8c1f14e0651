package middleware

import "context"

type contextKey string

const (
	userIDKey   contextKey = "user_id"
	userRoleKey contextKey = "role"
)

// SetUserContext stores the verified identity for downstream handlers.
func SetUserContext(ctx context.Context, userID, role string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	ctx = context.WithValue(ctx, userRoleKey, role)
	return ctx
}

func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

func UserRoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(userRoleKey).(string)
	return role
}
