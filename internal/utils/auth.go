package utils

import "context"

type contextKey string

// identity is what AuthMiddleware learns from a verified token.
type identity struct {
	id    uint
	email string
	role  string
}

// SetUserContext attaches the caller identity to ctx.
func SetUserContext(ctx context.Context, id uint, email string, role string) context.Context {
	return context.WithValue(ctx, identityKey, identity{id: id, email: email, role: role})
}

func identityFrom(ctx context.Context) (identity, bool) {
	id, ok := ctx.Value(identityKey).(identity)
	return id, ok
}

// GetUserIDFromContext reports the caller's user id; ok is false for
// anonymous requests.
func GetUserIDFromContext(ctx context.Context) (uint, bool) {
	id, ok := identityFrom(ctx)
	return id.id, ok
}

func GetUserEmailFromContext(ctx context.Context) string {
	id, _ := identityFrom(ctx)
	return id.email
}

func GetUserRoleFromContext(ctx context.Context) string {
	id, _ := identityFrom(ctx)
	return id.role
}

func IsStaff(ctx context.Context) bool {
	return GetUserRoleFromContext(ctx) == RoleStaff
}

func RoleFor(isStaff bool) string {
	if isStaff {
		return RoleStaff
	}
	return RoleUser
}
