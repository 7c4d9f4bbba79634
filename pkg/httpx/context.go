package httpx

import "context"

type ctxKey string

// CtxKeyUserID carries the authenticated owner identifier attached by
// SessionMiddleware.
const CtxKeyUserID ctxKey = "user_id"

// UserIDFromCtx returns the authenticated user ID, or "" when the request
// did not pass through SessionMiddleware.
func UserIDFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyUserID).(string); ok {
		return v
	}
	return ""
}
