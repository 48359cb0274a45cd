package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// LoggingInterceptor returns a Connect interceptor that logs every RPC call.
// It logs the procedure name, member ID, duration, and any error codes/messages.
// Install it after RequireAuth so the member ID is known.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure
			memberID := GetMemberID(ctx)

			resp, err := next(ctx, req)

			duration := time.Since(start).Milliseconds()
			if err == nil {
				slog.Info("RPC ok",
					"procedure", procedure,
					"member_id", memberID,
					"duration_ms", duration,
				)
				return resp, nil
			}

			var connectErr *connect.Error
			if errors.As(err, &connectErr) && connectErr.Code() != connect.CodeInternal {
				slog.Warn("RPC error",
					"procedure", procedure,
					"code", connectErr.Code(),
					"error", connectErr.Message(),
					"member_id", memberID,
					"duration_ms", duration,
				)
			} else {
				slog.Error("RPC error",
					"procedure", procedure,
					"code", connect.CodeOf(err),
					"error", err,
					"member_id", memberID,
					"duration_ms", duration,
				)
			}
			return resp, err
		}
	}
}
