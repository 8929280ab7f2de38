package mcp

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

type contextKey int

const lawyerIDKey contextKey = iota

// getLawyerID extracts the authenticated lawyer ID from context.
func getLawyerID(ctx context.Context) string {
	v, _ := ctx.Value(lawyerIDKey).(string)
	return v
}

// LawyerResolver resolves a lawyer ID from a bearer token.
type LawyerResolver interface {
	ResolveLawyer(ctx context.Context, token string) (string, error)
}

// authMiddleware implements bearer token authentication as MCP middleware.
func authMiddleware(resolver LawyerResolver) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			// Skip auth for protocol methods
			if method == "initialize" || method == "ping" {
				return next(ctx, method, req)
			}

			extra := req.GetExtra()
			if extra == nil || extra.Header == nil {
				return nil, fmt.Errorf("unauthorized: missing headers")
			}

			auth := extra.Header.Get("Authorization")
			token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
			if token == "" {
				return nil, fmt.Errorf("unauthorized: missing bearer token")
			}

			lawyerID, err := resolver.ResolveLawyer(ctx, token)
			if err != nil {
				return nil, fmt.Errorf("unauthorized: %w", err)
			}
			if lawyerID == "" {
				return nil, fmt.Errorf("unauthorized: invalid bearer token")
			}

			ctx = context.WithValue(ctx, lawyerIDKey, lawyerID)
			return next(ctx, method, req)
		}
	}
}

// noAuthMiddleware injects a fixed lawyer ID when auth is disabled.
func noAuthMiddleware(defaultLawyer string) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			ctx = context.WithValue(ctx, lawyerIDKey, defaultLawyer)
			return next(ctx, method, req)
		}
	}
}
