package module

import (
	"context"
	"net/http"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

const (
	// ActorMetadataKey carries the acting user id on grpc calls.
	ActorMetadataKey = "x-actor-id"
	// ActorHeader carries the acting user id on http requests.
	ActorHeader = "X-Actor-ID"
)

type actorKey struct{}

// WithActor stores the acting user id in the context. The id is opaque, it is
// recorded on content and revisions but never checked against a user table.
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext returns the acting user id, empty when the caller sent none.
func ActorFromContext(ctx context.Context) string {
	actor, _ := ctx.Value(actorKey{}).(string)
	return actor
}

// UnaryServerActorInterceptor copies the x-actor-id metadata into the context.
func UnaryServerActorInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		return handler(WithActor(ctx, actorFromMetadata(ctx)), req)
	}
}

// UnaryClientActorInterceptor sends the given actor id with every call.
func UnaryClientActorInterceptor(actor string) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		if actor != "" {
			ctx = metadata.AppendToOutgoingContext(ctx, ActorMetadataKey, actor)
		}
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}

// HttpActorMiddleware copies the X-Actor-ID header into the request context.
func HttpActorMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := strings.TrimSpace(r.Header.Get(ActorHeader))
		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	})
}

func actorFromMetadata(ctx context.Context) string {
	headers, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}

	val := headers.Get(ActorMetadataKey)
	if len(val) == 0 {
		return ""
	}

	return strings.TrimSpace(val[0])
}
