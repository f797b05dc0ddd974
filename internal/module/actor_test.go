package module

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

func TestUnaryServerActorInterceptor(t *testing.T) {
	interceptor := UnaryServerActorInterceptor()
	handler := func(ctx context.Context, req any) (any, error) {
		return ActorFromContext(ctx), nil
	}

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(ActorMetadataKey, "alice"))
	got, err := interceptor(ctx, nil, &grpc.UnaryServerInfo{FullMethod: "/test"}, handler)
	require.NoError(t, err)
	assert.Equal(t, "alice", got)

	got, err = interceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: "/test"}, handler)
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestHttpActorMiddleware(t *testing.T) {
	var actor string
	handler := HttpActorMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor = ActorFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(ActorHeader, " bob ")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "bob", actor)
}
