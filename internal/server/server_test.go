package server

import (
	"context"
	"net"
	"testing"

	v1 "github.com/emrgen/cms/apis/v1"
	"github.com/emrgen/cms/internal/cache"
	"github.com/emrgen/cms/internal/config"
	"github.com/emrgen/cms/internal/module"
	"github.com/emrgen/cms/internal/queue"
	"github.com/emrgen/cms/internal/store"
	"github.com/emrgen/cms/internal/tester"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"
)

func newTestServices(t *testing.T) (*Services, *queue.MemoryQueue) {
	t.Helper()

	events := queue.NewMemoryQueue()
	services := NewServices(
		store.NewGormStore(tester.TestDB(t)),
		cache.NewNopContentCache(),
		events,
		config.SchemaConfig{DefaultLanguage: "en"},
	)
	return services, events
}

type testClient struct {
	schema  v1.SchemaServiceClient
	content v1.ContentServiceClient
	tree    v1.TreeServiceClient
}

// newTestClient serves the grpc api over an in-memory listener and returns
// clients that call it as actor.
func newTestClient(t *testing.T, services *Services, actor string) *testClient {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	grpcServer := NewGrpcServer(services)
	go func() {
		_ = grpcServer.Serve(lis)
	}()
	t.Cleanup(grpcServer.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithChainUnaryInterceptor(
			module.UnaryClientActorInterceptor(actor),
			UnaryRequestTimeInterceptor(),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = conn.Close()
	})

	return &testClient{
		schema:  v1.NewSchemaServiceClient(conn),
		content: v1.NewContentServiceClient(conn),
		tree:    v1.NewTreeServiceClient(conn),
	}
}

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestListen(t *testing.T) {
	gl, rl, err := listen("127.0.0.1:0", "127.0.0.1:0")
	require.NoError(t, err)
	require.NoError(t, gl.Close())
	require.NoError(t, rl.Close())
}

func TestListen_HttpPortTaken(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	grpcAddr := freeAddr(t)
	_, _, err = listen(grpcAddr, busy.Addr().String())
	require.Error(t, err)

	// the grpc listener was released
	again, err := net.Listen("tcp", grpcAddr)
	require.NoError(t, err)
	require.NoError(t, again.Close())
}
