package cms

import (
	"io"

	v1 "github.com/emrgen/cms/apis/v1"
	"github.com/emrgen/cms/internal/module"
	"github.com/emrgen/cms/internal/server"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

type Client interface {
	io.Closer
	v1.SchemaServiceClient
	v1.ContentServiceClient
	v1.TreeServiceClient
}

type client struct {
	conn *grpc.ClientConn
	v1.SchemaServiceClient
	v1.ContentServiceClient
	v1.TreeServiceClient
}

// NewClient dials the grpc api at addr. Every call carries actor as the acting
// user id when it is not empty.
func NewClient(addr, actor string) (Client, error) {
	conn, err := grpc.NewClient(addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithChainUnaryInterceptor(
			module.UnaryClientActorInterceptor(actor),
			server.UnaryRequestTimeInterceptor(),
		),
	)
	if err != nil {
		return nil, err
	}
	return &client{
		conn:                 conn,
		SchemaServiceClient:  v1.NewSchemaServiceClient(conn),
		ContentServiceClient: v1.NewContentServiceClient(conn),
		TreeServiceClient:    v1.NewTreeServiceClient(conn),
	}, nil
}

func (c *client) Close() error {
	return c.conn.Close()
}
