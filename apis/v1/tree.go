package v1

import (
	"context"

	"google.golang.org/grpc"
)

const (
	TreeService_InsertTerm_FullMethodName    = "/cms.v1.TreeService/InsertTerm"
	TreeService_MoveTerm_FullMethodName      = "/cms.v1.TreeService/MoveTerm"
	TreeService_ListTerms_FullMethodName     = "/cms.v1.TreeService/ListTerms"
	TreeService_DeleteTerm_FullMethodName    = "/cms.v1.TreeService/DeleteTerm"
	TreeService_InsertNavNode_FullMethodName = "/cms.v1.TreeService/InsertNavNode"
	TreeService_MoveNavNode_FullMethodName   = "/cms.v1.TreeService/MoveNavNode"
	TreeService_ListNavNodes_FullMethodName  = "/cms.v1.TreeService/ListNavNodes"
	TreeService_DeleteNavNode_FullMethodName = "/cms.v1.TreeService/DeleteNavNode"
	TreeService_GetNavTree_FullMethodName    = "/cms.v1.TreeService/GetNavTree"
)

type InsertTermRequest struct {
	Vocabulary string  `json:"vocabulary"`
	Term       string  `json:"term"`
	ParentID   *string `json:"parent_id,omitempty"`
}

func (r *InsertTermRequest) Validate() error {
	return required("vocabulary", r.Vocabulary, "term", r.Term)
}

type InsertTermResponse struct {
	Term *Term `json:"term"`
}

type MoveTermRequest struct {
	ID       string  `json:"id"`
	ParentID *string `json:"parent_id,omitempty"`
}

func (r *MoveTermRequest) Validate() error {
	return required("id", r.ID)
}

type MoveTermResponse struct {
	Term *Term `json:"term"`
}

// ListTermsRequest lists the children of ParentID, or the roots of Vocabulary
// when ParentID is nil.
type ListTermsRequest struct {
	Vocabulary string  `json:"vocabulary,omitempty"`
	ParentID   *string `json:"parent_id,omitempty"`
}

func (r *ListTermsRequest) Validate() error {
	if r.ParentID != nil {
		return required("parent_id", *r.ParentID)
	}
	return required("vocabulary", r.Vocabulary)
}

type ListTermsResponse struct {
	Terms []*Term `json:"terms"`
}

type DeleteTermRequest struct {
	ID      string `json:"id"`
	Cascade bool   `json:"cascade,omitempty"`
}

func (r *DeleteTermRequest) Validate() error {
	return required("id", r.ID)
}

type DeleteTermResponse struct {
	Deleted int `json:"deleted"`
}

type InsertNavNodeRequest struct {
	Label    string  `json:"label"`
	Path     string  `json:"path"`
	ParentID *string `json:"parent_id,omitempty"`
	Order    int     `json:"order,omitempty"`
	Visible  *bool   `json:"visible,omitempty"`
}

func (r *InsertNavNodeRequest) Validate() error {
	return required("label", r.Label)
}

type InsertNavNodeResponse struct {
	Node *NavNode `json:"node"`
}

type MoveNavNodeRequest struct {
	ID       string  `json:"id"`
	ParentID *string `json:"parent_id,omitempty"`
	Order    *int    `json:"order,omitempty"`
}

func (r *MoveNavNodeRequest) Validate() error {
	return required("id", r.ID)
}

type MoveNavNodeResponse struct {
	Node *NavNode `json:"node"`
}

type ListNavNodesRequest struct {
	ParentID *string `json:"parent_id,omitempty"`
}

type ListNavNodesResponse struct {
	Nodes []*NavNode `json:"nodes"`
}

type DeleteNavNodeRequest struct {
	ID      string `json:"id"`
	Cascade bool   `json:"cascade,omitempty"`
}

func (r *DeleteNavNodeRequest) Validate() error {
	return required("id", r.ID)
}

type DeleteNavNodeResponse struct {
	Deleted int `json:"deleted"`
}

type GetNavTreeRequest struct {
	IncludeHidden bool `json:"include_hidden,omitempty"`
}

type GetNavTreeResponse struct {
	Nodes []*NavNode `json:"nodes"`
}

// TreeServiceServer is the server API for the cms.v1.TreeService service.
type TreeServiceServer interface {
	InsertTerm(context.Context, *InsertTermRequest) (*InsertTermResponse, error)
	MoveTerm(context.Context, *MoveTermRequest) (*MoveTermResponse, error)
	ListTerms(context.Context, *ListTermsRequest) (*ListTermsResponse, error)
	DeleteTerm(context.Context, *DeleteTermRequest) (*DeleteTermResponse, error)
	InsertNavNode(context.Context, *InsertNavNodeRequest) (*InsertNavNodeResponse, error)
	MoveNavNode(context.Context, *MoveNavNodeRequest) (*MoveNavNodeResponse, error)
	ListNavNodes(context.Context, *ListNavNodesRequest) (*ListNavNodesResponse, error)
	DeleteNavNode(context.Context, *DeleteNavNodeRequest) (*DeleteNavNodeResponse, error)
	GetNavTree(context.Context, *GetNavTreeRequest) (*GetNavTreeResponse, error)
}

const treeServiceName = "cms.v1.TreeService"

var TreeService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: treeServiceName,
	HandlerType: (*TreeServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod(treeServiceName, "InsertTerm", TreeServiceServer.InsertTerm),
		unaryMethod(treeServiceName, "MoveTerm", TreeServiceServer.MoveTerm),
		unaryMethod(treeServiceName, "ListTerms", TreeServiceServer.ListTerms),
		unaryMethod(treeServiceName, "DeleteTerm", TreeServiceServer.DeleteTerm),
		unaryMethod(treeServiceName, "InsertNavNode", TreeServiceServer.InsertNavNode),
		unaryMethod(treeServiceName, "MoveNavNode", TreeServiceServer.MoveNavNode),
		unaryMethod(treeServiceName, "ListNavNodes", TreeServiceServer.ListNavNodes),
		unaryMethod(treeServiceName, "DeleteNavNode", TreeServiceServer.DeleteNavNode),
		unaryMethod(treeServiceName, "GetNavTree", TreeServiceServer.GetNavTree),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "cms/v1/tree",
}

func RegisterTreeServiceServer(s grpc.ServiceRegistrar, srv TreeServiceServer) {
	s.RegisterService(&TreeService_ServiceDesc, srv)
}

// TreeServiceClient is the client API for the cms.v1.TreeService service.
type TreeServiceClient interface {
	InsertTerm(ctx context.Context, in *InsertTermRequest, opts ...grpc.CallOption) (*InsertTermResponse, error)
	MoveTerm(ctx context.Context, in *MoveTermRequest, opts ...grpc.CallOption) (*MoveTermResponse, error)
	ListTerms(ctx context.Context, in *ListTermsRequest, opts ...grpc.CallOption) (*ListTermsResponse, error)
	DeleteTerm(ctx context.Context, in *DeleteTermRequest, opts ...grpc.CallOption) (*DeleteTermResponse, error)
	InsertNavNode(ctx context.Context, in *InsertNavNodeRequest, opts ...grpc.CallOption) (*InsertNavNodeResponse, error)
	MoveNavNode(ctx context.Context, in *MoveNavNodeRequest, opts ...grpc.CallOption) (*MoveNavNodeResponse, error)
	ListNavNodes(ctx context.Context, in *ListNavNodesRequest, opts ...grpc.CallOption) (*ListNavNodesResponse, error)
	DeleteNavNode(ctx context.Context, in *DeleteNavNodeRequest, opts ...grpc.CallOption) (*DeleteNavNodeResponse, error)
	GetNavTree(ctx context.Context, in *GetNavTreeRequest, opts ...grpc.CallOption) (*GetNavTreeResponse, error)
}

type treeServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewTreeServiceClient(cc grpc.ClientConnInterface) TreeServiceClient {
	return &treeServiceClient{cc}
}

func (c *treeServiceClient) InsertTerm(ctx context.Context, in *InsertTermRequest, opts ...grpc.CallOption) (*InsertTermResponse, error) {
	return invoke[InsertTermResponse](ctx, c.cc, TreeService_InsertTerm_FullMethodName, in, opts)
}

func (c *treeServiceClient) MoveTerm(ctx context.Context, in *MoveTermRequest, opts ...grpc.CallOption) (*MoveTermResponse, error) {
	return invoke[MoveTermResponse](ctx, c.cc, TreeService_MoveTerm_FullMethodName, in, opts)
}

func (c *treeServiceClient) ListTerms(ctx context.Context, in *ListTermsRequest, opts ...grpc.CallOption) (*ListTermsResponse, error) {
	return invoke[ListTermsResponse](ctx, c.cc, TreeService_ListTerms_FullMethodName, in, opts)
}

func (c *treeServiceClient) DeleteTerm(ctx context.Context, in *DeleteTermRequest, opts ...grpc.CallOption) (*DeleteTermResponse, error) {
	return invoke[DeleteTermResponse](ctx, c.cc, TreeService_DeleteTerm_FullMethodName, in, opts)
}

func (c *treeServiceClient) InsertNavNode(ctx context.Context, in *InsertNavNodeRequest, opts ...grpc.CallOption) (*InsertNavNodeResponse, error) {
	return invoke[InsertNavNodeResponse](ctx, c.cc, TreeService_InsertNavNode_FullMethodName, in, opts)
}

func (c *treeServiceClient) MoveNavNode(ctx context.Context, in *MoveNavNodeRequest, opts ...grpc.CallOption) (*MoveNavNodeResponse, error) {
	return invoke[MoveNavNodeResponse](ctx, c.cc, TreeService_MoveNavNode_FullMethodName, in, opts)
}

func (c *treeServiceClient) ListNavNodes(ctx context.Context, in *ListNavNodesRequest, opts ...grpc.CallOption) (*ListNavNodesResponse, error) {
	return invoke[ListNavNodesResponse](ctx, c.cc, TreeService_ListNavNodes_FullMethodName, in, opts)
}

func (c *treeServiceClient) DeleteNavNode(ctx context.Context, in *DeleteNavNodeRequest, opts ...grpc.CallOption) (*DeleteNavNodeResponse, error) {
	return invoke[DeleteNavNodeResponse](ctx, c.cc, TreeService_DeleteNavNode_FullMethodName, in, opts)
}

func (c *treeServiceClient) GetNavTree(ctx context.Context, in *GetNavTreeRequest, opts ...grpc.CallOption) (*GetNavTreeResponse, error) {
	return invoke[GetNavTreeResponse](ctx, c.cc, TreeService_GetNavTree_FullMethodName, in, opts)
}
