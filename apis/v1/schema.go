package v1

import (
	"context"
	"encoding/json"

	"google.golang.org/grpc"
)

const (
	SchemaService_DefineCollection_FullMethodName = "/cms.v1.SchemaService/DefineCollection"
	SchemaService_DefineField_FullMethodName      = "/cms.v1.SchemaService/DefineField"
	SchemaService_DefineRelation_FullMethodName   = "/cms.v1.SchemaService/DefineRelation"
	SchemaService_ResolveSchema_FullMethodName    = "/cms.v1.SchemaService/ResolveSchema"
	SchemaService_ListCollections_FullMethodName  = "/cms.v1.SchemaService/ListCollections"
	SchemaService_GetCollection_FullMethodName    = "/cms.v1.SchemaService/GetCollection"
)

type DefineCollectionRequest struct {
	Name         string          `json:"name"`
	Hidden       bool            `json:"hidden"`
	Singleton    bool            `json:"singleton"`
	Icon         json.RawMessage `json:"icon,omitempty"`
	Note         json.RawMessage `json:"note,omitempty"`
	Translations json.RawMessage `json:"translations,omitempty"`
}

func (r *DefineCollectionRequest) Validate() error {
	return required("name", r.Name)
}

type DefineCollectionResponse struct {
	Collection *Collection `json:"collection"`
}

type DefineFieldRequest struct {
	Collection string          `json:"collection"`
	Field      string          `json:"field"`
	Type       string          `json:"type"`
	Schema     json.RawMessage `json:"schema,omitempty"`
	Interface  json.RawMessage `json:"interface,omitempty"`
	Options    json.RawMessage `json:"options,omitempty"`
}

func (r *DefineFieldRequest) Validate() error {
	return required("collection", r.Collection, "field", r.Field, "type", r.Type)
}

type DefineFieldResponse struct {
	Field *Field `json:"field"`
}

type DefineRelationRequest struct {
	ManyCollection string  `json:"many_collection"`
	OneCollection  string  `json:"one_collection"`
	FieldMany      string  `json:"field_many"`
	FieldOne       string  `json:"field_one"`
	Type           string  `json:"type"`
	Junction       *string `json:"junction,omitempty"`
}

func (r *DefineRelationRequest) Validate() error {
	return required(
		"many_collection", r.ManyCollection,
		"one_collection", r.OneCollection,
		"field_many", r.FieldMany,
		"field_one", r.FieldOne,
		"type", r.Type,
	)
}

type DefineRelationResponse struct {
	Relation *Relation `json:"relation"`
}

type ResolveSchemaRequest struct {
	Collection string `json:"collection"`
}

func (r *ResolveSchemaRequest) Validate() error {
	return required("collection", r.Collection)
}

type ResolveSchemaResponse struct {
	Collection *Collection `json:"collection"`
	Fields     []*Field    `json:"fields"`
	Relations  []*Relation `json:"relations"`
}

type ListCollectionsRequest struct {
	IncludeHidden bool `json:"include_hidden"`
}

type ListCollectionsResponse struct {
	Collections []*Collection `json:"collections"`
}

type GetCollectionRequest struct {
	Name string `json:"name"`
}

func (r *GetCollectionRequest) Validate() error {
	return required("name", r.Name)
}

type GetCollectionResponse struct {
	Collection *Collection `json:"collection"`
}

// SchemaServiceServer is the server API for the cms.v1.SchemaService service.
type SchemaServiceServer interface {
	DefineCollection(context.Context, *DefineCollectionRequest) (*DefineCollectionResponse, error)
	DefineField(context.Context, *DefineFieldRequest) (*DefineFieldResponse, error)
	DefineRelation(context.Context, *DefineRelationRequest) (*DefineRelationResponse, error)
	ResolveSchema(context.Context, *ResolveSchemaRequest) (*ResolveSchemaResponse, error)
	ListCollections(context.Context, *ListCollectionsRequest) (*ListCollectionsResponse, error)
	GetCollection(context.Context, *GetCollectionRequest) (*GetCollectionResponse, error)
}

const schemaServiceName = "cms.v1.SchemaService"

var SchemaService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: schemaServiceName,
	HandlerType: (*SchemaServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod(schemaServiceName, "DefineCollection", SchemaServiceServer.DefineCollection),
		unaryMethod(schemaServiceName, "DefineField", SchemaServiceServer.DefineField),
		unaryMethod(schemaServiceName, "DefineRelation", SchemaServiceServer.DefineRelation),
		unaryMethod(schemaServiceName, "ResolveSchema", SchemaServiceServer.ResolveSchema),
		unaryMethod(schemaServiceName, "ListCollections", SchemaServiceServer.ListCollections),
		unaryMethod(schemaServiceName, "GetCollection", SchemaServiceServer.GetCollection),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "cms/v1/schema",
}

func RegisterSchemaServiceServer(s grpc.ServiceRegistrar, srv SchemaServiceServer) {
	s.RegisterService(&SchemaService_ServiceDesc, srv)
}

// SchemaServiceClient is the client API for the cms.v1.SchemaService service.
type SchemaServiceClient interface {
	DefineCollection(ctx context.Context, in *DefineCollectionRequest, opts ...grpc.CallOption) (*DefineCollectionResponse, error)
	DefineField(ctx context.Context, in *DefineFieldRequest, opts ...grpc.CallOption) (*DefineFieldResponse, error)
	DefineRelation(ctx context.Context, in *DefineRelationRequest, opts ...grpc.CallOption) (*DefineRelationResponse, error)
	ResolveSchema(ctx context.Context, in *ResolveSchemaRequest, opts ...grpc.CallOption) (*ResolveSchemaResponse, error)
	ListCollections(ctx context.Context, in *ListCollectionsRequest, opts ...grpc.CallOption) (*ListCollectionsResponse, error)
	GetCollection(ctx context.Context, in *GetCollectionRequest, opts ...grpc.CallOption) (*GetCollectionResponse, error)
}

type schemaServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewSchemaServiceClient(cc grpc.ClientConnInterface) SchemaServiceClient {
	return &schemaServiceClient{cc}
}

func (c *schemaServiceClient) DefineCollection(ctx context.Context, in *DefineCollectionRequest, opts ...grpc.CallOption) (*DefineCollectionResponse, error) {
	return invoke[DefineCollectionResponse](ctx, c.cc, SchemaService_DefineCollection_FullMethodName, in, opts)
}

func (c *schemaServiceClient) DefineField(ctx context.Context, in *DefineFieldRequest, opts ...grpc.CallOption) (*DefineFieldResponse, error) {
	return invoke[DefineFieldResponse](ctx, c.cc, SchemaService_DefineField_FullMethodName, in, opts)
}

func (c *schemaServiceClient) DefineRelation(ctx context.Context, in *DefineRelationRequest, opts ...grpc.CallOption) (*DefineRelationResponse, error) {
	return invoke[DefineRelationResponse](ctx, c.cc, SchemaService_DefineRelation_FullMethodName, in, opts)
}

func (c *schemaServiceClient) ResolveSchema(ctx context.Context, in *ResolveSchemaRequest, opts ...grpc.CallOption) (*ResolveSchemaResponse, error) {
	return invoke[ResolveSchemaResponse](ctx, c.cc, SchemaService_ResolveSchema_FullMethodName, in, opts)
}

func (c *schemaServiceClient) ListCollections(ctx context.Context, in *ListCollectionsRequest, opts ...grpc.CallOption) (*ListCollectionsResponse, error) {
	return invoke[ListCollectionsResponse](ctx, c.cc, SchemaService_ListCollections_FullMethodName, in, opts)
}

func (c *schemaServiceClient) GetCollection(ctx context.Context, in *GetCollectionRequest, opts ...grpc.CallOption) (*GetCollectionResponse, error) {
	return invoke[GetCollectionResponse](ctx, c.cc, SchemaService_GetCollection_FullMethodName, in, opts)
}
