package v1

import (
	"context"
	"encoding/json"
	"errors"

	"google.golang.org/grpc"
)

const (
	ContentService_CreateContent_FullMethodName     = "/cms.v1.ContentService/CreateContent"
	ContentService_UpdateContent_FullMethodName     = "/cms.v1.ContentService/UpdateContent"
	ContentService_DeleteContent_FullMethodName     = "/cms.v1.ContentService/DeleteContent"
	ContentService_GetContent_FullMethodName        = "/cms.v1.ContentService/GetContent"
	ContentService_ListContent_FullMethodName       = "/cms.v1.ContentService/ListContent"
	ContentService_ListRevisions_FullMethodName     = "/cms.v1.ContentService/ListRevisions"
	ContentService_GetRevision_FullMethodName       = "/cms.v1.ContentService/GetRevision"
	ContentService_RestoreRevision_FullMethodName   = "/cms.v1.ContentService/RestoreRevision"
	ContentService_SetTranslation_FullMethodName    = "/cms.v1.ContentService/SetTranslation"
	ContentService_DeleteTranslation_FullMethodName = "/cms.v1.ContentService/DeleteTranslation"
	ContentService_ListTranslations_FullMethodName  = "/cms.v1.ContentService/ListTranslations"
)

type CreateContentRequest struct {
	Collection string          `json:"collection"`
	Data       json.RawMessage `json:"data,omitempty"`
	Status     string          `json:"status,omitempty"`
}

func (r *CreateContentRequest) Validate() error {
	return required("collection", r.Collection)
}

type CreateContentResponse struct {
	Content *Content `json:"content"`
}

type UpdateContentRequest struct {
	ID              string          `json:"id"`
	ExpectedVersion int64           `json:"expected_version"`
	Data            json.RawMessage `json:"data,omitempty"`
	Replace         bool            `json:"replace,omitempty"`
	Status          *string         `json:"status,omitempty"`
}

func (r *UpdateContentRequest) Validate() error {
	if err := required("id", r.ID); err != nil {
		return err
	}
	if r.ExpectedVersion < 1 {
		return errors.New("expected_version must be at least 1")
	}
	return nil
}

type UpdateContentResponse struct {
	Content *Content `json:"content"`
}

type DeleteContentRequest struct {
	ID string `json:"id"`
}

func (r *DeleteContentRequest) Validate() error {
	return required("id", r.ID)
}

type DeleteContentResponse struct{}

type GetContentRequest struct {
	ID       string `json:"id"`
	Language string `json:"language,omitempty"`
}

func (r *GetContentRequest) Validate() error {
	return required("id", r.ID)
}

type GetContentResponse struct {
	Content *Content `json:"content"`
}

type ListContentRequest struct {
	Collection string `json:"collection"`
	Status     string `json:"status,omitempty"`
	Offset     int    `json:"offset,omitempty"`
	Limit      int    `json:"limit,omitempty"`
}

func (r *ListContentRequest) Validate() error {
	if err := required("collection", r.Collection); err != nil {
		return err
	}
	if r.Offset < 0 || r.Limit < 0 {
		return errors.New("offset and limit must not be negative")
	}
	return nil
}

type ListContentResponse struct {
	Items []*Content `json:"items"`
	Total int64      `json:"total"`
}

type ListRevisionsRequest struct {
	ItemID string `json:"item_id"`
}

func (r *ListRevisionsRequest) Validate() error {
	return required("item_id", r.ItemID)
}

type ListRevisionsResponse struct {
	Revisions []*Revision `json:"revisions"`
}

type GetRevisionRequest struct {
	ID string `json:"id"`
}

func (r *GetRevisionRequest) Validate() error {
	return required("id", r.ID)
}

type GetRevisionResponse struct {
	Revision *Revision `json:"revision"`
}

type RestoreRevisionRequest struct {
	RevisionID      string `json:"revision_id"`
	ExpectedVersion int64  `json:"expected_version"`
}

func (r *RestoreRevisionRequest) Validate() error {
	if err := required("revision_id", r.RevisionID); err != nil {
		return err
	}
	if r.ExpectedVersion < 1 {
		return errors.New("expected_version must be at least 1")
	}
	return nil
}

type RestoreRevisionResponse struct {
	Content *Content `json:"content"`
}

type SetTranslationRequest struct {
	ItemID   string  `json:"item_id"`
	Field    string  `json:"field"`
	Language string  `json:"language"`
	Value    *string `json:"value"`
}

func (r *SetTranslationRequest) Validate() error {
	return required("item_id", r.ItemID, "field", r.Field, "language", r.Language)
}

type SetTranslationResponse struct {
	Translation *Translation `json:"translation"`
}

type DeleteTranslationRequest struct {
	ItemID   string `json:"item_id"`
	Field    string `json:"field"`
	Language string `json:"language"`
}

func (r *DeleteTranslationRequest) Validate() error {
	return required("item_id", r.ItemID, "field", r.Field, "language", r.Language)
}

type DeleteTranslationResponse struct{}

type ListTranslationsRequest struct {
	ItemID   string `json:"item_id"`
	Language string `json:"language,omitempty"`
}

func (r *ListTranslationsRequest) Validate() error {
	return required("item_id", r.ItemID)
}

type ListTranslationsResponse struct {
	Translations []*Translation `json:"translations"`
}

// ContentServiceServer is the server API for the cms.v1.ContentService service.
type ContentServiceServer interface {
	CreateContent(context.Context, *CreateContentRequest) (*CreateContentResponse, error)
	UpdateContent(context.Context, *UpdateContentRequest) (*UpdateContentResponse, error)
	DeleteContent(context.Context, *DeleteContentRequest) (*DeleteContentResponse, error)
	GetContent(context.Context, *GetContentRequest) (*GetContentResponse, error)
	ListContent(context.Context, *ListContentRequest) (*ListContentResponse, error)
	ListRevisions(context.Context, *ListRevisionsRequest) (*ListRevisionsResponse, error)
	GetRevision(context.Context, *GetRevisionRequest) (*GetRevisionResponse, error)
	RestoreRevision(context.Context, *RestoreRevisionRequest) (*RestoreRevisionResponse, error)
	SetTranslation(context.Context, *SetTranslationRequest) (*SetTranslationResponse, error)
	DeleteTranslation(context.Context, *DeleteTranslationRequest) (*DeleteTranslationResponse, error)
	ListTranslations(context.Context, *ListTranslationsRequest) (*ListTranslationsResponse, error)
}

const contentServiceName = "cms.v1.ContentService"

var ContentService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: contentServiceName,
	HandlerType: (*ContentServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod(contentServiceName, "CreateContent", ContentServiceServer.CreateContent),
		unaryMethod(contentServiceName, "UpdateContent", ContentServiceServer.UpdateContent),
		unaryMethod(contentServiceName, "DeleteContent", ContentServiceServer.DeleteContent),
		unaryMethod(contentServiceName, "GetContent", ContentServiceServer.GetContent),
		unaryMethod(contentServiceName, "ListContent", ContentServiceServer.ListContent),
		unaryMethod(contentServiceName, "ListRevisions", ContentServiceServer.ListRevisions),
		unaryMethod(contentServiceName, "GetRevision", ContentServiceServer.GetRevision),
		unaryMethod(contentServiceName, "RestoreRevision", ContentServiceServer.RestoreRevision),
		unaryMethod(contentServiceName, "SetTranslation", ContentServiceServer.SetTranslation),
		unaryMethod(contentServiceName, "DeleteTranslation", ContentServiceServer.DeleteTranslation),
		unaryMethod(contentServiceName, "ListTranslations", ContentServiceServer.ListTranslations),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "cms/v1/content",
}

func RegisterContentServiceServer(s grpc.ServiceRegistrar, srv ContentServiceServer) {
	s.RegisterService(&ContentService_ServiceDesc, srv)
}

// ContentServiceClient is the client API for the cms.v1.ContentService service.
type ContentServiceClient interface {
	CreateContent(ctx context.Context, in *CreateContentRequest, opts ...grpc.CallOption) (*CreateContentResponse, error)
	UpdateContent(ctx context.Context, in *UpdateContentRequest, opts ...grpc.CallOption) (*UpdateContentResponse, error)
	DeleteContent(ctx context.Context, in *DeleteContentRequest, opts ...grpc.CallOption) (*DeleteContentResponse, error)
	GetContent(ctx context.Context, in *GetContentRequest, opts ...grpc.CallOption) (*GetContentResponse, error)
	ListContent(ctx context.Context, in *ListContentRequest, opts ...grpc.CallOption) (*ListContentResponse, error)
	ListRevisions(ctx context.Context, in *ListRevisionsRequest, opts ...grpc.CallOption) (*ListRevisionsResponse, error)
	GetRevision(ctx context.Context, in *GetRevisionRequest, opts ...grpc.CallOption) (*GetRevisionResponse, error)
	RestoreRevision(ctx context.Context, in *RestoreRevisionRequest, opts ...grpc.CallOption) (*RestoreRevisionResponse, error)
	SetTranslation(ctx context.Context, in *SetTranslationRequest, opts ...grpc.CallOption) (*SetTranslationResponse, error)
	DeleteTranslation(ctx context.Context, in *DeleteTranslationRequest, opts ...grpc.CallOption) (*DeleteTranslationResponse, error)
	ListTranslations(ctx context.Context, in *ListTranslationsRequest, opts ...grpc.CallOption) (*ListTranslationsResponse, error)
}

type contentServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewContentServiceClient(cc grpc.ClientConnInterface) ContentServiceClient {
	return &contentServiceClient{cc}
}

func (c *contentServiceClient) CreateContent(ctx context.Context, in *CreateContentRequest, opts ...grpc.CallOption) (*CreateContentResponse, error) {
	return invoke[CreateContentResponse](ctx, c.cc, ContentService_CreateContent_FullMethodName, in, opts)
}

func (c *contentServiceClient) UpdateContent(ctx context.Context, in *UpdateContentRequest, opts ...grpc.CallOption) (*UpdateContentResponse, error) {
	return invoke[UpdateContentResponse](ctx, c.cc, ContentService_UpdateContent_FullMethodName, in, opts)
}

func (c *contentServiceClient) DeleteContent(ctx context.Context, in *DeleteContentRequest, opts ...grpc.CallOption) (*DeleteContentResponse, error) {
	return invoke[DeleteContentResponse](ctx, c.cc, ContentService_DeleteContent_FullMethodName, in, opts)
}

func (c *contentServiceClient) GetContent(ctx context.Context, in *GetContentRequest, opts ...grpc.CallOption) (*GetContentResponse, error) {
	return invoke[GetContentResponse](ctx, c.cc, ContentService_GetContent_FullMethodName, in, opts)
}

func (c *contentServiceClient) ListContent(ctx context.Context, in *ListContentRequest, opts ...grpc.CallOption) (*ListContentResponse, error) {
	return invoke[ListContentResponse](ctx, c.cc, ContentService_ListContent_FullMethodName, in, opts)
}

func (c *contentServiceClient) ListRevisions(ctx context.Context, in *ListRevisionsRequest, opts ...grpc.CallOption) (*ListRevisionsResponse, error) {
	return invoke[ListRevisionsResponse](ctx, c.cc, ContentService_ListRevisions_FullMethodName, in, opts)
}

func (c *contentServiceClient) GetRevision(ctx context.Context, in *GetRevisionRequest, opts ...grpc.CallOption) (*GetRevisionResponse, error) {
	return invoke[GetRevisionResponse](ctx, c.cc, ContentService_GetRevision_FullMethodName, in, opts)
}

func (c *contentServiceClient) RestoreRevision(ctx context.Context, in *RestoreRevisionRequest, opts ...grpc.CallOption) (*RestoreRevisionResponse, error) {
	return invoke[RestoreRevisionResponse](ctx, c.cc, ContentService_RestoreRevision_FullMethodName, in, opts)
}

func (c *contentServiceClient) SetTranslation(ctx context.Context, in *SetTranslationRequest, opts ...grpc.CallOption) (*SetTranslationResponse, error) {
	return invoke[SetTranslationResponse](ctx, c.cc, ContentService_SetTranslation_FullMethodName, in, opts)
}

func (c *contentServiceClient) DeleteTranslation(ctx context.Context, in *DeleteTranslationRequest, opts ...grpc.CallOption) (*DeleteTranslationResponse, error) {
	return invoke[DeleteTranslationResponse](ctx, c.cc, ContentService_DeleteTranslation_FullMethodName, in, opts)
}

func (c *contentServiceClient) ListTranslations(ctx context.Context, in *ListTranslationsRequest, opts ...grpc.CallOption) (*ListTranslationsResponse, error) {
	return invoke[ListTranslationsResponse](ctx, c.cc, ContentService_ListTranslations_FullMethodName, in, opts)
}
