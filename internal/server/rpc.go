package server

import (
	"context"

	v1 "github.com/emrgen/cms/apis/v1"
	"github.com/emrgen/cms/internal/model"
	"github.com/emrgen/cms/internal/module"
	"github.com/emrgen/cms/internal/service"
)

// Services bundles the domain services the transports call into.
type Services struct {
	Schema       *service.SchemaRegistry
	Content      *service.ContentService
	Translations *service.TranslationService
	Taxonomy     *service.TaxonomyService
	Navigation   *service.NavigationService
}

var (
	_ v1.SchemaServiceServer  = (*SchemaServer)(nil)
	_ v1.ContentServiceServer = (*ContentServer)(nil)
	_ v1.TreeServiceServer    = (*TreeServer)(nil)
)

// SchemaServer serves cms.v1.SchemaService.
type SchemaServer struct {
	schema *service.SchemaRegistry
}

func NewSchemaServer(services *Services) *SchemaServer {
	return &SchemaServer{schema: services.Schema}
}

func (s *SchemaServer) DefineCollection(ctx context.Context, req *v1.DefineCollectionRequest) (*v1.DefineCollectionResponse, error) {
	icon, err := parseValue("icon", req.Icon)
	if err != nil {
		return nil, err
	}
	note, err := parseValue("note", req.Note)
	if err != nil {
		return nil, err
	}
	translations, err := parseValue("translations", req.Translations)
	if err != nil {
		return nil, err
	}

	collection, err := s.schema.DefineCollection(ctx, service.DefineCollectionRequest{
		Name:         req.Name,
		Hidden:       req.Hidden,
		Singleton:    req.Singleton,
		Icon:         icon,
		Note:         note,
		Translations: translations,
	})
	if err != nil {
		return nil, err
	}

	return &v1.DefineCollectionResponse{Collection: collectionToProto(collection)}, nil
}

func (s *SchemaServer) DefineField(ctx context.Context, req *v1.DefineFieldRequest) (*v1.DefineFieldResponse, error) {
	schema, err := parseValue("schema", req.Schema)
	if err != nil {
		return nil, err
	}
	iface, err := parseValue("interface", req.Interface)
	if err != nil {
		return nil, err
	}
	options, err := parseValue("options", req.Options)
	if err != nil {
		return nil, err
	}

	field, err := s.schema.DefineField(ctx, service.DefineFieldRequest{
		Collection: req.Collection,
		Field:      req.Field,
		Type:       req.Type,
		Schema:     schema,
		Interface:  iface,
		Options:    options,
	})
	if err != nil {
		return nil, err
	}

	return &v1.DefineFieldResponse{Field: fieldToProto(field)}, nil
}

func (s *SchemaServer) DefineRelation(ctx context.Context, req *v1.DefineRelationRequest) (*v1.DefineRelationResponse, error) {
	relation, err := s.schema.DefineRelation(ctx, service.DefineRelationRequest{
		ManyCollection: req.ManyCollection,
		OneCollection:  req.OneCollection,
		FieldMany:      req.FieldMany,
		FieldOne:       req.FieldOne,
		Type:           req.Type,
		Junction:       req.Junction,
	})
	if err != nil {
		return nil, err
	}

	return &v1.DefineRelationResponse{Relation: relationToProto(relation)}, nil
}

func (s *SchemaServer) ResolveSchema(ctx context.Context, req *v1.ResolveSchemaRequest) (*v1.ResolveSchemaResponse, error) {
	schema, err := s.schema.ResolveSchema(ctx, req.Collection)
	if err != nil {
		return nil, err
	}

	return &v1.ResolveSchemaResponse{
		Collection: collectionToProto(schema.Collection),
		Fields:     mapSlice(schema.Fields, fieldToProto),
		Relations:  mapSlice(schema.Relations, relationToProto),
	}, nil
}

func (s *SchemaServer) ListCollections(ctx context.Context, req *v1.ListCollectionsRequest) (*v1.ListCollectionsResponse, error) {
	collections, err := s.schema.ListCollections(ctx, req.IncludeHidden)
	if err != nil {
		return nil, err
	}

	return &v1.ListCollectionsResponse{Collections: mapSlice(collections, collectionToProto)}, nil
}

func (s *SchemaServer) GetCollection(ctx context.Context, req *v1.GetCollectionRequest) (*v1.GetCollectionResponse, error) {
	collection, err := s.schema.GetCollection(ctx, req.Name)
	if err != nil {
		return nil, err
	}

	return &v1.GetCollectionResponse{Collection: collectionToProto(collection)}, nil
}

// ContentServer serves cms.v1.ContentService. The acting user comes from the
// request context.
type ContentServer struct {
	content      *service.ContentService
	translations *service.TranslationService
}

func NewContentServer(services *Services) *ContentServer {
	return &ContentServer{content: services.Content, translations: services.Translations}
}

func (c *ContentServer) CreateContent(ctx context.Context, req *v1.CreateContentRequest) (*v1.CreateContentResponse, error) {
	data, err := parseValue("data", req.Data)
	if err != nil {
		return nil, err
	}

	content, err := c.content.CreateContent(ctx, service.CreateContentRequest{
		Collection: req.Collection,
		Data:       data,
		CreatedBy:  module.ActorFromContext(ctx),
		Status:     req.Status,
	})
	if err != nil {
		return nil, err
	}

	return &v1.CreateContentResponse{Content: contentToProto(content)}, nil
}

func (c *ContentServer) UpdateContent(ctx context.Context, req *v1.UpdateContentRequest) (*v1.UpdateContentResponse, error) {
	data, err := parseValue("data", req.Data)
	if err != nil {
		return nil, err
	}

	content, err := c.content.UpdateContent(ctx, service.UpdateContentRequest{
		ID:              req.ID,
		ExpectedVersion: req.ExpectedVersion,
		Data:            data,
		Replace:         req.Replace,
		Status:          req.Status,
		Actor:           module.ActorFromContext(ctx),
	})
	if err != nil {
		return nil, err
	}

	return &v1.UpdateContentResponse{Content: contentToProto(content)}, nil
}

func (c *ContentServer) DeleteContent(ctx context.Context, req *v1.DeleteContentRequest) (*v1.DeleteContentResponse, error) {
	if err := c.content.DeleteContent(ctx, req.ID, module.ActorFromContext(ctx)); err != nil {
		return nil, err
	}
	return &v1.DeleteContentResponse{}, nil
}

func (c *ContentServer) GetContent(ctx context.Context, req *v1.GetContentRequest) (*v1.GetContentResponse, error) {
	content, err := c.content.GetContent(ctx, req.ID, req.Language)
	if err != nil {
		return nil, err
	}
	return &v1.GetContentResponse{Content: contentToProto(content)}, nil
}

func (c *ContentServer) ListContent(ctx context.Context, req *v1.ListContentRequest) (*v1.ListContentResponse, error) {
	items, total, err := c.content.ListContent(ctx, service.ListContentRequest{
		Collection: req.Collection,
		Status:     req.Status,
		Offset:     req.Offset,
		Limit:      req.Limit,
	})
	if err != nil {
		return nil, err
	}

	return &v1.ListContentResponse{Items: mapSlice(items, contentToProto), Total: total}, nil
}

func (c *ContentServer) ListRevisions(ctx context.Context, req *v1.ListRevisionsRequest) (*v1.ListRevisionsResponse, error) {
	revisions, err := c.content.ListRevisions(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	return &v1.ListRevisionsResponse{Revisions: mapSlice(revisions, revisionToProto)}, nil
}

func (c *ContentServer) GetRevision(ctx context.Context, req *v1.GetRevisionRequest) (*v1.GetRevisionResponse, error) {
	revision, err := c.content.GetRevision(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return &v1.GetRevisionResponse{Revision: revisionToProto(revision)}, nil
}

func (c *ContentServer) RestoreRevision(ctx context.Context, req *v1.RestoreRevisionRequest) (*v1.RestoreRevisionResponse, error) {
	content, err := c.content.RestoreRevision(ctx, service.RestoreRevisionRequest{
		RevisionID:      req.RevisionID,
		ExpectedVersion: req.ExpectedVersion,
		Actor:           module.ActorFromContext(ctx),
	})
	if err != nil {
		return nil, err
	}
	return &v1.RestoreRevisionResponse{Content: contentToProto(content)}, nil
}

func (c *ContentServer) SetTranslation(ctx context.Context, req *v1.SetTranslationRequest) (*v1.SetTranslationResponse, error) {
	translation, err := c.translations.SetTranslation(ctx, service.SetTranslationRequest{
		ItemID:   req.ItemID,
		Field:    req.Field,
		Language: req.Language,
		Value:    req.Value,
	})
	if err != nil {
		return nil, err
	}
	return &v1.SetTranslationResponse{Translation: translationToProto(translation)}, nil
}

func (c *ContentServer) DeleteTranslation(ctx context.Context, req *v1.DeleteTranslationRequest) (*v1.DeleteTranslationResponse, error) {
	if err := c.translations.DeleteTranslation(ctx, req.ItemID, req.Field, req.Language); err != nil {
		return nil, err
	}
	return &v1.DeleteTranslationResponse{}, nil
}

func (c *ContentServer) ListTranslations(ctx context.Context, req *v1.ListTranslationsRequest) (*v1.ListTranslationsResponse, error) {
	translations, err := c.translations.ListTranslations(ctx, req.ItemID, req.Language)
	if err != nil {
		return nil, err
	}
	return &v1.ListTranslationsResponse{Translations: mapSlice(translations, translationToProto)}, nil
}

// TreeServer serves cms.v1.TreeService.
type TreeServer struct {
	taxonomy   *service.TaxonomyService
	navigation *service.NavigationService
}

func NewTreeServer(services *Services) *TreeServer {
	return &TreeServer{taxonomy: services.Taxonomy, navigation: services.Navigation}
}

func (t *TreeServer) InsertTerm(ctx context.Context, req *v1.InsertTermRequest) (*v1.InsertTermResponse, error) {
	term, err := t.taxonomy.InsertTerm(ctx, service.InsertTermRequest{
		Vocabulary: req.Vocabulary,
		Term:       req.Term,
		ParentID:   req.ParentID,
	})
	if err != nil {
		return nil, err
	}
	return &v1.InsertTermResponse{Term: termToProto(term)}, nil
}

func (t *TreeServer) MoveTerm(ctx context.Context, req *v1.MoveTermRequest) (*v1.MoveTermResponse, error) {
	term, err := t.taxonomy.MoveTerm(ctx, req.ID, req.ParentID)
	if err != nil {
		return nil, err
	}
	return &v1.MoveTermResponse{Term: termToProto(term)}, nil
}

func (t *TreeServer) ListTerms(ctx context.Context, req *v1.ListTermsRequest) (*v1.ListTermsResponse, error) {
	var (
		terms []*model.Taxonomy
		err   error
	)
	if req.ParentID != nil {
		terms, err = t.taxonomy.ListChildren(ctx, *req.ParentID)
	} else {
		terms, err = t.taxonomy.ListRoots(ctx, req.Vocabulary)
	}
	if err != nil {
		return nil, err
	}
	return &v1.ListTermsResponse{Terms: mapSlice(terms, termToProto)}, nil
}

func (t *TreeServer) DeleteTerm(ctx context.Context, req *v1.DeleteTermRequest) (*v1.DeleteTermResponse, error) {
	deleted, err := t.taxonomy.DeleteTerm(ctx, req.ID, req.Cascade)
	if err != nil {
		return nil, err
	}
	return &v1.DeleteTermResponse{Deleted: deleted}, nil
}

func (t *TreeServer) InsertNavNode(ctx context.Context, req *v1.InsertNavNodeRequest) (*v1.InsertNavNodeResponse, error) {
	node, err := t.navigation.InsertNode(ctx, service.InsertNodeRequest{
		Label:    req.Label,
		Path:     req.Path,
		ParentID: req.ParentID,
		Order:    req.Order,
		Visible:  req.Visible,
	})
	if err != nil {
		return nil, err
	}
	return &v1.InsertNavNodeResponse{Node: navNodeToProto(node)}, nil
}

func (t *TreeServer) MoveNavNode(ctx context.Context, req *v1.MoveNavNodeRequest) (*v1.MoveNavNodeResponse, error) {
	node, err := t.navigation.MoveNode(ctx, service.MoveNodeRequest{
		ID:       req.ID,
		ParentID: req.ParentID,
		Order:    req.Order,
	})
	if err != nil {
		return nil, err
	}
	return &v1.MoveNavNodeResponse{Node: navNodeToProto(node)}, nil
}

func (t *TreeServer) ListNavNodes(ctx context.Context, req *v1.ListNavNodesRequest) (*v1.ListNavNodesResponse, error) {
	nodes, err := t.navigation.ListChildren(ctx, req.ParentID)
	if err != nil {
		return nil, err
	}
	return &v1.ListNavNodesResponse{Nodes: mapSlice(nodes, navNodeToProto)}, nil
}

func (t *TreeServer) DeleteNavNode(ctx context.Context, req *v1.DeleteNavNodeRequest) (*v1.DeleteNavNodeResponse, error) {
	deleted, err := t.navigation.DeleteNode(ctx, req.ID, req.Cascade)
	if err != nil {
		return nil, err
	}
	return &v1.DeleteNavNodeResponse{Deleted: deleted}, nil
}

func (t *TreeServer) GetNavTree(ctx context.Context, req *v1.GetNavTreeRequest) (*v1.GetNavTreeResponse, error) {
	nodes, err := t.navigation.Tree(ctx, req.IncludeHidden)
	if err != nil {
		return nil, err
	}
	return &v1.GetNavTreeResponse{Nodes: mapSlice(nodes, navNodeToProto)}, nil
}
