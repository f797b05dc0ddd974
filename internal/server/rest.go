package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	v1 "github.com/emrgen/cms/apis/v1"
	"github.com/emrgen/cms/internal/module"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/sirupsen/logrus"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// RestHandler exposes the rpc servers as a JSON api under /v1. Bodies are the
// same messages the grpc api takes, path and query parameters fill the rest.
type RestHandler struct {
	schema  *SchemaServer
	content *ContentServer
	tree    *TreeServer
}

func NewRestHandler(services *Services) *RestHandler {
	return &RestHandler{
		schema:  NewSchemaServer(services),
		content: NewContentServer(services),
		tree:    NewTreeServer(services),
	}
}

// Routes returns the router of the api.
func (h *RestHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(module.HttpActorMiddleware)
	r.Use(requestLogger)

	r.Route("/v1", func(r chi.Router) {
		// schema
		r.Get("/collections", handle(http.StatusOK, h.schema.ListCollections, func(r *http.Request, req *v1.ListCollectionsRequest) {
			req.IncludeHidden = queryBool(r, "include_hidden")
		}))
		r.Post("/collections", handle(http.StatusCreated, h.schema.DefineCollection, nil))
		r.Get("/collections/{name}", handle(http.StatusOK, h.schema.GetCollection, func(r *http.Request, req *v1.GetCollectionRequest) {
			req.Name = chi.URLParam(r, "name")
		}))
		r.Get("/collections/{name}/schema", handle(http.StatusOK, h.schema.ResolveSchema, func(r *http.Request, req *v1.ResolveSchemaRequest) {
			req.Collection = chi.URLParam(r, "name")
		}))
		r.Post("/collections/{name}/fields", handle(http.StatusCreated, h.schema.DefineField, func(r *http.Request, req *v1.DefineFieldRequest) {
			req.Collection = chi.URLParam(r, "name")
		}))
		r.Post("/relations", handle(http.StatusCreated, h.schema.DefineRelation, nil))

		// content
		r.Get("/collections/{name}/items", handle(http.StatusOK, h.content.ListContent, func(r *http.Request, req *v1.ListContentRequest) {
			req.Collection = chi.URLParam(r, "name")
			req.Status = r.URL.Query().Get("status")
			req.Offset = queryInt(r, "offset")
			req.Limit = queryInt(r, "limit")
		}))
		r.Post("/collections/{name}/items", handle(http.StatusCreated, h.content.CreateContent, func(r *http.Request, req *v1.CreateContentRequest) {
			req.Collection = chi.URLParam(r, "name")
		}))
		r.Get("/items/{id}", handle(http.StatusOK, h.content.GetContent, func(r *http.Request, req *v1.GetContentRequest) {
			req.ID = chi.URLParam(r, "id")
			req.Language = r.URL.Query().Get("lang")
		}))
		r.Patch("/items/{id}", handle(http.StatusOK, h.content.UpdateContent, func(r *http.Request, req *v1.UpdateContentRequest) {
			req.ID = chi.URLParam(r, "id")
		}))
		r.Delete("/items/{id}", handle(http.StatusOK, h.content.DeleteContent, func(r *http.Request, req *v1.DeleteContentRequest) {
			req.ID = chi.URLParam(r, "id")
		}))
		r.Get("/items/{id}/revisions", handle(http.StatusOK, h.content.ListRevisions, func(r *http.Request, req *v1.ListRevisionsRequest) {
			req.ItemID = chi.URLParam(r, "id")
		}))
		r.Get("/revisions/{id}", handle(http.StatusOK, h.content.GetRevision, func(r *http.Request, req *v1.GetRevisionRequest) {
			req.ID = chi.URLParam(r, "id")
		}))
		r.Post("/revisions/{id}/restore", handle(http.StatusOK, h.content.RestoreRevision, func(r *http.Request, req *v1.RestoreRevisionRequest) {
			req.RevisionID = chi.URLParam(r, "id")
		}))

		// translations
		r.Get("/items/{id}/translations", handle(http.StatusOK, h.content.ListTranslations, func(r *http.Request, req *v1.ListTranslationsRequest) {
			req.ItemID = chi.URLParam(r, "id")
			req.Language = r.URL.Query().Get("lang")
		}))
		r.Put("/items/{id}/translations/{language}/{field}", handle(http.StatusOK, h.content.SetTranslation, func(r *http.Request, req *v1.SetTranslationRequest) {
			req.ItemID = chi.URLParam(r, "id")
			req.Language = chi.URLParam(r, "language")
			req.Field = chi.URLParam(r, "field")
		}))
		r.Delete("/items/{id}/translations/{language}/{field}", handle(http.StatusOK, h.content.DeleteTranslation, func(r *http.Request, req *v1.DeleteTranslationRequest) {
			req.ItemID = chi.URLParam(r, "id")
			req.Language = chi.URLParam(r, "language")
			req.Field = chi.URLParam(r, "field")
		}))

		// taxonomy
		r.Get("/vocabularies/{vocabulary}/terms", handle(http.StatusOK, h.tree.ListTerms, func(r *http.Request, req *v1.ListTermsRequest) {
			req.Vocabulary = chi.URLParam(r, "vocabulary")
		}))
		r.Post("/vocabularies/{vocabulary}/terms", handle(http.StatusCreated, h.tree.InsertTerm, func(r *http.Request, req *v1.InsertTermRequest) {
			req.Vocabulary = chi.URLParam(r, "vocabulary")
		}))
		r.Get("/terms/{id}/children", handle(http.StatusOK, h.tree.ListTerms, func(r *http.Request, req *v1.ListTermsRequest) {
			id := chi.URLParam(r, "id")
			req.ParentID = &id
		}))
		r.Post("/terms/{id}/move", handle(http.StatusOK, h.tree.MoveTerm, func(r *http.Request, req *v1.MoveTermRequest) {
			req.ID = chi.URLParam(r, "id")
		}))
		r.Delete("/terms/{id}", handle(http.StatusOK, h.tree.DeleteTerm, func(r *http.Request, req *v1.DeleteTermRequest) {
			req.ID = chi.URLParam(r, "id")
			req.Cascade = queryBool(r, "cascade")
		}))

		// navigation
		r.Get("/navigation", handle(http.StatusOK, h.tree.GetNavTree, func(r *http.Request, req *v1.GetNavTreeRequest) {
			req.IncludeHidden = queryBool(r, "include_hidden")
		}))
		r.Post("/navigation", handle(http.StatusCreated, h.tree.InsertNavNode, nil))
		r.Get("/navigation/nodes", handle(http.StatusOK, h.tree.ListNavNodes, func(r *http.Request, req *v1.ListNavNodesRequest) {
			if parent := r.URL.Query().Get("parent_id"); parent != "" {
				req.ParentID = &parent
			}
		}))
		r.Post("/navigation/{id}/move", handle(http.StatusOK, h.tree.MoveNavNode, func(r *http.Request, req *v1.MoveNavNodeRequest) {
			req.ID = chi.URLParam(r, "id")
		}))
		r.Delete("/navigation/{id}", handle(http.StatusOK, h.tree.DeleteNavNode, func(r *http.Request, req *v1.DeleteNavNodeRequest) {
			req.ID = chi.URLParam(r, "id")
			req.Cascade = queryBool(r, "cascade")
		}))
	})

	return r
}

// handle decodes the body into Req, lets bind fill path and query values,
// validates and calls the rpc method.
func handle[Req any, Resp any](status int, call func(context.Context, *Req) (*Resp, error), bind func(*http.Request, *Req)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := new(Req)
		if err := decodeBody(r, req); err != nil {
			writeError(w, r, err)
			return
		}
		if bind != nil {
			bind(r, req)
		}

		if v, ok := any(req).(interface{ Validate() error }); ok {
			if err := v.Validate(); err != nil {
				writeError(w, r, fmt.Errorf("%w: %v", errInvalidRequest, err))
				return
			}
		}

		resp, err := call(r.Context(), req)
		if err != nil {
			writeError(w, r, err)
			return
		}

		render.Status(r, status)
		render.JSON(w, r, resp)
	}
}

func decodeBody(r *http.Request, v any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return nil
	}

	err := render.DecodeJSON(r.Body, v)
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %v", errInvalidRequest, err)
	}
	return nil
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code, status := errorCode(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		logrus.Errorf("%s %s: %v", r.Method, r.URL.Path, err)
		message = "internal error"
	}

	render.Status(r, status)
	render.JSON(w, r, errorResponse{Error: message, Code: code.String()})
}

func queryBool(r *http.Request, key string) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get(key))
	return err == nil && v
}

func queryInt(r *http.Request, key string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return v
}
