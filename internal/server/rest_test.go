package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	v1 "github.com/emrgen/cms/apis/v1"
	"github.com/emrgen/cms/internal/module"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type restClient struct {
	t      *testing.T
	server *httptest.Server
	actor  string
}

func newRestClient(t *testing.T, actor string) *restClient {
	t.Helper()

	services, _ := newTestServices(t)
	server := httptest.NewServer(NewHttpHandler(services))
	t.Cleanup(server.Close)

	return &restClient{t: t, server: server, actor: actor}
}

// do sends body as json and decodes the response into out when it is not nil.
func (c *restClient) do(method, path string, body any, out any) int {
	c.t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(c.t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.server.URL+path, reader)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	if c.actor != "" {
		req.Header.Set(module.ActorHeader, c.actor)
	}

	resp, err := c.server.Client().Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(c.t, json.NewDecoder(resp.Body).Decode(out))
	}

	return resp.StatusCode
}

func TestRest_Collections(t *testing.T) {
	client := newRestClient(t, "")

	var created v1.DefineCollectionResponse
	code := client.do(http.MethodPost, "/v1/collections", map[string]any{"name": "article"}, &created)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "article", created.Collection.Name)

	var failed errorResponse
	code = client.do(http.MethodPost, "/v1/collections", map[string]any{"name": "article"}, &failed)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "AlreadyExists", failed.Code)

	code = client.do(http.MethodPost, "/v1/collections", map[string]any{}, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code = client.do(http.MethodPost, "/v1/collections", `{"name":`, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code = client.do(http.MethodPost, "/v1/collections/missing/fields", map[string]any{"field": "x", "type": "string"}, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code = client.do(http.MethodPost, "/v1/collections/article/fields", map[string]any{"field": "title", "type": "string"}, nil)
	assert.Equal(t, http.StatusCreated, code)

	var schema v1.ResolveSchemaResponse
	code = client.do(http.MethodGet, "/v1/collections/article/schema", nil, &schema)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, schema.Fields, 1)
	assert.Equal(t, "title", schema.Fields[0].Field)
}

func TestRest_Content(t *testing.T) {
	client := newRestClient(t, "editor")

	client.do(http.MethodPost, "/v1/collections", map[string]any{"name": "page"}, nil)

	var created v1.CreateContentResponse
	code := client.do(http.MethodPost, "/v1/collections/page/items", map[string]any{
		"data": map[string]any{"title": "About", "body": "text"},
	}, &created)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "editor", created.Content.CreatedBy)
	id := created.Content.ID

	var updated v1.UpdateContentResponse
	code = client.do(http.MethodPatch, "/v1/items/"+id, map[string]any{
		"expected_version": 1,
		"data":             map[string]any{"title": "About us"},
	}, &updated)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, int64(2), updated.Content.Version)
	assert.JSONEq(t, `{"title":"About us","body":"text"}`, string(updated.Content.Data))

	var conflict errorResponse
	code = client.do(http.MethodPatch, "/v1/items/"+id, map[string]any{
		"expected_version": 1,
		"data":             map[string]any{"title": "stale"},
	}, &conflict)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "Aborted", conflict.Code)

	var listed v1.ListContentResponse
	code = client.do(http.MethodGet, "/v1/collections/page/items?limit=10", nil, &listed)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, int64(1), listed.Total)

	var revisions v1.ListRevisionsResponse
	code = client.do(http.MethodGet, "/v1/items/"+id+"/revisions", nil, &revisions)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, revisions.Revisions, 1)

	var restored v1.RestoreRevisionResponse
	code = client.do(http.MethodPost, "/v1/revisions/"+revisions.Revisions[0].ID+"/restore", map[string]any{
		"expected_version": 2,
	}, &restored)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, int64(3), restored.Content.Version)
	assert.JSONEq(t, `{"title":"About","body":"text"}`, string(restored.Content.Data))

	code = client.do(http.MethodPut, "/v1/items/"+id+"/translations/de/title", map[string]any{"value": "Über uns"}, nil)
	require.Equal(t, http.StatusOK, code)

	var de v1.GetContentResponse
	code = client.do(http.MethodGet, "/v1/items/"+id+"?lang=de", nil, &de)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"title":"Über uns","body":"text"}`, string(de.Content.Data))

	code = client.do(http.MethodDelete, "/v1/items/"+id, nil, nil)
	assert.Equal(t, http.StatusOK, code)

	code = client.do(http.MethodGet, "/v1/items/"+id, nil, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code = client.do(http.MethodGet, "/v1/items/"+id+"/revisions", nil, &revisions)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, revisions.Revisions, 2)
}

func TestRest_Singleton(t *testing.T) {
	client := newRestClient(t, "")

	client.do(http.MethodPost, "/v1/collections", map[string]any{"name": "settings", "singleton": true}, nil)

	code := client.do(http.MethodPost, "/v1/collections/settings/items", map[string]any{"data": map[string]any{}}, nil)
	require.Equal(t, http.StatusCreated, code)

	var failed errorResponse
	code = client.do(http.MethodPost, "/v1/collections/settings/items", map[string]any{"data": map[string]any{}}, &failed)
	assert.Equal(t, http.StatusPreconditionFailed, code)
	assert.Equal(t, "FailedPrecondition", failed.Code)
}

func TestRest_Navigation(t *testing.T) {
	client := newRestClient(t, "")

	var home v1.InsertNavNodeResponse
	code := client.do(http.MethodPost, "/v1/navigation", map[string]any{"label": "Home", "path": "/"}, &home)
	require.Equal(t, http.StatusCreated, code)

	var docs v1.InsertNavNodeResponse
	code = client.do(http.MethodPost, "/v1/navigation", map[string]any{
		"label":     "Docs",
		"path":      "/docs",
		"parent_id": home.Node.ID,
		"visible":   false,
	}, &docs)
	require.Equal(t, http.StatusCreated, code)

	code = client.do(http.MethodPost, "/v1/navigation/"+home.Node.ID+"/move", map[string]any{"parent_id": docs.Node.ID}, nil)
	assert.Equal(t, http.StatusPreconditionFailed, code)

	var tree v1.GetNavTreeResponse
	code = client.do(http.MethodGet, "/v1/navigation", nil, &tree)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, tree.Nodes, 1)
	assert.Empty(t, tree.Nodes[0].Children)

	code = client.do(http.MethodGet, "/v1/navigation?include_hidden=true", nil, &tree)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, tree.Nodes, 1)
	assert.Len(t, tree.Nodes[0].Children, 1)

	code = client.do(http.MethodDelete, "/v1/navigation/"+home.Node.ID, nil, nil)
	assert.Equal(t, http.StatusPreconditionFailed, code)

	var deleted v1.DeleteNavNodeResponse
	code = client.do(http.MethodDelete, "/v1/navigation/"+home.Node.ID+"?cascade=true", nil, &deleted)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 2, deleted.Deleted)
}

func TestErrorCode(t *testing.T) {
	code, status := errorCode(errInvalidRequest)
	assert.Equal(t, "InvalidArgument", code.String())
	assert.Equal(t, http.StatusBadRequest, status)
}
