package web

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeState struct {
	active  string
	content string
	files   []string
	docs    map[string]string
}

func (f *fakeState) ActiveDocument() (string, string, bool) {
	if f.active == "" {
		return "", "", false
	}
	return f.active, f.content, true
}

func (f *fakeState) ReadDocument(path string) (string, error) {
	c, ok := f.docs[path]
	if !ok {
		return "", errors.New("no such document")
	}
	return c, nil
}

func (f *fakeState) ListDocuments() ([]string, error) {
	return f.files, nil
}

func TestRenderMarkdown(t *testing.T) {
	t.Parallel()

	html, err := RenderMarkdown("# Title\n\nsome *emphasis* and a [link](x.md)\n")
	require.NoError(t, err)
	require.Contains(t, html, "<h1>Title</h1>")
	require.Contains(t, html, "<em>emphasis</em>")

	// GFM tables come through.
	html, err = RenderMarkdown("| a | b |\n|---|---|\n| 1 | 2 |\n")
	require.NoError(t, err)
	require.Contains(t, html, "<table>")
}

func TestRPCRenderActive(t *testing.T) {
	t.Parallel()
	s := NewServer(&fakeState{active: "/a.md", content: "# Hi"}, nil)

	resp := s.handleRPC(rpcRequest{ID: 1, Method: "renderActive"})
	require.Nil(t, resp.Error)
	result := resp.Result.(map[string]string)
	require.Equal(t, "/a.md", result["path"])
	require.Contains(t, result["html"], "<h1>Hi</h1>")
}

func TestRPCRenderActiveNoDocument(t *testing.T) {
	t.Parallel()
	s := NewServer(&fakeState{}, nil)

	resp := s.handleRPC(rpcRequest{ID: 1, Method: "renderActive"})
	require.Nil(t, resp.Error)
	result := resp.Result.(map[string]string)
	require.Empty(t, result["path"])
}

func TestRPCRenderFile(t *testing.T) {
	t.Parallel()
	s := NewServer(&fakeState{docs: map[string]string{"/b.md": "*b*"}}, nil)

	params, _ := json.Marshal(map[string]string{"path": "/b.md"})
	resp := s.handleRPC(rpcRequest{ID: 2, Method: "renderFile", Params: params})
	require.Nil(t, resp.Error)
	require.Contains(t, resp.Result.(map[string]string)["html"], "<em>b</em>")

	params, _ = json.Marshal(map[string]string{"path": "/missing.md"})
	resp = s.handleRPC(rpcRequest{ID: 3, Method: "renderFile", Params: params})
	require.NotNil(t, resp.Error)
}

func TestRPCUnknownMethod(t *testing.T) {
	t.Parallel()
	s := NewServer(&fakeState{}, nil)

	resp := s.handleRPC(rpcRequest{ID: 4, Method: "nope"})
	require.NotNil(t, resp.Error)
	require.Equal(t, -32601, resp.Error.Code)
}
