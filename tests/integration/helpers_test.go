//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// API endpoints
const (
	postsPath  = "/posts"
	healthPath = "/health"
)

// postBody is the typed decoding of the external post shape.
type postBody struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Author  string    `json:"author"`
	Content string    `json:"content"`
	Created time.Time `json:"created"`
}

// responseFields is the exact field set every returned post must carry.
var responseFields = []string{"id", "title", "author", "content", "created"}

// listPosts sends GET /posts and returns the response.
func listPosts(t *testing.T, serverURL string) *http.Response {
	t.Helper()
	resp, err := http.Get(serverURL + postsPath)
	require.NoError(t, err, "failed to send GET /posts")
	return resp
}

// createPost sends POST /posts with the given payload and returns the response.
func createPost(t *testing.T, serverURL string, payload any) *http.Response {
	t.Helper()
	return sendJSONRequest(t, http.MethodPost, serverURL+postsPath, payload)
}

// updatePost sends PUT /posts/{id} with the given payload and returns the response.
func updatePost(t *testing.T, serverURL, id string, payload any) *http.Response {
	t.Helper()
	return sendJSONRequest(t, http.MethodPut, serverURL+postsPath+"/"+id, payload)
}

// deletePost sends DELETE /posts/{id} and returns the response.
func deletePost(t *testing.T, serverURL, id string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodDelete, serverURL+postsPath+"/"+id, nil)
	require.NoError(t, err, "failed to create request")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err, "failed to send request")
	return resp
}

// sendJSONRequest sends a JSON request and returns the response.
func sendJSONRequest(t *testing.T, method, url string, payload any) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err, "failed to marshal request payload")

	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	require.NoError(t, err, "failed to create request")
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err, "failed to send request")
	return resp
}

// decodePost decodes a single post body, first verifying that it carries
// exactly the five external fields and no extras.
func decodePost(t *testing.T, raw []byte) postBody {
	t.Helper()

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &fields), "response is not a JSON object")
	requireExactFields(t, fields)

	var post postBody
	require.NoError(t, json.Unmarshal(raw, &post), "failed to decode post")
	return post
}

// decodePostArray decodes an array of posts, verifying the exact field set
// of every element, not just a sample.
func decodePostArray(t *testing.T, raw []byte) []postBody {
	t.Helper()

	var elements []json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &elements), "response is not a JSON array")

	result := make([]postBody, len(elements))
	for i, element := range elements {
		result[i] = decodePost(t, element)
	}
	return result
}

func requireExactFields(t *testing.T, fields map[string]json.RawMessage) {
	t.Helper()

	require.Len(t, fields, len(responseFields), "post must carry exactly %d fields, got %v", len(responseFields), keysOf(fields))
	for _, key := range responseFields {
		require.Contains(t, fields, key, "post missing field %q", key)
	}
}

func keysOf(m map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

// readBody reads and closes a response body.
func readBody(t *testing.T, resp *http.Response) []byte {
	t.Helper()

	defer func() { _ = resp.Body.Close() }()
	var buf bytes.Buffer
	_, err := buf.ReadFrom(resp.Body)
	require.NoError(t, err, "failed to read response body")
	return buf.Bytes()
}

// closeBody is a helper to close response body in defer statements.
func closeBody(resp *http.Response) {
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
}
