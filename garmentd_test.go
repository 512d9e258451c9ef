package garmentd_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	garmentd "github.com/seamly/garmentd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) *httptest.Server {
	t.Helper()
	svc, err := garmentd.New(t.TempDir(), garmentd.WithMeshCells(12))
	require.NoError(t, err)
	srv := httptest.NewServer(svc.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url, body string) map[string]any {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestService_EndToEnd2D(t *testing.T) {
	srv := newService(t)

	out := post(t, srv.URL+"/generate_svg", `{"design_params": {}}`)
	id, _ := out["session_id"].(string)
	require.NotEmpty(t, id)
	require.NotEmpty(t, out["svg_file_path"])

	resp, err := http.Get(srv.URL + "/download_svg/" + id)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/cleanup_svg/"+id, nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Strict policy: the second cleanup reports the session gone.
	resp, err = http.DefaultClient.Do(req.Clone(req.Context()))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestService_EndToEnd3D(t *testing.T) {
	srv := newService(t)

	out := post(t, srv.URL+"/generate3d", `{"design_params": {"sleeve": {"sleeveless": true}}}`)
	id, _ := out["session_id"].(string)
	require.NotEmpty(t, id)
	require.NotEmpty(t, out["glb_file_path"])

	resp, err := http.Get(srv.URL + "/download/" + id)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "model/gltf-binary", resp.Header.Get("Content-Type"))
}

func TestService_MetricsExposed(t *testing.T) {
	srv := newService(t)

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestNew_RequiresOutputRoot(t *testing.T) {
	_, err := garmentd.New("")
	assert.Error(t, err)
}
