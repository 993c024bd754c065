package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boardServer(t *testing.T, rowsJSON, markup string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc(rowsPath, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(rowsJSON))
	})
	mux.HandleFunc(boardPath, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(markup))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClientFetch_JoinsRowsAndMarkup(t *testing.T) {
	srv := boardServer(t,
		`[{"court_id":"c5","court_no":"5","case_info":"W.P. 1234/2024","sr_no":3}]`,
		`<div data-court="c5"><div class="category">JUSTICE X</div><span class="blink"></span></div>`,
	)

	client, err := NewClient(srv.URL, 600, nil)
	require.NoError(t, err)

	snap, err := client.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Courts, 1)

	rec := snap.Courts[0]
	assert.Equal(t, "W.P. 1234/2024", rec.CaseNumber)
	assert.Equal(t, "JUSTICE X", rec.JudgeName)
	assert.True(t, rec.IsLive)
	require.NotNil(t, rec.QueuePosition)
	assert.Equal(t, 3, *rec.QueuePosition)
}

func TestClientFetch_WrappedRowPayload(t *testing.T) {
	srv := boardServer(t, `{"data":[{"court_id":"c1","court_no":"1"}]}`, "")

	client, err := NewClient(srv.URL, 600, nil)
	require.NoError(t, err)

	snap, err := client.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap.Courts, 1)
}

func TestClientFetch_UpstreamErrorAbortsFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "maintenance window", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, 600, nil)
	require.NoError(t, err)

	_, err = client.Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestDecodeRows_RejectsUnknownShape(t *testing.T) {
	_, err := decodeRows([]byte(`"not rows"`))
	assert.Error(t, err)

	rows, err := decodeRows([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, rows)
}
