package include

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Repository_Fetch_PicksHighestVersion(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><a href="Basic.v1_0_0.json">Basic.v1_0_0.json</a>
<a href="Basic.v1_2_0.json">Basic.v1_2_0.json</a></html>`))
	})
	mux.HandleFunc("/Basic.v1_2_0.json", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"ProfileName":"Basic","ProfileVersion":"1.2.0"}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	repo := NewRepository(server.URL, 0)
	doc, err := repo.Fetch("Basic", "")
	require.NoError(t, err)
	assert.Equal(t, "Basic", doc.Name())
	assert.Equal(t, "1.2.0", doc.Version())
}

func Test_Repository_Fetch_OverrideURL(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`Basic.v1_0_0.json`))
	})
	mux.HandleFunc("/Basic.v1_0_0.json", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"ProfileName":"Basic"}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	// The default base is unreachable; the per-dependency override must win.
	repo := NewRepository("http://127.0.0.1:0", 0)
	doc, err := repo.Fetch("Basic", server.URL)
	require.NoError(t, err)
	assert.Equal(t, "Basic", doc.Name())
}

func Test_Repository_Fetch_NoMatchingFile(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`Other.v1_0_0.json`))
	}))
	defer server.Close()

	_, err := NewRepository(server.URL, 0).Fetch("Basic", "")
	assert.ErrorContains(t, err, "no file matching")
}

func Test_Repository_Fetch_IndexFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := NewRepository(server.URL, 0).Fetch("Basic", "")
	assert.ErrorContains(t, err, "failed to read repository index")
}

func Test_Repository_Fetch_InvalidProfileJSON(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`Basic.v1_0_0.json`))
	})
	mux.HandleFunc("/Basic.v1_0_0.json", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	_, err := NewRepository(server.URL, 0).Fetch("Basic", "")
	assert.ErrorContains(t, err, "failed to parse remote profile")
}

func Test_filePattern_Matching(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		filename string
		match    bool
	}{
		{"Basic", "Basic.json", true},
		{"Basic", "Basic.v1_2_0.json", true},
		{"Basic", "BasicExtra.json", false},
		{"Basic", "Basic.v1_2.json", false},
		{"Foo.Bar", "Foo.Bar.json", true},
		{"Foo.Bar", "Foo.v1_2_0.Bar.json", true},
		{"Foo.Bar", "Foo.Baz.json", false},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.match, filePattern(tt.name, true).MatchString(tt.filename))
		})
	}
}
