package registry

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleExport = `Name,Short name,URL name,Tags,Home page
University of X,,x-uni,University of X,https://x.example.com
City Council,,city,City Council,https://city.example.com
No Identifier University,,,university,
"Leeds, University of",,leeds_uni!,"University, Higher Education",
Untagged Body,,untagged,,
`

func TestParse(t *testing.T) {
	authorities, err := Parse([]byte(sampleExport))
	require.NoError(t, err)
	require.Len(t, authorities, 5)

	first := authorities[0]
	assert.Equal(t, 0, first.Index)
	assert.Equal(t, "University of X", first.Name)
	require.NotNil(t, first.URLName)
	assert.Equal(t, "x-uni", *first.URLName)
	require.NotNil(t, first.Tags)
	assert.Equal(t, "University of X", *first.Tags)

	assert.Nil(t, authorities[2].URLName, "empty URL name should be nil")
	assert.Equal(t, "Leeds, University of", authorities[3].Name)
	assert.Equal(t, "University, Higher Education", *authorities[3].Tags)
	assert.Nil(t, authorities[4].Tags, "empty tags should be nil")
	assert.Equal(t, 4, authorities[4].Index)
}

func TestParseWithByteOrderMark(t *testing.T) {
	authorities, err := Parse([]byte("\ufeffName,URL name,Tags\nA,a,university\n"))
	require.NoError(t, err)
	require.Len(t, authorities, 1)
	assert.Equal(t, "A", authorities[0].Name)
}

func TestParseWithoutURLNameColumn(t *testing.T) {
	authorities, err := Parse([]byte("Name,Tags\nA,university\n"))
	require.NoError(t, err)
	require.Len(t, authorities, 1)
	assert.Nil(t, authorities[0].URLName)
}

func TestParseWhitespaceCellIsNull(t *testing.T) {
	authorities, err := Parse([]byte("Name,URL name,Tags\nA, ,university\n"))
	require.NoError(t, err)
	require.Len(t, authorities, 1)
	assert.Nil(t, authorities[0].URLName)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte(""))
	assert.Error(t, err, "empty export")

	_, err = Parse([]byte("Name,URL name\nA,a\n"))
	assert.Error(t, err, "missing Tags column")
}

func TestLoaderLoad(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/body/all-authorities.csv", r.URL.Path)
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte(sampleExport))
	}))
	defer server.Close()

	loader := NewLoader(resty.New(), server.URL+"/body/all-authorities.csv", NewFilterer("university"))
	authorities, err := loader.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, authorities, 3)
	assert.Equal(t, 0, authorities[0].Index)
	assert.Equal(t, 2, authorities[1].Index)
	assert.Equal(t, 3, authorities[2].Index)
}

func TestLoaderLoadHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusInternalServerError)
	}))
	defer server.Close()

	loader := NewLoader(resty.New(), server.URL, NewFilterer("university"))
	_, err := loader.Load(context.Background())
	assert.Error(t, err)
}

func TestLoaderLoadNetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	loader := NewLoader(resty.New(), url, NewFilterer("university"))
	_, err := loader.Load(context.Background())
	assert.Error(t, err)
}

func TestLoaderLoadLogsFilterSummary(t *testing.T) {
	var buf bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	defer slog.SetDefault(previous)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleExport))
	}))
	defer server.Close()

	_, err := NewLoader(resty.New(), server.URL, NewFilterer("university")).Load(context.Background())
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `msg="Authorities filtered" tag=university total=5 matched=3`)
}
