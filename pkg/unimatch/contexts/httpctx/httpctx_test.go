package httpctx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitaliisemenov/unimatch/pkg/unimatch"
	"github.com/vitaliisemenov/unimatch/pkg/unimatch/registry"
	"github.com/vitaliisemenov/unimatch/pkg/unimatch/schema"
)

func request(t *testing.T, method, target string, headers map[string]string) *http.Request {
	t.Helper()
	r := httptest.NewRequest(method, target, nil)
	for k, v := range headers {
		r.Header.Set(k, v)
	}
	return r
}

func asString(t *testing.T, v unimatch.Value) string {
	t.Helper()
	s, ok := v.AsString()
	require.True(t, ok, "want a string value, got %v", v)
	return s
}

func TestPathMethodHost(t *testing.T) {
	r := request(t, http.MethodPost, "http://example.com/api/v2/users?limit=10", nil)

	assert.Equal(t, "/api/v2/users", asString(t, Path().Extract(r)))
	assert.Equal(t, http.MethodPost, asString(t, Method().Extract(r)))
	assert.Equal(t, "example.com", asString(t, Host().Extract(r)))

	assert.True(t, Path().Extract(nil).IsAbsent())
	assert.True(t, Method().Extract(nil).IsAbsent())
	assert.True(t, Host().Extract(nil).IsAbsent())
}

func TestHeaderExtractor(t *testing.T) {
	r := request(t, http.MethodGet, "http://example.com/", map[string]string{
		"Authorization": "secret",
		"X-Empty":       "",
	})

	assert.Equal(t, "secret", asString(t, Header("authorization").Extract(r)))
	// Present-but-empty headers are the empty string, not Absent.
	assert.Equal(t, "", asString(t, Header("X-Empty").Extract(r)))
	// Missing headers are Absent, never "".
	assert.True(t, Header("X-Missing").Extract(r).IsAbsent())
}

func TestQueryExtractor(t *testing.T) {
	r := request(t, http.MethodGet, "http://example.com/search?q=matcher&empty=", nil)

	assert.Equal(t, "matcher", asString(t, Query("q").Extract(r)))
	assert.Equal(t, "", asString(t, Query("empty").Extract(r)))
	assert.True(t, Query("missing").Extract(r).IsAbsent())
}

func TestSummaries(t *testing.T) {
	assert.Equal(t, "http_path", Path().(interface{ String() string }).String())
	assert.Equal(t, `http_header("Authorization")`, Header("authorization").(interface{ String() string }).String())
	assert.Equal(t, `http_query("q")`, Query("q").(interface{ String() string }).String())
}

func TestRegisterAndLoad(t *testing.T) {
	reg, err := Register(registry.NewBuilder[*http.Request]()).Build()
	require.NoError(t, err)

	assert.Equal(t, []string{
		HeaderTypeURL,
		HostTypeURL,
		MethodTypeURL,
		PathTypeURL,
		QueryTypeURL,
	}, reg.ExtractorTypeURLs())

	// End to end: route requests on path prefix and header.
	cfg, err := schema.DecodeJSON([]byte(`{
	  "matchers": [
	    {
	      "predicate": {
	        "type": "and",
	        "predicates": [
	          {
	            "type": "single",
	            "input": {"type_url": "` + PathTypeURL + `"},
	            "value_match": {"Prefix": "/admin"}
	          },
	          {
	            "type": "single",
	            "input": {"type_url": "` + HeaderTypeURL + `", "config": {"name": "authorization"}},
	            "value_match": {"Exact": "secret"}
	          }
	        ]
	      },
	      "on_match": {"type": "action", "action": "allow"}
	    }
	  ],
	  "on_no_match": {"type": "action", "action": "deny"}
	}`))
	require.NoError(t, err)

	m, err := registry.Load(reg, cfg, registry.StringActions)
	require.NoError(t, err)

	got, _ := m.Evaluate(request(t, http.MethodGet, "http://x/admin/users", map[string]string{"Authorization": "secret"}))
	assert.Equal(t, "allow", got)

	got, _ = m.Evaluate(request(t, http.MethodGet, "http://x/admin/users", nil))
	assert.Equal(t, "deny", got)

	got, _ = m.Evaluate(request(t, http.MethodGet, "http://x/public", map[string]string{"Authorization": "secret"}))
	assert.Equal(t, "deny", got)
}

func TestFactoryValidation(t *testing.T) {
	reg, err := Register(registry.NewBuilder[*http.Request]()).Build()
	require.NoError(t, err)

	cfg, err := schema.DecodeJSON([]byte(`{
	  "matchers": [
	    {
	      "predicate": {
	        "type": "single",
	        "input": {"type_url": "` + HeaderTypeURL + `"},
	        "value_match": {"Exact": "x"}
	      },
	      "on_match": {"type": "action", "action": "a"}
	    }
	  ]
	}`))
	require.NoError(t, err)

	_, err = registry.Load(reg, cfg, registry.StringActions)
	var invalid *registry.InvalidConfigError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, HeaderTypeURL, invalid.URL)
}
