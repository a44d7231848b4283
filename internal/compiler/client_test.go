package compiler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/build-herald/internal/core"
)

func TestClient_Compile_PostSource(t *testing.T) {
	var gotMethod, gotBody, gotLevel, gotLang string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotLevel = r.URL.Query().Get("compilation_level")
		gotLang = r.URL.Query().Get("language_level")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, nil)
	result, err := client.Compile(context.Background(), &core.CompileRequest{
		Source:           "var x = 1;",
		CompilationLevel: core.LevelSimple,
		LanguageLevel:    "ECMASCRIPT_2020",
	})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Empty(t, result.ErrorText)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "var x = 1;", gotBody)
	assert.Equal(t, core.LevelSimple, gotLevel)
	assert.Equal(t, "ECMASCRIPT_2020", gotLang)
}

func TestClient_Compile_GetCodeURL(t *testing.T) {
	var gotMethod, gotCodeURL string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotCodeURL = r.URL.Query().Get("code_url")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": false, "errors": "Line 4: missing semicolon"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, nil)
	result, err := client.Compile(context.Background(), &core.CompileRequest{
		CodeURL:          "https://raw.example.com/acme/widgets/main/app.js",
		CompilationLevel: core.LevelAdvanced,
		LanguageLevel:    "ECMASCRIPT_2020",
	})
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, "Line 4: missing semicolon", result.ErrorText)
	assert.Equal(t, http.MethodGet, gotMethod)
	assert.Equal(t, "https://raw.example.com/acme/widgets/main/app.js", gotCodeURL)
}

func TestClient_Compile_ServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, nil)
	_, err := client.Compile(context.Background(), &core.CompileRequest{Source: "var x;"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
}

func TestClient_Compile_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, nil)
	_, err := client.Compile(context.Background(), &core.CompileRequest{Source: "var x;"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}

func TestClient_Compile_EmptyRequest(t *testing.T) {
	client := NewClient("http://localhost:0", time.Second, nil)
	_, err := client.Compile(context.Background(), &core.CompileRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "neither source nor code URL")
}
