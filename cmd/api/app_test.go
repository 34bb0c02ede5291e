package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bossygit/vibes-arc-sub000/internal/config"
)

func memoryConfig(t *testing.T) *config.Config {
	return &config.Config{
		Storage:           config.StorageMemory,
		AppTimezone:       "UTC",
		AppEpoch:          "2024-01-01",
		ReportDefaultDays: 14,
		ExportDir:         t.TempDir(),
		RateLimitRequests: 100,
		RateLimitWindow:   time.Minute,
	}
}

func TestEndToEnd_HabitLifecycle(t *testing.T) {
	gin.SetMode(gin.TestMode)

	a, err := newApp(context.Background(), memoryConfig(t))
	require.NoError(t, err)
	defer a.Close()

	router := a.router(time.Now())
	call := func(method, path, body string) *httptest.ResponseRecorder {
		req, _ := http.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	require.Equal(t, http.StatusCreated, call("POST", "/api/v1/identities", `{"name": "Athlète"}`).Code)
	require.Equal(t, http.StatusCreated, call("POST", "/api/v1/habits", `{"name": "Courir", "totalDays": 14, "linkedIdentities": [1]}`).Code)

	for _, day := range []string{"0", "1", "2"} {
		require.Equal(t, http.StatusOK, call("POST", "/api/v1/habits/1/toggle", `{"day": `+day+`}`).Code)
	}

	w := call("GET", "/api/v1/habits/1/stats", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"currentStreak":3`)
	assert.Contains(t, w.Body.String(), `"name":"Étincelle"`)

	w = call("GET", "/api/v1/reports/engagement", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"totalDays":14`)

	w = call("GET", "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"database":"disabled"`)
}

func TestCommands(t *testing.T) {
	t.Setenv("STORAGE", "memory")
	t.Setenv("APP_LOG_LEVEL", "error")
	t.Setenv("REDIS_HOST", "")

	t.Run("Success: report weekly writes a file", func(t *testing.T) {
		dir := t.TempDir()
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetArgs([]string{"report", "weekly", "--out", dir})

		require.NoError(t, rootCmd.Execute())

		path := strings.TrimSpace(out.String())
		assert.Equal(t, dir, filepath.Dir(path))
		assert.True(t, strings.HasSuffix(path, "weekly.json"))
	})

	t.Run("Fail: report with unknown kind", func(t *testing.T) {
		rootCmd.SetArgs([]string{"report", "monthly"})
		assert.Error(t, rootCmd.Execute())
	})

	t.Run("Success: import a backup file", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "backup.json")
		backup := `{"identities": [{"id": 1, "name": "Lecteur"}], "habits": [{"name": "Lire", "type": "start", "totalDays": 2, "linkedIdentities": [1], "progress": [true, false]}]}`
		require.NoError(t, os.WriteFile(file, []byte(backup), 0o644))

		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetArgs([]string{"import", file})

		require.NoError(t, rootCmd.Execute())
		assert.Equal(t, "imported 1 habits and 1 identities\n", out.String())
	})

	t.Run("Fail: import rejects malformed files", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "broken.json")
		require.NoError(t, os.WriteFile(file, []byte(`{"habits": `), 0o644))

		rootCmd.SetArgs([]string{"import", file})
		err := rootCmd.Execute()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "format invalide")
	})
}
