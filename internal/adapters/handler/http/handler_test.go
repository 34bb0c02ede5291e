package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	adapterHTTP "github.com/bossygit/vibes-arc-sub000/internal/adapters/handler/http"
	"github.com/bossygit/vibes-arc-sub000/internal/adapters/repository"
	"github.com/bossygit/vibes-arc-sub000/internal/core/domain"
	"github.com/bossygit/vibes-arc-sub000/internal/core/services"
	"github.com/bossygit/vibes-arc-sub000/internal/core/workers"
)

var testCal = domain.NewCalendar(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.UTC)

type testEnv struct {
	router     *gin.Engine
	habits     *repository.InMemoryHabitRepository
	identities *repository.InMemoryIdentityRepository
	exports    *workers.ExportWorker
}

func setupRouter(t *testing.T) *testEnv {
	gin.SetMode(gin.TestMode)

	habits := repository.NewInMemoryHabitRepository()
	identities := repository.NewInMemoryIdentityRepository()

	reports := services.NewReportService(habits, identities, testCal, 10).
		WithClock(func() time.Time { return time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC) })
	exports := workers.NewExportWorker(reports, t.TempDir())

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		HabitHandler:    adapterHTTP.NewHabitHandler(services.NewHabitService(habits, identities, testCal)),
		IdentityHandler: adapterHTTP.NewIdentityHandler(services.NewIdentityService(identities, habits)),
		ReportHandler:   adapterHTTP.NewReportHandler(reports, services.NewBackupService(habits, identities), exports),
		StartTime:       time.Now(),
	})

	return &testEnv{router: router, habits: habits, identities: identities, exports: exports}
}

func (e *testEnv) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req, _ = http.NewRequest(method, path, nil)
	} else {
		req, _ = http.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) seedHabit(t *testing.T, name string, progress []bool, identities ...int64) *domain.Habit {
	h, err := domain.NewHabit(name, domain.HabitTypeStart, len(progress), 0, identities)
	require.NoError(t, err)
	copy(h.Progress, progress)
	require.NoError(t, e.habits.Create(context.Background(), h))
	return h
}

func (e *testEnv) seedIdentity(t *testing.T, name string) *domain.Identity {
	identity, err := domain.NewIdentity(name, "", "")
	require.NoError(t, err)
	require.NoError(t, e.identities.Create(context.Background(), identity))
	return identity
}

func testContext(t *testing.T) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}
