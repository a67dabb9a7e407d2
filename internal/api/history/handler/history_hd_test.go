package historyHandler

import (
	"CafeAnalyzer/internal/api/history"
	historyService "CafeAnalyzer/internal/api/history/service"
	"CafeAnalyzer/internal/entity"
	"CafeAnalyzer/internal/middleware"
	"CafeAnalyzer/internal/state"
	"CafeAnalyzer/pkg/locale"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

func TestMain(m *testing.M) {
	os.Setenv("APP_ENV", "test")
	os.Exit(m.Run())
}

type nopRepo struct{}

func (nopRepo) Load(ctx context.Context) ([]entity.HistoryEntry, error) { return nil, nil }
func (nopRepo) Save(ctx context.Context, entries []entity.HistoryEntry) error {
	return nil
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestListHistory(t *testing.T) {
	now := time.Date(2024, 5, 8, 12, 0, 0, 0, time.UTC)
	clock := now
	hs := historyService.New(quietLogger(), nopRepo{}, nil, historyService.WithClock(func() time.Time { return clock }))
	appState := state.New()

	for _, ts := range []string{"2024-05-01T12:00:00Z", "2024-05-08T11:00:00Z"} {
		res := entity.AnalysisResult{
			Timestamp: ts,
			Tables: []entity.TableDetection{
				{ID: 1, BBox: entity.BoundingBox{0, 0, 1, 1}, Status: entity.TableOccupied, PersonCount: 1, Confidence: 0.9},
				{ID: 2, BBox: entity.BoundingBox{2, 2, 3, 3}, Status: entity.TableFree, Confidence: 0.8},
			},
			People:        []entity.PersonDetection{},
			OccupancyRate: 0.5,
		}
		entry, err := hs.Append(context.Background(), res)
		if err != nil {
			t.Fatalf("Append: %v", err)
		}
		res.ID = entry.ID
		appState.SetCurrent(res, nil)
		clock = clock.Add(time.Millisecond)
	}

	log := quietLogger()
	mw := middleware.New(log, middleware.Options{})
	app := fiber.New()
	New(log, validator.New(), mw, hs, appState, locale.Default()).Start(app.Group("/api/v1"))

	tests := []struct {
		query string
		want  int
	}{
		{"", 2},
		{"?period=all", 2},
		{"?period=day", 1},
		{"?period=current", 1},
		{"?period=fortnight", 1},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/history"+tt.query, nil))
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d", resp.StatusCode)
			}

			var body history.HistoryListResponse
			if err := jsoniter.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Total != tt.want || len(body.Items) != tt.want {
				t.Errorf("total %d, items %d, want %d", body.Total, len(body.Items), tt.want)
			}
			if body.Items[0].Occupancy != "50%" || body.Items[0].FreeTables != 1 {
				t.Errorf("first item = %+v", body.Items[0])
			}
		})
	}
}
