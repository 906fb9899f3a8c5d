package intervals

import (
	"context"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(testWriter{}, &slog.HandlerOptions{Level: slog.LevelError}))
}

type testWriter struct{}

func (testWriter) Write(p []byte) (int, error) { return len(p), nil }

func TestListActivities(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if r.URL.Path != "/api/v1/athlete/i12345/activities" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("oldest") != "2023-09-01" {
			t.Errorf("Unexpected oldest param: %s", r.URL.Query().Get("oldest"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id":"9001","start_date_local":"2023-09-10T08:00:00","name":"Morning Ride","type":"Ride",
			 "moving_time":5400,"distance":42000,"total_elevation_gain":650,
			 "average_speed":7.78,"average_heartrate":145,"average_cadence":88,"average_watts":210}
		]`))
	}))
	defer server.Close()

	client := NewClient("secret-key", "i12345", testLogger())
	client.SetBaseURL(server.URL)

	oldest := time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC)
	newest := time.Date(2023, 9, 30, 0, 0, 0, 0, time.UTC)

	activities, err := client.ListActivities(context.Background(), oldest, newest)
	if err != nil {
		t.Fatalf("ListActivities failed: %v", err)
	}
	if len(activities) != 1 {
		t.Fatalf("Expected 1 activity, got %d", len(activities))
	}

	a := activities[0]
	if a.Name != "Morning Ride" || a.MovingTime != 5400 || a.DistanceM != 42000 {
		t.Errorf("Unexpected activity: %+v", a)
	}

	wantAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("API_KEY:secret-key"))
	if gotAuth != wantAuth {
		t.Errorf("Expected basic auth %q, got %q", wantAuth, gotAuth)
	}
}

func TestListActivitiesNon200IsHardFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient("bad-key", "i12345", testLogger())
	client.SetBaseURL(server.URL)

	_, err := client.ListActivities(context.Background(), time.Now().AddDate(0, -1, 0), time.Now())
	if err == nil {
		t.Fatal("Expected error for 403 response")
	}
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("Expected HTTPError, got %T: %v", err, err)
	}
	if httpErr.StatusCode != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", httpErr.StatusCode)
	}
}

func TestOverlappingFetchesLastRequestWins(t *testing.T) {
	release := make(chan struct{})
	var once sync.Once
	first := true
	var mu sync.Mutex

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		slow := first
		first = false
		mu.Unlock()
		if slow {
			<-release // hold the first request until the second finishes
			w.Write([]byte(`[{"id":"old","name":"Stale Ride"}]`))
			return
		}
		w.Write([]byte(`[{"id":"new","name":"Fresh Ride"}]`))
		once.Do(func() { close(release) })
	}))
	defer server.Close()

	client := NewClient("key", "i1", testLogger())
	client.SetBaseURL(server.URL)

	oldest, newest := time.Now().AddDate(0, -1, 0), time.Now()

	var wg sync.WaitGroup
	var firstErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, firstErr = client.ListActivities(context.Background(), oldest, newest)
	}()

	// Make sure the slow request is in flight before starting the second.
	time.Sleep(50 * time.Millisecond)

	fresh, err := client.ListActivities(context.Background(), oldest, newest)
	if err != nil {
		t.Fatalf("Second fetch failed: %v", err)
	}
	if len(fresh) != 1 || fresh[0].ID != "new" {
		t.Errorf("Second fetch returned wrong data: %+v", fresh)
	}

	wg.Wait()
	if !errors.Is(firstErr, ErrSuperseded) {
		t.Errorf("Expected first fetch to be superseded, got %v", firstErr)
	}
}
