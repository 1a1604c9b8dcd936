package hub

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetbook/internal/model"
)

func datetime(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, time.UTC)
}

// newHubStub starts an httptest server that issues tokens and serves the
// given handlers by path.
func newHubStub(t *testing.T, handlers map[string]http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "test-token",
			"token_type":   "bearer",
			"expires_in":   3600,
		})
	})
	for path, handler := range handlers {
		mux.HandleFunc(path, handler)
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, "client-id", "client-secret", srv.URL+"/oauth/token")
	return srv, client
}

func TestGetProfile(t *testing.T) {
	var gotAuth string
	_, client := newHubStub(t, map[string]http.HandlerFunc{
		"/api/team/profiles/username:alice": func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"profile": model.Profile{ID: "p1", Username: "alice", FirstName: "Alice", LastName: "Doe"},
			})
		},
	})

	profile, err := client.GetProfile(context.Background(), model.ProfileByUsername("alice"))
	require.NoError(t, err)
	assert.Equal(t, "p1", profile.ID)
	assert.Equal(t, "Bearer test-token", gotAuth)
}

func TestGetProfile_NotFound(t *testing.T) {
	_, client := newHubStub(t, map[string]http.HandlerFunc{
		"/api/team/profiles/username:ghost": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"no such profile"}`, http.StatusNotFound)
		},
	})

	_, err := client.GetProfile(context.Background(), model.ProfileByUsername("ghost"))
	assert.ErrorIs(t, err, model.ErrProfileNotFound)
}

func TestGetProfile_ServerError(t *testing.T) {
	_, client := newHubStub(t, map[string]http.HandlerFunc{
		"/api/team/profiles/username:alice": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
		},
	})

	_, err := client.GetProfile(context.Background(), model.ProfileByUsername("alice"))
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
}

func TestGetMeetings_SortedByStart(t *testing.T) {
	_, client := newHubStub(t, map[string]http.HandlerFunc{
		"/api/meetings": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "p1", r.URL.Query().Get("profile"))
			assert.Equal(t, "true", r.URL.Query().Get("include_recurring"))
			_ = json.NewEncoder(w).Encode(map[string]any{
				"meetings": []model.Meeting{
					{ID: "late", OccurrenceRule: model.OccurrenceRule{Start: datetime(2026, 3, 2, 14, 0), End: datetime(2026, 3, 2, 15, 0)}},
					{ID: "early", OccurrenceRule: model.OccurrenceRule{Start: datetime(2026, 3, 2, 9, 0), End: datetime(2026, 3, 2, 10, 0)}},
				},
			})
		},
	})

	meetings, err := client.GetMeetings(context.Background(), "p1", datetime(2026, 3, 2, 0, 0), datetime(2026, 3, 7, 0, 0))
	require.NoError(t, err)
	require.Len(t, meetings, 2)
	assert.Equal(t, "early", meetings[0].ID)
	assert.Equal(t, "late", meetings[1].ID)
}

func TestCreateMeeting(t *testing.T) {
	var gotSpec model.MeetingSpec
	_, client := newHubStub(t, map[string]http.HandlerFunc{
		"/api/meetings": func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotSpec))
			_ = json.NewEncoder(w).Encode(map[string]any{
				"meeting": model.Meeting{ID: "mtg1", Summary: gotSpec.Summary},
			})
		},
	})

	spec := model.MeetingSpec{
		Summary:    "[MeetBook] Meeting with Bob",
		Start:      datetime(2026, 3, 2, 9, 0),
		End:        datetime(2026, 3, 2, 9, 30),
		Timezone:   "UTC",
		BusyStatus: model.BusyStatusBusy,
		Visibility: model.VisibilityParticipants,
	}
	meeting, err := client.CreateMeeting(context.Background(), spec)
	require.NoError(t, err)
	assert.Equal(t, "mtg1", meeting.ID)
	assert.Equal(t, model.VisibilityParticipants, gotSpec.Visibility)
}

func TestSendChatMessage(t *testing.T) {
	var gotBody chatMessageRequest
	_, client := newHubStub(t, map[string]http.HandlerFunc{
		"/api/chats/messages": func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			w.WriteHeader(http.StatusOK)
		},
	})

	require.NoError(t, client.SendChatMessage(context.Background(), "p1", "hello"))
	assert.Equal(t, "member:id:p1", gotBody.Recipient)
	assert.Equal(t, "hello", gotBody.Text)
	assert.True(t, gotBody.UnfurlLinks)
}

func TestRedisCache(t *testing.T) {
	calls := 0
	_, client := newHubStub(t, map[string]http.HandlerFunc{
		"/api/team/profiles/username:alice": func(w http.ResponseWriter, r *http.Request) {
			calls++
			_ = json.NewEncoder(w).Encode(map[string]any{
				"profile": model.Profile{ID: "p1", Username: "alice"},
			})
		},
	})

	mr := miniredis.RunT(t)
	client.UseRedisCache(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Minute)

	for i := 0; i < 3; i++ {
		profile, err := client.GetProfile(context.Background(), model.ProfileByUsername("alice"))
		require.NoError(t, err)
		assert.Equal(t, "p1", profile.ID)
	}
	assert.Equal(t, 1, calls)
}

func TestMeetingURL(t *testing.T) {
	client := NewClient("https://hub.example.org/", "id", "secret", "")
	assert.Equal(t, "https://hub.example.org/meetings/mtg1", client.MeetingURL("mtg1"))
}
