package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(Cart{})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, WithTokenSource(staticToken("tok-123")))
	_, err := client.GetCart(t.Context())

	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(AlbumList{})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, WithTokenSource(staticToken("")))
	_, err := client.ListAlbums(t.Context(), 1, 20)

	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClient_UnauthorizedHookRunsOnEvery401(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "token expired"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	hookCalls := 0
	client := NewClient(srv.URL)
	client.SetUnauthorizedHook(func() { hookCalls++ })

	_, err := client.GetCart(t.Context())
	require.Error(t, err)
	_, err = client.ListOrders(t.Context(), 1, 20)
	require.Error(t, err)

	assert.Equal(t, 2, hookCalls)

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.True(t, apiErr.IsAuth())
	assert.Equal(t, "token expired", apiErr.Message)
}

func TestClient_ServerErrorMessageSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "cart is empty"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Checkout(t.Context())

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.True(t, apiErr.IsValidation())
	assert.Equal(t, "cart is empty", apiErr.Message)
}

func TestClient_MalformedBodyIsDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"albums": "not-an-array"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.ListAlbums(t.Context(), 1, 20)

	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
}

func TestClient_MissingLoginTokenIsDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Login(t.Context(), "a@b.c", "pw")

	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
}

func TestClient_RegisterReturnsProfileWithoutToken(t *testing.T) {
	id := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(User{ID: id, Email: "new@example.com"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	user, err := client.Register(t.Context(), "new@example.com", "password1", "Ai", "Zh")

	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, "new@example.com", user.Email)
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewClient(srv.URL)
	_, err := client.GetCart(t.Context())

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
}

func TestClient_PageQueryForwarded(t *testing.T) {
	var gotPage, gotLimit string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPage = r.URL.Query().Get("page")
		gotLimit = r.URL.Query().Get("limit")
		json.NewEncoder(w).Encode(OrderList{})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.AdminListOrders(t.Context(), 3, 50)

	require.NoError(t, err)
	assert.Equal(t, "3", gotPage)
	assert.Equal(t, "50", gotLimit)
}

func TestClient_ArtistCategories(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/artist_categories", r.URL.Path)
		w.Write([]byte(`{"categories": ["female_group", "male_group", "solo", "other"]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	categories, err := client.ArtistCategories(t.Context())

	require.NoError(t, err)
	assert.Equal(t, []string{"female_group", "male_group", "solo", "other"}, categories)
}

func TestClient_ArtistAlbumsForwardsSort(t *testing.T) {
	artistID := uuid.New()
	var gotPath, gotSort string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotSort = r.URL.Query().Get("sort")
		json.NewEncoder(w).Encode(AlbumList{Total: 4})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	list, err := client.ArtistAlbums(t.Context(), artistID, "title", 1, 20)

	require.NoError(t, err)
	assert.Equal(t, "/artists/"+artistID.String()+"/albums", gotPath)
	assert.Equal(t, "title", gotSort)
	assert.Equal(t, 4, list.Total)
}

func TestNumber_CoercesNumericStrings(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    float64
		wantErr bool
	}{
		{"plain number", `{"base_price": 25.5}`, 25.5, false},
		{"numeric string", `{"base_price": "25.50"}`, 25.5, false},
		{"integer string", `{"base_price": "20"}`, 20, false},
		{"garbage string", `{"base_price": "free"}`, 0, true},
		{"null", `{"base_price": null}`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out struct {
				BasePrice Number `json:"base_price"`
			}
			err := json.Unmarshal([]byte(tt.payload), &out)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.BasePrice.Float64())
		})
	}
}
