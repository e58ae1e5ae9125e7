package session

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aigerim-zh/kshop/pkg/storefront/api"
)

type fakeAuthAPI struct {
	loginResp *api.LoginResponse
	loginErr  error
	checkResp *api.User
	checkErr  error

	loginCalls int
	checkCalls int
}

func (f *fakeAuthAPI) Login(ctx context.Context, email, password string) (*api.LoginResponse, error) {
	f.loginCalls++
	return f.loginResp, f.loginErr
}

func (f *fakeAuthAPI) CheckAuth(ctx context.Context) (*api.User, error) {
	f.checkCalls++
	return f.checkResp, f.checkErr
}

func sessionPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "session.json")
}

func TestStore_LoginPersistsSession(t *testing.T) {
	user := &api.User{ID: uuid.New(), Email: "fan@example.com"}
	client := &fakeAuthAPI{loginResp: &api.LoginResponse{Token: "tok-1", User: user}}
	path := sessionPath(t)
	store := NewStore(client, path)

	got, err := store.Login(t.Context(), "fan@example.com", "pw")

	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)
	assert.Equal(t, "tok-1", store.Token())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var p struct {
		Token string    `json:"token"`
		User  *api.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(data, &p))
	assert.Equal(t, "tok-1", p.Token)
	assert.Equal(t, user.Email, p.User.Email)
}

func TestStore_FailedLoginClearsPriorSession(t *testing.T) {
	user := &api.User{ID: uuid.New()}
	client := &fakeAuthAPI{loginResp: &api.LoginResponse{Token: "tok-1", User: user}}
	path := sessionPath(t)
	store := NewStore(client, path)

	_, err := store.Login(t.Context(), "fan@example.com", "pw")
	require.NoError(t, err)

	client.loginResp = nil
	client.loginErr = &api.APIError{StatusCode: http.StatusUnauthorized, Message: "invalid credentials"}

	_, err = store.Login(t.Context(), "fan@example.com", "wrong")
	require.Error(t, err)

	assert.Empty(t, store.Token())
	assert.Nil(t, store.Current())
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestStore_RestoreRejectedTokenClearsSilently(t *testing.T) {
	path := sessionPath(t)
	require.NoError(t, os.WriteFile(path, []byte(`{"token":"stale","user":{"email":"fan@example.com"}}`), 0o600))

	client := &fakeAuthAPI{checkErr: &api.APIError{StatusCode: http.StatusUnauthorized, Message: "token expired"}}
	store := NewStore(client, path)

	user, err := store.Restore(t.Context())

	assert.NoError(t, err)
	assert.Nil(t, user)
	assert.Empty(t, store.Token())
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestStore_RestoreValidToken(t *testing.T) {
	path := sessionPath(t)
	require.NoError(t, os.WriteFile(path, []byte(`{"token":"tok-1","user":{"email":"fan@example.com"}}`), 0o600))

	fresh := &api.User{ID: uuid.New(), Email: "fan@example.com", FirstName: "Aigerim"}
	client := &fakeAuthAPI{checkResp: fresh}
	store := NewStore(client, path)

	user, err := store.Restore(t.Context())

	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "Aigerim", user.FirstName)
	assert.Equal(t, "tok-1", store.Token())
	assert.Equal(t, 1, client.checkCalls)
}

func TestStore_RestoreMissingFileIsUnauthenticated(t *testing.T) {
	store := NewStore(&fakeAuthAPI{}, sessionPath(t))

	user, err := store.Restore(t.Context())

	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestStore_SubscribersNotified(t *testing.T) {
	user := &api.User{ID: uuid.New(), Email: "fan@example.com"}
	client := &fakeAuthAPI{loginResp: &api.LoginResponse{Token: "tok-1", User: user}}
	store := NewStore(client, sessionPath(t))

	var events []*api.User
	store.Subscribe(func(u *api.User) { events = append(events, u) })

	_, err := store.Login(t.Context(), "fan@example.com", "pw")
	require.NoError(t, err)
	store.Logout()

	require.Len(t, events, 2)
	assert.Equal(t, user.Email, events[0].Email)
	assert.Nil(t, events[1])
}

func TestStore_HandleUnauthorizedClearsSession(t *testing.T) {
	user := &api.User{ID: uuid.New()}
	client := &fakeAuthAPI{loginResp: &api.LoginResponse{Token: "tok-1", User: user}}
	path := sessionPath(t)
	store := NewStore(client, path)

	_, err := store.Login(t.Context(), "fan@example.com", "pw")
	require.NoError(t, err)

	store.HandleUnauthorized()

	assert.Empty(t, store.Token())
	assert.Nil(t, store.Current())
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
