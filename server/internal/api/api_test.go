package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/kachalmers/tuiter/server/internal/store/memory"
)

type userBody struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type deleteBody struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

type errorBody struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func newTestAPI(t *testing.T) *resty.Client {
	t.Helper()
	srv := httptest.NewServer(NewRouter(memory.New(), Options{BcryptCost: bcrypt.MinCost, Logger: zerolog.Nop()}))
	t.Cleanup(srv.Close)
	return resty.New().
		SetBaseURL(srv.URL+"/api").
		SetHeader("Content-Type", "application/json").
		SetTimeout(5 * time.Second)
}

func createUser(t *testing.T, c *resty.Client, username string) userBody {
	t.Helper()
	var u userBody
	resp, err := c.R().
		SetBody(map[string]string{"username": username, "password": username + "123", "email": username + "@stooges.com"}).
		SetResult(&u).
		Post("/users")
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode(), resp.String())
	return u
}

func TestAPI_Health(t *testing.T) {
	c := newTestAPI(t)
	var body map[string]string
	resp, err := c.R().SetResult(&body).Get("/health")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, "UP", body["status"])
}

func TestAPI_UserLifecycle(t *testing.T) {
	c := newTestAPI(t)
	u := createUser(t, c, "eleanorrigby")
	require.NotEmpty(t, u.ID)
	assert.Empty(t, u.Password, "password must never be echoed")

	var got userBody
	resp, err := c.R().SetResult(&got).Get("/users/" + u.ID)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, "eleanorrigby", got.Username)
	assert.Equal(t, "eleanorrigby@stooges.com", got.Email)

	var all []userBody
	resp, err = c.R().SetResult(&all).Get("/users")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Len(t, all, 1)

	var del deleteBody
	resp, err = c.R().SetResult(&del).Delete("/users/" + u.ID)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, deleteBody{Acknowledged: true, DeletedCount: 1}, del)

	var e errorBody
	resp, err = c.R().SetError(&e).Get("/users/" + u.ID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())
	assert.Equal(t, 404, e.Code)
}

func TestAPI_ListUsersEmptyIsArray(t *testing.T) {
	c := newTestAPI(t)
	resp, err := c.R().Get("/users")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, resp.String())
}

func TestAPI_DuplicateUsername(t *testing.T) {
	c := newTestAPI(t)
	createUser(t, c, "moe")
	resp, err := c.R().SetBody(map[string]string{"username": "moe", "password": "x"}).Post("/users")
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode())
}

func TestAPI_MalformedJSON(t *testing.T) {
	c := newTestAPI(t)
	for _, body := range []string{`{`, `[]`, `null`, `"x"`} {
		resp, err := c.R().SetBody(body).Post("/users")
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode(), "body %s", body)
	}
}

func TestAPI_DotUsernamesRejected(t *testing.T) {
	c := newTestAPI(t)
	for _, name := range []string{".", ".."} {
		resp, err := c.R().SetBody(map[string]string{"username": name, "password": "dots123"}).Post("/users")
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode(), "username %q", name)
	}

	var users []userBody
	resp, err := c.R().SetResult(&users).Get("/users")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Empty(t, users)
}

func TestAPI_DeleteByUsername(t *testing.T) {
	c := newTestAPI(t)
	createUser(t, c, "larry")
	createUser(t, c, "curley")

	var del deleteBody
	resp, err := c.R().SetResult(&del).Get("/users/username/larry/delete")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	assert.EqualValues(t, 1, del.DeletedCount)

	resp, err = c.R().SetResult(&del).Get("/users/username/larry/delete")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	assert.EqualValues(t, 0, del.DeletedCount)
}

func TestAPI_Login(t *testing.T) {
	c := newTestAPI(t)
	u := createUser(t, c, "curley")

	var got userBody
	resp, err := c.R().SetBody(map[string]string{"username": "curley", "password": "curley123"}).SetResult(&got).Post("/login")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, u.ID, got.ID)

	resp, err = c.R().SetBody(map[string]string{"username": "curley", "password": "nope"}).Post("/login")
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode())
}

func TestAPI_TuitLifecycle(t *testing.T) {
	c := newTestAPI(t)
	u := createUser(t, c, "bob_ross")

	var created map[string]any
	resp, err := c.R().SetBody(map[string]string{"tuit": "happy little trees"}).SetResult(&created).Post("/users/" + u.ID + "/tuits")
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode(), resp.String())
	assert.Equal(t, u.ID, created["postedBy"], "create references author by id")
	id, _ := created["_id"].(string)
	require.NotEmpty(t, id)

	var got map[string]any
	resp, err = c.R().SetResult(&got).Get("/tuits/" + id)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	author, ok := got["postedBy"].(map[string]any)
	require.True(t, ok, "get embeds author object, got %T", got["postedBy"])
	assert.Equal(t, "bob_ross", author["username"])

	var list []map[string]any
	resp, err = c.R().SetResult(&list).Get("/tuits")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0]["_id"])

	var del deleteBody
	resp, err = c.R().SetResult(&del).Delete("/tuits/" + id)
	require.NoError(t, err)
	assert.EqualValues(t, 1, del.DeletedCount)

	resp, err = c.R().Get("/tuits/" + id)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())
}

func TestAPI_TuitUnknownAuthor(t *testing.T) {
	c := newTestAPI(t)
	resp, err := c.R().SetBody(map[string]string{"tuit": "orphan"}).Post("/users/nobody/tuits")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())
}

func TestAPI_UnknownRouteAndMethod(t *testing.T) {
	c := newTestAPI(t)
	resp, err := c.R().Get("/nope")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())

	resp, err = c.R().Put("/tuits")
	require.NoError(t, err)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode())
}

func TestAPI_MetricsExposed(t *testing.T) {
	srv := httptest.NewServer(NewRouter(memory.New(), Options{BcryptCost: bcrypt.MinCost, Logger: zerolog.Nop()}))
	defer srv.Close()
	c := resty.New().SetBaseURL(srv.URL)

	_, err := c.R().Get("/api/health")
	require.NoError(t, err)

	resp, err := c.R().Get("/metrics")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Contains(t, resp.String(), "tuiter_server_http_requests_total")
}
