package handlers_test

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/screamhq/screams-backend/internal/cache"
	"github.com/screamhq/screams-backend/internal/handlers"
	"github.com/screamhq/screams-backend/internal/models"
)

func newScreamHandler(screamRepo *fakeScreamRepo, commentRepo *fakeCommentRepo) *handlers.ScreamHandler {
	return handlers.NewScreamHandler(screamRepo, commentRepo, cache.NewFeedCache(nil, 0))
}

func createTestScream(t *testing.T, h *handlers.ScreamHandler, e *echo.Echo, user *models.User, body string) models.Scream {
	t.Helper()
	c, rec := newJSONContext(e, http.MethodPost, "/screams", `{"body":"`+body+`"}`)
	authenticate(c, user)
	require.NoError(t, h.CreateScream(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var scream models.Scream
	decodeBody(t, rec, &scream)
	return scream
}

func TestCreateAndGetScreamRoundTrip(t *testing.T) {
	e := echo.New()
	screamRepo := newFakeScreamRepo()
	h := newScreamHandler(screamRepo, newFakeCommentRepo())
	user := &models.User{Handle: "alice", ImageURL: "https://cdn.example.com/alice.png"}

	created := createTestScream(t, h, e, user, "hello")
	assert.Equal(t, "hello", created.Body)
	assert.Equal(t, "alice", created.UserHandle)
	assert.Equal(t, user.ImageURL, created.UserImage)

	c, rec := newJSONContext(e, http.MethodGet, "/screams/"+created.ID.Hex(), "")
	c.SetPath("/screams/:id")
	c.SetParamNames("id")
	c.SetParamValues(created.ID.Hex())
	require.NoError(t, h.GetScream(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var details models.ScreamDetails
	decodeBody(t, rec, &details)
	assert.Equal(t, "hello", details.Body)
	assert.Equal(t, 0, details.LikeCount)
	assert.Equal(t, 0, details.CommentCount)
	assert.Empty(t, details.Comments)
	assert.NotNil(t, details.Comments, "comments must serialize as [], not null")
}

func TestCreateScreamRejectsEmptyBody(t *testing.T) {
	e := echo.New()
	h := newScreamHandler(newFakeScreamRepo(), newFakeCommentRepo())

	c, rec := newJSONContext(e, http.MethodPost, "/screams", `{"body":""}`)
	authenticate(c, &models.User{Handle: "alice"})
	require.NoError(t, h.CreateScream(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body map[string]string
	decodeBody(t, rec, &body)
	assert.Equal(t, "Must not be empty!", body["body"])
}

func TestGetScreamsOrdersNewestFirst(t *testing.T) {
	e := echo.New()
	screamRepo := newFakeScreamRepo()
	h := newScreamHandler(screamRepo, newFakeCommentRepo())
	user := &models.User{Handle: "alice"}

	createTestScream(t, h, e, user, "first")
	createTestScream(t, h, e, user, "second")
	createTestScream(t, h, e, user, "third")

	c, rec := newJSONContext(e, http.MethodGet, "/screams", "")
	require.NoError(t, h.GetScreams(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var screams []models.Scream
	decodeBody(t, rec, &screams)
	require.Len(t, screams, 3)
	assert.Equal(t, "third", screams[0].Body)
	assert.Equal(t, "second", screams[1].Body)
	assert.Equal(t, "first", screams[2].Body)
}

func TestGetScreamNotFound(t *testing.T) {
	e := echo.New()
	h := newScreamHandler(newFakeScreamRepo(), newFakeCommentRepo())

	c, rec := newJSONContext(e, http.MethodGet, "/screams/unknown", "")
	c.SetPath("/screams/:id")
	c.SetParamNames("id")
	c.SetParamValues("65b000000000000000000000")
	require.NoError(t, h.GetScream(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteScream(t *testing.T) {
	e := echo.New()
	screamRepo := newFakeScreamRepo()
	h := newScreamHandler(screamRepo, newFakeCommentRepo())
	owner := &models.User{Handle: "alice"}
	scream := createTestScream(t, h, e, owner, "mine")

	t.Run("rejects non-owner", func(t *testing.T) {
		c, rec := newJSONContext(e, http.MethodDelete, "/screams/"+scream.ID.Hex(), "")
		c.SetPath("/screams/:id")
		c.SetParamNames("id")
		c.SetParamValues(scream.ID.Hex())
		authenticate(c, &models.User{Handle: "mallory"})
		require.NoError(t, h.DeleteScream(c))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("owner deletes", func(t *testing.T) {
		c, rec := newJSONContext(e, http.MethodDelete, "/screams/"+scream.ID.Hex(), "")
		c.SetPath("/screams/:id")
		c.SetParamNames("id")
		c.SetParamValues(scream.ID.Hex())
		authenticate(c, owner)
		require.NoError(t, h.DeleteScream(c))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("already gone", func(t *testing.T) {
		c, rec := newJSONContext(e, http.MethodDelete, "/screams/"+scream.ID.Hex(), "")
		c.SetPath("/screams/:id")
		c.SetParamNames("id")
		c.SetParamValues(scream.ID.Hex())
		authenticate(c, owner)
		require.NoError(t, h.DeleteScream(c))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
