package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

func useTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestAside_MissFetchesAndStores(t *testing.T) {
	mr := useTestRedis(t)
	ctx := context.Background()

	fetchCalls := 0
	var got cachedUser
	err := Aside(ctx, UserKey(1), &got, UserTTL, func() error {
		fetchCalls++
		got = cachedUser{ID: 1, Username: "alice"}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, fetchCalls)
	assert.Equal(t, "alice", got.Username)

	stored, err := mr.Get(UserKey(1))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"username":"alice"}`, stored)
}

func TestAside_HitSkipsFetch(t *testing.T) {
	mr := useTestRedis(t)
	ctx := context.Background()

	require.NoError(t, mr.Set(UserKey(2), `{"id":2,"username":"bob"}`))

	fetchCalls := 0
	var got cachedUser
	err := Aside(ctx, UserKey(2), &got, UserTTL, func() error {
		fetchCalls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 0, fetchCalls)
	assert.Equal(t, uint(2), got.ID)
	assert.Equal(t, "bob", got.Username)
}

func TestAside_CorruptEntryFallsThroughToFetch(t *testing.T) {
	mr := useTestRedis(t)
	ctx := context.Background()

	require.NoError(t, mr.Set(UserKey(3), `{not json`))

	fetchCalls := 0
	var got cachedUser
	err := Aside(ctx, UserKey(3), &got, UserTTL, func() error {
		fetchCalls++
		got = cachedUser{ID: 3, Username: "carol"}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, fetchCalls)
	assert.Equal(t, "carol", got.Username)

	// The bad entry was replaced with the fresh fetch result.
	stored, err := mr.Get(UserKey(3))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":3,"username":"carol"}`, stored)
}

func TestAside_FetchErrorIsNotCached(t *testing.T) {
	mr := useTestRedis(t)
	ctx := context.Background()

	var got cachedUser
	err := Aside(ctx, UserKey(4), &got, UserTTL, func() error {
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)
	assert.False(t, mr.Exists(UserKey(4)))
}

func TestAside_NilClientDegradesToFetch(t *testing.T) {
	SetClient(nil)

	fetchCalls := 0
	var got cachedUser
	err := Aside(context.Background(), UserKey(5), &got, UserTTL, func() error {
		fetchCalls++
		got = cachedUser{ID: 5, Username: "dave"}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, fetchCalls)
	assert.Equal(t, "dave", got.Username)
}

func TestAside_SetsTTL(t *testing.T) {
	mr := useTestRedis(t)

	var got cachedUser
	err := Aside(context.Background(), RecipeKey(7), &got, RecipeTTL, func() error {
		got = cachedUser{ID: 7}
		return nil
	})
	require.NoError(t, err)

	mr.FastForward(RecipeTTL + time.Second)
	assert.False(t, mr.Exists(RecipeKey(7)))
}

func TestInvalidateRecipe_DropsRecipeAndList(t *testing.T) {
	mr := useTestRedis(t)
	ctx := context.Background()

	require.NoError(t, mr.Set(RecipeKey(9), `{"id":9}`))
	require.NoError(t, mr.Set(RecipeListKey, `[]`))
	require.NoError(t, mr.Set(UserKey(1), `{"id":1}`))

	InvalidateRecipe(ctx, 9)

	assert.False(t, mr.Exists(RecipeKey(9)))
	assert.False(t, mr.Exists(RecipeListKey))
	assert.True(t, mr.Exists(UserKey(1)), "unrelated keys survive")
}

func TestInvalidateUser(t *testing.T) {
	mr := useTestRedis(t)

	require.NoError(t, mr.Set(UserKey(11), `{"id":11}`))
	InvalidateUser(context.Background(), 11)
	assert.False(t, mr.Exists(UserKey(11)))
}
