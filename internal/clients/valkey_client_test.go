package clients

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valkey-io/valkey-go"

	"github.com/spacesedan/evalflow/internal/clients/valkeytest"
)

func newTestValkeyClient(t *testing.T) (*ValkeyClient, *valkeytest.Server) {
	t.Helper()
	srv := valkeytest.NewServer(t)
	vc, err := NewValkeyClient(ValkeyOptions{Address: srv.Addr()})
	require.NoError(t, err)
	vc.retryDelay = time.Millisecond
	t.Cleanup(vc.Close)
	return vc, srv
}

func TestIsConnectionError(t *testing.T) {
	assert.False(t, isConnectionError(nil))
	assert.True(t, isConnectionError(errors.New("dial tcp 127.0.0.1:6379: connect: connection refused")))
	assert.True(t, isConnectionError(errors.New("unexpected EOF")))
	assert.True(t, isConnectionError(errors.New("read tcp: i/o timeout")))
	assert.False(t, isConnectionError(errors.New("WRONGTYPE Operation against a key holding the wrong kind of value")))
}

func TestShouldRetry(t *testing.T) {
	ctx := context.Background()
	assert.False(t, shouldRetry(ctx, nil))
	assert.False(t, shouldRetry(ctx, valkey.Nil))
	assert.True(t, shouldRetry(ctx, errors.New("unexpected EOF")))

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	assert.False(t, shouldRetry(canceled, errors.New("unexpected EOF")))
}

func TestNewValkeyClientUnreachable(t *testing.T) {
	_, err := NewValkeyClient(ValkeyOptions{Address: "127.0.0.1:1"})
	assert.ErrorContains(t, err, "[ValkeyClient]")
}

func TestValkeyGetBytes(t *testing.T) {
	vc, srv := newTestValkeyClient(t)
	ctx := context.Background()

	data, found, err := vc.GetBytes(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, data)

	srv.Put("k", "hello")
	data, found, err = vc.GetBytes(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("hello"), data)
}

func TestValkeySetBytes(t *testing.T) {
	vc, srv := newTestValkeyClient(t)
	ctx := context.Background()

	require.NoError(t, vc.SetBytes(ctx, "with-ttl", []byte{0, 1, 2}, 90*time.Second))
	v, ok := srv.Value("with-ttl")
	require.True(t, ok)
	assert.Equal(t, string([]byte{0, 1, 2}), v)
	secs, ok := srv.TTL("with-ttl")
	require.True(t, ok)
	assert.Equal(t, int64(90), secs)

	require.NoError(t, vc.SetBytes(ctx, "forever", []byte("x"), 0))
	_, ok = srv.TTL("forever")
	assert.False(t, ok)
	assert.Equal(t, 1, srv.Calls("EXPIRE"))
}

func TestValkeyDelete(t *testing.T) {
	vc, srv := newTestValkeyClient(t)
	ctx := context.Background()

	srv.Put("k", "v")
	require.NoError(t, vc.Delete(ctx, "k"))
	_, ok := srv.Value("k")
	assert.False(t, ok)

	require.NoError(t, vc.Delete(ctx, "k"), "deleting a missing key is not an error")
}

func TestValkeyErrorReplyIsNotRetried(t *testing.T) {
	vc, srv := newTestValkeyClient(t)
	ctx := context.Background()
	srv.FailKey("list", "WRONGTYPE Operation against a key holding the wrong kind of value")

	require.NotPanics(t, func() {
		_, found, err := vc.GetBytes(ctx, "list")
		assert.ErrorContains(t, err, "WRONGTYPE")
		assert.False(t, found)
	})
	assert.Equal(t, 1, srv.Calls("GET"))

	require.NotPanics(t, func() {
		err := vc.SetBytes(ctx, "list", []byte("v"), time.Minute)
		assert.ErrorContains(t, err, "WRONGTYPE")
	})
	assert.Equal(t, 1, srv.Calls("SET"))

	// the client stays usable afterwards
	require.NoError(t, vc.SetBytes(ctx, "other", []byte("v"), 0))
}

func TestValkeyRetriesDroppedConnection(t *testing.T) {
	vc, srv := newTestValkeyClient(t)
	ctx := context.Background()
	srv.DropNext("SET", 1)

	require.NoError(t, vc.SetBytes(ctx, "k", []byte("v"), time.Minute))
	assert.Equal(t, 2, srv.Calls("SET"))
	v, ok := srv.Value("k")
	require.True(t, ok)
	assert.Equal(t, "v", v)
	secs, _ := srv.TTL("k")
	assert.Equal(t, int64(60), secs)
}

func TestValkeyGivesUpAfterRetries(t *testing.T) {
	vc, srv := newTestValkeyClient(t)
	srv.DropNext("DEL", MAX_RETRIES)

	err := vc.Delete(context.Background(), "k")
	assert.ErrorContains(t, err, "[ValkeyClient] delete k")
	assert.Equal(t, MAX_RETRIES, srv.Calls("DEL"))
}
