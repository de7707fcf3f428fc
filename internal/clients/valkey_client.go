package clients

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/valkey-io/valkey-go"
)

type ValkeyOptions struct {
	Address  string
	Password string
	UseTLS   bool
}

type ValkeyClient struct {
	client     valkey.Client
	opts       ValkeyOptions
	retryDelay time.Duration
	mu         sync.Mutex
}

// NewValkeyClient connects and pings the server once.
func NewValkeyClient(opts ValkeyOptions) (*ValkeyClient, error) {
	client, err := dialValkey(opts)
	if err != nil {
		return nil, err
	}
	slog.Info("[ValkeyClient] Successfully connected to valkey", slog.String("address", opts.Address))
	return &ValkeyClient{client: client, opts: opts, retryDelay: 250 * time.Millisecond}, nil
}

func dialValkey(opts ValkeyOptions) (valkey.Client, error) {
	clientOpts := valkey.ClientOption{
		InitAddress: []string{
			opts.Address,
		},
		Password:         opts.Password,
		ConnWriteTimeout: 5 * time.Second,
		SelectDB:         0,
	}

	if opts.UseTLS {
		clientOpts.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	}

	client, err := valkey.NewClient(clientOpts)
	if err != nil {
		return nil, fmt.Errorf("[ValkeyClient] failed to create Valkey: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
	defer cancel()

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("[ValkeyClient] failed to ping Valkey: %w", err)
	}
	return client, nil
}

func (vc *ValkeyClient) current() valkey.Client {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	return vc.client
}

func (vc *ValkeyClient) recreateClient() {
	vc.mu.Lock()
	defer vc.mu.Unlock()

	slog.Warn("[ValkeyClient] Attempting to recreate Valkey client...")
	client, err := dialValkey(vc.opts)
	if err != nil {
		slog.Error("[ValkeyClient] Recreate failed", slog.String("error", err.Error()))
		return
	}
	vc.client.Close()
	vc.client = client
	slog.Info("[ValkeyClient] Successfully reconnected to valkey")
}

func (vc *ValkeyClient) Close() {
	vc.current().Close()
}

// GetBytes reports found=false for a missing key.
func (vc *ValkeyClient) GetBytes(ctx context.Context, key string) ([]byte, bool, error) {
	res := vc.DoWithRetry(ctx, func(c valkey.Client) valkey.Completed {
		return c.B().Get().Key(key).Build()
	}, MAX_RETRIES)

	data, err := res.AsBytes()
	if valkey.IsValkeyNil(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("[ValkeyClient] get %s: %w", key, err)
	}
	return data, true, nil
}

// SetBytes stores value under key, expiring it after ttl when ttl is at least
// a second.
func (vc *ValkeyClient) SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	secs := int64(ttl / time.Second)
	results := vc.DoMultiWithRetry(ctx, func(c valkey.Client) []valkey.Completed {
		completed := []valkey.Completed{
			c.B().Set().Key(key).Value(valkey.BinaryString(value)).Build(),
		}
		if secs > 0 {
			completed = append(completed, c.B().Expire().Key(key).Seconds(secs).Build())
		}
		return completed
	}, MAX_RETRIES)

	for _, res := range results {
		if err := res.Error(); err != nil {
			return fmt.Errorf("[ValkeyClient] set %s: %w", key, err)
		}
	}
	return nil
}

func (vc *ValkeyClient) Delete(ctx context.Context, key string) error {
	res := vc.DoWithRetry(ctx, func(c valkey.Client) valkey.Completed {
		return c.B().Del().Key(key).Build()
	}, MAX_RETRIES)
	if err := res.Error(); err != nil {
		return fmt.Errorf("[ValkeyClient] delete %s: %w", key, err)
	}
	return nil
}

// DoMultiWithRetry builds the commands afresh for every attempt: valkey-go
// recycles a command once it has been answered, so it cannot be sent twice.
// Only transport failures are retried; error replies come back as they are.
func (vc *ValkeyClient) DoMultiWithRetry(ctx context.Context, build func(valkey.Client) []valkey.Completed, retries int) []valkey.ValkeyResult {
	var results []valkey.ValkeyResult

	for i := 0; i < retries; i++ {
		c := vc.current()
		results = c.DoMulti(ctx, build(c)...)

		var failed error
		for _, r := range results {
			if err := r.Error(); shouldRetry(ctx, err) {
				failed = err
				break
			}
		}
		if failed == nil || i == retries-1 || !vc.backoff(ctx, i, failed) {
			break
		}
	}

	return results
}

// DoWithRetry is DoMultiWithRetry for a single command.
func (vc *ValkeyClient) DoWithRetry(ctx context.Context, build func(valkey.Client) valkey.Completed, retries int) valkey.ValkeyResult {
	var result valkey.ValkeyResult
	for i := 0; i < retries; i++ {
		c := vc.current()
		result = c.Do(ctx, build(c))

		err := result.Error()
		if !shouldRetry(ctx, err) || i == retries-1 || !vc.backoff(ctx, i, err) {
			break
		}
	}

	return result
}

// backoff logs a failed attempt, reconnects on connection errors and waits
// before the next one. It returns false when ctx is done.
func (vc *ValkeyClient) backoff(ctx context.Context, attempt int, err error) bool {
	slog.Warn("[ValkeyClient] Do failed",
		slog.Int("attempt", attempt+1),
		slog.String("error", err.Error()))
	if isConnectionError(err) {
		vc.recreateClient()
	}

	select {
	case <-ctx.Done():
		return false
	case <-time.After(vc.retryDelay):
		return true
	}
}

// shouldRetry is true for transport failures. Nil replies and error replies
// such as WRONGTYPE or READONLY are answers, not failures.
func shouldRetry(ctx context.Context, err error) bool {
	if err == nil || ctx.Err() != nil || valkey.IsValkeyNil(err) {
		return false
	}
	if _, ok := valkey.IsValkeyErr(err); ok {
		return false
	}
	return true
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "EOF") ||
		strings.Contains(msg, "i/o timeout")
}
