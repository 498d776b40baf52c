package clients

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/spacesedan/reviewlens/internal/models"
	"github.com/valkey-io/valkey-go"
)

const VALKEY_PREDICTION_PREFIX = "reviewlens:prediction:"

type ValkeyOptions struct {
	Address  string
	Password string
	TLS      bool
	TTL      time.Duration
}

type ValkeyClient struct {
	Client valkey.Client
	opts   ValkeyOptions
	mu     sync.Mutex
}

func NewValkeyClient(opts ValkeyOptions) (*ValkeyClient, error) {
	client, err := connectValkey(opts)
	if err != nil {
		return nil, err
	}

	slog.Info("[ValkeyClient] Successfully connected to valkey",
		slog.String("address", opts.Address))

	return &ValkeyClient{Client: client, opts: opts}, nil
}

func connectValkey(opts ValkeyOptions) (valkey.Client, error) {
	clientOpts := valkey.ClientOption{
		InitAddress: []string{
			opts.Address,
		},
		Password:         opts.Password,
		ConnWriteTimeout: 5 * time.Second,
		SelectDB:         0,
	}

	if opts.TLS {
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

func (vc *ValkeyClient) recreateClient() {
	vc.mu.Lock()
	defer vc.mu.Unlock()

	slog.Warn("[ValkeyClient] Attempting to recreate Valkey client...")
	client, err := connectValkey(vc.opts)
	if err != nil {
		slog.Error("[ValkeyClient] Recreate failed", slog.String("error", err.Error()))
		return
	}

	vc.Client.Close()
	vc.Client = client
}

func (vc *ValkeyClient) client() valkey.Client {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	return vc.Client
}

func (vc *ValkeyClient) Close() {
	vc.client().Close()
}

// GetPrediction reports found=false on a cache miss.
func (vc *ValkeyClient) GetPrediction(ctx context.Context, key string) (models.Prediction, bool, error) {
	var prediction models.Prediction
	c := vc.client()

	raw, err := c.Do(ctx, c.B().Get().Key(VALKEY_PREDICTION_PREFIX+key).Build()).ToString()
	if valkey.IsValkeyNil(err) {
		return prediction, false, nil
	}
	if err != nil {
		if isConnectionError(err) {
			vc.recreateClient()
		}
		return prediction, false, err
	}

	if err := json.Unmarshal([]byte(raw), &prediction); err != nil {
		return prediction, false, fmt.Errorf("failed to unmarshal cached prediction: %w", err)
	}

	return prediction, true, nil
}

func (vc *ValkeyClient) PutPrediction(ctx context.Context, key string, prediction models.Prediction) error {
	body, err := json.Marshal(prediction)
	if err != nil {
		return fmt.Errorf("failed to marshal prediction: %w", err)
	}

	c := vc.client()
	cmd := c.B().Set().Key(VALKEY_PREDICTION_PREFIX + key).Value(string(body)).ExSeconds(int64(vc.ttl().Seconds())).Build()
	if err := c.Do(ctx, cmd).Error(); err != nil {
		if isConnectionError(err) {
			vc.recreateClient()
		}
		return err
	}

	return nil
}

func (vc *ValkeyClient) ttl() time.Duration {
	if vc.opts.TTL < time.Second {
		return 24 * time.Hour
	}
	return vc.opts.TTL
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
