package clients

import (
	"context"
	"log/slog"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
)

type FetchOptions struct {
	UserAgent string
	Timeout   time.Duration
	// CloudflareBypass wraps the transport with cloudflare-bp-go. The wrapper
	// sets its own browser headers, so the configured user agent may be replaced.
	CloudflareBypass bool
}

type FetchClient struct {
	Http *resty.Client
}

func NewFetchClient(opts FetchOptions) *FetchClient {
	if opts.UserAgent == "" {
		opts.UserAgent = BROWSER_USER_AGENT
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DEFAULT_FETCH_TIMEOUT
	}

	client := resty.New()
	if opts.CloudflareBypass {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}
	client.SetHeader("User-Agent", opts.UserAgent)
	client.SetTimeout(opts.Timeout)

	slog.Debug("[FetchClient] Initializing Client",
		slog.Duration("timeout", opts.Timeout),
		slog.Bool("cloudflare_bypass", opts.CloudflareBypass))

	return &FetchClient{Http: client}
}

// Fetch performs a single GET and hands back the raw body. The status code is
// not inspected and nothing is retried.
func (f *FetchClient) Fetch(ctx context.Context, url string) ([]byte, error) {
	start := time.Now()

	res, err := f.Http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		slog.Error("[FetchClient] Fetch failed",
			slog.String("url", url),
			slog.String("error", err.Error()))
		return nil, err
	}

	slog.Info("[FetchClient] Fetched page",
		slog.String("url", url),
		slog.Int("status", res.StatusCode()),
		slog.Int("bytes", len(res.Body())),
		slog.Duration("elapsed", time.Since(start)))

	return res.Body(), nil
}
