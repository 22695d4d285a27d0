package inline

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/bannerforge/bannerforge/pkg/cache"
	"github.com/bannerforge/bannerforge/pkg/errors"
)

// DefaultFetchTimeout bounds one resource fetch. Network fetches are the
// only unbounded-latency operations in the pipeline, so every fetch gets
// its own deadline; on expiry that one resource is treated as failed.
const DefaultFetchTimeout = 10 * time.Second

// maxResourceBytes caps a single fetched resource (image or font).
const maxResourceBytes = 32 << 20 // 32 MiB

// Fetcher retrieves remote resource bytes with a per-request deadline and
// optional byte caching.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
	cache   cache.Cache
	keyer   cache.Keyer
}

// NewFetcher creates a fetcher. Nil client uses http.DefaultClient; nil
// cache disables caching.
func NewFetcher(client *http.Client, timeout time.Duration, c cache.Cache, keyer cache.Keyer) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	return &Fetcher{client: client, timeout: timeout, cache: c, keyer: keyer}
}

// Fetch retrieves url and returns its bytes and media type. The request is
// bounded by the fetcher timeout and honors ctx cancellation. Timeouts are
// reported as TIMEOUT, other failures as RESOURCE_FETCH_FAILED; both are
// absorbed by the inliner per the partial-failure policy.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, string, error) {
	key := f.keyer.ResourceKey(url)
	if raw, hit, err := f.cache.Get(ctx, key); err == nil && hit {
		var res cachedResource
		// An undecodable entry is treated as a miss and refetched.
		if err := json.Unmarshal(raw, &res); err == nil && len(res.Data) > 0 {
			if res.MediaType == "" {
				res.MediaType = http.DetectContentType(res.Data)
			}
			return res.Data, res.MediaType, nil
		}
	}

	reqCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeResourceFetch, err, "build request for %s", url)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		if reqCtx.Err() == context.DeadlineExceeded {
			return nil, "", errors.Wrap(errors.ErrCodeTimeout, err, "fetch %s exceeded %s", url, f.timeout)
		}
		return nil, "", errors.Wrap(errors.ErrCodeResourceFetch, err, "fetch %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", errors.New(errors.ErrCodeResourceFetch, "fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResourceBytes+1))
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeResourceFetch, err, "read %s", url)
	}
	if len(data) > maxResourceBytes {
		return nil, "", errors.New(errors.ErrCodeResourceFetch, "resource %s exceeds %d bytes", url, maxResourceBytes)
	}
	if len(data) == 0 {
		return nil, "", errors.New(errors.ErrCodeResourceFetch, "resource %s is empty", url)
	}

	mediaType := resp.Header.Get("Content-Type")
	if mediaType == "" || mediaType == "application/octet-stream" {
		mediaType = http.DetectContentType(data)
	}

	if raw, err := json.Marshal(cachedResource{MediaType: mediaType, Data: data}); err == nil {
		_ = f.cache.Set(ctx, key, raw, cache.TTLResource)
	}
	return data, mediaType, nil
}

// cachedResource is the cache entry for one fetched resource. The media
// type travels with the bytes so a cache hit serves the server-declared
// type instead of a re-sniffed one.
type cachedResource struct {
	MediaType string `json:"media_type"`
	Data      []byte `json:"data"`
}
