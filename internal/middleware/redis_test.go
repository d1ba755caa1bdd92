package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/conference-booking/internal/config"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

// asUser stands in for JWTAuth.
func asUser(id uint64) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(ctxUserID, id)
			return next(c)
		}
	}
}

func serve(e *echo.Echo, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestTokenBucketBlocksAfterCapacity(t *testing.T) {
	_, rdb := newRedis(t)
	cfg := config.RateLimitConfig{
		Enabled:        true,
		Capacity:       2,
		RefillTokens:   1,
		RefillInterval: time.Hour,
		TTL:            2 * time.Hour,
		KeyStrategy:    "user_route",
		Prefix:         "rl",
	}
	e := echo.New()
	e.GET("/booking", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, asUser(1), NewTokenBucket(cfg, rdb))

	for i, wantRemaining := range []string{"1", "0"} {
		rec := serve(e, http.MethodGet, "/booking")
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d", i, rec.Code)
		}
		if got := rec.Header().Get("X-RateLimit-Remaining"); got != wantRemaining {
			t.Errorf("request %d: remaining = %q, want %q", i, got, wantRemaining)
		}
	}
	rec := serve(e, http.MethodGet, "/booking")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("missing Retry-After")
	}
}

func TestTokenBucketKeysPerUser(t *testing.T) {
	_, rdb := newRedis(t)
	cfg := config.RateLimitConfig{
		Enabled: true, Capacity: 1, RefillTokens: 1, RefillInterval: time.Hour,
		TTL: 2 * time.Hour, KeyStrategy: "user", Prefix: "rl",
	}
	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	e := echo.New()
	e.GET("/a", ok, asUser(1), NewTokenBucket(cfg, rdb))
	e.GET("/b", ok, asUser(2), NewTokenBucket(cfg, rdb))

	if rec := serve(e, http.MethodGet, "/a"); rec.Code != http.StatusOK {
		t.Fatalf("user 1: status = %d", rec.Code)
	}
	if rec := serve(e, http.MethodGet, "/b"); rec.Code != http.StatusOK {
		t.Fatalf("user 2 limited by user 1's bucket: %d", rec.Code)
	}
	if rec := serve(e, http.MethodGet, "/a"); rec.Code != http.StatusTooManyRequests {
		t.Errorf("user 1 second request: status = %d, want 429", rec.Code)
	}
}

func TestTokenBucketPassThrough(t *testing.T) {
	cfg := config.RateLimitConfig{Enabled: true, Capacity: 1}
	e := echo.New()
	e.GET("/booking", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, NewTokenBucket(cfg, nil))
	for i := 0; i < 3; i++ {
		if rec := serve(e, http.MethodGet, "/booking"); rec.Code != http.StatusOK {
			t.Fatalf("nil client must not limit: %d", rec.Code)
		}
	}
}

func TestRedisCacheHitAndInvalidate(t *testing.T) {
	_, rdb := newRedis(t)
	cfg := config.CacheConfig{
		Enabled:      true,
		Methods:      map[string]bool{http.MethodGet: true},
		TTL:          time.Minute,
		Prefix:       "cache",
		MaxBodyBytes: 1 << 10,
	}
	gets := 0
	room := "101"
	e := echo.New()
	g := e.Group("/booking", asUser(1), NewRedisCache(cfg, rdb))
	g.GET("", func(c echo.Context) error {
		gets++
		return c.JSON(http.StatusOK, echo.Map{"room": room})
	})
	g.POST("", func(c echo.Context) error {
		room = "202"
		return c.JSON(http.StatusOK, echo.Map{"bookingId": 1})
	})

	first := serve(e, http.MethodGet, "/booking")
	if first.Header().Get("X-Cache") != "MISS" {
		t.Errorf("first X-Cache = %q", first.Header().Get("X-Cache"))
	}
	second := serve(e, http.MethodGet, "/booking")
	if second.Header().Get("X-Cache") != "HIT" {
		t.Errorf("second X-Cache = %q", second.Header().Get("X-Cache"))
	}
	if second.Body.String() != first.Body.String() {
		t.Errorf("hit body %q differs from %q", second.Body, first.Body)
	}
	if !strings.HasPrefix(second.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		t.Errorf("hit content type = %q", second.Header().Get(echo.HeaderContentType))
	}
	if gets != 1 {
		t.Fatalf("handler ran %d times, want 1", gets)
	}

	if rec := serve(e, http.MethodPost, "/booking"); rec.Code != http.StatusOK {
		t.Fatalf("POST status = %d", rec.Code)
	}
	third := serve(e, http.MethodGet, "/booking")
	if third.Header().Get("X-Cache") != "MISS" || !strings.Contains(third.Body.String(), "202") {
		t.Errorf("stale response after write: %s %q", third.Header().Get("X-Cache"), third.Body)
	}
}

func TestRedisCacheSkipsErrors(t *testing.T) {
	_, rdb := newRedis(t)
	cfg := config.CacheConfig{Enabled: true, Methods: map[string]bool{http.MethodGet: true}, TTL: time.Minute, Prefix: "cache"}
	calls := 0
	e := echo.New()
	e.GET("/booking", func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusNotFound, echo.Map{"error": "No result for this search!"})
	}, asUser(1), NewRedisCache(cfg, rdb))

	serve(e, http.MethodGet, "/booking")
	if rec := serve(e, http.MethodGet, "/booking"); rec.Header().Get("X-Cache") == "HIT" {
		t.Error("404 served from cache")
	}
	if calls != 2 {
		t.Errorf("handler ran %d times, want 2", calls)
	}
}

func TestCacheKeysAreUserScoped(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "cache"}
	e := echo.New()
	keyFor := func(id uint64) string {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/booking", nil), httptest.NewRecorder())
		c.Set(ctxUserID, id)
		return cacheKeyFrom(cfg, c)
	}
	k1, k2 := keyFor(1), keyFor(2)
	if k1 == k2 {
		t.Fatal("users share a cache key")
	}
	if !strings.HasPrefix(k1, "cache:user:1:") {
		t.Errorf("key %q not under user prefix", k1)
	}
}

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}}
	bs, err := encodePayload(http.StatusOK, hdr, []byte(`{"id":1}`))
	if err != nil {
		t.Fatal(err)
	}
	status, gotHdr, body, ok := decodePayload(bs)
	if !ok || status != http.StatusOK || gotHdr.Get("Content-Type") != "application/json" || string(body) != `{"id":1}` {
		t.Errorf("decoded %d %v %q %v", status, gotHdr, body, ok)
	}
	if _, _, _, ok := decodePayload([]byte{0, 1}); ok {
		t.Error("short payload decoded")
	}
}
