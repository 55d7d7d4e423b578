package metrics

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRegistration(t *testing.T) {
	collectors := []prometheus.Collector{
		HTTPRequestsTotal,
		HTTPRequestDuration,
		RateLimitRejections,
		ToggleTotal,
		UploadsTotal,
		UploadDuration,
		SideEffectFailures,
		EmailJobsTotal,
		DBCommandDuration,
		DBErrorsTotal,
		RedisOpsTotal,
		RedisOpDuration,
	}
	for _, c := range collectors {
		desc := make(chan *prometheus.Desc, 8)
		c.Describe(desc)
		close(desc)
		require.NotNil(t, <-desc, "metric should have a valid descriptor")
	}
}

func TestRedisHookCountsOperations(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	rdb.AddHook(&RedisHook{})

	before := testutil.ToFloat64(RedisOpsTotal.WithLabelValues("get", "success"))
	_, err := rdb.Get(context.Background(), "missing").Result()
	require.ErrorIs(t, err, redis.Nil)

	after := testutil.ToFloat64(RedisOpsTotal.WithLabelValues("get", "success"))
	assert.Equal(t, before+1, after, "redis.Nil is a successful lookup")
}
