package limitio_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"testing"
	"time"

	"github.com/creativeprojects/emldump/limitio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const burst = 1024 // 1KB of burst

func TestReadWithoutLimit(t *testing.T) {
	source := bytes.Repeat([]byte{10}, 64*1024)
	data, err := io.ReadAll(limitio.NewReader(bytes.NewReader(source)))
	require.NoError(t, err)
	assert.Equal(t, source, data)
}

func TestReadKeepsContent(t *testing.T) {
	source := []byte("From: someone@example.com\r\nSubject: test\r\n\r\nbody\r\n")
	reader := limitio.NewReader(bytes.NewReader(source))
	reader.SetRateLimit(1024*1024, 8)
	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, source, data)
}

func TestReadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	reader := limitio.NewReaderContext(ctx, bytes.NewReader(bytes.Repeat([]byte{10}, 4*1024)))
	reader.SetRateLimit(1024, burst)
	_, err := io.ReadAll(reader)
	assert.Error(t, err)
}

func TestReadRate(t *testing.T) {
	t.Parallel()
	if testing.Short() {
		t.Skip("skipping test in short mode.")
	}

	rates := []float64{
		500 * 1024,  // 500KB/sec
		1024 * 1024, // 1MB/sec
	}
	sizes := []int{
		256 * 1024,  // 256KB
		1024 * 1024, // 1MB
	}
	for _, limit := range rates {
		for _, size := range sizes {
			limit, size := limit, size
			t.Run(fmt.Sprintf("Read %s at %s/sec", iBytes(uint64(size)), iBytes(uint64(limit))), func(t *testing.T) {
				t.Parallel()
				sio := limitio.NewReader(bytes.NewReader(bytes.Repeat([]byte{11}, size)))
				sio.SetRateLimit(limit, burst)
				start := time.Now()
				n, err := io.Copy(io.Discard, sio)
				elapsed := time.Since(start)
				require.NoError(t, err)
				assert.Equal(t, int64(size), n)
				realRate := float64(n) / elapsed.Seconds()
				percent := realRate / limit * 100
				// the initial burst is free
				assert.InDelta(t, 100, percent, 5)
				t.Logf(
					"read %s / %s: Real %s/sec Limit %s/sec. (%.2f %%)",
					iBytes(uint64(n)),
					elapsed,
					iBytes(uint64(realRate)),
					iBytes(uint64(limit)),
					percent,
				)
			})
		}
	}
}

func iBytes(s uint64) string {
	var base float64 = 1024
	sizes := []string{"B", "KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}

	if s < 10 {
		return fmt.Sprintf("%d B", s)
	}
	e := math.Floor(logn(float64(s), base))
	suffix := sizes[int(e)]
	val := math.Floor(float64(s)/math.Pow(base, e)*10+0.5) / 10
	f := "%.0f %s"
	if val < 10 {
		f = "%.1f %s"
	}

	return fmt.Sprintf(f, val, suffix)
}

func logn(n, b float64) float64 {
	return math.Log(n) / math.Log(b)
}
