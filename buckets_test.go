package demstats

import (
	"bytes"
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestLinearBucket(t *testing.T) {
	for _, tc := range []struct {
		value      float64
		expected   int
		expectedOK bool
	}{
		{value: 0, expected: 0, expectedOK: true},
		{value: 31.999, expected: 0, expectedOK: true},
		{value: 32, expected: 1, expectedOK: true},
		{value: 63.999, expected: 1, expectedOK: true},
		{value: 64, expected: 2, expectedOK: true},
		{value: 8895, expected: 277, expectedOK: true},
		{value: 8896},
		{value: -1},
		{value: math.MaxFloat32},
		{value: math.Inf(1)},
		{value: math.Inf(-1)},
		{value: math.NaN()},
	} {
		actual, ok := LinearBucket(tc.value, 32, 278)
		assert.Equal(t, tc.expectedOK, ok, "%v", tc.value)
		assert.Equal(t, tc.expected, actual, "%v", tc.value)
	}
	for k := range 278 {
		actual, ok := LinearBucket(32*float64(k), 32, 278)
		assert.True(t, ok)
		assert.Equal(t, k, actual)
	}
}

func TestLogBucket(t *testing.T) {
	for _, tc := range []struct {
		value      float64
		expected   int
		expectedOK bool
	}{
		{value: -5, expected: 0, expectedOK: true},
		{value: 0, expected: 0, expectedOK: true},
		{value: 0.5, expected: 0, expectedOK: true},
		{value: 1, expected: 0, expectedOK: true},
		{value: 2, expected: 12, expectedOK: true},
		{value: 4, expected: 24, expectedOK: true},
		{value: 1024, expected: 120, expectedOK: true},
		{value: 8848, expected: 157, expectedOK: true},
		{value: 1 << 14},
		{value: math.MaxFloat32},
		{value: math.Inf(1)},
		{value: math.NaN()},
	} {
		actual, ok := LogBucket(tc.value, 12, 159)
		assert.Equal(t, tc.expectedOK, ok, "%v", tc.value)
		assert.Equal(t, tc.expected, actual, "%v", tc.value)
	}
}

func TestReservoir(t *testing.T) {
	rng := rand.New(rand.NewPCG(0, 0))

	r := NewReservoir[int](8)
	for i := range 5 {
		r.Add(rng, i)
	}
	assert.Equal(t, 5, r.Len())
	assert.Equal(t, 5, r.Seen())
	assert.Equal(t, []int{0, 1, 2, 3, 4}, slices.Sorted(slices.Values(r.Shuffled(rng))))

	r = NewReservoir[int](8)
	for i := range 1000 {
		r.Add(rng, i)
	}
	assert.Equal(t, 8, r.Len())
	assert.Equal(t, 1000, r.Seen())
	sample := slices.Sorted(slices.Values(r.Shuffled(rng)))
	assert.Equal(t, len(sample), len(slices.Compact(slices.Clone(sample))))
	for _, value := range sample {
		assert.True(t, 0 <= value && value < 1000)
	}
}

func TestReservoirUniform(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	counts := make([]int, 100)
	for range 2000 {
		r := NewReservoir[int](10)
		for i := range 100 {
			r.Add(rng, i)
		}
		for _, value := range r.Shuffled(rng) {
			counts[value]++
		}
	}
	// Each value is kept with probability 1/10, so is expected 200 times.
	for _, count := range counts {
		assert.True(t, 120 < count && count < 280)
	}
}

func TestLogBucketSampler(t *testing.T) {
	s := NewLogBucketSampler[float64](rand.New(rand.NewPCG(0, 0)), 4, 1, 2)
	assert.True(t, s.Add(1, 1))
	assert.True(t, s.Add(3, 3))
	assert.True(t, s.Add(3.5, 3.5))
	assert.True(t, s.Add(15, 15))
	assert.False(t, s.Add(16, 16))
	assert.False(t, s.Add(math.MaxFloat32, 0))
	assert.False(t, s.Add(math.Inf(1), 0))
	assert.False(t, s.Add(math.NaN(), 0))
	assert.Equal(t, 1, s.Bucket(0).Len())
	assert.Equal(t, 2, s.Bucket(1).Len())
	assert.Equal(t, 0, s.Bucket(2).Len())
	assert.Equal(t, 1, s.Bucket(3).Len())

	buf := &bytes.Buffer{}
	n, err := s.WriteSamples(buf, func(value float64) (float64, float64) {
		return value, 2 * value
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	lines := bytes.Split(bytes.TrimSuffix(buf.Bytes(), []byte("\n")), []byte("\n"))
	assert.Equal(t, 4, len(lines))
	assert.Equal(t, "1 2", string(lines[0]))
	assert.Equal(t, "15 30", string(lines[3]))
}
