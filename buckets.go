package demstats

import (
	"fmt"
	"io"
	"math"
	"math/rand/v2"
)

// LinearBucket returns the index of the bucket of the given width containing
// value, and whether that index is in [0, n).
func LinearBucket(value, width float64, n int) (int, bool) {
	return bucketIndex(value/width, n)
}

// LogBucket returns the index of the logarithmic bucket containing value, with
// resolution buckets per doubling, and whether that index is in [0, n). Values
// less than one are in bucket 0.
func LogBucket(value, resolution float64, n int) (int, bool) {
	if value < 1 {
		return bucketIndex(0, n)
	}
	return bucketIndex(resolution*math.Log2(value), n)
}

// bucketIndex returns floor(x) if it is in [0, n). NaN and infinities are out
// of range.
func bucketIndex(x float64, n int) (int, bool) {
	if !(x >= 0 && x < float64(n)) {
		return 0, false
	}
	return int(x), true
}

// A Reservoir holds a uniform random sample of at most capacity of the values
// added to it.
type Reservoir[T any] struct {
	capacity int
	seen     int
	values   []T
}

// NewReservoir returns a new, empty Reservoir.
func NewReservoir[T any](capacity int) *Reservoir[T] {
	return &Reservoir[T]{
		capacity: capacity,
	}
}

// Add offers value to the sample.
func (r *Reservoir[T]) Add(rng *rand.Rand, value T) {
	r.seen++
	if len(r.values) < r.capacity {
		r.values = append(r.values, value)
		return
	}
	if i := rng.IntN(r.seen); i < r.capacity {
		r.values[i] = value
	}
}

// Len returns the number of values in the sample.
func (r *Reservoir[T]) Len() int {
	return len(r.values)
}

// Seen returns the number of values offered to r.
func (r *Reservoir[T]) Seen() int {
	return r.seen
}

// Shuffled shuffles the sample in place and returns it.
func (r *Reservoir[T]) Shuffled(rng *rand.Rand) []T {
	rng.Shuffle(len(r.values), func(i, j int) {
		r.values[i], r.values[j] = r.values[j], r.values[i]
	})
	return r.values
}

// A LogBucketSampler keeps a bounded random sample of values in each
// logarithmic bucket.
type LogBucketSampler[T any] struct {
	rng        *rand.Rand
	resolution float64
	buckets    []*Reservoir[T]
}

// NewLogBucketSampler returns a new LogBucketSampler with bucketCount buckets
// of resolution buckets per doubling, each holding at most capacity values.
func NewLogBucketSampler[T any](rng *rand.Rand, bucketCount int, resolution float64, capacity int) *LogBucketSampler[T] {
	buckets := make([]*Reservoir[T], bucketCount)
	for i := range buckets {
		buckets[i] = NewReservoir[T](capacity)
	}
	return &LogBucketSampler[T]{
		rng:        rng,
		resolution: resolution,
		buckets:    buckets,
	}
}

// Add offers item to the bucket containing key. It returns false if key is
// not in any bucket.
func (s *LogBucketSampler[T]) Add(key float64, item T) bool {
	bucket, ok := LogBucket(key, s.resolution, len(s.buckets))
	if !ok {
		samplesOutOfRange.Inc()
		return false
	}
	s.buckets[bucket].Add(s.rng, item)
	return true
}

// Bucket returns the reservoir of bucket i.
func (s *LogBucketSampler[T]) Bucket(i int) *Reservoir[T] {
	return s.buckets[i]
}

// WriteSamples writes the shuffled samples of every bucket, in bucket order, to w
// using format.
func (s *LogBucketSampler[T]) WriteSamples(w io.Writer, format func(T) (float64, float64)) (int64, error) {
	var written int64
	for _, bucket := range s.buckets {
		for _, item := range bucket.Shuffled(s.rng) {
			a, b := format(item)
			n, err := fmt.Fprintf(w, "%.8g %.8g\n", a, b)
			written += int64(n)
			if err != nil {
				return written, err
			}
		}
	}
	return written, nil
}
