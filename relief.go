package demstats

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
)

// A PeakValleyRecord is a peak on a profile together with the valley baseline
// interpolated between its neighbouring valleys.
type PeakValleyRecord struct {
	T        float64 // Arc length of the peak.
	Baseline float64
	Peak     float64
}

// Relief returns the height of the peak above its baseline.
func (r PeakValleyRecord) Relief() float64 {
	return r.Peak - r.Baseline
}

// LowPass applies a single pole exponential low-pass filter with the given
// length scale to profile. The filter state starts at zero elevation.
func LowPass(profile Profile, scale float64) Profile {
	f := 2 * math.Pi / scale
	filtered := make(Profile, len(profile))
	z, t := 0.0, 0.0
	for i, sample := range profile {
		dt := sample.T - t
		z += f * dt * (sample.Z - z)
		t = sample.T
		filtered[i] = ProfileSample{T: t, Z: z}
	}
	return filtered
}

// PeakValleys returns every local maximum of profile that lies between two
// local minima, with the baseline linearly interpolated between the two
// minima at the maximum's arc length.
func PeakValleys(profile Profile) []PeakValleyRecord {
	extrema := LocalExtrema(profile, func(a, b ProfileSample) bool {
		return a.Z < b.Z
	})
	if len(extrema) < 3 {
		return nil
	}

	var records []PeakValleyRecord
	for i := 1; i < len(extrema)-1; i++ {
		if extrema[i].Kind != Maximum {
			continue
		}
		peak := profile[extrema[i].Index]
		valleyA := profile[extrema[i-1].Index]
		valleyB := profile[extrema[i+1].Index]
		xi := (peak.T - valleyA.T) / (valleyB.T - valleyA.T)
		records = append(records, PeakValleyRecord{
			T:        peak.T,
			Baseline: xi*valleyB.Z + (1-xi)*valleyA.Z,
			Peak:     peak.Z,
		})
	}
	return records
}

// A ReliefSampler samples peak and baseline pairs along random transects in
// logarithmic peak elevation buckets.
type ReliefSampler struct {
	rng             *rand.Rand
	logger          *slog.Logger
	validityFloor   float64
	filterScale     float64
	reliefThreshold float64
	transectBudget  int64
	sampler         *LogBucketSampler[PeakValleyRecord]
}

// NewReliefSampler returns a new ReliefSampler drawing random numbers from rng
// and logging diagnostics to logger.
func NewReliefSampler(rng *rand.Rand, logger *slog.Logger, options ...SamplerOption) *ReliefSampler {
	o := newSamplerOptions(options)
	return &ReliefSampler{
		rng:             rng,
		logger:          logger,
		validityFloor:   o.validityFloor,
		filterScale:     o.filterScale,
		reliefThreshold: o.reliefThreshold,
		transectBudget:  o.transectBudget,
		sampler:         NewLogBucketSampler[PeakValleyRecord](rng, o.bucketCount, o.resolution, o.capacity),
	}
}

// TransectCount returns the number of transects to trace through a raster with
// validCount valid pixels.
func (s *ReliefSampler) TransectCount(validCount int) int {
	if validCount == 0 {
		return 0
	}
	return int(min(s.transectBudget/int64(math.Sqrt(float64(validCount))), math.MaxInt))
}

// Accumulate traces random transects through input and samples the peaks on
// each profile whose relief exceeds the threshold.
func (s *ReliefSampler) Accumulate(input *Input) error {
	width, height := input.Heights.Size()
	if width < 3 || height < 3 {
		return fmt.Errorf("%w: %s: raster of %dx%d is too small", ErrFormat, input.Name, width, height)
	}

	validCount := input.Mask.ValidCount(width, height)
	transectCount := s.TransectCount(validCount)
	s.logger.Info("transects", "file", input.Name, "pixel_count", validCount, "n", transectCount)
	if input.Mask.ValidCountFrom(1, 1, width, height) == 0 {
		s.logger.Warn("no valid origins", "file", input.Name)
		return nil
	}

	tracer := &CrossSectionTracer{
		Heights:       input.Heights,
		Mask:          input.Mask,
		Domain:        input.Domain,
		ValidityFloor: s.validityFloor,
	}
	for range transectCount {
		origin, err := RandomOrigin(s.rng, input.Mask, width, height)
		if err != nil {
			return err
		}
		direction := RandomDirection(s.rng)
		ray := Ray{
			Origin:    StartLocation(origin, direction, float64(width-1)),
			Direction: direction,
		}
		for _, profile := range tracer.Trace(ray) {
			for _, record := range PeakValleys(LowPass(profile, s.filterScale)) {
				if record.Relief() > s.reliefThreshold && s.sampler.Add(record.Peak, record) {
					peaksRecorded.Inc()
				}
			}
		}
		transectsTraced.Inc()
	}
	return nil
}

// Bucket returns the samples of bucket i.
func (s *ReliefSampler) Bucket(i int) *Reservoir[PeakValleyRecord] {
	return s.sampler.Bucket(i)
}

// WriteTo writes the sampled baseline and peak pairs to w.
func (s *ReliefSampler) WriteTo(w io.Writer) (int64, error) {
	return s.sampler.WriteSamples(w, func(record PeakValleyRecord) (float64, float64) {
		return record.Baseline, record.Peak
	})
}
