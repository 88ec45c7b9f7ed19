package demstats

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	stripsDecoded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "demstats_strips_decoded_total",
		Help: "The total number of GeoTIFF strips decoded",
	})
	tilesDecoded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "demstats_tiles_decoded_total",
		Help: "The total number of GeoTIFF tiles decoded",
	})
	inputsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "demstats_inputs_processed_total",
		Help: "The total number of input heightmaps processed",
	})
	scaleCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "demstats_scale_cache_hits_total",
		Help: "The total number of hits on the scale factor cache",
	})
	scaleCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "demstats_scale_cache_misses_total",
		Help: "The total number of misses on the scale factor cache",
	})
	transectsTraced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "demstats_transects_traced_total",
		Help: "The total number of random transects traced",
	})
	profilesExtracted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "demstats_profiles_extracted_total",
		Help: "The total number of elevation profiles extracted from transects",
	})
	peaksRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "demstats_peaks_recorded_total",
		Help: "The total number of peaks whose relief exceeded the threshold",
	})
	samplesOutOfRange = promauto.NewCounter(prometheus.CounterOpts{
		Name: "demstats_samples_out_of_range_total",
		Help: "The total number of samples that fell outside every bucket",
	})
)
