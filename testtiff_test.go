package demstats

import (
	"bytes"
	"encoding/binary"
	"maps"
	"math"
	"slices"
	"testing"
	"testing/fstest"

	"github.com/alecthomas/assert/v2"
)

// TIFF tags used by the test encoder.
const (
	tagImageWidth          = 256
	tagImageLength         = 257
	tagBitsPerSample       = 258
	tagCompression         = 259
	tagStripOffsets        = 273
	tagSamplesPerPixel     = 277
	tagRowsPerStrip        = 278
	tagStripByteCounts     = 279
	tagPlanarConfiguration = 284
	tagPredictor           = 317
	tagTileWidth           = 322
	tagTileLength          = 323
	tagTileOffsets         = 324
	tagTileByteCounts      = 325
	tagSampleFormat        = 339
	tagModelPixelScale     = 33550
	tagModelTiepoint       = 33922
	tagModelTransformation = 34264
	tagGeoKeyDirectory     = 34735
	tagGDALNoData          = 42113
)

// A testTIFF describes a single IFD TIFF file to be encoded by encode.
type testTIFF struct {
	byteOrder binary.ByteOrder
	// fields maps tags to []uint16 (SHORT), []uint32 (LONG), []float64
	// (DOUBLE), or string (ASCII) values.
	fields map[uint16]any
	// chunks are the strip or tile data. Their offsets and byte counts are
	// written to offsetsTag and byteCountsTag.
	chunks        [][]byte
	offsetsTag    uint16
	byteCountsTag uint16
}

// encode returns the encoded TIFF file.
func (tt *testTIFF) encode(t *testing.T) []byte {
	t.Helper()

	byteOrder := tt.byteOrder
	if byteOrder == nil {
		byteOrder = binary.LittleEndian
	}

	buf := &bytes.Buffer{}
	if byteOrder == binary.BigEndian {
		buf.WriteString("MM")
	} else {
		buf.WriteString("II")
	}
	writeUint16(buf, byteOrder, 42)
	writeUint32(buf, byteOrder, 0) // Patched below.

	fields := make(map[uint16]any, len(tt.fields)+2)
	for tag, value := range tt.fields {
		fields[tag] = value
	}
	if len(tt.chunks) != 0 {
		offsets := make([]uint32, 0, len(tt.chunks))
		byteCounts := make([]uint32, 0, len(tt.chunks))
		for _, chunk := range tt.chunks {
			offsets = append(offsets, uint32(buf.Len()))
			byteCounts = append(byteCounts, uint32(len(chunk)))
			buf.Write(chunk)
		}
		fields[tt.offsetsTag] = offsets
		fields[tt.byteCountsTag] = byteCounts
	}

	type entry struct {
		tag      uint16
		typ      uint16
		count    uint32
		valueBuf []byte
	}
	var entries []entry
	for _, tag := range slices.Sorted(maps.Keys(fields)) {
		valueBuf := &bytes.Buffer{}
		var typ uint16
		var count int
		switch value := fields[tag].(type) {
		case []uint16:
			typ, count = 3, len(value)
			for _, v := range value {
				writeUint16(valueBuf, byteOrder, v)
			}
		case []uint32:
			typ, count = 4, len(value)
			for _, v := range value {
				writeUint32(valueBuf, byteOrder, v)
			}
		case []float64:
			typ, count = 12, len(value)
			for _, v := range value {
				writeUint64(valueBuf, byteOrder, math.Float64bits(v))
			}
		case string:
			typ, count = 2, len(value)+1
			valueBuf.WriteString(value)
			valueBuf.WriteByte(0)
		default:
			t.Fatalf("tag %d: unsupported value type %T", tag, value)
		}
		entries = append(entries, entry{
			tag:      tag,
			typ:      typ,
			count:    uint32(count),
			valueBuf: valueBuf.Bytes(),
		})
	}

	// Values longer than four bytes are stored before the IFD.
	valueOffsets := make([]uint32, len(entries))
	for i, e := range entries {
		if len(e.valueBuf) <= 4 {
			continue
		}
		if buf.Len()%2 != 0 {
			buf.WriteByte(0)
		}
		valueOffsets[i] = uint32(buf.Len())
		buf.Write(e.valueBuf)
	}

	if buf.Len()%2 != 0 {
		buf.WriteByte(0)
	}
	ifdOffset := uint32(buf.Len())
	writeUint16(buf, byteOrder, uint16(len(entries)))
	for i, e := range entries {
		writeUint16(buf, byteOrder, e.tag)
		writeUint16(buf, byteOrder, e.typ)
		writeUint32(buf, byteOrder, e.count)
		if len(e.valueBuf) <= 4 {
			inline := make([]byte, 4)
			copy(inline, e.valueBuf)
			buf.Write(inline)
		} else {
			writeUint32(buf, byteOrder, valueOffsets[i])
		}
	}
	writeUint32(buf, byteOrder, 0)

	data := buf.Bytes()
	byteOrder.PutUint32(data[4:8], ifdOffset)
	return data
}

func writeUint16(buf *bytes.Buffer, byteOrder binary.ByteOrder, v uint16) {
	b := make([]byte, 2)
	byteOrder.PutUint16(b, v)
	buf.Write(b)
}

func writeUint32(buf *bytes.Buffer, byteOrder binary.ByteOrder, v uint32) {
	b := make([]byte, 4)
	byteOrder.PutUint32(b, v)
	buf.Write(b)
}

func writeUint64(buf *bytes.Buffer, byteOrder binary.ByteOrder, v uint64) {
	b := make([]byte, 8)
	byteOrder.PutUint64(b, v)
	buf.Write(b)
}

// float32Bytes encodes samples with byteOrder.
func float32Bytes(byteOrder binary.ByteOrder, samples []float32) []byte {
	data := make([]byte, 4*len(samples))
	for i, sample := range samples {
		byteOrder.PutUint32(data[4*i:], math.Float32bits(sample))
	}
	return data
}

// rampSamples returns width*height samples with values 0, 1, 2, ...
func rampSamples(width, height int) []float32 {
	samples := make([]float32, width*height)
	for i := range samples {
		samples[i] = float32(i)
	}
	return samples
}

// geographicFields returns the fields of a float32 GeoTIFF in WGS84
// geographic coordinates with the given size, origin, and pixel size in
// degrees.
func geographicFields(width, height int, lon, lat, pixelSize float64) map[uint16]any {
	return map[uint16]any{
		tagImageWidth:      []uint32{uint32(width)},
		tagImageLength:     []uint32{uint32(height)},
		tagBitsPerSample:   []uint16{32},
		tagCompression:     []uint16{compressionNone},
		tagSamplesPerPixel: []uint16{1},
		tagSampleFormat:    []uint16{sampleFormatIEEEFP},
		tagModelPixelScale: []float64{pixelSize, pixelSize, 0},
		tagModelTiepoint:   []float64{0, 0, 0, lon, lat, 0},
		tagGeoKeyDirectory: []uint16{
			1, 1, 0, 3,
			uint16(GeoKeyGTModelType), 0, 1, ModelTypeGeographic,
			uint16(GeoKeyGTRasterType), 0, 1, RasterPixelIsArea,
			uint16(GeoKeyGeodeticCRS), 0, 1, 4326,
		},
	}
}

// stripTIFF returns a single strip GeoTIFF holding samples.
func stripTIFF(width, height int, samples []float32, lon, lat, pixelSize float64) *testTIFF {
	fields := geographicFields(width, height, lon, lat, pixelSize)
	fields[tagRowsPerStrip] = []uint32{uint32(height)}
	return &testTIFF{
		fields:        fields,
		chunks:        [][]byte{float32Bytes(binary.LittleEndian, samples)},
		offsetsTag:    tagStripOffsets,
		byteCountsTag: tagStripByteCounts,
	}
}

// testFS returns a filesystem containing the given files.
func testFS(t *testing.T, files map[string][]byte) fstest.MapFS {
	t.Helper()
	fsys := make(fstest.MapFS, len(files))
	for name, data := range files {
		fsys[name] = &fstest.MapFile{Data: data}
	}
	return fsys
}

// loadTestInput loads the heightmap and optional mask named by spec from
// fsys.
func loadTestInput(t *testing.T, fsys fstest.MapFS, spec InputSpec) *Input {
	t.Helper()
	input, err := LoadInput(fsys, spec, discardLogger())
	assert.NoError(t, err)
	return input
}
