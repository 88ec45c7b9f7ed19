package demstats

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"strconv"
	"strings"

	"github.com/google/tiff"
	_ "github.com/google/tiff/bigtiff"
	_ "github.com/google/tiff/geotiff"
	"golang.org/x/image/tiff/lzw"
)

// TIFF field values.
const (
	compressionNone       = 1
	compressionLZW        = 5
	compressionDeflate    = 8
	compressionDeflateOld = 32946

	planarConfigurationContig = 1

	predictorNone = 1

	sampleFormatIEEEFP = 3
)

type SampleFormat int

const (
	SampleFormatFloat32 SampleFormat = iota
)

// An ImageInfo describes the pixel data of a GeoTIFF.
type ImageInfo struct {
	Width        int
	Height       int
	ChannelCount int
	SampleFormat SampleFormat
	Layout       Layout
	HasNoData    bool
	NoData       float64
}

// A Layout is the storage layout of a GeoTIFF's pixel data, either a
// StripLayout or a TileLayout.
type Layout interface {
	decodeInto(g *GeoTIFF, dst *RasterImage) error
}

// A StripLayout stores an image as consecutive strips of rows.
type StripLayout struct {
	RowsPerStrip int
}

// A TileLayout stores an image as a grid of fixed size tiles. Tiles on the
// right and bottom edges may extend beyond the image.
type TileLayout struct {
	TileWidth  int
	TileLength int
}

// A geoTIFFFile is the subset of fs.File methods needed to read a GeoTIFF.
type geoTIFFFile interface {
	io.ReaderAt
	io.ReadSeeker
	io.Closer
}

// A GeoTIFF is an open GeoTIFF file.
type GeoTIFF struct {
	name      string
	file      geoTIFFFile
	byteOrder binary.ByteOrder
	ifd       geoTIFFIFD
}

// A geoTIFFIFD is a struct into which github.com/google/tiff can unmarshal an
// IFD.
type geoTIFFIFD struct {
	ImageWidth             uint64    `tiff:"field,tag=256"`
	ImageLength            uint64    `tiff:"field,tag=257"`
	BitsPerSample          uint16    `tiff:"field,tag=258"`
	Compression            uint16    `tiff:"field,tag=259"`
	StripOffsets           []uint64  `tiff:"field,tag=273"`
	SamplesPerPixel        uint16    `tiff:"field,tag=277"`
	RowsPerStrip           uint64    `tiff:"field,tag=278"`
	StripByteCounts        []uint64  `tiff:"field,tag=279"`
	PlanarConfiguration    uint16    `tiff:"field,tag=284"`
	Predictor              uint16    `tiff:"field,tag=317"`
	TileWidth              uint64    `tiff:"field,tag=322"`
	TileLength             uint64    `tiff:"field,tag=323"`
	TileOffsets            []uint64  `tiff:"field,tag=324"`
	TileByteCounts         []uint64  `tiff:"field,tag=325"`
	SampleFormat           uint16    `tiff:"field,tag=339"`
	ModelPixelScaleTag     []float64 `tiff:"field,tag=33550"`
	ModelTiepointTag       []float64 `tiff:"field,tag=33922"`
	ModelTransformationTag []float64 `tiff:"field,tag=34264"`
	GeoKeyDirectoryTag     []uint16  `tiff:"field,tag=34735"`
	GeoDoubleParamsTag     []float64 `tiff:"field,tag=34736"`
	GeoASCIIParamsTag      string    `tiff:"field,tag=34737"`
	GDALNoData             string    `tiff:"field,tag=42113"`
}

// OpenGeoTIFF opens filename in fsys and parses its first IFD.
func OpenGeoTIFF(fsys fs.FS, filename string) (*GeoTIFF, error) {
	ok := false

	file, err := fsys.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFile, err)
	}
	defer func() {
		if !ok {
			_ = file.Close()
		}
	}()
	f, isGeoTIFFFile := file.(geoTIFFFile)
	if !isGeoTIFFFile {
		return nil, fmt.Errorf("%w: %s: %w", ErrFile, filename, errors.ErrUnsupported)
	}

	g := &GeoTIFF{
		name: filename,
		file: f,
	}

	header := make([]byte, 2)
	if _, err := g.file.ReadAt(header, 0); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFile, filename, err)
	}
	switch string(header) {
	case "II":
		g.byteOrder = binary.LittleEndian
	case "MM":
		g.byteOrder = binary.BigEndian
	default:
		return nil, fmt.Errorf("%w: %s: not a TIFF file", ErrFile, filename)
	}

	tiffTIFF, err := tiff.Parse(g.file, tiff.GetTagSpace("GeoTIFF"), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFormat, filename, err)
	}
	if len(tiffTIFF.IFDs()) == 0 {
		return nil, fmt.Errorf("%w: %s: no IFDs", ErrFormat, filename)
	}
	if err := tiff.UnmarshalIFD(tiffTIFF.IFDs()[0], &g.ifd); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFormat, filename, err)
	}

	ok = true
	return g, nil
}

func (g *GeoTIFF) Close() error {
	return g.file.Close()
}

func (g *GeoTIFF) Name() string {
	return g.name
}

// Inspect validates g's pixel data format and returns a description of it.
func (g *GeoTIFF) Inspect() (*ImageInfo, error) {
	width, height := int(g.ifd.ImageWidth), int(g.ifd.ImageLength)
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %s: invalid image size %dx%d", ErrFormat, g.name, width, height)
	}

	channelCount := max(int(g.ifd.SamplesPerPixel), 1)
	if channelCount != 1 {
		return nil, fmt.Errorf("%w: %s: %d channels", ErrFormat, g.name, channelCount)
	}
	if g.ifd.BitsPerSample != 32 || g.ifd.SampleFormat != sampleFormatIEEEFP {
		return nil, fmt.Errorf("%w: %s: sample format is not 32-bit IEEE float", ErrFormat, g.name)
	}
	switch g.ifd.Compression {
	case 0, compressionNone, compressionLZW, compressionDeflate, compressionDeflateOld:
	default:
		return nil, fmt.Errorf("%w: %s: compression %d", ErrFormat, g.name, g.ifd.Compression)
	}
	if g.ifd.Predictor > predictorNone {
		return nil, fmt.Errorf("%w: %s: predictor %d", ErrFormat, g.name, g.ifd.Predictor)
	}
	if g.ifd.PlanarConfiguration > planarConfigurationContig {
		return nil, fmt.Errorf("%w: %s: planar configuration %d", ErrFormat, g.name, g.ifd.PlanarConfiguration)
	}

	layout, err := g.layout(width, height)
	if err != nil {
		return nil, err
	}

	info := &ImageInfo{
		Width:        width,
		Height:       height,
		ChannelCount: channelCount,
		SampleFormat: SampleFormatFloat32,
		Layout:       layout,
	}
	if noData := strings.TrimSpace(strings.TrimRight(g.ifd.GDALNoData, "\x00")); noData != "" {
		if info.NoData, err = strconv.ParseFloat(noData, 64); err != nil {
			return nil, fmt.Errorf("%w: %s: GDAL_NODATA: %w", ErrFormat, g.name, err)
		}
		info.HasNoData = true
	}
	return info, nil
}

// Load decodes g's pixel data into a new RasterImage. Samples equal to the
// GDAL no-data value are replaced with NaN.
func (g *GeoTIFF) Load(info *ImageInfo) (*RasterImage, error) {
	dst := NewRasterImage(info.Width, info.Height)
	if err := info.Layout.decodeInto(g, dst); err != nil {
		return nil, err
	}
	if info.HasNoData && !math.IsNaN(info.NoData) {
		noData := float32(info.NoData)
		nan := float32(math.NaN())
		for i, sample := range dst.samples {
			if sample == noData {
				dst.samples[i] = nan
			}
		}
	}
	return dst, nil
}

// layout returns the storage layout of g.
func (g *GeoTIFF) layout(width, height int) (Layout, error) {
	hasStrips := g.ifd.RowsPerStrip != 0 || len(g.ifd.StripOffsets) != 0
	hasTiles := g.ifd.TileWidth != 0 || g.ifd.TileLength != 0 || len(g.ifd.TileOffsets) != 0
	switch {
	case hasStrips && hasTiles:
		return nil, fmt.Errorf("%w: %s: ambiguous image layout", ErrFormat, g.name)
	case hasStrips:
		rowsPerStrip := height
		if g.ifd.RowsPerStrip != 0 && g.ifd.RowsPerStrip < uint64(height) {
			rowsPerStrip = int(g.ifd.RowsPerStrip)
		}
		stripsPerImage := (height + rowsPerStrip - 1) / rowsPerStrip
		if len(g.ifd.StripOffsets) != stripsPerImage || len(g.ifd.StripByteCounts) != stripsPerImage {
			return nil, fmt.Errorf("%w: %s: incorrect number of strip byte counts or offsets", ErrFormat, g.name)
		}
		return StripLayout{
			RowsPerStrip: rowsPerStrip,
		}, nil
	case hasTiles:
		if g.ifd.TileWidth == 0 || g.ifd.TileLength == 0 {
			return nil, fmt.Errorf("%w: %s: incomplete tile layout", ErrFormat, g.name)
		}
		tileWidth, tileLength := int(g.ifd.TileWidth), int(g.ifd.TileLength)
		tilesAcross := (width + tileWidth - 1) / tileWidth
		tilesDown := (height + tileLength - 1) / tileLength
		tilesPerImage := tilesAcross * tilesDown
		if len(g.ifd.TileOffsets) != tilesPerImage || len(g.ifd.TileByteCounts) != tilesPerImage {
			return nil, fmt.Errorf("%w: %s: incorrect number of tile byte counts or offsets", ErrFormat, g.name)
		}
		return TileLayout{
			TileWidth:  tileWidth,
			TileLength: tileLength,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %s: unsupported or unknown image layout", ErrFormat, g.name)
	}
}

func (l StripLayout) decodeInto(g *GeoTIFF, dst *RasterImage) error {
	for strip, y := 0, 0; y < dst.height; strip, y = strip+1, y+l.RowsPerStrip {
		rows := min(l.RowsPerStrip, dst.height-y)
		stripSamples := dst.samples[y*dst.width : (y+rows)*dst.width]
		if err := g.readChunk(strip, g.ifd.StripOffsets, g.ifd.StripByteCounts, stripSamples); err != nil {
			return err
		}
		stripsDecoded.Inc()
	}
	return nil
}

func (l TileLayout) decodeInto(g *GeoTIFF, dst *RasterImage) error {
	tilesAcross := (dst.width + l.TileWidth - 1) / l.TileWidth
	tilesDown := (dst.height + l.TileLength - 1) / l.TileLength
	tileSamples := make([]float32, l.TileWidth*l.TileLength)
	for r := range tilesDown {
		for c := range tilesAcross {
			tileIndex := c + tilesAcross*r
			if err := g.readChunk(tileIndex, g.ifd.TileOffsets, g.ifd.TileByteCounts, tileSamples); err != nil {
				return err
			}
			l.copyTile(dst, tileSamples, TileCoord{C: c, R: r})
			tilesDecoded.Inc()
		}
	}
	return nil
}

// copyTile copies the part of tileSamples that lies within dst's bounds.
func (l TileLayout) copyTile(dst *RasterImage, tileSamples []float32, tileCoord TileCoord) {
	x0 := tileCoord.C * l.TileWidth
	y0 := tileCoord.R * l.TileLength
	columns := min(l.TileWidth, dst.width-x0)
	rows := min(l.TileLength, dst.height-y0)
	for y := range rows {
		dstOffset := (y0+y)*dst.width + x0
		copy(dst.samples[dstOffset:dstOffset+columns], tileSamples[y*l.TileWidth:y*l.TileWidth+columns])
	}
}

// readChunk reads, decompresses, and decodes the strip or tile at index into
// dst.
func (g *GeoTIFF) readChunk(index int, offsets, byteCounts []uint64, dst []float32) error {
	compressedData := make([]byte, byteCounts[index])
	switch n, err := g.file.ReadAt(compressedData, int64(offsets[index])); {
	case n == len(compressedData):
	case err != nil && !errors.Is(err, io.EOF):
		return fmt.Errorf("%w: %s: %w", ErrFile, g.name, err)
	default:
		return fmt.Errorf("%w: %s: %w", ErrFile, g.name, errShortRead)
	}

	data, err := g.decompress(compressedData, 4*len(dst))
	if err != nil {
		return err
	}

	for i := range dst {
		dst[i] = math.Float32frombits(g.byteOrder.Uint32(data[4*i : 4*(i+1)]))
	}
	return nil
}

// decompress returns the first n decompressed bytes of compressedData.
func (g *GeoTIFF) decompress(compressedData []byte, n int) ([]byte, error) {
	var r io.Reader
	switch g.ifd.Compression {
	case 0, compressionNone:
		if len(compressedData) < n {
			return nil, fmt.Errorf("%w: %s: %w", ErrFormat, g.name, errShortRead)
		}
		return compressedData[:n], nil
	case compressionLZW:
		lzwReader := lzw.NewReader(bytes.NewReader(compressedData), lzw.MSB, 8)
		defer lzwReader.Close()
		r = lzwReader
	case compressionDeflate, compressionDeflateOld:
		zlibReader, err := zlib.NewReader(bytes.NewReader(compressedData))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrFormat, g.name, err)
		}
		defer zlibReader.Close()
		r = zlibReader
	default:
		return nil, fmt.Errorf("%w: %s: compression %d", ErrFormat, g.name, g.ifd.Compression)
	}

	data := make([]byte, n)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFormat, g.name, err)
	}
	return data, nil
}
