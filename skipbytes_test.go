package demstats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestSkipBytes(t *testing.T) {
	for _, tc := range []struct {
		name            string
		input           string
		offset          int
		stride          int
		expected        string
		expectedWritten int64
	}{
		{
			name: "empty",
		},
		{
			name:            "stride_1",
			input:           "abcdef",
			stride:          1,
			expected:        "abcdef",
			expectedWritten: 6,
		},
		{
			name:            "stride_2",
			input:           "abcdef",
			stride:          2,
			expected:        "ace",
			expectedWritten: 3,
		},
		{
			name:            "stride_2_offset_1",
			input:           "abcdef",
			offset:          1,
			stride:          2,
			expected:        "bdf",
			expectedWritten: 3,
		},
		{
			name:            "stride_3_offset_2",
			input:           "abcdefg",
			offset:          2,
			stride:          3,
			expected:        "be",
			expectedWritten: 2,
		},
		{
			name:            "offset_larger_than_stride",
			input:           "abcdefg",
			offset:          5,
			stride:          3,
			expected:        "be",
			expectedWritten: 2,
		},
		{
			name:            "rgba_alpha",
			input:           "RGBARGBA",
			offset:          1,
			stride:          4,
			expected:        "AA",
			expectedWritten: 2,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			stride := tc.stride
			if stride == 0 {
				stride = 1
			}
			buf := &bytes.Buffer{}
			read, written, err := SkipBytes(strings.NewReader(tc.input), buf, tc.offset, stride)
			assert.NoError(t, err)
			assert.Equal(t, int64(len(tc.input)), read)
			assert.Equal(t, tc.expectedWritten, written)
			assert.Equal(t, tc.expected, buf.String())
		})
	}
}

func TestSkipBytesInvalidStride(t *testing.T) {
	for _, stride := range []int{0, -1} {
		_, _, err := SkipBytes(strings.NewReader("abc"), &bytes.Buffer{}, 0, stride)
		assert.Error(t, err)
	}
}
