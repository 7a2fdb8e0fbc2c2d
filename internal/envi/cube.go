package envi

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"

	"github.com/jvillarasensio/hsiclass/hwy/contrib/image"
	"github.com/jvillarasensio/hsiclass/hwy/contrib/workerpool"
	"github.com/jvillarasensio/hsiclass/internal/classify/condition"
)

// ReadCube reads the binary cube body named by hdr at path, converts it to
// float32, clamps negative reflectance to zero as the original reader does,
// and reinterleaves it into the canonical BIL layout image.Cube expects.
func ReadCube(path string, hdr Header, pool *workerpool.Pool) (*image.Cube[float32], error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("envi: reading cube: %w", err)
	}

	width := hdr.DataType.ByteWidth()
	want := hdr.HeaderOffset + hdr.ImageSize()*width
	if len(raw) < want {
		return nil, fmt.Errorf("envi: cube file too small: have %d bytes, need %d", len(raw), want)
	}
	body := raw[hdr.HeaderOffset:want]

	values, err := decode(body, hdr.DataType, hdr.ImageSize())
	if err != nil {
		return nil, fmt.Errorf("envi: decoding cube: %w", err)
	}

	for i, v := range values {
		if v < 0 {
			values[i] = 0
		}
	}

	return condition.Reinterleave(pool, values, hdr.Interleave, hdr.Lines, hdr.Samples, hdr.Bands)
}

// decode converts a raw byte slice of n little-endian elements of the given
// data type into float32, matching the widened set of types the original
// reader's data_type_mapper recognises.
func decode(body []byte, dt DataType, n int) ([]float32, error) {
	width := dt.ByteWidth()
	if width == 0 {
		return nil, fmt.Errorf("unsupported data type %d", dt)
	}
	if len(body) < n*width {
		return nil, fmt.Errorf("body too short for %d elements of width %d", n, width)
	}

	out := make([]float32, n)
	for i := 0; i < n; i++ {
		chunk := body[i*width : (i+1)*width]
		switch dt {
		case DataUint8:
			out[i] = float32(chunk[0])
		case DataInt16:
			out[i] = float32(int16(binary.LittleEndian.Uint16(chunk)))
		case DataUint16:
			out[i] = float32(binary.LittleEndian.Uint16(chunk))
		case DataInt32:
			out[i] = float32(int32(binary.LittleEndian.Uint32(chunk)))
		case DataUint32:
			out[i] = float32(binary.LittleEndian.Uint32(chunk))
		case DataFloat32:
			out[i] = math.Float32frombits(binary.LittleEndian.Uint32(chunk))
		case DataFloat64:
			out[i] = float32(math.Float64frombits(binary.LittleEndian.Uint64(chunk)))
		case DataInt64:
			out[i] = float32(int64(binary.LittleEndian.Uint64(chunk)))
		case DataUint64:
			out[i] = float32(binary.LittleEndian.Uint64(chunk))
		default:
			return nil, fmt.Errorf("unsupported data type %d", dt)
		}
	}
	return out, nil
}
