package compress

import (
	"github.com/pierrec/lz4/v4"
)

// Compress returns an lz4 block for data. A nil result with no error means the
// data did not shrink and should be stored as is.
func Compress(data []byte) ([]byte, error) {
	compressor := lz4.CompressorHC{Level: lz4.Level2}
	buf := make([]byte, lz4.CompressBlockBound(len(data)))
	n, err := compressor.CompressBlock(data, buf)
	if err != nil {
		return nil, err
	}
	if n == 0 || n >= len(data) {
		return nil, nil
	}
	return buf[:n], nil
}

// Decompress reverses Compress. size is the length of the original data.
func Decompress(block []byte, size int) ([]byte, error) {
	out := make([]byte, size)
	n, err := lz4.UncompressBlock(block, out)
	if err != nil {
		return nil, err
	}
	return out[:n], nil
}
