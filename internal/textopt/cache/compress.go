package cache

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/snappy"
	"github.com/pierrec/lz4/v4"

	"github.com/edgecomet/seotext/internal/common/configtypes"
)

// CompressionMinSize is the payload size below which compression is skipped.
const CompressionMinSize = 1024

// ErrDecompression is returned when a cached payload cannot be decoded.
// Use errors.Is(err, ErrDecompression) to check for it.
var ErrDecompression = errors.New("decompression failed")

// Payload header, one byte naming the algorithm the rest was encoded with
const (
	headerNone   byte = 'n'
	headerSnappy byte = 's'
	headerLZ4    byte = 'l'
)

// Compress encodes content with algorithm and prefixes the algorithm header.
// Content below CompressionMinSize and unknown algorithms are stored raw.
func Compress(content []byte, algorithm string) ([]byte, error) {
	if len(content) < CompressionMinSize {
		algorithm = configtypes.CompressionNone
	}

	switch algorithm {
	case configtypes.CompressionSnappy:
		return append([]byte{headerSnappy}, snappy.Encode(nil, content)...), nil

	case configtypes.CompressionLZ4:
		// Stream format embeds the uncompressed size
		buf := bytes.NewBuffer([]byte{headerLZ4})
		w := lz4.NewWriter(buf)
		if _, err := w.Write(content); err != nil {
			w.Close()
			return nil, fmt.Errorf("lz4 compression failed: %w", err)
		}
		if err := w.Close(); err != nil {
			return nil, fmt.Errorf("lz4 compression close failed: %w", err)
		}
		return buf.Bytes(), nil

	default:
		return append([]byte{headerNone}, content...), nil
	}
}

// Decompress reverses Compress.
func Decompress(payload []byte) ([]byte, error) {
	if len(payload) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrDecompression)
	}

	header, body := payload[0], payload[1:]
	switch header {
	case headerNone:
		return body, nil

	case headerSnappy:
		decompressed, err := snappy.Decode(nil, body)
		if err != nil {
			return nil, fmt.Errorf("%w: snappy: %v", ErrDecompression, err)
		}
		return decompressed, nil

	case headerLZ4:
		decompressed, err := io.ReadAll(lz4.NewReader(bytes.NewReader(body)))
		if err != nil {
			return nil, fmt.Errorf("%w: lz4: %v", ErrDecompression, err)
		}
		return decompressed, nil

	default:
		return nil, fmt.Errorf("%w: unknown header %q", ErrDecompression, header)
	}
}
