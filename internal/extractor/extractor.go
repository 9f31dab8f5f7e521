package extractor

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"

	"github.com/TamerPlatform/frida-push/internal/domain"
)

// BinaryExtractor decompresses a single-file compressed payload into an
// executable. Release assets are a raw compressed ELF binary, not an
// archive, so there are no entries to walk.
type BinaryExtractor struct{}

func New() *BinaryExtractor {
	return &BinaryExtractor{}
}

func (e *BinaryExtractor) Extract(src, dst string) error {
	file, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrExtraction, err)
	}
	defer file.Close()

	reader, cleanup, err := getDecompressor(file)
	if err != nil {
		return err
	}
	if cleanup != nil {
		defer cleanup()
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0755)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrExtraction, err)
	}

	if _, err := io.Copy(out, reader); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("%w: %v", domain.ErrExtraction, err)
	}

	return out.Close()
}

// Magic numbers: https://gist.github.com/leommoore/f9e57ba2aa4bf197ebc5
func getDecompressor(file *os.File) (io.Reader, func(), error) {
	header := make([]byte, 6)
	n, _ := file.Read(header)
	header = header[:n]
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrExtraction, err)
	}

	switch {
	case n >= 6 && header[0] == 0xfd && header[1] == 0x37 && header[2] == 0x7a && header[3] == 0x58 && header[4] == 0x5a && header[5] == 0x00:
		// xz: 0xFD377A585A00
		xzr, err := xz.NewReader(file)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: xz: %v", domain.ErrExtraction, err)
		}
		return xzr, nil, nil

	case n >= 2 && header[0] == 0x1f && header[1] == 0x8b:
		// gzip: 0x1F8B
		gzr, err := gzip.NewReader(file)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: gzip: %v", domain.ErrExtraction, err)
		}
		return gzr, func() { gzr.Close() }, nil

	case n >= 4 && header[0] == 0x28 && header[1] == 0xb5 && header[2] == 0x2f && header[3] == 0xfd:
		// zstd: 0x28B52FFD
		zr, err := zstd.NewReader(file)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: zstd: %v", domain.ErrExtraction, err)
		}
		return zr, func() { zr.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("%w: unrecognized payload format", domain.ErrExtraction)
	}
}
