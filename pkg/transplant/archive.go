package transplant

import (
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/zeebo/xxh3"

	"github.com/ruslano69/sqlitekit/pkg/store"
)

// Compress сжимает файл экспортированного хранилища в zstd-архив.
// Возвращает xxh3 (64-bit, hex) контрольную сумму исходного содержимого
// для проверки целостности после передачи.
func Compress(src, dst string) (string, error) {
	in, err := os.Open(src)
	if err != nil {
		return "", store.NewError(store.KindResource, "transplant.Compress", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", store.NewError(store.KindResource, "transplant.Compress", err)
	}
	defer out.Close()

	enc, err := zstd.NewWriter(out, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return "", store.NewError(store.KindResource, "transplant.Compress", err)
	}

	hash := xxh3.New()
	if _, err := io.Copy(enc, io.TeeReader(in, hash)); err != nil {
		enc.Close()
		return "", store.NewError(store.KindResource, "transplant.Compress", err)
	}
	if err := enc.Close(); err != nil {
		return "", store.NewError(store.KindResource, "transplant.Compress", err)
	}

	return fmt.Sprintf("%016x", hash.Sum64()), nil
}

// Decompress распаковывает zstd-архив хранилища.
// Возвращает xxh3 сумму распакованного содержимого: сравнение с суммой,
// полученной при Compress, обнаруживает повреждение при передаче.
func Decompress(src, dst string) (string, error) {
	in, err := os.Open(src)
	if err != nil {
		return "", store.NewError(store.KindResource, "transplant.Decompress", err)
	}
	defer in.Close()

	dec, err := zstd.NewReader(in)
	if err != nil {
		return "", store.NewError(store.KindResource, "transplant.Decompress", err)
	}
	defer dec.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", store.NewError(store.KindResource, "transplant.Decompress", err)
	}
	defer out.Close()

	hash := xxh3.New()
	if _, err := io.Copy(out, io.TeeReader(dec.IOReadCloser(), hash)); err != nil {
		return "", store.NewError(store.KindResource, "transplant.Decompress", err)
	}

	return fmt.Sprintf("%016x", hash.Sum64()), nil
}

// Checksum возвращает xxh3 (64-bit, hex) сумму файла
func Checksum(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", store.NewError(store.KindResource, "transplant.Checksum", err)
	}
	defer f.Close()

	hash := xxh3.New()
	if _, err := io.Copy(hash, f); err != nil {
		return "", store.NewError(store.KindResource, "transplant.Checksum", err)
	}

	return fmt.Sprintf("%016x", hash.Sum64()), nil
}
