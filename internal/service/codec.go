package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"github.com/YashDixit26/File-Compression-and-Decompression-System/internal/model"
	"github.com/YashDixit26/File-Compression-and-Decompression-System/internal/notify"
	"github.com/YashDixit26/File-Compression-and-Decompression-System/internal/repo"
	"github.com/YashDixit26/File-Compression-and-Decompression-System/pkg/huffman"
	"github.com/YashDixit26/File-Compression-and-Decompression-System/pkg/logger"
)

// Output names written next to the input by Compress and Decompress.
const (
	CompressedName   = "compressed.bin"
	DecompressedName = "decompressed.txt"
)

var (
	// ErrInput reports an input path that cannot be opened as a regular file.
	ErrInput = errors.New("invalid input file")

	// ErrOutsideRoot is an ErrInput for paths that leave the service root.
	ErrOutsideRoot = fmt.Errorf("%w: path outside root", ErrInput)
)

type CodecService struct {
	repo     repo.RunRepo
	notifier notify.Notifier
	logger   logger.Logger
	alphabet huffman.Alphabet
	root     string // 비어 있으면 제한 없음
}

func NewCodecService(r repo.RunRepo, n notify.Notifier, l logger.Logger, a huffman.Alphabet) *CodecService {
	return &CodecService{repo: r, notifier: n, logger: l, alphabet: a}
}

// Alphabet is the alphabet used when a caller does not pick one.
func (s *CodecService) Alphabet() huffman.Alphabet { return s.alphabet }

// WithRoot returns a copy of s that only reads and writes files below root.
// Symlinks are resolved before the check, so a link inside root cannot be
// used to reach a file outside it.
func (s *CodecService) WithRoot(root string) (*CodecService, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("root %s: %w", root, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("root %s: %w", root, err)
	}
	c := *s
	c.root = resolved
	return &c, nil
}

// Root is the directory runs are confined to, or "" when unrestricted.
func (s *CodecService) Root() string { return s.root }

// Compress writes compressed.bin in the input's directory.
func (s *CodecService) Compress(ctx context.Context, inputPath string) (*model.Run, error) {
	out := filepath.Join(filepath.Dir(inputPath), CompressedName)
	return s.CompressTo(ctx, inputPath, out, s.alphabet)
}

// Decompress writes decompressed.txt in the input's directory.
func (s *CodecService) Decompress(ctx context.Context, inputPath string) (*model.Run, error) {
	out := filepath.Join(filepath.Dir(inputPath), DecompressedName)
	return s.DecompressTo(ctx, inputPath, out, s.alphabet)
}

func (s *CodecService) CompressTo(ctx context.Context, inputPath, outputPath string, a huffman.Alphabet) (*model.Run, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.checkPaths(inputPath, outputPath); err != nil {
		return nil, err
	}
	start := time.Now()
	src, _, err := openInput(inputPath)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	inHash := xxhash.New()
	var res huffman.Result
	outDigest, err := writeAtomically(outputPath, func(w io.Writer) error {
		var err error
		res, err = huffman.Compress(&hashFirstPass{rs: src, h: inHash}, w, a)
		return err
	})
	if err != nil {
		s.logger.Errorf("compress %s: %v", inputPath, err)
		return nil, err
	}

	run := &model.Run{
		Op:           model.OpCompress,
		InputSize:    res.BytesIn,
		OutputSize:   res.BytesOut,
		InputDigest:  digest(inHash),
		OutputDigest: outDigest,
	}
	return s.finish(ctx, run, res, a, inputPath, outputPath, start), nil
}

func (s *CodecService) DecompressTo(ctx context.Context, inputPath, outputPath string, a huffman.Alphabet) (*model.Run, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.checkPaths(inputPath, outputPath); err != nil {
		return nil, err
	}
	start := time.Now()
	src, size, err := openInput(inputPath)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	inHash := xxhash.New()
	var res huffman.Result
	outDigest, err := writeAtomically(outputPath, func(w io.Writer) error {
		var err error
		res, err = huffman.Decompress(io.TeeReader(src, inHash), w, a)
		return err
	})
	if err != nil {
		s.logger.Errorf("decompress %s: %v", inputPath, err)
		return nil, err
	}
	// bufio 선읽기 때문에 끝까지 읽지 않았을 수 있음
	if _, err := io.Copy(inHash, src); err != nil {
		return nil, fmt.Errorf("%w: %w", huffman.ErrRead, err)
	}

	run := &model.Run{
		Op:           model.OpDecompress,
		InputSize:    size,
		OutputSize:   res.BytesOut,
		InputDigest:  digest(inHash),
		OutputDigest: outDigest,
	}
	return s.finish(ctx, run, res, a, inputPath, outputPath, start), nil
}

func (s *CodecService) finish(ctx context.Context, run *model.Run, res huffman.Result, a huffman.Alphabet, in, out string, start time.Time) *model.Run {
	run.ID = uuid.NewString()
	run.Alphabet = a.String()
	run.InputPath = in
	run.OutputPath = out
	run.Symbols = res.Symbols
	run.Distinct = res.Distinct
	run.Elapsed = time.Since(start)
	run.CreatedAt = time.Now().UTC()

	// 이력 저장/알림 실패는 결과 파일에 영향 없음
	if err := s.repo.Save(run); err != nil {
		s.logger.Errorf("save run %s: %v", run.ID, err)
	}
	if err := s.notifier.Publish(ctx, run); err != nil {
		s.logger.Errorf("publish run %s: %v", run.ID, err)
	}
	s.logger.Infof("%s %s -> %s: %d -> %d bytes in %s", run.Op, in, out, run.InputSize, run.OutputSize, run.Elapsed)
	return run
}

func (s *CodecService) GetByID(id string) (*model.Run, error) {
	return s.repo.FindByID(id)
}

func (s *CodecService) List() ([]*model.Run, error) {
	return s.repo.List()
}

func (s *CodecService) checkPaths(in, out string) error {
	if s.root == "" {
		return nil
	}
	// 입력은 링크 끝까지, 출력은 디렉터리만 (rename 은 링크를 따라가지 않음)
	if p, err := resolve(in, true); err != nil || !within(s.root, p) {
		return fmt.Errorf("%w: %s", ErrOutsideRoot, in)
	}
	if p, err := resolve(out, false); err != nil || !within(s.root, p) {
		return fmt.Errorf("%w: %s", ErrOutsideRoot, out)
	}
	return nil
}

func resolve(path string, followLast bool) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if followLast {
		return filepath.EvalSymlinks(abs)
	}
	dir, err := filepath.EvalSymlinks(filepath.Dir(abs))
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, filepath.Base(abs)), nil
}

func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}

func openInput(path string) (*os.File, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrInput, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, fmt.Errorf("%w: %w", ErrInput, err)
	}
	if !info.Mode().IsRegular() {
		f.Close()
		return nil, 0, fmt.Errorf("%w: %s is not a regular file", ErrInput, path)
	}
	return f, info.Size(), nil
}

// writeAtomically runs fill against a temporary file next to path and
// renames it into place only if fill succeeds, so a failed run never
// replaces an existing file. It returns the digest of the bytes written.
func writeAtomically(path string, fill func(w io.Writer) error) (string, error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*")
	if err != nil {
		return "", fmt.Errorf("%w: %w", huffman.ErrWrite, err)
	}
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	h := xxhash.New()
	if err := fill(io.MultiWriter(tmp, h)); err != nil {
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("%w: %w", huffman.ErrWrite, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		committed = true
		return "", fmt.Errorf("%w: %w", huffman.ErrWrite, err)
	}
	committed = true
	return digest(h), nil
}

func digest(h *xxhash.Digest) string { return fmt.Sprintf("%016x", h.Sum64()) }

// hashFirstPass feeds everything read before the first Seek into h.
type hashFirstPass struct {
	rs     io.ReadSeeker
	h      io.Writer
	seeked bool
}

func (p *hashFirstPass) Read(b []byte) (int, error) {
	n, err := p.rs.Read(b)
	if !p.seeked && n > 0 {
		p.h.Write(b[:n])
	}
	return n, err
}

func (p *hashFirstPass) Seek(offset int64, whence int) (int64, error) {
	p.seeked = true
	return p.rs.Seek(offset, whence)
}
