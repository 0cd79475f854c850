package render

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Sink - приемник готового документа. Принадлежит вызывающему на время одного рендера.
type Sink interface {
	Write(p []byte) (int, error)
	Close() error
}

// aborter реализуют приемники, умеющие отбросить частично записанный результат
type aborter interface {
	Abort() error
}

// MemorySink накапливает документ в памяти
type MemorySink struct {
	buf    bytes.Buffer
	closed bool
}

func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) Write(p []byte) (int, error) {
	if s.closed {
		return 0, os.ErrClosed
	}
	return s.buf.Write(p)
}

func (s *MemorySink) Close() error {
	s.closed = true
	return nil
}

func (s *MemorySink) Bytes() []byte {
	return s.buf.Bytes()
}

func (s *MemorySink) Len() int {
	return s.buf.Len()
}

// FileSink пишет во временный файл рядом с целевым и переименовывает его при Close,
// так что по пути path никогда не остается частично записанный документ.
type FileSink struct {
	path string
	tmp  *os.File
}

func NewFileSink(path string) (*FileSink, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("render: could not create output directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.part")
	if err != nil {
		return nil, fmt.Errorf("render: could not create output file: %w", err)
	}
	return &FileSink{path: path, tmp: tmp}, nil
}

func (s *FileSink) Path() string {
	return s.path
}

func (s *FileSink) Write(p []byte) (int, error) {
	return s.tmp.Write(p)
}

func (s *FileSink) Close() error {
	if err := s.tmp.Sync(); err != nil {
		_ = s.Abort()
		return err
	}
	if err := s.tmp.Close(); err != nil {
		_ = os.Remove(s.tmp.Name())
		return err
	}
	if err := os.Chmod(s.tmp.Name(), 0o644); err != nil {
		_ = os.Remove(s.tmp.Name())
		return err
	}
	return os.Rename(s.tmp.Name(), s.path)
}

// Abort удаляет временный файл
func (s *FileSink) Abort() error {
	_ = s.tmp.Close()
	if err := os.Remove(s.tmp.Name()); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// contextWriter прекращает запись после отмены контекста. Это единственная точка
// отмены: сама раскладка не блокируется.
type contextWriter struct {
	ctx context.Context
	w   Sink
	n   int64
}

func (cw *contextWriter) Write(p []byte) (int, error) {
	if err := cw.ctx.Err(); err != nil {
		return 0, err
	}
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
