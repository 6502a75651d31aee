package generator

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/seitarof/gen-dtl/internal/walker"
)

// Stdout is the output filename that writes to standard output.
const Stdout = "-"

// ErrOutOfDate is returned by the checker when the stored declarations
// differ from what would be generated.
var ErrOutOfDate = errors.New("declarations are out of date")

// Generator renders a walker into a declaration file.
type Generator interface {
	Generate(cfg Config, w *walker.Walker) error
}

// Config is the minimum config contract required by generator.
type Config interface {
	OutputFilename() string
	ModuleName() string
	IsGlobal() bool
}

// FileWriter writes generated declarations.
type FileWriter interface {
	Write(filename string, data []byte) error
}

// FileReader reads previously generated declarations.
type FileReader interface {
	Read(filename string) ([]byte, error)
}

type generatorImpl struct {
	writer FileWriter
}

type checkerImpl struct {
	reader FileReader
}

type fileWriter struct {
	stdout io.Writer
}

type fileReader struct{}

// New creates a generator that writes its output.
func New(w FileWriter) Generator {
	return &generatorImpl{writer: w}
}

// NewChecker creates a generator that only compares its output with the
// existing file and fails with ErrOutOfDate on any difference.
func NewChecker(r FileReader) Generator {
	return &checkerImpl{reader: r}
}

// NewFileWriter creates a writer that replaces files atomically and writes
// Stdout to standard output.
func NewFileWriter() FileWriter {
	return &fileWriter{stdout: os.Stdout}
}

// NewFileReader creates a plain file reader.
func NewFileReader() FileReader {
	return &fileReader{}
}

func (g *generatorImpl) Generate(cfg Config, w *walker.Walker) error {
	out, err := w.Generate(cfg.ModuleName(), cfg.IsGlobal())
	if err != nil {
		return errors.Wrap(err, "generate")
	}
	if err := g.writer.Write(cfg.OutputFilename(), []byte(out)); err != nil {
		return errors.Wrap(err, "write")
	}
	return nil
}

func (c *checkerImpl) Generate(cfg Config, w *walker.Walker) error {
	filename := cfg.OutputFilename()
	if filename == Stdout || filename == "" {
		return errors.New("check needs an output file")
	}
	out, err := w.Generate(cfg.ModuleName(), cfg.IsGlobal())
	if err != nil {
		return errors.Wrap(err, "generate")
	}
	existing, err := c.reader.Read(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return errors.WithHint(errors.Wrapf(ErrOutOfDate, "%s does not exist", filename), "run gen-dtl without --check")
	}
	if err != nil {
		return errors.Wrap(err, "read")
	}
	if string(existing) == out {
		return nil
	}
	line := firstDiffLine(string(existing), out)
	return errors.WithHint(
		errors.Wrapf(ErrOutOfDate, "%s: first difference at line %d", filename, line),
		"run gen-dtl without --check",
	)
}

func (w *fileWriter) Write(filename string, data []byte) error {
	if filename == Stdout || filename == "" {
		_, err := w.stdout.Write(data)
		return err
	}

	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "create directories")
	}
	tmp, err := os.CreateTemp(dir, ".gen-dtl-*.tmp")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	tmpPath := tmp.Name()
	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()
	if err := errors.CombineErrors(writeErr, closeErr); err != nil {
		_ = os.Remove(tmpPath)
		return errors.Wrap(err, "write temp file")
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		_ = os.Remove(tmpPath)
		return errors.Wrap(err, "chmod temp file")
	}
	if err := os.Rename(tmpPath, filename); err != nil {
		_ = os.Remove(tmpPath)
		return errors.Wrap(err, "rename temp file")
	}
	return nil
}

func (r *fileReader) Read(filename string) ([]byte, error) {
	return os.ReadFile(filename)
}

// firstDiffLine returns the 1-based line number of the first line that
// differs between a and b.
func firstDiffLine(a, b string) int {
	al := strings.Split(a, "\n")
	bl := strings.Split(b, "\n")
	for i := 0; i < len(al) && i < len(bl); i++ {
		if al[i] != bl[i] {
			return i + 1
		}
	}
	return min(len(al), len(bl)) + 1
}
