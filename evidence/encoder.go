package evidence

import (
	"encoding/base64"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"unicode"

	"github.com/bitrise-steplib/steps-xray-results-upload/xray"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Encoder turns screenshot files into evidence.
type Encoder interface {
	EncodeScreenshots(paths []string, normalizeNames bool) ([]xray.Evidence, []error)
}

type encoder struct {
	maxParallel int
}

// NewEncoder ...
func NewEncoder() Encoder {
	return &encoder{maxParallel: runtime.NumCPU() * 2}
}

// EncodeScreenshots reads and encodes the files concurrently. A file which cannot be read is
// reported in the returned errors and left out, the rest keep the order of paths.
func (e encoder) EncodeScreenshots(paths []string, normalizeNames bool) ([]xray.Evidence, []error) {
	encoded := make([]*xray.Evidence, len(paths))
	errs := make([]error, len(paths))

	var g errgroup.Group
	g.SetLimit(e.maxParallel)
	for i, pth := range paths {
		i, pth := i, pth
		g.Go(func() error {
			content, err := os.ReadFile(pth)
			if err != nil {
				errs[i] = fmt.Errorf("failed to read screenshot (%s): %w", pth, err)
				return nil
			}

			filename := filepath.Base(pth)
			if normalizeNames {
				filename = NormalizeFilename(filename)
			}

			encoded[i] = &xray.Evidence{
				ContentType: ContentType(filename),
				Data:        base64.StdEncoding.EncodeToString(content),
				Filename:    filename,
			}
			return nil
		})
	}
	_ = g.Wait()

	var items []xray.Evidence
	var failures []error
	for i := range paths {
		if errs[i] != nil {
			failures = append(failures, errs[i])
			continue
		}
		items = append(items, *encoded[i])
	}

	return items, failures
}

// NormalizeFilename strips diacritics and replaces the remaining non-ASCII characters with underscores.
func NormalizeFilename(filename string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, filename)
	if err != nil {
		stripped = filename
	}

	return strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return '_'
		}
		return r
	}, stripped)
}

// ContentType guesses the MIME type from the file extension.
func ContentType(filename string) string {
	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename)))
	if contentType == "" {
		return "application/octet-stream"
	}
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}
	return contentType
}
