package evidence

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bitrise-steplib/steps-xray-results-upload/xray"
	"gopkg.in/yaml.v3"
)

// Manifest is written during the test run to pass evidence and iteration parameters to the upload.
// Both YAML and JSON are accepted.
type Manifest struct {
	Evidence   []ManifestEvidence  `yaml:"evidence"`
	Iterations []ManifestIteration `yaml:"iterations"`
}

// ManifestEvidence references the evidence either inline (Data) or by file (Path).
type ManifestEvidence struct {
	IssueKey    string `yaml:"issueKey"`
	Filename    string `yaml:"filename"`
	ContentType string `yaml:"contentType"`
	Data        string `yaml:"data"`
	Path        string `yaml:"path"`
}

// ManifestIteration ...
type ManifestIteration struct {
	IssueKey   string           `yaml:"issueKey"`
	Title      string           `yaml:"title"`
	Parameters []xray.Parameter `yaml:"parameters"`
}

// LoadManifest reads a manifest into a new collection. Relative evidence paths are resolved
// against the manifest's directory.
func LoadManifest(pth string) (*Collection, error) {
	content, err := os.ReadFile(pth)
	if err != nil {
		return nil, fmt.Errorf("failed to read evidence manifest (%s): %w", pth, err)
	}

	var manifest Manifest
	if err := yaml.Unmarshal(content, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse evidence manifest (%s): %w", pth, err)
	}

	collection := NewCollection()
	for _, item := range manifest.Evidence {
		e, err := item.toEvidence(filepath.Dir(pth))
		if err != nil {
			return nil, err
		}
		collection.AddEvidence(item.IssueKey, e)
	}
	for _, iteration := range manifest.Iterations {
		collection.AddIterationParameters(iteration.IssueKey, iteration.Title, iteration.Parameters...)
	}

	return collection, nil
}

func (m ManifestEvidence) toEvidence(baseDir string) (xray.Evidence, error) {
	if m.Path == "" {
		return xray.Evidence{
			ContentType: contentTypeOr(m.ContentType, m.Filename),
			Data:        m.Data,
			Filename:    m.Filename,
		}, nil
	}

	pth := m.Path
	if !filepath.IsAbs(pth) {
		pth = filepath.Join(baseDir, pth)
	}
	content, err := os.ReadFile(pth)
	if err != nil {
		return xray.Evidence{}, fmt.Errorf("failed to read evidence of %s (%s): %w", m.IssueKey, pth, err)
	}

	filename := m.Filename
	if filename == "" {
		filename = filepath.Base(pth)
	}

	return xray.Evidence{
		ContentType: contentTypeOr(m.ContentType, filename),
		Data:        base64.StdEncoding.EncodeToString(content),
		Filename:    filename,
	}, nil
}

func contentTypeOr(contentType, filename string) string {
	if contentType != "" {
		return contentType
	}
	return ContentType(filename)
}
