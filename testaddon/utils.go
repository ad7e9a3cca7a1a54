package testaddon

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bitrise-io/go-utils/v2/log"
)

// TestAddon ...
type TestAddon interface {
	ReplaceUnsupportedFilenameCharacters(s string) string
	SaveBundleMetadata(outputDir string, bundleName string) error
}

type testAddon struct {
	logger log.Logger
}

// NewTestAddon ...
func NewTestAddon(logger log.Logger) TestAddon {
	return &testAddon{
		logger: logger,
	}
}

// ReplaceUnsupportedFilenameCharacters replaces '/' and ':', which are not allowed in bundle directory names.
func (t testAddon) ReplaceUnsupportedFilenameCharacters(s string) string {
	return strings.NewReplacer("/", "-", ":", "-").Replace(s)
}

// SaveBundleMetadata writes the test-info.json the add-on reads the name of the results from.
func (t testAddon) SaveBundleMetadata(outputDir string, bundleName string) error {
	type testBundle struct {
		BundleName string `json:"test-name"`
	}
	bytes, err := json.Marshal(testBundle{
		BundleName: bundleName,
	})
	if err != nil {
		return fmt.Errorf("could not encode metadata: %w", err)
	}

	pth := filepath.Join(outputDir, "test-info.json")
	if err = os.WriteFile(pth, bytes, 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	t.logger.Debugf("Test report metadata saved to %s", pth)
	return nil
}
