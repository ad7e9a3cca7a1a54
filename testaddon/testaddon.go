package testaddon

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jstemmer/go-junit-report/v2/junit"
)

const reportFileName = "xray-results.xml"

// Exporter places JUnit reports where the Bitrise test report add-on picks them up.
type Exporter interface {
	ExportReport(report Report) error
}

type exporter struct {
	testAddon TestAddon
}

// NewExporter ...
func NewExporter(testAddon TestAddon) Exporter {
	return &exporter{
		testAddon: testAddon,
	}
}

// Report ...
type Report struct {
	Suites          junit.Testsuites
	TargetAddonPath string
	BundleName      string
}

func (e exporter) ExportReport(report Report) error {
	bundleName := e.testAddon.ReplaceUnsupportedFilenameCharacters(report.BundleName)
	bundleDir := filepath.Join(report.TargetAddonPath, bundleName)

	if err := os.MkdirAll(bundleDir, 0700); err != nil {
		return fmt.Errorf("failed to create directory (%s): %w", bundleDir, err)
	}
	if err := writeJUnit(filepath.Join(bundleDir, reportFileName), report.Suites); err != nil {
		return err
	}
	return e.testAddon.SaveBundleMetadata(bundleDir, bundleName)
}

func writeJUnit(pth string, suites junit.Testsuites) error {
	content, err := xml.MarshalIndent(suites, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode JUnit report: %w", err)
	}

	content = append([]byte(xml.Header), content...)
	if err := os.WriteFile(pth, content, 0600); err != nil {
		return fmt.Errorf("failed to write JUnit report: %w", err)
	}
	return nil
}
