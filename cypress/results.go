package cypress

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-version"
)

const currentSchemaVersion = "13.0.0"

// Results is a Cypress module API run result of any supported schema.
type Results struct {
	CypressVersion string
	BrowserName    string
	BrowserVersion string
	StartedTestsAt string

	legacySchema bool
	legacy       []legacyRun
	current      []currentRun
}

// ReadResults reads the run results written by the Cypress module API.
func ReadResults(pth string) (Results, error) {
	data, err := os.ReadFile(pth)
	if err != nil {
		return Results{}, fmt.Errorf("failed to read Cypress results (%s): %w", pth, err)
	}
	return ParseResults(data)
}

// ParseResults decodes the run results using the schema matching the Cypress version.
func ParseResults(data []byte) (Results, error) {
	var h header
	if err := json.Unmarshal(data, &h); err != nil {
		return Results{}, fmt.Errorf("failed to decode Cypress results: %w", err)
	}

	isLegacy, err := isLegacySchema(h.CypressVersion)
	if err != nil {
		return Results{}, err
	}

	results := Results{
		CypressVersion: h.CypressVersion,
		BrowserName:    h.BrowserName,
		BrowserVersion: h.BrowserVersion,
		StartedTestsAt: h.StartedTestsAt,
	}

	if isLegacy {
		var r legacyResult
		if err := json.Unmarshal(data, &r); err != nil {
			return Results{}, fmt.Errorf("failed to decode Cypress %s results: %w", h.CypressVersion, err)
		}
		results.legacySchema = true
		results.legacy = r.Runs
		return results, nil
	}

	var r currentResult
	if err := json.Unmarshal(data, &r); err != nil {
		return Results{}, fmt.Errorf("failed to decode Cypress %s results: %w", h.CypressVersion, err)
	}
	results.current = r.Runs
	return results, nil
}

func isLegacySchema(cypressVersion string) (bool, error) {
	v, err := version.NewVersion(cypressVersion)
	if err != nil {
		return false, fmt.Errorf("invalid Cypress version (%s): %w", cypressVersion, err)
	}
	return v.LessThan(version.Must(version.NewVersion(currentSchemaVersion))), nil
}

// IsLegacy reports whether the results use the schema of Cypress versions below 13.
func (r Results) IsLegacy() bool {
	return r.legacySchema
}

func (r Results) specs() []Spec {
	var specs []Spec
	for _, run := range r.legacy {
		specs = append(specs, run.Spec)
	}
	for _, run := range r.current {
		specs = append(specs, run.Spec)
	}
	return specs
}

// Videos returns the recorded videos of all runs.
func (r Results) Videos() []string {
	var videos []*string
	for _, run := range r.legacy {
		videos = append(videos, run.Video)
	}
	for _, run := range r.current {
		videos = append(videos, run.Video)
	}

	var paths []string
	for _, video := range videos {
		if video != nil && *video != "" {
			paths = append(paths, *video)
		}
	}
	return paths
}

// SpecFiles returns the absolute paths of the specs with the given extension.
func (r Results) SpecFiles(extension string) []string {
	var paths []string
	for _, spec := range r.specs() {
		if matchesExtension(spec, extension) {
			paths = append(paths, spec.Absolute)
		}
	}
	return paths
}

// ContainsCypressTests reports whether any run is not a feature file run.
func (r Results) ContainsCypressTests(featureFileExtension string) bool {
	for _, spec := range r.specs() {
		if !matchesExtension(spec, featureFileExtension) {
			return true
		}
	}
	return false
}

// ContainsCucumberTests reports whether any run is a feature file run.
func (r Results) ContainsCucumberTests(featureFileExtension string) bool {
	return len(r.SpecFiles(featureFileExtension)) > 0
}

// NewRunConverter returns the converter of the results schema. Runs of specs with the excluded
// extension are not converted.
func (r Results) NewRunConverter(projectKey, excludedExtension string) RunConverter {
	if r.IsLegacy() {
		var runs []legacyRun
		for _, run := range r.legacy {
			if !matchesExtension(run.Spec, excludedExtension) {
				runs = append(runs, run)
			}
		}
		return newLegacyConverter(projectKey, runs)
	}

	var runs []currentRun
	for _, run := range r.current {
		if !matchesExtension(run.Spec, excludedExtension) {
			runs = append(runs, run)
		}
	}
	return newCurrentConverter(projectKey, runs)
}

func matchesExtension(spec Spec, extension string) bool {
	if extension == "" {
		return false
	}
	return strings.HasSuffix(spec.Absolute, extension) || strings.HasSuffix(spec.Relative, extension)
}
