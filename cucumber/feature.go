package cucumber

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	gherkin "github.com/cucumber/gherkin-go/v19"
	messages "github.com/cucumber/messages-go/v16"
	"github.com/google/uuid"
)

// FeatureIssues lists the issues a feature file import will create or update.
type FeatureIssues struct {
	Tests         []string
	Preconditions []string
}

// Keys returns the test and precondition keys in file order.
func (f FeatureIssues) Keys() []string {
	return append(append([]string{}, f.Tests...), f.Preconditions...)
}

// ParseFeatureFile reads the issue keys of a feature file: test keys from scenario tags,
// precondition keys from comments such as #@Precondition:CYP-1 placed in backgrounds.
func ParseFeatureFile(pth string, opts Options) (FeatureIssues, error) {
	file, err := os.Open(pth)
	if err != nil {
		return FeatureIssues{}, fmt.Errorf("failed to open feature file %s: %w", pth, err)
	}
	defer func() {
		_ = file.Close()
	}()

	doc, err := gherkin.ParseGherkinDocument(file, uuid.NewString)
	if err != nil {
		return FeatureIssues{}, fmt.Errorf("failed to parse feature file %s: %w", pth, err)
	}

	var issues FeatureIssues
	if doc.Feature == nil {
		return issues, nil
	}

	testPattern := tagPattern(opts.TestPrefix, opts.ProjectKey)
	preconditionPattern := regexp.MustCompile(`^#\s*@` + regexp.QuoteMeta(opts.PreconditionPrefix) + `(` + regexp.QuoteMeta(opts.ProjectKey) + `-\d+)\s*$`)

	var blocks []block
	for _, child := range doc.Feature.Children {
		switch {
		case child.Background != nil:
			blocks = append(blocks, block{line: child.Background.Location.Line, background: true})
		case child.Scenario != nil:
			blocks = append(blocks, block{line: child.Scenario.Location.Line, tags: child.Scenario.Tags})
		case child.Rule != nil:
			blocks = append(blocks, block{line: child.Rule.Location.Line})
			for _, ruleChild := range child.Rule.Children {
				switch {
				case ruleChild.Background != nil:
					blocks = append(blocks, block{line: ruleChild.Background.Location.Line, background: true})
				case ruleChild.Scenario != nil:
					blocks = append(blocks, block{line: ruleChild.Scenario.Location.Line, tags: ruleChild.Scenario.Tags})
				}
			}
		}
	}

	for i, b := range blocks {
		if !b.background {
			for _, tag := range b.tags {
				if match := testPattern.FindStringSubmatch(tag.Name); match != nil {
					issues.Tests = append(issues.Tests, match[1])
				}
			}
			continue
		}

		end := int64(-1)
		if i+1 < len(blocks) {
			end = blocks[i+1].line
		}
		for _, comment := range doc.Comments {
			line := comment.Location.Line
			if line <= b.line || (end >= 0 && line >= end) {
				continue
			}
			if match := preconditionPattern.FindStringSubmatch(strings.TrimSpace(comment.Text)); match != nil {
				issues.Preconditions = append(issues.Preconditions, match[1])
			}
		}
	}

	return issues, nil
}

// block is a background, scenario or rule of a feature, in file order.
type block struct {
	line       int64
	background bool
	tags       []*messages.Tag
}
