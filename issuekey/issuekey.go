package issuekey

import (
	"fmt"
	"regexp"
	"strings"
)

// NoIssueKeysError is returned when a test title does not reference any issue of the project.
type NoIssueKeysError struct {
	Title      string
	ProjectKey string
}

func (e NoIssueKeysError) Error() string {
	return fmt.Sprintf(`Test: %s

  No test issue keys found in title.

  You can target existing test issues by adding a corresponding issue key:

    it("%s-123 %s", () => {
      // ...
    });

  Titles of tests without issue keys are not uploaded.`, e.Title, e.ProjectKey, e.Title)
}

// Pattern returns the expression matching issue keys of the given project.
func Pattern(projectKey string) *regexp.Regexp {
	return regexp.MustCompile(regexp.QuoteMeta(projectKey) + `-\d+`)
}

// Extract returns every occurrence of a project issue key in the title, in order of appearance.
// Duplicates are kept.
func Extract(title, projectKey string) ([]string, error) {
	keys := Pattern(projectKey).FindAllString(title, -1)
	if len(keys) == 0 {
		return nil, NoIssueKeysError{Title: title, ProjectKey: projectKey}
	}
	return keys, nil
}

// ContainsAny reports whether s contains any of the keys as a substring and returns the matched keys.
func ContainsAny(s string, keys []string) []string {
	var matches []string
	for _, key := range keys {
		if strings.Contains(s, key) {
			matches = append(matches, key)
		}
	}
	return matches
}
