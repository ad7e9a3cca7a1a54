package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bitrise-steplib/steps-xray-results-upload/jira"
	"github.com/bitrise-steplib/steps-xray-results-upload/logging"
)

// Snapshot holds the issue fields that feature file imports are known to overwrite.
type Snapshot struct {
	Key     string
	Summary string
	Labels  []string
}

// Issue is an issue to take a snapshot of. Summary and Labels are nil when they are not known yet.
type Issue struct {
	Key     string
	Summary *string
	Labels  []string
}

func (i Issue) complete() bool {
	return i.Summary != nil && i.Labels != nil
}

// Manager backs up and restores issue fields around feature file imports.
type Manager interface {
	GetIssueSnapshots(ctx context.Context, issues []Issue) ([]Snapshot, []string, error)
	RestoreIssueSnapshots(ctx context.Context, newData, previousData []Snapshot)
}

type manager struct {
	jira   jira.Client
	logger logging.Logger
}

// NewManager ...
func NewManager(jiraClient jira.Client, logger logging.Logger) Manager {
	return &manager{
		jira:   jiraClient,
		logger: logger,
	}
}

// GetIssueSnapshots returns the snapshots of the issues and the reasons of those which could not be taken.
// Issues with unknown fields are looked up in a single search.
func (m manager) GetIssueSnapshots(ctx context.Context, issues []Issue) ([]Snapshot, []string, error) {
	var snapshots []Snapshot
	var missingKeys []string
	for _, issue := range issues {
		if issue.complete() {
			snapshots = append(snapshots, Snapshot{Key: issue.Key, Summary: *issue.Summary, Labels: issue.Labels})
			continue
		}
		missingKeys = append(missingKeys, issue.Key)
	}

	if len(missingKeys) == 0 {
		return snapshots, nil, nil
	}

	jql := fmt.Sprintf("issue in (%s)", strings.Join(missingKeys, ","))
	found, err := m.jira.Search(ctx, jql, []string{"summary", "labels"})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to retrieve summaries and labels of issues %s: %w", strings.Join(missingKeys, ", "), err)
	}

	var errorMessages []string
	returned := map[string]bool{}
	for _, issue := range found {
		if issue.Key == "" {
			errorMessages = append(errorMessages, "Jira returned an issue without a key, its summary and labels cannot be backed up")
			continue
		}
		returned[issue.Key] = true

		// Both fields are extracted so that one broken field is reported together with the other.
		summary, summaryErr := summaryOf(issue)
		labels, labelsErr := labelsOf(issue)
		if summaryErr != nil {
			errorMessages = append(errorMessages, fmt.Sprintf("%s: %s", issue.Key, summaryErr))
		}
		if labelsErr != nil {
			errorMessages = append(errorMessages, fmt.Sprintf("%s: %s", issue.Key, labelsErr))
		}
		if summaryErr != nil || labelsErr != nil {
			continue
		}

		snapshots = append(snapshots, Snapshot{Key: issue.Key, Summary: summary, Labels: labels})
	}

	for _, key := range missingKeys {
		if !returned[key] {
			errorMessages = append(errorMessages, fmt.Sprintf("%s: issue was not returned by Jira", key))
		}
	}

	return snapshots, errorMessages, nil
}

func summaryOf(issue jira.Issue) (string, error) {
	raw, ok := issue.Fields["summary"]
	if !ok {
		return "", fmt.Errorf("summary field is missing")
	}

	var summary string
	if err := json.Unmarshal(raw, &summary); err != nil {
		return "", fmt.Errorf("failed to parse summary: %w", err)
	}
	return summary, nil
}

func labelsOf(issue jira.Issue) ([]string, error) {
	raw, ok := issue.Fields["labels"]
	if !ok {
		return nil, fmt.Errorf("labels field is missing")
	}

	labels := []string{}
	if err := json.Unmarshal(raw, &labels); err != nil {
		return nil, fmt.Errorf("failed to parse labels: %w", err)
	}
	if labels == nil {
		labels = []string{}
	}
	return labels, nil
}

// RestoreIssueSnapshots writes back the fields of previousData which differ in newData.
// Restores run one after the other and a failing one does not stop the rest.
func (m manager) RestoreIssueSnapshots(ctx context.Context, newData, previousData []Snapshot) {
	previousByKey := make(map[string]Snapshot, len(previousData))
	for _, previous := range previousData {
		previousByKey[previous.Key] = previous
	}

	for _, current := range newData {
		previous, ok := previousByKey[current.Key]
		if !ok {
			m.logger.Message(logging.LevelWarning, fmt.Sprintf("Cannot restore issue %s: its previous summary and labels are unknown, make sure they were not modified by the feature file import", current.Key))
			continue
		}

		fields := map[string]interface{}{}
		if current.Summary != previous.Summary {
			fields["summary"] = previous.Summary
		}
		if !sameLabels(previous.Labels, current.Labels) {
			fields["labels"] = previous.Labels
		}
		if len(fields) == 0 {
			continue
		}

		m.logger.Message(logging.LevelDebug, fmt.Sprintf("Restoring fields of issue %s", current.Key))
		if err := m.jira.EditIssue(ctx, current.Key, fields); err != nil {
			m.logger.Message(logging.LevelWarning, fmt.Sprintf("Failed to restore issue %s, make sure its summary and labels were not modified by the feature file import\n\n  Caused by: %s", current.Key, err))
		}
	}
}

func sameLabels(previous, current []string) bool {
	if len(previous) != len(current) {
		return false
	}

	set := make(map[string]bool, len(current))
	for _, label := range current {
		set[label] = true
	}
	for _, label := range previous {
		if !set[label] {
			return false
		}
	}
	return true
}
