package multipart

import (
	"context"
	"fmt"
	"strings"

	"github.com/bitrise-steplib/steps-xray-results-upload/jira"
	"github.com/bitrise-steplib/steps-xray-results-upload/logging"
	"github.com/bitrise-steplib/steps-xray-results-upload/xray"
)

// IssueData describes the test execution issue of an import.
type IssueData struct {
	ProjectKey       string
	Summary          string
	Description      string
	IssueType        string
	Labels           []string
	TestPlanKey      string
	TestEnvironments []string
	TransitionID     string

	CypressVersion string
	BrowserName    string
	BrowserVersion string
}

// FieldConfig configures how the test plan and test environments custom fields are found on server instances.
// A static ID wins over a lookup by name.
type FieldConfig struct {
	TestPlanID           string
	TestPlanName         string
	TestEnvironmentsID   string
	TestEnvironmentsName string
}

// Validate checks that a field is configured for every association the server builder has to make.
func (f FieldConfig) Validate(isCloud bool, testPlanKey string, testEnvironments []string) error {
	if isCloud {
		return nil
	}
	if testPlanKey != "" && f.TestPlanID == "" && f.TestPlanName == "" {
		return fmt.Errorf("a test plan issue key (%s) was configured without the test plan field ID or name", testPlanKey)
	}
	if len(testEnvironments) > 0 && f.TestEnvironmentsID == "" && f.TestEnvironmentsName == "" {
		return fmt.Errorf("test environments (%s) were configured without the test environments field ID or name", strings.Join(testEnvironments, ", "))
	}
	return nil
}

// Builder creates the info part of multipart imports.
type Builder interface {
	Build(ctx context.Context, data IssueData) (xray.MultipartInfo, error)
}

// NewBuilder returns the cloud or the server flavour of the builder.
func NewBuilder(isCloud bool, jiraClient jira.Client, fields FieldConfig, logger logging.Logger) Builder {
	if isCloud {
		return cloudBuilder{}
	}
	return serverBuilder{
		jira:   jiraClient,
		fields: fields,
		logger: logger,
	}
}

func baseFields(data IssueData) map[string]interface{} {
	description := data.Description
	if description == "" {
		description = fmt.Sprintf("Cypress version: %s Browser: %s (%s)", data.CypressVersion, data.BrowserName, data.BrowserVersion)
	}

	fields := map[string]interface{}{
		"description": description,
		"issuetype":   map[string]string{"name": data.IssueType},
		"project":     map[string]string{"key": data.ProjectKey},
		"summary":     data.Summary,
	}
	if len(data.Labels) > 0 {
		fields["labels"] = data.Labels
	}
	return fields
}

func transition(data IssueData) *xray.Transition {
	if data.TransitionID == "" {
		return nil
	}
	return &xray.Transition{ID: data.TransitionID}
}

type cloudBuilder struct{}

func (cloudBuilder) Build(_ context.Context, data IssueData) (xray.MultipartInfo, error) {
	info := xray.MultipartInfo{
		Fields:     baseFields(data),
		Transition: transition(data),
	}

	if data.TestPlanKey != "" || len(data.TestEnvironments) > 0 {
		info.XrayFields = &xray.XrayFields{
			Environments: data.TestEnvironments,
			TestPlanKey:  data.TestPlanKey,
		}
	}

	return info, nil
}

type serverBuilder struct {
	jira   jira.Client
	fields FieldConfig
	logger logging.Logger
}

type association struct {
	label      string
	fieldID    string
	fieldName  string
	optionName string
	value      interface{}
}

func (b serverBuilder) Build(ctx context.Context, data IssueData) (xray.MultipartInfo, error) {
	if err := b.fields.Validate(false, data.TestPlanKey, data.TestEnvironments); err != nil {
		return xray.MultipartInfo{}, err
	}

	var associations []association
	if data.TestPlanKey != "" {
		associations = append(associations, association{
			label:      "test plan",
			fieldID:    b.fields.TestPlanID,
			fieldName:  b.fields.TestPlanName,
			optionName: "jira_field_id_test_plan",
			value:      []string{data.TestPlanKey},
		})
	}
	if len(data.TestEnvironments) > 0 {
		associations = append(associations, association{
			label:      "test environments",
			fieldID:    b.fields.TestEnvironmentsID,
			fieldName:  b.fields.TestEnvironmentsName,
			optionName: "jira_field_id_test_environments",
			value:      data.TestEnvironments,
		})
	}

	info := xray.MultipartInfo{
		Fields:     baseFields(data),
		Transition: transition(data),
	}

	resolver := fieldResolver{jira: b.jira, logger: b.logger}
	for _, a := range associations {
		id := a.fieldID
		if id == "" {
			id = resolver.resolve(ctx, a)
		}
		if id == "" {
			continue
		}
		info.Fields[id] = a.value
	}

	return info, nil
}

// fieldResolver fetches the field list at most once.
type fieldResolver struct {
	jira   jira.Client
	logger logging.Logger

	fetched bool
	fields  []jira.Field
	err     error
}

func (r *fieldResolver) resolve(ctx context.Context, a association) string {
	if !r.fetched {
		r.fields, r.err = r.jira.GetFields(ctx)
		r.fetched = true
	}

	if r.err != nil {
		r.logger.Message(logging.LevelWarning, fmt.Sprintf(
			"Failed to fetch Jira field ID of the %s field with name: %s\nThe %s will not be linked to the test execution issue\n\n  Caused by: %s",
			a.label, a.fieldName, a.label, r.err))
		return ""
	}

	var matches []jira.Field
	for _, field := range r.fields {
		if strings.EqualFold(field.Name, a.fieldName) {
			matches = append(matches, field)
		}
	}

	switch len(matches) {
	case 1:
		return matches[0].ID
	case 0:
		r.logger.Message(logging.LevelWarning, noMatchMessage(a, r.fields))
	default:
		r.logger.Message(logging.LevelWarning, multipleMatchesMessage(a, matches))
	}
	return ""
}

func noMatchMessage(a association, available []jira.Field) string {
	msg := fmt.Sprintf("Failed to fetch Jira field ID of the %s field with name: %s\nMake sure the field actually exists and that your Jira language settings did not modify the field's name", a.label, a.fieldName)
	if len(available) == 0 {
		return msg + fmt.Sprintf("\n\nYou can provide the field ID directly with the %s input", a.optionName)
	}

	lines := make([]string, 0, len(available))
	for _, field := range available {
		lines = append(lines, fmt.Sprintf("  name: %s, id: %s", field.Name, field.ID))
	}
	return msg + fmt.Sprintf("\n\nAvailable fields:\n%s\n\nYou can provide the field ID directly with the %s input", strings.Join(lines, "\n"), a.optionName)
}

func multipleMatchesMessage(a association, matches []jira.Field) string {
	lines := make([]string, 0, len(matches))
	for _, field := range matches {
		lines = append(lines, fmt.Sprintf("  id: %s, name: %s", field.ID, field.Name))
	}
	return fmt.Sprintf("Failed to fetch Jira field ID of the %s field with name: %s\nThere are multiple fields with this name\n\nDuplicates:\n%s\n\nYou can provide the field ID directly with the %s input",
		a.label, a.fieldName, strings.Join(lines, "\n"), a.optionName)
}
