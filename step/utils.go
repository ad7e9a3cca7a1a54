package step

import (
	"github.com/bitrise-io/go-utils/colorstring"
	"github.com/bitrise-io/go-utils/v2/log"
)

func printUploadSummary(logger log.Logger, result Result) {
	logger.Println()
	if result.TestExecutionIssueKey == "" {
		logger.Warnf("No test execution issue was updated.")
		return
	}

	logger.Donef("Test results are available in test execution issue: %s", result.TestExecutionIssueKey)
	logger.Printf("%s", result.TestExecutionIssueURL)

	if len(result.NonAttributableScreenshots) > 0 {
		logger.Infof("%s", colorstring.Magenta(`
Screenshots which could not be attributed to any test are stored in $BITRISE_DEPLOY_DIR,
and the path of their archive is available in the
$XRAY_NON_ATTRIBUTABLE_SCREENSHOTS_ZIP_PATH environment variable.`))
	}
}
