package main

import (
	"context"
	"os"

	"github.com/bitrise-io/go-steputils/v2/export"
	"github.com/bitrise-io/go-steputils/v2/stepconf"
	"github.com/bitrise-io/go-steputils/v2/stepenv"
	"github.com/bitrise-io/go-utils/v2/command"
	"github.com/bitrise-io/go-utils/v2/env"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-io/go-utils/v2/pathutil"
	"github.com/bitrise-steplib/steps-xray-results-upload/output"
	"github.com/bitrise-steplib/steps-xray-results-upload/status"
	"github.com/bitrise-steplib/steps-xray-results-upload/step"
	"github.com/bitrise-steplib/steps-xray-results-upload/testaddon"
)

func main() {
	os.Exit(run())
}

func run() int {
	logger := log.NewLogger()
	envRepository := env.NewRepository()
	configParser := step.NewXrayConfigParser(stepconf.NewInputParser(envRepository), logger, pathutil.NewPathModifier())

	config, err := configParser.ProcessConfig()
	if err != nil {
		logger.Errorf("Process config: %s", err)
		return 1
	}

	uploader := createUploader(logger, config)

	result, err := uploader.Run(context.Background(), config)
	if err != nil {
		logger.Errorf("Run: %s", err)
		return 1
	}

	if err := uploader.Export(result); err != nil {
		logger.Errorf("Export outputs: %s", err)
		return 1
	}

	return 0
}

func createUploader(logger log.Logger, config step.Config) step.XrayUploader {
	envRepository := env.NewRepository()
	outputExporter := export.NewExporter(command.NewFactory(envRepository), export.NewFileManager())
	exporter := output.NewExporter(
		config.DeployDir,
		statusTokens(config),
		stepenv.NewRepository(envRepository),
		logger,
		&outputExporter,
		testaddon.NewExporter(testaddon.NewTestAddon(logger)),
	)

	return step.NewXrayUploader(logger, step.NewClientFactory(logger), exporter)
}

// statusTokens tells the test report add-on which Xray statuses count as passed, failed or skipped.
func statusTokens(config step.Config) testaddon.StatusTokens {
	isCloud := config.Options.IsCloud
	overrides := config.Options.StatusOverrides

	return testaddon.StatusTokens{
		Passed:  status.Map(status.Passed, isCloud, overrides),
		Failed:  status.Map(status.Failed, isCloud, overrides),
		Pending: status.Map(status.Pending, isCloud, overrides),
		Skipped: status.Map(status.Skipped, isCloud, overrides),
	}
}
