package analyzer

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/AirHelp/samplestats/config"
	"github.com/AirHelp/samplestats/notification"
	"github.com/AirHelp/samplestats/source"
	"github.com/AirHelp/samplestats/source/httpsource"
	"github.com/AirHelp/samplestats/source/inline"
	"github.com/AirHelp/samplestats/source/pods"
	"github.com/AirHelp/samplestats/source/postgres"
	"github.com/AirHelp/samplestats/source/redis"
	"github.com/AirHelp/samplestats/source/sqs"
	"github.com/AirHelp/samplestats/stat"
)

type Analyzer struct {
	datasetName string
	source      source.Source

	notifiers []notification.Notifier

	globalConfig config.Config
	out          io.Writer
	logger       *zap.SugaredLogger
}

type NewAnalyzerInput struct {
	Ctx context.Context

	DatasetName   string
	RawYamlConfig string
	// Source, when set, is used instead of the one described by RawYamlConfig.
	Source source.Source
	// K8sService is required by the pods source only.
	K8sService pods.K8SClient

	Notifiers []notification.Notifier

	GlobalConfig config.Config
	Out          io.Writer
	Logger       *zap.SugaredLogger
}

// Export `now` function to variable - make it available for stubbing in tests
var now = time.Now

func New(i NewAnalyzerInput) (*Analyzer, error) {
	a := Analyzer{
		datasetName:  i.DatasetName,
		source:       i.Source,
		notifiers:    i.Notifiers,
		globalConfig: i.GlobalConfig,
		out:          i.Out,
		logger:       i.Logger.With("dataset", i.DatasetName),
	}

	if a.out == nil {
		a.out = os.Stdout
	}

	if a.source != nil {
		a.logger.Debugf("Using provided %v source", a.source.Kind())
		return &a, nil
	}

	datasetConfig, err := ParseConfig(i.RawYamlConfig)
	if err != nil {
		a.logger.With("error", err).Warn("Failed to parse config")
		a.logger.Debugf("Raw config: %+v", i.RawYamlConfig)
		return &a, err
	}
	a.logger.Debugf("Parsed dataset config: %+v", datasetConfig)

	requestedSource, err := newSource(i.Ctx, datasetConfig, i.K8sService, a.logger)
	if err != nil {
		return &a, err
	}

	a.source = requestedSource
	a.logger.Debugf("Initialized source: %v", a.source.Kind())

	return &a, nil
}

func newSource(ctx context.Context, c Config, k8sSvc pods.K8SClient, logger *zap.SugaredLogger) (source.Source, error) {
	switch {
	case len(c.Values) > 0:
		return inline.New(&inline.Config{Values: c.Values})
	case c.Redis != nil:
		return redis.New(c.Redis, logger)
	case c.Sqs != nil:
		return sqs.New(ctx, c.Sqs, logger)
	case c.Http != nil:
		return httpsource.New(c.Http, logger)
	case c.Postgres != nil:
		return postgres.New(ctx, c.Postgres, logger)
	case c.Pods != nil:
		return pods.New(c.Pods, k8sSvc, httpsource.NewClient(logger), logger)
	default:
		return nil, ErrSourceNotSpecified
	}
}

// Run loads the data set, prints it, prints its statistics, sorts it in
// descending order and prints it again. Notifier failures are only logged.
func (a *Analyzer) Run(ctx context.Context) (stat.Summary, error) {
	a.logger.Debug("Starting to analyze dataset")

	values, err := a.source.Load(ctx)
	if err != nil {
		return stat.Summary{}, fmt.Errorf("failed to load %v source: %w", a.source.Kind(), err)
	}

	if len(values) == 0 {
		return stat.Summary{}, stat.ErrEmptySequence
	}

	summary, err := stat.Summarize(values)
	if err != nil {
		return stat.Summary{}, err
	}

	if _, err := fmt.Fprintf(a.out, "Dataset: %v\n\n", a.datasetName); err != nil {
		return stat.Summary{}, err
	}

	if err := stat.FprintArray(a.out, values, "Array before sorting:\n", "\n"); err != nil {
		return stat.Summary{}, err
	}

	if err := stat.FprintSummary(a.out, summary); err != nil {
		return stat.Summary{}, err
	}

	stat.SortDescending(values)

	if err := stat.FprintArray(a.out, values, "\nArray after sorting:\n", "\n"); err != nil {
		return stat.Summary{}, err
	}

	a.logger.Infof("Analyzed dataset: %v", summary)

	a.notify(ctx, summary, values)

	a.logger.Debug("Finished analyzing dataset")

	return summary, nil
}

func (a *Analyzer) notify(ctx context.Context, summary stat.Summary, sorted []uint8) {
	if len(a.notifiers) == 0 {
		return
	}

	payload := notification.NotificationPayload{
		DatasetName:  a.datasetName,
		Source:       a.source.Kind(),
		Summary:      summary,
		SortedValues: sorted,
		Environment:  a.globalConfig.Environment,
		Namespace:    a.globalConfig.Namespace,
		ProcessedAt:  now(),
	}

	for _, notifier := range a.notifiers {
		if err := notifier.Notify(ctx, payload); err != nil {
			a.logger.With("error", err).Warnf("Failed to notify %v", notifier.Kind())
		}
	}
}

// Close releases connections held by the source, if any.
func (a *Analyzer) Close() error {
	if c, ok := a.source.(io.Closer); ok {
		return c.Close()
	}

	return nil
}
