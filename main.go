package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/AirHelp/samplestats/analyzer"
	"github.com/AirHelp/samplestats/config"
	"github.com/AirHelp/samplestats/k8s"
	logger "github.com/AirHelp/samplestats/logger"
	"github.com/AirHelp/samplestats/notification"
	"github.com/AirHelp/samplestats/notification/slack"
	"github.com/AirHelp/samplestats/source/inline"
	"github.com/AirHelp/samplestats/source/pods"
	"github.com/AirHelp/samplestats/stat"
)

const defaultDatasetName = "default"

var errNoK8sService = errors.New("kubernetes client required to read configmap")

type DatasetRunner interface {
	Run(context.Context) (stat.Summary, error)
	Close() error
}

func main() {
	if err := config.LoadEnvFiles(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
		os.Exit(1)
	}

	cfg := parseStartingFlags()

	if cfg.Version {
		fmt.Println(versionString())
		os.Exit(0)
	}

	log := logger.InitLogger(cfg.Namespace, cfg.Environment, cfg.LogLevel())
	defer func() { _ = log.Sync() }()

	log.Infof("Samplestats starting, version: %v", strings.TrimSpace(version))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	k8sSvc, err := newK8sService(cfg, log)
	if err != nil {
		log.With("error", err).Error("Failed to initialize k8s client")
		os.Exit(1)
	}

	datasets, err := loadDatasets(ctx, cfg, k8sSvc, log)
	if err != nil {
		log.With("error", err).Error("Failed to load datasets")
		os.Exit(1)
	}

	a := app{
		cfg: cfg,
		out: os.Stdout,
		log: log,
	}

	if k8sSvc != nil {
		a.k8sSvc = k8sSvc
	}

	if cfg.SlackWebhookUrl != "" {
		log.Debug("Initializing Slack client")
		a.notifiers = append(a.notifiers, slack.NewClient(cfg.SlackWebhookUrl, cfg.SlackChannel, cfg.ClusterName, "samplestats"))
	}

	if failed := a.runDatasets(ctx, datasets); failed > 0 {
		log.Warnf("%d dataset(s) failed", failed)
		os.Exit(1)
	}

	log.Debug("Finished processing datasets")
}

// newK8sService connects to the cluster when a namespace or ConfigMap is
// configured. Without a ConfigMap the connection is optional and only the
// pods source depends on it.
func newK8sService(cfg config.Config, log *zap.SugaredLogger) (*k8s.Service, error) {
	if cfg.Namespace == "" && cfg.ConfigMapName == "" {
		return nil, nil
	}

	k8sSvc, err := k8s.New(cfg.Namespace)
	if err != nil {
		if cfg.ConfigMapName != "" {
			return nil, err
		}

		log.With("error", err).Warn("Kubernetes not available, pods source disabled")
		return nil, nil
	}

	return k8sSvc, nil
}

// loadDatasets returns raw dataset documents keyed by name. Without a config
// file or ConfigMap it falls back to the built-in sample.
func loadDatasets(ctx context.Context, cfg config.Config, k8sSvc *k8s.Service, log *zap.SugaredLogger) (map[string]string, error) {
	switch {
	case cfg.ConfigFile != "":
		log.Debugf("Loading datasets from file %v", cfg.ConfigFile)
		return analyzer.LoadFile(cfg.ConfigFile)
	case cfg.ConfigMapName != "":
		log.Debugf("Loading datasets from configmap %v", cfg.ConfigMapName)

		if k8sSvc == nil {
			return nil, errNoK8sService
		}

		return k8sSvc.GetDatasets(ctx, cfg.ConfigMapName)
	default:
		return map[string]string{defaultDatasetName: ""}, nil
	}
}

type app struct {
	cfg       config.Config
	notifiers []notification.Notifier
	k8sSvc    pods.K8SClient

	out io.Writer
	log *zap.SugaredLogger
}

// runDatasets processes datasets one by one in name order and returns the
// number of failures.
func (a *app) runDatasets(ctx context.Context, datasets map[string]string) int {
	names := make([]string, 0, len(datasets))
	for name := range datasets {
		names = append(names, name)
	}
	slices.Sort(names)

	if _, ok := datasets[a.cfg.Dataset]; a.cfg.Dataset != "" && !ok {
		a.log.With("dataset", a.cfg.Dataset, "available", names).Error("Requested dataset not found")
		return 1
	}

	failed := 0
	first := true

	for _, name := range names {
		if ctx.Err() != nil {
			a.log.Info("Received shutdown, shutting down")
			break
		}

		if a.cfg.Dataset != "" && a.cfg.Dataset != name {
			continue
		}

		if !first {
			fmt.Fprintln(a.out)
		}
		first = false

		if err := a.runDataset(ctx, name, datasets[name]); err != nil {
			a.log.With("error", err, "dataset", name).Error("Failed to analyze dataset, skipping.")
			failed++
		}
	}

	return failed
}

func (a *app) runDataset(ctx context.Context, name, rawYamlConfig string) error {
	input := analyzer.NewAnalyzerInput{
		Ctx:           ctx,
		DatasetName:   name,
		RawYamlConfig: rawYamlConfig,
		K8sService:    a.k8sSvc,
		Notifiers:     a.notifiers,
		GlobalConfig:  a.cfg,
		Out:           a.out,
		Logger:        a.log,
	}

	if rawYamlConfig == "" && name == defaultDatasetName {
		src, err := inline.New(&inline.Config{Values: defaultValues()})
		if err != nil {
			return err
		}

		input.Source = src
	}

	var runner DatasetRunner

	runner, err := analyzer.New(input)
	if err != nil {
		return err
	}
	defer func() {
		if err := runner.Close(); err != nil {
			a.log.With("error", err).Warn("Failed to close source")
		}
	}()

	_, err = runner.Run(ctx)

	return err
}

func defaultValues() []int {
	sample := stat.DefaultSample()
	values := make([]int, len(sample))

	for i, v := range sample {
		values[i] = int(v)
	}

	return values
}

func parseStartingFlags() config.Config {
	cfg := config.NewWithDefaults()
	flag.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Debug mode")
	flag.BoolVar(&cfg.Version, "version", false, "Prints version number")

	flag.StringVar(&cfg.Environment, "environment", "", "Environment name")
	flag.StringVar(&cfg.Namespace, "namespace", "", "Namespace to read the datasets configmap from")
	flag.StringVar(&cfg.ClusterName, "cluster_name", "", "Name of cluster")
	flag.StringVar(&cfg.ConfigFile, "config", "", "Path to YAML file with dataset definitions")
	flag.StringVar(&cfg.ConfigMapName, "configmap", "", "Name of configmap with dataset definitions")
	flag.StringVar(&cfg.Dataset, "dataset", "", "Process only the dataset with this name")
	flag.StringVar(&cfg.SlackWebhookUrl, "slack_url", cfg.SlackWebhookUrl, "Slack Webhook URL to use")
	flag.StringVar(&cfg.SlackChannel, "slack_channel", cfg.SlackChannel, "Slack channel to send messages to")
	flag.Parse()

	return cfg
}
