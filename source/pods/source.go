package pods

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"
	corev1 "k8s.io/api/core/v1"
)

const (
	defaultPort           = 80
	defaultPath           = "/samples"
	defaultRequestTimeout = 3 * time.Second
)

type Config struct {
	Selector       map[string]string `yaml:"selector"`
	Port           int               `yaml:"port"`
	Path           string            `yaml:"path"`
	RequestTimeout time.Duration     `yaml:"request_timeout"`
}

//go:generate mockgen -destination=mock/k8s_client_mock.go -package podsMock github.com/AirHelp/samplestats/source/pods K8SClient
type K8SClient interface {
	GetPods(context.Context, map[string]string) (*corev1.PodList, error)
}

//go:generate mockgen -destination=mock/values_client_mock.go -package podsMock github.com/AirHelp/samplestats/source/pods ValuesClient
type ValuesClient interface {
	GetValues(context.Context, string) ([]uint8, error)
}

// Source collects values from every pod matching a label selector.
type Source struct {
	k8sService   K8SClient
	valuesClient ValuesClient

	selector       map[string]string
	port           int
	path           string
	requestTimeout time.Duration

	logger *zap.SugaredLogger
}

var (
	ErrNoSelectorSpecified = errors.New("pod selector cannot be empty")
	ErrNoK8sClient         = errors.New("kubernetes client not available")
	ErrNoPodsFound         = errors.New("no pods match selector")
	ErrPodsNotOperational  = errors.New("pods not fully operational")
)

func New(config *Config, k8sSvc K8SClient, valuesClient ValuesClient, logger *zap.SugaredLogger) (*Source, error) {
	if len(config.Selector) == 0 {
		return &Source{}, ErrNoSelectorSpecified
	}

	if k8sSvc == nil {
		return &Source{}, ErrNoK8sClient
	}

	port := config.Port
	if port == 0 {
		port = defaultPort
	}

	path := config.Path
	if path == "" {
		path = defaultPath
	}

	requestTimeout := config.RequestTimeout
	if requestTimeout == time.Duration(0) {
		requestTimeout = defaultRequestTimeout
	}

	return &Source{
		k8sService:   k8sSvc,
		valuesClient: valuesClient,

		selector:       config.Selector,
		port:           port,
		path:           path,
		requestTimeout: requestTimeout,

		logger: logger,
	}, nil
}

func (s *Source) Kind() string {
	return "pods"
}

func (s *Source) Load(ctx context.Context) ([]uint8, error) {
	pods, err := s.k8sService.GetPods(ctx, s.selector)
	if err != nil {
		s.logger.Warnf("failed to get pods: %v", err)
		return nil, err
	}

	s.logger.Debugf("found %d pods for selector", len(pods.Items))

	if len(pods.Items) == 0 {
		return nil, ErrNoPodsFound
	}

	if !allPodsOperational(pods) {
		s.logger.Warn("at least one pod found not in ready state")
		return nil, ErrPodsNotOperational
	}

	results, err := s.fetchValuesFromPods(ctx, pods)
	if err != nil {
		s.logger.Warnf("failed to fetch values: %v", err)
		return nil, err
	}

	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	slices.Sort(names)

	var values []uint8
	for _, name := range names {
		values = append(values, results[name]...)
	}

	return values, nil
}

func allPodsOperational(pods *corev1.PodList) bool {
	for _, pod := range pods.Items {
		if pod.Status.Phase != corev1.PodRunning {
			return false
		}

		for _, condition := range pod.Status.Conditions {
			if condition.Status == corev1.ConditionFalse {
				return false
			}
		}
	}

	return true
}

type podValuesResult struct {
	pod    corev1.Pod
	values []uint8
	err    error
}

func (s *Source) fetchValuesFromPods(ctx context.Context, pods *corev1.PodList) (map[string][]uint8, error) {
	results := map[string][]uint8{}

	// buffered so that workers never block once we stop reading on first error
	valuesChan := make(chan podValuesResult, len(pods.Items))

	getValuesFunc := func(pod corev1.Pod) {
		ctx, cancel := context.WithTimeout(ctx, s.requestTimeout)
		defer cancel()

		url := fmt.Sprintf("http://%v:%d%v", pod.Status.PodIP, s.port, s.path)
		values, err := s.valuesClient.GetValues(ctx, url)

		s.logger.With("pod", pod.ObjectMeta.Name).Debugf("fetched %d values from pod", len(values))

		valuesChan <- podValuesResult{
			pod:    pod,
			values: values,
			err:    err,
		}
	}

	for _, pod := range pods.Items {
		go getValuesFunc(pod)
	}

	for range pods.Items {
		result := <-valuesChan

		if result.err != nil {
			return map[string][]uint8{}, result.err
		}

		results[result.pod.ObjectMeta.Name] = result.values
	}

	return results, nil
}
