package k8s

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

var ErrNoDatasets = errors.New("configmap holds no datasets")

// Service reads dataset definitions and sample pods from a single namespace.
type Service struct {
	Client    kubernetes.Interface
	Namespace string
}

func New(namespace string) (*Service, error) {
	restConfig, err := clusterConfig()
	if err != nil {
		return nil, err
	}

	clientset, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, err
	}

	return &Service{Client: clientset, Namespace: namespace}, nil
}

func (s *Service) GetConfigMap(ctx context.Context, name string) (*corev1.ConfigMap, error) {
	return s.Client.CoreV1().ConfigMaps(s.Namespace).Get(ctx, name, metav1.GetOptions{})
}

// GetDatasets returns the ConfigMap data, one raw dataset document per key.
func (s *Service) GetDatasets(ctx context.Context, name string) (map[string]string, error) {
	cm, err := s.GetConfigMap(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read configmap %v/%v: %w", s.Namespace, name, err)
	}

	if len(cm.Data) == 0 {
		return nil, ErrNoDatasets
	}

	return cm.Data, nil
}

func (s *Service) GetPods(ctx context.Context, selector map[string]string) (*corev1.PodList, error) {
	options := metav1.ListOptions{LabelSelector: labels.SelectorFromSet(selector).String()}

	return s.Client.CoreV1().Pods(s.Namespace).List(ctx, options)
}

// clusterConfig prefers in-cluster credentials and falls back to $KUBECONFIG,
// then to ~/.kube/config.
func clusterConfig() (*rest.Config, error) {
	restConfig, err := rest.InClusterConfig()
	if !errors.Is(err, rest.ErrNotInCluster) {
		return restConfig, err
	}

	kubeconfig := os.Getenv("KUBECONFIG")
	if kubeconfig == "" {
		kubeconfig = filepath.Join(os.Getenv("HOME"), ".kube", "config")
	}

	return clientcmd.BuildConfigFromFlags("", kubeconfig)
}
