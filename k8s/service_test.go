package k8s

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
)

var _ = Describe("Service with fake client", func() {
	var (
		namespace string
		ctx       context.Context
		configMap *corev1.ConfigMap
	)

	BeforeEach(func() {
		namespace = "ugabuga"
		ctx = context.TODO()

		configMap = &corev1.ConfigMap{
			ObjectMeta: metav1.ObjectMeta{
				Name:      "samplestats-config",
				Namespace: namespace,
			},
			Data: map[string]string{
				"small":  "values: [3, 1]\n",
				"remote": "redis:\n  hosts: [\"localhost:6379\"]\n  key: samples\n",
			},
		}
	})

	Describe("GetConfigMap()", func() {
		It("when config map in given namespace is present it properly returns it", func() {
			svc := Service{
				Client:    fake.NewSimpleClientset(configMap),
				Namespace: namespace,
			}

			res, err := svc.GetConfigMap(ctx, "samplestats-config")

			Expect(err).ToNot(HaveOccurred())
			Expect(res).To(Equal(configMap))
		})

		It("when config map lives in other namespace", func() {
			configMap.Namespace = "some-other-namespace"

			svc := Service{
				Client:    fake.NewSimpleClientset(configMap),
				Namespace: namespace,
			}

			_, err := svc.GetConfigMap(ctx, "samplestats-config")

			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(Equal("configmaps \"samplestats-config\" not found"))
		})
	})

	Describe("GetDatasets()", func() {
		It("returns data of config map", func() {
			svc := Service{
				Client:    fake.NewSimpleClientset(configMap),
				Namespace: namespace,
			}

			res, err := svc.GetDatasets(ctx, "samplestats-config")

			Expect(err).ToNot(HaveOccurred())
			Expect(res).To(Equal(configMap.Data))
		})

		It("proxies not found error", func() {
			svc := Service{
				Client:    fake.NewSimpleClientset(),
				Namespace: namespace,
			}

			res, err := svc.GetDatasets(ctx, "samplestats-config")

			Expect(res).To(BeNil())
			Expect(err).To(MatchError(ContainSubstring("failed to read configmap")))
		})

		It("returns error when config map is empty", func() {
			svc := Service{
				Client: fake.NewSimpleClientset(&corev1.ConfigMap{
					ObjectMeta: metav1.ObjectMeta{Name: "empty", Namespace: namespace},
				}),
				Namespace: namespace,
			}

			res, err := svc.GetDatasets(ctx, "empty")

			Expect(res).To(BeNil())
			Expect(err).To(Equal(ErrNoDatasets))
		})
	})

	Describe("GetPods()", func() {
		var (
			firstPod  *corev1.Pod
			secondPod *corev1.Pod
			otherPod  *corev1.Pod
		)

		BeforeEach(func() {
			firstPod = &corev1.Pod{
				ObjectMeta: metav1.ObjectMeta{
					Name:      "samples-1231-sxada",
					Namespace: namespace,
					Labels: map[string]string{
						"app":  "samples",
						"team": "test",
					},
				},
			}

			secondPod = &corev1.Pod{
				ObjectMeta: metav1.ObjectMeta{
					Name:      "samples-1231-dyerty",
					Namespace: namespace,
					Labels: map[string]string{
						"app":        "samples",
						"team":       "test",
						"additional": "1",
					},
				},
			}

			otherPod = &corev1.Pod{
				ObjectMeta: metav1.ObjectMeta{
					Name:      "other-aaaa-bbbb",
					Namespace: namespace,
					Labels: map[string]string{
						"app":  "other",
						"team": "test",
					},
				},
			}
		})

		It("Properly returns only matched pods", func() {
			svc := Service{
				Client:    fake.NewSimpleClientset(firstPod, secondPod, otherPod),
				Namespace: namespace,
			}

			res, err := svc.GetPods(ctx, map[string]string{"app": "samples"})

			Expect(err).ToNot(HaveOccurred())
			Expect(res.Items).To(ContainElement(*firstPod))
			Expect(res.Items).To(ContainElement(*secondPod))
			Expect(res.Items).ToNot(ContainElement(*otherPod))
		})

		It("Narrows result with every selector label", func() {
			svc := Service{
				Client:    fake.NewSimpleClientset(firstPod, secondPod, otherPod),
				Namespace: namespace,
			}

			res, err := svc.GetPods(ctx, map[string]string{"app": "samples", "additional": "1"})

			Expect(err).ToNot(HaveOccurred())
			Expect(res).To(Equal(&corev1.PodList{Items: []corev1.Pod{
				*secondPod,
			}}))
		})
	})
})
