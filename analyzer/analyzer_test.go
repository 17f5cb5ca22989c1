package analyzer

import (
	"bytes"
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/AirHelp/samplestats/config"
	"github.com/AirHelp/samplestats/fixture"
	"github.com/AirHelp/samplestats/notification"
	notificationMock "github.com/AirHelp/samplestats/notification/mock"
	sourceMock "github.com/AirHelp/samplestats/source/mock"
	"github.com/AirHelp/samplestats/source/pods"
	podsMock "github.com/AirHelp/samplestats/source/pods/mock"
	"github.com/AirHelp/samplestats/source/sqs"
	"github.com/AirHelp/samplestats/stat"
)

const tenValuesReport = `Dataset: ten

Array before sorting:
34, 201, 190, 154, 8, 194, 2, 6,
114, 88
Statistics:
  Maximum: 201
  Minimum: 2
  Mean:    99
  Median:  101

Array after sorting:
201, 194, 190, 154, 114, 88, 34, 8,
6, 2
`

var _ = Describe("Analyzer", func() {
	var (
		mockCtrl     *gomock.Controller
		notifierMock *notificationMock.MockNotifier
		sourceMk     *sourceMock.MockSource

		ctx    context.Context
		out    *bytes.Buffer
		logger *zap.SugaredLogger

		globalConfig = config.Config{Environment: "test", Namespace: "stats"}
	)

	BeforeEach(func() {
		ctx = context.Background()
		out = &bytes.Buffer{}
		logger = zap.NewNop().Sugar()

		mockCtrl = gomock.NewController(GinkgoT())
		notifierMock = notificationMock.NewMockNotifier(mockCtrl)
		sourceMk = sourceMock.NewMockSource(mockCtrl)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	Describe("New()", func() {
		It("When all good it properly builds analyzer instance", func() {
			a, err := New(NewAnalyzerInput{
				Ctx:           ctx,
				DatasetName:   "ten",
				RawYamlConfig: fixture.LoadFixture("dataset-inline.yaml"),
				Notifiers:     []notification.Notifier{notifierMock},
				GlobalConfig:  globalConfig,
				Out:           out,
				Logger:        logger,
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(a.datasetName).To(Equal("ten"))
			Expect(a.source.Kind()).To(Equal("inline"))
			Expect(a.notifiers[0]).To(Equal(notifierMock))
			Expect(a.globalConfig).To(Equal(globalConfig))
		})

		It("When no source specified returns error", func() {
			_, err := New(NewAnalyzerInput{
				Ctx:           ctx,
				DatasetName:   "empty",
				RawYamlConfig: "",
				Logger:        logger,
			})

			Expect(err).To(Equal(ErrSourceNotSpecified))
		})

		It("When source fails to initialize returns error", func() {
			_, err := New(NewAnalyzerInput{
				Ctx:           ctx,
				DatasetName:   "queue",
				RawYamlConfig: "sqs: {}\n",
				Logger:        logger,
			})

			Expect(err).To(Equal(sqs.ErrNoQueueSpecified))
		})

		It("When pods source requested without kubernetes client returns error", func() {
			_, err := New(NewAnalyzerInput{
				Ctx:           ctx,
				DatasetName:   "pods",
				RawYamlConfig: "pods:\n  selector:\n    app: samples\n",
				Logger:        logger,
			})

			Expect(err).To(Equal(pods.ErrNoK8sClient))
		})

		It("When pods source requested it uses provided kubernetes client", func() {
			a, err := New(NewAnalyzerInput{
				Ctx:           ctx,
				DatasetName:   "pods",
				RawYamlConfig: "pods:\n  selector:\n    app: samples\n",
				K8sService:    podsMock.NewMockK8SClient(mockCtrl),
				Logger:        logger,
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(a.source.Kind()).To(Equal("pods"))
		})

		It("When source provided it skips config parsing", func() {
			sourceMk.EXPECT().Kind().Return("mock").AnyTimes()

			a, err := New(NewAnalyzerInput{
				Ctx:         ctx,
				DatasetName: "provided",
				Source:      sourceMk,
				Logger:      logger,
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(a.source).To(Equal(sourceMk))
		})
	})

	Describe("Run()", func() {
		var a *Analyzer

		Context("With inline source", func() {
			BeforeEach(func() {
				var err error
				a, err = New(NewAnalyzerInput{
					Ctx:           ctx,
					DatasetName:   "ten",
					RawYamlConfig: fixture.LoadFixture("dataset-inline.yaml"),
					GlobalConfig:  globalConfig,
					Out:           out,
					Logger:        logger,
				})
				Expect(err).ToNot(HaveOccurred())
			})

			It("Prints arrays and statistics", func() {
				summary, err := a.Run(ctx)

				Expect(err).ToNot(HaveOccurred())
				Expect(summary).To(Equal(stat.Summary{Count: 10, Minimum: 2, Maximum: 201, Mean: 99, Median: 101}))
				Expect(out.String()).To(Equal(tenValuesReport))
				Expect(a.Close()).To(Succeed())
			})

			It("Is repeatable", func() {
				_, err := a.Run(ctx)
				Expect(err).ToNot(HaveOccurred())
				out.Reset()

				_, err = a.Run(ctx)
				Expect(err).ToNot(HaveOccurred())
				Expect(out.String()).To(Equal(tenValuesReport))
			})
		})

		Context("With mocked source", func() {
			BeforeEach(func() {
				sourceMk.EXPECT().Kind().Return("mock").AnyTimes()

				a = &Analyzer{
					datasetName:  "mocked",
					source:       sourceMk,
					globalConfig: globalConfig,
					out:          out,
					logger:       logger,
				}
			})

			It("When load fails proxies error and prints nothing", func() {
				sourceMk.EXPECT().Load(ctx).Return(nil, errors.New("connection refused"))

				summary, err := a.Run(ctx)

				Expect(summary).To(BeZero())
				Expect(err).To(MatchError("failed to load mock source: connection refused"))
				Expect(out.Len()).To(BeZero())
			})

			It("When source is empty returns error and prints nothing", func() {
				sourceMk.EXPECT().Load(ctx).Return([]uint8{}, nil)

				summary, err := a.Run(ctx)

				Expect(summary).To(BeZero())
				Expect(err).To(Equal(stat.ErrEmptySequence))
				Expect(out.Len()).To(BeZero())
			})

			It("Notifies with summary and sorted values", func() {
				processedAt := time.Date(2020, 12, 14, 15, 0, 0, 0, time.UTC)
				now = func() time.Time { return processedAt }
				DeferCleanup(func() { now = time.Now })

				failingNotifier := notificationMock.NewMockNotifier(mockCtrl)
				a.notifiers = []notification.Notifier{failingNotifier, notifierMock}

				expectedPayload := notification.NotificationPayload{
					DatasetName:  "mocked",
					Source:       "mock",
					Summary:      stat.Summary{Count: 2, Minimum: 1, Maximum: 3, Mean: 2, Median: 2},
					SortedValues: []uint8{3, 1},
					Environment:  "test",
					Namespace:    "stats",
					ProcessedAt:  processedAt,
				}

				sourceMk.EXPECT().Load(ctx).Return([]uint8{1, 3}, nil)
				failingNotifier.EXPECT().Notify(ctx, expectedPayload).Return(errors.New("webhook down"))
				failingNotifier.EXPECT().Kind().Return("slack")
				notifierMock.EXPECT().Notify(ctx, expectedPayload).Return(nil)

				summary, err := a.Run(ctx)

				Expect(err).ToNot(HaveOccurred())
				Expect(summary.Median).To(Equal(uint8(2)))
				Expect(out.String()).To(HaveSuffix("\nArray after sorting:\n3, 1\n"))
			})
		})
	})
})
