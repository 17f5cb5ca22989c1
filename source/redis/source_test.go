package redis

import (
	"context"
	"fmt"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/AirHelp/samplestats/source"
)

var _ = Describe("Source", func() {
	var logger *zap.SugaredLogger

	BeforeEach(func() {
		logger = zap.NewNop().Sugar()
	})

	Describe("New", func() {
		var config Config

		AfterEach(func() {
			config = Config{}
		})

		Context("When hosts list empty", func() {
			It("Returns error", func() {
				config.Key = "samples"

				s, err := New(&config, logger)

				Expect(*s).To(BeZero())
				Expect(err).To(Equal(fmt.Errorf("hosts list cannot be empty")))
			})
		})

		Context("When list key empty", func() {
			It("Returns error", func() {
				config.Hosts = []string{"host:6379"}

				s, err := New(&config, logger)

				Expect(*s).To(BeZero())
				Expect(err).To(Equal(fmt.Errorf("list key cannot be empty")))
			})
		})

		Context("When host is not reachable", func() {
			It("Returns error", func() {
				config.Hosts = []string{"host:6379"}
				config.Key = "samples"

				s, err := New(&config, logger)

				Expect(*s).To(BeZero())
				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("dial tcp"))
			})
		})

		Context("When all good", func() {
			var server *miniredis.Miniredis

			BeforeEach(func() {
				var err error
				server, err = miniredis.Run()

				if err != nil {
					Fail("miniredis failed to start")
				}

				config = Config{
					Hosts: []string{server.Addr()},
					Key:   "samples",
				}
			})

			AfterEach(func() {
				server.Close()
			})

			It("Properly setup redis source", func() {
				s, err := New(&config, logger)

				Expect(err).ToNot(HaveOccurred())
				Expect(s.key).To(Equal("samples"))

				pingRes, err := s.client.Ping(context.Background()).Result()
				Expect(err).ToNot(HaveOccurred())
				Expect(pingRes).To(Equal("PONG"))
				Expect(s.Close()).To(Succeed())
			})
		})
	})

	Describe("Source receiver", func() {
		var (
			ctx context.Context

			s      Source
			server *miniredis.Miniredis
		)

		BeforeEach(func() {
			var err error
			server, err = miniredis.Run()

			ctx = context.Background()

			if err != nil {
				Fail("miniredis failed to start")
			}

			s = Source{
				key: "samples",
				client: redis.NewRing(&redis.RingOptions{
					Addrs: map[string]string{
						"h1": server.Addr(),
					},
				}),
				logger: logger,
			}
		})

		AfterEach(func() {
			_ = s.Close()
			server.Close()
			s = Source{}
		})

		Describe("Kind()", func() {
			It("Return redis string", func() {
				Expect(s.Kind()).To(Equal("redis"))
			})
		})

		Describe("Load()", func() {
			It("Returns list values in order", func() {
				for _, v := range []string{"34", "201", "190, 154", "8"} {
					if _, err := server.Push("samples", v); err != nil {
						Fail("can't push entity to Redis")
					}
				}

				res, err := s.Load(ctx)

				Expect(err).ToNot(HaveOccurred())
				Expect(res).To(Equal([]uint8{34, 201, 190, 154, 8}))
			})

			It("When key is not existing returns empty sequence", func() {
				res, err := s.Load(ctx)

				Expect(err).ToNot(HaveOccurred())
				Expect(res).To(BeEmpty())
			})

			It("When list contains invalid value returns error", func() {
				if _, err := server.Push("samples", "1", "300"); err != nil {
					Fail("can't push entity to Redis")
				}

				res, err := s.Load(ctx)

				Expect(res).To(BeNil())
				Expect(err).To(MatchError(source.ErrInvalidValue))
				Expect(err.Error()).To(ContainSubstring("list samples"))
			})

			It("When key holds wrong type returns error", func() {
				if err := server.Set("samples", "asdf"); err != nil {
					Fail("can't set entity in Redis")
				}

				res, err := s.Load(ctx)

				Expect(res).To(BeNil())
				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("WRONGTYPE"))
			})
		})
	})
})
