package flap

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/splitflap/internal/charset"
)

type tickCounter struct{ n int }

func (c *tickCounter) Name() string    { return "ticks" }
func (c *tickCounter) Observe(f Frame) { c.n++ }
func (c *tickCounter) Value() float64  { return float64(c.n) }
func (c *tickCounter) Reset()          { c.n = 0 }

var _ = Describe("Run", func() {
	var cfg Config

	BeforeEach(func() {
		cfg = DefaultConfig()
		cfg.Step = 10 * time.Millisecond
	})

	It("should record every frame until convergence", func() {
		result, err := Run(context.Background(), cfg, "7", WithMetric(&tickCounter{}))
		Expect(err).NotTo(HaveOccurred())

		Expect(result.Converged).To(BeTrue())
		Expect(result.Ticks).To(Equal(7))
		Expect(result.Frames).To(HaveLen(7))
		Expect(result.Times).To(HaveLen(7))
		Expect(result.Times[0]).To(Equal(time.Duration(0)))
		Expect(result.Times[6]).To(Equal(60 * time.Millisecond))
		Expect(result.Frames[6].Previous).To(Equal("6"))
		Expect(result.Frames[6].Current).To(Equal("7"))
		Expect(result.Metrics).To(HaveKeyWithValue("ticks", 7.0))
	})

	It("should start from the initial value already settled", func() {
		cfg.InitialValue = "5"
		result, err := Run(context.Background(), cfg, "7")
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Ticks).To(Equal(2))
		Expect(result.Frames[0].Previous).To(Equal("5"))
	})

	It("should produce no frames when already at the target", func() {
		cfg.InitialValue = "42"
		result, err := Run(context.Background(), cfg, "42")
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Frames).To(BeEmpty())
		Expect(result.Converged).To(BeTrue())
	})

	It("should settle sanitized goals", func() {
		cfg.Charset = charset.MustFromString(charset.Alpha)
		result, err := Run(context.Background(), cfg, "HI!")
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Converged).To(BeTrue())
		Expect(result.Frames[len(result.Frames)-1].Current).To(Equal("HIA"))
	})

	It("should stop on a cancelled context", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := Run(ctx, cfg, "9")
		Expect(err).To(MatchError(context.Canceled))
	})

	It("should reject invalid configuration", func() {
		cfg.Step = 0
		_, err := Run(context.Background(), cfg, "1")
		Expect(err).To(MatchError(ErrInvalidStep))
	})
})
