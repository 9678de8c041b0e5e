package session

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/crtsim/internal/crt"
)

var _ = Describe("Scheduler", func() {
	var (
		s     *Session
		views stubViews
	)

	BeforeEach(func() {
		views = newStubViews()
		var err error
		s, err = New(views.views(), crt.DefaultConfiguration())
		Expect(err).NotTo(HaveOccurred())
	})

	It("starts stopped", func() {
		Expect(s.State()).To(Equal(Stopped))
	})

	Describe("start, pause and stop", func() {
		BeforeEach(func() {
			s.Start()
		})

		It("runs after start", func() {
			Expect(s.State()).To(Equal(Running))
		})

		It("toggles between running and paused", func() {
			s.TogglePause()
			Expect(s.State()).To(Equal(Paused))
			s.TogglePause()
			Expect(s.State()).To(Equal(Running))
		})

		It("stops from paused and forgets the pause", func() {
			s.Pause()
			s.Stop()
			Expect(s.State()).To(Equal(Stopped))
			s.Start()
			Expect(s.State()).To(Equal(Running))
		})

		It("freezes the tick while paused but keeps drawing", func() {
			s.RunFrames(4)
			s.Pause()
			calls := views.screen.calls
			s.RunFrames(4)
			Expect(s.Snapshot().Tick).To(Equal(int64(4)))
			Expect(views.screen.calls).To(BeNumerically(">", calls))
		})
	})

	Describe("visibility", func() {
		It("stops while hidden and resumes running", func() {
			s.Start()
			s.SetVisible(false)
			Expect(s.State()).To(Equal(Stopped))

			ran, err := s.Step()
			Expect(ran).To(BeFalse())
			Expect(err).NotTo(HaveOccurred())

			s.SetVisible(true)
			Expect(s.State()).To(Equal(Running))
		})

		It("comes back paused when the user had paused", func() {
			s.Start()
			s.Pause()
			s.SetVisible(false)
			Expect(s.State()).To(Equal(Stopped))
			s.SetVisible(true)
			Expect(s.State()).To(Equal(Paused))
		})

		It("does not start a session that was never started", func() {
			s.SetVisible(false)
			s.SetVisible(true)
			Expect(s.State()).To(Equal(Stopped))
		})

		It("starts when unpaused while stopped", func() {
			s.Pause()
			s.TogglePause()
			Expect(s.State()).To(Equal(Running))
		})
	})

	Describe("restart", func() {
		It("blanks every view and runs again", func() {
			cfg := crt.DefaultConfiguration()
			cfg.Mode = crt.ModeLissajous
			Expect(s.SetConfiguration(cfg)).To(Succeed())
			s.Start()
			s.RunFrames(10)
			s.Pause()

			screen, lateral, top := views.screen.fills, views.lateral.fills, views.top.fills
			s.Restart()

			Expect(s.State()).To(Equal(Running))
			Expect(s.Snapshot().TrailLen).To(BeZero())
			Expect(views.screen.fills).To(Equal(screen + 1))
			Expect(views.lateral.fills).To(Equal(lateral + 1))
			Expect(views.top.fills).To(Equal(top + 1))
		})
	})

	Describe("Run", func() {
		It("waits while stopped and draws once started", func(ctx SpecContext) {
			runCtx, cancel := context.WithCancel(ctx)
			defer cancel()

			done := make(chan error, 1)
			go func() { done <- s.Run(runCtx, 250) }()

			Consistently(func() int64 { return s.Snapshot().Stats.Frames }, "60ms", "10ms").Should(BeZero())

			s.Start()
			Eventually(func() int64 { return s.Snapshot().Stats.Frames }, "2s", "10ms").Should(BeNumerically(">=", 3))

			s.Stop()
			time.Sleep(20 * time.Millisecond)
			frames := s.Snapshot().Stats.Frames
			Consistently(func() int64 { return s.Snapshot().Stats.Frames }, "60ms", "10ms").Should(Equal(frames))

			cancel()
			Eventually(done, "2s").Should(Receive(MatchError(context.Canceled)))
		}, SpecTimeout(5*time.Second))
	})
})
