package engine_test

import (
	"bytes"
	"errors"
	"log/slog"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/limbshift/internal/blend"
	"github.com/san-kum/limbshift/internal/engine"
	"github.com/san-kum/limbshift/internal/geom"
	"github.com/san-kum/limbshift/internal/layout"
	"github.com/san-kum/limbshift/internal/solver"
	"github.com/san-kum/limbshift/internal/trial"
)

const tol = 1e-9

func beNear(v geom.Vec3) OmegaMatcher {
	return WithTransform(func(got geom.Vec3) float64 { return geom.Distance(got, v) }, BeNumerically("<", tol))
}

// lineLayout puts the hand and elbow centers at the origin with every target
// one unit away along +X.
func lineLayout() *layout.Layout {
	l := layout.Default()
	l.Shoulder = geom.Vec3{-1, 0, 0}
	l.HandCenter = geom.Vec3{0, 0, 0}
	l.ElbowCenter = geom.Vec3{0, 0, 0}
	for k := range l.Hands {
		l.Hands[k] = geom.Vec3{2, 0, 0}
	}
	for k := range l.Elbows {
		l.Elbows[k] = geom.Vec3{1, 0, 0}
	}
	return l
}

var _ = Describe("Engine", func() {
	var (
		eng    *engine.Engine
		cfg    engine.Config
		lay    *layout.Layout
		logBuf *bytes.Buffer
		sel    trial.Selection
	)

	newEngine := func() {
		var err error
		logger := slog.New(slog.NewTextHandler(logBuf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		eng, err = engine.New(cfg, lay, engine.WithLogger(logger))
		Expect(err).NotTo(HaveOccurred())
	}

	BeforeEach(func() {
		cfg = engine.DefaultConfig()
		lay = lineLayout()
		logBuf = &bytes.Buffer{}
		sel = trial.Selection{Hand: trial.HandPP, Elbow: trial.ElbowPMPP}
		newEngine()
	})

	Describe("New", func() {
		It("rejects a nil layout", func() {
			_, err := engine.New(cfg, nil)
			Expect(err).To(MatchError(engine.ErrNoLayout))
		})

		It("rejects an incomplete layout", func() {
			delete(lay.Elbows, trial.ElbowR)
			_, err := engine.New(cfg, lay)
			Expect(errors.Is(err, layout.ErrMissingTarget)).To(BeTrue())
		})

		It("rejects a negative denominator guard", func() {
			cfg.MinTargetDistance = -1
			_, err := engine.New(cfg, lay)
			Expect(errors.Is(err, engine.ErrInvalidConfig)).To(BeTrue())
		})

		It("rejects a non-positive hand length scale", func() {
			cfg.Mode = solver.BoneRelative
			cfg.Solver.HandLengthScale = 0
			_, err := engine.New(cfg, lay)
			Expect(errors.Is(err, engine.ErrInvalidConfig)).To(BeTrue())
		})
	})

	Context("when idle", func() {
		It("passes the real limb through", func() {
			in := engine.Inputs{RightHand: geom.Vec3{0.5, 0, 0}, Elbow: geom.Vec3{0.2, 0, 0}}
			f := eng.Tick(0.01, in)

			Expect(f.Phase).To(Equal(blend.Idle))
			Expect(f.VirtualHand).To(Equal(in.RightHand))
			Expect(f.VirtualElbow).To(Equal(in.Elbow))
			Expect(f.HandProgress).To(BeZero())
		})

		It("advances the clock only for positive dt", func() {
			eng.Tick(0.5, engine.Inputs{})
			eng.Tick(-1, engine.Inputs{})
			eng.Tick(math.NaN(), engine.Inputs{})
			Expect(eng.Tick(0.25, engine.Inputs{}).Time).To(BeNumerically("~", 0.75, tol))
		})
	})

	Context("with a shortened trial", func() {
		BeforeEach(func() {
			tr := trial.Trial{Condition: trial.Shortened, ShoulderAngleOffset: 90, ElbowAngleOffset: 90}
			Expect(eng.SelectTrial(sel, tr, solver.Pose{})).To(Succeed())
		})

		It("is tracking", func() {
			Expect(eng.Phase()).To(Equal(blend.Tracking))
		})

		It("solves the anchors about the up axis", func() {
			a := eng.Anchors()
			// shoulder (-1,0,0) -> elbow target (1,0,0), +90° about +Y
			Expect(a.Elbow).To(beNear(geom.Vec3{-1, 0, -2}))
			Expect(a.Hand).To(beNear(geom.Vec3{1, 0, -1}))
			Expect(a.Pinned).To(BeFalse())
		})

		It("blends proportionally to progress from the center", func() {
			in := engine.Inputs{RightHand: geom.Vec3{1, 0, 0}, Elbow: geom.Vec3{0.5, 0, 0}}
			f := eng.Tick(0.01, in)

			Expect(f.HandProgress).To(BeNumerically("~", 0.5, tol))
			Expect(f.ElbowProgress).To(BeNumerically("~", 0.5, tol))
			Expect(f.VirtualHand).To(beNear(geom.Lerp(in.RightHand, eng.Anchors().Hand, 0.5)))
			Expect(f.VirtualElbow).To(beNear(geom.Lerp(in.Elbow, eng.Anchors().Elbow, 0.5)))
		})

		It("reaches the anchors at the target", func() {
			f := eng.Tick(0.01, engine.Inputs{RightHand: geom.Vec3{2, 0, 0}, Elbow: geom.Vec3{1, 0, 0}})
			Expect(f.VirtualHand).To(beNear(eng.Anchors().Hand))
			Expect(f.VirtualElbow).To(beNear(eng.Anchors().Elbow))
		})

		It("reads the dominant hand only", func() {
			f := eng.Tick(0.01, engine.Inputs{LeftHand: geom.Vec3{2, 0, 0}})
			Expect(f.HandProgress).To(BeZero())
			Expect(f.VirtualHand).To(Equal(geom.Vec3{}))
		})

		It("returns to pass-through when the selection is cleared", func() {
			eng.ClearSelection()
			in := engine.Inputs{RightHand: geom.Vec3{2, 0, 0}, Elbow: geom.Vec3{1, 0, 0}}
			f := eng.Tick(0.01, in)
			Expect(f.Phase).To(Equal(blend.Idle))
			Expect(f.VirtualHand).To(Equal(in.RightHand))
		})

		It("keeps the anchors when the next trial targets R", func() {
			before := eng.Anchors()
			next := trial.Trial{Condition: trial.Lengthened, ShoulderAngleOffset: 10, ElbowAngleOffset: 10}
			Expect(eng.SelectTrial(trial.Selection{Hand: trial.HandMM, Elbow: trial.ElbowR}, next, solver.Pose{})).To(Succeed())

			Expect(eng.Anchors()).To(Equal(before))
			Expect(logBuf.String()).To(ContainSubstring("level=WARN"))
			_, tr, ok := eng.Selection()
			Expect(ok).To(BeTrue())
			Expect(tr).To(Equal(next))
		})

		It("rejects a trial with a non-finite angle and keeps the previous one", func() {
			before := eng.Anchors()
			bad := trial.Trial{Condition: trial.Lengthened, ShoulderAngleOffset: math.NaN()}
			err := eng.SelectTrial(sel, bad, solver.Pose{})

			var selErr *engine.SelectionError
			Expect(errors.As(err, &selErr)).To(BeTrue())
			Expect(errors.Is(err, trial.ErrInvalidAngle)).To(BeTrue())
			Expect(eng.Anchors()).To(Equal(before))
			Expect(eng.Phase()).To(Equal(blend.Tracking))
		})

		It("returns to idle on reset", func() {
			eng.Reset()
			Expect(eng.Phase()).To(Equal(blend.Idle))
			Expect(eng.Anchors()).To(Equal(solver.Anchors{}))
		})
	})

	Context("with a congruent trial", func() {
		var pose solver.Pose

		BeforeEach(func() {
			pose = solver.Pose{
				Elbow: solver.Joint{Position: geom.Vec3{0.1, 0, 0}},
				Hand:  solver.Joint{Position: geom.Vec3{0.3, 0, 0}},
			}
			tr := trial.Trial{Condition: trial.Congruent, ShoulderAngleOffset: 30, ElbowAngleOffset: 30}
			Expect(eng.SelectTrial(sel, tr, pose)).To(Succeed())
		})

		It("is disabled with anchors pinned to the real limb", func() {
			Expect(eng.Phase()).To(Equal(blend.Disabled))
			Expect(eng.Anchors().Pinned).To(BeTrue())
			Expect(eng.Anchors().Hand).To(Equal(pose.Hand.Position))
		})

		It("passes through and reports anchors at the live limb", func() {
			in := engine.Inputs{RightHand: geom.Vec3{1.7, 0, 0}, Elbow: geom.Vec3{0.9, 0, 0}}
			f := eng.Tick(0.01, in)

			Expect(f.VirtualHand).To(Equal(in.RightHand))
			Expect(f.VirtualElbow).To(Equal(in.Elbow))
			Expect(f.HandAnchor).To(Equal(in.RightHand))
			Expect(f.ElbowAnchor).To(Equal(in.Elbow))
		})
	})

	Context("with a first trial targeting R", func() {
		It("stays idle because no anchors exist yet", func() {
			tr := trial.Trial{Condition: trial.Shortened, ShoulderAngleOffset: 10}
			Expect(eng.SelectTrial(trial.Selection{Hand: trial.HandPP, Elbow: trial.ElbowR}, tr, solver.Pose{})).To(Succeed())
			Expect(eng.Phase()).To(Equal(blend.Idle))
		})
	})

	Context("with a left dominant hand", func() {
		BeforeEach(func() {
			cfg.Dominant = trial.Left
			newEngine()
			tr := trial.Trial{Condition: trial.Shortened, ShoulderAngleOffset: 90, ElbowAngleOffset: 90}
			Expect(eng.SelectTrial(sel, tr, solver.Pose{})).To(Succeed())
		})

		It("mirrors the rotation sign", func() {
			Expect(eng.Anchors().Elbow).To(beNear(geom.Vec3{-1, 0, 2}))
			Expect(eng.Anchors().Hand).To(beNear(geom.Vec3{1, 0, 1}))
		})

		It("reads the left hand", func() {
			f := eng.Tick(0.01, engine.Inputs{LeftHand: geom.Vec3{2, 0, 0}, RightHand: geom.Vec3{0, 0, 0}})
			Expect(f.HandProgress).To(BeNumerically("~", 1, tol))
			Expect(f.VirtualHand).To(beNear(eng.Anchors().Hand))
		})
	})

	Context("in bone-relative mode", func() {
		BeforeEach(func() {
			cfg.Mode = solver.BoneRelative
			newEngine()
		})

		It("solves from the live joints and stretches the forearm", func() {
			fwd := geom.Vec3{0, 0, 1}
			pose := solver.Pose{
				Shoulder: solver.Joint{Position: geom.Vec3{-1, 0, 0}, Forward: fwd},
				Elbow:    solver.Joint{Position: geom.Vec3{0, 0, 0}, Forward: fwd},
				Hand:     solver.Joint{Position: geom.Vec3{1, 0, 0}, Forward: fwd},
			}
			tr := trial.Trial{Condition: trial.Shortened, ShoulderAngleOffset: 90, ElbowAngleOffset: 90}
			Expect(eng.SelectTrial(sel, tr, pose)).To(Succeed())

			Expect(eng.Anchors().Elbow).To(beNear(geom.Vec3{-1, 0, 1}))
			Expect(eng.Anchors().Hand).To(beNear(geom.Vec3{0, 0, 1.2}))
		})

		It("solves R instead of skipping it", func() {
			tr := trial.Trial{Condition: trial.Lengthened, ShoulderAngleOffset: 5}
			Expect(eng.SelectTrial(trial.Selection{Hand: trial.HandMM, Elbow: trial.ElbowR}, tr, solver.Pose{})).To(Succeed())
			Expect(eng.Phase()).To(Equal(blend.Tracking))
			Expect(logBuf.String()).NotTo(ContainSubstring("level=WARN"))
		})
	})

	Context("with a target on top of its center", func() {
		BeforeEach(func() {
			lay.Hands[trial.HandPP] = lay.HandCenter
			newEngine()
			tr := trial.Trial{Condition: trial.Lengthened, ShoulderAngleOffset: 10, ElbowAngleOffset: 10}
			Expect(eng.SelectTrial(sel, tr, solver.Pose{})).To(Succeed())
		})

		It("never produces NaN", func() {
			in := engine.Inputs{RightHand: geom.Vec3{0.4, 0.1, 0}, Elbow: geom.Vec3{0.3, 0, 0}}
			f := eng.Tick(0.01, in)
			Expect(geom.IsFinite(f.VirtualHand)).To(BeTrue())
			Expect(f.VirtualHand).To(Equal(in.RightHand))
			Expect(f.HandProgress).To(BeZero())
		})
	})
})
