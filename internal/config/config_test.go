package config_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/dopsim/internal/config"
	"github.com/san-kum/dopsim/internal/dynamo"
)

var _ = Describe("Config", func() {
	var dir string

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "dopsim-config")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(os.RemoveAll, dir)
	})

	It("has valid defaults", func() {
		cfg := config.DefaultConfig()
		Expect(cfg.Model).To(Equal("exp"))
		Expect(cfg.Integrator).To(Equal("dop54"))
		Expect(cfg.Validate()).To(Succeed())
	})

	It("round-trips through yaml", func() {
		path := filepath.Join(dir, "run.yaml")
		cfg := config.DefaultConfig()
		cfg.Model = "oscillator"
		cfg.Solver.Tolerance = 1e-9
		cfg.Params.Omega = 3

		Expect(config.Save(path, cfg)).To(Succeed())
		loaded, err := config.Load(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded).To(Equal(cfg))
	})

	It("keeps defaults for keys missing from the file", func() {
		path := filepath.Join(dir, "partial.yaml")
		Expect(os.WriteFile(path, []byte("model: decay\nsolver:\n  tolerance: 1.0e-8\n"), 0644)).To(Succeed())

		cfg, err := config.Load(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Model).To(Equal("decay"))
		Expect(cfg.Solver.Tolerance).To(Equal(1e-8))
		Expect(cfg.Solver.MaxDt).To(Equal(config.DefaultMaxDt))
		Expect(cfg.Samples).To(Equal(config.DefaultSamples))
	})

	It("reports missing files", func() {
		_, err := config.Load(filepath.Join(dir, "missing.yaml"))
		Expect(os.IsNotExist(err)).To(BeTrue())
	})

	DescribeTable("rejects out of range settings",
		func(mutate func(*config.Config)) {
			cfg := config.DefaultConfig()
			mutate(cfg)
			Expect(cfg.Validate()).To(MatchError(dynamo.ErrParameterBounds))
		},
		Entry("zero dt", func(c *config.Config) { c.Solver.Dt = 0 }),
		Entry("negative dt_max", func(c *config.Config) { c.Solver.MaxDt = -1 }),
		Entry("zero tolerance", func(c *config.Config) { c.Solver.Tolerance = 0 }),
		Entry("shrinking growth", func(c *config.Config) { c.Solver.Growth = 0.5 }),
		Entry("shrink above one", func(c *config.Config) { c.Solver.Shrink = 1.5 }),
		Entry("zero shrink", func(c *config.Config) { c.Solver.Shrink = 0 }),
		Entry("zero end time", func(c *config.Config) { c.EndTime = 0 }),
		Entry("negative dim", func(c *config.Config) { c.Dim = -1 }),
		Entry("no samples", func(c *config.Config) { c.Samples = 0 }),
		Entry("oscillator at rest", func(c *config.Config) { c.Model = "oscillator"; c.Params.Omega = 0 }),
		Entry("negative omega", func(c *config.Config) { c.Model = "oscillator"; c.Params.Omega = -2 }),
	)
})

var _ = Describe("Presets", func() {
	It("returns a copy of a known preset", func() {
		cfg := config.GetPreset("exp", "napier")
		Expect(cfg).NotTo(BeNil())
		Expect(cfg.Dim).To(Equal(100))
		Expect(cfg.MaxSteps).To(Equal(config.DefaultMaxSteps))

		cfg.Dim = 1
		Expect(config.GetPreset("exp", "napier").Dim).To(Equal(100))
	})

	It("returns nil for unknown names", func() {
		Expect(config.GetPreset("exp", "nonexistent")).To(BeNil())
		Expect(config.GetPreset("nonexistent", "napier")).To(BeNil())
	})

	It("lists presets sorted", func() {
		Expect(config.ListPresets("exp")).To(Equal([]string{"coarse", "long", "napier"}))
		Expect(config.ListPresets("nonexistent")).To(BeNil())
	})

	It("only ships valid presets", func() {
		for model := range config.Presets {
			for _, name := range config.ListPresets(model) {
				Expect(config.GetPreset(model, name).Validate()).To(Succeed(), "%s/%s", model, name)
			}
		}
	})
})

var _ = Describe("NBody", func() {
	const valid = `
SettingName: three-body
NumberOfBodies: 3
Mass: [1.0, 2.0, 3.5]
Position:
  - [0.0, 0.0, 0.0]
  - [1.0, 0.0, 0.0]
  - [0.0, 1.0, 0.0]
`

	It("parses PascalCase keys", func() {
		nb, err := config.ParseProblem([]byte(valid))
		Expect(err).NotTo(HaveOccurred())
		Expect(nb.SettingName).To(Equal("three-body"))
		Expect(nb.NumberOfBodies).To(Equal(3))
		Expect(nb.Position[1]).To(Equal([]float64{1, 0, 0}))
		Expect(nb.TotalMass()).To(Equal(6.5))
		Expect(nb.Check()).To(Succeed())
	})

	It("loads from disk", func() {
		dir, err := os.MkdirTemp("", "dopsim-problem")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(os.RemoveAll, dir)

		path := filepath.Join(dir, "problem.yaml")
		Expect(os.WriteFile(path, []byte(valid), 0644)).To(Succeed())

		nb, err := config.LoadProblem(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(nb.Check()).To(Succeed())
	})

	It("rejects a mass list of the wrong length", func() {
		nb := &config.NBody{NumberOfBodies: 2, Mass: []float64{1}, Position: [][]float64{{0}, {1}}}
		Expect(nb.Check()).To(MatchError(config.ErrMassCount))
	})

	It("rejects a position list of the wrong length", func() {
		nb := &config.NBody{NumberOfBodies: 2, Mass: []float64{1, 1}, Position: [][]float64{{0}}}
		Expect(nb.Check()).To(MatchError(config.ErrPositionCount))
	})

	It("accepts an empty problem", func() {
		Expect((&config.NBody{}).Check()).To(Succeed())
	})

	It("surfaces yaml errors", func() {
		_, err := config.ParseProblem([]byte("NumberOfBodies: [oops"))
		Expect(err).To(HaveOccurred())
	})
})
