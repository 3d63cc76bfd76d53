package fixture

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithTrainsetDir sets where asset folders are written.
func WithTrainsetDir(dir string) Option {
	return func(g *Generator) {
		if dir != "" {
			g.trainsetDir = dir
		}
	}
}

// WithConsistDir sets where .con files are written.
func WithConsistDir(dir string) Option {
	return func(g *Generator) {
		if dir != "" {
			g.consistDir = dir
		}
	}
}

// WithConsistCount sets how many consist files to generate.
func WithConsistCount(count int) Option {
	return func(g *Generator) {
		if count > 0 {
			g.consistCount = count
		}
	}
}

// WithRakeLength sets the number of wagons per consist.
func WithRakeLength(length int) Option {
	return func(g *Generator) {
		if length > 0 {
			g.rakeLength = length
		}
	}
}

// WithDriftRate sets the fraction of entries written with a stale folder
// or shifted serial.
func WithDriftRate(rate float64) Option {
	return func(g *Generator) {
		if rate >= 0 && rate <= 1 {
			g.driftRate = rate
		}
	}
}

// WithSeed seeds the generator; equal seeds produce identical trees.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}
