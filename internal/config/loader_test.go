package config_test

import (
	"context"
	"os"
	"runtime"
	"testing"

	"github.com/railtools/consistfix/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
				convey.So(cfg.TrainsetDir, convey.ShouldEqual, "trainset")
				convey.So(cfg.ConsistDir, convey.ShouldEqual, "consists")
				convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU()*2)
				convey.So(cfg.DryRun, convey.ShouldBeFalse)
				convey.So(cfg.SemanticMatch, convey.ShouldBeTrue)
				convey.So(cfg.TieBreakSeed, convey.ShouldEqual, 42)
				convey.So(cfg.Weights.NearDigitMaxDiff, convey.ShouldEqual, 5)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("CONSISTFIX_TRAINSET_DIR", "/data/trainset")
			_ = os.Setenv("CONSISTFIX_CONSIST_DIR", "/data/consists")
			_ = os.Setenv("CONSISTFIX_WORKER_COUNT", "4")
			_ = os.Setenv("CONSISTFIX_DRY_RUN", "true")
			_ = os.Setenv("CONSISTFIX_TIE_BREAK_SEED", "7")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.TrainsetDir, convey.ShouldEqual, "/data/trainset")
				convey.So(cfg.ConsistDir, convey.ShouldEqual, "/data/consists")
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 4)
				convey.So(cfg.DryRun, convey.ShouldBeTrue)
				convey.So(cfg.TieBreakSeed, convey.ShouldEqual, 7)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
trainset_dir: "/mnt/library/trainset"
consist_dir: "/mnt/library/consists"
worker_count: 8
explain: true
weights:
  near_digit_max_diff: 3
  coach_type_match: 200
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("CONSISTFIX_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.TrainsetDir, convey.ShouldEqual, "/mnt/library/trainset")
				convey.So(cfg.ConsistDir, convey.ShouldEqual, "/mnt/library/consists")
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 8)
				convey.So(cfg.Explain, convey.ShouldBeTrue)
				convey.So(cfg.Weights.NearDigitMaxDiff, convey.ShouldEqual, 3)
				convey.So(cfg.Weights.CoachTypeMatch, convey.ShouldEqual, 200)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
trainset_dir: "/mnt/library/trainset"
worker_count: 8
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("CONSISTFIX_CONFIG", tmpFile)
			_ = os.Setenv("CONSISTFIX_WORKER_COUNT", "2")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.TrainsetDir, convey.ShouldEqual, "/mnt/library/trainset") // From file
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 2)                       // Overridden by env
				convey.So(cfg.ConsistDir, convey.ShouldEqual, "consists")               // From defaults
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			invalidYaml := `invalid: yaml: content: [`
			tmpFile := createTempConfigFile(invalidYaml)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("CONSISTFIX_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("CONSISTFIX_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty trainset dir", func() {
			_ = os.Setenv("CONSISTFIX_TRAINSET_DIR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "trainset_dir must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty consist dir", func() {
			_ = os.Setenv("CONSISTFIX_CONSIST_DIR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "consist_dir must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("CONSISTFIX_WORKER_COUNT", "not_a_number")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"CONSISTFIX_CONFIG",
		"CONSISTFIX_TRAINSET_DIR",
		"CONSISTFIX_CONSIST_DIR",
		"CONSISTFIX_WORKER_COUNT",
		"CONSISTFIX_DRY_RUN",
		"CONSISTFIX_EXPLAIN",
		"CONSISTFIX_SEMANTIC_MATCH",
		"CONSISTFIX_TIE_BREAK_SEED",
		"CONSISTFIX_METRICS_ADDR",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "consistfix-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
