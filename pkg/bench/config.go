package bench

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/hyperbench/pkg/errors"
)

// Config describes a benchmark suite: which tracks to run, how many instances
// per track, and the shared solve parameters.
//
// Example suite file:
//
//	k = 64
//	epsilon = 0.03
//	effort = 2
//	out = "results"
//
//	[[track]]
//	size = 10000
//	nonces = 10
//
//	[[track]]
//	size = 50000
//	nonces = 5
type Config struct {
	K          uint32  `toml:"k"`
	Epsilon    float64 `toml:"epsilon"`
	Effort     uint32  `toml:"effort"`
	Refinement *uint32 `toml:"refinement"`
	Out        string  `toml:"out"`

	Tracks []TrackConfig `toml:"track"`
}

// TrackConfig selects one track within a suite.
type TrackConfig struct {
	Size      uint32 `toml:"size"`
	Nonces    uint32 `toml:"nonces"`
	SeedStart uint64 `toml:"seed_start"`
}

// DefaultConfig returns a single-track suite with the standard benchmark
// parameters.
func DefaultConfig() Config {
	return Config{
		K:       defaultK,
		Epsilon: defaultEpsilon,
		Effort:  2,
		Out:     "results",
		Tracks:  []TrackConfig{{Size: 10000, Nonces: 10}},
	}
}

// LoadConfig reads a TOML suite file, applying defaults for omitted fields
// and validating the result.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "suite config %s", path)
	}

	cfg := DefaultConfig()
	cfg.Tracks = nil
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "suite config %s", path)
	}
	if len(cfg.Tracks) == 0 {
		cfg.Tracks = DefaultConfig().Tracks
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the suite parameters.
func (c Config) Validate() error {
	if err := errors.ValidateSolveParams(c.K, c.Epsilon, c.Effort); err != nil {
		return err
	}
	for _, track := range c.Tracks {
		if err := errors.ValidateTrack(track.Size); err != nil {
			return err
		}
		if track.Nonces == 0 {
			return errors.New(errors.ErrCodeInvalidParams, "track %d: nonces must be positive", track.Size)
		}
	}
	return nil
}
