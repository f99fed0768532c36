package bench

import (
	"gonum.org/v1/gonum/stat"
)

// InstanceResult is the score of one solved instance.
type InstanceResult struct {
	Name         string // instance identifier (file stem or seed hex)
	Connectivity uint32 // KM1
	Feasible     bool
	ElapsedSecs  float64 // solve wall time; zero when unknown
}

// Summary aggregates instance results for one track or suite.
type Summary struct {
	Count    int
	Feasible int

	TotalKM1  uint64
	MeanKM1   float64
	StdDevKM1 float64
	MinKM1    uint32
	MaxKM1    uint32

	TotalSecs float64
	MeanSecs  float64
}

// Summarize computes suite statistics over instance results. The standard
// deviation is the sample standard deviation; it is zero for fewer than two
// results.
func Summarize(results []InstanceResult) Summary {
	s := Summary{Count: len(results)}
	if len(results) == 0 {
		return s
	}

	km1s := make([]float64, len(results))
	s.MinKM1 = results[0].Connectivity
	for i, r := range results {
		km1s[i] = float64(r.Connectivity)
		s.TotalKM1 += uint64(r.Connectivity)
		if r.Connectivity < s.MinKM1 {
			s.MinKM1 = r.Connectivity
		}
		if r.Connectivity > s.MaxKM1 {
			s.MaxKM1 = r.Connectivity
		}
		if r.Feasible {
			s.Feasible++
		}
		s.TotalSecs += r.ElapsedSecs
	}

	s.MeanKM1 = stat.Mean(km1s, nil)
	if len(km1s) > 1 {
		s.StdDevKM1 = stat.StdDev(km1s, nil)
	}
	s.MeanSecs = s.TotalSecs / float64(len(results))

	return s
}
