package calculator

import (
	"finplan/internal/util"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/montanaflynn/stats"
)

const (
	DefaultAnnualVolatility = 0.12
	DefaultSimulations      = 1000
	monteCarloSeed          = 42
)

type MonteCarloInput struct {
	InitialCorpus        float64 `json:"initialCorpus"`
	MonthlySip           float64 `json:"monthlySip"`
	Years                int     `json:"years"`
	TargetCorpus         float64 `json:"targetCorpus"`
	ExpectedAnnualReturn float64 `json:"expectedAnnualReturn"`
	// zero means DefaultAnnualVolatility
	AnnualVolatility float64 `json:"annualVolatility"`
	// zero means DefaultSimulations
	NumSimulations int `json:"numSimulations"`
}

type MonteCarloResult struct {
	SuccessProbability float64 `json:"successProbability"`
	MedianCorpus       float64 `json:"medianCorpus"`
	P10Corpus          float64 `json:"p10Corpus"`
	P90Corpus          float64 `json:"p90Corpus"`
}

// simulate returns the final corpus of every path and how many of them
// reached the target. The generator is seeded with a constant so the same
// input always gives the same paths
func simulate(in MonteCarloInput) (finals []float64, successes int) {
	volatility := in.AnnualVolatility
	if volatility == 0 {
		volatility = DefaultAnnualVolatility
	}
	simulations := in.NumSimulations
	if simulations <= 0 {
		simulations = DefaultSimulations
	}

	months := in.Years * 12
	monthlyMean := in.ExpectedAnnualReturn / 12
	monthlyVolatility := volatility / math.Sqrt(12)

	rng := rand.New(rand.NewPCG(monteCarloSeed, monteCarloSeed))

	finals = make([]float64, simulations)
	for i := 0; i < simulations; i++ {
		corpus := in.InitialCorpus
		for m := 0; m < months; m++ {
			corpus += in.MonthlySip
			corpus *= 1 + monthlyMean + rng.NormFloat64()*monthlyVolatility
		}
		finals[i] = corpus
		if corpus >= in.TargetCorpus {
			successes++
		}
	}
	return finals, successes
}

func successProbability(successes, simulations int) float64 {
	return util.Round2(float64(successes) / float64(simulations) * 100)
}

// RunMonteCarlo simulates month-by-month growth with normally distributed
// returns and summarizes the final corpus across paths. Percentiles use the
// nearest rank, so any number of simulations has a P10 and P90
func RunMonteCarlo(in MonteCarloInput) (*MonteCarloResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if in.Years <= 0 || in.TargetCorpus <= 0 {
		return &MonteCarloResult{}, nil
	}

	finals, successes := simulate(in)

	median, err := stats.Median(finals)
	if err != nil {
		return nil, fmt.Errorf("failed to compute median corpus: %w", err)
	}
	p10, err := stats.PercentileNearestRank(finals, 10)
	if err != nil {
		return nil, fmt.Errorf("failed to compute 10th percentile: %w", err)
	}
	p90, err := stats.PercentileNearestRank(finals, 90)
	if err != nil {
		return nil, fmt.Errorf("failed to compute 90th percentile: %w", err)
	}

	return &MonteCarloResult{
		SuccessProbability: successProbability(successes, len(finals)),
		MedianCorpus:       util.Round2(median),
		P10Corpus:          util.Round2(p10),
		P90Corpus:          util.Round2(p90),
	}, nil
}

// MonteCarloSuccessProbability is the percentage of simulated paths that
// reach the target corpus. Invalid input has no probability and gives 0
func MonteCarloSuccessProbability(in MonteCarloInput) float64 {
	if in.Validate() != nil || in.Years <= 0 || in.TargetCorpus <= 0 {
		return 0
	}
	finals, successes := simulate(in)
	return successProbability(successes, len(finals))
}
