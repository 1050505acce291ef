package score

import (
	"fmt"
	"math"

	"github.com/Cmaury/Meeting-Summary-Automation/internal/model"
)

// Below this the win probability underflows and v/w use their limits
const minWinProbability = 2.222758749e-162

// Engine applies two-player TrueSkill updates with draws disallowed.
type Engine struct {
	mu    float64
	sigma float64
	beta  float64
	tau   float64
}

// NewEngine creates an engine with explicit prior and noise parameters
func NewEngine(mu, sigma, beta, tau float64) (*Engine, error) {
	if sigma <= 0 {
		return nil, fmt.Errorf("rating engine: sigma must be positive, got %v", sigma)
	}
	if beta <= 0 {
		return nil, fmt.Errorf("rating engine: beta must be positive, got %v", beta)
	}
	if tau < 0 {
		return nil, fmt.Errorf("rating engine: tau must not be negative, got %v", tau)
	}
	return &Engine{mu: mu, sigma: sigma, beta: beta, tau: tau}, nil
}

// Default returns an engine with the conventional TrueSkill parameters:
// mu 25, sigma 25/3, beta sigma/2, tau sigma/100.
func Default() *Engine {
	return &Engine{
		mu:    model.DefaultMu,
		sigma: model.DefaultSigma,
		beta:  model.DefaultBeta,
		tau:   model.DefaultTau,
	}
}

// Initial returns the prior rating for a newcomer
func (e *Engine) Initial() model.Rating {
	return model.Rating{Mu: e.mu, Sigma: e.sigma}
}

// Rate1v1 returns the posterior ratings after winner beat loser.
func (e *Engine) Rate1v1(winner, loser model.Rating) (model.Rating, model.Rating) {
	// dynamics noise first
	winVar := winner.Sigma*winner.Sigma + e.tau*e.tau
	loseVar := loser.Sigma*loser.Sigma + e.tau*e.tau

	c2 := 2*e.beta*e.beta + winVar + loseVar
	c := math.Sqrt(c2)
	t := (winner.Mu - loser.Mu) / c

	v := vWin(t)
	w := wWin(t, v)

	newWinner := model.Rating{
		Mu:    winner.Mu + winVar/c*v,
		Sigma: math.Sqrt(winVar * math.Max(1-winVar/c2*w, 0)),
	}
	newLoser := model.Rating{
		Mu:    loser.Mu - loseVar/c*v,
		Sigma: math.Sqrt(loseVar * math.Max(1-loseVar/c2*w, 0)),
	}
	return newWinner, newLoser
}

// vWin is the additive mean correction for a win with no draw margin
func vWin(t float64) float64 {
	denom := normCDF(t)
	if denom < minWinProbability {
		return -t
	}
	return normPDF(t) / denom
}

// wWin is the multiplicative variance correction for a win with no draw margin
func wWin(t, v float64) float64 {
	if normCDF(t) < minWinProbability {
		if t < 0 {
			return 1
		}
		return 0
	}
	return v * (v + t)
}

func normPDF(x float64) float64 {
	return math.Exp(-x*x/2) / math.Sqrt(2*math.Pi)
}

func normCDF(x float64) float64 {
	return 0.5 * math.Erfc(-x/math.Sqrt2)
}
