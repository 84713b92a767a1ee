package analysis

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/optimize"
)

// logisticRegression is an L2-regularized binary classifier with an
// unpenalized intercept, fit by L-BFGS.
type logisticRegression struct {
	C             float64
	MaxIterations int
	Tolerance     float64

	weights   []float64
	intercept float64
}

func newLogisticRegression(maxIterations int) *logisticRegression {
	return &logisticRegression{C: 1, MaxIterations: maxIterations, Tolerance: 1e-4}
}

func (m *logisticRegression) fit(x []sparseRow, y []int, numFeatures int) error {
	if len(x) == 0 {
		return errors.New("no training samples")
	}
	if len(x) != len(y) {
		return fmt.Errorf("%d samples but %d labels", len(x), len(y))
	}

	d := numFeatures
	problem := optimize.Problem{
		Func: func(params []float64) float64 {
			w, b := params[:d], params[d]
			var loss float64
			for i, row := range x {
				z := row.dot(w) + b
				loss += softplus(z) - float64(y[i])*z
			}
			return m.C*loss + 0.5*sqNorm(w)
		},
		Grad: func(grad, params []float64) {
			w, b := params[:d], params[d]
			for j := range grad {
				grad[j] = 0
			}
			for i, row := range x {
				r := m.C * (sigmoid(row.dot(w)+b) - float64(y[i]))
				for _, f := range row {
					grad[f.index] += r * f.value
				}
				grad[d] += r
			}
			for j := 0; j < d; j++ {
				grad[j] += w[j]
			}
		},
	}

	settings := &optimize.Settings{
		MajorIterations:   m.MaxIterations,
		GradientThreshold: m.Tolerance,
	}
	res, err := optimize.Minimize(problem, make([]float64, d+1), settings, &optimize.LBFGS{})
	if res == nil {
		if err == nil {
			err = errors.New("optimizer returned no result")
		}
		return fmt.Errorf("fit logistic regression: %w", err)
	}
	// An iteration-limit stop still leaves a usable estimate.
	for _, v := range res.X {
		if math.IsNaN(v) {
			return errors.New("fit logistic regression: diverged")
		}
	}
	m.weights = append([]float64(nil), res.X[:d]...)
	m.intercept = res.X[d]
	return nil
}

func (m *logisticRegression) predict(x []sparseRow) []int {
	out := make([]int, len(x))
	for i, row := range x {
		if row.dot(m.weights)+m.intercept > 0 {
			out[i] = 1
		}
	}
	return out
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}

// softplus is log(1+e^z) without overflow.
func softplus(z float64) float64 {
	if z > 0 {
		return z + math.Log1p(math.Exp(-z))
	}
	return math.Log1p(math.Exp(z))
}

func sqNorm(w []float64) float64 {
	var s float64
	for _, v := range w {
		s += v * v
	}
	return s
}
