package analysis

// score compares binary predictions against truth with 1 as the positive
// class. Undefined ratios are 0.
func score(truth, pred []int) Metrics {
	var tp, fp, fn, correct int
	for i := range truth {
		switch {
		case pred[i] == 1 && truth[i] == 1:
			tp++
		case pred[i] == 1:
			fp++
		case truth[i] == 1:
			fn++
		}
		if pred[i] == truth[i] {
			correct++
		}
	}
	return Metrics{
		Accuracy:  round(ratio(correct, len(truth)), 3),
		Precision: round(ratio(tp, tp+fp), 3),
		Recall:    round(ratio(tp, tp+fn), 3),
		F1Score:   round(ratio(2*tp, 2*tp+fp+fn), 3),
	}
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
