package analysis

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
)

// stratifiedSplit partitions sample indices into train and test sets so
// each class keeps roughly its share of the test set. The result depends
// only on labels, testFraction and seed.
func stratifiedSplit(labels []int, testFraction float64, seed uint64) (train, test []int, err error) {
	n := len(labels)
	nTest := int(math.Ceil(testFraction * float64(n)))
	nTrain := n - nTest

	classes, members := groupByClass(labels)
	for i, m := range members {
		if len(m) < 2 {
			return nil, nil, fmt.Errorf("the least populated class in y (%d) has only %d member, which is too few; the minimum number of members for any class cannot be less than 2", classes[i], len(m))
		}
	}
	if nTrain < len(classes) {
		return nil, nil, fmt.Errorf("the train size = %d should be greater or equal to the number of classes = %d", nTrain, len(classes))
	}
	if nTest < len(classes) {
		return nil, nil, fmt.Errorf("the test size = %d should be greater or equal to the number of classes = %d", nTest, len(classes))
	}

	sizes := make([]int, len(members))
	for i, m := range members {
		sizes[i] = len(m)
	}
	testCounts := apportion(sizes, nTest)

	rng := rand.New(rand.NewPCG(seed, seed))
	for i, m := range members {
		idx := append([]int(nil), m...)
		rng.Shuffle(len(idx), func(a, b int) { idx[a], idx[b] = idx[b], idx[a] })
		test = append(test, idx[:testCounts[i]]...)
		train = append(train, idx[testCounts[i]:]...)
	}
	rng.Shuffle(len(train), func(a, b int) { train[a], train[b] = train[b], train[a] })
	rng.Shuffle(len(test), func(a, b int) { test[a], test[b] = test[b], test[a] })
	return train, test, nil
}

// groupByClass returns the sorted distinct labels and the sample indices of each.
func groupByClass(labels []int) ([]int, [][]int) {
	byClass := make(map[int][]int)
	for i, l := range labels {
		byClass[l] = append(byClass[l], i)
	}
	classes := make([]int, 0, len(byClass))
	for c := range byClass {
		classes = append(classes, c)
	}
	sort.Ints(classes)
	members := make([][]int, len(classes))
	for i, c := range classes {
		members[i] = byClass[c]
	}
	return classes, members
}

// apportion splits draws across groups in proportion to sizes: floors
// first, then the leftover to the largest fractional parts.
func apportion(sizes []int, draws int) []int {
	total := 0
	for _, s := range sizes {
		total += s
	}
	out := make([]int, len(sizes))
	rem := make([]float64, len(sizes))
	assigned := 0
	for i, s := range sizes {
		exact := float64(s) / float64(total) * float64(draws)
		out[i] = int(math.Floor(exact))
		rem[i] = exact - float64(out[i])
		assigned += out[i]
	}

	order := make([]int, len(sizes))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return rem[order[a]] > rem[order[b]] })
	for _, i := range order {
		if assigned >= draws {
			break
		}
		if out[i] < sizes[i] {
			out[i]++
			assigned++
		}
	}
	return out
}
