package analyzer

import "sort"

// FindPeaks returns the indices of local maxima in xs that are at least
// height tall, thinned so that surviving peaks are at least distance
// columns apart. When two candidates are closer than distance the
// stronger one wins; equal strength keeps the earlier column.
// Results are sorted in ascending index order.
func FindPeaks(xs []float64, height float64, distance int) []int {
	candidates := localMaxima(xs)

	var peaks []int
	for _, p := range candidates {
		if xs[p] >= height {
			peaks = append(peaks, p)
		}
	}
	if distance > 1 {
		peaks = thinByDistance(xs, peaks, distance)
	}
	return peaks
}

// localMaxima finds strictly-local maxima. A flat plateau counts as a
// single maximum at its middle column.
func localMaxima(xs []float64) []int {
	var maxima []int
	i := 1
	for i < len(xs)-1 {
		if xs[i] <= xs[i-1] {
			i++
			continue
		}
		// Left slope rises into i; scan across any plateau.
		j := i
		for j < len(xs)-1 && xs[j+1] == xs[i] {
			j++
		}
		if j < len(xs)-1 && xs[j+1] < xs[i] {
			maxima = append(maxima, (i+j)/2)
		}
		i = j + 1
	}
	return maxima
}

// thinByDistance drops every peak that sits within distance columns of a
// stronger surviving peak. Peaks are visited from strongest to weakest.
func thinByDistance(xs []float64, peaks []int, distance int) []int {
	order := make([]int, len(peaks))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return xs[peaks[order[a]]] > xs[peaks[order[b]]]
	})

	dropped := make([]bool, len(peaks))
	for _, k := range order {
		if dropped[k] {
			continue
		}
		for n := k - 1; n >= 0 && peaks[k]-peaks[n] < distance; n-- {
			dropped[n] = true
		}
		for n := k + 1; n < len(peaks) && peaks[n]-peaks[k] < distance; n++ {
			dropped[n] = true
		}
	}

	var kept []int
	for i, p := range peaks {
		if !dropped[i] {
			kept = append(kept, p)
		}
	}
	return kept
}
