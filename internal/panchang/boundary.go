package panchang

const (
	// boundaryStepDays is the coarse scan step used to bracket a transition.
	boundaryStepDays = 1.0 / 24.0

	// boundaryMaxSteps bounds the scan; no limb lasts longer than three days.
	boundaryMaxSteps = 72

	// boundaryIterations halves the bracket down to well under a second.
	boundaryIterations = 30
)

// boundaryWindow finds the Julian Days at which the element with the given
// index began and will end, by scanning the mean element model in hourly steps
// and bisecting the bracketing hour. When the model disagrees with the index
// reported by the position source, the symmetric window is used instead.
func boundaryWindow(kind elementKind, jd float64, index int) (float64, float64) {
	var model MeanElements
	if kind.index(model.At(jd)) != index {
		return symmetricWindow(kind, jd, index)
	}
	start := findTransition(model, kind, index, jd, -1)
	end := findTransition(model, kind, index, jd, 1)
	return start, end
}

// findTransition walks from jd in direction dir (+1 or -1) until the element
// index changes, then bisects the last step.
func findTransition(model MeanElements, kind elementKind, index int, jd, dir float64) float64 {
	inside := jd
	for i := 0; i < boundaryMaxSteps; i++ {
		step := inside + dir*boundaryStepDays
		if kind.index(model.At(step)) != index {
			return bisectTransition(model, kind, index, inside, step)
		}
		inside = step
	}
	return inside
}

func bisectTransition(model MeanElements, kind elementKind, index int, inside, outside float64) float64 {
	for i := 0; i < boundaryIterations; i++ {
		mid := (inside + outside) / 2
		if kind.index(model.At(mid)) == index {
			inside = mid
		} else {
			outside = mid
		}
	}
	return (inside + outside) / 2
}
