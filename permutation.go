package flipmachine

// noChoice is passed to generate for the root of the worklist, before
// any element has been chosen.
const noChoice = -1

// arrangement generates the options for an ordered selection of
// length distinct elements from 0..variables-1. For example, with 3
// variables and length 2 the selections are found in the order:
// 0,1; 0,2; 1,0; 1,2; 2,0; 2,1
type arrangement struct {
	remains []int
	left    int
}

func newArrangement(variables, length int) *arrangement {
	remains := make([]int, variables)
	for idx := range remains {
		remains[idx] = idx
	}
	return &arrangement{
		remains: remains,
		left:    length,
	}
}

// clone returns an arrangement sharing no mutable state with the
// receiver.
func (a *arrangement) clone() *arrangement {
	na := &arrangement{
		remains: make([]int, len(a.remains)),
		left:    a.left,
	}
	copy(na.remains, a.remains)
	return na
}

// generate is provided with the previously-chosen element and returns
// the elements now available for the next position, in ascending
// order. An empty result means the selection is complete.
func (a *arrangement) generate(lastChosen int) []int {
	if lastChosen != noChoice {
		for idx, elem := range a.remains {
			if elem == lastChosen {
				a.remains = append(a.remains[:idx], a.remains[idx+1:]...)
				break
			}
		}
		a.left -= 1
	}
	if a.left == 0 {
		return nil
	}
	return a.remains
}
