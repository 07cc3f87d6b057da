package flipmachine

type node struct {
	depth     int
	value     int
	generator *arrangement
}

// forEachArrangement calls f once for every ordered selection of
// length distinct elements from 0..variables-1, in lexicographic
// order. The slice passed to f is reused between calls.
func forEachArrangement(variables, length int, f func([]int)) {
	perm := make([]int, 0, length)

	worklist := []*node{&node{
		depth:     0,
		value:     noChoice,
		generator: newArrangement(variables, length),
	}}
	l := len(worklist)

	for l != 0 {
		l -= 1
		cur := worklist[l]
		worklist = worklist[:l]

		if cur.depth > 0 {
			perm = append(perm[:cur.depth-1], cur.value)
		}

		options := cur.generator.generate(cur.value)
		optionCount := len(options)

		if optionCount == 0 {
			f(perm)

		} else {
			// Pushed in reverse so the smallest option is popped first.
			for idx := optionCount - 1; idx >= 0; idx -= 1 {
				var gen *arrangement
				if idx == 0 {
					gen = cur.generator
				} else {
					gen = cur.generator.clone()
				}
				worklist = append(worklist, &node{
					depth:     cur.depth + 1,
					value:     options[idx],
					generator: gen,
				})
			}
			l += optionCount
		}
	}
}

// ForEachTerm calls f once for every term over the given number of
// variables: every arrangement of length 1, then of length 2, and so
// on up to length variables. This is the order used by Table. The
// Term passed to f is reused between calls; copy it to retain it.
func ForEachTerm(variables int, f func(Term)) {
	for length := 1; length <= variables; length += 1 {
		forEachArrangement(variables, length, func(perm []int) {
			f(Term(perm))
		})
	}
}

// TermCount returns the number of terms over the given number of
// variables: the sum over k of variables!/(variables-k)!.
func TermCount(variables int) int {
	total, arrangements := 0, 1
	for k := 1; k <= variables; k += 1 {
		arrangements *= variables - k + 1
		total += arrangements
	}
	return total
}
