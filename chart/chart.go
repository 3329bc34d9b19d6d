package chart

// Chart is the ordered sequence of state sets S[0..n] produced by a
// recognizer run over an n-token input. Once the recognizer finishes, the
// chart is immutable: no later component mutates it.
type Chart struct {
	states []*StateSet
}

// NewChart preallocates a chart with n+1 empty state sets, S[0] through
// S[n].
func NewChart(n int) *Chart {
	states := make([]*StateSet, n+1)
	for i := range states {
		states[i] = NewStateSet()
	}
	return &Chart{states: states}
}

// Len returns the number of state sets in the chart (n+1 for an n-token
// input).
func (c *Chart) Len() int {
	return len(c.states)
}

// At returns state set S[i].
func (c *Chart) At(i int) *StateSet {
	return c.states[i]
}

// Accepting returns every item in the chart's final state set that
// satisfies the accepting condition for the given start symbol name: rule
// head equals start, the item spans the whole input (start == 0, end ==
// len(chart)-1), and the item is complete.
func (c *Chart) Accepting(startName string) []*Item {
	if len(c.states) == 0 {
		return nil
	}
	last := c.states[len(c.states)-1]
	n := len(c.states) - 1
	var roots []*Item
	last.Each(func(it *Item) {
		if it.Complete() && it.Start == 0 && it.End == n && it.Rule.Head.Name() == startName {
			roots = append(roots, it)
		}
	})
	return roots
}
