package projection

// ledger is a running balance table keyed by element id. It remembers
// insertion order so that totals are summed in the same order every run;
// ranging over a Go map would make the float sums nondeterministic.
type ledger struct {
	values map[string]float64
	order  []string
}

func newLedger() *ledger {
	return &ledger{values: make(map[string]float64)}
}

// get returns the balance for id and whether it is present.
func (l *ledger) get(id string) (float64, bool) {
	v, ok := l.values[id]
	return v, ok
}

// set writes the balance for id, appending id to the order on first write.
func (l *ledger) set(id string, v float64) {
	if _, ok := l.values[id]; !ok {
		l.order = append(l.order, id)
	}
	l.values[id] = v
}

// remove drops id. A later set re-appends it at the end.
func (l *ledger) remove(id string) {
	if _, ok := l.values[id]; !ok {
		return
	}
	delete(l.values, id)
	for i, k := range l.order {
		if k == id {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
}

// sum totals every balance currently held.
func (l *ledger) sum() float64 {
	total := 0.0
	for _, id := range l.order {
		total += l.values[id]
	}
	return total
}

func (l *ledger) len() int {
	return len(l.order)
}
