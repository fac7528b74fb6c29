package slots

// Plan partitions candidates into the ones safe to insert and the ones to
// skip because they overlap a persisted slot (any status) or an earlier
// accepted candidate. Skipping instead of failing is what makes repeated
// generation runs idempotent.
func Plan(existing []Slot, cands []Candidate) (insert []Candidate, skipped int) {
	for _, c := range cands {
		if !c.End.After(c.Start) {
			skipped++
			continue
		}
		if overlapsAny(existing, insert, c) {
			skipped++
			continue
		}
		insert = append(insert, c)
	}
	return insert, skipped
}

func overlapsAny(existing []Slot, accepted []Candidate, c Candidate) bool {
	for _, s := range existing {
		if Overlaps(c.Start, c.End, s.Start, s.End) {
			return true
		}
	}
	for _, a := range accepted {
		if Overlaps(c.Start, c.End, a.Start, a.End) {
			return true
		}
	}
	return false
}
