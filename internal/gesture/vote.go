package gesture

// LabelCount is the number of votes one label received.
type LabelCount struct {
	Label string
	Count int
}

// Tally counts labels, returning them in order of first appearance.
func Tally(labels []string) []LabelCount {
	index := make(map[string]int, len(labels))
	var counts []LabelCount

	for _, l := range labels {
		i, ok := index[l]
		if !ok {
			i = len(counts)
			index[l] = i
			counts = append(counts, LabelCount{Label: l})
		}
		counts[i].Count++
	}
	return counts
}

// Vote returns the most frequent label and its count. Unknown is an ordinary
// label and can win. On a tie the label that appeared first wins.
// An empty input yields Unknown with zero votes.
func Vote(labels []string) (string, int) {
	counts := Tally(labels)
	if len(counts) == 0 {
		return Unknown, 0
	}

	best := counts[0]
	for _, c := range counts[1:] {
		if c.Count > best.Count {
			best = c
		}
	}
	return best.Label, best.Count
}
