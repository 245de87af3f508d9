package matching

import (
	"strconv"
	"strings"
)

// Penalty is one named term of a candidate score.
type Penalty struct {
	Name   string
	Points int
}

// Breakdown lists the penalty terms that contributed to a score.
type Breakdown []Penalty

// Total sums the terms.
func (b Breakdown) Total() int {
	total := 0
	for _, p := range b {
		total += p.Points
	}
	return total
}

// Points returns the points recorded under name.
func (b Breakdown) Points(name string) int {
	for _, p := range b {
		if p.Name == name {
			return p.Points
		}
	}
	return 0
}

func (b Breakdown) String() string {
	if len(b) == 0 {
		return "none"
	}
	parts := make([]string, len(b))
	for i, p := range b {
		parts[i] = p.Name + "=" + strconv.Itoa(p.Points)
	}
	return strings.Join(parts, " ")
}

// add records a term. Zero terms are dropped and negative terms are never
// produced by the scoring functions.
func (b *Breakdown) add(name string, points int) {
	if points <= 0 {
		return
	}
	*b = append(*b, Penalty{Name: name, Points: points})
}

// Scored pairs a candidate with its score.
type Scored[T any] struct {
	Candidate T
	Score     int
	Breakdown Breakdown
	// Index is the candidate's position in the input list.
	Index int
}

// pickBest returns the index of the lowest total. The first candidate reaching
// the minimum wins.
func pickBest(scores []Breakdown) int {
	best := -1
	bestScore := 0
	for i, b := range scores {
		total := b.Total()
		if best < 0 || total < bestScore {
			best = i
			bestScore = total
		}
	}
	return best
}
