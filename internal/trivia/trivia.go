// Package trivia holds the rotating space facts shown above the gallery.
package trivia

import "math/rand"

var facts = []string{
	"Did you know? One million Earths could fit inside the Sun!",
	"Did you know? Venus spins backwards compared to most planets.",
	"Did you know? A day on Mercury is longer than its year.",
	"Did you know? Neutron stars can spin 600 times per second.",
	"Did you know? There are more trees on Earth than stars in the Milky Way.",
	"Did you know? The footprints on the Moon will be there for millions of years.",
	"Did you know? Jupiter has at least 95 moons.",
	"Did you know? Space is completely silent. There is no air to carry sound.",
	"Did you know? The hottest planet in our solar system is Venus.",
	"Did you know? Saturn could float in water because it's mostly gas.",
}

// Facts returns a copy of the built-in fact list.
func Facts() []string {
	out := make([]string, len(facts))
	copy(out, facts)
	return out
}

// Deck picks facts at random.
type Deck struct {
	facts []string
	pick  func(n int) int
}

// NewDeck returns a deck over the built-in facts.
func NewDeck() *Deck {
	return &Deck{facts: facts, pick: rand.Intn}
}

// NewDeckWith returns a deck over custom facts using pick to choose an index
// in [0, n). A nil pick uses math/rand.
func NewDeckWith(list []string, pick func(n int) int) *Deck {
	if pick == nil {
		pick = rand.Intn
	}
	return &Deck{facts: list, pick: pick}
}

// Next returns a fact. An empty deck returns "".
func (d *Deck) Next() string {
	if d == nil || len(d.facts) == 0 {
		return ""
	}
	i := d.pick(len(d.facts))
	if i < 0 || i >= len(d.facts) {
		i = 0
	}
	return d.facts[i]
}
