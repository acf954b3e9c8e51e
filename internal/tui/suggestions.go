package tui

import "math/rand/v2"

// Suggestions seed the compose placeholder.
var Suggestions = []string{
	"I feel really happy and excited",
	"I'm a little sad today",
	"Everything is calm and peaceful",
	"I'm full of energy and motivation",
	"I feel melancholic",
	"I'm full of hope",
	"I feel nostalgic",
	"I have a lot of anxiety",
	"I'm completely at ease",
	"I feel euphoric",
}

// Suggestion returns a random entry from Suggestions.
func Suggestion() string {
	return Suggestions[rand.IntN(len(Suggestions))]
}
