package nlu_test

import (
	"testing"

	"github.com/siddugarlapati/Tailor-talk/internal/nlu"

	"github.com/stretchr/testify/assert"
)

func TestParseIntent(t *testing.T) {
	cases := []struct {
		name string
		text string
		want nlu.Intent
	}{
		{"book keyword", "I want to book a slot", nlu.IntentBook},
		{"schedule keyword", "Schedule a call for me", nlu.IntentBook},
		{"set up keyword", "can we set up a meeting", nlu.IntentBook},
		{"make an appointment keyword", "I'd like to make an appointment", nlu.IntentBook},
		{"free keyword", "are you free tomorrow", nlu.IntentCheck},
		{"available keyword", "is the afternoon available", nlu.IntentCheck},
		{"availability keyword", "check availability please", nlu.IntentCheck},
		{"slots keyword", "any slots next week?", nlu.IntentCheck},
		{"book wins over check", "book a free slot", nlu.IntentBook},
		{"case insensitive", "BOOK A SLOT", nlu.IntentBook},
		{"no keywords", "what's the weather like", nlu.IntentUnset},
		{"empty message", "", nlu.IntentUnset},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, nlu.ParseIntent(tc.text))
		})
	}
}
