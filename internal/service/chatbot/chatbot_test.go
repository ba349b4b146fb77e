package chatbot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReplyKeywordMatching(t *testing.T) {
	bot := New(DefaultRules(), DefaultFallback)

	tests := []struct {
		name    string
		message string
		want    string
	}{
		{
			name:    "rates question",
			message: "What is the USD exchange rate today?",
			want:    DefaultRules()[0].Answer,
		},
		{
			name:    "case insensitive",
			message: "DIVIDEND payout date?",
			want:    DefaultRules()[1].Answer,
		},
		{
			name:    "remittance question",
			message: "how long does a transfer take",
			want:    DefaultRules()[3].Answer,
		},
		{
			name:    "no match falls back",
			message: "tell me a joke",
			want:    DefaultFallback,
		},
		{
			name:    "empty message falls back",
			message: "",
			want:    DefaultFallback,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, bot.Reply(tt.message))
		})
	}
}

// When several rules match, the longest matched keyword wins.
func TestReplyLongestKeywordWins(t *testing.T) {
	bot := New([]Rule{
		{Keywords: []string{"rate"}, Answer: "generic"},
		{Keywords: []string{"exchange rate"}, Answer: "specific"},
	}, "fallback")

	assert.Equal(t, "specific", bot.Reply("what is the exchange rate"))
	assert.Equal(t, "generic", bot.Reply("what is the rate"))
}

func TestReplyEmptyRuleTable(t *testing.T) {
	bot := New(nil, "fallback")
	assert.Equal(t, "fallback", bot.Reply("anything at all"))
}
