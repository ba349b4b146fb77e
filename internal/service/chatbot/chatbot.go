// internal/service/chatbot/chatbot.go
package chatbot

import (
	"strings"
)

// Rule maps trigger keywords to a canned answer. Matching is literal
// substring lookup over the lowercased message; there is no retrieval
// ranking or model behind this.
type Rule struct {
	Keywords []string
	Answer   string
}

// Bot answers portal questions from a fixed rule table. When several rules
// match, the one whose matched keyword is longest wins, so "exchange rate"
// beats "rate".
type Bot struct {
	rules    []Rule
	fallback string
}

func New(rules []Rule, fallback string) *Bot {
	return &Bot{rules: rules, fallback: fallback}
}

// Reply returns the canned answer for the message, or the fallback when no
// keyword matches.
func (b *Bot) Reply(message string) string {
	msg := strings.ToLower(message)

	best := ""
	bestLen := 0
	for _, rule := range b.rules {
		for _, kw := range rule.Keywords {
			if len(kw) > bestLen && strings.Contains(msg, strings.ToLower(kw)) {
				best = rule.Answer
				bestLen = len(kw)
			}
		}
	}

	if best == "" {
		return b.fallback
	}
	return best
}

// DefaultRules is the portal's stock rule table.
func DefaultRules() []Rule {
	return []Rule{
		{
			Keywords: []string{"exchange rate", "rates", "usd", "dollar", "euro"},
			Answer:   "Today's exchange rates are on the Rates page. The board refreshes every minute during business hours.",
		},
		{
			Keywords: []string{"dividend", "shareholder", "shares"},
			Answer:   "Shareholders can view holdings, dividend history, and projections on the Shareholder Dashboard after signing in.",
		},
		{
			Keywords: []string{"account", "open", "requirements"},
			Answer:   "Diaspora accounts can be opened online with a valid passport and proof of overseas residence. Processing takes 2-3 business days.",
		},
		{
			Keywords: []string{"transfer", "remittance", "send money"},
			Answer:   "International transfers arrive within one business day. Transfers between portal accounts are instant and free.",
		},
		{
			Keywords: []string{"invest", "investment", "fixed deposit", "bond"},
			Answer:   "We offer fixed deposits from 3 to 24 months and diaspora infrastructure bonds. See the Investments page for current yields.",
		},
	}
}

// DefaultFallback is the answer used when nothing matches.
const DefaultFallback = "I can help with exchange rates, transfers, accounts, investments, and shareholder questions. Could you rephrase that?"
