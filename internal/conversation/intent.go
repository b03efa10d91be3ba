package conversation

import (
	"strings"

	"github.com/insurebot/backend/internal/knowledge"
)

// Intent is the classified purpose of a user utterance.
type Intent string

const (
	IntentGreeting       Intent = "greeting"
	IntentProductInquiry Intent = "product_inquiry"
	IntentFAQ            Intent = "faq"
	IntentPricing        Intent = "pricing"
	IntentClaims         Intent = "claims"
	IntentRecommendation Intent = "recommendation"
	IntentGeneral        Intent = "general"
)

type intentRule struct {
	intent  Intent
	matches func(utterance string) bool
}

// Classifier resolves intents through an ordered rule table, evaluated
// top to bottom, first match wins. The order is load-bearing:
// product_inquiry outranks faq, and faq outranks pricing and claims, so
// an utterance matching several rules resolves to the earliest one.
type Classifier struct {
	rules []intentRule
}

func NewClassifier(store *knowledge.Store) *Classifier {
	return &Classifier{
		rules: []intentRule{
			{IntentGreeting, containsAny("hello", "hi", "hey", "good morning", "good afternoon", "good evening", "namaste")},
			{IntentProductInquiry, containsAny("life insurance", "health insurance", "term insurance", "motor insurance", "travel insurance")},
			{IntentFAQ, store.HasFAQKeyword},
			{IntentPricing, containsAny("premium", "cost", "price")},
			{IntentClaims, containsAny("claim", "settlement")},
			{IntentRecommendation, containsAny("recommend", "suggest", "best for me")},
		},
	}
}

// Classify returns the first matching intent, defaulting to general.
// Classification never fails.
func (c *Classifier) Classify(utterance string) Intent {
	for _, rule := range c.rules {
		if rule.matches(utterance) {
			return rule.intent
		}
	}
	return IntentGeneral
}

func containsAny(keywords ...string) func(string) bool {
	return func(utterance string) bool {
		for _, keyword := range keywords {
			if strings.Contains(utterance, keyword) {
				return true
			}
		}
		return false
	}
}
