package conversation

import (
	"fmt"
	"strings"
)

// generateResponse builds the per-intent response. Pure string
// construction; all state mutation happened before this call.
func (e *Engine) generateResponse(intent Intent, utterance string) string {
	switch intent {
	case IntentGreeting:
		return e.greetingResponse()
	case IntentProductInquiry:
		return e.productResponse(utterance)
	case IntentFAQ:
		return e.faqResponse(utterance)
	case IntentPricing:
		return e.pricingResponse()
	case IntentClaims:
		return e.claimsResponse()
	case IntentRecommendation:
		return e.recommendationResponse()
	default:
		return e.generalResponse()
	}
}

var greetingOpeners = []string{
	"Hello! I'm your personal insurance assistant. I'm here to help you understand and find the right insurance coverage for your needs.",
	"Hi there! Welcome to InsureBot. I can help you with life insurance, health insurance, and answer any questions you might have.",
	"Good day! I'm here to make insurance simple and accessible for you. What would you like to know about today?",
}

func (e *Engine) greetingResponse() string {
	greeting := greetingOpeners[e.pick(len(greetingOpeners))]

	if e.profile.Name != "" {
		greeting = strings.Replace(greeting, "Hello!", "Hello "+e.profile.Name+"!", 1)
		return greeting + " How can I assist you today?"
	}

	return greeting + " May I know your name so I can personalize our conversation?"
}

func (e *Engine) productResponse(utterance string) string {
	var productType string
	if strings.Contains(utterance, "life") {
		productType = "life"
	} else if strings.Contains(utterance, "health") {
		productType = "health"
	}

	products := e.store.ProductsByType(productType)
	if len(products) == 0 {
		return "I'd be happy to help you with insurance products. We offer life insurance, health insurance, motor insurance, and more. Which type interests you most?"
	}

	product := products[0]

	var features strings.Builder
	for _, feature := range product.KeyFeatures {
		features.WriteString("• ")
		features.WriteString(feature)
		features.WriteString("\n")
	}

	return fmt.Sprintf(`Great question about %s! %s.

Key features include:
%s
The premium range is %s. Would you like me to explain more about the coverage details or help you with eligibility requirements?`,
		product.Name, product.Description, features.String(), product.PremiumRange)
}

const faqFollowUp = "\n\nIs there anything specific about this you'd like me to explain further?"

func (e *Engine) faqResponse(utterance string) string {
	// Learned knowledge outranks the static FAQ table when the top hit
	// clears the confidence floor.
	if e.searcher != nil {
		learned := e.searcher.SearchKnowledge(utterance)
		if len(learned) > 0 && learned[0].Confidence > learnedConfidenceFloor {
			return learned[0].Response + faqFollowUp
		}
	}

	if faq, ok := e.store.MatchFAQ(utterance); ok {
		return faq.Answer + faqFollowUp
	}

	return "That's a great question! Let me help you with that. Could you be more specific about what aspect of insurance you'd like to know about?"
}

func (e *Engine) pricingResponse() string {
	name := e.profile.Name
	if name == "" {
		name = "there"
	}

	return fmt.Sprintf(`Hi %s! Insurance premiums depend on several factors like your age, health condition, coverage amount, and the type of policy you choose.

For example:
• Term life insurance can start from as low as ₹500 per month
• Health insurance for a family typically ranges from ₹8,000 to ₹25,000 per year
• The younger and healthier you are, the lower your premiums will be

To give you an accurate quote, I'd need to know a bit more about you. What's your age and what type of coverage are you looking for?`, name)
}

func (e *Engine) claimsResponse() string {
	return `Filing an insurance claim is straightforward. Here's the general process:

1. **Immediate notification** - Contact your insurer within 30 days of the incident
2. **Documentation** - Gather all required documents (medical reports, bills, etc.)
3. **Claim form** - Fill out the claim form completely and accurately
4. **Submission** - Submit everything to your insurer (online submission is fastest)
5. **Follow-up** - Track your claim status regularly

Most insurers now offer online claim filing and 24/7 customer support. The typical settlement time is 15-30 days for straightforward claims.

Do you have a specific claim situation you need help with?`
}

// recommendationResponse composes paragraphs from the age bracket and
// family size; a paragraph is omitted when the underlying fact is
// unknown.
func (e *Engine) recommendationResponse() string {
	var b strings.Builder

	if e.profile.Name != "" {
		b.WriteString(e.profile.Name + ", ")
	}
	b.WriteString("based on what I know about your situation, here are my recommendations:\n\n")

	age := e.profile.Age
	if age > 0 && age < 30 {
		bracket := "late"
		if age < 25 {
			bracket = "early"
		}
		fmt.Fprintf(&b, `**For someone in their %s twenties:**
• Start with a term life insurance policy (10-15 times your annual income)
• Consider a basic health insurance plan
• Premiums will be very affordable at your age

`, bracket)
	} else if age >= 30 {
		bracket := "forties or above"
		if age < 40 {
			bracket = "thirties"
		}
		fmt.Fprintf(&b, `**For someone in their %s:**
• Comprehensive term life insurance is essential
• Family health insurance with higher coverage
• Consider investment-linked insurance plans

`, bracket)
	}

	if e.profile.FamilySize > 1 {
		fmt.Fprintf(&b, `**For your family of %d:**
• Family floater health insurance plan
• Adequate life insurance coverage for income protection
• Consider children's education and future planning

`, e.profile.FamilySize)
	}

	b.WriteString("Would you like me to provide specific product recommendations and premium estimates based on your profile?")

	return b.String()
}

var generalOpeners = []string{
	"That's an interesting question about insurance. Let me help you understand this better.",
	"I'd be happy to explain that for you. Insurance can seem complex, but I'll make it simple.",
	"Great question! Let me provide you with clear information about this.",
}

func (e *Engine) generalResponse() string {
	opener := generalOpeners[e.pick(len(generalOpeners))]

	return opener + `

I can help you with:
• Life insurance planning and products
• Health insurance coverage options
• Premium calculations and comparisons
• Claims process and documentation
• Policy recommendations based on your needs

What specific aspect would you like to explore first?`
}
