package knowledge

import "strings"

// FAQ is one static question/answer entry tagged for keyword lookup.
type FAQ struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Category string   `json:"category"`
	Keywords []string `json:"keywords"`
}

// Product describes one insurance product in the static catalog.
type Product struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	Description  string   `json:"description"`
	KeyFeatures  []string `json:"key_features"`
	Eligibility  []string `json:"eligibility"`
	PremiumRange string   `json:"premium_range"`
}

// PolicyInfo captures coverage rules for one policy type.
type PolicyInfo struct {
	Type         string   `json:"type"`
	Coverage     string   `json:"coverage"`
	Exclusions   []string `json:"exclusions"`
	ClaimProcess []string `json:"claim_process"`
}

// Store is the immutable reference knowledge loaded once at startup.
// It is a pure lookup table; nothing here mutates after construction.
type Store struct {
	faqs     []FAQ
	products []Product
	policies []PolicyInfo
}

func NewStore(faqs []FAQ, products []Product, policies []PolicyInfo) *Store {
	return &Store{
		faqs:     faqs,
		products: products,
		policies: policies,
	}
}

// NewSeededStore builds a Store over the built-in reference data.
func NewSeededStore() *Store {
	return NewStore(seedFAQs, seedProducts, seedPolicies)
}

func (s *Store) FAQs() []FAQ {
	return s.faqs
}

func (s *Store) Products() []Product {
	return s.products
}

func (s *Store) Policies() []PolicyInfo {
	return s.policies
}

// MatchFAQ returns the first FAQ whose keywords appear in the utterance.
func (s *Store) MatchFAQ(utterance string) (FAQ, bool) {
	lower := strings.ToLower(utterance)
	for _, faq := range s.faqs {
		for _, keyword := range faq.Keywords {
			if strings.Contains(lower, strings.ToLower(keyword)) {
				return faq, true
			}
		}
	}
	return FAQ{}, false
}

// HasFAQKeyword reports whether any static FAQ keyword appears in the
// utterance. Intent classification uses this without picking an answer.
func (s *Store) HasFAQKeyword(utterance string) bool {
	_, ok := s.MatchFAQ(utterance)
	return ok
}

// ProductsByType filters the catalog by product type. An empty type
// returns the whole catalog.
func (s *Store) ProductsByType(productType string) []Product {
	if productType == "" {
		return s.products
	}

	var matched []Product
	for _, p := range s.products {
		if p.Type == productType {
			matched = append(matched, p)
		}
	}
	return matched
}

// PolicyByType finds policy rules by type name, case-insensitive.
func (s *Store) PolicyByType(policyType string) (PolicyInfo, bool) {
	for _, p := range s.policies {
		if strings.EqualFold(p.Type, policyType) {
			return p, true
		}
	}
	return PolicyInfo{}, false
}
