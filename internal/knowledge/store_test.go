package knowledge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchFAQ(t *testing.T) {
	store := NewSeededStore()

	faq, ok := store.MatchFAQ("what is a deductible exactly")
	require.True(t, ok)
	assert.Equal(t, "What is a deductible in insurance?", faq.Question)

	_, ok = store.MatchFAQ("completely unrelated words")
	assert.False(t, ok)
}

// Entry order decides ties: an utterance hitting keywords of several
// FAQs resolves to the first one in the table.
func TestMatchFAQFirstEntryWins(t *testing.T) {
	store := NewSeededStore()

	// "coverage" is a keyword of several entries.
	faq, ok := store.MatchFAQ("how does coverage work")
	require.True(t, ok)
	assert.Equal(t, "What is term life insurance?", faq.Question)
}

func TestMatchFAQIsCaseInsensitive(t *testing.T) {
	store := NewSeededStore()

	_, ok := store.MatchFAQ("What Is A DEDUCTIBLE")
	assert.True(t, ok)
}

func TestProductsByType(t *testing.T) {
	store := NewSeededStore()

	life := store.ProductsByType("life")
	require.Len(t, life, 1)
	assert.Equal(t, "SecureLife Term Plan", life[0].Name)

	health := store.ProductsByType("health")
	require.Len(t, health, 1)
	assert.Equal(t, "FamilyCare Health Insurance", health[0].Name)

	assert.Empty(t, store.ProductsByType("motor"))
	assert.Len(t, store.ProductsByType(""), 2)
}

func TestPolicyByType(t *testing.T) {
	store := NewSeededStore()

	policy, ok := store.PolicyByType("life insurance")
	require.True(t, ok)
	assert.Equal(t, "Life Insurance", policy.Type)

	_, ok = store.PolicyByType("travel insurance")
	assert.False(t, ok)
}
