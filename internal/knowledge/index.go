package knowledge

import (
	"sort"
	"strings"
	"sync"

	"github.com/insurebot/backend/internal/storage/models"
)

// Index is the mutable, append-only collection of knowledge learned from
// call recordings. The conversation engine and the training pipeline
// share one instance; the mutex covers the HTTP surface, logical
// operations remain single-writer.
type Index struct {
	mu    sync.RWMutex
	items []models.ExtractedKnowledge
}

func NewIndex() *Index {
	return &Index{}
}

// Append adds items in order. Duplicates are kept; the index records
// every extraction, it does not deduplicate.
func (idx *Index) Append(items ...models.ExtractedKnowledge) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.items = append(idx.items, items...)
}

// Replace swaps the whole collection, used when loading persisted state.
func (idx *Index) Replace(items []models.ExtractedKnowledge) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.items = append([]models.ExtractedKnowledge(nil), items...)
}

// Search returns items whose query contains the search string, whose
// response contains it, or any of whose keywords appears inside it.
// Results are ordered by descending confidence; ties keep insertion
// order.
func (idx *Index) Search(query string) []models.ExtractedKnowledge {
	lower := strings.ToLower(query)

	idx.mu.RLock()
	var matched []models.ExtractedKnowledge
	for _, item := range idx.items {
		if idx.matches(item, lower) {
			matched = append(matched, item)
		}
	}
	idx.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Confidence > matched[j].Confidence
	})

	return matched
}

func (idx *Index) matches(item models.ExtractedKnowledge, lowerQuery string) bool {
	if strings.Contains(strings.ToLower(item.Query), lowerQuery) {
		return true
	}
	for _, keyword := range item.Keywords {
		if strings.Contains(lowerQuery, keyword) {
			return true
		}
	}
	return strings.Contains(strings.ToLower(item.Response), lowerQuery)
}

// All returns a copy of every item in insertion order.
func (idx *Index) All() []models.ExtractedKnowledge {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return append([]models.ExtractedKnowledge(nil), idx.items...)
}

func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.items)
}

func (idx *Index) Clear() {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.items = nil
}
