package grocery

import "strings"

// IsOwned reports whether the candidate ingredient is already covered by a
// name in the pool. A candidate is owned when any pool name, lowercased,
// contains the lowercased candidate as a substring: "chicken" matches a pool
// entry "chicken breast". The pool name is the haystack, the candidate the
// needle. There is no tokenization, no stemming and no minimum-length guard,
// so a very short candidate ("e") will match most pool entries.
func IsOwned(candidate string, pool []string) bool {
	needle := strings.ToLower(candidate)
	for _, name := range pool {
		if strings.Contains(strings.ToLower(name), needle) {
			return true
		}
	}
	return false
}

// OwnedPool builds the name pool used for ownership checks: the union of all
// item names across the given lists, lowercased. Recompute whenever a source
// list changes.
func OwnedPool(lists ...[]GroceryItem) []string {
	var pool []string
	for _, list := range lists {
		for _, item := range list {
			pool = append(pool, strings.ToLower(item.Name))
		}
	}
	return pool
}
