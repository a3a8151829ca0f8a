package pattern

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CacheSize is the default number of classified templates kept in memory.
// Template vocabularies are tiny; this mostly bounds hostile HTTP input.
const CacheSize = 1024

type cacheEntry struct {
	ct  ClassifiedTemplate
	err error
}

// Cache memoizes a Classifier. Failures are cached too so that a bad
// template repeated across requests is rejected without re-matching.
type Cache struct {
	classifier *Classifier
	entries    *lru.Cache[string, cacheEntry]
}

// NewCache wraps c with an LRU of the given size (CacheSize when <= 0).
func NewCache(c *Classifier, size int) *Cache {
	if c == nil {
		c = defaultClassifier
	}
	if size <= 0 {
		size = CacheSize
	}
	entries, _ := lru.New[string, cacheEntry](size)
	return &Cache{classifier: c, entries: entries}
}

// Classify returns the cached classification, computing it on a miss.
func (c *Cache) Classify(template string) (ClassifiedTemplate, error) {
	key := strings.ToLower(strings.TrimSpace(template))
	if e, ok := c.entries.Get(key); ok {
		return e.ct, e.err
	}
	ct, err := c.classifier.Classify(template)
	c.entries.Add(key, cacheEntry{ct: ct, err: err})
	return ct, err
}

// ClassifyAll classifies each template through the cache.
func (c *Cache) ClassifyAll(templates []string) ([]ClassifiedTemplate, error) {
	if len(templates) == 0 {
		return nil, &UnrecognizedTemplateError{Reason: "no template configured"}
	}
	out := make([]ClassifiedTemplate, 0, len(templates))
	for _, t := range templates {
		ct, err := c.Classify(t)
		if err != nil {
			return nil, err
		}
		out = append(out, ct)
	}
	return out, nil
}

// Len reports the number of cached templates.
func (c *Cache) Len() int {
	return c.entries.Len()
}
