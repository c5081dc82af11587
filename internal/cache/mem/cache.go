package mem

import (
	"sort"
	"sync"

	"cinerank/internal/domain"
	"cinerank/internal/normalize"
)

// Cache indexes the current pool by normalized title so web forms and
// bot commands can reference films by name.
type Cache struct {
	mu    sync.RWMutex
	films map[string]domain.Film
}

func New() *Cache {
	return &Cache{
		films: make(map[string]domain.Film),
	}
}

func (c *Cache) Update(films []domain.Film) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.films = make(map[string]domain.Film)
	for i := range films {
		title := normalize.Title(films[i].Title)
		c.films[title] = films[i]
	}
}

func (c *Cache) GetByTitle(title string) (domain.Film, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	title = normalize.Title(title)
	film, ok := c.films[title]
	if !ok {
		return domain.Film{}, false
	}
	return film, true
}

func (c *Cache) GetRatings() []domain.Film {
	c.mu.RLock()
	defer c.mu.RUnlock()

	films := make([]domain.Film, 0, len(c.films))
	for _, film := range c.films {
		films = append(films, film)
	}
	sort.SliceStable(films, func(i, j int) bool {
		return films[i].Rating > films[j].Rating
	})
	return films
}
