package roster

import (
	"slices"
	"sync"
	"time"
)

// Book holds the most recently uploaded roster
type Book struct {
	mu       sync.RWMutex
	students []StudentRecord
	source   string
	loadedAt time.Time
}

type Summary struct {
	Source   string    `json:"source"`
	Students int       `json:"students"`
	LoadedAt time.Time `json:"loadedAt"`
}

func NewBook() *Book {
	return &Book{}
}

// Load replaces the roster wholesale
func (b *Book) Load(source string, students []StudentRecord) Summary {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.students = slices.Clone(students)
	b.source = source
	b.loadedAt = time.Now()
	return b.summary()
}

func (b *Book) Students() []StudentRecord {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.students)
}

func (b *Book) Summary() Summary {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.summary()
}

func (b *Book) summary() Summary {
	return Summary{Source: b.source, Students: len(b.students), LoadedAt: b.loadedAt}
}
