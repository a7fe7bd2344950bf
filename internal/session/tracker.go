package session

import (
	"sync"

	"github.com/samulyakartem/family-expense-bot/internal/model"
)

// Tracker хранит незавершённые вводы по пользователям: не больше
// одной записи на пользователя, без персистентности — всё теряется
// при перезапуске процесса.
type Tracker interface {
	// Set безусловно перезаписывает текущую запись пользователя.
	Set(userID int64, entry model.PendingEntry)
	// Take атомарно возвращает и удаляет запись.
	Take(userID int64) (model.PendingEntry, bool)
	// Has проверяет наличие записи, не трогая её.
	Has(userID int64) bool
}

// Memory — потокобезопасная реализация Tracker на map.
type Memory struct {
	mu      sync.Mutex
	entries map[int64]model.PendingEntry
}

func NewMemory() *Memory {
	return &Memory{
		entries: make(map[int64]model.PendingEntry),
	}
}

func (m *Memory) Set(userID int64, entry model.PendingEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[userID] = entry
}

func (m *Memory) Take(userID int64) (model.PendingEntry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[userID]
	if ok {
		delete(m.entries, userID)
	}
	return entry, ok
}

func (m *Memory) Has(userID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.entries[userID]
	return ok
}
