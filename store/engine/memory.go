package engine

import (
	"sync"

	"github.com/nvkalinin/widget-calendar/store"
)

type Memory struct {
	mu    sync.RWMutex
	store store.Sections
}

func NewMemory() *Memory {
	return &Memory{
		store: make(store.Sections, 2),
	}
}

func (m *Memory) GetVar(section, key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	vars, ok := m.store[section]
	if !ok {
		return "", false
	}

	val, ok := vars[key]
	return val, ok
}

func (m *Memory) FindSection(section string) (store.Vars, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	vars, ok := m.store[section]
	if !ok {
		return nil, false
	}

	return vars.Copy(), true
}

func (m *Memory) PutVar(section, key, val string) error {
	return m.PutSection(section, store.Vars{key: val})
}

// PutSection добавляет переменные в секцию, существующие переменные с другими ключами остаются.
func (m *Memory) PutSection(section string, vars store.Vars) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.store[section]; !ok {
		m.store[section] = make(store.Vars, len(vars))
	}
	for key, val := range vars {
		m.store[section][key] = val
	}
	return nil
}
