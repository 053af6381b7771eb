package storage

import "sync"

// MemoryOptions is the default in-process option store. Hosts with durable
// configuration storage plug in their own interfaces.OptionStore instead.
type MemoryOptions struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryOptions() *MemoryOptions {
	return &MemoryOptions{
		values: make(map[string]string),
	}
}

func (m *MemoryOptions) Get(name string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.values[name]
}

func (m *MemoryOptions) Set(name, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[name] = value
}
