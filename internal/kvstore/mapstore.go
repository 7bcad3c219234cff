package kvstore

import "context"

// Map is a Store over a caller-owned map, used to keep visitor preferences inside the
// signed session cookie. It is scoped to a single request and not safe for concurrent use.
type Map struct {
	data     map[string]string
	onChange func()
}

// NewMap wraps data. onChange, when non-nil, runs after every write so the owner can mark
// its container dirty.
func NewMap(data map[string]string, onChange func()) *Map {
	if data == nil {
		data = make(map[string]string)
	}
	return &Map{data: data, onChange: onChange}
}

func (m *Map) Get(_ context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrEmptyKey
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Map) Set(_ context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if cur, ok := m.data[key]; ok && cur == value {
		return nil
	}
	m.data[key] = value
	if m.onChange != nil {
		m.onChange()
	}
	return nil
}

// Data exposes the underlying map.
func (m *Map) Data() map[string]string { return m.data }
