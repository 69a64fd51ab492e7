package session

import "context"

// MemoryStore keeps the token in process memory only.
type MemoryStore struct {
	Token string
	Saved bool

	LoadErr   error
	SaveErr   error
	DeleteErr error
}

func (m *MemoryStore) LoadToken(context.Context) (string, bool, error) {
	if m.LoadErr != nil {
		return "", false, m.LoadErr
	}
	return m.Token, m.Saved, nil
}

func (m *MemoryStore) SaveToken(_ context.Context, token string) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Token = token
	m.Saved = true
	return nil
}

func (m *MemoryStore) DeleteToken(context.Context) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.Token = ""
	m.Saved = false
	return nil
}
