package dialog

import "sync"

// Session — диалог одного чата. Мьютекс сессии гарантирует, что
// каждый ход обрабатывается до конца прежде, чем начнётся следующий
// в том же чате. Разные чаты друг друга не блокируют.
type Session struct {
	mu    sync.Mutex
	State *State
}

// Lock захватывает сессию на время обработки одного хода
func (s *Session) Lock() {
	s.mu.Lock()
}

// Unlock освобождает сессию
func (s *Session) Unlock() {
	s.mu.Unlock()
}

// Manager хранит сессии диалогов по идентификатору чата
type Manager struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

// NewManager создаёт пустой менеджер сессий
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[int64]*Session),
	}
}

// Session возвращает сессию чата, создавая её при первом обращении
func (m *Manager) Session(chatID int64) *Session {
	m.mu.RLock()
	session, exists := m.sessions[chatID]
	m.mu.RUnlock()

	if exists {
		return session
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Перепроверяем под write-блокировкой
	if session, exists = m.sessions[chatID]; exists {
		return session
	}

	session = &Session{State: NewState()}
	m.sessions[chatID] = session
	return session
}

// Reset сбрасывает состояние диалога чата к начальному
func (m *Manager) Reset(chatID int64) {
	session := m.Session(chatID)
	session.Lock()
	defer session.Unlock()
	session.State.Reset()
}
