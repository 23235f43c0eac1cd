package sheet

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"dinerboard/internal/model"
)

// ErrSessionNotFound 会话不存在或已过期
var ErrSessionNotFound = errors.New("sheet session not found")

type entry struct {
	session  *Session
	lastSeen time.Time
	saveMu   sync.Mutex
}

// MemoryStore 编辑会话的内存存储
type MemoryStore struct {
	sessions map[string]*entry
	ttl      time.Duration
	mu       sync.Mutex
}

// NewMemoryStore 创建会话存储；ttl<=0 表示不过期
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*entry),
		ttl:      ttl,
	}
}

// Add 保存会话并分配 token
func (s *MemoryStore) Add(session *Session) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked(time.Now())

	token := uuid.New().String()
	session.Token = token
	s.sessions[token] = &entry{session: session, lastSeen: time.Now()}
	return token
}

// Update 在锁内对会话执行修改；同一会话的修改串行执行
func (s *MemoryStore) Update(token string, fn func(*Session) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.getLocked(token)
	if !ok {
		return ErrSessionNotFound
	}
	return fn(e.session)
}

// SaveFunc 把快照写入持久层；在存储锁之外调用
type SaveFunc func(profile model.AccountProfile, year, month int, changes []model.DinerRow, workingDays int) error

// Save 在锁内取变更快照，锁外写入，成功后把快照并入基线。
// workingDays 为 nil 时沿用会话当前值；同一会话的保存串行执行，其他会话不受阻塞
func (s *MemoryStore) Save(token string, workingDays *int, save SaveFunc) (int, View, error) {
	s.mu.Lock()
	e, ok := s.getLocked(token)
	s.mu.Unlock()
	if !ok {
		return 0, View{}, ErrSessionNotFound
	}

	e.saveMu.Lock()
	defer e.saveMu.Unlock()

	s.mu.Lock()
	session := e.session
	changes := session.Changes()
	wd := session.WorkingDays
	if workingDays != nil {
		wd = *workingDays
	}
	profile, year, month := session.Profile, session.Year, session.Month
	s.mu.Unlock()

	if err := save(profile, year, month, changes, wd); err != nil {
		return 0, View{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if workingDays != nil {
		session.WorkingDays = wd
	}
	session.MarkSaved(changes, wd)
	return len(changes), session.View(), nil
}

// View 读取会话视图
func (s *MemoryStore) View(token string) (View, error) {
	var v View
	err := s.Update(token, func(session *Session) error {
		v = session.View()
		return nil
	})
	return v, err
}

// Delete 丢弃会话（切换账户/年月时）
func (s *MemoryStore) Delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

// Count 会话数量
func (s *MemoryStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *MemoryStore) getLocked(token string) (*entry, bool) {
	e, ok := s.sessions[token]
	if !ok {
		return nil, false
	}
	now := time.Now()
	if s.ttl > 0 && now.Sub(e.lastSeen) > s.ttl {
		delete(s.sessions, token)
		return nil, false
	}
	e.lastSeen = now
	return e, true
}

func (s *MemoryStore) purgeExpiredLocked(now time.Time) {
	if s.ttl <= 0 {
		return
	}
	for k, e := range s.sessions {
		if now.Sub(e.lastSeen) > s.ttl {
			delete(s.sessions, k)
		}
	}
}
