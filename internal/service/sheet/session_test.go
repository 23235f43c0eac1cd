package sheet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dinerboard/internal/model"
	"dinerboard/internal/service/rangefill"
)

func nursingHomeSession(t *testing.T) *Session {
	t.Helper()
	profile := model.AccountProfile{ID: 900, Name: "행복요양원", Type: model.AccountTypeNursingHome}
	persisted := []model.RawRecord{
		{"date": "2025-02-03", "breakfast": 10, "lunch": 20, "dinner": 30, "ceremony": 5},
	}
	s := Open(nil, profile, nil, persisted, 2025, 2, 20)
	require.Len(t, s.Rows, 28)
	require.Equal(t, 25, s.Rows[2].Total)
	return s
}

func TestEditRecomputesTotal(t *testing.T) {
	s := nursingHomeSession(t)
	before := s.Rows

	require.NoError(t, s.Edit(3, model.KeyCeremony, "15"))
	assert.Equal(t, 35, s.Rows[2].Total)
	assert.Equal(t, 5, before[2].Ceremony, "edit must not touch the previous slice")
	assert.Equal(t, 5, s.Baseline[2].Ceremony)

	require.NoError(t, s.Edit(1, model.KeyNote, "휴무"))
	assert.Equal(t, "휴무", s.Rows[0].Note)

	changes := s.Changes()
	require.Len(t, changes, 2)
	assert.Equal(t, "2025-02-01", changes[0].Date)
	assert.True(t, s.Dirty())

	s.MarkPersisted()
	assert.Empty(t, s.Changes())
	assert.False(t, s.Dirty())
}

func TestEditRejectsBadInput(t *testing.T) {
	s := nursingHomeSession(t)

	assert.ErrorIs(t, s.Edit(0, model.KeyLunch, 1), ErrDayOutOfRange)
	assert.ErrorIs(t, s.Edit(29, model.KeyLunch, 1), ErrDayOutOfRange)
	assert.ErrorIs(t, s.Edit(1, model.KeyTotal, 1), ErrReadOnlyField)
	assert.ErrorIs(t, s.Edit(1, model.KeyDate, "2025-02-02"), ErrReadOnlyField)
	assert.ErrorIs(t, s.Edit(1, model.KeyLunch, "abc"), ErrInvalidField)
	assert.ErrorIs(t, s.Edit(1, model.KeyLunch, -3), ErrInvalidField)
	assert.ErrorIs(t, s.Edit(1, model.KeyLunch, "1e19"), ErrInvalidField)
	assert.ErrorIs(t, s.Edit(1, "unknown", 1), ErrInvalidField)

	assert.Empty(t, s.Changes())
}

func TestRangeFill(t *testing.T) {
	s := nursingHomeSession(t)

	// 没有修饰键时不进入选择
	s.PointerDown(rangefill.Cell{Row: 0, Col: 1}, false)
	assert.Equal(t, rangefill.PhaseIdle, s.Selector.Phase())

	s.PointerDown(rangefill.Cell{Row: 2, Col: 3}, true)
	s.PointerEnter(rangefill.Cell{Row: 0, Col: 1})
	s.PointerUp()
	require.Equal(t, rangefill.PhasePrompting, s.Selector.Phase())

	assert.ErrorIs(t, s.ConfirmFill("많이"), rangefill.ErrInvalidValue)
	assert.Equal(t, rangefill.PhasePrompting, s.Selector.Phase())
	assert.Empty(t, s.Changes())

	require.NoError(t, s.ConfirmFill("5"))
	assert.Equal(t, rangefill.PhaseIdle, s.Selector.Phase())
	for i := 0; i < 3; i++ {
		assert.Equal(t, 5, s.Rows[i].Breakfast)
		assert.Equal(t, 5, s.Rows[i].Lunch)
		assert.Equal(t, 5, s.Rows[i].Dinner)
	}
	// 경관식不在选区内
	assert.Equal(t, 5, s.Rows[0].Total)
	assert.Equal(t, 10, s.Rows[2].Total)
	assert.Len(t, s.Changes(), 3)

	assert.Equal(t, 15, s.Summary().Totals[model.KeyLunch])
}

func TestCancelFillLeavesRowsUntouched(t *testing.T) {
	s := nursingHomeSession(t)
	s.PointerDown(rangefill.Cell{Row: 0, Col: 1}, true)
	s.PointerUp()
	s.CancelFill()

	assert.Equal(t, rangefill.PhaseIdle, s.Selector.Phase())
	assert.ErrorIs(t, s.ConfirmFill("3"), rangefill.ErrNotPrompting)
	assert.Empty(t, s.Changes())
}

func TestView(t *testing.T) {
	s := nursingHomeSession(t)
	s.PointerDown(rangefill.Cell{Row: 1, Col: 2}, true)

	v := s.View()
	assert.Equal(t, "selecting", v.Phase)
	require.NotNil(t, v.Selection)
	assert.Equal(t, 1, v.Selection.Cells())
	assert.Equal(t, 20, v.WorkingDays)
	assert.Equal(t, 30, v.Summary.Totals[model.KeyDinner])
	assert.Equal(t, "none", v.Formula)
	assert.False(t, v.Dirty)

	// 视图与会话不共享行
	v.Rows[0].Lunch = 99
	assert.Equal(t, 0, s.Rows[0].Lunch)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore(0)
	s := nursingHomeSession(t)

	token := store.Add(s)
	require.NotEmpty(t, token)
	assert.Equal(t, token, s.Token)
	assert.Equal(t, 1, store.Count())

	err := store.Update(token, func(s *Session) error {
		return s.Edit(1, model.KeyLunch, 7)
	})
	require.NoError(t, err)

	v, err := store.View(token)
	require.NoError(t, err)
	assert.Equal(t, 7, v.Rows[0].Lunch)
	assert.Equal(t, 1, v.Changed)

	_, err = store.View("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	store.Delete(token)
	assert.Equal(t, 0, store.Count())
	assert.ErrorIs(t, store.Update(token, func(*Session) error { return nil }), ErrSessionNotFound)
}

func TestMemoryStoreExpires(t *testing.T) {
	store := NewMemoryStore(10 * time.Millisecond)
	token := store.Add(nursingHomeSession(t))

	time.Sleep(30 * time.Millisecond)
	_, err := store.View(token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemoryStoreSaveOutsideLock(t *testing.T) {
	store := NewMemoryStore(0)
	token := store.Add(nursingHomeSession(t))
	other := store.Add(nursingHomeSession(t))
	require.NoError(t, store.Update(token, func(s *Session) error {
		return s.Edit(1, model.KeyLunch, 7)
	}))

	wd := 22
	saved, v, err := store.Save(token, &wd, func(p model.AccountProfile, year, month int, changes []model.DinerRow, workingDays int) error {
		assert.Equal(t, model.AccountID(900), p.ID)
		assert.Equal(t, 2025, year)
		assert.Equal(t, 2, month)
		assert.Equal(t, 22, workingDays)
		require.Len(t, changes, 1)
		assert.Equal(t, 7, changes[0].Lunch)

		// 保存期间存储仍可用：其他会话可读，同一会话可继续编辑
		_, err := store.View(other)
		require.NoError(t, err)
		return store.Update(token, func(s *Session) error {
			return s.Edit(2, model.KeyLunch, 9)
		})
	})
	require.NoError(t, err)
	assert.Equal(t, 1, saved)
	assert.Equal(t, 22, v.WorkingDays)
	assert.Equal(t, 1, v.Changed, "edit made during the save stays unsaved")
	assert.True(t, v.Dirty)
	assert.Equal(t, 7, v.Rows[0].Lunch)

	_, _, err = store.Save(token, nil, func(model.AccountProfile, int, int, []model.DinerRow, int) error {
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)
	v, err = store.View(token)
	require.NoError(t, err)
	assert.Equal(t, 1, v.Changed)

	saved, v, err = store.Save(token, nil, func(model.AccountProfile, int, int, []model.DinerRow, int) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, 1, saved)
	assert.False(t, v.Dirty)

	_, _, err = store.Save("missing", nil, func(model.AccountProfile, int, int, []model.DinerRow, int) error { return nil })
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMerge(t *testing.T) {
	s := nursingHomeSession(t)

	applied := s.Merge([]model.RawRecord{
		{"date": "2025-02-03", "ceremony": 0, "note": "수정"},
		{"date": "2025/02/10", "lunch": "40", "dinner": -5},
		{"date": "2025-03-01", "lunch": 99},
		{"lunch": 1},
	})
	assert.Equal(t, 2, applied)
	assert.Equal(t, 20, s.Rows[2].Total)
	assert.Equal(t, "수정", s.Rows[2].Note)
	assert.Equal(t, 40, s.Rows[9].Lunch)
	assert.Equal(t, 0, s.Rows[9].Dinner)
	assert.Equal(t, 40, s.Rows[9].Total)
	assert.Len(t, s.Changes(), 2)
	assert.Equal(t, 5, s.Baseline[2].Ceremony)
}
