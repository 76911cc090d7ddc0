package inmemdb

import (
	"sort"
	"sync"

	"github.com/myousuf-code/StudyWiseAI/core/assistant"
	"github.com/myousuf-code/StudyWiseAI/core/career"
	"github.com/myousuf-code/StudyWiseAI/core/progress"
	"github.com/myousuf-code/StudyWiseAI/core/reminder"
	"github.com/myousuf-code/StudyWiseAI/core/studyplan"
	"github.com/myousuf-code/StudyWiseAI/core/user"
)

type (
	// DB is a process-local database, one table per aggregate.
	DB struct {
		user      *table[user.User]
		plan      *table[studyplan.StudyPlan]
		session   *table[studyplan.Session]
		record    *table[progress.Record]
		reminder  *table[reminder.Reminder]
		chat      *table[assistant.ChatMessage]
		counselor *table[career.Session]
	}

	table[T any] struct {
		sync.RWMutex
		pkCount int
		rows    map[int]*T
	}
)

func Open() *DB {
	return &DB{
		user:      newTable[user.User](),
		plan:      newTable[studyplan.StudyPlan](),
		session:   newTable[studyplan.Session](),
		record:    newTable[progress.Record](),
		reminder:  newTable[reminder.Reminder](),
		chat:      newTable[assistant.ChatMessage](),
		counselor: newTable[career.Session](),
	}
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[int]*T)}
}

// nextPK must be called with the write lock held.
func (t *table[T]) nextPK() int {
	t.pkCount++
	return t.pkCount
}

// filter returns copies of the rows matching keep, ordered by primary key. Must be called with a lock held.
func (t *table[T]) filter(keep func(*T) bool) []T {
	ids := make([]int, 0, len(t.rows))
	for id, row := range t.rows {
		if keep == nil || keep(row) {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)

	rows := make([]T, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, *t.rows[id])
	}
	return rows
}
