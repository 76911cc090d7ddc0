package inmemdb

import (
	"cmp"
	"context"
	"sort"

	"github.com/myousuf-code/StudyWiseAI/core"
	"github.com/myousuf-code/StudyWiseAI/core/studyplan"
)

type studyPlanRepository struct {
	plans    *table[studyplan.StudyPlan]
	sessions *table[studyplan.Session]
}

var _ studyplan.Repository = (*studyPlanRepository)(nil)

func NewStudyPlanRepository(db *DB) *studyPlanRepository {
	return &studyPlanRepository{plans: db.plan, sessions: db.session}
}

func (repo *studyPlanRepository) CreatePlan(_ context.Context, plan studyplan.StudyPlan) (studyplan.StudyPlan, error) {
	repo.plans.Lock()
	defer repo.plans.Unlock()

	plan.ID = repo.plans.nextPK()
	repo.plans.rows[plan.ID] = &plan
	return plan, nil
}

func (repo *studyPlanRepository) GetPlan(_ context.Context, userID, id int) (studyplan.StudyPlan, error) {
	repo.plans.RLock()
	defer repo.plans.RUnlock()

	if plan, ok := repo.plans.rows[id]; ok && plan.UserID == userID {
		return *plan, nil
	}
	return studyplan.StudyPlan{}, studyplan.ErrNotFound
}

func (repo *studyPlanRepository) QueryPlans(_ context.Context, userID int, activeOnly bool, ordering []core.DBOrdering) ([]studyplan.StudyPlan, error) {
	repo.plans.RLock()
	defer repo.plans.RUnlock()

	plans := repo.plans.filter(func(p *studyplan.StudyPlan) bool {
		return p.UserID == userID && (!activeOnly || p.IsActive)
	})
	sortPlans(plans, ordering)
	return plans, nil
}

func (repo *studyPlanRepository) UpdatePlan(_ context.Context, plan studyplan.StudyPlan) (studyplan.StudyPlan, error) {
	repo.plans.Lock()
	defer repo.plans.Unlock()

	if _, ok := repo.plans.rows[plan.ID]; !ok {
		return studyplan.StudyPlan{}, studyplan.ErrNotFound
	}
	repo.plans.rows[plan.ID] = &plan
	return plan, nil
}

func (repo *studyPlanRepository) CreateSession(_ context.Context, sess studyplan.Session) (studyplan.Session, error) {
	repo.sessions.Lock()
	defer repo.sessions.Unlock()

	sess.ID = repo.sessions.nextPK()
	repo.sessions.rows[sess.ID] = &sess
	return sess, nil
}

func (repo *studyPlanRepository) GetSession(_ context.Context, userID, id int) (studyplan.Session, error) {
	repo.sessions.RLock()
	defer repo.sessions.RUnlock()

	if sess, ok := repo.sessions.rows[id]; ok && sess.UserID == userID {
		return *sess, nil
	}
	return studyplan.Session{}, studyplan.ErrSessionNotFound
}

func (repo *studyPlanRepository) QuerySessions(_ context.Context, planID int) ([]studyplan.Session, error) {
	repo.sessions.RLock()
	defer repo.sessions.RUnlock()

	sessions := repo.sessions.filter(func(s *studyplan.Session) bool {
		return s.StudyPlanID != nil && *s.StudyPlanID == planID
	})
	sort.SliceStable(sessions, func(i, j int) bool { return sessions[i].StartTime.After(sessions[j].StartTime) })
	return sessions, nil
}

func (repo *studyPlanRepository) UpdateSession(_ context.Context, sess studyplan.Session) (studyplan.Session, error) {
	repo.sessions.Lock()
	defer repo.sessions.Unlock()

	if _, ok := repo.sessions.rows[sess.ID]; !ok {
		return studyplan.Session{}, studyplan.ErrSessionNotFound
	}
	repo.sessions.rows[sess.ID] = &sess
	return sess, nil
}

// sortPlans mirrors the SQL ordering: newest first unless ordering names a known field.
// Only the first known field is honoured.
func sortPlans(plans []studyplan.StudyPlan, ordering []core.DBOrdering) {
	compare := func(a, b studyplan.StudyPlan) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	}
	for _, ord := range ordering {
		var c func(a, b studyplan.StudyPlan) int
		switch ord.Field {
		case "title":
			c = func(a, b studyplan.StudyPlan) int { return cmp.Compare(a.Title, b.Title) }
		case "subject":
			c = func(a, b studyplan.StudyPlan) int { return cmp.Compare(a.Subject, b.Subject) }
		case "created_at":
			c = func(a, b studyplan.StudyPlan) int { return a.CreatedAt.Compare(b.CreatedAt) }
		case "updated_at":
			c = func(a, b studyplan.StudyPlan) int { return a.UpdatedAt.Compare(b.UpdatedAt) }
		case "estimated_duration":
			c = func(a, b studyplan.StudyPlan) int { return cmp.Compare(a.EstimatedDuration, b.EstimatedDuration) }
		}
		if c == nil {
			continue
		}
		if ord.Ascending {
			compare = c
		} else {
			compare = func(a, b studyplan.StudyPlan) int { return c(b, a) }
		}
		break
	}
	sort.SliceStable(plans, func(i, j int) bool { return compare(plans[i], plans[j]) < 0 })
}
