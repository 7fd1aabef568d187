package crm

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/farxc/carteira-devedores/internal/auth"
	"github.com/farxc/carteira-devedores/internal/store"
	"github.com/farxc/carteira-devedores/internal/validation"
	"github.com/google/uuid"
)

func taskID(t store.Task) string { return t.ID }

type TaskService struct {
	store *store.Storage
	now   func() time.Time
}

func NewTaskService(s *store.Storage) *TaskService {
	return &TaskService{store: s, now: time.Now}
}

func (svc *TaskService) WithClock(now func() time.Time) *TaskService {
	svc.now = now
	return svc
}

type TaskInput struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	AssigneeID  string    `json:"assignee_id"`
	ClientID    string    `json:"client_id"`
	DueDate     time.Time `json:"due_date"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
}

type TaskFilter struct {
	AssigneeID string
	ClientID   string
	Status     string
	Overdue    bool
}

func (in TaskInput) apply(t *store.Task) error {
	t.Title = strings.TrimSpace(in.Title)
	t.Description = in.Description
	t.AssigneeID = in.AssigneeID
	t.ClientID = in.ClientID
	t.DueDate = in.DueDate
	t.Status = in.Status
	if t.Status == "" {
		t.Status = store.TaskPending
	}
	t.Priority = in.Priority
	if t.Priority == "" {
		t.Priority = "medium"
	}
	return validation.Struct(*t)
}

// List returns matching tasks ordered by due date, undated tasks last.
// Agents only see tasks assigned to them.
func (svc *TaskService) List(ctx context.Context, f TaskFilter, s auth.Session) ([]store.Task, error) {
	all, err := svc.store.Tasks.List(ctx)
	if err != nil {
		return nil, err
	}
	if !s.IsSupervisor() {
		f.AssigneeID = s.UserID
	}

	now := svc.now()
	out := []store.Task{}
	for _, t := range all {
		if f.AssigneeID != "" && t.AssigneeID != f.AssigneeID {
			continue
		}
		if f.ClientID != "" && t.ClientID != f.ClientID {
			continue
		}
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		if f.Overdue && !IsOverdue(t, now) {
			continue
		}
		out = append(out, t)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].DueDate, out[j].DueDate
		if a.IsZero() != b.IsZero() {
			return b.IsZero()
		}
		return a.Before(b)
	})
	return out, nil
}

func IsOverdue(t store.Task, now time.Time) bool {
	return t.Status != store.TaskDone && !t.DueDate.IsZero() && t.DueDate.Before(now)
}

// Create assigns the task to its author when no assignee is given. Agents
// may only create tasks for themselves.
func (svc *TaskService) Create(ctx context.Context, in TaskInput, s auth.Session) (*store.Task, error) {
	if in.AssigneeID == "" {
		in.AssigneeID = s.UserID
	}
	if !s.IsSupervisor() && in.AssigneeID != s.UserID {
		return nil, auth.ErrForbidden
	}

	t := store.Task{ID: uuid.NewString(), CreatedAt: svc.now().UTC()}
	if err := in.apply(&t); err != nil {
		return nil, err
	}

	err := svc.store.Tasks.Update(ctx, func(items []store.Task) ([]store.Task, error) {
		return append(items, t), nil
	})
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (svc *TaskService) Update(ctx context.Context, id string, in TaskInput, s auth.Session) (*store.Task, error) {
	return svc.mutate(ctx, id, s, func(t *store.Task) error {
		if in.AssigneeID == "" {
			in.AssigneeID = t.AssigneeID
		}
		if !s.IsSupervisor() && in.AssigneeID != s.UserID {
			return auth.ErrForbidden
		}
		next := *t
		if err := in.apply(&next); err != nil {
			return err
		}
		*t = next
		return nil
	})
}

func (svc *TaskService) SetStatus(ctx context.Context, id, status string, s auth.Session) (*store.Task, error) {
	return svc.mutate(ctx, id, s, func(t *store.Task) error {
		next := *t
		next.Status = status
		if err := validation.Struct(next); err != nil {
			return err
		}
		*t = next
		return nil
	})
}

func (svc *TaskService) Delete(ctx context.Context, id string, s auth.Session) error {
	return svc.store.Tasks.Update(ctx, func(items []store.Task) ([]store.Task, error) {
		i := indexOf(items, id, taskID)
		if i < 0 {
			return nil, ErrTaskNotFound
		}
		if !s.IsSupervisor() && items[i].AssigneeID != s.UserID {
			return nil, auth.ErrForbidden
		}
		return remove(items, i), nil
	})
}

func (svc *TaskService) mutate(ctx context.Context, id string, s auth.Session, fn func(t *store.Task) error) (*store.Task, error) {
	var result store.Task
	err := svc.store.Tasks.Update(ctx, func(items []store.Task) ([]store.Task, error) {
		i := indexOf(items, id, taskID)
		if i < 0 {
			return nil, ErrTaskNotFound
		}
		if !s.IsSupervisor() && items[i].AssigneeID != s.UserID {
			return nil, auth.ErrForbidden
		}
		if err := fn(&items[i]); err != nil {
			return nil, err
		}
		result = items[i]
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
