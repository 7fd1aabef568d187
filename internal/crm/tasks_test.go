package crm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/farxc/carteira-devedores/internal/auth"
	"github.com/farxc/carteira-devedores/internal/store"
	"github.com/farxc/carteira-devedores/internal/validation"
)

func newTaskService() *TaskService {
	return NewTaskService(newStorage()).WithClock(func() time.Time { return now })
}

func TestCreateTaskDefaults(t *testing.T) {
	ctx := context.Background()
	svc := newTaskService()

	task, err := svc.Create(ctx, TaskInput{Title: "Call ACME"}, agentE1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.AssigneeID != "e1" || task.Status != store.TaskPending || task.Priority != "medium" {
		t.Fatalf("unexpected defaults %+v", task)
	}
	if !task.CreatedAt.Equal(now) {
		t.Fatalf("expected created_at %v, got %v", now, task.CreatedAt)
	}

	if _, err := svc.Create(ctx, TaskInput{Title: "x", AssigneeID: "e2"}, agentE1); !errors.Is(err, auth.ErrForbidden) {
		t.Fatalf("expected agent assigning a task to someone else to be forbidden, got %v", err)
	}
	if _, err := svc.Create(ctx, TaskInput{Title: "x", AssigneeID: "e2"}, manager); err != nil {
		t.Fatalf("expected manager to assign tasks, got %v", err)
	}

	_, err = svc.Create(ctx, TaskInput{Status: "later", Priority: "urgent"}, agentE1)
	fields, ok := validation.Fields(err)
	if !ok || fields["title"] == "" || fields["status"] == "" || fields["priority"] == "" {
		t.Fatalf("expected title, status and priority violations, got %v", err)
	}
}

func TestListTasks(t *testing.T) {
	ctx := context.Background()
	svc := newTaskService()

	mustCreate := func(in TaskInput, s auth.Session) {
		t.Helper()
		if _, err := svc.Create(ctx, in, s); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	mustCreate(TaskInput{Title: "late", DueDate: now.Add(-time.Hour)}, agentE1)
	mustCreate(TaskInput{Title: "undated"}, agentE1)
	mustCreate(TaskInput{Title: "soon", DueDate: now.Add(time.Hour), ClientID: "c1"}, agentE1)
	mustCreate(TaskInput{Title: "done late", DueDate: now.Add(-2 * time.Hour), Status: store.TaskDone}, agentE1)
	mustCreate(TaskInput{Title: "bruno", AssigneeID: "e2"}, manager)

	all, _ := svc.List(ctx, TaskFilter{}, manager)
	if len(all) != 5 {
		t.Fatalf("expected 5 tasks for manager, got %d", len(all))
	}
	if all[0].Title != "done late" || !all[len(all)-1].DueDate.IsZero() {
		t.Fatalf("expected due date order with undated last, got %+v", all)
	}

	mine, _ := svc.List(ctx, TaskFilter{AssigneeID: "e2"}, agentE1)
	if len(mine) != 4 {
		t.Fatalf("expected agent to only see own tasks, got %d", len(mine))
	}

	overdue, _ := svc.List(ctx, TaskFilter{Overdue: true}, agentE1)
	if len(overdue) != 1 || overdue[0].Title != "late" {
		t.Fatalf("expected only the open late task, got %+v", overdue)
	}

	byClient, _ := svc.List(ctx, TaskFilter{ClientID: "c1"}, manager)
	if len(byClient) != 1 || byClient[0].Title != "soon" {
		t.Fatalf("expected task for c1, got %+v", byClient)
	}
}

func TestTaskStatusAndDelete(t *testing.T) {
	ctx := context.Background()
	svc := newTaskService()

	task, _ := svc.Create(ctx, TaskInput{Title: "Call ACME"}, agentE1)

	if _, err := svc.SetStatus(ctx, task.ID, store.TaskDone, agentE2); !errors.Is(err, auth.ErrForbidden) {
		t.Fatalf("expected other agent to be forbidden, got %v", err)
	}
	if _, err := svc.SetStatus(ctx, task.ID, "archived", agentE1); err == nil {
		t.Fatalf("expected invalid status to be rejected")
	}
	updated, err := svc.SetStatus(ctx, task.ID, store.TaskInProgress, agentE1)
	if err != nil || updated.Status != store.TaskInProgress {
		t.Fatalf("expected in_progress, got %+v (%v)", updated, err)
	}

	edited, err := svc.Update(ctx, task.ID, TaskInput{Title: "Call ACME again", Status: store.TaskDone}, agentE1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if edited.AssigneeID != "e1" || edited.Title != "Call ACME again" || edited.ID != task.ID {
		t.Fatalf("unexpected edit %+v", edited)
	}

	if err := svc.Delete(ctx, task.ID, agentE2); !errors.Is(err, auth.ErrForbidden) {
		t.Fatalf("expected other agent delete to be forbidden, got %v", err)
	}
	if err := svc.Delete(ctx, task.ID, agentE1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Delete(ctx, task.ID, manager); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}
