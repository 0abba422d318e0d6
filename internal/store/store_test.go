package store

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Store{Dir: t.TempDir()}.Open(context.Background())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestStore_OpenIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		db, err := Store{Dir: dir}.Open(ctx)
		if err != nil {
			t.Fatalf("open #%d: %v", i, err)
		}
		if _, err := db.CreateBoard(ctx, "B", ""); err != nil {
			t.Fatalf("create board: %v", err)
		}
		_ = db.Close()
	}
	db, err := Store{Dir: dir}.Open(ctx)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()
	boards, err := db.Boards(ctx)
	if err != nil {
		t.Fatalf("boards: %v", err)
	}
	if len(boards) != 2 {
		t.Fatalf("expected 2 boards after reopen, got %d", len(boards))
	}
}

func TestStore_BoardFromTemplateCreatesOrderedLists(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	tmpl, ok := FindBoardTemplate("everyday")
	if !ok {
		t.Fatalf("missing everyday template")
	}
	b, lists, err := db.CreateBoardFromTemplate(ctx, "", "", tmpl)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if b.Name != tmpl.Name || !strings.HasPrefix(b.ID, "board-") {
		t.Fatalf("unexpected board %+v", b)
	}
	if len(lists) != len(tmpl.Lists) {
		t.Fatalf("expected %d lists, got %d", len(tmpl.Lists), len(lists))
	}

	got, err := db.ListsByBoard(ctx, b.ID)
	if err != nil {
		t.Fatalf("lists: %v", err)
	}
	for i, l := range got {
		if l.Position != i || l.Name != tmpl.Lists[i].Name || l.Color != tmpl.Lists[i].Color {
			t.Fatalf("list %d = %+v", i, l)
		}
	}
}

func TestStore_MoveTaskAppendsToTargetList(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	b, _ := db.CreateBoard(ctx, "B", "")
	todo, _ := db.CreateList(ctx, b.ID, "Todo", "")
	done, _ := db.CreateList(ctx, b.ID, "Done", "")
	t1, _ := db.CreateTask(ctx, todo.ID, "one", "")
	if _, err := db.CreateTask(ctx, done.ID, "already done", ""); err != nil {
		t.Fatalf("create: %v", err)
	}

	moved, err := db.MoveTask(ctx, t1.ID, done.ID)
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if moved.ListID != done.ID || moved.Position != 1 {
		t.Fatalf("unexpected moved task %+v", moved)
	}

	inTodo, _ := db.TasksByList(ctx, todo.ID)
	inDone, _ := db.TasksByList(ctx, done.ID)
	if len(inTodo) != 0 || len(inDone) != 2 || inDone[1].ID != t1.ID {
		t.Fatalf("todo=%v done=%v", inTodo, inDone)
	}

	// Dropping onto the list the task is already in changes nothing.
	again, err := db.MoveTask(ctx, t1.ID, done.ID)
	if err != nil {
		t.Fatalf("move again: %v", err)
	}
	if again.Position != 1 || again.UpdatedAt.UnixMilli() != moved.UpdatedAt.UnixMilli() {
		t.Fatalf("expected no-op move, got %+v", again)
	}
}

func TestStore_MoveTaskErrors(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	b1, _ := db.CreateBoard(ctx, "One", "")
	b2, _ := db.CreateBoard(ctx, "Two", "")
	l1, _ := db.CreateList(ctx, b1.ID, "A", "")
	l2, _ := db.CreateList(ctx, b2.ID, "B", "")
	task, _ := db.CreateTask(ctx, l1.ID, "x", "")

	if _, err := db.MoveTask(ctx, "task-missing", l1.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing task, got %v", err)
	}
	if _, err := db.MoveTask(ctx, task.ID, "list-missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing list, got %v", err)
	}
	if _, err := db.MoveTask(ctx, task.ID, l2.ID); err == nil {
		t.Fatalf("expected cross-board move to fail")
	}
}

func TestStore_DeleteListRemovesItsTasks(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	b, _ := db.CreateBoard(ctx, "B", "")
	l, _ := db.CreateList(ctx, b.ID, "Doomed", "")
	task, _ := db.CreateTask(ctx, l.ID, "x", "")

	if err := db.DeleteList(ctx, l.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := db.Task(ctx, task.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected task gone, got %v", err)
	}
	if err := db.DeleteList(ctx, l.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestStore_UpdateAndFinishTask(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	b, _ := db.CreateBoard(ctx, "B", "")
	l, _ := db.CreateList(ctx, b.ID, "L", "")
	task, _ := db.CreateTask(ctx, l.ID, "draft", "old")

	name := "final"
	got, err := db.UpdateTask(ctx, task.ID, TaskPatch{Name: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Name != "final" || got.Description != "old" {
		t.Fatalf("unexpected %+v", got)
	}
	empty := "  "
	if _, err := db.UpdateTask(ctx, task.ID, TaskPatch{Name: &empty}); err == nil {
		t.Fatalf("expected empty name to be rejected")
	}

	fin, err := db.SetTaskFinished(ctx, task.ID, true)
	if err != nil || !fin.Finished {
		t.Fatalf("finish: %+v %v", fin, err)
	}
}

func TestStore_LoadBoardGroupsTasksByList(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	b, _ := db.CreateBoard(ctx, "B", "")
	a, _ := db.CreateList(ctx, b.ID, "A", "")
	c, _ := db.CreateList(ctx, b.ID, "C", "")
	_, _ = db.CreateTask(ctx, c.ID, "c1", "")
	_, _ = db.CreateTask(ctx, a.ID, "a1", "")
	_, _ = db.CreateTask(ctx, a.ID, "a2", "")

	st, err := db.LoadBoard(ctx, b.ID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(st.Lists) != 2 || len(st.Tasks) != 3 {
		t.Fatalf("unexpected state %+v", st)
	}
	names := []string{}
	for _, task := range st.Tasks {
		names = append(names, task.Name)
	}
	if strings.Join(names, ",") != "a1,a2,c1" {
		t.Fatalf("unexpected task order %v", names)
	}
	if got := st.TasksInList(a.ID); len(got) != 2 {
		t.Fatalf("expected 2 tasks in A, got %d", len(got))
	}
	if _, err := db.LoadBoard(ctx, "board-nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestConfig_RoundTripUnderOverrideDir(t *testing.T) {
	t.Setenv("KANBAN_CONFIG_DIR", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load empty: %v", err)
	}
	if cfg.CurrentBoard != "" || cfg.TUI.LongPress() != 0 {
		t.Fatalf("expected zero config, got %+v", cfg)
	}
	cfg.CurrentBoard = "board-abc"
	cfg.TUI = &TUIConfig{LongPressMs: 350, CollisionPadding: -2}
	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.CurrentBoard != "board-abc" || got.TUI.LongPress().Milliseconds() != 350 {
		t.Fatalf("unexpected %+v", got)
	}
	if got.TUI.Padding() != 0 {
		t.Fatalf("expected negative padding to clamp to 0")
	}
}
