package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/RoboJunior/Coding-Buddy/pkg/llm"
)

func TestGetOrCreateIsIdempotent(t *testing.T) {
	svc := InMemoryService()
	key := Key{AppName: "app", UserID: "u1", SessionID: "s1"}

	first, err := svc.GetOrCreate(context.Background(), key)
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}
	first.Append(llm.NewUserText("hello"))

	second, err := svc.GetOrCreate(context.Background(), key)
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}

	if first != second {
		t.Fatal("same key must resolve to the same session")
	}
	if second.Len() != 1 {
		t.Errorf("history length = %d, want the appended message to persist", second.Len())
	}
}

func TestGetOrCreateConcurrentFirstTouch(t *testing.T) {
	svc := InMemoryService()
	key := Key{AppName: "app", UserID: "u1", SessionID: "s1"}

	const goroutines = 32
	sessions := make([]*Session, goroutines)

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sess, err := svc.GetOrCreate(context.Background(), key)
			if err != nil {
				t.Errorf("GetOrCreate() error = %v", err)
				return
			}
			sessions[i] = sess
		}()
	}
	wg.Wait()

	// Every caller must observe the one state created by the winner.
	for i := 1; i < goroutines; i++ {
		if sessions[i] != sessions[0] {
			t.Fatal("concurrent first-touch created more than one state")
		}
	}
}

func TestDistinctKeysAreIsolated(t *testing.T) {
	svc := InMemoryService()

	a, _ := svc.GetOrCreate(context.Background(), Key{AppName: "app", UserID: "u1", SessionID: "s1"})
	b, _ := svc.GetOrCreate(context.Background(), Key{AppName: "app", UserID: "u1", SessionID: "s2"})
	c, _ := svc.GetOrCreate(context.Background(), Key{AppName: "app", UserID: "u2", SessionID: "s1"})

	a.Append(llm.NewUserText("only in a"))

	if b.Len() != 0 || c.Len() != 0 {
		t.Error("histories leaked across session keys")
	}
}

func TestGetMissingSession(t *testing.T) {
	svc := InMemoryService()

	_, err := svc.Get(context.Background(), Key{AppName: "app", UserID: "u1", SessionID: "nope"})
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestListFiltersByAppAndUser(t *testing.T) {
	svc := InMemoryService()
	ctx := context.Background()

	svc.GetOrCreate(ctx, Key{AppName: "app", UserID: "u1", SessionID: "s1"})
	svc.GetOrCreate(ctx, Key{AppName: "app", UserID: "u1", SessionID: "s2"})
	svc.GetOrCreate(ctx, Key{AppName: "app", UserID: "u2", SessionID: "s3"})
	svc.GetOrCreate(ctx, Key{AppName: "other", UserID: "u1", SessionID: "s4"})

	sessions, err := svc.List(ctx, "app", "u1")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(sessions) != 2 {
		t.Errorf("expected 2 sessions for app/u1, got %d", len(sessions))
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	svc := InMemoryService()
	ctx := context.Background()
	key := Key{AppName: "app", UserID: "u1", SessionID: "s1"}

	svc.GetOrCreate(ctx, key)
	if err := svc.Delete(ctx, key); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := svc.Get(ctx, key); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("session survived deletion: %v", err)
	}

	// Deleting an absent key is a no-op.
	if err := svc.Delete(ctx, key); err != nil {
		t.Errorf("second Delete() error = %v", err)
	}
}

func TestMessagesReturnsSnapshot(t *testing.T) {
	svc := InMemoryService()
	sess, _ := svc.GetOrCreate(context.Background(), Key{AppName: "app", UserID: "u1", SessionID: "s1"})

	sess.Append(llm.NewUserText("one"))
	snapshot := sess.Messages()
	sess.Append(llm.NewUserText("two"))

	if len(snapshot) != 1 {
		t.Errorf("snapshot length = %d, want 1", len(snapshot))
	}
}

func TestRunLockSerializesPerSession(t *testing.T) {
	svc := InMemoryService()
	sess, _ := svc.GetOrCreate(context.Background(), Key{AppName: "app", UserID: "u1", SessionID: "s1"})

	var inFlight, maxInFlight int
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sess.BeginRun()
			defer sess.EndRun()

			mu.Lock()
			inFlight++
			if inFlight > maxInFlight {
				maxInFlight = inFlight
			}
			mu.Unlock()

			sess.Append(llm.NewUserText("step"))

			mu.Lock()
			inFlight--
			mu.Unlock()
		}()
	}
	wg.Wait()

	if maxInFlight != 1 {
		t.Errorf("observed %d concurrent runs on one session, want 1", maxInFlight)
	}
	if sess.Len() != 8 {
		t.Errorf("history length = %d, want 8", sess.Len())
	}
}
