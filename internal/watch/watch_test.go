package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestRun_FiresOnMarkdownChange(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "cloud"), 0755); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fired := make(chan struct{}, 1)
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, root, 20*time.Millisecond, func() {
			select {
			case fired <- struct{}{}:
			default:
			}
		})
	}()

	// give the watcher a moment to register the directories
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(root, "cloud", "saga.md"), []byte("# Saga\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("onChange never fired after a markdown write")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

func TestRun_IgnoresNonMarkdown(t *testing.T) {
	root := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fired := make(chan struct{}, 1)
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, root, 20*time.Millisecond, func() {
			select {
			case fired <- struct{}{}:
			default:
			}
		})
	}()

	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(root, "notes.txt"), []byte("scratch"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-fired:
		t.Fatal("onChange fired for a non-markdown file")
	case <-time.After(300 * time.Millisecond):
	}

	cancel()
	<-done
}

func TestRun_MissingRoot(t *testing.T) {
	err := Run(context.Background(), filepath.Join(t.TempDir(), "absent"), DefaultQuiet, func() {})
	if err == nil {
		t.Fatal("Run accepted a nonexistent root")
	}
}
