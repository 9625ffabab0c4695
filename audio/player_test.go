package audio_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/auralabs/aura-go-sdk/audio"
)

// fakeResolver resolves every query to a track named after it.
type fakeResolver struct {
	err error
}

func (r *fakeResolver) Resolve(ctx context.Context, query string) (audio.Track, error) {
	if r.err != nil {
		return audio.Track{}, r.err
	}
	return audio.Track{Title: query, URL: "test://" + query}, nil
}

// blockingPlayer plays until canceled and tracks concurrent sessions.
type blockingPlayer struct {
	mu        sync.Mutex
	active    int32
	maxActive int32
	plays     []string
}

func (p *blockingPlayer) Play(ctx context.Context, track audio.Track) error {
	n := atomic.AddInt32(&p.active, 1)
	defer atomic.AddInt32(&p.active, -1)
	for {
		seen := atomic.LoadInt32(&p.maxActive)
		if n <= seen || atomic.CompareAndSwapInt32(&p.maxActive, seen, n) {
			break
		}
	}

	p.mu.Lock()
	p.plays = append(p.plays, track.Title)
	p.mu.Unlock()

	<-ctx.Done()
	return ctx.Err()
}

func TestPlaybackController_PlayAndStop(t *testing.T) {
	player := &blockingPlayer{}
	c := audio.NewPlaybackController(&fakeResolver{}, player)

	title, err := c.Play(context.Background(), "some jazz")
	if err != nil {
		t.Fatalf("Play failed: %v", err)
	}
	if title != "some jazz" {
		t.Errorf("Play returned title %q, want some jazz", title)
	}

	waitFor(t, func() bool {
		_, playing := c.Playing()
		return playing
	})

	c.Stop()
	if _, playing := c.Playing(); playing {
		t.Error("Still playing after Stop")
	}
}

func TestPlaybackController_NewPlayStopsPrevious(t *testing.T) {
	player := &blockingPlayer{}
	c := audio.NewPlaybackController(&fakeResolver{}, player)
	defer c.Stop()

	if _, err := c.Play(context.Background(), "first song"); err != nil {
		t.Fatalf("Play failed: %v", err)
	}
	waitFor(t, func() bool {
		track, playing := c.Playing()
		return playing && track.Title == "first song"
	})

	if _, err := c.Play(context.Background(), "second song"); err != nil {
		t.Fatalf("Second play failed: %v", err)
	}
	waitFor(t, func() bool {
		track, playing := c.Playing()
		return playing && track.Title == "second song"
	})

	// The previous worker must have terminated before the new one started.
	if got := atomic.LoadInt32(&player.maxActive); got > 1 {
		t.Errorf("Observed %d concurrent playback workers, want at most 1", got)
	}
}

func TestPlaybackController_ConcurrentPlaySingleWorker(t *testing.T) {
	player := &blockingPlayer{}
	c := audio.NewPlaybackController(&fakeResolver{}, player)
	defer c.Stop()

	// Concurrent Play calls must serialize: each new worker starts only
	// after the previous one has been stopped and joined.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.Play(context.Background(), "contended track"); err != nil {
				t.Errorf("Play failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := atomic.LoadInt32(&player.maxActive); got > 1 {
		t.Errorf("Observed %d concurrent playback workers, want at most 1", got)
	}
	if _, playing := c.Playing(); !playing {
		t.Error("No worker left playing after contended Play calls")
	}
}

func TestPlaybackController_StopIdleIsNoop(t *testing.T) {
	c := audio.NewPlaybackController(&fakeResolver{}, &blockingPlayer{})
	c.Stop()
	c.Stop()
	if _, playing := c.Playing(); playing {
		t.Error("Idle controller reports active playback")
	}
}

func TestPlaybackController_ResolveFailure(t *testing.T) {
	c := audio.NewPlaybackController(&fakeResolver{err: errors.New("nothing found")}, &blockingPlayer{})

	if _, err := c.Play(context.Background(), "unfindable"); err == nil {
		t.Fatal("Play succeeded despite resolver failure")
	}
	if _, playing := c.Playing(); playing {
		t.Error("Controller reports playback after a failed resolve")
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("Condition not met within deadline")
}
