package audio

import (
	"context"
	"fmt"
	"log"
	"sync"
)

// Track is a resolved, playable piece of audio.
type Track struct {
	Title string
	URL   string
}

// TrackResolver turns a free-form request ("play something by Daft Punk")
// into a playable track. Implementations wrap a media search backend.
type TrackResolver interface {
	Resolve(ctx context.Context, query string) (Track, error)
}

// StreamPlayer is the audio-output device boundary for music. Play blocks
// until the track ends or ctx is canceled; cancellation must release the
// device before Play returns.
type StreamPlayer interface {
	Play(ctx context.Context, track Track) error
}

// PlaybackController enforces single-player access to the music output
// device: at most one playback worker runs at a time, and a new one starts
// only after the previous worker has acknowledged termination
// (stop, then join, then start).
type PlaybackController struct {
	resolver TrackResolver
	player   StreamPlayer

	// playMu serializes whole Play sequences, so two concurrent Play calls
	// cannot both observe an idle controller and start two workers.
	playMu sync.Mutex

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	current Track
}

// NewPlaybackController creates a controller over the given resolver and
// player.
func NewPlaybackController(resolver TrackResolver, player StreamPlayer) *PlaybackController {
	return &PlaybackController{resolver: resolver, player: player}
}

// Play resolves the request and starts playback in a background worker,
// stopping and joining any previous worker first. Returns the track title.
func (c *PlaybackController) Play(ctx context.Context, query string) (string, error) {
	c.playMu.Lock()
	defer c.playMu.Unlock()

	// Stop any existing playback before touching the device.
	c.Stop()

	track, err := c.resolver.Resolve(ctx, query)
	if err != nil {
		return "", fmt.Errorf("resolve track: %w", err)
	}

	playCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	c.mu.Lock()
	c.cancel = cancel
	c.done = done
	c.current = track
	c.mu.Unlock()

	go func() {
		defer close(done)
		if err := c.player.Play(playCtx, track); err != nil && playCtx.Err() == nil {
			log.Printf("[AUDIO] Playback failed: %v", err)
		}
	}()

	log.Printf("[AUDIO] Now playing: %s", track.Title)
	return track.Title, nil
}

// Stop cancels the active playback worker and waits for it to terminate.
// A no-op when nothing is playing.
func (c *PlaybackController) Stop() {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.cancel, c.done = nil, nil
	c.current = Track{}
	c.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Playing reports whether a playback worker is active, and which track.
func (c *PlaybackController) Playing() (Track, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.done == nil {
		return Track{}, false
	}
	select {
	case <-c.done:
		return Track{}, false
	default:
		return c.current, true
	}
}
