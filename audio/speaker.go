// Package audio owns the process's audio resources: a speech-output worker
// that drains an utterance queue, and a music playback controller that
// enforces single-player access to the output device.
package audio

import (
	"context"
	"log"
	"sync"
)

// Synthesizer is the text-to-speech device boundary. Speak blocks until
// the utterance finishes or ctx is canceled.
type Synthesizer interface {
	Speak(ctx context.Context, text string) error
}

// SynthesizerFunc adapts a function to the Synthesizer interface.
type SynthesizerFunc func(ctx context.Context, text string) error

func (f SynthesizerFunc) Speak(ctx context.Context, text string) error { return f(ctx, text) }

// SpeechController owns the speech-output device. A dedicated worker
// goroutine speaks queued utterances one at a time; Stop interrupts the
// utterance currently being spoken without draining what's queued behind
// it.
type SpeechController struct {
	synth Synthesizer
	queue chan string
	done  chan struct{}

	mu      sync.Mutex
	cancel  context.CancelFunc
	stopped bool
}

// NewSpeechController starts the speech worker. queueSize <= 0 selects a
// default.
func NewSpeechController(synth Synthesizer, queueSize int) *SpeechController {
	if queueSize <= 0 {
		queueSize = 16
	}
	c := &SpeechController{
		synth: synth,
		queue: make(chan string, queueSize),
		done:  make(chan struct{}),
	}
	go c.run()
	return c
}

func (c *SpeechController) run() {
	defer close(c.done)

	for text := range c.queue {
		ctx, cancel := context.WithCancel(context.Background())
		c.mu.Lock()
		c.cancel = cancel
		c.mu.Unlock()

		if err := c.synth.Speak(ctx, text); err != nil && ctx.Err() == nil {
			log.Printf("[AUDIO] Speech synthesis failed: %v", err)
		}

		c.mu.Lock()
		c.cancel = nil
		c.mu.Unlock()
		cancel()
	}
}

// Enqueue queues an utterance. Dropped with a log line after Shutdown or
// when the queue is full; speech output is best-effort.
func (c *SpeechController) Enqueue(text string) {
	// The send must stay under the mutex: Shutdown sets stopped and closes
	// the queue under the same lock ordering, so a send can never race the
	// close.
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return
	}

	select {
	case c.queue <- text:
	default:
		log.Printf("[AUDIO] Speech queue full, dropping utterance")
	}
}

// Stop interrupts the utterance currently being spoken, if any. Queued
// utterances are unaffected.
func (c *SpeechController) Stop() {
	c.mu.Lock()
	cancel := c.cancel
	c.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Shutdown stops accepting utterances, waits for the worker to drain the
// queue, and returns once the device is released.
func (c *SpeechController) Shutdown() {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		<-c.done
		return
	}
	c.stopped = true
	close(c.queue)
	c.mu.Unlock()

	<-c.done
}
