package main

import (
	"sync"

	"github.com/romansashin/as-app/internal/player"
)

// scriptedSurface is a stand-in for the real audio widget: it mounts late,
// creates its media element even later and fires duplicate play signals,
// which is exactly the noise the aggregator has to absorb.
type scriptedSurface struct {
	mu       sync.Mutex
	ready    bool
	handlers map[string][]func()
	elements []*scriptedElement
}

func newScriptedSurface() *scriptedSurface {
	return &scriptedSurface{handlers: make(map[string][]func())}
}

func (s *scriptedSurface) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

func (s *scriptedSurface) On(event string, fn func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[event] = append(s.handlers[event], fn)
	return nil
}

func (s *scriptedSurface) Elements() []player.Element {
	s.mu.Lock()
	defer s.mu.Unlock()

	els := make([]player.Element, len(s.elements))
	for i, el := range s.elements {
		els[i] = el
	}
	return els
}

func (s *scriptedSurface) mount() {
	s.mu.Lock()
	s.ready = true
	s.mu.Unlock()
}

func (s *scriptedSurface) createElement() *scriptedElement {
	el := &scriptedElement{handlers: make(map[string][]func()), paused: true}
	s.mu.Lock()
	s.elements = append(s.elements, el)
	s.mu.Unlock()
	return el
}

// fire emits a widget-level event to every subscriber.
func (s *scriptedSurface) fire(event string) {
	s.mu.Lock()
	fns := append([]func(){}, s.handlers[event]...)
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

type scriptedElement struct {
	mu       sync.Mutex
	paused   bool
	handlers map[string][]func()
}

func (e *scriptedElement) On(event string, fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handlers[event] = append(e.handlers[event], fn)
}

func (e *scriptedElement) Paused() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.paused
}

// play unpauses the element and fires its play events.
func (e *scriptedElement) play(event string) {
	e.mu.Lock()
	e.paused = false
	fns := append([]func(){}, e.handlers[event]...)
	e.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
