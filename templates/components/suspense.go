package components

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"
	"sync"

	"github.com/a-h/templ"

	"homura.shop/app/internal/deferred"
)

type boundariesKey struct{}

type pendingBoundary struct {
	id     string
	render func(ctx context.Context, w io.Writer) error
}

// Boundaries collects suspense boundaries whose values were not ready when
// the document shell was rendered.
type Boundaries struct {
	mu      sync.Mutex
	next    int
	pending []pendingBoundary
	// the response, flushed once templ's buffer has been written through
	resp http.Flusher
}

// WithBoundaries enables streaming for everything rendered with ctx into
// resp. Without it Await blocks and renders inline.
func WithBoundaries(ctx context.Context, resp io.Writer) context.Context {
	b := &Boundaries{}
	b.resp, _ = resp.(http.Flusher)
	return context.WithValue(ctx, boundariesKey{}, b)
}
func boundariesFrom(ctx context.Context) *Boundaries {
	b, _ := ctx.Value(boundariesKey{}).(*Boundaries)
	return b
}

func (b *Boundaries) add(render func(ctx context.Context, w io.Writer) error) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := "b" + strconv.Itoa(b.next)
	b.next++
	b.pending = append(b.pending, pendingBoundary{id: id, render: render})
	return id
}

func (b *Boundaries) pop() (pendingBoundary, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.pending) == 0 {
		return pendingBoundary{}, false
	}
	p := b.pending[0]
	b.pending = b.pending[1:]
	return p, true
}

// Await renders body with the resolved value of v. When v is still pending
// and streaming is enabled, fallback is rendered now and body is streamed
// later by Drain. A nil v renders body with the zero value.
func Await[T any](v *deferred.Value[T], fallback templ.Component, body func(T) templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if v == nil {
			var zero T
			return body(zero).Render(ctx, w)
		}
		b := boundariesFrom(ctx)
		if b == nil || v.Ready() {
			val, err := v.Await(ctx)
			if err != nil {
				return err
			}
			return body(val).Render(ctx, w)
		}

		id := b.add(func(ctx context.Context, w io.Writer) error {
			val, err := v.Await(ctx)
			if err != nil {
				return err
			}
			return body(val).Render(ctx, w)
		})
		return boundary(id, fallback).Render(ctx, w)
	})
}

// Drain flushes what has been written so far, then streams every pending
// boundary in registration order. Boundaries registered while draining are
// streamed too.
func Drain(ctx context.Context, w io.Writer) error {
	b := boundariesFrom(ctx)
	if b == nil {
		return nil
	}
	if err := b.flush(w); err != nil {
		return err
	}
	for {
		p, ok := b.pop()
		if !ok {
			return nil
		}
		// A body that fails writes nothing.
		var buf bytes.Buffer
		if err := p.render(ctx, &buf); err != nil {
			return err
		}
		if err := streamed(p.id, templ.Raw(buf.String())).Render(ctx, w); err != nil {
			return err
		}
		if err := b.flush(w); err != nil {
			return err
		}
	}
}

func drainBoundaries() templ.Component {
	return templ.ComponentFunc(Drain)
}

// flush pushes templ's render buffer into the response, then the response
// to the client.
func (b *Boundaries) flush(w io.Writer) error {
	switch f := w.(type) {
	case interface{ Flush() error }:
		if err := f.Flush(); err != nil {
			return err
		}
	case http.Flusher:
		f.Flush()
	}
	if b.resp != nil {
		b.resp.Flush()
	}
	return nil
}
