// Package storefronttest provides an in-memory Storefront API for tests.
package storefronttest

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"homura.shop/app/internal/storefront"
)

// Call records one operation received by a Fake.
type Call struct {
	Operation string
	Vars      storefront.Vars
}

// Fake answers operations by name with canned JSON data or errors.
type Fake struct {
	mu        sync.Mutex
	responses map[string]string
	errs      map[string]error
	calls     []Call
	// Block, when set, is waited on before answering the named operation.
	block map[string]chan struct{}
}

func New() *Fake {
	return &Fake{
		responses: map[string]string{},
		errs:      map[string]error{},
		block:     map[string]chan struct{}{},
	}
}

// Respond registers the JSON "data" payload returned for op.
func (f *Fake) Respond(op, data string) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[op] = data
	delete(f.errs, op)
	return f
}

// Fail makes op return err.
func (f *Fake) Fail(op string, err error) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[op] = err
	return f
}

// Hold makes op wait until the returned release func is called.
func (f *Fake) Hold(op string) (release func()) {
	ch := make(chan struct{})
	f.mu.Lock()
	f.block[op] = ch
	f.mu.Unlock()
	var once sync.Once
	return func() { once.Do(func() { close(ch) }) }
}

func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// CallCount returns how many times op was requested.
func (f *Fake) CallCount(op string) int {
	n := 0
	for _, c := range f.Calls() {
		if c.Operation == op {
			n++
		}
	}
	return n
}

func (f *Fake) Query(ctx context.Context, query string, vars storefront.Vars, out any, _ ...storefront.Option) error {
	return f.answer(ctx, query, vars, out)
}

func (f *Fake) Mutate(ctx context.Context, mutation string, vars storefront.Vars, out any) error {
	return f.answer(ctx, mutation, vars, out)
}

func (f *Fake) answer(ctx context.Context, doc string, vars storefront.Vars, out any) error {
	op := storefront.OperationName(doc)

	f.mu.Lock()
	f.calls = append(f.calls, Call{Operation: op, Vars: vars})
	ch := f.block[op]
	f.mu.Unlock()

	if ch != nil {
		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	f.mu.Lock()
	err, failing := f.errs[op]
	data, ok := f.responses[op]
	f.mu.Unlock()

	if failing {
		return &storefront.QueryError{Operation: op, Err: err}
	}
	if !ok {
		return &storefront.QueryError{Operation: op, Err: fmt.Errorf("no canned response")}
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal([]byte(data), out)
}
