package id

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	gen := NewGenerator()

	id1 := gen.Generate()
	id2 := gen.Generate()

	assert.NotEqual(t, id1, id2)
	assert.Less(t, id1.String(), id2.String(), "monotonic within a millisecond")
	assert.Len(t, gen.GenerateString(), 26)
}

func TestTypedIDs(t *testing.T) {
	ids := map[string]string{
		RequestPrefix: NewRequestID().String(),
		TracePrefix:   NewTraceID().String(),
		SpanPrefix:    NewSpanID().String(),
	}

	for prefix, s := range ids {
		got, u, ok := Split(s)
		require.True(t, ok, s)
		assert.Equal(t, prefix, got)
		assert.Len(t, u.String(), 26)
	}
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid(NewGenerator().GenerateString()))

	for _, s := range []string{"", "invalid", "1234567890", "zzzzzzzzzzzzzzzzzzzzzzzzzzz"} {
		assert.False(t, IsValid(s), s)
	}
}

func TestSplit(t *testing.T) {
	_, _, ok := Split("no-underscore")
	assert.False(t, ok)

	_, _, ok = Split("_01J9ZQ0000000000000000000")
	assert.False(t, ok)

	_, _, ok = Split("trace_notaulid")
	assert.False(t, ok)
}

func TestTimestamp(t *testing.T) {
	before := time.Now()
	bare := NewGenerator().GenerateString()
	prefixed := NewTraceID().String()
	after := time.Now()

	for _, s := range []string{bare, prefixed} {
		ts, err := Timestamp(s)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, ts.UnixMilli(), before.UnixMilli())
		assert.LessOrEqual(t, ts.UnixMilli(), after.UnixMilli())
	}

	_, err := Timestamp("garbage")
	assert.Error(t, err)
}

func TestConcurrentGeneration(t *testing.T) {
	gen := NewGenerator()

	const goroutines = 50
	const perGoroutine = 100

	var wg sync.WaitGroup
	ids := make(chan string, goroutines*perGoroutine)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				ids <- gen.GenerateWithPrefix("req")
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	for s := range ids {
		assert.True(t, strings.HasPrefix(s, "req_"))
		assert.False(t, seen[s], "duplicate id %s", s)
		seen[s] = true
	}
	assert.Len(t, seen, goroutines*perGoroutine)
}
