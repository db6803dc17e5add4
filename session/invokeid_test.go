package session

import (
	"sync"
	"testing"

	"github.com/andaru/cdap/cdaperr"
	"github.com/stretchr/testify/assert"
)

func TestInvokeIDUnique(t *testing.T) {
	a := assert.New(t)
	m := NewInvokeIDManager()
	seen := map[int32]bool{}
	for i := 0; i < 1000; i++ {
		id := m.NewInvokeID()
		a.Greater(id, int32(0))
		a.False(seen[id], "invoke-id %d returned twice", id)
		seen[id] = true
	}
	a.Equal(1000, m.Len(true))
	a.Equal(0, m.Len(false))
}

func TestInvokeIDReuse(t *testing.T) {
	a := assert.New(t)
	m := NewInvokeIDManager()
	a.Equal(int32(1), m.NewInvokeID())
	a.Equal(int32(2), m.NewInvokeID())
	a.Equal(int32(3), m.NewInvokeID())

	m.Free(2, true)
	a.False(m.InUse(2, true))
	a.Equal(int32(2), m.NewInvokeID())
	// 2 is outstanding again, so the next id skips it
	a.Equal(int32(4), m.NewInvokeID())

	// freeing an unused id, or an id in the other direction, is a no-op
	m.Free(99, true)
	m.Free(1, false)
	a.True(m.InUse(1, true))
	a.Equal(4, m.Len(true))
}

func TestInvokeIDReserve(t *testing.T) {
	for _, tc := range []struct {
		name string
		id   int32
		sent bool
		kind cdaperr.Kind
		ok   bool
	}{
		{name: "free received id", id: 1, ok: true},
		{name: "reserved received id", id: 5, kind: cdaperr.KindDuplicateInvokeID},
		{name: "free sent id", id: 10, sent: true, ok: true},
		{name: "allocated sent id", id: 1, sent: true, kind: cdaperr.KindDuplicateInvokeID},
		{name: "zero", id: 0, kind: cdaperr.KindInvalidMessage},
		{name: "negative", id: -1, sent: true, kind: cdaperr.KindInvalidMessage},
	} {
		t.Run(tc.name, func(t *testing.T) {
			a := assert.New(t)
			m := NewInvokeIDManager()
			m.NewInvokeID()
			a.NoError(m.Reserve(5, false))

			err := m.Reserve(tc.id, tc.sent)
			if tc.ok {
				a.NoError(err)
				a.True(m.InUse(tc.id, tc.sent))
				return
			}
			a.True(cdaperr.IsKind(err, tc.kind), "got %v", err)
		})
	}
}

func TestInvokeIDReservedNotAllocated(t *testing.T) {
	a := assert.New(t)
	m := NewInvokeIDManager()
	a.NoError(m.Reserve(1, true))
	a.NoError(m.Reserve(2, true))
	a.Equal(int32(3), m.NewInvokeID())
	m.Reset()
	a.Equal(0, m.Len(true))
	a.Equal(int32(1), m.NewInvokeID())
}

func TestInvokeIDConcurrent(t *testing.T) {
	a := assert.New(t)
	m := NewInvokeIDManager()
	const workers, per = 8, 200
	ids := make(chan int32, workers*per)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < per; i++ {
				ids <- m.NewInvokeID()
			}
		}()
	}
	wg.Wait()
	close(ids)
	seen := map[int32]bool{}
	for id := range ids {
		a.False(seen[id])
		seen[id] = true
	}
	a.Len(seen, workers*per)
}
