package history

import (
	"sync"
	"testing"

	"github.com/leandrodaf/piano/sdk/contracts"
	"github.com/stretchr/testify/assert"
)

func TestSinceReturnsOpenEndedWindow(t *testing.T) {
	l := NewLog()
	for i, pos := range []contracts.Ticks{0, 5, 10, 20} {
		l.Append(contracts.Note{KeyIndex: i, Position: pos})
	}

	got := l.Since(6)
	assert := assert.New(t)
	assert.Len(got, 2)
	assert.Equal(contracts.Ticks(10), got[0].Position)
	assert.Equal(contracts.Ticks(20), got[1].Position)
}

func TestSinceIsInclusiveAtStart(t *testing.T) {
	l := NewLog()
	l.Append(contracts.Note{KeyIndex: 0, Position: 10})
	assert.Len(t, l.Since(10), 1)
}

func TestSinceOnEmptyLog(t *testing.T) {
	l := NewLog()
	assert.Empty(t, l.Since(0))
}

func TestConcurrentAppendAndQuery(t *testing.T) {
	l := NewLog()
	const writers, perWriter = 4, 250

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				l.Append(contracts.Note{KeyIndex: w, Position: contracts.Ticks(i)})
				l.Since(contracts.Ticks(i / 2))
			}
		}(w)
	}
	wg.Wait()

	assert.Equal(t, writers*perWriter, l.Len())
}
