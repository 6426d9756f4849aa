package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func collectSmoother() (*wordSmoother, *[]string) {
	var emitted []string
	s := newWordSmoother(func(text string) error {
		emitted = append(emitted, text)
		return nil
	})
	return s, &emitted
}

func TestSmootherHoldsPartialWord(t *testing.T) {
	s, emitted := collectSmoother()

	assert.NoError(t, s.Write("Hel"))
	assert.Empty(t, *emitted)

	assert.NoError(t, s.Write("lo wor"))
	assert.Equal(t, []string{"Hello "}, *emitted)

	assert.NoError(t, s.Flush())
	assert.Equal(t, []string{"Hello ", "wor"}, *emitted)
}

func TestSmootherFlushesThroughLastBoundary(t *testing.T) {
	s, emitted := collectSmoother()

	assert.NoError(t, s.Write("one two three fo"))
	assert.Equal(t, []string{"one two three "}, *emitted)
}

func TestSmootherTreatsNewlinesAsBoundaries(t *testing.T) {
	s, emitted := collectSmoother()

	assert.NoError(t, s.Write("line one\nli"))
	assert.Equal(t, []string{"line one\n"}, *emitted)
}

func TestSmootherFlushOnEmptyBufferEmitsNothing(t *testing.T) {
	s, emitted := collectSmoother()

	assert.NoError(t, s.Flush())
	assert.Empty(t, *emitted)
}

func TestSmootherReassemblesOriginalText(t *testing.T) {
	s, emitted := collectSmoother()

	chunks := []string{"The qu", "ick brown", " fox jumps ", "over the la", "zy dog"}
	for _, chunk := range chunks {
		assert.NoError(t, s.Write(chunk))
	}
	assert.NoError(t, s.Flush())

	var got string
	for _, e := range *emitted {
		got += e
	}
	assert.Equal(t, "The quick brown fox jumps over the lazy dog", got)
}
