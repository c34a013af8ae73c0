package entity

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBook_SectionIsMemoized(t *testing.T) {
	t.Parallel()

	calls := 0
	load := func(ctx context.Context, id int) (*Section, error) {
		calls++
		return &Section{ID: id, Name: "Fiction"}, nil
	}

	book := &Book{ID: 1, SectionID: 7}

	first, err := book.Section(context.Background(), load)
	require.NoError(t, err)
	second, err := book.Section(context.Background(), load)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Same(t, first, second)
	assert.Equal(t, 7, first.ID)
}

func TestBook_SectionErrorIsNotCached(t *testing.T) {
	t.Parallel()

	fail := true
	load := func(ctx context.Context, id int) (*Section, error) {
		if fail {
			return nil, errors.New("connection refused")
		}
		return &Section{ID: id}, nil
	}

	book := &Book{SectionID: 2}

	_, err := book.Section(context.Background(), load)
	require.Error(t, err)

	fail = false
	section, err := book.Section(context.Background(), load)
	require.NoError(t, err)
	assert.Equal(t, 2, section.ID)
}

func TestBookFilter_IsEmpty(t *testing.T) {
	t.Parallel()

	assert.True(t, BookFilter{}.IsEmpty())
	assert.True(t, BookFilter{SectionID: -1}.IsEmpty())
	assert.False(t, BookFilter{Query: "dune"}.IsEmpty())
	assert.False(t, BookFilter{SectionID: 1}.IsEmpty())
}
