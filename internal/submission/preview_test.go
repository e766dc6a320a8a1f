package submission

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreviewerRendersSelectedImage(t *testing.T) {
	p := NewPreviewer()

	<-p.Select(memImage("feijao.jpg", 32))

	cur := p.Current()
	require.NotNil(t, cur)
	assert.Equal(t, "feijao.jpg", cur.FileName)
	assert.True(t, strings.HasPrefix(cur.DataURL, "data:image/jpeg;base64,"))
}

func TestPreviewerNewSelectionReplacesPrevious(t *testing.T) {
	p := NewPreviewer()

	<-p.Select(memImage("first.png", 16))
	<-p.Select(memImage("second.webp", 16))

	cur := p.Current()
	require.NotNil(t, cur)
	assert.Equal(t, "second.webp", cur.FileName)
}

func TestPreviewerClearDropsPreviewAndInFlightReads(t *testing.T) {
	p := NewPreviewer()

	<-p.Select(memImage("first.jpg", 16))
	require.NotNil(t, p.Current())

	// Clear after the selection read started but before it settles: the
	// stale result must not resurface.
	done := p.Select(memImage("second.jpg", 16))
	p.Clear()
	<-done

	assert.Nil(t, p.Current())
}

func TestPreviewerNotifiesObserver(t *testing.T) {
	p := NewPreviewer()

	var updates []*Preview
	p.OnUpdate = func(pv *Preview) { updates = append(updates, pv) }

	<-p.Select(memImage("a.png", 8))
	p.Clear()

	require.Len(t, updates, 2)
	assert.NotNil(t, updates[0])
	assert.Nil(t, updates[1])
}
