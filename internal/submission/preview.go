package submission

import (
	"encoding/base64"
	"io"
	"sync"
)

// Preview is the displayable rendering of the currently selected image.
type Preview struct {
	FileName string
	DataURL  string
}

// Previewer derives a preview from the current file selection. Selecting a
// new file supersedes any in-flight read: the stale result is dropped, never
// displayed. Clearing the selection clears the preview. Purely local display
// state — no effect on persisted data.
type Previewer struct {
	mu      sync.Mutex
	gen     uint64
	current *Preview

	// OnUpdate fires with the new preview (or nil on clear). Optional.
	OnUpdate func(*Preview)
}

func NewPreviewer() *Previewer {
	return &Previewer{}
}

// Current returns the preview for the latest selection, or nil.
func (p *Previewer) Current() *Preview {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Select starts reading img asynchronously and returns a channel that closes
// when this selection's read has settled (stored or superseded). A later
// Select wins over an earlier unfinished one regardless of read order.
func (p *Previewer) Select(img *ImageFile) <-chan struct{} {
	p.mu.Lock()
	p.gen++
	gen := p.gen
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)

		dataURL, err := renderDataURL(img)
		if err != nil {
			return // selection keeps whatever was displayed before
		}

		p.mu.Lock()
		defer p.mu.Unlock()
		if gen != p.gen {
			return // superseded by a newer selection
		}
		p.current = &Preview{FileName: img.Name, DataURL: dataURL}
		if p.OnUpdate != nil {
			p.OnUpdate(p.current)
		}
	}()
	return done
}

// Clear drops the current preview and invalidates any in-flight read.
func (p *Previewer) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gen++
	p.current = nil
	if p.OnUpdate != nil {
		p.OnUpdate(nil)
	}
}

func renderDataURL(img *ImageFile) (string, error) {
	src, err := img.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	raw, err := io.ReadAll(io.LimitReader(src, MaxImageBytes+1))
	if err != nil {
		return "", err
	}
	return "data:" + img.ContentType() + ";base64," + base64.StdEncoding.EncodeToString(raw), nil
}
