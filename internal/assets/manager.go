package assets

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/rs/zerolog"
	"github.com/san-kum/solarsim/internal/kinematics"
)

const maxConcurrentReads = 4

var ErrEmptyTexture = errors.New("empty texture file")

type Texture struct {
	Path  string
	Bytes int
	Err   error
}

func (t Texture) Loaded() bool { return t.Err == nil && t.Bytes > 0 }

// Result is what a load produced. Missing files are recorded, not returned.
type Result struct {
	Textures    map[kinematics.BodyID]Texture
	Environment []Texture
	Loaded      int
	Failed      int
}

func (r *Result) Total() int { return r.Loaded + r.Failed }

// Manager loads a manifest and reports through optional callbacks. All
// callbacks run on the goroutine that called Load, in completion order.
type Manager struct {
	OnStart    func(total int)
	OnProgress func(path string, loaded, total int)
	OnError    func(path string, err error)
	OnLoad     func(r *Result)

	log zerolog.Logger
}

func NewManager(log zerolog.Logger) *Manager {
	m := &Manager{log: log}
	m.OnStart = func(total int) { m.log.Info().Int("items", total).Msg("asset loading started") }
	m.OnProgress = func(path string, loaded, total int) {
		m.log.Debug().Str("path", path).Int("loaded", loaded).Int("total", total).Msg("asset loaded")
	}
	m.OnError = func(path string, err error) { m.log.Warn().Err(err).Str("path", path).Msg("asset failed to load") }
	m.OnLoad = func(r *Result) {
		m.log.Info().Int("loaded", r.Loaded).Int("failed", r.Failed).Msg("asset loading complete")
	}
	return m
}

type loaded struct {
	index int
	tex   Texture
}

// Load reads every manifest entry from fsys. It returns early with whatever
// completed if ctx is canceled.
func (m *Manager) Load(ctx context.Context, fsys fs.FS, manifest Manifest) *Result {
	paths := manifest.paths()
	total := len(paths)
	if m.OnStart != nil {
		m.OnStart(total)
	}

	out := make(chan loaded)
	sem := make(chan struct{}, maxConcurrentReads)
	var wg sync.WaitGroup
	for i, p := range paths {
		wg.Add(1)
		go func(idx int, p string) {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return
			}
			defer func() { <-sem }()

			data, err := fs.ReadFile(fsys, p)
			if err == nil && len(data) == 0 {
				err = fmt.Errorf("%s: %w", p, ErrEmptyTexture)
			}
			tex := Texture{Path: p, Bytes: len(data), Err: err}
			select {
			case out <- loaded{index: idx, tex: tex}:
			case <-ctx.Done():
			}
		}(i, p)
	}
	go func() {
		wg.Wait()
		close(out)
	}()

	textures := make([]Texture, total)
	seen := make([]bool, total)
	result := &Result{Textures: make(map[kinematics.BodyID]Texture, len(manifest.Textures))}
	for l := range out {
		textures[l.index] = l.tex
		seen[l.index] = true
		if !l.tex.Loaded() {
			result.Failed++
			if m.OnError != nil {
				m.OnError(l.tex.Path, l.tex.Err)
			}
			continue
		}
		result.Loaded++
		if m.OnProgress != nil {
			m.OnProgress(l.tex.Path, result.Loaded, total)
		}
	}

	for i, it := range manifest.Textures {
		if seen[i] {
			result.Textures[it.Body] = textures[i]
		}
	}
	for i := range manifest.Environment {
		if idx := len(manifest.Textures) + i; seen[idx] {
			result.Environment = append(result.Environment, textures[idx])
		}
	}

	if m.OnLoad != nil {
		m.OnLoad(result)
	}
	return result
}

// LoadAsync runs Load on its own goroutine. Callbacks then run on that
// goroutine too.
func (m *Manager) LoadAsync(ctx context.Context, fsys fs.FS, manifest Manifest) <-chan *Result {
	ch := make(chan *Result, 1)
	go func() {
		ch <- m.Load(ctx, fsys, manifest)
		close(ch)
	}()
	return ch
}
