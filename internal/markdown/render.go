package markdown

import (
	"fmt"
	"io"
	"runtime"
	"sync"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/johnhooks/highlighter/internal/foundation/errors"
	"github.com/johnhooks/highlighter/internal/highlight"
)

// fenceRendererPriority places the renderer ahead of goldmark's default
// HTML renderer (priority 1000).
const fenceRendererPriority = 100

// Extension is a goldmark extension that renders fenced code blocks through
// a Highlighter.
type Extension struct {
	Highlighter *highlight.Highlighter
}

// NewExtension returns an extension rendering fences with h.
func NewExtension(h *highlight.Highlighter) *Extension {
	return &Extension{Highlighter: h}
}

// Extend registers the fenced code block renderer.
func (e *Extension) Extend(m goldmark.Markdown) {
	m.Renderer().AddOptions(
		renderer.WithNodeRenderers(
			util.Prioritized(&fenceRenderer{h: e.Highlighter}, fenceRendererPriority),
		),
	)
}

type fenceRenderer struct {
	h *highlight.Highlighter
	// rendered holds markup prepared ahead of the render walk.
	rendered map[gmast.Node]string
}

func (r *fenceRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(gmast.KindFencedCodeBlock, r.renderFence)
}

func (r *fenceRenderer) renderFence(w util.BufWriter, source []byte, n gmast.Node, entering bool) (gmast.WalkStatus, error) {
	if !entering {
		return gmast.WalkContinue, nil
	}

	markup, ok := r.rendered[n]
	if !ok {
		var err error
		markup, err = highlightNode(r.h, n.(*gmast.FencedCodeBlock), source)
		if err != nil {
			return gmast.WalkStop, err
		}
	}

	_, _ = w.WriteString(markup)
	_ = w.WriteByte('\n')
	return gmast.WalkSkipChildren, nil
}

func highlightNode(h *highlight.Highlighter, node *gmast.FencedCodeBlock, source []byte) (string, error) {
	fence := newCodeFence(node, source)
	markup, err := h.HighlightFence(fence.Code, fence.Metadata)
	if err != nil {
		return "", fmt.Errorf("code block at line %d: %w", fence.Line, err)
	}
	return markup, nil
}

// Render converts a Markdown body to HTML, replacing every fenced code block
// with highlighted markup. Fences are highlighted concurrently before the
// document is written.
func Render(w io.Writer, body []byte, h *highlight.Highlighter) error {
	fr := &fenceRenderer{h: h}
	md := goldmark.New(goldmark.WithRendererOptions(
		renderer.WithNodeRenderers(util.Prioritized(fr, fenceRendererPriority)),
	))

	root := md.Parser().Parse(text.NewReader(body))

	rendered, err := highlightAll(h, root, body)
	if err != nil {
		return err
	}
	fr.rendered = rendered

	if err := md.Renderer().Render(w, body, root); err != nil {
		return errors.WrapError(err, errors.CategoryRender, "failed to render markdown").Build()
	}
	return nil
}

// highlightAll highlights every fenced block below root using a bounded
// number of goroutines.
func highlightAll(h *highlight.Highlighter, root gmast.Node, body []byte) (map[gmast.Node]string, error) {
	var nodes []*gmast.FencedCodeBlock
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if node, ok := n.(*gmast.FencedCodeBlock); ok && entering {
			nodes = append(nodes, node)
			return gmast.WalkSkipChildren, nil
		}
		return gmast.WalkContinue, nil
	})

	results := make([]string, len(nodes))
	errs := make([]error, len(nodes))
	sem := make(chan struct{}, runtime.GOMAXPROCS(0))

	var wg sync.WaitGroup
	for i, node := range nodes {
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			results[i], errs[i] = highlightNode(h, node, body)
		}()
	}
	wg.Wait()

	rendered := make(map[gmast.Node]string, len(nodes))
	for i, node := range nodes {
		if errs[i] != nil {
			return nil, errs[i]
		}
		rendered[node] = results[i]
	}
	return rendered, nil
}
