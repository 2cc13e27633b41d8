package pipeline

import "context"

// TransformerOption configures a Transformer.
type TransformerOption func(*Transformer)

// WithCodeRenderer sets the renderer used for fenced code blocks.
// A nil renderer keeps PlainCodeRenderer.
func WithCodeRenderer(render CodeRenderer) TransformerOption {
	return func(t *Transformer) {
		if render != nil {
			t.renderCode = render
		}
	}
}

// Transformer converts the native Markdown dialect to an HTML fragment.
// It holds no per-document state and is safe for concurrent use.
type Transformer struct {
	renderCode CodeRenderer
}

// Compile-time interface check.
var _ HTMLConverter = (*Transformer)(nil)

// NewTransformer creates a Transformer with plain code rendering unless an
// option says otherwise.
func NewTransformer(opts ...TransformerOption) *Transformer {
	t := &Transformer{renderCode: PlainCodeRenderer}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Transform runs the stages in order: code block extraction, inline rules,
// block rules, paragraph wrapping, placeholder restoration.
func (t *Transformer) Transform(markdown string) string {
	text := normalizeLineEndings(markdown)
	text, table := ExtractCodeBlocks(text, t.renderCode)
	text = TransformInline(text)
	text = TransformBlocks(text)
	text = WrapParagraphs(text)
	return table.Restore(text)
}

// ToHTML implements HTMLConverter. The transform itself never fails; only a
// context that is already done is reported.
func (t *Transformer) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return t.Transform(content), nil
}
