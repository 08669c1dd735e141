package transfer

import (
	"context"
	"net/url"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pathclip/pkg/copyset"
	"github.com/matzehuels/pathclip/pkg/errors"
	"github.com/matzehuels/pathclip/pkg/gpml"
	"github.com/matzehuels/pathclip/pkg/observability"
	"github.com/matzehuels/pathclip/pkg/pathway"
)

// DocumentLoader opens a whole document from a locator. It is used when a
// payload points at a file instead of carrying a fragment.
type DocumentLoader interface {
	LoadDocument(ctx context.Context, loc *url.URL) (*pathway.Model, error)
}

// FileLoader loads documents from file URLs with the gpml codec.
type FileLoader struct{}

// LoadDocument reads the document at loc.
func (FileLoader) LoadDocument(_ context.Context, loc *url.URL) (*pathway.Model, error) {
	if loc == nil || loc.Scheme != "file" {
		return nil, errors.New(errors.ErrCodeInvalidLocator, "not a file locator: %v", loc)
	}
	if err := errors.ValidatePath(loc.Path); err != nil {
		return nil, err
	}
	return gpml.ReadFile(loc.Path)
}

// Adapter moves fragments between documents and transfer payloads.
// The zero value is not usable - use NewAdapter.
type Adapter struct {
	logger *log.Logger
	loader DocumentLoader
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithLogger sets the diagnostic logger.
func WithLogger(l *log.Logger) Option {
	return func(a *Adapter) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithLoader sets the collaborator used for file locators.
func WithLoader(d DocumentLoader) Option {
	return func(a *Adapter) {
		if d != nil {
			a.loader = d
		}
	}
}

// NewAdapter returns an adapter that logs to log.Default and loads file
// locators with FileLoader unless configured otherwise.
func NewAdapter(opts ...Option) *Adapter {
	a := &Adapter{logger: log.Default(), loader: FileLoader{}}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Produce serializes a fragment. A failure is logged and reported as
// absence; no partial text is ever returned.
func (a *Adapter) Produce(m *pathway.Model) (string, bool) {
	return a.produce(context.Background(), m)
}

func (a *Adapter) produce(ctx context.Context, m *pathway.Model) (string, bool) {
	data, err := gpml.Marshal(m)
	if err != nil {
		a.logger.Error("unable to serialize fragment", "err", err)
		observability.Transfer().OnProduceFailed(ctx, err)
		return "", false
	}
	return string(data), true
}

// Produced is the result of ProduceAsync.
type Produced struct {
	Text string
	OK   bool
}

// ProduceAsync serializes m on a separate goroutine. The channel receives
// exactly one result and is then closed. m must not be modified until the
// result arrives.
func (a *Adapter) ProduceAsync(ctx context.Context, m *pathway.Model) <-chan Produced {
	ch := make(chan Produced, 1)
	go func() {
		defer close(ch)
		text, ok := a.produce(ctx, m)
		ch <- Produced{Text: text, OK: ok}
	}()
	return ch
}

// Offer returns the payload for m: exactly the text flavor, or an empty
// payload if serialization failed.
func (a *Adapter) Offer(m *pathway.Model) Payload {
	text, ok := a.Produce(m)
	if !ok {
		return Payload{}
	}
	return TextPayload(text)
}

// Load returns the content of p as a model. Text is decoded as a fragment;
// without text, a file locator is opened through the loader. A payload with
// neither yields nil and no error.
func (a *Adapter) Load(ctx context.Context, p Payload) (*pathway.Model, error) {
	if text, ok := ExtractText(p); ok {
		return gpml.Unmarshal([]byte(text))
	}
	if loc, ok := ExtractFileLocation(p); ok {
		return a.loader.LoadDocument(ctx, loc)
	}
	return nil, nil
}

// Open is Load for opening a payload as a document of its own: a file
// locator is preferred over text.
func (a *Adapter) Open(ctx context.Context, p Payload) (*pathway.Model, error) {
	if loc, ok := ExtractFileLocation(p); ok {
		return a.loader.LoadDocument(ctx, loc)
	}
	if text, ok := ExtractText(p); ok {
		return gpml.Unmarshal([]byte(text))
	}
	return nil, nil
}

// Copied is the outcome of Adapter.Copy.
type Copied struct {
	Fragment *pathway.Model
	Report   *copyset.Report
	// Payload is empty if the fragment could not be serialized.
	Payload Payload
}

// Copy runs a full copy of selection out of src: duplicate, remap against
// src as the live document, assemble the fragment and serialize it.
func (a *Adapter) Copy(ctx context.Context, src *pathway.Model, selection []pathway.Element, opts ...copyset.Option) (_ *Copied, err error) {
	start := time.Now()
	hooks := observability.Transfer()
	hooks.OnCopyStart(ctx, len(selection))

	var out *Copied
	defer func() {
		elements, dropped := 0, 0
		if out != nil {
			elements = out.Fragment.Len()
			dropped = len(out.Report.Dropped)
		}
		hooks.OnCopyComplete(ctx, elements, dropped, time.Since(start), err)
	}()

	opts = append([]copyset.Option{copyset.WithLogger(a.logger)}, opts...)
	set, err := copyset.Build(src, selection, opts...)
	if err != nil {
		return nil, err
	}
	report, err := set.Remap(src, a.logger)
	if err != nil {
		return nil, err
	}
	frag, err := set.Fragment()
	if err != nil {
		return nil, err
	}
	out = &Copied{Fragment: frag, Report: report, Payload: a.Offer(frag)}
	a.logger.Debug("copied fragment",
		"elements", frag.Len(),
		"dropped", len(report.Dropped),
		"external", len(report.External))
	return out, nil
}
