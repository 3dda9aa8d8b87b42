package invoice

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/nithyashree19/electromart/internal/domain"
	"github.com/nithyashree19/electromart/internal/export"
	"github.com/nithyashree19/electromart/internal/pricing"
)

type Status string

const (
	StatusIdle       Status = "IDLE"
	StatusValidating Status = "VALIDATING"
	StatusBuilding   Status = "BUILDING"
	StatusRendering  Status = "RENDERING"
)

// IsBusy reports whether a generation attempt is underway.
func (s Status) IsBusy() bool {
	return s != StatusIdle && s != ""
}

var (
	// ErrGeneration wraps any failure during document building, rendering
	// or export. The attempt may be retried from scratch.
	ErrGeneration = errors.New("invoice generation failed")

	// ErrGenerationInProgress is returned while another attempt is in
	// flight, from validation through export.
	ErrGenerationInProgress = errors.New("invoice generation already in progress")

	// ErrNothingSelected is returned when the selection is empty.
	ErrNothingSelected = errors.New("no items selected for invoice")
)

// SelectionSource supplies the cart items eligible for invoicing.
// The builder defines the interface; the wiring provides it.
type SelectionSource interface {
	SelectedItems() []domain.CartItem
}

// Renderer turns a document into an exportable artifact. Implementations
// honor ctx cancellation so a caller's deadline bounds the rendering phase.
type Renderer interface {
	Render(ctx context.Context, doc *Document) ([]byte, error)
}

// Builder runs the invoice pipeline: validate customer input, assemble the
// document, render it and hand the artifact to the export sink. At most one
// attempt is in flight at a time; every attempt, successful or not, ends
// back in Idle.
type Builder struct {
	source   SelectionSource
	numbers  NumberGenerator
	renderer Renderer
	sink     export.Sink
	logger   *zap.Logger

	mu       sync.Mutex
	status   Status
	inFlight bool

	now func() time.Time
}

func NewBuilder(source SelectionSource, numbers NumberGenerator, renderer Renderer,
	sink export.Sink, logger *zap.Logger) *Builder {
	return &Builder{
		source:   source,
		numbers:  numbers,
		renderer: renderer,
		sink:     sink,
		logger:   logger,
		status:   StatusIdle,
		now:      time.Now,
	}
}

// Status returns the current pipeline phase.
func (b *Builder) Status() Status {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.status
}

// Generate runs one invoice attempt and returns the exported artifact name.
// Validation failures surface as *domain.ValidationError without side
// effects; everything after validation fails as ErrGeneration. The cart and
// selection are never touched.
func (b *Builder) Generate(ctx context.Context, customer domain.CustomerDetails) (string, error) {
	// Claiming inFlight in the same critical section as the check keeps
	// a second call out for the whole attempt, validation included.
	b.mu.Lock()
	if b.inFlight {
		b.mu.Unlock()
		return "", ErrGenerationInProgress
	}
	b.inFlight = true
	b.status = StatusValidating
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		b.status = StatusIdle
		b.inFlight = false
		b.mu.Unlock()
	}()

	if err := customer.Validate(); err != nil {
		return "", err
	}

	items := b.source.SelectedItems()
	if len(items) == 0 {
		return "", ErrNothingSelected
	}

	b.setStatus(StatusBuilding)
	doc := BuildDocument(b.numbers.Next(), b.now(), customer, items, pricing.Calculate(items))

	b.setStatus(StatusRendering)
	data, err := b.renderer.Render(ctx, doc)
	if err != nil {
		b.logger.Error("invoice rendering failed", zap.String("number", doc.Number), zap.Error(err))
		return "", fmt.Errorf("%w: render: %v", ErrGeneration, err)
	}

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	filename := doc.Filename()
	if err := b.sink.Export(ctx, filename, data); err != nil {
		b.logger.Error("invoice export failed", zap.String("filename", filename), zap.Error(err))
		return "", fmt.Errorf("%w: export: %v", ErrGeneration, err)
	}

	b.logger.Info("invoice exported",
		zap.String("number", doc.Number),
		zap.String("filename", filename),
		zap.Int("lines", len(doc.Lines)))
	return filename, nil
}

func (b *Builder) setStatus(s Status) {
	b.mu.Lock()
	b.status = s
	b.mu.Unlock()
}
