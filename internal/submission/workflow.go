package submission

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// State tracks one submission attempt through its lifecycle.
type State string

const (
	StateIdle           State = "idle"
	StateValidating     State = "validating"
	StateUploading      State = "uploading"
	StateCreatingRecord State = "creating_record"
	StateSucceeded      State = "succeeded"
	StateFailed         State = "failed"
)

// Workflow stages used in error reporting.
const (
	StageUpload       = "upload"
	StageCreateRecord = "create_record"
)

// ErrSubmissionInFlight is returned when Submit is called while a previous
// submission has not finished. Mirrors the disabled submit control.
var ErrSubmissionInFlight = errors.New("a submission is already in flight")

// WorkflowError wraps a post-validation failure with the stage it occurred in,
// so callers can show the user something more useful than a silent log line.
type WorkflowError struct {
	Stage string
	Err   error
}

func (e *WorkflowError) Error() string { return e.Stage + ": " + e.Err.Error() }
func (e *WorkflowError) Unwrap() error { return e.Err }

// ValidationFailed carries the per-field messages back to the form. No
// network call was made when this is returned.
type ValidationFailed struct {
	Fields map[string]string
}

func (e *ValidationFailed) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

// Uploader writes the image into the bucket and resolves its public URL.
type Uploader interface {
	Upload(ctx context.Context, path string, img *ImageFile) error
	PublicURL(path string) string
}

// RecordCreator persists the product through the API and reports orphaned
// uploads when the record call fails after a successful upload.
type RecordCreator interface {
	CreateProduct(ctx context.Context, rec ProductRecord) error
	ReportOrphan(ctx context.Context, path, reason string) error
}

// ProductRecord is the creation request body. Price serializes as a JSON
// number.
type ProductRecord struct {
	Name        string          `json:"name"`
	Type        string          `json:"type"`
	Description *string         `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  string          `json:"categoryId"`
	ImageURL    string          `json:"imageUrl"`
	Barcode     string          `json:"barcode"`
}

// Outcome describes a successful submission.
type Outcome struct {
	ObjectPath string
	ImageURL   string
}

// Workflow orchestrates one product submission: Validate → Upload →
// CreateRecord. At most one submission runs at a time per Workflow instance;
// concurrent Submit calls fail fast with ErrSubmissionInFlight.
type Workflow struct {
	uploader Uploader
	records  RecordCreator

	mu       sync.Mutex
	inFlight bool
	state    State

	// OnSuccess runs after a successful submission (e.g. navigate to the
	// product listing). Optional.
	OnSuccess func()
}

func NewWorkflow(uploader Uploader, records RecordCreator) *Workflow {
	return &Workflow{uploader: uploader, records: records, state: StateIdle}
}

// State returns the current lifecycle state.
func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

func (w *Workflow) setState(s State) {
	w.mu.Lock()
	w.state = s
	w.mu.Unlock()
}

// Submit runs the full submission sequence. The upload happens first; the
// record call is only issued after the upload resolves — never the reverse,
// never in parallel. A failed submission is not retried; the caller re-enters
// via a fresh Submit.
func (w *Workflow) Submit(ctx context.Context, in Input) (*Outcome, error) {
	w.mu.Lock()
	if w.inFlight {
		w.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}
	w.inFlight = true
	w.state = StateValidating
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.inFlight = false
		w.mu.Unlock()
	}()

	res := Validate(in)
	if !res.OK() {
		w.setState(StateFailed)
		return nil, &ValidationFailed{Fields: res.Errors}
	}
	parsed := res.Valid

	// Randomized object name, original extension preserved. Collisions in the
	// shared bucket are a data-loss bug, not a cosmetic one.
	path := "products/" + uuid.NewString() + parsed.Image.Ext()

	w.setState(StateUploading)
	if err := w.uploader.Upload(ctx, path, parsed.Image); err != nil {
		w.setState(StateFailed)
		return nil, &WorkflowError{Stage: StageUpload, Err: err}
	}

	imageURL := w.uploader.PublicURL(path)

	w.setState(StateCreatingRecord)
	rec := ProductRecord{
		Name:        parsed.Name,
		Type:        parsed.PackagingType,
		Description: parsed.Description,
		Price:       parsed.Price,
		CategoryID:  parsed.CategoryID,
		ImageURL:    imageURL,
		Barcode:     parsed.Barcode,
	}
	if err := w.records.CreateProduct(ctx, rec); err != nil {
		// The object is already in the bucket; hand it to the server-side
		// garbage collector rather than leaving it orphaned forever.
		if rerr := w.records.ReportOrphan(ctx, path, "product creation failed: "+err.Error()); rerr != nil {
			log.Warn().Err(rerr).Str("path", path).Msg("failed to report orphaned upload")
		}
		w.setState(StateFailed)
		return nil, &WorkflowError{Stage: StageCreateRecord, Err: err}
	}

	w.setState(StateSucceeded)
	if w.OnSuccess != nil {
		w.OnSuccess()
	}
	return &Outcome{ObjectPath: path, ImageURL: imageURL}, nil
}
