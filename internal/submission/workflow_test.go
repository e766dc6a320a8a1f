package submission

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

// ── Stub ports recording call order ──────────────────────────────────────────

type stubUploader struct {
	mu        sync.Mutex
	calls     *[]string
	uploadErr error
	paths     []string
}

func (u *stubUploader) Upload(_ context.Context, path string, _ *ImageFile) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	*u.calls = append(*u.calls, "upload")
	u.paths = append(u.paths, path)
	return u.uploadErr
}

func (u *stubUploader) PublicURL(path string) string {
	return "https://cdn.example.com/catalogo/" + path
}

type stubCreator struct {
	mu        sync.Mutex
	calls     *[]string
	createErr error
	records   []ProductRecord
	orphans   []string
}

func (c *stubCreator) CreateProduct(_ context.Context, rec ProductRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	*c.calls = append(*c.calls, "create_record")
	c.records = append(c.records, rec)
	return c.createErr
}

func (c *stubCreator) ReportOrphan(_ context.Context, path, _ string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.orphans = append(c.orphans, path)
	return nil
}

func newTestWorkflow() (*Workflow, *stubUploader, *stubCreator, *[]string) {
	calls := &[]string{}
	up := &stubUploader{calls: calls}
	cr := &stubCreator{calls: calls}
	return NewWorkflow(up, cr), up, cr, calls
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestSubmitUploadsThenCreatesExactlyOnce(t *testing.T) {
	w, up, cr, calls := newTestWorkflow()

	outcome, err := w.Submit(context.Background(), validInput())
	require.NoError(t, err)

	assert.Equal(t, []string{"upload", "create_record"}, *calls)
	assert.Equal(t, StateSucceeded, w.State())

	require.Len(t, up.paths, 1)
	assert.True(t, strings.HasPrefix(up.paths[0], "products/"))
	assert.True(t, strings.HasSuffix(up.paths[0], ".jpg"))
	assert.Equal(t, up.paths[0], outcome.ObjectPath)
	assert.Equal(t, "https://cdn.example.com/catalogo/"+up.paths[0], outcome.ImageURL)

	require.Len(t, cr.records, 1)
	assert.Equal(t, outcome.ImageURL, cr.records[0].ImageURL)
}

func TestSubmitValidationFailureMakesNoNetworkCall(t *testing.T) {
	w, _, _, calls := newTestWorkflow()

	in := validInput()
	in.PriceText = "abc"

	_, err := w.Submit(context.Background(), in)
	var vf *ValidationFailed
	require.ErrorAs(t, err, &vf)
	assert.Contains(t, vf.Fields, "price")

	assert.Empty(t, *calls)
	assert.Equal(t, StateFailed, w.State())
}

func TestSubmitUploadFailureSkipsRecordCreation(t *testing.T) {
	w, up, cr, calls := newTestWorkflow()
	up.uploadErr = errors.New("bucket unavailable")

	_, err := w.Submit(context.Background(), validInput())
	var wf *WorkflowError
	require.ErrorAs(t, err, &wf)
	assert.Equal(t, StageUpload, wf.Stage)

	assert.Equal(t, []string{"upload"}, *calls)
	assert.Empty(t, cr.records)
	assert.Equal(t, StateFailed, w.State())
}

func TestSubmitCreateFailureReportsOrphanAndSkipsSuccess(t *testing.T) {
	w, up, cr, _ := newTestWorkflow()
	cr.createErr = errors.New("500 internal server error")

	succeeded := false
	w.OnSuccess = func() { succeeded = true }

	_, err := w.Submit(context.Background(), validInput())
	var wf *WorkflowError
	require.ErrorAs(t, err, &wf)
	assert.Equal(t, StageCreateRecord, wf.Stage)

	assert.False(t, succeeded, "success hook must not fire on create failure")
	assert.Equal(t, StateFailed, w.State())

	// The uploaded object is handed to the garbage collector.
	require.Len(t, cr.orphans, 1)
	assert.Equal(t, up.paths[0], cr.orphans[0])
}

func TestSubmitPriceSerializesAsNumber(t *testing.T) {
	w, _, cr, _ := newTestWorkflow()

	in := validInput() // price text "12.90"
	_, err := w.Submit(context.Background(), in)
	require.NoError(t, err)

	require.Len(t, cr.records, 1)
	assert.True(t, cr.records[0].Price.Equal(mustDecimal(t, "12.9")))

	body, err := json.Marshal(cr.records[0])
	require.NoError(t, err)
	assert.Contains(t, string(body), `"price":12.9`)
	assert.NotContains(t, string(body), `"price":"12.9"`)
}

func TestSubmitRejectsOverlappingSubmission(t *testing.T) {
	calls := &[]string{}
	release := make(chan struct{})
	up := &blockingUploader{
		stubUploader: stubUploader{calls: calls},
		started:      make(chan struct{}),
		release:      release,
	}
	cr := &stubCreator{calls: calls}
	w := NewWorkflow(up, cr)

	done := make(chan error, 1)
	go func() {
		_, err := w.Submit(context.Background(), validInput())
		done <- err
	}()

	<-up.started
	_, err := w.Submit(context.Background(), validInput())
	assert.ErrorIs(t, err, ErrSubmissionInFlight)

	close(release)
	require.NoError(t, <-done)

	// A finished workflow accepts a new submission.
	_, err = w.Submit(context.Background(), validInput())
	require.NoError(t, err)
}

type blockingUploader struct {
	stubUploader
	once    sync.Once
	started chan struct{}
	release chan struct{}
}

func (u *blockingUploader) Upload(ctx context.Context, path string, img *ImageFile) error {
	u.once.Do(func() {
		close(u.started)
		<-u.release
	})
	return u.stubUploader.Upload(ctx, path, img)
}

func TestSubmitGeneratesUniqueObjectNames(t *testing.T) {
	w, up, _, _ := newTestWorkflow()

	for i := 0; i < 5; i++ {
		_, err := w.Submit(context.Background(), validInput())
		require.NoError(t, err)
	}

	seen := make(map[string]bool)
	for _, p := range up.paths {
		assert.False(t, seen[p], "object path %q reused", p)
		seen[p] = true
	}
}
