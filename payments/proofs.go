package payments

import (
	"path"
	"strings"
	"sync"

	"github.com/Harshit-patil56/Land-deals-manager-sub000/models"
)

// RenderKind says how a proof preview is shown.
type RenderKind string

const (
	RenderPDF   RenderKind = "pdf"
	RenderImage RenderKind = "image"
	RenderFile  RenderKind = "file"
)

var imageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true, ".bmp": true,
}

// ProofRenderKind classifies a proof by its file extension.
func ProofRenderKind(p models.Proof) RenderKind {
	name := p.FilePath
	if name == "" {
		name = p.FileName
	}
	ext := strings.ToLower(path.Ext(name))
	switch {
	case ext == ".pdf":
		return RenderPDF
	case imageExts[ext]:
		return RenderImage
	}
	return RenderFile
}

// DefaultTrackedPayments bounds how many payments a RenderTracker keeps
// failures for.
const DefaultTrackedPayments = 1000

// RenderTracker remembers which proof previews failed to load, per payment.
// A failed preview is shown dimmed and never retried until Reset. Once the
// limit is reached the payment tracked longest is forgotten first.
type RenderTracker struct {
	mu     sync.RWMutex
	limit  int
	order  []string
	failed map[string]map[string]struct{}
}

func NewRenderTracker() *RenderTracker {
	return NewRenderTrackerWithLimit(DefaultTrackedPayments)
}

// NewRenderTrackerWithLimit tracks at most limit payments.
func NewRenderTrackerWithLimit(limit int) *RenderTracker {
	if limit <= 0 {
		limit = DefaultTrackedPayments
	}
	return &RenderTracker{limit: limit, failed: make(map[string]map[string]struct{})}
}

// MarkFailed records a load failure for one proof. Callers check that the
// proof belongs to the payment.
func (t *RenderTracker) MarkFailed(paymentID, proofID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	set, ok := t.failed[paymentID]
	if !ok {
		if len(t.order) >= t.limit {
			delete(t.failed, t.order[0])
			t.order = t.order[1:]
		}
		set = make(map[string]struct{})
		t.failed[paymentID] = set
		t.order = append(t.order, paymentID)
	}
	set[proofID] = struct{}{}
}

// Len returns how many payments have recorded failures.
func (t *RenderTracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.failed)
}

// Failed reports whether the proof's preview has failed before.
func (t *RenderTracker) Failed(paymentID, proofID string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.failed[paymentID][proofID]
	return ok
}

// Reset forgets all failures of a payment, typically after its proof list
// was refetched.
func (t *RenderTracker) Reset(paymentID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.failed[paymentID]; !ok {
		return
	}
	delete(t.failed, paymentID)
	for i, id := range t.order {
		if id == paymentID {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

// ProofView is a proof annotated for display.
type ProofView struct {
	models.Proof
	Kind   RenderKind `json:"render_kind"`
	Failed bool       `json:"load_failed"`
}

// Views annotates proofs with their render kind and failure state.
func (t *RenderTracker) Views(paymentID string, proofs []models.Proof) []ProofView {
	out := make([]ProofView, 0, len(proofs))
	for _, p := range proofs {
		out = append(out, ProofView{
			Proof:  p,
			Kind:   ProofRenderKind(p),
			Failed: t.Failed(paymentID, p.ID.String()),
		})
	}
	return out
}
