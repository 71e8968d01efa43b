package payments

import (
	"sync"
	"testing"

	"github.com/Harshit-patil56/Land-deals-manager-sub000/models"
	"github.com/stretchr/testify/assert"
)

func TestProofRenderKind(t *testing.T) {
	assert.Equal(t, RenderPDF, ProofRenderKind(models.Proof{FilePath: "uploads/r.PDF"}))
	assert.Equal(t, RenderImage, ProofRenderKind(models.Proof{FilePath: "uploads/r.jpeg"}))
	assert.Equal(t, RenderFile, ProofRenderKind(models.Proof{FilePath: "uploads/r.docx"}))
	assert.Equal(t, RenderImage, ProofRenderKind(models.Proof{FileName: "scan.png"}))
}

func TestRenderTracker(t *testing.T) {
	tr := NewRenderTracker()
	tr.MarkFailed("11", "3")

	assert.True(t, tr.Failed("11", "3"))
	assert.False(t, tr.Failed("11", "4"))
	assert.False(t, tr.Failed("12", "3"))

	views := tr.Views("11", []models.Proof{{ID: "3", FilePath: "a.png"}, {ID: "4", FilePath: "b.pdf"}})
	assert.True(t, views[0].Failed)
	assert.Equal(t, RenderImage, views[0].Kind)
	assert.False(t, views[1].Failed)

	tr.Reset("11")
	assert.False(t, tr.Failed("11", "3"))
}

func TestRenderTracker_Concurrent(t *testing.T) {
	tr := NewRenderTracker()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr.MarkFailed("1", "p")
			_ = tr.Failed("1", "p")
		}()
	}
	wg.Wait()
	assert.True(t, tr.Failed("1", "p"))
}

func TestRenderTracker_EvictsOldestPayment(t *testing.T) {
	tr := NewRenderTrackerWithLimit(2)
	tr.MarkFailed("1", "a")
	tr.MarkFailed("2", "a")
	tr.MarkFailed("2", "b")
	tr.MarkFailed("3", "a")

	assert.Equal(t, 2, tr.Len())
	assert.False(t, tr.Failed("1", "a"))
	assert.True(t, tr.Failed("2", "b"))
	assert.True(t, tr.Failed("3", "a"))

	tr.Reset("2")
	tr.MarkFailed("4", "a")
	assert.Equal(t, 2, tr.Len())
	assert.True(t, tr.Failed("3", "a"))
	assert.True(t, tr.Failed("4", "a"))
}
