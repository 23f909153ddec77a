package intake

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cjmtools/caseintake/internal/client/api"
	"github.com/cjmtools/caseintake/internal/client/scanner"
	"github.com/cjmtools/caseintake/internal/common"
	"github.com/cjmtools/caseintake/internal/models"
)

// ---- fakes ----

type fakeStore struct {
	mu        sync.Mutex
	appends   []api.AppendRequest
	appendErr error
	records   []models.CaseRecord
}

func (s *fakeStore) Append(ctx context.Context, req api.AppendRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.appendErr != nil {
		return s.appendErr
	}
	s.appends = append(s.appends, req)
	return nil
}

func (s *fakeStore) ListAll(ctx context.Context) ([]models.CaseRecord, error) {
	return s.records, nil
}

func (s *fakeStore) appendCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.appends)
}

type countingBeeper struct {
	mu    sync.Mutex
	beeps int
}

func (b *countingBeeper) Beep() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.beeps++
}

func (b *countingBeeper) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.beeps
}

type fakeRenderer struct {
	ready bool
	out   string
	calls int
}

func (r *fakeRenderer) Ready() bool { return r.ready }
func (r *fakeRenderer) RenderSVG(text string, sizePx int) string {
	r.calls++
	return r.out
}

func newOrchestrator(store *fakeStore, beeper *countingBeeper, renderer SymbolRenderer) *Orchestrator {
	return NewOrchestrator(store, beeper, renderer, nil)
}

// ---- tests ----

func TestHandleReading_PayloadFillsAllFields(t *testing.T) {
	beeper := &countingBeeper{}
	o := newOrchestrator(&fakeStore{}, beeper, nil)
	o.SetName("typed-over")

	o.HandleReading(scanner.Reading{Data: "Jane Doe|CASE-42|CR-9|2024-05-01", At: time.Unix(1, 0)})

	form := o.Form()
	require.Equal(t, "Jane Doe", form.Name)
	require.Equal(t, "CASE-42", form.CaseNumber)
	require.Equal(t, "CR-9", form.CrimeNumber)
	require.Equal(t, "2024-05-01", form.ForwardDate)
	require.Equal(t, "Jane Doe|CASE-42|CR-9|2024-05-01", o.LastScanned())
	require.Equal(t, 1, beeper.count())
}

func TestHandleReading_UnrecognizedFallsBackToCaseNumber(t *testing.T) {
	o := newOrchestrator(&fakeStore{}, &countingBeeper{}, nil)
	o.SetName("Jane")
	o.SetCrimeNumber("CR-1")

	o.HandleReading(scanner.Reading{Data: "ABC123", At: time.Unix(1, 0)})

	form := o.Form()
	require.Equal(t, "ABC123", form.CaseNumber)
	// Other fields untouched.
	require.Equal(t, "Jane", form.Name)
	require.Equal(t, "CR-1", form.CrimeNumber)
}

func TestHandleReading_DedupWithinWindow(t *testing.T) {
	beeper := &countingBeeper{}
	o := newOrchestrator(&fakeStore{}, beeper, nil)

	base := time.Unix(100, 0)
	o.HandleReading(scanner.Reading{Data: "ABC123", At: base})
	o.HandleReading(scanner.Reading{Data: "ABC123", At: base.Add(500 * time.Millisecond)})
	require.Equal(t, 1, beeper.count())

	// A different payload inside the window still goes through.
	o.HandleReading(scanner.Reading{Data: "XYZ789", At: base.Add(time.Second)})
	require.Equal(t, 2, beeper.count())

	// The same payload after the window goes through again.
	o.HandleReading(scanner.Reading{Data: "XYZ789", At: base.Add(4 * time.Second)})
	require.Equal(t, 3, beeper.count())
}

func TestSubmit_ValidationBlocksStorage(t *testing.T) {
	store := &fakeStore{}
	o := newOrchestrator(store, &countingBeeper{}, nil)
	o.SetName("   ")
	o.SetCaseNumber("CASE-42")

	err := o.Submit(context.Background())
	require.ErrorIs(t, err, common.ErrValidation)
	require.Equal(t, 0, store.appendCount())
	require.Equal(t, ValidationMessage, o.ValidationError())
}

func TestSubmit_SuccessClearsScanFieldsKeepsNote(t *testing.T) {
	store := &fakeStore{}
	beeper := &countingBeeper{}
	o := newOrchestrator(store, beeper, nil)

	o.SetName("Jane Doe")
	o.SetCaseNumber("CASE-42")
	o.SetCrimeNumber("CR-9")
	o.SetForwardDate("2024-05-01")
	o.SetManualNote("shift notes")

	require.NoError(t, o.Submit(context.Background()))

	require.Equal(t, 1, store.appendCount())
	req := store.appends[0]
	require.Equal(t, "Jane Doe", req.Name)
	require.Equal(t, "CASE-42", req.CaseNumber)
	require.Equal(t, "CR-9", models.TextOr(req.CrimeNumber))
	require.Equal(t, "2024-05-01", models.TextOr(req.ForwardDate))
	require.Equal(t, "shift notes", req.ManualNote)

	form := o.Form()
	require.Empty(t, form.Name)
	require.Empty(t, form.CaseNumber)
	require.Empty(t, form.CrimeNumber)
	require.Empty(t, form.ForwardDate)
	require.Equal(t, "shift notes", form.ManualNote)
	require.Empty(t, o.ValidationError())
	require.Equal(t, 1, beeper.count())
}

func TestSubmit_EmptyOptionalFieldsSentAsAbsent(t *testing.T) {
	store := &fakeStore{}
	o := newOrchestrator(store, &countingBeeper{}, nil)
	o.SetName("Jane")
	o.SetCaseNumber("C-1")

	require.NoError(t, o.Submit(context.Background()))
	require.Nil(t, store.appends[0].CrimeNumber)
	require.Nil(t, store.appends[0].ForwardDate)
}

func TestSubmit_StorageFailureKeepsForm(t *testing.T) {
	store := &fakeStore{appendErr: errors.New("rpc down")}
	o := newOrchestrator(store, &countingBeeper{}, nil)
	o.SetName("Jane")
	o.SetCaseNumber("C-1")

	err := o.Submit(context.Background())
	require.Error(t, err)

	// Form survives so the operator can retry.
	form := o.Form()
	require.Equal(t, "Jane", form.Name)
	require.Equal(t, "C-1", form.CaseNumber)
}

func TestGenerateSymbol_Gating(t *testing.T) {
	renderer := &fakeRenderer{ready: false, out: "<svg/>"}
	o := newOrchestrator(&fakeStore{}, &countingBeeper{}, renderer)

	o.SetName("Jane")
	o.SetCaseNumber("C-1")
	require.False(t, o.CanGenerateSymbol())
	require.Equal(t, "", o.GenerateSymbol(256))

	renderer.ready = true
	require.True(t, o.CanGenerateSymbol())
	require.Equal(t, "<svg/>", o.GenerateSymbol(256))

	o.SetCaseNumber("")
	require.False(t, o.CanGenerateSymbol())
}

func TestEndToEnd_ScanThenSubmit(t *testing.T) {
	store := &fakeStore{}
	o := newOrchestrator(store, &countingBeeper{}, nil)
	o.SetManualNote("on patrol")

	o.HandleReading(scanner.Reading{Data: "Jane Doe|CASE-42|CR-9|2024-05-01", At: time.Unix(1, 0)})
	require.NoError(t, o.Submit(context.Background()))

	req := store.appends[0]
	require.Equal(t, "Jane Doe", req.Name)
	require.Equal(t, "CASE-42", req.CaseNumber)
	require.Equal(t, "CR-9", models.TextOr(req.CrimeNumber))
	require.Equal(t, "2024-05-01", models.TextOr(req.ForwardDate))
	require.Equal(t, "on patrol", req.ManualNote)

	form := o.Form()
	require.Empty(t, form.Name)
	require.Equal(t, "on patrol", form.ManualNote)
}
