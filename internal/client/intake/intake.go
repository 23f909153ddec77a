// Package intake wires scan results through the payload codec into form
// state, validates submissions, and triggers persistence.
package intake

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cjmtools/caseintake/internal/client/api"
	"github.com/cjmtools/caseintake/internal/client/scanner"
	"github.com/cjmtools/caseintake/internal/client/sfx"
	"github.com/cjmtools/caseintake/internal/common"
	"github.com/cjmtools/caseintake/internal/logging"
	"github.com/cjmtools/caseintake/internal/models"
	"github.com/cjmtools/caseintake/internal/qrpayload"
)

// DedupWindow suppresses repeated scans of an identical payload, avoiding
// double beeps and auto-fill thrash while a badge stays in front of the
// camera.
const DedupWindow = 2 * time.Second

// ValidationMessage is shown inline when required fields are missing.
const ValidationMessage = "Name and Case Number are required"

// SymbolRenderer is the slice of the renderer the orchestrator needs.
type SymbolRenderer interface {
	Ready() bool
	RenderSVG(text string, sizePx int) string
}

// Form is a snapshot of the editable intake fields. ManualNote persists
// across submissions; the other four are scan-derived and cleared on submit.
type Form struct {
	Name        string
	CaseNumber  string
	CrimeNumber string
	ForwardDate string
	ManualNote  string
}

// Orchestrator owns the form state between scans and submissions. All
// methods are safe for concurrent use; scan results arrive from the
// controller's tick goroutine while the operator edits fields.
type Orchestrator struct {
	mu            sync.Mutex
	form          Form
	lastScanned   string
	lastPayload   string
	lastPayloadAt time.Time
	validationErr string

	store    api.Store
	beeper   sfx.Beeper
	renderer SymbolRenderer
	now      func() time.Time
	logger   logging.Logger
}

func NewOrchestrator(store api.Store, beeper sfx.Beeper, renderer SymbolRenderer, logger logging.Logger) *Orchestrator {
	if beeper == nil {
		beeper = sfx.NopBeeper{}
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Orchestrator{
		store:    store,
		beeper:   beeper,
		renderer: renderer,
		now:      time.Now,
		logger:   logger.With("module", "intake"),
	}
}

// HandleReading consumes the newest scan result. A payload in the expected
// 4-segment shape fills every field, overwriting manual edits — last scan
// wins. Anything else degrades to "use as case number" and leaves the other
// fields untouched. Either way the scan is confirmed audibly, unless it is
// an identical repeat within the dedup window.
func (o *Orchestrator) HandleReading(r scanner.Reading) {
	o.mu.Lock()

	at := r.At
	if at.IsZero() {
		at = o.now()
	}
	if r.Data == o.lastPayload && at.Sub(o.lastPayloadAt) < DedupWindow {
		o.lastPayloadAt = at
		o.mu.Unlock()
		return
	}
	o.lastPayload = r.Data
	o.lastPayloadAt = at
	o.lastScanned = r.Data

	if fields, ok := qrpayload.Decode(r.Data); ok {
		o.form.Name = fields.Name
		o.form.CaseNumber = fields.CaseNumber
		o.form.CrimeNumber = fields.CrimeNumber
		o.form.ForwardDate = fields.ForwardDate
	} else {
		o.form.CaseNumber = r.Data
	}
	o.mu.Unlock()

	o.logger.Debug(context.Background(), "scan consumed", "data", r.Data)
	o.beeper.Beep()
}

// Submit validates and persists the current form. Required-field failures
// block the call before any storage traffic and surface inline; storage
// failures pass through untouched so the caller can offer a retry. On
// success the scan-derived fields and the validation error are cleared,
// the manual note is kept, and the append is confirmed audibly.
func (o *Orchestrator) Submit(ctx context.Context) error {
	o.mu.Lock()
	name := strings.TrimSpace(o.form.Name)
	caseNumber := strings.TrimSpace(o.form.CaseNumber)
	if name == "" || caseNumber == "" {
		o.validationErr = ValidationMessage
		o.mu.Unlock()
		return fmt.Errorf("%w: %s", common.ErrValidation, ValidationMessage)
	}
	req := api.AppendRequest{
		Name:        name,
		CaseNumber:  caseNumber,
		CrimeNumber: models.OptText(strings.TrimSpace(o.form.CrimeNumber)),
		ForwardDate: models.OptText(strings.TrimSpace(o.form.ForwardDate)),
		ManualNote:  o.form.ManualNote,
	}
	o.mu.Unlock()

	if err := o.store.Append(ctx, req); err != nil {
		o.logger.Warn(ctx, "append failed", "error", err)
		return err
	}

	o.mu.Lock()
	o.form.Name = ""
	o.form.CaseNumber = ""
	o.form.CrimeNumber = ""
	o.form.ForwardDate = ""
	o.validationErr = ""
	o.mu.Unlock()

	o.logger.Info(ctx, "record appended", "case_number", caseNumber)
	o.beeper.Beep()
	return nil
}

// CanGenerateSymbol reports whether the generate action is enabled: both
// required fields present and the symbol primitive ready.
func (o *Orchestrator) CanGenerateSymbol() bool {
	if o.renderer == nil || !o.renderer.Ready() {
		return false
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	return strings.TrimSpace(o.form.Name) != "" && strings.TrimSpace(o.form.CaseNumber) != ""
}

// GenerateSymbol encodes the current four fields and renders a symbol for
// display. No stored records are touched. Returns "" when disabled.
func (o *Orchestrator) GenerateSymbol(sizePx int) string {
	if !o.CanGenerateSymbol() {
		return ""
	}
	return o.renderer.RenderSVG(o.EncodedPayload(), sizePx)
}

// EncodedPayload returns the current fields in wire form.
func (o *Orchestrator) EncodedPayload() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return qrpayload.Encode(qrpayload.Fields{
		Name:        o.form.Name,
		CaseNumber:  o.form.CaseNumber,
		CrimeNumber: o.form.CrimeNumber,
		ForwardDate: o.form.ForwardDate,
	})
}

// Form returns a snapshot of the editable fields.
func (o *Orchestrator) Form() Form {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.form
}

// LastScanned returns the raw text of the most recent scan, for operator
// feedback.
func (o *Orchestrator) LastScanned() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastScanned
}

// ValidationError returns the current inline validation message, if any.
func (o *Orchestrator) ValidationError() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.validationErr
}

// Field setters for manual entry.

func (o *Orchestrator) SetName(v string)        { o.setField(&o.form.Name, v) }
func (o *Orchestrator) SetCaseNumber(v string)  { o.setField(&o.form.CaseNumber, v) }
func (o *Orchestrator) SetCrimeNumber(v string) { o.setField(&o.form.CrimeNumber, v) }
func (o *Orchestrator) SetForwardDate(v string) { o.setField(&o.form.ForwardDate, v) }
func (o *Orchestrator) SetManualNote(v string)  { o.setField(&o.form.ManualNote, v) }

func (o *Orchestrator) setField(dst *string, v string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	*dst = v
}
