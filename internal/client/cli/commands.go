package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/cjmtools/caseintake/internal/common"
	"github.com/cjmtools/caseintake/internal/export"
	"github.com/cjmtools/caseintake/internal/models"
)

// Login prompts for the access passcode and exchanges it for a token.
func (a *App) Login(ctx context.Context) error {
	pc, err := GetPasscode(a.out)
	if err != nil {
		printlnFn("Error reading passcode:", err)
		return err
	}
	defer func() {
		for i := range pc {
			pc[i] = 0
		}
	}()

	if err := a.client.Login(ctx, string(pc)); err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			printlnFn("Incorrect passcode.")
		} else {
			printlnFn("Login failed:", err)
		}
		return err
	}
	printlnFn("Unlocked.")
	return nil
}

// Logout drops the token and stops the scan loop.
func (a *App) Logout(ctx context.Context) error {
	a.controller.Stop()
	a.client.Logout()
	printlnFn("Locked.")
	return nil
}

// Link prints the server address for sharing with another intake station.
func (a *App) Link(ctx context.Context) error {
	printlnFn("Live link:", a.client.BaseURL())
	return nil
}

// StartScan begins the camera decode loop.
func (a *App) StartScan(ctx context.Context) error {
	if err := a.controller.Start(ctx); err != nil {
		printlnFn("Cannot start scanning:", err)
		return err
	}
	printlnFn("Scanning... drop frames into", a.config.SpoolDir)
	return nil
}

// StopScan releases the camera.
func (a *App) StopScan(ctx context.Context) error {
	a.controller.Stop()
	printlnFn("Scanner stopped.")
	return nil
}

// Status prints the scanner state, the last camera error and recent readings.
func (a *App) Status(ctx context.Context) error {
	printlnFn("Scanner:", a.controller.State().String())
	if camErr := a.controller.LastError(); camErr != nil {
		printlnFn("Last camera error:", camErr.Error())
	}
	for _, r := range a.controller.Results() {
		printlnFn(fmt.Sprintf("  %s  %s", r.At.Format(time.TimeOnly), r.Data))
	}
	return nil
}

// SetField updates one form field by its command name.
func (a *App) SetField(ctx context.Context, field, value string) error {
	switch field {
	case "name":
		a.form.SetName(value)
	case "case":
		a.form.SetCaseNumber(value)
	case "crime":
		a.form.SetCrimeNumber(value)
	case "date":
		a.form.SetForwardDate(value)
	case "note":
		a.form.SetManualNote(value)
	default:
		printlnFn("Unknown field:", field)
		return fmt.Errorf("unknown field %q", field)
	}
	return nil
}

// ShowForm prints the current form, the latest scan and any inline error.
func (a *App) ShowForm(ctx context.Context) error {
	f := a.form.Form()
	printlnFn("Name:        ", f.Name)
	printlnFn("Case No:     ", f.CaseNumber)
	printlnFn("Crime No:    ", f.CrimeNumber)
	printlnFn("Forward Date:", f.ForwardDate)
	printlnFn("Note:        ", f.ManualNote)
	if last := a.form.LastScanned(); last != "" {
		printlnFn("Last scanned:", last)
	}
	if msg := a.form.ValidationError(); msg != "" {
		printlnFn("!", msg)
	}
	return nil
}

// Submit validates and stores the current form.
func (a *App) Submit(ctx context.Context) error {
	if err := a.form.Submit(ctx); err != nil {
		switch {
		case errors.Is(err, common.ErrValidation):
			printlnFn(a.form.ValidationError())
		case errors.Is(err, common.ErrUnauthorized):
			printlnFn("Session expired, please login again.")
		default:
			printlnFn("Could not save the record, please retry:", err)
		}
		return err
	}
	printlnFn("Record saved.")
	return nil
}

// List prints every stored record, newest first.
func (a *App) List(ctx context.Context) error {
	records, err := a.client.ListAll(ctx)
	if err != nil {
		printlnFn("Could not fetch records:", err)
		return err
	}
	models.SortNewestFirst(records)

	w := tabwriter.NewWriter(a.out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCASE NO\tCRIME NO\tFORWARD DATE\tNOTE")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			r.Name, r.CaseNumber, models.TextOr(r.CrimeNumber), models.TextOr(r.ForwardDate), r.ManualNote)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("%d record(s).", len(records)))
	return nil
}

// Export fetches all records and writes them to a file in the requested
// format ("csv" or "xlsx").
func (a *App) Export(ctx context.Context, format string) error {
	records, err := a.client.ListAll(ctx)
	if err != nil {
		printlnFn("Could not fetch records:", err)
		return err
	}

	switch format {
	case "csv":
		if err := export.WriteCSVFile("", records); err != nil {
			printlnFn("Export failed:", err)
			return err
		}
		printlnFn("Wrote", common.CSVExportFileName)
	case "xlsx":
		data, err := export.XLSX(records)
		if err != nil {
			printlnFn("Export failed:", err)
			return err
		}
		const name = "CJM_Case_Data.xlsx"
		if err := os.WriteFile(name, data, 0o644); err != nil {
			printlnFn("Export failed:", err)
			return err
		}
		printlnFn("Wrote", name)
	default:
		printlnFn("Unknown format:", format, "(want csv or xlsx)")
		return fmt.Errorf("unknown export format %q", format)
	}
	return nil
}

// ShowSymbol renders the current form as an SVG symbol and writes it next to
// the exports, so the operator can print or share it.
func (a *App) ShowSymbol(ctx context.Context) error {
	if !a.renderer.Ready() && !a.renderer.Load(ctx) {
		printlnFn("Symbol generator is not available.")
		return common.ErrUnavailable
	}
	if !a.form.CanGenerateSymbol() {
		printlnFn(ValidationHint)
		return common.ErrValidation
	}

	svg := a.form.GenerateSymbol(256)
	if svg == "" {
		printlnFn("Could not render the symbol.")
		return common.ErrInternal
	}

	const name = "case_symbol.svg"
	if err := os.WriteFile(name, []byte(svg), 0o644); err != nil {
		printlnFn("Could not write the symbol:", err)
		return err
	}
	printlnFn("Wrote", name, "for payload:", a.form.EncodedPayload())
	return nil
}

// ValidationHint mirrors the inline form message for the symbol command.
const ValidationHint = "Name and Case Number are required before generating a symbol"
