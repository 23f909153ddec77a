// Package qrpayload encodes a case record's four editable fields into a
// single delimited string for embedding in a QR symbol, and parses scanned
// strings back.
//
// Wire format: name|caseNumber|crimeNumber|forwardDate. The delimiter is not
// escaped, so a field value containing '|' corrupts the round trip silently.
// This is a known weakness of the format, kept for compatibility with badges
// already in circulation.
package qrpayload

import "strings"

// Delimiter separates the four payload fields.
const Delimiter = "|"

// Fields is the ordered 4-tuple carried by a QR payload.
type Fields struct {
	Name        string
	CaseNumber  string
	CrimeNumber string
	ForwardDate string
}

// Encode trims each field and joins them with the delimiter in fixed order.
// It never fails; emptiness is not validated here.
func Encode(f Fields) string {
	return strings.Join([]string{
		strings.TrimSpace(f.Name),
		strings.TrimSpace(f.CaseNumber),
		strings.TrimSpace(f.CrimeNumber),
		strings.TrimSpace(f.ForwardDate),
	}, Delimiter)
}

// Decode splits s on the delimiter. It succeeds only if the split yields
// exactly four segments; any other count reports ok=false. The exact-4 rule
// keeps arbitrary scanned barcodes from being misread as structured
// payloads. Empty segments decode to empty fields.
func Decode(s string) (Fields, bool) {
	if s == "" {
		return Fields{}, false
	}

	parts := strings.Split(s, Delimiter)
	if len(parts) != 4 {
		return Fields{}, false
	}

	return Fields{
		Name:        parts[0],
		CaseNumber:  parts[1],
		CrimeNumber: parts[2],
		ForwardDate: parts[3],
	}, true
}
