package storage

import "fmt"

// Document identifies one of the persisted user-data containers.
type Document string

const (
	// DocAccounts maps provider names to account objects.
	DocAccounts Document = "acc"
	// DocAdmin holds broadcast emails and monitored groups.
	DocAdmin Document = "adm"
	// DocUniversities maps institution keys to institution objects.
	DocUniversities Document = "univ"
)

// Documents lists all persisted documents in a fixed order.
var Documents = []Document{DocAccounts, DocAdmin, DocUniversities}

// ParseDocument maps a document name to its Document value.
func ParseDocument(name string) (Document, error) {
	switch Document(name) {
	case DocAccounts:
		return DocAccounts, nil
	case DocAdmin:
		return DocAdmin, nil
	case DocUniversities:
		return DocUniversities, nil
	}
	return "", fmt.Errorf("unknown document %q (expected acc, adm, or univ)", name)
}

// FileName returns the file the document persists to, relative to the data
// directory.
func (d Document) FileName() string {
	switch d {
	case DocAccounts:
		return "accounts.json"
	case DocAdmin:
		return "adm_data.json"
	case DocUniversities:
		return "univers.json"
	}
	return ""
}

// DefaultContent returns the document's initial file content.
func (d Document) DefaultContent() []byte {
	if d == DocAdmin {
		return []byte(`{"bc_emails": [], "mon_groups": []}`)
	}
	return []byte(`{}`)
}
