package models

import "strings"

// Card is one scanned or manually entered business card as the backend
// stores it. The backend assigns ID; the client never writes it back.
type Card struct {
	ID              string   `json:"_id,omitempty"`
	Name            string   `json:"name,omitempty"`
	Designation     string   `json:"designation,omitempty"`
	Company         string   `json:"company,omitempty"`
	PhoneNumbers    []string `json:"phone_numbers,omitempty"`
	Email           string   `json:"email,omitempty"`
	Website         string   `json:"website,omitempty"`
	Address         string   `json:"address,omitempty"`
	SocialLinks     []string `json:"social_links,omitempty"`
	AdditionalNotes string   `json:"additional_notes,omitempty"`
	CreatedAt       string   `json:"created_at,omitempty"`
	EditedAt        string   `json:"edited_at,omitempty"`
}

// ExpectedColumns is the fixed column superset every card view is coerced
// to, in display order. "_id" is always first and never editable.
var ExpectedColumns = []string{
	"_id", "name", "designation", "company", "phone_numbers", "email",
	"website", "address", "social_links", "additional_notes",
	"created_at", "edited_at",
}

var listColumns = map[string]bool{
	"phone_numbers": true,
	"social_links":  true,
}

// ListColumn reports whether the named column holds a string sequence
// rather than a scalar string.
func ListColumn(name string) bool {
	return listColumns[name]
}

// JoinList renders a string sequence in its comma separated display form.
func JoinList(v []string) string {
	return strings.Join(v, ", ")
}

// SplitList parses a comma separated string back into a trimmed sequence,
// dropping empty entries. Splitting a joined list is idempotent.
func SplitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// DisplayRow flattens a card to its display representation keyed by column
// name, list fields comma joined and absent fields as empty strings.
func (c Card) DisplayRow() map[string]string {
	return map[string]string{
		"_id":              c.ID,
		"name":             c.Name,
		"designation":      c.Designation,
		"company":          c.Company,
		"phone_numbers":    JoinList(c.PhoneNumbers),
		"email":            c.Email,
		"website":          c.Website,
		"address":          c.Address,
		"social_links":     JoinList(c.SocialLinks),
		"additional_notes": c.AdditionalNotes,
		"created_at":       c.CreatedAt,
		"edited_at":        c.EditedAt,
	}
}

// CleanPayload builds the outgoing create payload from raw form fields.
// Empty fields are dropped entirely and list columns are re-typed to
// string sequences, matching what the backend accepts.
func CleanPayload(fields map[string]string) map[string]any {
	out := map[string]any{}
	for k, v := range fields {
		if v == "" {
			continue
		}
		if ListColumn(k) {
			out[k] = SplitList(v)
		} else {
			out[k] = v
		}
	}
	return out
}
