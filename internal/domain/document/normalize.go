package document

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Normalize coerces a raw generation payload into a well-formed document
// of the target type, merged onto the template. The payload comes from an
// untrusted structured-output model: every destination field has one
// default and one extraction rule, and identity fields (id, status,
// number) are always freshly generated, never taken from the payload.
//
// An unparseable payload yields a *MalformedResponseError; everything
// else degrades field by field.
func Normalize(raw string, t Type, tmpl Document) (Document, error) {
	cleaned := StripCodeFences(raw)
	if cleaned == "" {
		cleaned = "{}"
	}

	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return Document{}, &MalformedResponseError{Err: err}
	}

	out := tmpl.Clone()
	out.ID = NewID()
	out.Status = StatusDraft
	out.Number = NewNumber(t)
	out.Type = t

	if v, ok := payload["object"]; ok {
		if s := asString(v); s != "" {
			out.Object = s
		}
	}

	out.Client = mergeClient(tmpl.Client, asMap(payload["client"]))
	out.Site = mergeSite(tmpl.Site, asMap(payload["site"]))
	out.Sections = normalizeSections(asSlice(payload["sections"]), t)
	out.Materials = normalizeMaterials(asSlice(payload["materials"]))

	if m := asMap(payload["labor"]); m != nil {
		out.Labor = Labor{
			TotalHours:        asFloat(m["totalHours"], 0),
			EstimatedDuration: asString(m["estimatedDuration"]),
			TeamSize:          asString(m["teamSize"]),
			Breakdown:         normalizeLaborLines(asSlice(m["breakdown"])),
		}
	}

	return out, nil
}

func normalizeSections(raw []interface{}, t Type) []Section {
	sections := make([]Section, 0, len(raw))
	for _, rs := range raw {
		m := asMap(rs)
		if m == nil {
			continue
		}
		s := Section{ID: NewID(), Title: "Section"}
		if title := asString(m["title"]); title != "" {
			s.Title = title
		}
		items := asSlice(m["items"])
		s.Items = make([]LineItem, 0, len(items))
		for _, ri := range items {
			im := asMap(ri)
			if im == nil {
				continue
			}
			it := LineItem{
				ID:          NewID(),
				Description: asString(im["description"]),
				Qty:         asFloat(im["qty"], 1),
				Unit:        asString(im["unit"]),
				Price:       asFloat(im["price"], 0),
				Cost:        asFloat(im["cost_estimate"], 0),
				VAT:         ClampVAT(asFloat(im["vat"], 6)),
			}
			// Zero quantity and zero rate take the default, matching the
			// editor's behavior for half-filled generated lines.
			if it.Qty == 0 {
				it.Qty = 1
			}
			if it.VAT == 0 {
				it.VAT = 6
			}
			if it.Unit == "" {
				it.Unit = UnitPiece
			}
			if t == TypeRapport {
				// Report lines carry no financial meaning.
				it.Qty = 1
				it.Price = 0
				it.VAT = 0
				it.Unit = UnitNote
			}
			s.Items = append(s.Items, it)
		}
		sections = append(sections, s)
	}
	return sections
}

func normalizeMaterials(raw []interface{}) []Material {
	materials := make([]Material, 0, len(raw))
	for _, rm := range raw {
		m := asMap(rm)
		if m == nil {
			continue
		}
		materials = append(materials, Material{
			Category: asString(m["category"]),
			Name:     asString(m["name"]),
			Qty:      asString(m["qty"]),
			Desc:     asString(m["desc"]),
			Specs:    asString(m["specs"]),
		})
	}
	return materials
}

func normalizeLaborLines(raw []interface{}) []LaborLine {
	lines := make([]LaborLine, 0, len(raw))
	for _, rl := range raw {
		m := asMap(rl)
		if m == nil {
			continue
		}
		lines = append(lines, LaborLine{
			Trade: asString(m["trade"]),
			Hours: asFloat(m["hours"], 0),
		})
	}
	return lines
}

// mergeClient is a shallow field-by-field merge: a field present in the
// payload overrides the template default, a missing field keeps it.
func mergeClient(base Client, m map[string]interface{}) Client {
	if m == nil {
		return base
	}
	out := base
	if v, ok := m["name"]; ok {
		out.Name = asString(v)
	}
	if v, ok := m["address"]; ok {
		out.Address = asString(v)
	}
	if v, ok := m["city"]; ok {
		out.City = asString(v)
	}
	if v, ok := m["email"]; ok {
		out.Email = asString(v)
	}
	if v, ok := m["vat"]; ok {
		out.VAT = asString(v)
	}
	if v, ok := m["phone"]; ok {
		out.Phone = asString(v)
	}
	if v, ok := m["company"]; ok {
		out.Company = asString(v)
	}
	if v, ok := m["role"]; ok {
		out.Role = asString(v)
	}
	return out
}

func mergeSite(base Site, m map[string]interface{}) Site {
	if m == nil {
		return base
	}
	out := base
	if v, ok := m["address"]; ok {
		out.Address = asString(v)
	}
	if v, ok := m["city"]; ok {
		out.City = asString(v)
	}
	return out
}

// StripCodeFences removes markdown code-fence artifacts the model wraps
// its JSON in.
func StripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

func asString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	default:
		return ""
	}
}

func asFloat(v interface{}, def float64) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int64:
		return float64(t)
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return f
		}
	case string:
		if f, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(t), ",", "."), 64); err == nil {
			return f
		}
	}
	return def
}

func asMap(v interface{}) map[string]interface{} {
	m, _ := v.(map[string]interface{})
	return m
}

func asSlice(v interface{}) []interface{} {
	s, _ := v.([]interface{})
	return s
}
