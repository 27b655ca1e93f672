package purchases

import (
	"fmt"
	"strings"
)

// RefKind identifies which of the three tolerated provider encodings a
// product/customer reference used.
type RefKind int

const (
	RefNone   RefKind = iota // absent or undecodable
	RefScalar                // plain identifier string
	RefKeyed                 // document carrying only an id field
	RefObject                // attribute-bearing object with an id field
)

// Ref is a decoded provider reference. Name is only populated for the
// RefObject arm, which may carry display attributes alongside the id.
type Ref struct {
	Kind RefKind
	ID   string
	Name string
}

// DecodeRef normalizes the three tolerated reference encodings. Anything
// else (numbers, lists, documents without id) decodes to RefNone.
func DecodeRef(v any) Ref {
	switch ref := v.(type) {
	case string:
		id := strings.TrimSpace(ref)
		if id == "" {
			return Ref{}
		}
		return Ref{Kind: RefScalar, ID: id}
	case map[string]any:
		id, ok := ref["id"].(string)
		id = strings.TrimSpace(id)
		if !ok || id == "" {
			return Ref{}
		}
		if len(ref) == 1 {
			return Ref{Kind: RefKeyed, ID: id}
		}
		name, _ := ref["name"].(string)
		return Ref{Kind: RefObject, ID: id, Name: strings.TrimSpace(name)}
	default:
		return Ref{}
	}
}

// ProviderProductID scans the event's line items in order and returns the
// first decodable nested product reference. Absent or malformed session
// data yields (_, false), never an error.
func ProviderProductID(ev Event) (string, bool) {
	for _, item := range lineItems(ev.Session) {
		if ref := DecodeRef(productValue(item)); ref.Kind != RefNone {
			return ref.ID, true
		}
	}
	return "", false
}

// CustomerID returns the session-level customer reference, tolerating the
// same three encodings as product references.
func CustomerID(ev Event) (string, bool) {
	if ev.Session == nil {
		return "", false
	}
	ref := DecodeRef(ev.Session["customer"])
	if ref.Kind == RefNone {
		return "", false
	}
	return ref.ID, true
}

// DisplayName derives a human-readable product label from the event's line
// items: first non-empty description, else the first nested product object's
// name, else a generic fallback built from fallbackProductID.
func DisplayName(ev Event, fallbackProductID int) string {
	items := lineItems(ev.Session)

	for _, item := range items {
		doc, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if desc, ok := doc["description"].(string); ok {
			if d := strings.TrimSpace(desc); d != "" {
				return d
			}
		}
	}

	for _, item := range items {
		if ref := DecodeRef(productValue(item)); ref.Kind == RefObject && ref.Name != "" {
			return ref.Name
		}
	}

	if fallbackProductID > 0 {
		return fmt.Sprintf("Product #%d", fallbackProductID)
	}
	return "Unknown Product"
}

// lineItems returns the session's line items, accepting both a bare list
// and the provider's list envelope ({"data": [...]}).
func lineItems(session map[string]any) []any {
	if session == nil {
		return nil
	}
	switch v := session["line_items"].(type) {
	case []any:
		return v
	case map[string]any:
		if data, ok := v["data"].([]any); ok {
			return data
		}
	}
	return nil
}

// productValue digs the nested product reference out of a line item. The
// provider nests it under price.product or plan.product depending on the
// checkout mode; some stored payloads carry it directly as product.
func productValue(item any) any {
	doc, ok := item.(map[string]any)
	if !ok {
		return nil
	}
	for _, container := range []string{"price", "plan"} {
		if inner, ok := doc[container].(map[string]any); ok {
			if v, ok := inner["product"]; ok {
				return v
			}
		}
	}
	return doc["product"]
}
