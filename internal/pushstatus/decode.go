package pushstatus

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/dmitrijs2005/parsepush/internal/models"
)

// Decode parses a _PushStatus query response. Only a top-level shape
// mismatch is an error; every field of every record is extracted
// independently and falls back to nil or empty when missing or mistyped.
func Decode(data []byte) ([]models.PushStatusEntry, error) {
	root, err := parseJSON(data)
	if err != nil {
		return nil, ErrDecodeFailed
	}

	obj, ok := root.(map[string]any)
	if !ok {
		return nil, ErrDecodeFailed
	}
	list, ok := obj["results"].([]any)
	if !ok {
		return nil, ErrDecodeFailed
	}

	records := make([]map[string]any, 0, len(list))
	for _, item := range list {
		rec, ok := item.(map[string]any)
		if !ok {
			return nil, ErrDecodeFailed
		}
		records = append(records, rec)
	}

	col := collate.New(language.Und, collate.IgnoreCase)

	entries := make([]models.PushStatusEntry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, decodeRecord(rec, col))
	}
	return entries, nil
}

func parseJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("trailing data after JSON value")
	}
	return v, nil
}

func decodeRecord(rec map[string]any, col *collate.Collator) models.PushStatusEntry {
	id, _ := rec["objectId"].(string)
	if id == "" {
		id = uuid.NewString()
	}

	status := stringField(rec, "status")
	if status == nil {
		status = stringField(rec, "pushStatus")
	}

	return models.PushStatusEntry{
		ID:           id,
		CreatedAt:    stringField(rec, "createdAt"),
		UpdatedAt:    stringField(rec, "updatedAt"),
		Status:       status,
		NumSent:      integerField(rec, "numSent"),
		PayloadItems: payloadItems(rec["payload"], col),
		RawJSON:      prettyJSON(rec),
	}
}

func stringField(rec map[string]any, key string) *string {
	if s, ok := rec[key].(string); ok {
		return &s
	}
	return nil
}

// integerField accepts whole numbers, including ones written as 5.0 or 1e3.
func integerField(rec map[string]any, key string) *int64 {
	n, ok := rec[key].(json.Number)
	if !ok {
		return nil
	}
	if i, err := n.Int64(); err == nil {
		return &i
	}
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return nil
	}
	i := int64(f)
	return &i
}

// payloadItems flattens the payload object. Parse stores it as a JSON string;
// some older servers return the object itself.
func payloadItems(raw any, col *collate.Collator) []models.PayloadItem {
	var obj map[string]any
	switch p := raw.(type) {
	case string:
		v, err := parseJSON([]byte(p))
		if err != nil {
			return []models.PayloadItem{}
		}
		m, ok := v.(map[string]any)
		if !ok {
			return []models.PayloadItem{}
		}
		obj = m
	case map[string]any:
		obj = p
	default:
		return []models.PayloadItem{}
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.SliceStable(keys, func(i, j int) bool {
		if c := col.CompareString(keys[i], keys[j]); c != 0 {
			return c < 0
		}
		return keys[i] < keys[j]
	})

	items := make([]models.PayloadItem, 0, len(keys))
	for _, k := range keys {
		items = append(items, models.PayloadItem{Key: k, Value: renderValue(obj[k])})
	}
	return items
}

func renderValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, err := encodeJSON(v, "")
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

func prettyJSON(rec map[string]any) string {
	b, err := encodeJSON(rec, "  ")
	if err != nil {
		return fmt.Sprint(rec)
	}
	return string(b)
}

// encodeJSON writes v with sorted object keys and no HTML escaping.
func encodeJSON(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
