package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// AuraMap collects the aura-granting spells discovered for one item: spell id
// to display name. The key is the containing spell's id; a spell that grants
// an aura is itself the aura entry.
type AuraMap map[int64]string

// IDs returns the aura spell ids in ascending order.
func (m AuraMap) IDs() []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// MarshalJSON emits the map as a JSON object with keys in ascending numeric
// order, keeping artifact bytes stable for identical inputs.
func (m AuraMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range m.IDs() {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(m[id])
		if err != nil {
			return nil, fmt.Errorf("marshal aura name for spell %d: %w", id, err)
		}
		buf.WriteByte('"')
		buf.WriteString(strconv.FormatInt(id, 10))
		buf.WriteString(`":`)
		buf.Write(name)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON parses the serialized object form back into the map.
func (m *AuraMap) UnmarshalJSON(data []byte) error {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(AuraMap, len(raw))
	for key, name := range raw {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return fmt.Errorf("parse aura spell id %q: %w", key, err)
		}
		out[id] = name
	}
	*m = out
	return nil
}

// Output is one category's resolved artifact: item id to that item's aura
// map, containing only items with at least one discovered aura. It is built
// fresh each run and supersedes the previous run's artifact.
type Output map[int64]AuraMap

// ItemIDs returns the item ids in ascending order.
func (o Output) ItemIDs() []int64 {
	ids := make([]int64, 0, len(o))
	for id := range o {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// AuraCount returns the total number of aura entries across all items.
func (o Output) AuraCount() int {
	total := 0
	for _, auras := range o {
		total += len(auras)
	}
	return total
}

// MarshalJSON emits the output with item keys in ascending numeric order.
func (o Output) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range o.ItemIDs() {
		if i > 0 {
			buf.WriteByte(',')
		}
		auras, err := o[id].MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("marshal auras for item %d: %w", id, err)
		}
		buf.WriteByte('"')
		buf.WriteString(strconv.FormatInt(id, 10))
		buf.WriteString(`":`)
		buf.Write(auras)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON parses the serialized object form back into the output.
func (o *Output) UnmarshalJSON(data []byte) error {
	var raw map[string]AuraMap
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Output, len(raw))
	for key, auras := range raw {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return fmt.Errorf("parse item id %q: %w", key, err)
		}
		out[id] = auras
	}
	*o = out
	return nil
}
