package diagram

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// MarshalJSON encodes the list with a tagged union encoding: each node
// object carries a "type" field naming its variant alongside the variant's
// own fields. Map-based re-encoding keeps key order deterministic.
func (ns Nodes) MarshalJSON() ([]byte, error) {
	out := make([]json.RawMessage, len(ns))
	for i, n := range ns {
		raw, err := marshalNode(n)
		if err != nil {
			return nil, err
		}
		out[i] = raw
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a tagged node list, dispatching on each element's
// "type" field.
func (ns *Nodes) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}
	out := make(Nodes, 0, len(raws))
	for _, raw := range raws {
		n, err := unmarshalNode(raw)
		if err != nil {
			return err
		}
		out = append(out, n)
	}
	*ns = out
	return nil
}

func marshalNode(n Node) ([]byte, error) {
	raw, err := json.Marshal(n)
	if err != nil {
		return nil, fmt.Errorf("marshal %s node %s: %w", n.Type(), n.ID(), err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	tag, err := json.Marshal(n.Type())
	if err != nil {
		return nil, err
	}
	fields["type"] = tag
	return json.Marshal(fields)
}

func unmarshalNode(data []byte) (Node, error) {
	var tag struct {
		Type NodeType `json:"type"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return nil, err
	}
	var (
		n   Node
		err error
	)
	switch tag.Type {
	case TypeParticipant:
		var v Participant
		err = json.Unmarshal(data, &v)
		n = v
	case TypeMessage:
		var v Message
		err = json.Unmarshal(data, &v)
		n = v
	case TypeFragment:
		var v Fragment
		err = json.Unmarshal(data, &v)
		n = v
	case TypeNote:
		var v Note
		err = json.Unmarshal(data, &v)
		n = v
	case TypeDivider:
		var v Divider
		err = json.Unmarshal(data, &v)
		n = v
	case TypeDirective:
		var v Directive
		err = json.Unmarshal(data, &v)
		n = v
	case TypeComment:
		var v Comment
		err = json.Unmarshal(data, &v)
		n = v
	case TypeBlankLine:
		var v BlankLine
		err = json.Unmarshal(data, &v)
		n = v
	case TypeError:
		var v ErrorNode
		err = json.Unmarshal(data, &v)
		n = v
	default:
		return nil, fmt.Errorf("unknown node type %q", tag.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("unmarshal %s node: %w", tag.Type, err)
	}
	return n, nil
}

// WriteDocument writes a document as indented JSON to w.
func WriteDocument(d Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	return nil
}

// MarshalDocument returns a document as indented JSON bytes.
func MarshalDocument(d Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteDocument(d, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadDocument decodes a JSON document from r.
func ReadDocument(r io.Reader) (Document, error) {
	var d Document
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return Document{}, fmt.Errorf("decode document: %w", err)
	}
	return d, nil
}
