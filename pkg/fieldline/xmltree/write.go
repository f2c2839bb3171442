package xmltree

import (
	"encoding/xml"
	"io"
	"strings"
)

// Write serializes the document back to XML. Attribute and child order are
// preserved; direct character data is emitted before child elements.
func (d *Document) Write(w io.Writer) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	if err := writeNode(enc, d.root); err != nil {
		return err
	}
	if err := enc.Flush(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func writeNode(enc *xml.Encoder, n *Node) error {
	if n == nil {
		return nil
	}
	start := xml.StartElement{Name: xml.Name{Local: n.Tag}}
	for _, a := range n.attrs {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: a.Name}, Value: a.Value})
	}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if text := strings.TrimSpace(n.text); text != "" {
		if err := enc.EncodeToken(xml.CharData(text)); err != nil {
			return err
		}
	}
	for _, c := range n.children {
		if err := writeNode(enc, c); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}
