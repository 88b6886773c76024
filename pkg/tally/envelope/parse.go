package envelope

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/clbanning/mxj/v2"
	"golang.org/x/net/html/charset"
)

// mxj keeps its decoding options in package globals, so they are set once here and
// never touched again.
func init() {
	dec := xml.NewDecoder(nil)
	dec.Strict = false
	dec.CharsetReader = charset.NewReaderLabel
	mxj.CustomDecoder = dec
	mxj.CoerceKeysToLower(true)
	mxj.PrependAttrWithHyphen(false)
}

var ErrEmptyDocument = errors.New("empty xml document")

// Tally writes control characters as numeric references (&#4; and friends) which
// are not legal XML characters.
var charRef = regexp.MustCompile(`&#(x[0-9a-fA-F]+|[0-9]+);`)

// Parse converts an XML reply into a Node tree. Element and attribute names are
// lowercased and attributes live next to child elements in the same object.
func Parse(data []byte) (Node, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return Node{}, ErrEmptyDocument
	}

	m, err := mxj.NewMapXml(stripControlRefs(data), false)
	if err != nil {
		return Node{}, fmt.Errorf("failed to parse xml: %w", err)
	}
	return New(map[string]any(m)), nil
}

func stripControlRefs(data []byte) []byte {
	return charRef.ReplaceAllFunc(data, func(ref []byte) []byte {
		digits := string(ref[2 : len(ref)-1])
		base := 10
		if digits[0] == 'x' {
			digits, base = digits[1:], 16
		}
		code, err := strconv.ParseInt(digits, base, 32)
		if err != nil {
			return nil
		}
		if code < 0x20 && code != '\t' && code != '\n' && code != '\r' {
			return nil
		}
		return ref
	})
}
