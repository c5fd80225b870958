// Package charset maps encoding names used in configuration to text encodings.
//
// Lead sheets exported from Chinese office software are often GBK or GB18030;
// files saved by spreadsheet tools may carry a UTF-8 byte order mark.
package charset

import (
	"slices"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/agentstation/leadmerge/pkg/errors"
)

// Encoding names.
const (
	UTF8    = "utf-8"
	UTF8BOM = "utf-8-bom"
	GBK     = "gbk"
	GB18030 = "gb18030"
)

var encodings = map[string]encoding.Encoding{
	UTF8:    unicode.UTF8,
	UTF8BOM: unicode.UTF8BOM,
	GBK:     simplifiedchinese.GBK,
	GB18030: simplifiedchinese.GB18030,
}

var aliases = map[string]string{
	"":      UTF8,
	"utf8":  UTF8,
	"cp936": GBK,
}

// Names returns the supported encoding names, sorted.
func Names() []string {
	names := make([]string, 0, len(encodings))
	for name := range encodings {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Normalize returns the canonical name for name, or an error when the
// encoding is not supported.
func Normalize(name string) (string, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := aliases[n]; ok {
		n = alias
	}
	if _, ok := encodings[n]; !ok {
		return "", errors.NewValidationError("encoding", name,
			"unsupported encoding, expected one of "+strings.Join(Names(), ", "))
	}
	return n, nil
}

// Decoder returns a transformer that converts text in the named encoding to
// UTF-8. A leading UTF-8 byte order mark is always dropped.
func Decoder(name string) (transform.Transformer, error) {
	n, err := Normalize(name)
	if err != nil {
		return nil, err
	}
	switch n {
	case UTF8, UTF8BOM:
		return unicode.BOMOverride(unicode.UTF8.NewDecoder()), nil
	}
	return encodings[n].NewDecoder(), nil
}

// Encoder returns a transformer that converts UTF-8 text to the named
// encoding. UTF8BOM output starts with a byte order mark.
func Encoder(name string) (transform.Transformer, error) {
	n, err := Normalize(name)
	if err != nil {
		return nil, err
	}
	return encodings[n].NewEncoder(), nil
}
