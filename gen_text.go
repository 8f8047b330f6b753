package iscc

import (
	"unicode/utf8"

	"github.com/pierrec/xxHash/xxHash32"

	"github.com/iscc/iscc-lib/codec"
	"github.com/iscc/iscc-lib/minhash"
	"github.com/iscc/iscc-lib/simhash"
	"github.com/iscc/iscc-lib/textutil"
)

// GenTextCodeV0 generates a Content-Code Text from plain text.
//
// The text is collapsed (lowercased, stripped of whitespace, marks and
// punctuation), split into character n-grams of TextNGramSize, and each
// n-gram is hashed with 32-bit xxHash. The MinHash of the feature list
// becomes the digest. The character count after collapse is reported in
// the result.
func GenTextCodeV0(text string, bits uint32) (*TextCodeResult, error) {
	collapsed := textutil.Collapse(text)
	characters := utf8.RuneCountInString(collapsed)

	ngrams, err := simhash.SlidingWindow(collapsed, TextNGramSize)
	if err != nil {
		return nil, err
	}
	features := make([]uint32, len(ngrams))
	for i, ngram := range ngrams {
		features[i] = xxHash32.Checksum([]byte(ngram), 0)
	}

	digest := minhash.MinHash256(features)
	component, err := codec.EncodeComponent(codec.MTContent, codec.STText, codec.V0, bits, digest)
	if err != nil {
		return nil, err
	}

	return &TextCodeResult{Iscc: "ISCC:" + component, Characters: characters}, nil
}
