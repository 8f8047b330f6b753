// Package iscc implements the ISO 24138:2024 International Standard Content
// Code (ISCC): similarity-preserving, content-derived identifiers for media
// assets.
//
// The nine GenXxxCodeV0 functions are the primary API surface. Each consumes
// already-decoded domain inputs (text, grayscale pixels, Chromaprint
// features, MPEG-7 frame signatures, raw bytes or unit code strings),
// computes a similarity or integrity digest, and envelopes it as a
// self-describing, base32-encoded ISCC string:
//
//	"ISCC:" + base32(header || digest[:bits/8])
//
// # Code Generation
//
// Generating individual ISCC-UNITs:
//
//	meta, _ := iscc.GenMetaCodeV0("Die Unendliche Geschichte", "Von Michael Ende", "", 64)
//	text, _ := iscc.GenTextCodeV0("The neverending story ...", 64)
//	dataC, _ := iscc.GenDataCodeV0(fileBytes, 64)
//	inst, _ := iscc.GenInstanceCodeV0(fileBytes, 64)
//
// Combining units into a composite ISCC-CODE:
//
//	code, _ := iscc.GenIsccCodeV0([]string{meta.Iscc, text.Iscc, dataC.Iscc, inst.Iscc}, false)
//
// # Streaming
//
// Large files are processed in a single pass with the streaming hashers,
// which produce byte-identical results to the one-shot generators:
//
//	dh := iscc.NewDataHasher()
//	ih := iscc.NewInstanceHasher()
//	for chunk := range chunks {
//	    dh.Update(chunk)
//	    ih.Update(chunk)
//	}
//	dataRes, _ := dh.Finalize(64)
//	instRes, _ := ih.Finalize(64)
//
// # Package Structure
//
// The algorithmic primitives live in focused subpackages: codec (header and
// base32 envelope), cdc (content-defined chunking), simhash, minhash, dct,
// wtahash and textutil. This package composes them into the generator
// functions and carries the embedded conformance test vectors; call
// ConformanceSelftest to replay them.
//
// All functions are pure and safe for concurrent use on distinct inputs.
// A streaming hasher instance must be confined to one goroutine at a time.
package iscc
