package iscc

import (
	"bytes"
	"embed"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/klauspost/compress/gzip"
)

// Conformance test vectors, vendored from the reference test suite and
// embedded gzip-compressed at build time.
//
//go:embed tests/data.json.gz
var conformanceAsset embed.FS

// VectorCase is a single conformance test case: positional inputs and a map
// of expected outputs keyed by result field name.
type VectorCase struct {
	Inputs  []json.RawMessage          `json:"inputs"`
	Outputs map[string]json.RawMessage `json:"outputs"`
}

var (
	vectorsOnce sync.Once
	vectors     map[string]map[string]VectorCase
	vectorsErr  error
)

// ConformanceVectors returns the embedded conformance test vectors, keyed
// by generator function name and test case name.
func ConformanceVectors() (map[string]map[string]VectorCase, error) {
	vectorsOnce.Do(func() {
		compressed, err := conformanceAsset.ReadFile("tests/data.json.gz")
		if err != nil {
			vectorsErr = err

			return
		}
		reader, err := gzip.NewReader(bytes.NewReader(compressed))
		if err != nil {
			vectorsErr = fmt.Errorf("conformance data: %w", err)

			return
		}
		defer reader.Close()
		raw, err := io.ReadAll(reader)
		if err != nil {
			vectorsErr = fmt.Errorf("conformance data: %w", err)

			return
		}
		vectorsErr = json.Unmarshal(raw, &vectors)
	})

	return vectors, vectorsErr
}

// ConformanceSelftest replays every vendored conformance vector against the
// nine generator functions and reports whether all of them reproduce the
// expected ISCC. Failures are logged to stderr; the function never panics
// and keeps going through all test cases.
func ConformanceSelftest() bool {
	data, err := ConformanceVectors()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FAILED: could not load conformance data: %v\n", err)

		return false
	}

	passed := true
	for _, section := range []struct {
		name string
		run  func(VectorCase) (string, error)
	}{
		{"gen_meta_code_v0", runMetaCase},
		{"gen_text_code_v0", runTextCase},
		{"gen_image_code_v0", runImageCase},
		{"gen_audio_code_v0", runAudioCase},
		{"gen_video_code_v0", runVideoCase},
		{"gen_mixed_code_v0", runMixedCase},
		{"gen_data_code_v0", runDataCase},
		{"gen_instance_code_v0", runInstanceCase},
		{"gen_iscc_code_v0", runIsccCase},
	} {
		cases, ok := data[section.name]
		if !ok {
			fmt.Fprintf(os.Stderr, "FAILED: %s section missing from conformance data\n", section.name)
			passed = false

			continue
		}
		for tcName, tc := range cases {
			expected, err := expectedIscc(tc)
			if err != nil {
				fmt.Fprintf(os.Stderr, "FAILED: %s.%s — could not parse test case: %v\n", section.name, tcName, err)
				passed = false

				continue
			}
			got, err := section.run(tc)
			if err != nil {
				fmt.Fprintf(os.Stderr, "FAILED: %s.%s — error: %v\n", section.name, tcName, err)
				passed = false

				continue
			}
			if got != expected {
				fmt.Fprintf(os.Stderr, "FAILED: %s.%s — expected %s, got %s\n", section.name, tcName, expected, got)
				passed = false
			}
		}
	}

	return passed
}

func expectedIscc(tc VectorCase) (string, error) {
	var iscc string
	if err := json.Unmarshal(tc.Outputs["iscc"], &iscc); err != nil {
		return "", err
	}

	return iscc, nil
}

// DecodeStream decodes a "stream:<hex>" conformance input into bytes.
func DecodeStream(s string) ([]byte, error) {
	hexData, found := strings.CutPrefix(s, "stream:")
	if !found {
		return nil, fmt.Errorf("expected 'stream:' prefix in %q", s)
	}

	return hex.DecodeString(hexData)
}

func runMetaCase(tc VectorCase) (string, error) {
	var name, desc string
	var bits uint32
	if err := json.Unmarshal(tc.Inputs[0], &name); err != nil {
		return "", err
	}
	if err := json.Unmarshal(tc.Inputs[1], &desc); err != nil {
		return "", err
	}
	meta, err := metaInputString(tc.Inputs[2])
	if err != nil {
		return "", err
	}
	if err := json.Unmarshal(tc.Inputs[3], &bits); err != nil {
		return "", err
	}
	result, err := GenMetaCodeV0(name, desc, meta, bits)
	if err != nil {
		return "", err
	}

	return result.Iscc, nil
}

// metaInputString renders the meta input, which may be null, a string or an
// inline JSON object, as the generator's string argument.
func metaInputString(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return "", nil
	}
	if trimmed[0] == '"' {
		var s string
		err := json.Unmarshal(raw, &s)

		return s, err
	}

	return string(trimmed), nil
}

func runTextCase(tc VectorCase) (string, error) {
	var text string
	var bits uint32
	if err := json.Unmarshal(tc.Inputs[0], &text); err != nil {
		return "", err
	}
	if err := json.Unmarshal(tc.Inputs[1], &bits); err != nil {
		return "", err
	}
	result, err := GenTextCodeV0(text, bits)
	if err != nil {
		return "", err
	}

	return result.Iscc, nil
}

func runImageCase(tc VectorCase) (string, error) {
	// []uint8 would be decoded as a base64 string by encoding/json, so the
	// pixel array goes through []int.
	var values []int
	var bits uint32
	if err := json.Unmarshal(tc.Inputs[0], &values); err != nil {
		return "", err
	}
	pixels := make([]uint8, len(values))
	for i, v := range values {
		pixels[i] = uint8(v)
	}
	if err := json.Unmarshal(tc.Inputs[1], &bits); err != nil {
		return "", err
	}
	result, err := GenImageCodeV0(pixels, bits)
	if err != nil {
		return "", err
	}

	return result.Iscc, nil
}

func runAudioCase(tc VectorCase) (string, error) {
	var cv []int32
	var bits uint32
	if err := json.Unmarshal(tc.Inputs[0], &cv); err != nil {
		return "", err
	}
	if err := json.Unmarshal(tc.Inputs[1], &bits); err != nil {
		return "", err
	}
	result, err := GenAudioCodeV0(cv, bits)
	if err != nil {
		return "", err
	}

	return result.Iscc, nil
}

func runVideoCase(tc VectorCase) (string, error) {
	var frames [][]int32
	var bits uint32
	if err := json.Unmarshal(tc.Inputs[0], &frames); err != nil {
		return "", err
	}
	if err := json.Unmarshal(tc.Inputs[1], &bits); err != nil {
		return "", err
	}
	result, err := GenVideoCodeV0(frames, bits)
	if err != nil {
		return "", err
	}

	return result.Iscc, nil
}

func runMixedCase(tc VectorCase) (string, error) {
	var codes []string
	var bits uint32
	if err := json.Unmarshal(tc.Inputs[0], &codes); err != nil {
		return "", err
	}
	if err := json.Unmarshal(tc.Inputs[1], &bits); err != nil {
		return "", err
	}
	result, err := GenMixedCodeV0(codes, bits)
	if err != nil {
		return "", err
	}

	return result.Iscc, nil
}

func runDataCase(tc VectorCase) (string, error) {
	data, bits, err := streamInputs(tc)
	if err != nil {
		return "", err
	}
	result, err := GenDataCodeV0(data, bits)
	if err != nil {
		return "", err
	}

	return result.Iscc, nil
}

func runInstanceCase(tc VectorCase) (string, error) {
	data, bits, err := streamInputs(tc)
	if err != nil {
		return "", err
	}
	result, err := GenInstanceCodeV0(data, bits)
	if err != nil {
		return "", err
	}

	return result.Iscc, nil
}

func streamInputs(tc VectorCase) ([]byte, uint32, error) {
	var stream string
	var bits uint32
	if err := json.Unmarshal(tc.Inputs[0], &stream); err != nil {
		return nil, 0, err
	}
	if err := json.Unmarshal(tc.Inputs[1], &bits); err != nil {
		return nil, 0, err
	}
	data, err := DecodeStream(stream)
	if err != nil {
		return nil, 0, err
	}

	return data, bits, nil
}

func runIsccCase(tc VectorCase) (string, error) {
	var codes []string
	var wide bool
	if err := json.Unmarshal(tc.Inputs[0], &codes); err != nil {
		return "", err
	}
	if err := json.Unmarshal(tc.Inputs[1], &wide); err != nil {
		return "", err
	}
	result, err := GenIsccCodeV0(codes, wide)
	if err != nil {
		return "", err
	}

	return result.Iscc, nil
}
