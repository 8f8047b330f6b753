package iscc

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iscc/iscc-lib/codec"
)

func TestConformanceSelftest(t *testing.T) {
	assert.True(t, ConformanceSelftest())
}

func TestConformanceVectorsLoad(t *testing.T) {
	data, err := ConformanceVectors()
	require.NoError(t, err)
	for _, section := range []string{
		"gen_meta_code_v0", "gen_text_code_v0", "gen_image_code_v0",
		"gen_audio_code_v0", "gen_video_code_v0", "gen_mixed_code_v0",
		"gen_data_code_v0", "gen_instance_code_v0", "gen_iscc_code_v0",
	} {
		assert.NotEmpty(t, data[section], "section %s", section)
	}
}

func stringOutput(t *testing.T, tc VectorCase, key string) (string, bool) {
	t.Helper()
	raw, ok := tc.Outputs[key]
	if !ok {
		return "", false
	}
	var s string
	require.NoError(t, json.Unmarshal(raw, &s))

	return s, true
}

func TestConformanceMetaOutputs(t *testing.T) {
	data, err := ConformanceVectors()
	require.NoError(t, err)

	for name, tc := range data["gen_meta_code_v0"] {
		t.Run(name, func(t *testing.T) {
			var inputName, desc string
			var bits uint32
			require.NoError(t, json.Unmarshal(tc.Inputs[0], &inputName))
			require.NoError(t, json.Unmarshal(tc.Inputs[1], &desc))
			meta, err := metaInputString(tc.Inputs[2])
			require.NoError(t, err)
			require.NoError(t, json.Unmarshal(tc.Inputs[3], &bits))

			result, err := GenMetaCodeV0(inputName, desc, meta, bits)
			require.NoError(t, err)

			expected, _ := stringOutput(t, tc, "iscc")
			assert.Equal(t, expected, result.Iscc)
			if expectedName, ok := stringOutput(t, tc, "name"); ok {
				assert.Equal(t, expectedName, result.Name)
			}
			if expectedDesc, ok := stringOutput(t, tc, "description"); ok {
				assert.Equal(t, expectedDesc, result.Description)
			}
			if expectedMeta, ok := stringOutput(t, tc, "meta"); ok {
				assert.Equal(t, expectedMeta, result.Meta)
			}
			if expectedMetahash, ok := stringOutput(t, tc, "metahash"); ok {
				assert.Equal(t, expectedMetahash, result.Metahash)
			}
		})
	}
}

func TestConformanceTextOutputs(t *testing.T) {
	data, err := ConformanceVectors()
	require.NoError(t, err)

	for name, tc := range data["gen_text_code_v0"] {
		t.Run(name, func(t *testing.T) {
			var text string
			var bits uint32
			require.NoError(t, json.Unmarshal(tc.Inputs[0], &text))
			require.NoError(t, json.Unmarshal(tc.Inputs[1], &bits))

			result, err := GenTextCodeV0(text, bits)
			require.NoError(t, err)

			expected, _ := stringOutput(t, tc, "iscc")
			assert.Equal(t, expected, result.Iscc)

			var characters int
			require.NoError(t, json.Unmarshal(tc.Outputs["characters"], &characters))
			assert.Equal(t, characters, result.Characters)
		})
	}
}

func TestConformanceInstanceOutputs(t *testing.T) {
	data, err := ConformanceVectors()
	require.NoError(t, err)

	for name, tc := range data["gen_instance_code_v0"] {
		t.Run(name, func(t *testing.T) {
			payload, bits, err := streamInputs(tc)
			require.NoError(t, err)

			result, err := GenInstanceCodeV0(payload, bits)
			require.NoError(t, err)

			expected, _ := stringOutput(t, tc, "iscc")
			assert.Equal(t, expected, result.Iscc)
			expectedHash, _ := stringOutput(t, tc, "datahash")
			assert.Equal(t, expectedHash, result.Datahash)

			var filesize uint64
			require.NoError(t, json.Unmarshal(tc.Outputs["filesize"], &filesize))
			assert.Equal(t, filesize, result.Filesize)
		})
	}
}

func TestConformanceMixedOutputs(t *testing.T) {
	data, err := ConformanceVectors()
	require.NoError(t, err)

	for name, tc := range data["gen_mixed_code_v0"] {
		t.Run(name, func(t *testing.T) {
			var codes []string
			var bits uint32
			require.NoError(t, json.Unmarshal(tc.Inputs[0], &codes))
			require.NoError(t, json.Unmarshal(tc.Inputs[1], &bits))

			result, err := GenMixedCodeV0(codes, bits)
			require.NoError(t, err)

			expected, _ := stringOutput(t, tc, "iscc")
			assert.Equal(t, expected, result.Iscc)

			var parts []string
			require.NoError(t, json.Unmarshal(tc.Outputs["parts"], &parts))
			assert.Equal(t, parts, result.Parts)
		})
	}
}

func TestConformanceMediaOutputs(t *testing.T) {
	data, err := ConformanceVectors()
	require.NoError(t, err)

	for _, section := range []struct {
		name string
		run  func(VectorCase) (string, error)
	}{
		{"gen_image_code_v0", runImageCase},
		{"gen_audio_code_v0", runAudioCase},
		{"gen_video_code_v0", runVideoCase},
		{"gen_data_code_v0", runDataCase},
		{"gen_iscc_code_v0", runIsccCase},
	} {
		for name, tc := range data[section.name] {
			t.Run(section.name+"/"+name, func(t *testing.T) {
				got, err := section.run(tc)
				require.NoError(t, err)
				expected, _ := stringOutput(t, tc, "iscc")
				assert.Equal(t, expected, got)
			})
		}
	}
}

func TestConformanceLowercaseDecoding(t *testing.T) {
	// Unit decoders accept lowercase input (the encoder always emits
	// uppercase).
	data, err := ConformanceVectors()
	require.NoError(t, err)

	for name, tc := range data["gen_iscc_code_v0"] {
		composite, _ := stringOutput(t, tc, "iscc")
		lowered := "ISCC:" + strings.ToLower(strings.TrimPrefix(composite, "ISCC:"))
		fromLower, err := Decompose(lowered)
		require.NoError(t, err, name)
		fromUpper, err := Decompose(composite)
		require.NoError(t, err, name)
		assert.Equal(t, fromUpper, fromLower, name)
	}
}

func TestConformanceDecomposeComposites(t *testing.T) {
	// Every composite in the gen_iscc section decomposes into units sorted
	// by MainType with Data and Instance at the end, one per input code.
	data, err := ConformanceVectors()
	require.NoError(t, err)

	for name, tc := range data["gen_iscc_code_v0"] {
		t.Run(name, func(t *testing.T) {
			var codes []string
			require.NoError(t, json.Unmarshal(tc.Inputs[0], &codes))
			composite, _ := stringOutput(t, tc, "iscc")

			units, err := Decompose(composite)
			require.NoError(t, err)
			assert.Len(t, units, len(codes))

			var mainTypes []codec.MainType
			for _, unit := range units {
				raw, err := codec.DecodeBase32(unit)
				require.NoError(t, err)
				header, _, err := codec.DecodeHeader(raw)
				require.NoError(t, err)
				assert.NotEqual(t, codec.MTIscc, header.MType)
				mainTypes = append(mainTypes, header.MType)
			}
			for i := 1; i < len(mainTypes); i++ {
				assert.LessOrEqual(t, mainTypes[i-1], mainTypes[i], "units out of order")
			}
			require.GreaterOrEqual(t, len(mainTypes), 2)
			assert.Equal(t, codec.MTData, mainTypes[len(mainTypes)-2])
			assert.Equal(t, codec.MTInstance, mainTypes[len(mainTypes)-1])
		})
	}
}
