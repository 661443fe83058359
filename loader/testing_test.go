package loader

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

// wavBytes builds a PCM RIFF/WAVE file with an odd-sized padding chunk
// ahead of the sample data.
func wavBytes(sampleRate, channels, bits int, samples []byte) []byte {
	var body bytes.Buffer
	body.WriteString("WAVE")

	body.WriteString("fmt ")
	_ = binary.Write(&body, binary.LittleEndian, uint32(16))
	_ = binary.Write(&body, binary.LittleEndian, uint16(wavFormatPCM))
	_ = binary.Write(&body, binary.LittleEndian, uint16(channels))
	_ = binary.Write(&body, binary.LittleEndian, uint32(sampleRate))
	_ = binary.Write(&body, binary.LittleEndian, uint32(sampleRate*channels*bits/8))
	_ = binary.Write(&body, binary.LittleEndian, uint16(channels*bits/8))
	_ = binary.Write(&body, binary.LittleEndian, uint16(bits))

	body.WriteString("LIST")
	_ = binary.Write(&body, binary.LittleEndian, uint32(3))
	body.Write([]byte{'a', 'b', 'c', 0})

	body.WriteString("data")
	_ = binary.Write(&body, binary.LittleEndian, uint32(len(samples)))
	body.Write(samples)

	var out bytes.Buffer
	out.WriteString("RIFF")
	_ = binary.Write(&out, binary.LittleEndian, uint32(body.Len()))
	out.Write(body.Bytes())
	return out.Bytes()
}
