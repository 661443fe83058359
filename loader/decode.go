package loader

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image/png"

	"github.com/bjaus/rescache"
)

// DecodeTexture reads the PNG header for the image dimensions. The encoded
// bytes are kept as the texture data.
func DecodeTexture(key string, data []byte) (*rescache.Texture, error) {
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrMalformed, key, err)
	}
	return &rescache.Texture{
		Key:    key,
		Width:  cfg.Width,
		Height: cfg.Height,
		Data:   data,
	}, nil
}

const wavFormatPCM = 1

// DecodeSound parses a RIFF/WAVE container holding PCM samples.
func DecodeSound(key string, data []byte) (*rescache.Sound, error) {
	malformed := func(format string, args ...any) error {
		return fmt.Errorf("%w: %q: %s", ErrMalformed, key, fmt.Sprintf(format, args...))
	}

	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, malformed("not a RIFF/WAVE file")
	}

	snd := &rescache.Sound{Key: key}
	var haveFmt, haveData bool

	rest := data[12:]
	for len(rest) >= 8 {
		id := string(rest[0:4])
		size := binary.LittleEndian.Uint32(rest[4:8])
		rest = rest[8:]
		if uint64(size) > uint64(len(rest)) {
			return nil, malformed("truncated %q chunk", id)
		}
		body := rest[:size]

		switch id {
		case "fmt ":
			if len(body) < 16 {
				return nil, malformed("short fmt chunk")
			}
			if f := binary.LittleEndian.Uint16(body[0:2]); f != wavFormatPCM {
				return nil, malformed("unsupported audio format %d", f)
			}
			snd.Channels = int(binary.LittleEndian.Uint16(body[2:4]))
			snd.SampleRate = int(binary.LittleEndian.Uint32(body[4:8]))
			snd.BitsPerSample = int(binary.LittleEndian.Uint16(body[14:16]))
			haveFmt = true
		case "data":
			snd.Data = body
			haveData = true
		}

		rest = rest[size:]
		// chunks are word aligned
		if size%2 == 1 && len(rest) > 0 {
			rest = rest[1:]
		}
	}

	switch {
	case !haveFmt:
		return nil, malformed("missing fmt chunk")
	case !haveData:
		return nil, malformed("missing data chunk")
	case snd.Channels == 0 || snd.SampleRate == 0 || snd.BitsPerSample == 0:
		return nil, malformed("invalid format fields")
	}
	return snd, nil
}
