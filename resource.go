package rescache

import "time"

// Kind identifies the concrete type of a cached resource.
type Kind int

const (
	// KindTexture is an image resource.
	KindTexture Kind = iota + 1
	// KindSound is an audio resource.
	KindSound
)

func (k Kind) String() string {
	switch k {
	case KindTexture:
		return "texture"
	case KindSound:
		return "sound"
	default:
		return "unknown"
	}
}

// Resource is a value held by the cache. The set of implementations is
// closed: only the resource types declared in this package satisfy it.
type Resource interface {
	Kind() Kind
	resource()
}

// Compile-time interface assertions.
var (
	_ Resource = (*Texture)(nil)
	_ Resource = (*Sound)(nil)
)

// Texture is a decoded image resource.
type Texture struct {
	Key    string
	Width  int
	Height int
	Data   []byte
}

// Kind returns KindTexture.
func (*Texture) Kind() Kind { return KindTexture }
func (*Texture) resource()  {}

// Sound is a decoded PCM audio resource.
type Sound struct {
	Key           string
	SampleRate    int
	Channels      int
	BitsPerSample int
	Data          []byte
}

// Kind returns KindSound.
func (*Sound) Kind() Kind { return KindSound }
func (*Sound) resource()  {}

// Duration returns the playback length of the sample data.
// Returns 0 if the format fields are incomplete.
func (s *Sound) Duration() time.Duration {
	frame := s.Channels * s.BitsPerSample / 8
	if frame <= 0 || s.SampleRate <= 0 {
		return 0
	}
	frames := int64(len(s.Data) / frame)
	return time.Duration(frames) * time.Second / time.Duration(s.SampleRate)
}
