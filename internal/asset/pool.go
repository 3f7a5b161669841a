package asset

import (
	"errors"
	"fmt"
	"image"
	_ "image/png" // PNG decoder for sprites
	"io/fs"
	"os"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

// ErrMissing reports an asset file that does not exist.
var ErrMissing = errors.New("asset missing")

// Format is the sample format every sound is converted to on load, so the
// whole pool can feed a single speaker.
var Format = beep.Format{SampleRate: 44100, NumChannels: 2, Precision: 2}

// resampleQuality trades CPU for fidelity when a WAV has another rate.
const resampleQuality = 4

// Pool caches decoded images and sounds by name.
type Pool struct {
	images map[string]image.Image
	sounds map[string]*beep.Buffer
}

// NewPool returns an empty pool. Use Load or Placeholders to fill one.
func NewPool() *Pool {
	return &Pool{
		images: make(map[string]image.Image),
		sounds: make(map[string]*beep.Buffer),
	}
}

// LoadDir loads the full manifest from a directory.
func LoadDir(dir string) (*Pool, error) {
	return Load(os.DirFS(dir))
}

// Open loads assets from dir, or generates placeholders from seed when dir
// is empty.
func Open(dir string, seed int64) (*Pool, error) {
	if dir == "" {
		return Placeholders(seed), nil
	}
	p, err := LoadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("load assets from %s: %w", dir, err)
	}
	return p, nil
}

// Load decodes every image and sound in the manifest from fsys.
// The first missing or undecodable file aborts the load.
func Load(fsys fs.FS) (*Pool, error) {
	p := NewPool()
	for _, name := range Images() {
		img, err := loadImage(fsys, ImageFile(name))
		if err != nil {
			return nil, err
		}
		p.images[name] = img
	}
	for _, name := range Sounds() {
		buf, err := loadSound(fsys, SoundFile(name))
		if err != nil {
			return nil, err
		}
		p.sounds[name] = buf
	}
	return p, nil
}

func loadImage(fsys fs.FS, path string) (image.Image, error) {
	f, err := open(fsys, path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}
	return img, nil
}

func loadSound(fsys fs.FS, path string) (*beep.Buffer, error) {
	f, err := open(fsys, path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	streamer, format, err := wav.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode sound %s: %w", path, err)
	}
	defer streamer.Close()

	var s beep.Streamer = streamer
	if format.SampleRate != Format.SampleRate {
		s = beep.Resample(resampleQuality, format.SampleRate, Format.SampleRate, streamer)
	}

	buf := beep.NewBuffer(Format)
	buf.Append(s)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("read sound %s: %w", path, err)
	}
	return buf, nil
}

func open(fsys fs.FS, path string) (fs.File, error) {
	f, err := fsys.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrMissing, path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}

// Image returns a cached sprite.
func (p *Pool) Image(name string) (image.Image, bool) {
	img, ok := p.images[name]
	return img, ok
}

// Sound returns a cached sound.
func (p *Pool) Sound(name string) (*beep.Buffer, bool) {
	buf, ok := p.sounds[name]
	return buf, ok
}

// Size returns a sprite's dimensions, or zero for unknown sprites.
func (p *Pool) Size(name string) (width, height int) {
	img, ok := p.images[name]
	if !ok {
		return 0, 0
	}
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

// SetImage stores a sprite under name, replacing any previous one.
func (p *Pool) SetImage(name string, img image.Image) {
	p.images[name] = img
}

// SetSound stores a sound under name, replacing any previous one.
func (p *Pool) SetSound(name string, buf *beep.Buffer) {
	p.sounds[name] = buf
}
