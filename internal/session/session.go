package session

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ironsheep/image-morph-mcp/internal/morph"
)

var (
	// ErrNoImage is returned by operations that need a loaded image.
	ErrNoImage = errors.New("no image loaded")

	// ErrUnknownOperation is returned by Apply for an unregistered name.
	ErrUnknownOperation = errors.New("unknown operation")

	// ErrCellOutOfRange is returned by kernel edits outside the kernel.
	ErrCellOutOfRange = errors.New("kernel cell out of range")
)

// Session is the editable state behind the tool surface: the binarized
// original, the current result, the structuring element and the list of
// operations applied since the last load or reset.
//
// The kernel persists across loads. It is only changed through ResizeKernel,
// ToggleCell, SetDontCare and Restore; operations receive a clone.
//
// Session is safe for concurrent use.
type Session struct {
	mu     sync.RWMutex
	engine morph.Engine
	logger logrus.FieldLogger

	original *morph.Raster
	current  *morph.Raster
	kernel   *morph.Kernel
	history  []string
}

// New creates a session with no image and a 1x1 kernel.
func New(engine morph.Engine, logger logrus.FieldLogger) *Session {
	return &Session{
		engine: engine,
		logger: logger,
		kernel: morph.NewKernel(),
	}
}

// Load binarizes r and makes it both the original and the current raster.
// History is cleared; the kernel is kept.
func (s *Session) Load(r *morph.Raster) {
	bin := s.engine.Binarize(r, morph.DefaultThreshold)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.original = bin
	s.current = bin
	s.history = nil

	s.logger.WithFields(logrus.Fields{
		"width":  bin.Width(),
		"height": bin.Height(),
	}).Info("Image loaded")
}

// Apply runs the named operation on the current raster and makes the result
// current. It returns the new current raster.
func (s *Session) Apply(name string) (*morph.Raster, error) {
	op, ok := Lookup(name)
	if !ok {
		return nil, errors.Wrapf(ErrUnknownOperation, "%q", name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil, ErrNoImage
	}

	start := time.Now()
	out, err := op.Apply(s.engine, s.current, s.kernel.Clone())
	if err != nil {
		return nil, errors.Wrapf(err, "%s failed", name)
	}
	s.current = out
	s.history = append(s.history, name)

	s.logger.WithFields(logrus.Fields{
		"operation": name,
		"dimension": s.kernel.Dimension(),
		"duration":  time.Since(start).String(),
	}).Debug("Operation applied")

	return out, nil
}

// Reset discards every applied operation.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.original == nil {
		return ErrNoImage
	}
	s.current = s.original
	s.history = nil
	s.logger.Debug("Session reset")
	return nil
}

// Original returns the binarized raster from the last load.
func (s *Session) Original() (*morph.Raster, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.original == nil {
		return nil, ErrNoImage
	}
	return s.original, nil
}

// Current returns the raster produced by the operations applied so far.
func (s *Session) Current() (*morph.Raster, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil, ErrNoImage
	}
	return s.current, nil
}

// Kernel returns a copy of the structuring element.
func (s *Session) Kernel() *morph.Kernel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.kernel.Clone()
}

// History returns the names of the operations applied since the last load
// or reset, oldest first.
func (s *Session) History() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.history...)
}

// ResizeKernel replaces the kernel with an all-Foreground kernel of the given
// odd dimension. On error the kernel is unchanged.
func (s *Session) ResizeKernel(dimension int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kernel.Resize(dimension); err != nil {
		return err
	}
	s.logger.WithField("dimension", dimension).Debug("Kernel resized")
	return nil
}

// ToggleCell flips a kernel cell between Foreground and Background and
// returns its new value. A DontCare cell becomes Foreground.
func (s *Session) ToggleCell(x, y int) (morph.Cell, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkCell(x, y); err != nil {
		return 0, err
	}
	return s.kernel.Toggle(x, y), nil
}

// SetDontCare marks a kernel cell DontCare.
func (s *Session) SetDontCare(x, y int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkCell(x, y); err != nil {
		return err
	}
	s.kernel.Set(x, y, morph.DontCare)
	return nil
}

func (s *Session) checkCell(x, y int) error {
	if !s.kernel.Contains(x, y) {
		d := s.kernel.Dimension()
		return errors.Wrapf(ErrCellOutOfRange, "cell (%d,%d) outside %dx%d kernel", x, y, d, d)
	}
	return nil
}

// State is a serializable snapshot of a session.
type State struct {
	Original *morph.Raster `json:"original,omitempty"`
	Current  *morph.Raster `json:"current,omitempty"`
	Kernel   *morph.Kernel `json:"kernel"`
	History  []string      `json:"history"`
}

// State returns a snapshot that shares no mutable memory with the session.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return State{
		Original: s.original,
		Current:  s.current,
		Kernel:   s.kernel.Clone(),
		History:  append([]string{}, s.history...),
	}
}

// Restore replaces the session with a snapshot after validating it.
func (s *Session) Restore(st State) error {
	if st.Kernel == nil {
		return errors.Wrap(morph.ErrInvalidArgument, "state has no kernel")
	}
	if (st.Original == nil) != (st.Current == nil) {
		return errors.Wrap(morph.ErrInvalidArgument, "state must have both rasters or neither")
	}
	if st.Original != nil &&
		(st.Original.Width() != st.Current.Width() || st.Original.Height() != st.Current.Height()) {
		return errors.Wrapf(morph.ErrInvalidArgument, "original is %dx%d but current is %dx%d",
			st.Original.Width(), st.Original.Height(), st.Current.Width(), st.Current.Height())
	}
	for _, name := range st.History {
		if _, ok := Lookup(name); !ok {
			return errors.Wrapf(ErrUnknownOperation, "history entry %q", name)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.original = st.Original
	s.current = st.Current
	s.kernel = st.Kernel.Clone()
	s.history = append([]string(nil), st.History...)

	s.logger.WithField("history", len(s.history)).Debug("Session restored")
	return nil
}
