package backend

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/1broseidon/lvport/internal/config"
)

// Constructor builds a backend from resolved settings. It must not touch any
// device; that happens in Create.
type Constructor func(s config.Settings) Backend

// Registry holds the backends compiled into the binary.
type Registry struct {
	ctors  map[Kind]Constructor
	logger *slog.Logger
}

// NewRegistry returns an empty registry. A nil logger discards output.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Registry{
		ctors:  make(map[Kind]Constructor),
		logger: logger,
	}
}

// Register makes kind available. Registering a kind twice replaces it.
func (r *Registry) Register(kind Kind, ctor Constructor) {
	r.ctors[kind] = ctor
}

// Available returns the registered kinds in display order.
func (r *Registry) Available() []Kind {
	out := make([]Kind, 0, len(r.ctors))
	for k := range r.ctors {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return kindRank(out[i]) < kindRank(out[j]) })
	return out
}

func kindRank(k Kind) int {
	for i, known := range Kinds {
		if known == k {
			return i
		}
	}
	return len(Kinds)
}

// Handle is the outcome of a successful Initialize.
type Handle struct {
	Kind    Kind
	Device  string
	Display Display
	// Pointer is nil when pointer input is disabled or supplied by Display.
	Pointer PointerDevice
}

// Close releases the pointer first, then the display.
func (h *Handle) Close() error {
	if h == nil {
		return nil
	}
	var perr error
	if h.Pointer != nil {
		perr = h.Pointer.Close()
	}
	if err := h.Display.Close(); err != nil {
		return err
	}
	return perr
}

// Initialize creates the display for kind and binds its pointer. It is meant
// to run once per process; only the selected backend is constructed.
func (r *Registry) Initialize(ctx context.Context, kind Kind, s config.Settings) (*Handle, error) {
	ctor, ok := r.ctors[kind]
	if !ok {
		return nil, &BackendError{
			Code:    ErrUnsupportedBackend,
			Backend: kind,
			Err:     fmt.Errorf("backend %q is not compiled into this binary (available: %v)", kind, r.Available()),
		}
	}

	b := ctor(s)
	r.logger.Info("creating display", "backend", kind, "device", b.Device())

	disp, err := b.Create(ctx)
	if err != nil {
		return nil, NewError(ErrDeviceOpen, kind, b.Device(), err)
	}
	r.logger.Info("display created", "backend", kind, "width", disp.Width(), "height", disp.Height())

	ptr, err := b.BindPointer(disp)
	if err != nil {
		_ = disp.Close()
		return nil, NewError(ErrDeviceBind, kind, "", err)
	}
	if ptr != nil {
		r.logger.Info("pointer bound", "backend", kind, "device", ptr.Name())
	}

	return &Handle{
		Kind:    kind,
		Device:  b.Device(),
		Display: disp,
		Pointer: ptr,
	}, nil
}
