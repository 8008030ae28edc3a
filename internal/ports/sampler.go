package ports

// ForegroundWindow is one observation of the focused window.
type ForegroundWindow struct {
	AppName string // owning process name, file extension stripped
	Title   string // raw window title
}

// ForegroundSampler reads the currently focused window from the OS.
// A failed sample means the tick is skipped; it is never fatal.
type ForegroundSampler interface {
	Sample() (ForegroundWindow, error)
}
