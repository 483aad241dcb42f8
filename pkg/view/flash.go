package view

// FlashKind picks the banner style of a flash message.
type FlashKind string

const (
	FlashInfo    FlashKind = "info"
	FlashSuccess FlashKind = "success"
	FlashWarning FlashKind = "warning"
	FlashError   FlashKind = "error"
)

func (k FlashKind) Valid() bool {
	switch k {
	case FlashInfo, FlashSuccess, FlashWarning, FlashError:
		return true
	}
	return false
}

// Flash is a one-shot message shown on the page a redirect lands on.
type Flash struct {
	Kind    FlashKind `json:"kind"`
	Message string    `json:"message"`
}

// Role is the ARIA role of the banner. Warnings and errors are announced
// immediately.
func (f Flash) Role() string {
	if f.Kind == FlashWarning || f.Kind == FlashError {
		return "alert"
	}
	return "status"
}
