package diag

import "fmt"

// LeakError reports bytes still allocated at the point LeakCheck ran.
type LeakError struct {
	Bytes uintptr
}

func (e *LeakError) Error() string {
	return fmt.Sprintf("diag: %d byte(s) still allocated", e.Bytes)
}
