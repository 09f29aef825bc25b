package allocator

import "errors"

// ErrNotInitialized indicates a facade operation was invoked with no
// heap and lazy initialization was bypassed. No operation in this package
// returns it today: the package-level functions initialize lazily and New
// initializes eagerly, so this sentinel exists for symmetry with the
// error taxonomy.
var ErrNotInitialized = errors.New("allocator: not initialized")
