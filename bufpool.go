package objgen

import (
	"bytes"
	"sync"
)

// bytesBufPool reuses the buffers that stage an object's payload while its
// dynamic size header is still being collected.
var bytesBufPool = sync.Pool{
	New: func() any {
		// A 4KB default is chosen to avoid re-allocations for common packet sizes.
		return bytes.NewBuffer(make([]byte, 0, 4096))
	},
}
