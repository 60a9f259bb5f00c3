package renderer

import (
	"sync"
	"unsafe"

	"github.com/klauspost/cpuid/v2"
	"golang.org/x/sys/cpu"
)

// FallbackCacheLineSize is used when neither CPUID nor the compile-time
// architecture constant yields a usable line size.
const FallbackCacheLineSize = 64

// CacheLineSize returns the coherency line size rows are aligned to.
// It prefers the CPUID cache descriptors, then the line size x/sys/cpu pads
// to for this architecture, then FallbackCacheLineSize.
var CacheLineSize = sync.OnceValue(func() int {
	return pickCacheLineSize(cpuid.CPU.CacheLine, int(unsafe.Sizeof(cpu.CacheLinePad{})))
})

func pickCacheLineSize(candidates ...int) int {
	for _, n := range candidates {
		if validCacheLineSize(n) {
			return n
		}
	}
	return FallbackCacheLineSize
}

// validCacheLineSize accepts powers of two between 16 bytes and 4 KiB
func validCacheLineSize(n int) bool {
	return n >= 16 && n <= 4096 && n&(n-1) == 0
}
