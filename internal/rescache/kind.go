package rescache

// Kind identifies a resource category. Pools and active counts are kept
// per kind.
type Kind uint8

const (
	KindTexture Kind = iota
	KindFont
	KindShader
	KindBuffer

	kindCount
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindTexture:
		return "texture"
	case KindFont:
		return "font"
	case KindShader:
		return "shader"
	case KindBuffer:
		return "buffer"
	default:
		return "unknown"
	}
}

// Handle identifies a cached resource by arena slot and generation. A
// handle stops resolving the moment its slot is released or recycled;
// holders detect that through the Resolve ok flag instead of touching
// freed memory. The zero Handle never resolves.
type Handle struct {
	index      uint32
	generation uint32
}

// IsZero reports whether the handle is the zero value.
func (h Handle) IsZero() bool { return h.generation == 0 }

// Resource is what a creator hands the cache: the payload the renderer
// consumes, its size in bytes for the memory budget, and an optional
// destroy callback run when the cache finally drops the resource.
type Resource struct {
	Payload any
	Size    int64
	Destroy func()
}

// Creator builds a resource that is not in the cache. It runs under the
// cache's exclusive lock and must not call back into the cache.
type Creator func(id string) (Resource, error)
