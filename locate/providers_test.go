package locate

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistersBuiltins(t *testing.T) {
	assert.Contains(t, Default.providers, "memcall")
	assert.Contains(t, Default.providers, "mmap")
}

func TestMemcallProviderRoundTrip(t *testing.T) {
	p := memcallProvider()

	block := p.Alloc(4096)
	require.NotNil(t, block)
	require.Zero(t, uintptr(block)%uintptr(4096), "blocks must be page-aligned")

	b := unsafe.Slice((*byte)(block), 4096)
	b[0], b[4095] = 0xaa, 0xbb

	p.Free(block, 4096)
}

func TestMmapProviderRoundTrip(t *testing.T) {
	p := mmapProvider()

	block := p.Alloc(4096)
	require.NotNil(t, block)
	require.Zero(t, uintptr(block)%uintptr(4096), "blocks must be page-aligned")

	b := unsafe.Slice((*byte)(block), 4096)
	b[0], b[4095] = 0xaa, 0xbb

	p.Free(block, 4096)
}
