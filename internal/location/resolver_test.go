package location

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()

	r, err := NewResolver(filepath.Join("testdata", "provinces.json"))
	require.NoError(t, err)
	return r
}

func TestResolve(t *testing.T) {
	r := newTestResolver(t)

	codes, err := r.Resolve("Hà Nội", "Quận Ba Đình", "Phường Phúc Xá")
	require.NoError(t, err)

	assert.Equal(t, 201, codes.ProvinceID)
	assert.Equal(t, 1482, codes.DistrictID)
	assert.Equal(t, "11006", codes.WardCode)
}

func TestResolveCaseInsensitive(t *testing.T) {
	r := newTestResolver(t)

	codes, err := r.Resolve("hồ chí minh", "quận 1", "phường bến thành")
	require.NoError(t, err)

	assert.Equal(t, 202, codes.ProvinceID)
	assert.Equal(t, 1442, codes.DistrictID)
	assert.Equal(t, "20102", codes.WardCode)
}

func TestResolveUnknownProvince(t *testing.T) {
	r := newTestResolver(t)

	_, err := r.Resolve("Atlantis", "Quận 1", "Phường Bến Nghé")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestResolveUnknownDistrict(t *testing.T) {
	r := newTestResolver(t)

	_, err := r.Resolve("Hà Nội", "Quận 1", "Phường Bến Nghé")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestResolveUnknownWard(t *testing.T) {
	r := newTestResolver(t)

	_, err := r.Resolve("Hà Nội", "Quận Ba Đình", "Phường Hàng Bạc")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestNewResolverMissingFile(t *testing.T) {
	_, err := NewResolver(filepath.Join("testdata", "nope.json"))
	require.Error(t, err)
}
