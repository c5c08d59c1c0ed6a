// Package catalog turns the flat buckets of the data lake into a navigable,
// filterable catalog. It owns the layer/bucket mapping, the object key
// scheme, the freshness-ordered index, and the in-session document cache.
package catalog

import "fmt"

// Layer identifies one of the three ordered storage tiers of the pipeline.
type Layer string

const (
	LayerLanding Layer = "landing"
	LayerRaw     Layer = "raw"
	LayerTrusted Layer = "trusted"
)

// Layers returns the three layers in pipeline order.
func Layers() []Layer {
	return []Layer{LayerLanding, LayerRaw, LayerTrusted}
}

// ParseLayer converts a layer name into a Layer.
func ParseLayer(s string) (Layer, error) {
	switch Layer(s) {
	case LayerLanding, LayerRaw, LayerTrusted:
		return Layer(s), nil
	}
	return "", fmt.Errorf("unknown layer %q (want landing, raw or trusted)", s)
}

// Bucket returns the bucket backing the layer. The mapping is fixed; data
// already stored under these buckets depends on it.
func (l Layer) Bucket() string {
	switch l {
	case LayerLanding:
		return "reclameaqui-landing"
	case LayerRaw:
		return "reclameaqui-raw"
	case LayerTrusted:
		return "reclameaqui-trusted"
	}
	return ""
}

// Entry is the decoded metadata view of one stored object. Entries are
// value objects rebuilt on every listing and never persisted.
type Entry struct {
	Path      string `json:"path"`
	Layer     Layer  `json:"layer"`
	Category  string `json:"category"`
	Filename  string `json:"filename"`
	Date      string `json:"date"` // lexically sortable "YYYY/MM/DD"
	SizeBytes int64  `json:"size_bytes"`
}
