package transfer

import "github.com/yi-nology/asset_harbor/biz/model/api"

// ManifestVersion is bumped when the bundle layout changes.
const ManifestVersion = 1

// ManifestAsset groups one asset with every component that belongs to it.
type ManifestAsset struct {
	Asset      *api.AssetView       `json:"asset"`
	Components []*api.ComponentView `json:"components,omitempty"`
}

// Manifest is the manifest.json written at the root of an export bundle.
// Attachment payloads live next to it under files/<path>.
type Manifest struct {
	Version    int              `json:"version"`
	ExportedAt int64            `json:"exported_at"`
	Assets     []*ManifestAsset `json:"assets"`
}

// ImportSummary reports what an import actually restored.
type ImportSummary struct {
	Assets     int32    `json:"assets"`
	Components int32    `json:"components"`
	Files      int32    `json:"files"`
	Skipped    []string `json:"skipped,omitempty"`
}

// ImportResponse is the wire response for bundle imports.
type ImportResponse struct {
	Code  int32          `json:"code"`
	Msg   string         `json:"msg,omitempty"`
	Error string         `json:"error,omitempty"`
	Data  *ImportSummary `json:"data,omitempty"`
}
