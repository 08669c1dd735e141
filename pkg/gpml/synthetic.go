package gpml

import "github.com/matzehuels/pathclip/pkg/pathway"

// IsSynthetic reports whether info is copy-generated placeholder metadata.
func IsSynthetic(info *pathway.Info) bool {
	return info != nil && info.IsSynthetic()
}

// SyntheticInfo returns the placeholder metadata of a decoded payload. It is
// found only when the payload carries exactly one Info and that Info is
// marked; a payload with real metadata has nothing to discard.
func SyntheticInfo(m *pathway.Model) (*pathway.Info, bool) {
	if m == nil {
		return nil, false
	}
	infos := m.Infos()
	if len(infos) != 1 || !IsSynthetic(infos[0]) {
		return nil, false
	}
	return infos[0], true
}
