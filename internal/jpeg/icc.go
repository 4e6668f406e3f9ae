package jpeg

import (
	"bytes"
	"fmt"
)

// iccSignature opens every APP2 segment that carries part of an ICC
// profile. It is followed by a 1-based sequence number and the total
// segment count, one byte each.
var iccSignature = []byte("ICC_PROFILE\x00")

// ExtractICC reassembles an ICC profile from raw APP2 payloads, in
// whatever order they appear. Non-ICC APP2 segments are skipped. It
// returns nil, nil when no segment carries a profile.
func ExtractICC(markers [][]byte) ([]byte, error) {
	var parts [][]byte
	for _, m := range markers {
		if len(m) < len(iccSignature)+2 || !bytes.HasPrefix(m, iccSignature) {
			continue
		}
		seq, count := int(m[len(iccSignature)]), int(m[len(iccSignature)+1])
		if seq == 0 || seq > count {
			return nil, fmt.Errorf("invalid ICC chunk sequence %d/%d", seq, count)
		}
		if parts == nil {
			parts = make([][]byte, count)
		} else if count != len(parts) {
			return nil, fmt.Errorf("inconsistent ICC chunk count: %d vs %d", count, len(parts))
		}
		if parts[seq-1] != nil {
			return nil, fmt.Errorf("duplicate ICC chunk %d", seq)
		}
		parts[seq-1] = m[len(iccSignature)+2:]
	}

	if parts == nil {
		return nil, nil
	}
	for i, p := range parts {
		if p == nil {
			return nil, fmt.Errorf("missing ICC chunk %d of %d", i+1, len(parts))
		}
	}
	return bytes.Join(parts, nil), nil
}
