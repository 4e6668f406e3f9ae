package jpeg

import (
	"bytes"
	"testing"
)

func iccChunk(seq, count int, data string) []byte {
	m := append([]byte{}, iccSignature...)
	m = append(m, byte(seq), byte(count))
	return append(m, data...)
}

func TestExtractICCReordersChunks(t *testing.T) {
	markers := [][]byte{
		iccChunk(2, 3, "middle-"),
		[]byte("not an icc marker"),
		iccChunk(3, 3, "end"),
		iccChunk(1, 3, "start-"),
	}
	icc, err := ExtractICC(markers)
	if err != nil {
		t.Fatalf("ExtractICC: %v", err)
	}
	if !bytes.Equal(icc, []byte("start-middle-end")) {
		t.Errorf("reassembled profile = %q", icc)
	}
}

func TestExtractICCAbsent(t *testing.T) {
	icc, err := ExtractICC(nil)
	if err != nil || icc != nil {
		t.Errorf("ExtractICC(nil) = %v, %v; expected nil, nil", icc, err)
	}
}

func TestExtractICCMissingChunk(t *testing.T) {
	if _, err := ExtractICC([][]byte{iccChunk(1, 2, "only one")}); err == nil {
		t.Error("expected error for missing chunk")
	}
	if _, err := ExtractICC([][]byte{iccChunk(0, 1, "bad seq")}); err == nil {
		t.Error("expected error for zero sequence number")
	}
	if _, err := ExtractICC([][]byte{iccChunk(1, 2, "a"), iccChunk(1, 2, "b")}); err == nil {
		t.Error("expected error for duplicate chunk")
	}
	if _, err := ExtractICC([][]byte{iccChunk(1, 2, "a"), iccChunk(2, 3, "b")}); err == nil {
		t.Error("expected error for inconsistent chunk count")
	}
}
