package valuecodec

import "testing"

type result struct {
	Sum   int
	Label string
	Parts []float64
}

func TestMsgpack_RoundTrip(t *testing.T) {
	c := NewMsgpack()

	original := result{Sum: 3, Label: "add", Parts: []float64{1, 2}}

	data, err := c.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded result
	if err := c.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if decoded.Sum != original.Sum || decoded.Label != original.Label {
		t.Errorf("Unmarshal() = %+v, want %+v", decoded, original)
	}
	if len(decoded.Parts) != 2 {
		t.Errorf("Unmarshal() Parts = %v, want 2 elements", decoded.Parts)
	}
}

func TestMsgpack_UnmarshalGarbage(t *testing.T) {
	c := NewMsgpack()

	var out result
	if err := c.Unmarshal([]byte{0xc1}, &out); err == nil {
		t.Error("Unmarshal() error = nil, want error for invalid data")
	}
}
