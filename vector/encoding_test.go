package vector

import (
	"errors"
	"testing"
)

func TestEncodeDecodeEmbedding_RoundTrip(t *testing.T) {
	orig := []float32{0.0, 1.5, -2.25, 3.75}

	b, err := EncodeEmbedding(orig)
	if err != nil {
		t.Fatalf("EncodeEmbedding failed: %v", err)
	}

	decoded, err := DecodeEmbedding(b)
	if err != nil {
		t.Fatalf("DecodeEmbedding failed: %v", err)
	}
	if len(decoded) != len(orig) {
		t.Fatalf("decoded length = %d, want %d", len(decoded), len(orig))
	}
	for i := range orig {
		if got, want := decoded[i], orig[i]; got != want {
			t.Fatalf("decoded[%d] = %v, want %v", i, got, want)
		}
	}
}

func TestEncodeEmbedding_Empty(t *testing.T) {
	b, err := EncodeEmbedding(nil)
	if err != nil {
		t.Fatalf("EncodeEmbedding(nil) failed: %v", err)
	}
	if len(b) != 0 {
		t.Fatalf("expected empty blob for nil slice, got len=%d", len(b))
	}
}

func TestDecodeEmbedding_EmptyBlobFails(t *testing.T) {
	if _, err := DecodeEmbedding(nil); !errors.Is(err, ErrDecode) {
		t.Fatalf("DecodeEmbedding(nil): err = %v, want ErrDecode", err)
	}
	if _, err := DecodeEmbedding([]byte{}); !errors.Is(err, ErrDecode) {
		t.Fatalf("DecodeEmbedding([]byte{}): err = %v, want ErrDecode", err)
	}
}

func TestDecodeEmbedding_MisalignedBlobFails(t *testing.T) {
	if _, err := DecodeEmbedding([]byte{1, 2, 3}); !errors.Is(err, ErrDecode) {
		t.Fatalf("DecodeEmbedding(3 bytes): err = %v, want ErrDecode", err)
	}
}

