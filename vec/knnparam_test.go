package vec

import (
	"testing"

	"github.com/viant/vecsearch/vector"
)

func TestKNNParamHandleReleasedOnConsume(t *testing.T) {
	before := knnParamOutstanding()
	id := allocKNNParam(vector.New([]float32{1, 2, 3}), 5)
	if knnParamOutstanding() != before+1 {
		t.Fatalf("knnParamOutstanding after alloc = %d, want %d", knnParamOutstanding(), before+1)
	}
	p, ok := takeKNNParam(id)
	if !ok {
		t.Fatalf("takeKNNParam: not found")
	}
	if p.k != 5 || p.query.Dim() != 3 {
		t.Fatalf("takeKNNParam returned %+v, want k=5 dim=3", p)
	}
	if knnParamOutstanding() != before {
		t.Fatalf("knnParamOutstanding after take = %d, want %d", knnParamOutstanding(), before)
	}
	if _, ok := takeKNNParam(id); ok {
		t.Fatalf("takeKNNParam second call: want not-found, got ok")
	}
}
