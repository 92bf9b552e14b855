package ctxutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestRequestData(t *testing.T) {
	if got := UserID(context.Background()); got != uuid.Nil {
		t.Fatalf("UserID: expected nil id, got %s", got)
	}
	id := uuid.New()
	ctx := WithRequestData(context.Background(), &RequestData{UserID: id, TokenString: "tok"})
	if got := UserID(ctx); got != id {
		t.Fatalf("UserID: got %s want %s", got, id)
	}
	if rd := GetRequestData(ctx); rd == nil || rd.TokenString != "tok" {
		t.Fatalf("GetRequestData: got %+v", rd)
	}
}

func TestRequestMeta(t *testing.T) {
	if meta := GetRequestMeta(nil); meta != (RequestMeta{}) {
		t.Fatalf("GetRequestMeta(nil): got %+v", meta)
	}
	ctx := WithRequestMeta(nil, RequestMeta{RequestID: "req-1", TraceID: "trace-1"})
	meta := GetRequestMeta(ctx)
	if meta.RequestID != "req-1" || meta.TraceID != "trace-1" {
		t.Fatalf("GetRequestMeta: got %+v", meta)
	}
}
