package storage

import "testing"

func TestKeyScheme(t *testing.T) {
	if got := CartKey("42"); got != "carrinhoProdutos_42" {
		t.Fatalf("unexpected cart key: %s", got)
	}
	if got := ProductKey(7); got != "produto_7" {
		t.Fatalf("unexpected product key: %s", got)
	}
	if UserIDKey != "userId" {
		t.Fatalf("unexpected user id key: %s", UserIDKey)
	}
}
