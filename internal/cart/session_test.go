package cart

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/bistrot/internal/domain"
	"github.com/vladislavdragonenkov/bistrot/internal/storage"
	"github.com/vladislavdragonenkov/bistrot/internal/storage/memory"
)

var (
	produtoA = domain.Produto{ID: 1, Nome: "Coxinha", Preco: 10}
	produtoB = domain.Produto{ID: 2, Nome: "Pastel", Preco: 7.5}
)

func authedStore(t *testing.T, userID string) storage.KeyValueStore {
	t.Helper()

	store := memory.NewKeyValueStore()
	require.NoError(t, store.Set(context.Background(), storage.UserIDKey, []byte(userID)))
	return store
}

func storedLines(t *testing.T, store storage.KeyValueStore, userID string) []domain.ItemCarrinho {
	t.Helper()

	raw, ok, err := store.Get(context.Background(), storage.CartKey(userID))
	require.NoError(t, err)
	require.True(t, ok, "cart snapshot must exist")

	var itens []domain.ItemCarrinho
	require.NoError(t, json.Unmarshal(raw, &itens))
	return itens
}

func TestAdd_SameProductMergesIntoOneLine(t *testing.T) {
	ctx := context.Background()
	store := authedStore(t, "42")

	sess, err := Open(ctx, store, nil, nil)
	require.NoError(t, err)

	require.NoError(t, sess.Add(ctx, &produtoA, 2))
	require.NoError(t, sess.Add(ctx, &produtoA, 1))

	itens := sess.Itens()
	require.Len(t, itens, 1)
	assert.Equal(t, 3, itens[0].Quantidade)
	assert.InDelta(t, 30.0, itens[0].PrecoTotal, 1e-9)
	assert.NotEmpty(t, itens[0].ID)

	// Снапшот в хранилище совпадает с состоянием сессии.
	stored := storedLines(t, store, "42")
	require.Len(t, stored, 1)
	assert.Equal(t, 3, stored[0].Quantidade)
	assert.InDelta(t, 30.0, stored[0].PrecoTotal, 1e-9)
}

func TestAdd_DistinctProductsPreserveInsertionOrder(t *testing.T) {
	ctx := context.Background()
	store := authedStore(t, "42")

	sess, err := Open(ctx, store, nil, nil)
	require.NoError(t, err)

	require.NoError(t, sess.Add(ctx, &produtoA, 1))
	require.NoError(t, sess.Add(ctx, &produtoB, 2))

	itens := sess.Itens()
	require.Len(t, itens, 2)
	assert.Equal(t, int64(1), itens[0].Produto.ID)
	assert.Equal(t, int64(2), itens[1].Produto.ID)
	assert.InDelta(t, 15.0, itens[1].PrecoTotal, 1e-9)
	assert.NotEqual(t, itens[0].ID, itens[1].ID)
}

func TestAdd_WithoutIdentityRejected(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKeyValueStore()

	sess, err := Open(ctx, store, nil, nil)
	require.NoError(t, err)
	assert.False(t, sess.Authenticated())

	err = sess.Add(ctx, &produtoA, 1)
	require.ErrorIs(t, err, domain.ErrAuthRequired)

	// Хранилище не тронуто: ни одного ключа корзины не появилось.
	_, ok, getErr := store.Get(ctx, storage.CartKey(""))
	require.NoError(t, getErr)
	assert.False(t, ok)
	assert.Empty(t, sess.Itens())
}

func TestAdd_NilProductRejected(t *testing.T) {
	ctx := context.Background()
	sess, err := Open(ctx, authedStore(t, "42"), nil, nil)
	require.NoError(t, err)

	require.ErrorIs(t, sess.Add(ctx, nil, 1), domain.ErrProdutoRequired)
}

func TestAdd_InvalidQuantityRejected(t *testing.T) {
	ctx := context.Background()
	sess, err := Open(ctx, authedStore(t, "42"), nil, nil)
	require.NoError(t, err)

	require.ErrorIs(t, sess.Add(ctx, &produtoA, 0), domain.ErrQuantidadeInvalid)
	require.ErrorIs(t, sess.Add(ctx, &produtoA, -3), domain.ErrQuantidadeInvalid)
}

func TestOpen_LoadsExistingSnapshot(t *testing.T) {
	ctx := context.Background()
	store := authedStore(t, "42")

	first, err := Open(ctx, store, nil, nil)
	require.NoError(t, err)
	require.NoError(t, first.Add(ctx, &produtoA, 2))

	// Новая сессия (повторный «монтаж» экрана) видит сохранённые строки.
	second, err := Open(ctx, store, nil, nil)
	require.NoError(t, err)
	require.NoError(t, second.Add(ctx, &produtoA, 1))

	itens := second.Itens()
	require.Len(t, itens, 1)
	assert.Equal(t, 3, itens[0].Quantidade)
}

func TestOpen_CorruptSnapshotRejected(t *testing.T) {
	ctx := context.Background()
	store := authedStore(t, "42")
	require.NoError(t, store.Set(ctx, storage.CartKey("42"), []byte("not json")))

	_, err := Open(ctx, store, nil, nil)
	require.ErrorIs(t, err, domain.ErrSnapshotCorrupt)
}

func TestCartsAreIndependentPerUser(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKeyValueStore()

	require.NoError(t, store.Set(ctx, storage.UserIDKey, []byte("42")))
	sess42, err := Open(ctx, store, nil, nil)
	require.NoError(t, err)
	require.NoError(t, sess42.Add(ctx, &produtoA, 1))

	require.NoError(t, store.Set(ctx, storage.UserIDKey, []byte("43")))
	sess43, err := Open(ctx, store, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, sess43.Itens())

	require.Len(t, storedLines(t, store, "42"), 1)
}
